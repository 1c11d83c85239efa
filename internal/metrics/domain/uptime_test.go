package domain

import "testing"

func TestUptimeParts(t *testing.T) {
	tests := []struct {
		name    string
		seconds uint64
		want    [3]uint64
	}{
		{
			name:    "zero",
			seconds: 0,
			want:    [3]uint64{0, 0, 0},
		},
		{
			name:    "one day one hour two minutes",
			seconds: 90125,
			want:    [3]uint64{1, 1, 2},
		},
		{
			name:    "just under a minute",
			seconds: 59,
			want:    [3]uint64{0, 0, 0},
		},
		{
			name:    "hours wrap at twenty four",
			seconds: 25 * 3600,
			want:    [3]uint64{1, 1, 0},
		},
		{
			name:    "minutes wrap at sixty",
			seconds: 61 * 60,
			want:    [3]uint64{0, 1, 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := UptimeParts(tt.seconds); got != tt.want {
				t.Errorf("UptimeParts(%d) = %v, want %v", tt.seconds, got, tt.want)
			}
		})
	}
}
