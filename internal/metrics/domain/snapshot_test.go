package domain

import (
	"fmt"
	"sync"
	"testing"
)

func TestSnapshotDefaults(t *testing.T) {
	s := NewSnapshot(8)

	if got := s.Cores(); got != 8 {
		t.Errorf("Cores() = %d, want 8", got)
	}
	if got := s.CPU(); got != (CPUUtil{}) {
		t.Errorf("CPU() = %+v, want zero value", got)
	}
	if got := s.Load(); got != (LoadAvg{}) {
		t.Errorf("Load() = %+v, want zero value", got)
	}
	if got := s.Interfaces(); got == nil || len(got) != 0 {
		t.Errorf("Interfaces() = %v, want empty non-nil slice", got)
	}
}

func TestSnapshotSetInterfaces(t *testing.T) {
	tests := []struct {
		name    string
		count   int
		wantLen int
	}{
		{name: "empty", count: 0, wantLen: 0},
		{name: "below cap", count: 3, wantLen: 3},
		{name: "at cap", count: MaxInterfaces, wantLen: MaxInterfaces},
		{name: "over cap truncates", count: MaxInterfaces + 10, wantLen: MaxInterfaces},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ifaces := make([]Interface, tt.count)
			for i := range ifaces {
				ifaces[i] = Interface{Name: fmt.Sprintf("eth%d", i), IPv4: "10.0.0.1"}
			}

			s := NewSnapshot(1)
			s.SetInterfaces(ifaces)

			got := s.Interfaces()
			if len(got) != tt.wantLen {
				t.Fatalf("len(Interfaces()) = %d, want %d", len(got), tt.wantLen)
			}
			for i, iface := range got {
				if iface.Name != fmt.Sprintf("eth%d", i) {
					t.Errorf("Interfaces()[%d].Name = %q, want eth%d (truncation must keep enumeration order)", i, iface.Name, i)
				}
			}
		})
	}
}

func TestSnapshotSetInterfacesCopies(t *testing.T) {
	ifaces := []Interface{{Name: "eth0", IPv4: "10.0.0.1"}}

	s := NewSnapshot(1)
	s.SetInterfaces(ifaces)

	// Mutating the caller's slice must not change the published record.
	ifaces[0].Name = "mutated"

	if got := s.Interfaces()[0].Name; got != "eth0" {
		t.Errorf("published interface name = %q, want eth0", got)
	}
}

// TestSnapshotNoTornReads publishes load triples whose three components are
// always equal and asserts no reader ever observes components from two
// different publications mixed together.
func TestSnapshotNoTornReads(t *testing.T) {
	s := NewSnapshot(1)

	const (
		writers    = 2
		iterations = 5000
	)

	var wg sync.WaitGroup
	stop := make(chan struct{})

	wg.Add(writers)
	for w := 0; w < writers; w++ {
		go func(seed int) {
			defer wg.Done()
			for i := 0; i < iterations; i++ {
				v := float64(seed*iterations + i)
				s.SetLoad(LoadAvg{One: v, Five: v, Fifteen: v})
				s.SetCPU(CPUUtil{User: v, Nice: v, System: v, Idle: v, Iowait: v})
			}
		}(w)
	}

	var readErr error
	var readWG sync.WaitGroup
	readWG.Add(1)
	go func() {
		defer readWG.Done()
		for {
			select {
			case <-stop:
				return
			default:
			}
			load := s.Load()
			if load.One != load.Five || load.One != load.Fifteen {
				readErr = fmt.Errorf("torn load read: %+v", load)
				return
			}
			cpu := s.CPU()
			if cpu.User != cpu.Idle || cpu.User != cpu.Iowait {
				readErr = fmt.Errorf("torn cpu read: %+v", cpu)
				return
			}
		}
	}()

	wg.Wait()
	close(stop)
	readWG.Wait()

	if readErr != nil {
		t.Fatal(readErr)
	}
}
