package domain

import "math"

// CPUTicks holds cumulative scheduler tick counters for the CPU buckets of
// interest, in the order /proc/stat reports them.
type CPUTicks struct {
	User   float64
	Nice   float64
	System float64
	Idle   float64
	Iowait float64
}

// CPUPercent converts two cumulative tick readings taken at the ends of a
// measurement window into per-bucket utilization percentages. Per-bucket
// deltas use the absolute difference so a counter reset between readings
// never produces a negative share. A window with no measurable activity
// (total delta of zero) yields all-zero percentages rather than dividing by
// zero. Results are rounded to one decimal.
func CPUPercent(prev, cur CPUTicks) CPUUtil {
	du := absDelta(cur.User, prev.User)
	dn := absDelta(cur.Nice, prev.Nice)
	ds := absDelta(cur.System, prev.System)
	di := absDelta(cur.Idle, prev.Idle)
	dw := absDelta(cur.Iowait, prev.Iowait)

	total := du + dn + ds + di + dw
	if total == 0 {
		return CPUUtil{}
	}

	return CPUUtil{
		User:   round1(100 * du / total),
		Nice:   round1(100 * dn / total),
		System: round1(100 * ds / total),
		Idle:   round1(100 * di / total),
		Iowait: round1(100 * dw / total),
	}
}

func absDelta(a, b float64) float64 {
	if a > b {
		return a - b
	}
	return b - a
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
