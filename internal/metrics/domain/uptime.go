package domain

// UptimeParts splits an uptime in seconds into whole days, hours of the
// current day and minutes of the current hour.
func UptimeParts(seconds uint64) [3]uint64 {
	return [3]uint64{
		seconds / 86400,
		seconds / 3600 % 24,
		seconds / 60 % 60,
	}
}
