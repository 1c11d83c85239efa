package domain

import "context"

// SystemReader defines the interface for reading raw metrics from the
// operating system. Every read is fallible and may fail transiently; callers
// retry on their next cycle and keep the previously published value.
// This interface abstracts file I/O and system-level operations from the
// domain layer so tests can inject deterministic fixture data.
type SystemReader interface {
	// CPUTicks reads the cumulative CPU tick counters, aggregated over all
	// cores.
	CPUTicks(ctx context.Context) (CPUTicks, error)

	// LoadAvg reads the 1, 5 and 15 minute load averages.
	LoadAvg(ctx context.Context) (LoadAvg, error)

	// MemInfo reads the memory counters, process count and uptime.
	MemInfo(ctx context.Context) (MemInfo, error)

	// IPv4Interfaces enumerates the IPv4-bearing network interfaces, one
	// entry per address.
	IPv4Interfaces(ctx context.Context) ([]Interface, error)

	// Cores reports the number of logical CPU cores.
	Cores(ctx context.Context) (int, error)
}
