package infrastructure

import (
	"context"
	"fmt"

	"golang.org/x/sys/unix"

	"github.com/chrisvarga/gimli/internal/metrics/domain"
)

// MemInfo reads the memory counters, process count and uptime via
// sysinfo(2). Counters are scaled to KiB by the kernel memory unit.
func (r *SystemReaderImpl) MemInfo(ctx context.Context) (domain.MemInfo, error) {
	var si unix.Sysinfo_t
	if err := unix.Sysinfo(&si); err != nil {
		return domain.MemInfo{}, fmt.Errorf("sysinfo failed: %w", err)
	}

	unitScale := uint64(si.Unit)
	return domain.MemInfo{
		TotalRAM:  uint64(si.Totalram) * unitScale / 1024,
		FreeRAM:   uint64(si.Freeram) * unitScale / 1024,
		SharedRAM: uint64(si.Sharedram) * unitScale / 1024,
		BufferRAM: uint64(si.Bufferram) * unitScale / 1024,
		TotalSwap: uint64(si.Totalswap) * unitScale / 1024,
		FreeSwap:  uint64(si.Freeswap) * unitScale / 1024,
		TotalHigh: uint64(si.Totalhigh) * unitScale / 1024,
		FreeHigh:  uint64(si.Freehigh) * unitScale / 1024,
		Unit:      unitScale,
		Procs:     uint64(si.Procs),
		Uptime:    uint64(si.Uptime),
	}, nil
}
