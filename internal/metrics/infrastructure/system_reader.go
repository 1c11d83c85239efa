package infrastructure

import (
	"context"
	"fmt"
	"net"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/load"
	gnet "github.com/shirou/gopsutil/v4/net"

	"github.com/chrisvarga/gimli/internal/metrics/domain"
)

// SystemReaderImpl implements the domain SystemReader interface against the
// running host.
type SystemReaderImpl struct{}

// NewSystemReader creates a new system reader implementation
func NewSystemReader() domain.SystemReader {
	return &SystemReaderImpl{}
}

// CPUTicks reads the aggregate cumulative CPU times.
func (r *SystemReaderImpl) CPUTicks(ctx context.Context) (domain.CPUTicks, error) {
	times, err := cpu.TimesWithContext(ctx, false)
	if err != nil {
		return domain.CPUTicks{}, fmt.Errorf("failed to read cpu times: %w", err)
	}
	if len(times) == 0 {
		return domain.CPUTicks{}, fmt.Errorf("no aggregate cpu times reported")
	}

	t := times[0]
	return domain.CPUTicks{
		User:   t.User,
		Nice:   t.Nice,
		System: t.System,
		Idle:   t.Idle,
		Iowait: t.Iowait,
	}, nil
}

// LoadAvg reads the 1, 5 and 15 minute load averages.
func (r *SystemReaderImpl) LoadAvg(ctx context.Context) (domain.LoadAvg, error) {
	avg, err := load.AvgWithContext(ctx)
	if err != nil {
		return domain.LoadAvg{}, fmt.Errorf("failed to read load average: %w", err)
	}

	return domain.LoadAvg{
		One:     avg.Load1,
		Five:    avg.Load5,
		Fifteen: avg.Load15,
	}, nil
}

// IPv4Interfaces enumerates interfaces and keeps one entry per IPv4 address.
func (r *SystemReaderImpl) IPv4Interfaces(ctx context.Context) ([]domain.Interface, error) {
	ifaces, err := gnet.InterfacesWithContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to enumerate interfaces: %w", err)
	}

	result := make([]domain.Interface, 0, len(ifaces))
	for _, iface := range ifaces {
		for _, addr := range iface.Addrs {
			ip, _, err := net.ParseCIDR(addr.Addr)
			if err != nil {
				continue
			}
			v4 := ip.To4()
			if v4 == nil {
				continue
			}
			result = append(result, domain.Interface{
				Name: iface.Name,
				IPv4: v4.String(),
			})
		}
	}

	return result, nil
}

// Cores reports the number of logical CPU cores.
func (r *SystemReaderImpl) Cores(ctx context.Context) (int, error) {
	n, err := cpu.CountsWithContext(ctx, true)
	if err != nil {
		return 0, fmt.Errorf("failed to count cpu cores: %w", err)
	}
	return n, nil
}
