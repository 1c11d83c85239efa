package domain

import "sync/atomic"

// MaxInterfaces caps the number of interface entries a snapshot will hold.
// Enumerations beyond the cap are truncated in enumeration order.
const MaxInterfaces = 32

// CPUUtil holds CPU utilization percentages for one measurement window,
// each in [0,100], summing to roughly 100.
type CPUUtil struct {
	User   float64
	Nice   float64
	System float64
	Idle   float64
	Iowait float64
}

// LoadAvg holds the 1, 5 and 15 minute load averages.
type LoadAvg struct {
	One     float64
	Five    float64
	Fifteen float64
}

// MemInfo holds memory counters scaled to KiB by the kernel memory unit,
// plus the process count and uptime, as reported by sysinfo(2).
type MemInfo struct {
	TotalRAM  uint64
	FreeRAM   uint64
	SharedRAM uint64
	BufferRAM uint64
	TotalSwap uint64
	FreeSwap  uint64
	TotalHigh uint64
	FreeHigh  uint64
	Unit      uint64
	Procs     uint64
	Uptime    uint64 // seconds
}

// Interface is one IPv4-bearing network interface.
type Interface struct {
	Name string
	IPv4 string
}

// Snapshot is the shared record of the latest known value for every metric
// family. Each family is an immutable record behind its own atomic pointer:
// a setter fully replaces the family, a getter observes the last published
// record, and unrelated families never contend. Cross-family consistency is
// not guaranteed; each family advances on its own sampler's cadence.
type Snapshot struct {
	cores int

	cpu    atomic.Pointer[CPUUtil]
	load   atomic.Pointer[LoadAvg]
	mem    atomic.Pointer[MemInfo]
	netifs atomic.Pointer[[]Interface]
}

// NewSnapshot creates a snapshot with every family zeroed. The core count is
// fixed for the lifetime of the snapshot.
func NewSnapshot(cores int) *Snapshot {
	s := &Snapshot{cores: cores}
	s.cpu.Store(&CPUUtil{})
	s.load.Store(&LoadAvg{})
	s.mem.Store(&MemInfo{})
	none := []Interface{}
	s.netifs.Store(&none)
	return s
}

func (s *Snapshot) Cores() int {
	return s.cores
}

func (s *Snapshot) CPU() CPUUtil {
	return *s.cpu.Load()
}

func (s *Snapshot) SetCPU(v CPUUtil) {
	s.cpu.Store(&v)
}

func (s *Snapshot) Load() LoadAvg {
	return *s.load.Load()
}

func (s *Snapshot) SetLoad(v LoadAvg) {
	s.load.Store(&v)
}

func (s *Snapshot) Mem() MemInfo {
	return *s.mem.Load()
}

func (s *Snapshot) SetMem(v MemInfo) {
	s.mem.Store(&v)
}

// Interfaces returns the last published interface list. Callers must not
// mutate the returned slice.
func (s *Snapshot) Interfaces() []Interface {
	return *s.netifs.Load()
}

// SetInterfaces publishes a copy of v, truncated to MaxInterfaces entries.
func (s *Snapshot) SetInterfaces(v []Interface) {
	if len(v) > MaxInterfaces {
		v = v[:MaxInterfaces]
	}
	owned := make([]Interface, len(v))
	copy(owned, v)
	s.netifs.Store(&owned)
}
