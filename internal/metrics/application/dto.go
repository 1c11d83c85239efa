package application

import "github.com/chrisvarga/gimli/internal/metrics/domain"

// CPUPayload carries utilization percentages under their wire keys.
type CPUPayload struct {
	User   float64 `json:"us"`
	System float64 `json:"sy"`
	Idle   float64 `json:"id"`
	Iowait float64 `json:"wa"`
	Nice   float64 `json:"ni"`
}

// CPUResponse is the body of a cpu query.
type CPUResponse struct {
	CPU CPUPayload `json:"cpu"`
}

// LoadResponse is the body of a load query: 1, 5 and 15 minute averages.
type LoadResponse struct {
	Load [3]float64 `json:"load"`
}

// UptimeResponse is the body of an uptime query: days, hours of the day,
// minutes of the hour.
type UptimeResponse struct {
	Uptime [3]uint64 `json:"uptime"`
}

// ProcsResponse is the body of a process-count query.
type ProcsResponse struct {
	Procs uint64 `json:"procs"`
}

// CoresResponse is the body of a core-count query.
type CoresResponse struct {
	Cores int `json:"cores"`
}

// InterfacePayload is one interface entry in a net query.
type InterfacePayload struct {
	Name string `json:"name"`
	IP   string `json:"ip"`
}

// NetResponse is the body of a net query.
type NetResponse struct {
	Netifs []InterfacePayload `json:"netifs"`
}

// OverviewResponse is the combined document served at the root.
type OverviewResponse struct {
	CPU    CPUPayload         `json:"cpu"`
	Load   [3]float64         `json:"load"`
	Uptime [3]uint64          `json:"uptime"`
	Procs  uint64             `json:"procs"`
	Cores  int                `json:"cores"`
	Netifs []InterfacePayload `json:"netifs"`
}

// ErrorResponse is the fixed sentinel returned for unrecognized requests.
type ErrorResponse struct {
	Err int `json:"err"`
}

// ToCPUResponse converts the snapshot's CPU family to an API response
func ToCPUResponse(s *domain.Snapshot) CPUResponse {
	return CPUResponse{CPU: toCPUPayload(s.CPU())}
}

// ToLoadResponse converts the snapshot's load family to an API response
func ToLoadResponse(s *domain.Snapshot) LoadResponse {
	return LoadResponse{Load: toLoadTriple(s.Load())}
}

// ToUptimeResponse converts the snapshot's uptime to an API response
func ToUptimeResponse(s *domain.Snapshot) UptimeResponse {
	return UptimeResponse{Uptime: domain.UptimeParts(s.Mem().Uptime)}
}

// ToProcsResponse converts the snapshot's process count to an API response
func ToProcsResponse(s *domain.Snapshot) ProcsResponse {
	return ProcsResponse{Procs: s.Mem().Procs}
}

// ToCoresResponse converts the snapshot's core count to an API response
func ToCoresResponse(s *domain.Snapshot) CoresResponse {
	return CoresResponse{Cores: s.Cores()}
}

// ToNetResponse converts the snapshot's interface list to an API response.
// An empty list renders as [] rather than null.
func ToNetResponse(s *domain.Snapshot) NetResponse {
	return NetResponse{Netifs: toInterfacePayloads(s.Interfaces())}
}

// ToOverviewResponse converts the whole snapshot to the combined document.
// Families are read independently; the document is not a cross-family
// consistent cut.
func ToOverviewResponse(s *domain.Snapshot) OverviewResponse {
	mem := s.Mem()
	return OverviewResponse{
		CPU:    toCPUPayload(s.CPU()),
		Load:   toLoadTriple(s.Load()),
		Uptime: domain.UptimeParts(mem.Uptime),
		Procs:  mem.Procs,
		Cores:  s.Cores(),
		Netifs: toInterfacePayloads(s.Interfaces()),
	}
}

func toCPUPayload(v domain.CPUUtil) CPUPayload {
	return CPUPayload{
		User:   v.User,
		System: v.System,
		Idle:   v.Idle,
		Iowait: v.Iowait,
		Nice:   v.Nice,
	}
}

func toLoadTriple(v domain.LoadAvg) [3]float64 {
	return [3]float64{v.One, v.Five, v.Fifteen}
}

func toInterfacePayloads(ifaces []domain.Interface) []InterfacePayload {
	payloads := make([]InterfacePayload, 0, len(ifaces))
	for _, iface := range ifaces {
		payloads = append(payloads, InterfacePayload{
			Name: iface.Name,
			IP:   iface.IPv4,
		})
	}
	return payloads
}
