package protocol

import (
	"encoding/json"
	"strings"

	"github.com/chrisvarga/gimli/internal/metrics/application"
	"github.com/chrisvarga/gimli/internal/metrics/domain"
)

// lineTerminator ends every response body.
const lineTerminator = "\r\n"

// route maps a literal request-line prefix to its payload. Routes are
// evaluated in declaration order, first match wins; keep more specific
// prefixes ahead of anything that could capture them.
type route struct {
	prefix  string
	indent  bool
	payload func(*domain.Snapshot) any
}

// Router dispatches a request line to a snapshot-rendering payload and
// serializes it to JSON. Matching is case-sensitive literal prefix match.
type Router struct {
	snap   *domain.Snapshot
	routes []route
}

// NewRouter creates the fixed routing table over snap.
func NewRouter(snap *domain.Snapshot) *Router {
	return &Router{
		snap: snap,
		routes: []route{
			{prefix: "GET /cpu", payload: func(s *domain.Snapshot) any { return application.ToCPUResponse(s) }},
			{prefix: "GET /load", payload: func(s *domain.Snapshot) any { return application.ToLoadResponse(s) }},
			{prefix: "GET /uptime", payload: func(s *domain.Snapshot) any { return application.ToUptimeResponse(s) }},
			{prefix: "GET /procs", payload: func(s *domain.Snapshot) any { return application.ToProcsResponse(s) }},
			{prefix: "GET /cores", payload: func(s *domain.Snapshot) any { return application.ToCoresResponse(s) }},
			{prefix: "GET /net", payload: func(s *domain.Snapshot) any { return application.ToNetResponse(s) }},
			{prefix: "GET / HTTP", indent: true, payload: func(s *domain.Snapshot) any { return application.ToOverviewResponse(s) }},
		},
	}
}

// Dispatch matches the newline-trimmed request line against the routing
// table and returns the serialized body, terminated with CRLF. Unrecognized
// lines yield the error sentinel; clients never see internal error detail.
func (r *Router) Dispatch(line string) []byte {
	for _, rt := range r.routes {
		if !strings.HasPrefix(line, rt.prefix) {
			continue
		}

		var body []byte
		var err error
		if rt.indent {
			body, err = json.MarshalIndent(rt.payload(r.snap), "", "    ")
		} else {
			body, err = json.Marshal(rt.payload(r.snap))
		}
		if err != nil {
			return errorBody()
		}
		return append(body, lineTerminator...)
	}

	return errorBody()
}

func errorBody() []byte {
	body, _ := json.Marshal(application.ErrorResponse{Err: 1})
	return append(body, lineTerminator...)
}
