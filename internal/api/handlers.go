package api

import (
	"encoding/json"
	"net/http"

	"github.com/chrisvarga/gimli/internal/metrics/application"
	"github.com/chrisvarga/gimli/internal/metrics/domain"
)

// handler serves snapshot views over HTTP.
type handler struct {
	snap *domain.Snapshot
}

func newHandler(snap *domain.Snapshot) *handler {
	return &handler{snap: snap}
}

// CPU handles GET /api/v1/cpu
func (h *handler) CPU(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, application.ToCPUResponse(h.snap))
}

// Load handles GET /api/v1/load
func (h *handler) Load(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, application.ToLoadResponse(h.snap))
}

// Uptime handles GET /api/v1/uptime
func (h *handler) Uptime(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, application.ToUptimeResponse(h.snap))
}

// Procs handles GET /api/v1/procs
func (h *handler) Procs(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, application.ToProcsResponse(h.snap))
}

// Cores handles GET /api/v1/cores
func (h *handler) Cores(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, application.ToCoresResponse(h.snap))
}

// Net handles GET /api/v1/net
func (h *handler) Net(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, application.ToNetResponse(h.snap))
}

// Overview handles GET /, the combined pretty-printed document.
func (h *handler) Overview(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "    ")
	enc.Encode(application.ToOverviewResponse(h.snap))
}

// respondJSON sends a JSON response
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
