package handlers

import (
	"encoding/json"
	"net/http"

	"sched-sim/core/engine"
	"sched-sim/core/metrics"
	"sched-sim/core/models"
	"sched-sim/core/policy"
	"sched-sim/core/repository"
	"sched-sim/core/spec"

	"github.com/gorilla/mux"
)

// SimulationHandler handles simulation-related HTTP requests
type SimulationHandler struct {
	runRepo *repository.RunRepository
}

// NewSimulationHandler creates a new simulation handler
func NewSimulationHandler(runRepo *repository.RunRepository) *SimulationHandler {
	return &SimulationHandler{runRepo: runRepo}
}

// SubmitSimulationRequest carries the YAML simulation spec.
type SubmitSimulationRequest struct {
	SpecYAML string `json:"spec_yaml"`
}

// SubmitSimulationResponse is returned after a run completes.
type SubmitSimulationResponse struct {
	ID        string                   `json:"id"`
	Summary   models.ComparisonSummary `json:"summary"`
	TaskStats []models.TaskStatistics  `json:"task_stats"`
}

// SubmitSimulation handles POST /v1/simulations: it parses the spec,
// runs the simulation synchronously, persists the results, and returns
// the summary. Configuration errors map to 400.
func (h *SimulationHandler) SubmitSimulation(w http.ResponseWriter, r *http.Request) {
	var req SubmitSimulationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	sim, err := spec.Parse([]byte(req.SpecYAML))
	if err != nil {
		http.Error(w, "Invalid simulation spec: "+err.Error(), http.StatusBadRequest)
		return
	}
	pol, err := policy.ForName(sim.Policy, sim.TaskSet)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	res, err := engine.RunSimulationSeeded(sim.TaskSet, pol, sim.Horizon, sim.Seed)
	if err != nil {
		http.Error(w, "Simulation failed: "+err.Error(), http.StatusBadRequest)
		return
	}

	id, err := h.runRepo.SaveRun(res)
	if err != nil {
		http.Error(w, "Failed to persist run: "+err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusCreated, SubmitSimulationResponse{
		ID:        id,
		Summary:   res.Summary,
		TaskStats: res.TaskStats,
	})
}

// CompareResponse is one entry of the comparison result.
type CompareResponse struct {
	ID      string                   `json:"id"`
	Summary models.ComparisonSummary `json:"summary"`
}

// CompareSimulations handles POST /v1/simulations/compare: it runs all
// three policies over the same spec and persists each run.
func (h *SimulationHandler) CompareSimulations(w http.ResponseWriter, r *http.Request) {
	var req SubmitSimulationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	sim, err := spec.Parse([]byte(req.SpecYAML))
	if err != nil {
		http.Error(w, "Invalid simulation spec: "+err.Error(), http.StatusBadRequest)
		return
	}

	results, err := engine.Compare(sim.TaskSet, sim.Horizon, sim.Seed)
	if err != nil {
		http.Error(w, "Comparison failed: "+err.Error(), http.StatusBadRequest)
		return
	}

	var resp []CompareResponse
	for _, res := range results {
		id, err := h.runRepo.SaveRun(res)
		if err != nil {
			http.Error(w, "Failed to persist run: "+err.Error(), http.StatusInternalServerError)
			return
		}
		resp = append(resp, CompareResponse{ID: id, Summary: res.Summary})
	}
	writeJSON(w, http.StatusCreated, resp)
}

// GetRun handles GET /v1/simulations/{id}
func (h *SimulationHandler) GetRun(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	info, err := h.runRepo.GetRun(id)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, info)
}

// ListRuns handles GET /v1/simulations
func (h *SimulationHandler) ListRuns(w http.ResponseWriter, r *http.Request) {
	runs, err := h.runRepo.ListRuns(100)
	if err != nil {
		http.Error(w, "Failed to list runs: "+err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, runs)
}

// GetRecords handles GET /v1/simulations/{id}/records
func (h *SimulationHandler) GetRecords(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	records, err := h.runRepo.GetRecords(id)
	if err != nil {
		http.Error(w, "Failed to load records: "+err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, records)
}

// GetStatistics handles GET /v1/simulations/{id}/statistics. The
// statistics are re-derived from the persisted job records rather than
// read from the runs table, so the stored rows stay authoritative.
func (h *SimulationHandler) GetStatistics(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	info, err := h.runRepo.GetRun(id)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	records, err := h.runRepo.GetRecords(id)
	if err != nil {
		http.Error(w, "Failed to load records: "+err.Error(), http.StatusInternalServerError)
		return
	}

	collector := metrics.NewCollectorFromRecords(records)
	writeJSON(w, http.StatusOK, SubmitSimulationResponse{
		ID:        id,
		Summary:   collector.Summary(info.Summary.Policy, info.Summary.Horizon),
		TaskStats: collector.TaskStatistics(),
	})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
