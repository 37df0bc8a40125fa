// Package handlers provides HTTP handlers for the sampling pipeline.
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/aristath/annealer/internal/modules/ising"
	"github.com/aristath/annealer/internal/modules/runs"
	"github.com/aristath/annealer/internal/modules/sampling"
	"github.com/aristath/annealer/internal/modules/simulation"
)

// Handler handles sampling HTTP requests
type Handler struct {
	service *sampling.Service
	repo    *runs.Repository
	log     zerolog.Logger
}

// NewHandler creates a new sampling handler. repo may be nil to disable run
// recording.
func NewHandler(service *sampling.Service, repo *runs.Repository, log zerolog.Logger) *Handler {
	return &Handler{
		service: service,
		repo:    repo,
		log:     log.With().Str("handler", "sampling").Logger(),
	}
}

// QuadraticTerm is one coupling in a sample request.
type QuadraticTerm struct {
	I     int     `json:"i"`
	J     int     `json:"j"`
	Value float64 `json:"value"`
}

// SampleRequest describes a problem plus optional parameter overrides.
// Omitted parameters take the declared defaults.
type SampleRequest struct {
	Vartype      string             `json:"vartype"`
	NumVariables int                `json:"num_variables"`
	Linear       map[string]float64 `json:"linear"`
	Quadratic    []QuadraticTerm    `json:"quadratic"`
	Offset       float64            `json:"offset"`

	NumReads       *int     `json:"num_reads,omitempty"`
	AnnealingTime  *float64 `json:"annealing_time,omitempty"`
	Schedule       *string  `json:"annealing_schedule,omitempty"`
	Steps          *int     `json:"steps,omitempty"`
	Order          *int     `json:"order,omitempty"`
	MeanTol        *float64 `json:"mean_tol,omitempty"`
	MaxTol         *float64 `json:"max_tol,omitempty"`
	IterationLimit *int     `json:"iteration_limit,omitempty"`
	StateSteps     *int     `json:"state_steps,omitempty"`
}

// HandleSample handles POST /api/sample
func (h *Handler) HandleSample(w http.ResponseWriter, r *http.Request) {
	var req SampleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log.Error().Err(err).Msg("Failed to decode request body")
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	problem, err := req.toProblem()
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	params := req.toParams()

	collection, err := h.service.Sample(problem, params)
	if err != nil {
		h.writeSamplingError(w, err)
		return
	}

	if h.repo != nil {
		run := runs.FromCollection(collection, problem.NumVariables, params.NumReads,
			params.AnnealingTime, params.Schedule)
		if err := h.repo.Save(run); err != nil {
			h.log.Warn().Err(err).Str("run_id", run.ID).Msg("Failed to record run")
		}
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"data": collection,
		"metadata": map[string]interface{}{
			"timestamp": time.Now().Format(time.RFC3339),
		},
	})
}

// writeSamplingError maps pipeline failures to HTTP status codes.
func (h *Handler) writeSamplingError(w http.ResponseWriter, err error) {
	h.log.Error().Err(err).Msg("Sampling failed")

	switch {
	case errors.Is(err, ising.ErrModelExtraction):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, simulation.ErrConvergence):
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
	case errors.Is(err, simulation.ErrSimulation), errors.Is(err, sampling.ErrDimension):
		http.Error(w, err.Error(), http.StatusInternalServerError)
	default:
		http.Error(w, err.Error(), http.StatusBadRequest)
	}
}

// toProblem converts the request body into a problem model.
func (req *SampleRequest) toProblem() (ising.Problem, error) {
	vartype := ising.Vartype(req.Vartype)
	if req.Vartype == "" {
		vartype = ising.Spin
	}

	linear := make(map[int]float64, len(req.Linear))
	for key, value := range req.Linear {
		index, err := strconv.Atoi(key)
		if err != nil {
			return ising.Problem{}, errors.New("linear bias keys must be integer variable indices")
		}
		linear[index] = value
	}

	quadratic := make(map[ising.Pair]float64, len(req.Quadratic))
	for _, term := range req.Quadratic {
		quadratic[ising.NewPair(term.I, term.J)] += term.Value
	}

	return ising.Problem{
		Vartype:      vartype,
		NumVariables: req.NumVariables,
		Linear:       linear,
		Quadratic:    quadratic,
		Offset:       req.Offset,
	}, nil
}

// toParams merges request overrides onto the defaults.
func (req *SampleRequest) toParams() simulation.Params {
	params := simulation.DefaultParams()
	if req.NumReads != nil {
		params.NumReads = *req.NumReads
	}
	if req.AnnealingTime != nil {
		params.AnnealingTime = *req.AnnealingTime
	}
	if req.Schedule != nil {
		params.Schedule = *req.Schedule
	}
	if req.Steps != nil {
		params.Steps = *req.Steps
	}
	if req.Order != nil {
		params.Order = *req.Order
	}
	if req.MeanTol != nil {
		params.MeanTol = *req.MeanTol
	}
	if req.MaxTol != nil {
		params.MaxTol = *req.MaxTol
	}
	if req.IterationLimit != nil {
		params.IterationLimit = *req.IterationLimit
	}
	if req.StateSteps != nil {
		params.StateSteps = *req.StateSteps
	}
	return params
}

// writeJSON writes a JSON response
func (h *Handler) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode response")
	}
}
