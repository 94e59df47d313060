package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/gilchrisn/random-walk-controversy/pkg/rwc"
)

// maxBodyBytes bounds the size of a request graph
const maxBodyBytes = 64 << 20

// Handlers contains HTTP request handlers
type Handlers struct {
	config *rwc.Config
	logger zerolog.Logger
}

// NewHandlers creates new API handlers. Requests fall back to config for
// parameters they leave unset (seed, workers, step bound, timeout).
func NewHandlers(config *rwc.Config, logger zerolog.Logger) *Handlers {
	return &Handlers{
		config: config,
		logger: logger,
	}
}

// HealthCheck reports that the service is up
func (h *Handlers) HealthCheck(w http.ResponseWriter, r *http.Request) {
	WriteSuccessResponse(w, "ok", HealthResponse{Status: "healthy"})
}

// ComputeRWC builds the request graph and runs an RWC estimation synchronously
func (h *Handlers) ComputeRWC(w http.ResponseWriter, r *http.Request) {
	var req ComputeRequest
	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		WriteErrorResponse(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	if limit := h.config.ServerMaxSimulations(); req.N > limit {
		err := fmt.Errorf("%w: n=%d exceeds the server limit of %d simulations", rwc.ErrInvalidParameter, req.N, limit)
		WriteErrorResponse(w, http.StatusBadRequest, "Too many simulations", err)
		return
	}

	graph, err := buildGraph(req.Edges)
	if err != nil {
		WriteErrorResponse(w, http.StatusBadRequest, "Invalid graph", err)
		return
	}

	opts := append(h.config.Options(), rwc.WithLogger(h.logger))
	if req.Seed != nil {
		opts = append(opts, rwc.WithSeed(*req.Seed))
	}
	if req.MaxWorkers > 0 {
		opts = append(opts, rwc.WithMaxWorkers(req.MaxWorkers))
	}
	if req.MaxSteps > 0 {
		opts = append(opts, rwc.WithMaxSteps(req.MaxSteps))
	}

	result, err := rwc.Compute(r.Context(), graph, req.Side1, req.Side2, req.Percent, req.N, opts...)
	if err != nil {
		h.logger.Error().Err(err).Msg("RWC request failed")
		WriteErrorResponse(w, statusForError(err), "RWC computation failed", err)
		return
	}

	WriteSuccessResponse(w, "RWC computed", ComputeResponse{
		RunID:           result.RunID,
		Report:          result.Report(),
		Simulations:     result.Simulations,
		Side1SampleSize: result.Side1SampleSize,
		Side2SampleSize: result.Side2SampleSize,
		RuntimeMS:       result.RuntimeMS,
		Diagnostics:     result.Diagnostics,
	})
}

func buildGraph(edges []EdgeRequest) (*rwc.Graph, error) {
	if len(edges) == 0 {
		return nil, fmt.Errorf("no edges given")
	}

	graph := rwc.NewGraph()
	for i, e := range edges {
		if e.From == "" || e.To == "" {
			return nil, fmt.Errorf("edge %d: empty node identifier", i)
		}
		weight := 1.0
		if e.Weight != nil {
			weight = *e.Weight
		}
		if err := graph.AddEdge(e.From, e.To, weight); err != nil {
			return nil, fmt.Errorf("edge %d: %w", i, err)
		}
	}
	return graph, nil
}

// statusForError maps computation errors to HTTP status codes
func statusForError(err error) int {
	switch {
	case errors.Is(err, rwc.ErrInvalidParameter),
		errors.Is(err, rwc.ErrOverlappingPartitions),
		errors.Is(err, rwc.ErrUnknownNode):
		return http.StatusBadRequest
	case errors.Is(err, rwc.ErrNonConvergentWalk):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
