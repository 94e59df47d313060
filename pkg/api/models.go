package api

import "github.com/gilchrisn/random-walk-controversy/pkg/rwc"

// APIResponse is the envelope of every JSON response
type APIResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// EdgeRequest is one directed edge of a request graph
type EdgeRequest struct {
	From   string   `json:"from"`
	To     string   `json:"to"`
	Weight *float64 `json:"weight,omitempty"`
}

// ComputeRequest is the body of POST /api/v1/rwc
type ComputeRequest struct {
	Edges      []EdgeRequest `json:"edges"`
	Side1      []string      `json:"side1"`
	Side2      []string      `json:"side2"`
	Percent    float64       `json:"percent"`
	N          int           `json:"n"`
	Seed       *int64        `json:"seed,omitempty"`
	MaxWorkers int           `json:"max_workers,omitempty"`
	MaxSteps   int           `json:"max_steps,omitempty"`
}

// ComputeResponse is the data of a successful computation
type ComputeResponse struct {
	RunID           string          `json:"run_id"`
	Report          rwc.Report      `json:"report"`
	Simulations     int             `json:"simulations"`
	Side1SampleSize int             `json:"side1_sample_size"`
	Side2SampleSize int             `json:"side2_sample_size"`
	RuntimeMS       int64           `json:"runtime_ms"`
	Diagnostics     rwc.Diagnostics `json:"diagnostics"`
}

// HealthResponse is the data of GET /api/v1/health
type HealthResponse struct {
	Status string `json:"status"`
}
