package api

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
)

// SetupRoutes registers the API endpoints on router
func SetupRoutes(router *mux.Router, handlers *Handlers) {
	api := router.PathPrefix("/api/v1").Subrouter()

	api.HandleFunc("/rwc", handlers.ComputeRWC).Methods(http.MethodPost)
	api.HandleFunc("/health", handlers.HealthCheck).Methods(http.MethodGet)

	// Preflight requests are answered by CORSMiddleware
	api.PathPrefix("/").HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}).Methods(http.MethodOptions)
}

// NewRouter creates a router with all routes and middleware installed
func NewRouter(handlers *Handlers, logger zerolog.Logger) *mux.Router {
	router := mux.NewRouter()
	router.Use(RecoveryMiddleware(logger))
	router.Use(LoggingMiddleware(logger))
	router.Use(CORSMiddleware)

	SetupRoutes(router, handlers)
	return router
}
