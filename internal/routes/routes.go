package routes

import (
	"net/http"

	"tripfront/internal/handlers"
)

// SetupRoutes configures all application routes
func SetupRoutes(pagesHandler *handlers.PagesHandler, tripsHandler *handlers.TripsHandler, healthHandler *handlers.HealthHandler) *http.ServeMux {
	mux := http.NewServeMux()

	// Health check routes
	mux.HandleFunc("/healthz", healthHandler.HealthCheck)
	mux.HandleFunc("/livez", healthHandler.LivenessCheck)
	mux.HandleFunc("/readyz", healthHandler.ReadinessCheck)

	// Trip routes
	mux.HandleFunc("/create", tripsHandler.Create)
	mux.HandleFunc("/join", tripsHandler.Join)
	mux.HandleFunc("/trip/", tripsHandler.Detail)
	mux.HandleFunc("/commit/", tripsHandler.Commit)

	// Root route
	mux.HandleFunc("/", pagesHandler.Index)

	return mux
}
