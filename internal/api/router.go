package api

import (
	"geodistance-service/internal/api/handlers"
	"geodistance-service/internal/ports"
	"net/http"

	"github.com/rs/zerolog"
)

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
// cache may be nil.
func NewRouter(
	repo ports.WayRepository,
	cache ports.LengthCache,
	provider ports.DistanceProvider,
	logger zerolog.Logger,
) http.Handler {
	mux := http.NewServeMux()

	wayHandler := &handlers.WayHandler{Repo: repo, Cache: cache}
	tourHandler := &handlers.TourHandler{Provider: provider}

	mux.HandleFunc("/health", handlers.Health)
	mux.HandleFunc("/distance", handlers.Distance)
	mux.HandleFunc("/length", handlers.Length)
	mux.HandleFunc("/ways", wayHandler.List)
	mux.HandleFunc("/ways/{id}/length", wayHandler.Length)
	mux.HandleFunc("/tours", tourHandler.Plan)

	return loggingMiddleware(logger, mux)
}
