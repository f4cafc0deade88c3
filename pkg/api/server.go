// Package api serves decoded OCSD telemetry over HTTP: a JSON API for the
// header and device slots, plus a Prometheus endpoint exporting sensor
// readings and update counters.
package api

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRouter builds the full route table for the server.
func NewRouter(server *Server, metrics *Metrics) chi.Router {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Prometheus metrics endpoint (unprotected for scraping)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		// API key authentication only when a key is configured.
		if server.config.APIKey != "" {
			r.Use(apiKeyMiddleware(server.config.APIKey))
		}

		r.Get("/health", metrics.InstrumentHandler("GET", "/api/v1/health", server.handleHealth))
		r.Get("/header", metrics.InstrumentHandler("GET", "/api/v1/header", server.handleHeader))
		r.Get("/devices", metrics.InstrumentHandler("GET", "/api/v1/devices", server.handleListDevices))
		r.Get("/devices/{slot}", metrics.InstrumentHandler("GET", "/api/v1/devices/{slot}", server.handleGetDevice))
	})

	return r
}

// StartServer starts the HTTP server with all routes configured. It blocks
// until the listener fails.
func StartServer(buffer BufferReader, config ServerConfig) error {
	metrics := NewMetrics()
	server := NewServer(buffer, config, metrics)
	r := NewRouter(server, metrics)

	log.Printf("telemetry server listening on %s", config.Listen)
	log.Printf("metrics available at http://%s/metrics", config.Listen)
	return http.ListenAndServe(config.Listen, r)
}
