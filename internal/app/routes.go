package app

import (
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RegisterRoutes registers all backend endpoints.
func RegisterRoutes(r *mux.Router, deps *ServerDependencies) {

	// Events
	r.HandleFunc("/events", deps.EventHandler.ListEvents).Methods("GET")
	r.HandleFunc("/events", deps.EventHandler.CreateEvent).Methods("POST")
	r.HandleFunc("/events/{eventId}", deps.EventHandler.GetEvent).Methods("GET")
	r.HandleFunc("/events/{eventId}", deps.EventHandler.UpdateEvent).Methods("PUT")
	r.HandleFunc("/events/{eventId}", deps.EventHandler.DeleteEvent).Methods("DELETE")

	// Metrics
	r.Handle("/metrics", promhttp.Handler()).Methods("GET")
}
