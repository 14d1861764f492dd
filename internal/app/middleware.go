package app

import (
	"net/http"
	"strconv"
	"time"

	"github.com/eventdesk/eventdesk/internal/metrics"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

// SetupMiddleware wires all HTTP middlewares for the backend.
func SetupMiddleware(r *mux.Router) {

	// Request logging and metrics, counted per route template rather than per path
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			started := time.Now()
			recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(recorder, req)

			route := req.URL.Path
			if current := mux.CurrentRoute(req); current != nil {
				if template, err := current.GetPathTemplate(); err == nil {
					route = template
				}
			}
			metrics.ObserveServerRequest(req.Method, route, strconv.Itoa(recorder.status))
			log.WithFields(log.Fields{
				"method":   req.Method,
				"path":     req.URL.Path,
				"status":   recorder.status,
				"duration": time.Since(started),
			}).Debug("Request handled")
		})
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}
