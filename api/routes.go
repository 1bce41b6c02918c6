package main

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
)

func (app *application) routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /events", app.listEvents)
	mux.HandleFunc("POST /events", app.createEvent)
	mux.HandleFunc("GET /events/{id}", app.getEvent)
	mux.HandleFunc("PUT /events/{id}", app.updateEvent)
	mux.HandleFunc("DELETE /events/{id}", app.deleteEvent)
	mux.HandleFunc("GET /search", app.search)
	mux.HandleFunc("GET /search.ics", app.searchCalendar)
	mux.HandleFunc("GET /dashboard", app.dashboard)
	mux.Handle("GET /metrics", promhttp.Handler())

	return logRequests(mux)
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (sr *statusRecorder) WriteHeader(code int) {
	sr.status = code
	sr.ResponseWriter.WriteHeader(code)
}

func logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		log.WithFields(log.Fields{
			"method":   r.Method,
			"path":     r.URL.Path,
			"status":   rec.status,
			"duration": time.Since(start),
		}).Debug("request")
	})
}
