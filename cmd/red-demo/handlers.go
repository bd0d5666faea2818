package main

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/Aleph-Alpha/redmetrics/v1/logger"
)

type userResponse struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	RequestID string `json:"request_id"`
}

func newMux(served *prometheus.CounterVec, log logger.Logger) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	mux.HandleFunc("GET /users/{id}", func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.Atoi(r.PathValue("id"))
		if err != nil || id <= 0 || id > 1000 {
			served.WithLabelValues("false").Inc()
			http.Error(w, "user not found", http.StatusNotFound)
			return
		}
		served.WithLabelValues("true").Inc()
		writeJSON(w, log, userResponse{
			ID:        id,
			Name:      "user-" + strconv.Itoa(id),
			RequestID: uuid.NewString(),
		})
	})

	// Every seventh order fails, to give the error rate something to show.
	mux.HandleFunc("POST /orders/{id}", func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.Atoi(r.PathValue("id"))
		if err != nil {
			http.Error(w, "invalid order id", http.StatusBadRequest)
			return
		}
		if id%7 == 0 {
			http.Error(w, "payment provider unavailable", http.StatusBadGateway)
			return
		}
		time.Sleep(time.Duration(id%5) * 20 * time.Millisecond)
		w.WriteHeader(http.StatusAccepted)
	})

	return mux
}

func writeJSON(w http.ResponseWriter, log logger.Logger, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Warn("Failed to write response", err, nil)
	}
}
