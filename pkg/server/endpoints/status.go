package endpoints

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/doodlesbykumbi/lecture-eval/pkg/server"
	"github.com/doodlesbykumbi/lecture-eval/pkg/server/store"
)

const statusCheckTimeout = 3 * time.Second

// StatusResponse represents the response from /status
type StatusResponse struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// RegisterStatusEndpoints registers the status and metrics endpoints
func RegisterStatusEndpoints(s *server.Server) {
	s.Router.HandleFunc("/status", handleStatus(s.HealthStore, s.Logger)).Methods("GET")
	s.Router.Handle("/metrics", s.Metrics.Handler()).Methods("GET")
}

func handleStatus(healthStore store.HealthStore, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), statusCheckTimeout)
		defer cancel()

		if err := healthStore.CheckConnectivity(ctx); err != nil {
			log.Warn("storage connectivity check failed", zap.Error(err))
			respondWithJSON(w, http.StatusServiceUnavailable, StatusResponse{
				Status: "error",
				Error:  "storage connectivity check failed",
			})
			return
		}

		respondWithJSON(w, http.StatusOK, StatusResponse{Status: "ok"})
	}
}
