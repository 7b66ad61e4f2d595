package endpoints

import (
	"encoding/json"
	"net"
	"net/http"

	"go.uber.org/zap"

	"github.com/doodlesbykumbi/lecture-eval/pkg/server/middleware"
)

// DetailResponse is the body of every error response
type DetailResponse struct {
	Detail string `json:"detail"`
}

// MessageResponse is the body of simple acknowledgements
type MessageResponse struct {
	Message string `json:"message"`
}

func respondWithDetail(w http.ResponseWriter, code int, detail string) {
	respondWithJSON(w, code, DetailResponse{Detail: detail})
}

func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, _ := json.Marshal(payload)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = w.Write(response)
}

// respondWithInternalError logs err and answers a generic 500
func respondWithInternalError(w http.ResponseWriter, r *http.Request, log *zap.Logger, err error) {
	log.Error("request failed",
		zap.String("path", r.URL.Path),
		zap.String("request_id", middleware.RequestIDFromContext(r.Context())),
		zap.Error(err),
	)
	respondWithDetail(w, http.StatusInternalServerError, "Internal Server Error")
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
