package endpoints

import (
	"net/http"

	"github.com/doodlesbykumbi/lecture-eval/pkg/server"
)

// RegisterRootEndpoint registers the greeting at /
func RegisterRootEndpoint(s *server.Server) {
	s.Router.HandleFunc("/", handleRoot()).Methods("GET")
}

func handleRoot() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondWithJSON(w, http.StatusOK, MessageResponse{Message: "Hello, guys!"})
	}
}
