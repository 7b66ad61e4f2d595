package endpoints

import (
	"github.com/doodlesbykumbi/lecture-eval/pkg/server"
)

// RegisterAll registers all API endpoints on the server
func RegisterAll(srv *server.Server) error {
	RegisterRootEndpoint(srv)
	RegisterUsersEndpoints(srv)
	RegisterLecturersEndpoints(srv)
	RegisterEvaluationsEndpoints(srv)
	RegisterStatusEndpoints(srv)
	return RegisterDocsEndpoint(srv)
}
