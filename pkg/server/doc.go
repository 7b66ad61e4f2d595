// Package server provides the HTTP server for the lecture evaluation API.
//
// It uses gorilla/mux for routing and gorilla/handlers for CORS, access
// logging and panic recovery.
//
// # Server Setup
//
//	srv := server.NewServer(stores, cfg, logger, "0.0.0.0", "8000")
//	endpoints.RegisterAll(srv)
//	if err := srv.Start(); err != nil {
//	    log.Fatal(err)
//	}
//
// # Components
//
// The Server struct holds:
//
//   - Router: HTTP request router
//   - UsersStore, LecturersStore, EvaluationsStore, HealthStore: storage
//   - Metrics: Prometheus collectors
//   - Auditor: audit trail of write operations
//   - AdminToken: optional bearer-token guard for administrative routes
//
// # Endpoints
//
// API endpoints are registered via the endpoints subpackage:
//
//	endpoints.RegisterAll(srv)
//
// This registers:
//
//   - / - Greeting
//   - /register - User registration
//   - /lecturers, /lecturers/{id}, /lecturers/{id}/summary - Lecturers
//   - /evaluate, /evaluations - Evaluations
//   - /status, /metrics, /docs - Operations
package server
