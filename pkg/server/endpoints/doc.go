// Package endpoints registers the HTTP handlers of the lecture evaluation API
// on a server.Server.
//
// Each endpoint group has a RegisterXEndpoints function that wires routes to
// handler factories (handleX) closing over the stores they need. Error bodies
// follow {"detail": "..."}; request validation failures answer 422 with a list
// of {"loc", "msg", "type"} entries.
package endpoints
