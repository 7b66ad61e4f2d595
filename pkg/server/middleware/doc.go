// Package middleware provides the HTTP middleware of the lecture-eval server.
//
//   - RequestID: assigns or propagates an X-Request-Id per request
//   - AccessLog: structured access logging through zap
//   - Recover: converts handler panics into 500 responses
//   - AdminTokenAuthenticator: HS256 bearer tokens guarding administrative
//     routes when an admin token secret is configured
package middleware
