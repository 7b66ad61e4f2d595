package server

import (
	"net/http"
	"strings"

	"github.com/gorilla/handlers"

	"github.com/doodlesbykumbi/lecture-eval/pkg/server/middleware"
)

// corsHandler allows every method and request header a browser asks for.
// Origins come from the configuration. A "*" entry accepts any origin and
// echoes it back, since a literal "*" is refused on credentialed requests.
func corsHandler(origins []string) func(http.Handler) http.Handler {
	anyOrigin := false
	for _, o := range origins {
		if o == "*" {
			anyOrigin = true
			break
		}
	}

	options := func(method string, requestHeaders []string) []handlers.CORSOption {
		methods := []string{http.MethodGet, http.MethodHead, http.MethodPost, http.MethodOptions}
		if method != "" {
			methods = append(methods, method)
		}
		opts := []handlers.CORSOption{
			handlers.AllowedMethods(methods),
			handlers.AllowedHeaders(append([]string{"Content-Type", "Authorization", middleware.RequestIDHeader}, requestHeaders...)),
			handlers.ExposedHeaders([]string{middleware.RequestIDHeader}),
			handlers.AllowCredentials(),
		}
		if anyOrigin {
			return append(opts, handlers.AllowedOriginValidator(func(string) bool { return true }))
		}
		return append(opts, handlers.AllowedOrigins(origins))
	}

	return func(next http.Handler) http.Handler {
		simple := handlers.CORS(options("", nil)...)(next)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if anyOrigin && r.Header.Get("Origin") != "" {
				w.Header().Add("Vary", "Origin")
			}
			method := r.Header.Get("Access-Control-Request-Method")
			if r.Method != http.MethodOptions || method == "" {
				simple.ServeHTTP(w, r)
				return
			}
			// Preflight: allow exactly what was asked for.
			requested := strings.Split(r.Header.Get("Access-Control-Request-Headers"), ",")
			handlers.CORS(options(method, requested)...)(next).ServeHTTP(w, r)
		})
	}
}
