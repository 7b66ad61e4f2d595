package middleware

import (
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gorilla/handlers"
	"go.uber.org/zap"
)

// AccessLog logs one structured line per request
func AccessLog(log *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return handlers.CustomLoggingHandler(io.Discard, next, func(_ io.Writer, params handlers.LogFormatterParams) {
			log.Info("request",
				zap.String("method", params.Request.Method),
				zap.String("path", params.URL.Path),
				zap.Int("status", params.StatusCode),
				zap.Int("size", params.Size),
				zap.Duration("duration", time.Since(params.TimeStamp)),
				zap.String("remote", params.Request.RemoteAddr),
				zap.String("request_id", RequestIDFromContext(params.Request.Context())),
			)
		})
	}
}

// Recover turns panics into empty 500 responses and logs them
func Recover(log *zap.Logger) func(http.Handler) http.Handler {
	return handlers.RecoveryHandler(
		handlers.RecoveryLogger(recoveryLogger{log: log}),
		handlers.PrintRecoveryStack(false),
	)
}

type recoveryLogger struct {
	log *zap.Logger
}

func (l recoveryLogger) Println(v ...interface{}) {
	l.log.Error("recovered from panic", zap.String("panic", fmt.Sprint(v...)))
}
