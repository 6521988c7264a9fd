package router

import (
	"fmt"
	"net"
	"net/http"
	"time"

	"go.uber.org/zap"

	"hellotcp/internal/endpoint"
)

const (
	Greeting = "Hello from Rust server"
	Healthy  = "OK"
)

// NewHandler returns the two fixed routes wrapped in access logging.
func NewHandler(logger *zap.Logger) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, Greeting)
	})
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, Healthy)
	})
	return logging(logger)(mux)
}

// NewServer builds the HTTP server for e. It is not started.
func NewServer(e endpoint.Endpoint, logger *zap.Logger) *http.Server {
	stdLog, err := zap.NewStdLogAt(logger.Named("http"), zap.ErrorLevel)
	if err != nil {
		stdLog = zap.NewStdLog(logger)
	}

	return &http.Server{
		Addr:         e.String(),
		Handler:      NewHandler(logger),
		ErrorLog:     stdLog,
		ConnState:    connLogging(logger.Named("tcp")),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  15 * time.Second,
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func logging(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			defer func() {
				logger.Info("request",
					zap.String("proto", r.Proto),
					zap.String("method", r.Method),
					zap.String("path", r.URL.Path),
					zap.String("remote", r.RemoteAddr),
					zap.Int("status", rec.status),
					zap.Duration("elapsed", time.Since(start)),
				)
			}()
			next.ServeHTTP(rec, r)
		})
	}
}

func connLogging(logger *zap.Logger) func(net.Conn, http.ConnState) {
	return func(conn net.Conn, state http.ConnState) {
		logger.Debug("conn",
			zap.Stringer("remote", conn.RemoteAddr()),
			zap.Stringer("state", state),
		)
	}
}
