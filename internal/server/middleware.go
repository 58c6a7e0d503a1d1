package server

import (
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/citemap/pkg/observability"
)

// requestLogger logs every request and reports it to the server hooks.
func requestLogger(logger *log.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			hooks := observability.Server()
			ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)

			hooks.OnRequest(r.Context(), r.Method, r.URL.Path)
			next.ServeHTTP(ww, r)

			route := r.URL.Path
			if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
				route = rctx.RoutePattern()
			}
			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			elapsed := time.Since(start)
			hooks.OnResponse(r.Context(), r.Method, route, status, elapsed)

			logger.Info("http request",
				"method", r.Method,
				"route", route,
				"status", status,
				"bytes", ww.BytesWritten(),
				"duration", elapsed,
				"request_id", chimiddleware.GetReqID(r.Context()),
				"remote", r.RemoteAddr)
		})
	}
}

// limitBody caps the request body at n bytes.
func limitBody(n int64) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r.Body = http.MaxBytesReader(w, r.Body, n)
			next.ServeHTTP(w, r)
		})
	}
}
