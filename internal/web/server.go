// Package web serves the ephemeral message view: one page per stored
// message, reachable only by its opaque id, gone when the TTL runs out.
package web

import (
	"context"
	"crypto/tls"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/microcosm-cc/bluemonday"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/90umut/mailtrash/internal/logging"
	"github.com/90umut/mailtrash/internal/models"
	"github.com/90umut/mailtrash/internal/store"
)

// Server hosts the message view, the status page and the operational
// endpoints on a single listener.
type Server struct {
	store   *store.Store
	domain  string
	policy  *bluemonday.Policy
	httpSrv *http.Server
	useTLS  bool
}

// NewServer wires the routes and middleware. When cfg.Web.SanitizeHTML is
// set, HTML bodies pass through a UGC sanitizer before rendering; the
// default serves them untouched.
func NewServer(cfg *models.Config, st *store.Store, tlsConfig *tls.Config) *Server {
	s := &Server{
		store:  st,
		domain: cfg.Domain,
		useTLS: tlsConfig != nil,
	}
	if cfg.Web.SanitizeHTML {
		s.policy = bluemonday.UGCPolicy()
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)

	r.Get("/", s.handleIndex)
	r.Get("/healthz", s.handleHealth)
	r.Get("/view/{id}", s.handleView)
	r.Handle("/metrics", promhttp.Handler())

	s.httpSrv = &http.Server{
		Addr:         cfg.Web.Listen,
		Handler:      r,
		TLSConfig:    tlsConfig,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	return s
}

// Start blocks serving requests until Shutdown is called or the listener
// fails. With TLS material configured it terminates HTTPS directly.
func (s *Server) Start() error {
	if s.useTLS {
		return s.httpSrv.ListenAndServeTLS("", "")
	}
	return s.httpSrv.ListenAndServe()
}

// Shutdown drains in-flight requests and stops the listener.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpSrv.Shutdown(ctx)
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		logging.Log.WithFields(logrus.Fields{
			"request_id": middleware.GetReqID(r.Context()),
			"method":     r.Method,
			"path":       r.URL.Path,
			"status":     ww.Status(),
			"duration":   time.Since(start).String(),
		}).Debug("HTTP request")
	})
}
