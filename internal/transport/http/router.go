// Package httptransport assembles the public router. Handlers stay thin and
// delegate to their services; this package only decides what mounts where
// and which middleware wraps the /v1 subtree.
package httptransport

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"veridical/pkg/platform/httputil"
	"veridical/pkg/platform/middleware/auth"
	"veridical/pkg/platform/middleware/requestid"
	"veridical/pkg/platform/middleware/requesttime"
)

// Registrar is implemented by every service handler.
type Registrar interface {
	Register(r chi.Router)
}

// Options carries router-level wiring.
type Options struct {
	// JWTSigningKey enables bearer auth on /v1 when non-empty.
	JWTSigningKey string
	Logger        *slog.Logger
}

// NewRouter mounts operational endpoints at the root and every service under
// /v1.
func NewRouter(opts Options, services ...Registrar) http.Handler {
	r := chi.NewRouter()
	r.Use(requestid.Middleware)
	r.Use(requesttime.Middleware)

	r.Handle("/metrics", promhttp.Handler())
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/v1", func(v chi.Router) {
		if opts.JWTSigningKey != "" {
			v.Use(auth.Middleware(opts.JWTSigningKey, opts.Logger))
		}
		for _, s := range services {
			s.Register(v)
		}
	})

	return r
}
