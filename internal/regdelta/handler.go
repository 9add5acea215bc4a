package regdelta

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"veridical/internal/audit"
	"veridical/internal/directory"
	"veridical/internal/platform/metrics"
	dErrors "veridical/pkg/domain-errors"
	"veridical/pkg/platform/httputil"
	"veridical/pkg/requestcontext"
	"veridical/pkg/schema"
)

const serviceName = "regdelta"

var resultSchema = schema.MustCompile("regdelta_result", `{
  "type": "object",
  "required": ["code", "changes", "delta_score", "delta_level", "freshness"],
  "properties": {
    "code": {"type": "string", "pattern": "^[A-Z]{2}$"},
    "changes": {
      "type": "array",
      "maxItems": 5,
      "items": {
        "type": "object",
        "required": ["reference", "agency", "severity", "effective"],
        "properties": {
          "reference": {"type": "string", "pattern": "^RD-[0-9]{5}$"},
          "agency": {"type": "string"},
          "severity": {"enum": ["advisory", "minor", "material", "severe"]},
          "effective": {"type": "string"}
        }
      }
    },
    "delta_score": {"type": "number", "minimum": 0, "maximum": 100},
    "delta_level": {"enum": ["quiet", "routine", "significant", "disruptive"]},
    "freshness": {"type": "object", "required": ["timestamp", "age_seconds", "stale"]}
  }
}`)

type Handler struct {
	service   *Service
	directory directory.Directory
	logger    *slog.Logger
	metrics   *metrics.Metrics
	audit     *audit.Publisher
}

func NewHandler(service *Service, dir directory.Directory, logger *slog.Logger, m *metrics.Metrics, aud *audit.Publisher) *Handler {
	return &Handler{service: service, directory: dir, logger: logger, metrics: m, audit: aud}
}

func (h *Handler) Register(r chi.Router) {
	r.Get("/regulatory/{code}/delta", h.handleDelta)
}

func (h *Handler) handleDelta(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	start := time.Now()

	code := strings.ToUpper(chi.URLParam(r, "code"))
	if len(code) != 2 || strings.ContainsFunc(code, func(c rune) bool { return c < 'A' || c > 'Z' }) {
		h.metrics.Observe(serviceName, "bad_request", time.Since(start))
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "code must be a two-letter jurisdiction code"))
		return
	}

	known, err := h.directory.Exists(ctx, "jurisdiction", code)
	if err != nil {
		h.logger.ErrorContext(ctx, "directory check failed",
			"request_id", requestID, "code", code, "error", err)
		h.metrics.Observe(serviceName, "error", time.Since(start))
		httputil.WriteError(w, dErrors.New(dErrors.CodeInternal, "directory unavailable"))
		return
	}
	if !known {
		h.metrics.Observe(serviceName, "not_found", time.Since(start))
		httputil.WriteError(w, dErrors.New(dErrors.CodeNotFound, "unknown jurisdiction"))
		return
	}

	result := h.service.Delta(ctx, code)

	body, err := schema.MarshalValidated(resultSchema, result)
	if err != nil {
		h.logger.ErrorContext(ctx, "response failed schema validation",
			"request_id", requestID, "code", code, "error", err)
		h.metrics.Observe(serviceName, "error", time.Since(start))
		httputil.WriteError(w, dErrors.New(dErrors.CodeInternal, "response validation failed"))
		return
	}

	if h.audit != nil {
		if err := h.audit.Emit(ctx, audit.Event{
			Service:        serviceName,
			Key:            code,
			Classification: result.DeltaLevel,
		}); err != nil {
			h.logger.WarnContext(ctx, "audit emit failed", "request_id", requestID, "error", err)
		}
	}

	h.logger.InfoContext(ctx, "regulatory delta computed",
		"request_id", requestID,
		"code", code,
		"changes", len(result.Changes),
		"delta_level", result.DeltaLevel,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	h.metrics.Observe(serviceName, "ok", time.Since(start))
	httputil.WriteRawJSON(w, http.StatusOK, body)
}
