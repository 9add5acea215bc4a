package reputation

import (
	"log/slog"
	"net/http"
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

const serviceName = "reputation"

var resultSchema = schema.MustCompile("reputation_result", `{
  "type": "object",
  "required": ["handle", "first_seen", "last_active", "mentions", "corroborations",
               "disputes", "score", "tier", "confidence", "freshness"],
  "properties": {
    "handle": {"type": "string", "minLength": 1},
    "first_seen": {"type": "string"},
    "last_active": {"type": "string"},
    "mentions": {"type": "integer", "minimum": 0},
    "corroborations": {"type": "integer", "minimum": 0},
    "disputes": {"type": "integer", "minimum": 0},
    "score": {"type": "number", "minimum": 0, "maximum": 100},
    "tier": {"enum": ["unproven", "emerging", "established", "trusted"]},
    "confidence": {"type": "number", "minimum": 0, "maximum": 1},
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
	r.Get("/identity/{handle}/reputation", h.handleProfile)
}

func (h *Handler) handleProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	start := time.Now()

	handle := chi.URLParam(r, "handle")
	if handle == "" || len(handle) > 128 {
		h.metrics.Observe(serviceName, "bad_request", time.Since(start))
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "handle must be 1-128 characters"))
		return
	}

	known, err := h.directory.Exists(ctx, "identity", handle)
	if err != nil {
		h.logger.ErrorContext(ctx, "directory check failed",
			"request_id", requestID, "handle", handle, "error", err)
		h.metrics.Observe(serviceName, "error", time.Since(start))
		httputil.WriteError(w, dErrors.New(dErrors.CodeInternal, "directory unavailable"))
		return
	}
	if !known {
		h.metrics.Observe(serviceName, "not_found", time.Since(start))
		httputil.WriteError(w, dErrors.New(dErrors.CodeNotFound, "unknown identity"))
		return
	}

	result := h.service.Profile(ctx, handle)

	body, err := schema.MarshalValidated(resultSchema, result)
	if err != nil {
		h.logger.ErrorContext(ctx, "response failed schema validation",
			"request_id", requestID, "handle", handle, "error", err)
		h.metrics.Observe(serviceName, "error", time.Since(start))
		httputil.WriteError(w, dErrors.New(dErrors.CodeInternal, "response validation failed"))
		return
	}

	if h.audit != nil {
		if err := h.audit.Emit(ctx, audit.Event{
			Service:        serviceName,
			Key:            handle,
			Classification: result.Tier,
		}); err != nil {
			h.logger.WarnContext(ctx, "audit emit failed", "request_id", requestID, "error", err)
		}
	}

	h.logger.InfoContext(ctx, "reputation profiled",
		"request_id", requestID,
		"handle", handle,
		"tier", result.Tier,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	h.metrics.Observe(serviceName, "ok", time.Since(start))
	httputil.WriteRawJSON(w, http.StatusOK, body)
}
