package geodemand

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

const serviceName = "geodemand"

var resultSchema = schema.MustCompile("geodemand_result", `{
  "type": "object",
  "required": ["region", "categories", "composite_index", "demand_level",
               "index_low", "index_high", "confidence", "freshness"],
  "properties": {
    "region": {"type": "string", "minLength": 1},
    "categories": {
      "type": "array",
      "minItems": 1,
      "items": {
        "type": "object",
        "required": ["category", "index"],
        "properties": {
          "category": {"type": "string"},
          "index": {"type": "number", "minimum": 0, "maximum": 1}
        }
      }
    },
    "composite_index": {"type": "number", "minimum": 0, "maximum": 1},
    "demand_level": {"enum": ["soft", "moderate", "strong", "surging"]},
    "index_low": {"type": "number", "minimum": 0, "maximum": 1},
    "index_high": {"type": "number", "minimum": 0, "maximum": 1},
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
	r.Get("/geo/{region}/demand", h.handleIndex)
}

func (h *Handler) handleIndex(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	start := time.Now()

	region := chi.URLParam(r, "region")
	if region == "" || len(region) > 64 {
		h.metrics.Observe(serviceName, "bad_request", time.Since(start))
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "region must be 1-64 characters"))
		return
	}

	known, err := h.directory.Exists(ctx, "region", region)
	if err != nil {
		h.logger.ErrorContext(ctx, "directory check failed",
			"request_id", requestID, "region", region, "error", err)
		h.metrics.Observe(serviceName, "error", time.Since(start))
		httputil.WriteError(w, dErrors.New(dErrors.CodeInternal, "directory unavailable"))
		return
	}
	if !known {
		h.metrics.Observe(serviceName, "not_found", time.Since(start))
		httputil.WriteError(w, dErrors.New(dErrors.CodeNotFound, "unknown region"))
		return
	}

	result := h.service.Index(ctx, region)

	body, err := schema.MarshalValidated(resultSchema, result)
	if err != nil {
		h.logger.ErrorContext(ctx, "response failed schema validation",
			"request_id", requestID, "region", region, "error", err)
		h.metrics.Observe(serviceName, "error", time.Since(start))
		httputil.WriteError(w, dErrors.New(dErrors.CodeInternal, "response validation failed"))
		return
	}

	if h.audit != nil {
		if err := h.audit.Emit(ctx, audit.Event{
			Service:        serviceName,
			Key:            region,
			Classification: result.DemandLevel,
		}); err != nil {
			h.logger.WarnContext(ctx, "audit emit failed", "request_id", requestID, "error", err)
		}
	}

	h.logger.InfoContext(ctx, "demand indexed",
		"request_id", requestID,
		"region", region,
		"demand_level", result.DemandLevel,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	h.metrics.Observe(serviceName, "ok", time.Since(start))
	httputil.WriteRawJSON(w, http.StatusOK, body)
}
