package supplier

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

const serviceName = "supplier"

var resultSchema = schema.MustCompile("supplier_result", `{
  "type": "object",
  "required": ["supplierId", "total_orders", "fulfilled_orders", "on_time_orders",
               "fill_rate", "on_time_rate", "defect_rate", "score", "grade",
               "lead_time_p50_days", "lead_time_p95_days", "confidence", "freshness"],
  "properties": {
    "supplierId": {"type": "string", "minLength": 1},
    "total_orders": {"type": "integer", "minimum": 0},
    "fulfilled_orders": {"type": "integer", "minimum": 0},
    "on_time_orders": {"type": "integer", "minimum": 0},
    "fill_rate": {"type": "number", "minimum": 0, "maximum": 1},
    "on_time_rate": {"type": "number", "minimum": 0, "maximum": 1},
    "defect_rate": {"type": "number", "minimum": 0, "maximum": 1},
    "open_alerts": {"type": "integer", "minimum": 0, "maximum": 4},
    "score": {"type": "number", "minimum": 0, "maximum": 100},
    "grade": {"enum": ["A", "B", "C", "D", "F"]},
    "lead_time_p50_days": {"type": "number", "minimum": 1, "maximum": 60},
    "lead_time_p95_days": {"type": "number", "minimum": 1, "maximum": 60},
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
	r.Get("/suppliers/{supplierID}/score", h.handleScore)
}

func (h *Handler) handleScore(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	start := time.Now()

	supplierID := chi.URLParam(r, "supplierID")
	if supplierID == "" || len(supplierID) > 128 {
		h.metrics.Observe(serviceName, "bad_request", time.Since(start))
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "supplier id must be 1-128 characters"))
		return
	}

	known, err := h.directory.Exists(ctx, "supplier", supplierID)
	if err != nil {
		h.logger.ErrorContext(ctx, "directory check failed",
			"request_id", requestID, "supplier_id", supplierID, "error", err)
		h.metrics.Observe(serviceName, "error", time.Since(start))
		httputil.WriteError(w, dErrors.New(dErrors.CodeInternal, "directory unavailable"))
		return
	}
	if !known {
		h.metrics.Observe(serviceName, "not_found", time.Since(start))
		httputil.WriteError(w, dErrors.New(dErrors.CodeNotFound, "unknown supplier"))
		return
	}

	result := h.service.Score(ctx, supplierID)

	body, err := schema.MarshalValidated(resultSchema, result)
	if err != nil {
		h.logger.ErrorContext(ctx, "response failed schema validation",
			"request_id", requestID, "supplier_id", supplierID, "error", err)
		h.metrics.Observe(serviceName, "error", time.Since(start))
		httputil.WriteError(w, dErrors.New(dErrors.CodeInternal, "response validation failed"))
		return
	}

	if h.audit != nil {
		if err := h.audit.Emit(ctx, audit.Event{
			Service:        serviceName,
			Key:            supplierID,
			Classification: result.Grade,
		}); err != nil {
			h.logger.WarnContext(ctx, "audit emit failed", "request_id", requestID, "error", err)
		}
	}

	h.logger.InfoContext(ctx, "supplier scored",
		"request_id", requestID,
		"supplier_id", supplierID,
		"grade", result.Grade,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	h.metrics.Observe(serviceName, "ok", time.Since(start))
	httputil.WriteRawJSON(w, http.StatusOK, body)
}
