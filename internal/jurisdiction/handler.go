package jurisdiction

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

const serviceName = "jurisdiction"

var resultSchema = schema.MustCompile("jurisdiction_result", `{
  "type": "object",
  "required": ["code", "risk_score", "risk_grade", "factors", "watchAgencies", "freshness"],
  "properties": {
    "code": {"type": "string", "pattern": "^[A-Z]{2}$"},
    "risk_score": {"type": "number", "minimum": 0, "maximum": 100},
    "risk_grade": {"enum": ["low", "standard", "elevated", "high", "prohibitive"]},
    "factors": {"type": "array", "minItems": 4, "maxItems": 4},
    "watchAgencies": {"type": "array", "maxItems": 2, "items": {"type": "string"}},
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
	r.Get("/jurisdictions/{code}/risk", h.handleAssess)
}

func isAlpha2(code string) bool {
	if len(code) != 2 {
		return false
	}
	for i := 0; i < 2; i++ {
		if code[i] < 'A' || code[i] > 'Z' {
			return false
		}
	}
	return true
}

func (h *Handler) handleAssess(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	start := time.Now()

	code := strings.ToUpper(chi.URLParam(r, "code"))
	if !isAlpha2(code) {
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

	result := h.service.Assess(ctx, code)

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
			Classification: result.RiskGrade,
		}); err != nil {
			h.logger.WarnContext(ctx, "audit emit failed", "request_id", requestID, "error", err)
		}
	}

	h.logger.InfoContext(ctx, "jurisdiction assessed",
		"request_id", requestID,
		"code", code,
		"risk_grade", result.RiskGrade,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	h.metrics.Observe(serviceName, "ok", time.Since(start))
	httputil.WriteRawJSON(w, http.StatusOK, body)
}
