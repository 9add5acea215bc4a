package exposure

import (
	"log/slog"
	"net/http"
	"strconv"
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

const serviceName = "exposure"

const (
	defaultMaxHops = 3
	hopLimit       = 6
)

var resultSchema = schema.MustCompile("exposure_result", `{
  "type": "object",
  "required": ["address", "nodes", "edges", "exposure_score", "exposure_level", "confidence", "freshness"],
  "properties": {
    "address": {"type": "string", "minLength": 1},
    "nodes": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["id", "depth"],
        "properties": {
          "id": {"type": "string"},
          "kind": {"type": "string"},
          "depth": {"type": "integer", "minimum": 0},
          "score": {"type": "number", "minimum": 0, "maximum": 1}
        }
      }
    },
    "edges": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["from", "to", "hop", "weight"],
        "properties": {
          "from": {"type": "string"},
          "to": {"type": "string"},
          "type": {"type": "string"},
          "hop": {"type": "integer", "minimum": 1},
          "weight": {"type": "number", "minimum": 0, "maximum": 1}
        }
      }
    },
    "exposure_score": {"type": "number", "minimum": 0, "maximum": 100},
    "exposure_level": {"enum": ["minimal", "moderate", "elevated", "severe"]},
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
	r.Get("/exposure/{address}", h.handleTrace)
}

func (h *Handler) handleTrace(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	start := time.Now()

	address := chi.URLParam(r, "address")
	if address == "" || len(address) > 128 {
		h.metrics.Observe(serviceName, "bad_request", time.Since(start))
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "address must be 1-128 characters"))
		return
	}

	maxHops := defaultMaxHops
	if raw := r.URL.Query().Get("max_hops"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > hopLimit {
			h.metrics.Observe(serviceName, "bad_request", time.Since(start))
			httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "max_hops must be an integer in 1..6"))
			return
		}
		maxHops = n
	}

	threshold := 0.0
	if raw := r.URL.Query().Get("threshold"); raw != "" {
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil || f < 0 || f > 1 {
			h.metrics.Observe(serviceName, "bad_request", time.Since(start))
			httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "threshold must be a number in 0..1"))
			return
		}
		threshold = f
	}

	known, err := h.directory.Exists(ctx, "address", address)
	if err != nil {
		h.logger.ErrorContext(ctx, "directory check failed",
			"request_id", requestID, "address", address, "error", err)
		h.metrics.Observe(serviceName, "error", time.Since(start))
		httputil.WriteError(w, dErrors.New(dErrors.CodeInternal, "directory unavailable"))
		return
	}
	if !known {
		h.metrics.Observe(serviceName, "not_found", time.Since(start))
		httputil.WriteError(w, dErrors.New(dErrors.CodeNotFound, "unknown address"))
		return
	}

	result := h.service.Trace(ctx, address, maxHops, threshold)

	body, err := schema.MarshalValidated(resultSchema, result)
	if err != nil {
		h.logger.ErrorContext(ctx, "response failed schema validation",
			"request_id", requestID, "address", address, "error", err)
		h.metrics.Observe(serviceName, "error", time.Since(start))
		httputil.WriteError(w, dErrors.New(dErrors.CodeInternal, "response validation failed"))
		return
	}

	if h.audit != nil {
		if err := h.audit.Emit(ctx, audit.Event{
			Service:        serviceName,
			Key:            address,
			Classification: result.ExposureLevel,
		}); err != nil {
			h.logger.WarnContext(ctx, "audit emit failed", "request_id", requestID, "error", err)
		}
	}

	h.logger.InfoContext(ctx, "exposure traced",
		"request_id", requestID,
		"address", address,
		"max_hops", maxHops,
		"threshold", threshold,
		"edges", len(result.Edges),
		"exposure_level", result.ExposureLevel,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	h.metrics.Observe(serviceName, "ok", time.Since(start))
	httputil.WriteRawJSON(w, http.StatusOK, body)
}
