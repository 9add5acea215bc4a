package lineage

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

const serviceName = "lineage"

const (
	defaultDepth = 3
	depthLimit   = 5
)

var resultSchema = schema.MustCompile("lineage_result", `{
  "type": "object",
  "required": ["datasetId", "nodes", "edges", "coverage", "confidence", "freshness"],
  "properties": {
    "datasetId": {"type": "string", "minLength": 1},
    "nodes": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["id", "kind", "depth", "completeness", "accuracy"],
        "properties": {
          "id": {"type": "string"},
          "kind": {"enum": ["dataset", "source"]},
          "depth": {"type": "integer", "minimum": 0},
          "completeness": {"type": "number", "minimum": 0, "maximum": 1},
          "accuracy": {"type": "number", "minimum": 0, "maximum": 1}
        }
      }
    },
    "edges": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["from", "to", "hop"],
        "properties": {
          "from": {"type": "string"},
          "to": {"type": "string"},
          "type": {"enum": ["feeds"]},
          "hop": {"type": "integer", "minimum": 1}
        }
      }
    },
    "coverage": {"type": "number", "minimum": 0, "maximum": 1},
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
	r.Get("/datasets/{datasetID}/lineage", h.handleTrace)
}

func (h *Handler) handleTrace(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	start := time.Now()

	datasetID := chi.URLParam(r, "datasetID")
	if datasetID == "" || len(datasetID) > 128 {
		h.metrics.Observe(serviceName, "bad_request", time.Since(start))
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "dataset id must be 1-128 characters"))
		return
	}

	depth := defaultDepth
	if raw := r.URL.Query().Get("depth"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > depthLimit {
			h.metrics.Observe(serviceName, "bad_request", time.Since(start))
			httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "depth must be an integer in 1..5"))
			return
		}
		depth = n
	}

	known, err := h.directory.Exists(ctx, "dataset", datasetID)
	if err != nil {
		h.logger.ErrorContext(ctx, "directory check failed",
			"request_id", requestID, "dataset_id", datasetID, "error", err)
		h.metrics.Observe(serviceName, "error", time.Since(start))
		httputil.WriteError(w, dErrors.New(dErrors.CodeInternal, "directory unavailable"))
		return
	}
	if !known {
		h.metrics.Observe(serviceName, "not_found", time.Since(start))
		httputil.WriteError(w, dErrors.New(dErrors.CodeNotFound, "unknown dataset"))
		return
	}

	result := h.service.Trace(ctx, datasetID, depth)

	body, err := schema.MarshalValidated(resultSchema, result)
	if err != nil {
		h.logger.ErrorContext(ctx, "response failed schema validation",
			"request_id", requestID, "dataset_id", datasetID, "error", err)
		h.metrics.Observe(serviceName, "error", time.Since(start))
		httputil.WriteError(w, dErrors.New(dErrors.CodeInternal, "response validation failed"))
		return
	}

	if h.audit != nil {
		if err := h.audit.Emit(ctx, audit.Event{
			Service:        serviceName,
			Key:            datasetID,
			Classification: "traced",
		}); err != nil {
			h.logger.WarnContext(ctx, "audit emit failed", "request_id", requestID, "error", err)
		}
	}

	h.logger.InfoContext(ctx, "lineage traced",
		"request_id", requestID,
		"dataset_id", datasetID,
		"depth", depth,
		"nodes", len(result.Nodes),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	h.metrics.Observe(serviceName, "ok", time.Since(start))
	httputil.WriteRawJSON(w, http.StatusOK, body)
}
