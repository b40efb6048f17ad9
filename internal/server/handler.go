package server

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/Digital-Shane/like-that/internal/dispatch"
	"github.com/Digital-Shane/like-that/internal/intent"
	"github.com/Digital-Shane/like-that/internal/provider"
	"github.com/gin-gonic/gin"
	"github.com/hashicorp/go-hclog"
)

// Querier answers one natural-language media query.
type Querier interface {
	Handle(ctx context.Context, query string) (dispatch.Envelope, error)
}

type Handler struct {
	Querier Querier
	Stats   *Stats
	logger  hclog.Logger
}

func NewHandler(q Querier, stats *Stats, logger hclog.Logger) *Handler {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Handler{Querier: q, Stats: stats, logger: logger}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/query", h.query) // POST /api/query
	rg.GET("/stats", h.stats)  // GET /api/stats
}

type queryRequest struct {
	Query string `json:"query"`
}

func (h *Handler) query(c *gin.Context) {
	var req queryRequest
	// A missing or undecodable body is treated the same as an empty query.
	_ = c.ShouldBindJSON(&req)
	if strings.TrimSpace(req.Query) == "" {
		h.logger.Info("query rejected", "kind", "invalid_query", "request_id", requestID(c))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Query is required"})
		return
	}

	env, err := h.Querier.Handle(c.Request.Context(), req.Query)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, dispatch.ErrInvalidQuery) {
			status = http.StatusBadRequest
		}
		h.logger.Error("query failed", "kind", errorKind(err), "status", status, "request_id", requestID(c), "error", err)
		c.JSON(status, gin.H{"error": "Failed to process query", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, env)
}

func (h *Handler) stats(c *gin.Context) {
	if h.Stats == nil {
		c.JSON(http.StatusOK, gin.H{})
		return
	}
	c.JSON(http.StatusOK, h.Stats.Snapshot())
}

// errorKind names the failure class of err for logs.
func errorKind(err error) string {
	switch {
	case errors.Is(err, dispatch.ErrInvalidQuery):
		return "invalid_query"
	case errors.Is(err, intent.ErrClassification):
		return "classification"
	case errors.Is(err, dispatch.ErrUnknownIntent):
		return "unknown_intent"
	case errors.Is(err, dispatch.ErrMediaNotFound):
		return "media_not_found"
	case errors.Is(err, provider.ErrGenreNotFound):
		return "genre_not_found"
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	case errors.Is(err, context.Canceled):
		return "canceled"
	case errors.Is(err, provider.ErrUnavailable):
		return "provider_unavailable"
	default:
		return "internal"
	}
}
