package server

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"capitol/constellation/internal/engine"
	"capitol/constellation/internal/graph"
)

// MaxK bounds the k query parameter; the path search grows with k
const MaxK = 50

// Handlers serves the engine's queries. snap is only read for the health
// counts and the node echoed in connection responses.
type Handlers struct {
	eng      *engine.Engine
	snap     *graph.Snapshot
	defaultK int
}

func NewHandlers(eng *engine.Engine, snap *graph.Snapshot, defaultK int) *Handlers {
	if defaultK <= 0 {
		defaultK = 3
	}
	return &Handlers{eng: eng, snap: snap, defaultK: defaultK}
}

// HandleHealth handles GET /v1/health.
func (h *Handlers) HandleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Status:  "healthy",
		Version: ServiceVersion,
		Nodes:   h.snap.Len(),
		Edges:   len(h.snap.Edges()),
	})
}

// HandleMetrics handles GET /v1/metrics.
func (h *Handlers) HandleMetrics(c *gin.Context) {
	requestID := getOrCreateRequestID(c)
	logger := slog.With("request_id", requestID, "handler", "HandleMetrics")

	m := h.eng.GetMetrics(c.Request.Context())
	logger.Debug("Metrics computed", "health_score", m.HealthScore, "nodes", m.TotalNodes)
	c.JSON(http.StatusOK, m)
}

// HandlePaths handles GET /v1/paths?from=&to=&k=.
//
//	200 OK: PathsResponse (paths may be empty)
//	400 Bad Request: missing from/to, or k outside 1..MaxK
//	404 Not Found: unknown node id
func (h *Handlers) HandlePaths(c *gin.Context) {
	requestID := getOrCreateRequestID(c)
	logger := slog.With("request_id", requestID, "handler", "HandlePaths")

	from, to := c.Query("from"), c.Query("to")
	if from == "" || to == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "from and to are required",
			Code:  CodeInvalidArgument,
		})
		return
	}

	k := h.defaultK
	if raw := c.Query("k"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{
				Error: "k must be an integer",
				Code:  CodeInvalidArgument,
			})
			return
		}
		k = parsed
	}
	if k > MaxK {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: fmt.Sprintf("k must be at most %d", MaxK),
			Code:  CodeInvalidArgument,
		})
		return
	}

	paths, err := h.eng.FindPaths(c.Request.Context(), from, to, k)
	if err != nil {
		writeQueryError(c, logger, err)
		return
	}

	logger.Info("Paths found", "from", from, "to", to, "k", k, "found", len(paths))
	c.JSON(http.StatusOK, PathsResponse{From: from, To: to, K: k, Paths: paths})
}

// HandleConnections handles GET /v1/nodes/:id/connections.
func (h *Handlers) HandleConnections(c *gin.Context) {
	requestID := getOrCreateRequestID(c)
	logger := slog.With("request_id", requestID, "handler", "HandleConnections")

	id := c.Param("id")
	edges, err := h.eng.GetConnections(c.Request.Context(), id)
	if err != nil {
		writeQueryError(c, logger, err)
		return
	}

	node, _ := h.snap.Node(id)
	c.JSON(http.StatusOK, ConnectionsResponse{Node: node, Connections: edges})
}

// writeQueryError maps engine errors onto HTTP statuses
func writeQueryError(c *gin.Context, logger *slog.Logger, err error) {
	status := http.StatusInternalServerError
	code := CodeInternal

	if errors.Is(err, graph.ErrNodeNotFound) {
		status = http.StatusNotFound
		code = CodeNodeNotFound
	} else if errors.Is(err, graph.ErrInvalidArgument) {
		status = http.StatusBadRequest
		code = CodeInvalidArgument
	}

	if status == http.StatusInternalServerError {
		logger.Error("Query failed", "error", err)
	} else {
		logger.Warn("Query rejected", "error", err, "code", code)
	}
	c.JSON(status, ErrorResponse{Error: err.Error(), Code: code})
}

func getOrCreateRequestID(c *gin.Context) string {
	requestID := c.GetHeader("X-Request-ID")
	if requestID == "" {
		requestID = uuid.NewString()
	}
	c.Header("X-Request-ID", requestID)
	return requestID
}
