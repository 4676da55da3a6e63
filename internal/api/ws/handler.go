// Package ws serves the real-time channel over WebSocket.
package ws

import (
	"context"
	"net/http"
	"slices"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/dtroode/attendance-server/internal/logger"
	"github.com/dtroode/attendance-server/internal/realtime"
)

// TokenService resolves the subject ID from bearer tokens.
type TokenService interface {
	GetUserID(ctx context.Context, token string) (int64, error)
}

// Server runs the lifecycle of one real-time connection.
type Server interface {
	Serve(ctx context.Context, subjectID int64, conn realtime.FrameConn)
}

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Options configures the WebSocket handler.
type Options struct {
	// AllowedOrigins lists browser origins allowed to connect. Empty allows
	// any origin; requests without an Origin header are always allowed.
	AllowedOrigins []string
	// WriteTimeout bounds every frame written to a client.
	WriteTimeout time.Duration
}

// Handler exposes the handshake, stats and health endpoints.
type Handler struct {
	ctx      context.Context
	server   Server
	registry realtime.Registry
	tokens   TokenService
	pinger   Pinger
	upgrader websocket.Upgrader
	opts     Options
	logger   *logger.Logger
}

// NewHandler creates a Handler. Connections live until they disconnect or
// ctx is done. A nil pinger reports the service healthy unconditionally.
func NewHandler(
	ctx context.Context,
	server Server,
	registry realtime.Registry,
	tokens TokenService,
	pinger Pinger,
	opts Options,
	logger *logger.Logger,
) *Handler {
	h := &Handler{
		ctx:      ctx,
		server:   server,
		registry: registry,
		tokens:   tokens,
		pinger:   pinger,
		opts:     opts,
		logger:   logger,
	}
	h.upgrader = websocket.Upgrader{CheckOrigin: h.checkOrigin}
	return h
}

// Routes registers the handler's endpoints on r.
func (h *Handler) Routes(r gin.IRouter) {
	r.GET("/ws/stats", h.Stats)
	r.GET("/ws/:subject_id", h.Connect)
	r.GET("/health", h.Health)
}

// Connect authenticates the caller and upgrades to WebSocket. The token's
// subject must match the path.
func (h *Handler) Connect(c *gin.Context) {
	subjectID, err := strconv.ParseInt(c.Param("subject_id"), 10, 64)
	if err != nil || subjectID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid subject id"})
		return
	}

	token := c.Query("token")
	if token == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing token"})
		return
	}
	callerID, err := h.tokens.GetUserID(c.Request.Context(), token)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
		return
	}
	if callerID != subjectID {
		h.logger.Warn("WS handler: subject mismatch", "subject_id", subjectID, "caller_id", callerID)
		c.JSON(http.StatusForbidden, gin.H{"error": "token does not match subject"})
		return
	}

	wsConn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// Upgrade has already written the error response.
		h.logger.Warn("WS handler: upgrade failed", "subject_id", subjectID, "error", err)
		return
	}

	h.server.Serve(h.ctx, subjectID, newConn(wsConn, h.opts.WriteTimeout))
}

// Stats reports live connection counts.
func (h *Handler) Stats(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"connected_users":    h.registry.Count(),
		"active_connections": h.registry.Stats(),
	})
}

// Health reports whether the store is reachable.
func (h *Handler) Health(c *gin.Context) {
	if h.pinger != nil {
		if err := h.pinger.Ping(c.Request.Context()); err != nil {
			h.logger.Error("WS handler: health check failed", "error", err)
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *Handler) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" || len(h.opts.AllowedOrigins) == 0 {
		return true
	}
	return slices.Contains(h.opts.AllowedOrigins, origin)
}
