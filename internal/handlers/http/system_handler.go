package http

import (
	"context"
	"net/http"
	"slices"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/rafabene/blog-backend/internal/domain/ports"
	"github.com/rafabene/blog-backend/internal/handlers/dto"
	"github.com/rafabene/blog-backend/internal/infrastructure/realtime"
)

// Pinger verifica uma dependência externa
type Pinger func(ctx context.Context) error

// SystemHandler expõe health check e o stream de eventos
type SystemHandler struct {
	env      string
	ping     Pinger
	hub      *realtime.Hub
	upgrader websocket.Upgrader
	logger   ports.Logger
}

// NewSystemHandler cria um novo SystemHandler.
// origins restringe quem pode abrir o WebSocket ("*" libera todos).
func NewSystemHandler(env string, ping Pinger, hub *realtime.Hub, origins []string, logger ports.Logger) *SystemHandler {
	return &SystemHandler{
		env:  env,
		ping: ping,
		hub:  hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     originChecker(origins),
		},
		logger: logger,
	}
}

func originChecker(origins []string) func(r *http.Request) bool {
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" || slices.Contains(origins, "*") {
			return true
		}
		return slices.Contains(origins, origin)
	}
}

// Health responde ok quando o banco está acessível
// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Failure      503  {object}  map[string]string
// @Router       /health [get]
func (h *SystemHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	if err := h.ping(ctx); err != nil {
		h.logger.Warn("health check failed", "error", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "unavailable",
			"env":    h.env,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": dto.T(c, "health.ok"),
		"env":    h.env,
	})
}

// Events abre o WebSocket que recebe eventos de post
// @Summary      Stream de eventos de post
// @Description  WebSocket; cada mensagem é um JSON com type, post_id, actor_id e occurred_at
// @Tags         system
// @Router       /events [get]
func (h *SystemHandler) Events(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// Upgrade já respondeu ao cliente
		h.logger.Debug("websocket upgrade failed", "error", err)
		return
	}

	h.hub.Serve(conn)
}
