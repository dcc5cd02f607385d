package ws

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

const (
	pongWait   = 60 * time.Second
	pingPeriod = 30 * time.Second
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 16 * 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Handler upgrades HTTP requests to alert subscriptions
type Handler struct {
	hub *AlertHub
}

func NewHandler(hub *AlertHub) *Handler {
	return &Handler{hub: hub}
}

// Alerts streams triggered alerts over a websocket
// @Summary Live alert feed
// @Description Upgrade to a websocket that receives every triggered alert. Optional camera_id filters to one camera.
// @Tags alerts
// @Param camera_id query string false "Camera ID filter"
// @Success 101 {object} Message
// @Router /ws/alerts [get]
func (h *Handler) Alerts(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Warn().Err(err).Str("remote", c.Request.RemoteAddr).Msg("Websocket upgrade failed")
		return
	}

	cl := newClient(conn, c.Query("camera_id"))
	h.hub.register(cl)

	go cl.writePump()
	go h.readPump(cl)
}

// readPump detects disconnection and removes the subscriber
func (h *Handler) readPump(cl *client) {
	defer h.hub.unregister(cl)

	cl.conn.SetReadLimit(512)
	cl.conn.SetReadDeadline(time.Now().Add(pongWait))
	cl.conn.SetPongHandler(func(string) error {
		cl.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := cl.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Debug().Err(err).Str("camera_filter", cl.cameraID).Msg("Websocket read error")
			}
			return
		}
	}
}
