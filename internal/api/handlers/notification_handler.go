package handlers

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/redis/go-redis/v9"
	"github.com/yoockh/careerly/internal/notify"
	"github.com/yoockh/careerly/internal/services"
	"github.com/yoockh/careerly/internal/utils"
)

const (
	wsWriteWait  = 10 * time.Second
	wsPongWait   = 60 * time.Second
	wsPingPeriod = wsPongWait * 9 / 10
)

// NotificationHandler forwards the caller's Redis notification channels
// over a websocket.
type NotificationHandler struct {
	users    services.UserService
	redis    *redis.Client
	upgrader websocket.Upgrader
}

// NewNotificationHandler accepts a nil client; the route then answers 500.
// allowedOrigins empty means any origin is accepted.
func NewNotificationHandler(users services.UserService, rdb *redis.Client, allowedOrigins []string) *NotificationHandler {
	allow := map[string]struct{}{}
	for _, o := range allowedOrigins {
		allow[o] = struct{}{}
	}
	return &NotificationHandler{
		users: users,
		redis: rdb,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				if len(allow) == 0 {
					return true
				}
				_, ok := allow[r.Header.Get("Origin")]
				return ok
			},
		},
	}
}

type wsConn struct {
	c  *websocket.Conn
	mu sync.Mutex
}

func (w *wsConn) write(kind int, b []byte) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	_ = w.c.SetWriteDeadline(time.Now().Add(wsWriteWait))
	return w.c.WriteMessage(kind, b)
}

func (h *NotificationHandler) Stream(c *gin.Context) {
	const op = "NotificationHandler.Stream"

	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	if h.redis == nil {
		writeError(c, utils.E(utils.CodeNotConfigured, op, "notifications are not configured", nil))
		return
	}

	u, err := h.users.Me(c.Request.Context(), userID, c.GetString("email"))
	if err != nil {
		writeError(c, err)
		return
	}
	channels := []string{notify.UserChannel(userID)}
	if u.IsCompany() {
		channels = append(channels, notify.CompanyChannel(*u.CompanyID))
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// Upgrade has already written the response.
		return
	}
	defer conn.Close()

	wc := &wsConn{c: conn}
	ctx, cancel := context.WithCancel(c.Request.Context())
	defer cancel()

	pubsub := h.redis.Subscribe(ctx, channels...)
	defer pubsub.Close()

	// The client only sends pongs and close frames.
	go func() {
		defer cancel()
		_ = conn.SetReadDeadline(time.Now().Add(wsPongWait))
		conn.SetPongHandler(func(string) error {
			return conn.SetReadDeadline(time.Now().Add(wsPongWait))
		})
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ping := time.NewTicker(wsPingPeriod)
	defer ping.Stop()
	msgs := pubsub.Channel()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ping.C:
			if err := wc.write(websocket.PingMessage, nil); err != nil {
				return
			}
		case m, ok := <-msgs:
			if !ok {
				return
			}
			if err := wc.write(websocket.TextMessage, []byte(m.Payload)); err != nil {
				return
			}
		}
	}
}
