package httpx

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"salestream/internal/stream"
	"salestream/pkg/jwt"
)

// WS streams live order events over a websocket. The token rides the
// query string because browsers cannot set headers on WS upgrades.
func WS(allowedOrigins []string, hub *stream.Hub, val *jwt.Validator) http.HandlerFunc {
	upgrader := websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			if origin == "" { // CLI/servers
				return true
			}
			for _, o := range allowedOrigins {
				o = strings.TrimSpace(o)
				if o == "*" || strings.EqualFold(o, origin) {
					return true
				}
			}
			return false
		},
	}

	return func(w http.ResponseWriter, r *http.Request) {
		if _, err := val.Validate(r.URL.Query().Get("token")); err != nil {
			WriteError(w, http.StatusUnauthorized, "unauthorized", "invalid token")
			return
		}

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()

		conn.SetReadLimit(1)

		sub := hub.Subscribe(r.Context(), 256)
		tick := time.NewTicker(15 * time.Second)
		defer tick.Stop()

		go func() {
			for range tick.C {
				_ = conn.WriteControl(websocket.PingMessage, []byte("ping"), time.Now().Add(5*time.Second))
			}
		}()

		for {
			select {
			case <-r.Context().Done():
				return
			case ev := <-sub:
				b, _ := json.Marshal(ev)
				if err := conn.WriteMessage(websocket.TextMessage, b); err != nil {
					return
				}
			}
		}
	}
}
