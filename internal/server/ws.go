package server

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"

	"b3vision/internal/feed"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// GET /ws/market-feed — streams simulated market events until the client
// disconnects.
func (s *Server) handleMarketFeed(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Warn("websocket upgrade failed", "error", err)
		return
	}

	s.metrics.FeedClients.Inc()
	defer s.metrics.FeedClients.Dec()
	slog.Info("feed client connected", "remote", conn.RemoteAddr().String())

	feed.Stream(r.Context(), conn, s.feed)

	slog.Info("feed client disconnected", "remote", conn.RemoteAddr().String())
}
