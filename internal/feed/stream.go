package feed

import (
	"context"
	"log/slog"
	"time"

	"github.com/gorilla/websocket"
)

// Stream pushes generated events to one WebSocket connection until the
// context is cancelled or the client disconnects. No further writes are
// attempted after the first write error; the connection is closed before
// returning.
func Stream(ctx context.Context, conn *websocket.Conn, gen *Generator) {
	defer conn.Close()

	// Reader goroutine: its only job is to detect the client going away.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	// Backlog first, so the client has something on screen immediately.
	for _, ev := range gen.Recent() {
		if err := conn.WriteJSON(ev); err != nil {
			return
		}
	}

	timer := time.NewTimer(gen.Interval())
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-done:
			slog.Debug("feed client disconnected", "remote", conn.RemoteAddr())
			return
		case <-timer.C:
			if err := conn.WriteJSON(gen.Next()); err != nil {
				slog.Debug("feed write failed", "remote", conn.RemoteAddr(), "err", err)
				return
			}
			timer.Reset(gen.Interval())
		}
	}
}
