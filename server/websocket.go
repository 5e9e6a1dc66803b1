package server

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	logger "github.com/sirupsen/logrus"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// stream pushes a fresh valuation snapshot to the client on a fixed
// interval until the client goes away.
func (a *App) stream(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.WithError(err).Warn("websocket upgrade failed")
		return
	}
	defer conn.Close()

	// drain control frames so Close is noticed
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(a.cfg.StreamInterval)
	defer ticker.Stop()

	for {
		results, summary := a.engine.Value(r.Context(), a.store.Positions())
		msg := portfolioResponse{Success: true, Portfolio: views(results), Summary: summarize(summary)}
		if err := conn.WriteJSON(msg); err != nil {
			logger.WithError(err).Debug("websocket client gone")
			return
		}
		select {
		case <-ticker.C:
		case <-done:
			return
		case <-r.Context().Done():
			return
		}
	}
}
