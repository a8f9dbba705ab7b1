package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/jpalmerr/scoreboard/internal/remote"
)

const (
	wsWriteTimeout   = 10 * time.Second
	wsReadTimeout    = 60 * time.Second
	wsPingInterval   = 30 * time.Second
	wsMaxMessageSize = 1024
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// cross-origin access is governed by the CORS layer
	CheckOrigin: func(r *http.Request) bool { return true },
}

// handleWS upgrades to a websocket and attaches an interactive peer.
func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", "error", err)
		return
	}

	sender := newQueueSender(peerBuffer)
	peer, err := s.hub.Attach(sender)
	if err != nil {
		code := websocket.CloseInternalServerErr
		if errors.Is(err, remote.ErrHubFull) {
			code = websocket.CloseTryAgainLater
		}
		msg := websocket.FormatCloseMessage(code, err.Error())
		_ = conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(wsWriteTimeout))
		_ = conn.Close()
		return
	}
	log := s.logger.With("peer_id", peer.ID())
	log.Debug("websocket peer connected", "remote_addr", r.RemoteAddr)

	go s.writePump(r.Context(), conn, sender, peer)
	s.hub.SendTo(peer)
	s.readPump(conn, peer)

	s.hub.Detach(peer)
	sender.close()
	log.Debug("websocket peer disconnected")
}

// writePump drains the peer's queue to the connection and keeps it alive
// with pings. It closes the connection when the queue closes or ctx ends,
// which in turn unblocks readPump.
func (s *Server) writePump(ctx context.Context, conn *websocket.Conn, sender *queueSender, peer *remote.Peer) {
	ticker := time.NewTicker(wsPingInterval)
	defer func() {
		ticker.Stop()
		_ = conn.Close()
	}()

	msgs := sender.messages()
	for {
		select {
		case data, ok := <-msgs:
			_ = conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
			if !ok {
				_ = conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
				s.logger.Debug("websocket write failed", "peer_id", peer.ID(), "error", err)
				return
			}

		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				s.logger.Debug("websocket ping failed", "peer_id", peer.ID(), "error", err)
				return
			}

		case <-ctx.Done():
			_ = conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
			_ = conn.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseGoingAway, "shutting down"))
			return
		}
	}
}

// readPump feeds inbound messages to the hub until the connection fails.
func (s *Server) readPump(conn *websocket.Conn, peer *remote.Peer) {
	conn.SetReadLimit(wsMaxMessageSize)
	_ = conn.SetReadDeadline(time.Now().Add(wsReadTimeout))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(wsReadTimeout))
	})

	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseAbnormalClosure) {
				s.logger.Warn("unexpected websocket close", "peer_id", peer.ID(), "error", err)
			}
			return
		}
		s.hub.Handle(peer, msg)
		_ = conn.SetReadDeadline(time.Now().Add(wsReadTimeout))
	}
}
