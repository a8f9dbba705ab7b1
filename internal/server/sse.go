package server

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/jpalmerr/scoreboard/internal/remote"
)

// sseWriteTimeout is the maximum time allowed for a single SSE write.
// It must not exceed the shutdown timeout.
const sseWriteTimeout = 5 * time.Second

// handleSSE streams state snapshots to a read-only guest peer.
//
// Writes carry a deadline so a stalled client cannot pin the handler past
// shutdown.
func (s *Server) handleSSE(w http.ResponseWriter, r *http.Request) {
	if _, ok := w.(http.Flusher); !ok {
		http.Error(w, "SSE not supported", http.StatusInternalServerError)
		return
	}

	sender := newQueueSender(peerBuffer)
	peer, err := s.hub.Attach(sender)
	if errors.Is(err, remote.ErrHubFull) {
		http.Error(w, "Too many clients", http.StatusServiceUnavailable)
		return
	}
	if err != nil {
		http.Error(w, "Attach failed", http.StatusInternalServerError)
		return
	}
	defer func() {
		s.hub.Detach(peer)
		sender.close()
	}()

	rc := http.NewResponseController(w)
	deadlinesSupported := true

	writeAndFlush := func(data []byte) error {
		if deadlinesSupported {
			if err := rc.SetWriteDeadline(time.Now().Add(sseWriteTimeout)); err != nil {
				s.logger.Warn("sse write deadlines not supported", "error", err)
				deadlinesSupported = false
			}
		}

		if _, err := fmt.Fprintf(w, "data: %s\n\n", bytes.TrimRight(data, "\n")); err != nil {
			return err
		}
		return rc.Flush()
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	s.logger.Debug("sse peer connected", "peer_id", peer.ID())
	s.hub.SendTo(peer)

	msgs := sender.messages()
	for {
		select {
		case data, ok := <-msgs:
			if !ok {
				return
			}
			if err := writeAndFlush(data); err != nil {
				s.logger.Debug("sse write failed", "peer_id", peer.ID(), "error", err)
				return
			}

		case <-r.Context().Done():
			// fires on client disconnect and on server shutdown
			return
		}
	}
}
