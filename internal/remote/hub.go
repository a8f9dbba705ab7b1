package remote

import (
	"crypto/subtle"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/jpalmerr/scoreboard/internal/match"
	"github.com/jpalmerr/scoreboard/internal/score"
)

// DefaultMaxPeers is the number of remote viewers the device accepts.
const DefaultMaxPeers = 8

var (
	// ErrHubFull is returned by Attach when no more peers are accepted.
	ErrHubFull = errors.New("remote: too many peers")

	// ErrPeerClosed is returned by a Sender whose connection has gone away.
	ErrPeerClosed = errors.New("remote: peer closed")

	// ErrSendBufferFull is returned by a Sender that cannot keep up.
	ErrSendBufferFull = errors.New("remote: send buffer full")
)

// Sender is an opaque connection handle. Send must not block for long; a
// slow connection should report [ErrSendBufferFull] instead.
type Sender interface {
	Send(data []byte) error
}

// Controller is the part of the match the hub reads and mutates. It is
// satisfied by *match.Controller.
type Controller interface {
	Snapshot() match.Snapshot
	IncrementScore(side score.Side, delta int)
	SetLimits(limit, maxLimit int)
	Swap()
	Reset()
}

// Peer is one connected remote viewer.
type Peer struct {
	id     string
	sender Sender
	admin  atomic.Bool
}

// ID returns the peer's connection ID.
func (p *Peer) ID() string { return p.id }

// IsAdmin reports whether the peer may mutate the match.
func (p *Peer) IsAdmin() bool { return p.admin.Load() }

// Group returns "admin" or "guest".
func (p *Peer) Group() string {
	if p.IsAdmin() {
		return GroupAdmin
	}
	return GroupGuest
}

// Hub keeps the set of connected peers consistent with the match.
//
// Every state change is serialised once and pushed to each peer tagged with
// the peer's own group. A peer whose send fails is detached; failures never
// reach the goroutine that changed the match.
type Hub struct {
	ctrl     Controller
	password func() string
	maxPeers int
	logger   *slog.Logger

	mu    sync.RWMutex
	peers []*Peer
}

// NewHub creates a Hub. password returns the current enable password; an
// empty password never grants admin. A non-positive maxPeers uses
// [DefaultMaxPeers].
func NewHub(ctrl Controller, password func() string, maxPeers int, logger *slog.Logger) *Hub {
	if password == nil {
		password = func() string { return "" }
	}
	if maxPeers <= 0 {
		maxPeers = DefaultMaxPeers
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Hub{
		ctrl:     ctrl,
		password: password,
		maxPeers: maxPeers,
		logger:   logger,
		peers:    make([]*Peer, 0, maxPeers),
	}
}

// Attach registers a new guest peer.
func (h *Hub) Attach(sender Sender) (*Peer, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.peers) >= h.maxPeers {
		return nil, ErrHubFull
	}
	p := &Peer{id: uuid.NewString(), sender: sender}
	h.peers = append(h.peers, p)
	h.logger.Info("peer attached", "peer_id", p.id, "peers", len(h.peers))
	return p, nil
}

// Detach removes p. Detaching an unknown or already detached peer is a
// no-op.
func (h *Hub) Detach(p *Peer) {
	if p == nil {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()

	for i, q := range h.peers {
		if q == p {
			h.peers = append(h.peers[:i], h.peers[i+1:]...)
			h.logger.Info("peer detached", "peer_id", p.id, "peers", len(h.peers))
			return
		}
	}
}

// Len returns the number of attached peers.
func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.peers)
}

// Peers returns a copy of the attached peers in attach order.
func (h *Hub) Peers() []*Peer {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return append([]*Peer(nil), h.peers...)
}

// State returns the current snapshot tagged for the given group.
func (h *Hub) State(admin bool) State {
	st := newState(h.ctrl.Snapshot())
	st.Group = GroupGuest
	if admin {
		st.Group = GroupAdmin
	}
	return st
}

// Broadcast pushes the current state to every peer.
func (h *Hub) Broadcast() {
	peers := h.Peers()
	if len(peers) == 0 {
		return
	}

	st := newState(h.ctrl.Snapshot())
	h.logger.Debug("broadcast", "peers", len(peers), "mode", st.Mode)
	for _, p := range peers {
		h.push(p, st)
	}
}

// SendTo pushes the current state to p only.
func (h *Hub) SendTo(p *Peer) {
	h.push(p, newState(h.ctrl.Snapshot()))
}

// OnStateChange implements match.StateObserver.
func (h *Hub) OnStateChange() {
	h.Broadcast()
}

func (h *Hub) push(p *Peer, st State) {
	st.Group = p.Group()
	data, err := encode(st)
	if err != nil {
		h.logger.Error("failed to encode state", "error", err)
		return
	}
	if err := p.sender.Send(data); err != nil {
		h.logger.Warn("push failed, dropping peer", "peer_id", p.id, "error", err)
		h.Detach(p)
	}
}

// Handle processes one inbound message from p. Malformed, unknown and
// unauthorised messages are logged and dropped.
func (h *Hub) Handle(p *Peer, raw []byte) {
	var msg Message
	if err := json.Unmarshal(raw, &msg); err != nil {
		h.logger.Warn("malformed message", "peer_id", p.id, "error", err)
		return
	}
	log := h.logger.With("peer_id", p.id, "action", msg.Action)

	switch msg.Action {
	case ActionRefresh:
		h.Broadcast()
		return

	case ActionEnable:
		want := h.password()
		ok := want != "" && subtle.ConstantTimeCompare([]byte(msg.Password), []byte(want)) == 1
		p.admin.Store(ok)
		log.Info("enable", "admin", ok)
		h.Broadcast()
		return
	}

	if !p.IsAdmin() {
		log.Warn("rejected action from guest")
		return
	}

	switch msg.Action {
	case ActionUpdate:
		side, err := parseSide(msg.Side)
		if err != nil {
			log.Warn("rejected update", "error", err)
			return
		}
		h.ctrl.IncrementScore(side, msg.Delta)

	case ActionLimits:
		if msg.Limit <= 0 || msg.MaxLimit <= 0 {
			log.Warn("rejected limits", "limit", msg.Limit, "max_limit", msg.MaxLimit)
			return
		}
		h.ctrl.SetLimits(msg.Limit, msg.MaxLimit)

	case ActionSwap:
		h.ctrl.Swap()

	case ActionReset:
		h.ctrl.Reset()

	default:
		log.Warn("unknown action")
	}
}

func parseSide(s string) (score.Side, error) {
	switch s {
	case "lhs":
		return score.LHS, nil
	case "rhs":
		return score.RHS, nil
	default:
		return 0, fmt.Errorf("unknown side %q", s)
	}
}
