package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html"
	"io/fs"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/rs/cors"

	"github.com/jpalmerr/scoreboard/display"
	"github.com/jpalmerr/scoreboard/internal/remote"
)

const (
	// defaultTitle is used when no custom title is configured.
	defaultTitle = "Scoreboard"

	// titlePlaceholder is the marker in HTML that gets replaced with the actual title.
	titlePlaceholder = "{{.Title}}"

	// shutdownTimeout bounds graceful shutdown of in-flight requests.
	shutdownTimeout = 5 * time.Second

	// peerBuffer is the number of pending pushes a connection may queue.
	peerBuffer = 16
)

// Hub is the peer registry connections attach to. It is satisfied by
// *remote.Hub.
type Hub interface {
	Attach(sender remote.Sender) (*remote.Peer, error)
	Detach(p *remote.Peer)
	SendTo(p *remote.Peer)
	Handle(p *remote.Peer, raw []byte)
	State(admin bool) remote.State
}

// FrameSource provides the last frame shown on the panel.
type FrameSource interface {
	Frame() display.Frame
}

// Server handles HTTP requests for the remote dashboard, the JSON API and
// the live peer transports.
//
// The server is designed for graceful shutdown via context cancellation.
type Server struct {
	hub        Hub
	frames     FrameSource
	port       int
	httpServer *http.Server
	assets     fs.FS
	title      string
	logger     *slog.Logger

	mu   sync.Mutex
	addr net.Addr
}

// NewServer creates a new HTTP [Server].
//
// Parameters:
//   - hub: peer registry for SSE and websocket connections
//   - frames: source of the current panel frame (may be nil)
//   - port: TCP port to listen on; 0 picks a free port
//   - assets: embedded filesystem containing dashboard assets (may be nil)
//   - title: dashboard title (defaults to "Scoreboard" if empty)
//   - logger: logger for server events
//
// The server is not started until [Server.Start] is called.
func NewServer(hub Hub, frames FrameSource, port int, assets fs.FS, title string, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		hub:    hub,
		frames: frames,
		port:   port,
		assets: assets,
		title:  title,
		logger: logger,
	}
}

// Handler returns the routed handler wrapped in CORS.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	// API routes
	mux.HandleFunc("/api/state", s.handleState)
	mux.HandleFunc("/api/display", s.handleDisplay)
	mux.HandleFunc("/api/sse", s.handleSSE)
	mux.HandleFunc("/ws", s.handleWS)

	if s.assets != nil {
		mux.HandleFunc("/", s.handleDashboard)
	}

	c := cors.New(cors.Options{
		AllowedMethods: []string{http.MethodHead, http.MethodGet},
		AllowedOrigins: []string{"*"},
		AllowedHeaders: []string{"*"},
	})
	return c.Handler(mux)
}

// Start begins serving HTTP requests in a background goroutine.
//
// Start is non-blocking and returns immediately after confirming the server
// is listening. The server will continue running until the context is
// cancelled, at which point it initiates a graceful shutdown with a 5-second
// timeout.
//
// Returns an error if the server fails to bind to the configured port.
func (s *Server) Start(ctx context.Context) error {
	// create listener first to verify port availability synchronously
	addr := fmt.Sprintf(":%d", s.port)
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to bind to port %d: %w", s.port, err)
	}

	s.mu.Lock()
	s.addr = ln.Addr()
	s.mu.Unlock()

	s.httpServer = &http.Server{
		Handler: s.Handler(),
		// request contexts derive from ctx so long-lived handlers end on shutdown
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	go func() {
		if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("http server error", "error", err)
		}
	}()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			s.logger.Error("http server shutdown error", "error", err)
		}
	}()

	s.logger.Info("http server listening", "addr", ln.Addr().String())
	return nil
}

// Addr returns the bound address, or nil before Start.
func (s *Server) Addr() net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addr
}

// handleDashboard serves the remote control page.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	if s.assets == nil {
		http.Error(w, "Dashboard not found", http.StatusInternalServerError)
		return
	}

	content, err := fs.ReadFile(s.assets, "assets/index.html")
	if err != nil {
		http.Error(w, "Dashboard not found", http.StatusInternalServerError)
		return
	}

	// apply title substitution with HTML escaping to prevent XSS
	title := s.title
	if title == "" {
		title = defaultTitle
	}
	rendered := strings.ReplaceAll(string(content), titlePlaceholder, html.EscapeString(title))

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if _, err = w.Write([]byte(rendered)); err != nil {
		s.logger.Error("failed to write dashboard response", "error", err)
	}
}

// handleState returns the current guest snapshot as JSON.
func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	s.writeJSON(w, s.hub.State(false))
}

// handleDisplay returns the last frame shown on the panel.
func (s *Server) handleDisplay(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if s.frames == nil {
		http.Error(w, "No display attached", http.StatusNotFound)
		return
	}
	s.writeJSON(w, s.frames.Frame())
}

func (s *Server) writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-cache")

	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("failed to encode response", "error", err)
	}
}
