package sse

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/jpalmerr/statekit"
)

const (
	// writeTimeout is the maximum time allowed for a single SSE write
	// operation. This prevents goroutine leaks when clients are slow or
	// disconnected. Must be <= shutdown timeout to ensure clean shutdown.
	writeTimeout = 5 * time.Second

	// maxActionBody bounds action payloads read from clients.
	maxActionBody = 1 << 20
)

// ActionHandler invokes one store action with a raw JSON payload.
//
// Handlers decode the payload into the action's typed arguments and call
// the bound action function. A returned error surfaces to the client as a
// 422 response.
type ActionHandler func(ctx context.Context, payload json.RawMessage) error

// snapshot is the wire representation of a view.
type snapshot[S any] struct {
	Name  string `json:"name"`
	State S      `json:"state"`
}

// Server bridges a single store onto HTTP.
//
// Server provides up to four endpoint groups:
//   - GET /: serves the embedded page (when assets are configured)
//   - GET /api/state: current state as JSON
//   - GET /api/events: Server-Sent Events stream of committed views
//   - POST /api/actions/{name}: invokes a registered [ActionHandler]
//
// The server is designed for graceful shutdown via context cancellation.
type Server[S any] struct {
	store      *statekit.Store[S]
	port       int
	actions    map[string]ActionHandler
	assets     fs.FS
	logger     *slog.Logger
	httpServer *http.Server
}

// NewServer creates a new [Server] for the given store.
//
// Parameters:
//   - store: the store to expose
//   - port: TCP port to listen on
//   - actions: action name to handler mapping (may be nil)
//   - assets: embedded filesystem served at / (may be nil)
//   - logger: logger for server events
//
// The server is not started until [Server.Start] is called.
func NewServer[S any](store *statekit.Store[S], port int, actions map[string]ActionHandler, assets fs.FS, logger *slog.Logger) *Server[S] {
	return &Server[S]{
		store:   store,
		port:    port,
		actions: actions,
		assets:  assets,
		logger:  logger,
	}
}

// Start begins serving HTTP requests in a background goroutine.
//
// Start is non-blocking and returns immediately after confirming the
// server is listening. The server runs until the context is cancelled, at
// which point it initiates a graceful shutdown with a 5-second timeout.
//
// Returns an error if the server fails to bind to the configured port.
func (s *Server[S]) Start(ctx context.Context) error {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/state", s.handleState)
	mux.HandleFunc("GET /api/events", s.handleEvents)
	mux.HandleFunc("POST /api/actions/{name}", s.handleAction)

	if s.assets != nil {
		mux.Handle("GET /", http.FileServerFS(s.assets))
	}

	// create listener first to verify port availability synchronously
	addr := fmt.Sprintf(":%d", s.port)
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to bind to port %d: %w", s.port, err)
	}

	s.httpServer = &http.Server{
		Handler: mux,
		// BaseContext derives all request contexts from the server context.
		// When ctx is cancelled, all request contexts are also cancelled,
		// enabling graceful shutdown of long-running handlers like SSE.
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	go func() {
		if err := s.httpServer.Serve(ln); err != nil && err != http.ErrServerClosed {
			s.logger.Error("http server error", "error", err)
		}
	}()

	// shutdown on context cancellation
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			s.logger.Error("http server shutdown error", "error", err)
		}
	}()

	return nil
}

// handleState returns the current state as JSON.
func (s *Server[S]) handleState(w http.ResponseWriter, r *http.Request) {
	v := s.store.View()

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-cache")

	if err := json.NewEncoder(w).Encode(snapshot[S]{Name: v.Name(), State: v.State()}); err != nil {
		s.logger.Error("failed to encode state response", "error", err)
	}
}

// handleAction decodes the request body and invokes the named action.
func (s *Server[S]) handleAction(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	handler, ok := s.actions[name]
	if !ok {
		http.Error(w, "unknown action", http.StatusNotFound)
		return
	}

	payload, err := io.ReadAll(io.LimitReader(r.Body, maxActionBody))
	if err != nil {
		http.Error(w, "failed to read body", http.StatusBadRequest)
		return
	}

	if err := handler(r.Context(), payload); err != nil {
		s.logger.Warn("action failed", "action", name, "error", err)
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// handleEvents streams committed views via Server-Sent Events.
//
// The handler uses write deadlines to prevent goroutine leaks when clients
// are slow or disconnected. Without deadlines, a blocked Fprintf call
// would prevent the handler from detecting context cancellation.
func (s *Server[S]) handleEvents(w http.ResponseWriter, r *http.Request) {
	// check if flushing is supported
	if _, ok := w.(http.Flusher); !ok {
		http.Error(w, "SSE not supported", http.StatusInternalServerError)
		return
	}

	// ResponseController provides deadline-aware write and flush operations.
	rc := http.NewResponseController(w)

	// track if write deadlines are supported (may not be for some
	// ResponseWriter impls)
	deadlinesSupported := true

	// writeAndFlush writes SSE data with a deadline so a slow or
	// disconnected client times out instead of blocking the handler.
	writeAndFlush := func(data []byte) error {
		if deadlinesSupported {
			if err := rc.SetWriteDeadline(time.Now().Add(writeTimeout)); err != nil {
				// deadline not supported by underlying connection, continue without
				s.logger.Warn("sse write deadlines not supported", "error", err)
				deadlinesSupported = false
			}
		}

		if _, err := fmt.Fprintf(w, "data: %s\n\n", data); err != nil {
			return err
		}

		// ResponseController.Flush respects the write deadline
		return rc.Flush()
	}

	// set SSE headers
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")

	// the watch channel is closed when the request context is done, which
	// covers both client disconnect and server shutdown via BaseContext
	updates := s.store.Watch(r.Context())

	// send the current state first so the client starts in sync
	v := s.store.View()
	initial, err := json.Marshal(snapshot[S]{Name: v.Name(), State: v.State()})
	if err != nil {
		s.logger.Error("failed to encode initial snapshot", "error", err)
		return
	}
	if err := writeAndFlush(initial); err != nil {
		return
	}

	for update := range updates {
		data, err := json.Marshal(snapshot[S]{Name: update.Name(), State: update.State()})
		if err != nil {
			continue
		}
		if err := writeAndFlush(data); err != nil {
			return
		}
	}
}
