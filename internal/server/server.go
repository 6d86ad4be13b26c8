package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
	"golang.org/x/sync/errgroup"

	"github.com/zeusync/coulomb/internal/config"
	"github.com/zeusync/coulomb/internal/core/interaction"
	"github.com/zeusync/coulomb/internal/core/observability/log"
	"github.com/zeusync/coulomb/internal/core/scene"
)

// Server hosts the browser front-end: the page, a stateless JSON endpoint and
// one WebSocket session per open page.
type Server struct {
	config config.ServerConfig
	preset interaction.Preset
	render scene.Options
	logger log.Log

	upgrader websocket.Upgrader
	handler  http.Handler

	sessions     sync.Map // map[string]*session
	sessionCount int64    // atomic

	running int32 // atomic bool
	addrMu  sync.RWMutex
	addr    net.Addr
}

// NewServer resolves the preset from cfg and wires the routes.
func NewServer(cfg config.Config, logger log.Log) (*Server, error) {
	preset, err := cfg.ResolvePreset()
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = log.Nop()
	}

	s := &Server{
		config: cfg.Server,
		preset: preset,
		render: cfg.Render,
		logger: logger.With(log.String("component", "server")),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
		},
	}
	s.handler = s.routes()

	s.logger.Info("Server created",
		log.String("listen_addr", cfg.Server.ListenAddr),
		log.String("preset", preset.Name),
		log.Int("max_sessions", cfg.Server.MaxSessions))

	return s, nil
}

// Handler exposes the routes, e.g. for httptest.
func (s *Server) Handler() http.Handler { return s.handler }

// SessionCount is the number of open WebSocket sessions.
func (s *Server) SessionCount() int { return int(atomic.LoadInt64(&s.sessionCount)) }

// Addr is the bound listener address once Run is serving, nil before.
func (s *Server) Addr() net.Addr {
	s.addrMu.RLock()
	defer s.addrMu.RUnlock()
	return s.addr
}

// Run serves until ctx is cancelled, then closes every session and shuts the
// HTTP server down within the configured grace period.
func (s *Server) Run(ctx context.Context) error {
	if !atomic.CompareAndSwapInt32(&s.running, 0, 1) {
		return ErrServerAlreadyRunning
	}
	defer atomic.StoreInt32(&s.running, 0)

	ln, err := net.Listen("tcp", s.config.ListenAddr)
	if err != nil {
		s.logger.Error("Failed to create listener", log.Error(err))
		return err
	}
	s.addrMu.Lock()
	s.addr = ln.Addr()
	s.addrMu.Unlock()

	httpServer := &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	s.logger.Info("Server listening", log.String("addr", ln.Addr().String()))

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		s.logger.Info("Stopping server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.config.ShutdownGrace)
		defer cancel()

		s.closeSessions()
		return httpServer.Shutdown(shutdownCtx)
	})

	err = g.Wait()
	s.addrMu.Lock()
	s.addr = nil
	s.addrMu.Unlock()
	if err != nil {
		s.logger.Error("Server stopped with error", log.Error(err))
		return err
	}
	s.logger.Info("Server stopped")
	return nil
}

// closeSessions tells every client the server is going away.
func (s *Server) closeSessions() {
	s.sessions.Range(func(_, value any) bool {
		if sess, ok := value.(*session); ok {
			sess.close(websocket.CloseGoingAway, "server shutting down")
		}
		return true
	})
}
