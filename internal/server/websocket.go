package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/zeusync/coulomb/internal/core/events/bus"
	"github.com/zeusync/coulomb/internal/core/interaction"
	"github.com/zeusync/coulomb/internal/core/observability/log"
	"github.com/zeusync/coulomb/internal/core/scene"
)

// session is one open page. Its loop is only touched by the read goroutine, so
// messages are applied strictly one after another.
type session struct {
	id          string
	conn        *websocket.Conn
	loop        *interaction.Loop
	bus         bus.EventBus
	render      scene.Options
	logger      log.Log
	connectedAt time.Time

	writeTimeout time.Duration
	limiter      rateWindow

	closeOnce sync.Once
}

// rateWindow counts messages in one-second windows.
type rateWindow struct {
	limit int
	start time.Time
	count int
}

func (w *rateWindow) allow(now time.Time) bool {
	if now.Sub(w.start) >= time.Second {
		w.start = now
		w.count = 0
	}
	if w.count >= w.limit {
		return false
	}
	w.count++
	return true
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	if n := atomic.AddInt64(&s.sessionCount, 1); n > int64(s.config.MaxSessions) {
		atomic.AddInt64(&s.sessionCount, -1)
		s.logger.Warn("Session rejected", log.Error(ErrMaxSessionsReached), log.Int("max_sessions", s.config.MaxSessions))
		writeError(w, http.StatusServiceUnavailable, ErrMaxSessionsReached)
		return
	}
	defer atomic.AddInt64(&s.sessionCount, -1)

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// the upgrader already answered the request
		s.logger.Debug("WebSocket upgrade failed", append(requestFields(r), log.Error(err))...)
		return
	}

	sess := s.newSession(conn)
	s.sessions.Store(sess.id, sess)
	defer s.sessions.Delete(sess.id)

	sess.logger.Info("Session opened", log.String("remote_addr", conn.RemoteAddr().String()))
	reason := sess.serve(s.config.ReadTimeout, s.config.PingInterval, s.config.MaxMessageSize)
	sess.close(websocket.CloseNormalClosure, "")
	sess.logger.Info("Session closed",
		log.String("reason", reason),
		log.Duration("duration", time.Since(sess.connectedAt)))
}

func (s *Server) newSession(conn *websocket.Conn) *session {
	id := uuid.NewString()
	logger := s.logger.With(log.String("session", id))
	b := bus.New()
	sess := &session{
		id:           id,
		conn:         conn,
		loop:         interaction.New(s.preset, b, logger),
		bus:          b,
		render:       s.render,
		logger:       logger,
		connectedAt:  time.Now(),
		writeTimeout: s.config.WriteTimeout,
		limiter:      rateWindow{limit: s.config.MessageRate},
	}
	// the subscription lives as long as the session's private bus
	_, _ = interaction.Subscribe(b, sess.sendFrame)
	return sess
}

// serve runs the read loop and returns why it ended.
func (sess *session) serve(readTimeout, pingInterval time.Duration, maxMessage int64) string {
	conn := sess.conn
	conn.SetReadLimit(maxMessage)
	_ = conn.SetReadDeadline(time.Now().Add(readTimeout))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(readTimeout))
	})

	done := make(chan struct{})
	defer close(done)
	go sess.keepAlive(pingInterval, done)

	if _, err := sess.loop.Refresh(); err != nil {
		return "initial frame: " + err.Error()
	}

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				sess.logger.Warn("Session read failed", log.Error(err))
			}
			return "read: " + err.Error()
		}

		err = sess.handle(data)
		switch {
		case err == nil:
		case errors.Is(err, interaction.ErrRenderFailed):
			return "write: " + err.Error()
		default:
			if werr := sess.sendError(err); werr != nil {
				return "write: " + werr.Error()
			}
		}
	}
}

// keepAlive pings until done. WriteControl may run concurrently with the
// read goroutine's writes.
func (sess *session) keepAlive(interval time.Duration, done <-chan struct{}) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			deadline := time.Now().Add(sess.writeTimeout)
			if err := sess.conn.WriteControl(websocket.PingMessage, nil, deadline); err != nil {
				return
			}
		case <-done:
			return
		}
	}
}

// handle applies one client message. A successful change is rendered through
// the bus before handle returns.
func (sess *session) handle(data []byte) error {
	if !sess.limiter.allow(time.Now()) {
		return ErrRateLimited
	}

	var msg ClientMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidMessage, err)
	}

	var err error
	switch msg.Type {
	case MessageSet:
		if msg.Control == "" || msg.Value == nil {
			return fmt.Errorf("%w: set needs control and value", ErrInvalidMessage)
		}
		_, err = sess.loop.Set(msg.Control, *msg.Value)
	case MessageNudge:
		if msg.Control == "" {
			return fmt.Errorf("%w: nudge needs control", ErrInvalidMessage)
		}
		_, err = sess.loop.Nudge(msg.Control, msg.Steps)
	case MessageState:
		if msg.State == nil {
			return fmt.Errorf("%w: state needs state", ErrInvalidMessage)
		}
		_, err = sess.loop.Apply(*msg.State)
	case MessageReset:
		_, err = sess.loop.Reset()
	case MessageRefresh:
		_, err = sess.loop.Refresh()
	default:
		return fmt.Errorf("%w: unknown type %q", ErrInvalidMessage, msg.Type)
	}
	return err
}

func (sess *session) sendFrame(frame interaction.Frame) error {
	sc := scene.Build(frame, sess.render)
	return sess.write(ServerMessage{Type: MessageFrame, Session: sess.id, Frame: &frame, Scene: &sc})
}

func (sess *session) sendError(err error) error {
	sess.logger.Debug("Message rejected", log.Error(err))
	return sess.write(ServerMessage{Type: MessageError, Session: sess.id, Error: err.Error()})
}

func (sess *session) write(msg ServerMessage) error {
	_ = sess.conn.SetWriteDeadline(time.Now().Add(sess.writeTimeout))
	return sess.conn.WriteJSON(msg)
}

func (sess *session) close(code int, text string) {
	sess.closeOnce.Do(func() {
		deadline := time.Now().Add(sess.writeTimeout)
		_ = sess.conn.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(code, text), deadline)
		_ = sess.conn.Close()
	})
}
