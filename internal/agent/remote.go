package agent

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/gorilla/websocket"

	"github.com/lox/holdem/internal/game"
)

// ErrDecisionTimeout is returned when a remote agent does not answer in time.
// The connection is closed and every later call fails.
var ErrDecisionTimeout = errors.New("remote agent decision timeout")

// Remote asks an agent on the other end of a websocket. Calls are serialised;
// one request is in flight at a time.
type Remote struct {
	url     string
	conn    *websocket.Conn
	logger  *log.Logger
	clock   quartz.Clock
	timeout time.Duration

	mu     sync.Mutex
	closed bool
}

// RemoteOption configures a Remote
type RemoteOption func(*Remote)

// WithRemoteLogger sets the logger
func WithRemoteLogger(logger *log.Logger) RemoteOption {
	return func(r *Remote) {
		r.logger = logger
	}
}

// WithRemoteClock sets the clock used for decision timeouts
func WithRemoteClock(clock quartz.Clock) RemoteOption {
	return func(r *Remote) {
		r.clock = clock
	}
}

// WithRemoteTimeout bounds each decision; zero waits for the context only
func WithRemoteTimeout(timeout time.Duration) RemoteOption {
	return func(r *Remote) {
		r.timeout = timeout
	}
}

// Dial connects to an agent server. http(s) URLs are rewritten to ws(s).
func Dial(ctx context.Context, serverURL string, opts ...RemoteOption) (*Remote, error) {
	u, err := url.Parse(serverURL)
	if err != nil {
		return nil, fmt.Errorf("invalid agent URL: %w", err)
	}
	switch u.Scheme {
	case "http":
		u.Scheme = "ws"
	case "https":
		u.Scheme = "wss"
	case "ws", "wss":
	default:
		return nil, fmt.Errorf("unsupported agent URL scheme %q", u.Scheme)
	}

	r := &Remote{
		url:    u.String(),
		logger: log.New(io.Discard),
		clock:  quartz.NewReal(),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.logger = r.logger.WithPrefix("remote-agent").With("url", r.url)

	conn, _, err := websocket.DefaultDialer.DialContext(ctx, r.url, nil)
	if err != nil {
		return nil, fmt.Errorf("connect to agent: %w", err)
	}
	r.conn = conn
	r.logger.Info("Connected to agent")
	return r, nil
}

type reply struct {
	decision game.Decision
	err      error
}

func (r *Remote) Decide(ctx context.Context, view game.GameView) (game.Decision, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return game.Decision{}, fmt.Errorf("agent %s: connection closed", r.url)
	}

	msg, err := NewMessage(MessageDecide, view)
	if err != nil {
		return game.Decision{}, err
	}
	if err := r.conn.WriteJSON(msg); err != nil {
		r.closeLocked()
		return game.Decision{}, fmt.Errorf("send view: %w", err)
	}

	done := make(chan reply, 1)
	go func() {
		done <- r.readDecision()
	}()

	timedOut := make(chan struct{})
	if r.timeout > 0 {
		timer := r.clock.AfterFunc(r.timeout, func() {
			close(timedOut)
		})
		defer timer.Stop()
	}

	select {
	case rep := <-done:
		if rep.err != nil {
			return game.Decision{}, rep.err
		}
		r.logger.Debug("Received decision",
			"seat", view.Seat,
			"action", rep.decision.Action,
			"amount", rep.decision.Amount)
		return rep.decision, nil

	case <-timedOut:
		r.logger.Warn("Decision timeout, closing connection", "timeout", r.timeout)
		r.closeLocked()
		return game.Decision{}, ErrDecisionTimeout

	case <-ctx.Done():
		r.closeLocked()
		return game.Decision{}, ctx.Err()
	}
}

func (r *Remote) readDecision() reply {
	var msg Message
	if err := r.conn.ReadJSON(&msg); err != nil {
		return reply{err: fmt.Errorf("read decision: %w", err)}
	}

	switch msg.Type {
	case MessageDecision:
		var d game.Decision
		if err := msg.Decode(&d); err != nil {
			return reply{err: err}
		}
		return reply{decision: d}
	case MessageError:
		var e ErrorData
		if err := msg.Decode(&e); err != nil {
			return reply{err: err}
		}
		return reply{err: fmt.Errorf("agent error: %s", e.Message)}
	default:
		return reply{err: fmt.Errorf("unexpected message type %q", msg.Type)}
	}
}

// Close shuts the connection
func (r *Remote) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.closeLocked()
}

func (r *Remote) closeLocked() error {
	if r.closed {
		return nil
	}
	r.closed = true
	_ = r.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	return r.conn.Close()
}
