package channel

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/spec-kit/hashtagpe-console/internal/config"
	"github.com/spec-kit/hashtagpe-console/internal/domain"
	"github.com/spec-kit/hashtagpe-console/internal/events"
	"github.com/spec-kit/hashtagpe-console/internal/session"
)

// State is the channel's connection state.
type State int

const (
	StateClosed State = iota
	StateConnecting
	StateOpen
)

func (s State) String() string {
	switch s {
	case StateConnecting:
		return "connecting"
	case StateOpen:
		return "open"
	default:
		return "closed"
	}
}

// Envelope is the wire frame: a named event with an opaque payload.
type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

type authPayload struct {
	Token string `json:"token"`
	Role  string `json:"role"`
}

const (
	eventAuth      = "auth"
	eventJoinAdmin = "join_admin_notifications"
	eventJoinRoom  = "join_client_room"
)

// DialFunc opens the raw websocket transport. Swappable in tests.
type DialFunc func(ctx context.Context, url string) (*websocket.Conn, error)

// errSuperseded marks work belonging to a generation that was torn down
// while the work was still in flight.
var errSuperseded = errors.New("channel generation superseded")

// Manager owns the live notification channel. It is driven exclusively
// by session transitions: it opens only while an identity is
// authenticated, closes before opening on identity switches, and tears
// down synchronously inside the logout transition. One connection per
// identity, never two.
type Manager struct {
	cfg        config.SocketConfig
	logger     *zap.Logger
	dispatcher events.Dispatcher
	counters   *Counters
	dial       DialFunc

	mu         sync.Mutex
	state      State
	conn       *websocket.Conn
	cancelDial context.CancelFunc
	gen        uint64
	retries    int
	identity   string
}

// NewManager builds the channel manager with the default websocket dialer.
func NewManager(cfg config.SocketConfig, dispatcher events.Dispatcher, counters *Counters, logger *zap.Logger) *Manager {
	dialer := &websocket.Dialer{HandshakeTimeout: cfg.DialTimeout()}
	return &Manager{
		cfg:        cfg,
		logger:     logger,
		dispatcher: dispatcher,
		counters:   counters,
		dial: func(ctx context.Context, url string) (*websocket.Conn, error) {
			conn, resp, err := dialer.DialContext(ctx, url, nil)
			if resp != nil && resp.Body != nil {
				_ = resp.Body.Close()
			}
			return conn, err
		},
	}
}

// HandleTransition reacts to a session state change. Registered as a
// controller observer, so it runs synchronously inside login/logout.
func (m *Manager) HandleTransition(t session.Transition) {
	switch t.To {
	case session.PhaseAuthenticated:
		m.mu.Lock()
		m.teardownLocked()
		m.gen++
		gen := m.gen
		m.state = StateConnecting
		m.retries = 0
		m.identity = t.Claim.ID
		m.mu.Unlock()

		// unread counts are scoped to one identity's session
		m.counters.Reset()

		go m.run(gen, t.Claim, t.Token)
	case session.PhaseAnonymous:
		m.mu.Lock()
		m.gen++
		m.teardownLocked()
		m.identity = ""
		m.mu.Unlock()
	}
}

// Snapshot reports the current state, retry count and bound identity.
func (m *Manager) Snapshot() (State, int, string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state, m.retries, m.identity
}

// run drives the connect/read/retry loop for one identity generation.
// Any bump of the generation counter makes the whole loop a no-op.
func (m *Manager) run(gen uint64, claim *domain.Claim, token string) {
	attempts := 0
	for {
		if m.stale(gen) {
			return
		}

		conn, err := m.open(gen, claim, token)
		if err != nil {
			if errors.Is(err, errSuperseded) {
				return
			}
			attempts++
			m.logger.Warn("channel handshake failed",
				zap.Int("attempt", attempts), zap.Error(err))
			if !m.recordRetry(gen, attempts) {
				return
			}
			if attempts >= m.maxRetries() {
				m.giveUp(gen)
				return
			}
			time.Sleep(m.cfg.RetryBackoff())
			continue
		}

		if !m.install(gen, conn) {
			_ = conn.Close()
			return
		}
		attempts = 0
		m.logger.Info("channel open", zap.String("identity", claim.ID), zap.String("role", string(claim.Role)))
		m.publish(events.EventChannelOpened, nil)

		m.readLoop(gen, conn)

		if m.stale(gen) {
			return
		}
		m.detach(gen)
		m.publish(events.EventChannelClosed, nil)

		attempts++
		if attempts >= m.maxRetries() {
			m.giveUp(gen)
			return
		}
		time.Sleep(m.cfg.RetryBackoff())
	}
}

// open dials the transport and performs the handshake: the auth frame
// first, then exactly one room-join event selected by role. Reconnects
// re-emit the join; the server treats it as idempotent. Teardown cancels
// an in-flight dial, and a dial that races teardown is discarded before
// any credentials go over the wire.
func (m *Manager) open(gen uint64, claim *domain.Claim, token string) (*websocket.Conn, error) {
	ctx, cancel := context.WithTimeout(context.Background(), m.cfg.DialTimeout())
	defer cancel()

	if !m.armDial(gen, cancel) {
		return nil, errSuperseded
	}
	conn, err := m.dial(ctx, m.cfg.URL)
	m.disarmDial(gen)
	if err != nil {
		if m.stale(gen) {
			return nil, errSuperseded
		}
		return nil, err
	}
	if m.stale(gen) {
		_ = conn.Close()
		return nil, errSuperseded
	}

	auth, err := json.Marshal(authPayload{Token: token, Role: string(claim.Role)})
	if err != nil {
		_ = conn.Close()
		return nil, err
	}
	if err := conn.WriteJSON(Envelope{Event: eventAuth, Data: auth}); err != nil {
		_ = conn.Close()
		return nil, err
	}

	join := eventJoinRoom
	if claim.Role == domain.RoleAdmin {
		join = eventJoinAdmin
	}
	id, err := json.Marshal(claim.ID)
	if err != nil {
		_ = conn.Close()
		return nil, err
	}
	if err := conn.WriteJSON(Envelope{Event: join, Data: id}); err != nil {
		_ = conn.Close()
		return nil, err
	}

	return conn, nil
}

// readLoop relays server-pushed events until the transport drops or the
// generation goes stale.
func (m *Manager) readLoop(gen uint64, conn *websocket.Conn) {
	for {
		var envelope Envelope
		if err := conn.ReadJSON(&envelope); err != nil {
			if !m.stale(gen) {
				m.logger.Warn("channel transport lost", zap.Error(err))
			}
			return
		}
		if envelope.Event == "" {
			continue
		}
		eventType := events.EventType(envelope.Event)
		m.counters.Increment(eventType)
		m.publish(eventType, envelope.Data)
	}
}

func (m *Manager) publish(eventType events.EventType, payload json.RawMessage) {
	_ = m.dispatcher.Publish(context.Background(), events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Timestamp: time.Now(),
		Payload:   payload,
	})
}

func (m *Manager) stale(gen uint64) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return gen != m.gen
}

// armDial registers the cancel func for an in-flight dial so teardown
// can abort it. Refused once the generation has moved on.
func (m *Manager) armDial(gen uint64, cancel context.CancelFunc) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if gen != m.gen {
		return false
	}
	m.cancelDial = cancel
	return true
}

func (m *Manager) disarmDial(gen uint64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if gen == m.gen {
		m.cancelDial = nil
	}
}

func (m *Manager) recordRetry(gen uint64, attempts int) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if gen != m.gen {
		return false
	}
	m.retries = attempts
	return true
}

func (m *Manager) install(gen uint64, conn *websocket.Conn) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if gen != m.gen {
		return false
	}
	m.conn = conn
	m.state = StateOpen
	return true
}

func (m *Manager) detach(gen uint64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if gen != m.gen {
		return
	}
	if m.conn != nil {
		_ = m.conn.Close()
		m.conn = nil
	}
	m.state = StateConnecting
}

// giveUp leaves the channel closed until the next identity change
// forces a fresh attempt.
func (m *Manager) giveUp(gen uint64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if gen != m.gen {
		return
	}
	m.state = StateClosed
	m.logger.Warn("channel retries exhausted, staying closed")
}

func (m *Manager) teardownLocked() {
	if m.cancelDial != nil {
		m.cancelDial()
		m.cancelDial = nil
	}
	if m.conn != nil {
		_ = m.conn.Close()
		m.conn = nil
	}
	m.state = StateClosed
}

func (m *Manager) maxRetries() int {
	if m.cfg.MaxRetries <= 0 {
		return 5
	}
	return m.cfg.MaxRetries
}
