package session

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/spec-kit/hashtagpe-console/internal/domain"
	"github.com/spec-kit/hashtagpe-console/pkg/util"
)

// Phase is the controller's position in its state machine.
type Phase int

const (
	PhaseInitializing Phase = iota
	PhaseAnonymous
	PhaseAuthenticated
)

func (p Phase) String() string {
	switch p {
	case PhaseInitializing:
		return "initializing"
	case PhaseAnonymous:
		return "anonymous"
	case PhaseAuthenticated:
		return "authenticated"
	default:
		return "unknown"
	}
}

// ErrLoginSuperseded reports a credential exchange that resolved after
// the session had already moved on (logout or a newer login). The result
// is discarded, never applied.
var ErrLoginSuperseded = errors.New("login superseded by a newer session transition")

// ErrAlreadyAuthenticated reports a login attempt while an identity is
// still active. Switching identity is always a full logout/login cycle.
var ErrAlreadyAuthenticated = errors.New("already authenticated, logout first")

// Transition describes one observable state change. Claim and Token are
// set only when To is PhaseAuthenticated.
type Transition struct {
	From  Phase
	To    Phase
	Claim *domain.Claim
	Token string
}

// Observer receives transitions synchronously, in order, before the
// triggering call returns.
type Observer func(Transition)

// Exchanger performs the credential exchange against the backend.
type Exchanger interface {
	ExchangeCredentials(ctx context.Context, email, password string) (string, error)
}

// Controller orchestrates login and logout and is the single writer of
// the token store. At most one identity is active at a time; switching
// identity is always a full logout/login cycle.
type Controller struct {
	store    Store
	decoder  *Decoder
	exchange Exchanger
	logger   *zap.Logger

	// notifyMu serializes transition delivery so observers see
	// close-before-open ordering across identity switches.
	notifyMu sync.Mutex

	mu    sync.Mutex
	phase Phase
	claim *domain.Claim
	epoch uint64

	subMu     sync.Mutex
	observers []Observer
}

// NewController builds the controller. The decoder shares the store so
// dead tokens are cleared at decode time.
func NewController(store Store, exchange Exchanger, logger *zap.Logger) *Controller {
	return &Controller{
		store:    store,
		decoder:  NewDecoder(store),
		exchange: exchange,
		logger:   logger,
		phase:    PhaseInitializing,
	}
}

// Subscribe registers an observer for session transitions.
func (c *Controller) Subscribe(obs Observer) {
	c.subMu.Lock()
	defer c.subMu.Unlock()
	c.observers = append(c.observers, obs)
}

// Initialize restores the session from the token store. It always
// terminates: an empty store, a garbage token and an expired token all
// resolve to the anonymous state.
func (c *Controller) Initialize() {
	token, err := c.store.Read()
	if err != nil {
		c.logger.Warn("token store unreadable, starting anonymous", zap.Error(err))
		token = ""
	}

	var claim *domain.Claim
	if token != "" {
		claim, err = c.decoder.Decode(token)
		if err != nil {
			c.logger.Debug("stored token rejected", zap.Error(err))
		}
	}

	c.notifyMu.Lock()
	defer c.notifyMu.Unlock()

	c.mu.Lock()
	if c.phase != PhaseInitializing {
		c.mu.Unlock()
		return
	}
	t := Transition{From: PhaseInitializing}
	if claim != nil {
		c.phase = PhaseAuthenticated
		c.claim = claim
		t.To = PhaseAuthenticated
		t.Claim = claim
		t.Token = token
	} else {
		c.phase = PhaseAnonymous
		t.To = PhaseAnonymous
	}
	c.mu.Unlock()

	c.deliver(t)
}

// Login exchanges credentials for a token, persists it and transitions
// to authenticated. Refused while an identity is already active. The
// exchange runs without locks held; if the session epoch advanced while
// the request was in flight the stale result is discarded.
func (c *Controller) Login(ctx context.Context, email, password string) (*domain.Claim, error) {
	c.mu.Lock()
	if c.phase == PhaseAuthenticated {
		c.mu.Unlock()
		return nil, ErrAlreadyAuthenticated
	}
	startEpoch := c.epoch
	c.mu.Unlock()

	token, err := c.exchange.ExchangeCredentials(ctx, email, password)
	if err != nil {
		return nil, err
	}

	c.notifyMu.Lock()
	defer c.notifyMu.Unlock()

	c.mu.Lock()
	if c.epoch != startEpoch {
		c.mu.Unlock()
		c.logger.Info("discarding stale login result", zap.String("email", email))
		return nil, ErrLoginSuperseded
	}

	if err := c.store.Save(token); err != nil {
		c.mu.Unlock()
		return nil, err
	}

	claim, err := c.decoder.Decode(token)
	if err != nil {
		// a successful exchange that yields an undecodable token is a
		// fatal inconsistency, not a silent fallback to anonymous
		c.mu.Unlock()
		return nil, util.NewAuthError(util.AuthCodeInvalidSession, "invalid session after login", err)
	}

	from := c.phase
	c.phase = PhaseAuthenticated
	c.claim = claim
	c.epoch++
	c.mu.Unlock()

	c.deliver(Transition{From: from, To: PhaseAuthenticated, Claim: claim, Token: token})
	return claim, nil
}

// Logout clears the store and transitions to anonymous. Observers run
// before Logout returns, so the notification channel tears down its
// connection within the same call.
func (c *Controller) Logout() {
	c.notifyMu.Lock()
	defer c.notifyMu.Unlock()

	c.mu.Lock()
	if c.phase == PhaseAnonymous {
		c.mu.Unlock()
		return
	}
	if err := c.store.Clear(); err != nil {
		c.logger.Warn("failed to clear token store", zap.Error(err))
	}
	from := c.phase
	c.phase = PhaseAnonymous
	c.claim = nil
	c.epoch++
	c.mu.Unlock()

	c.deliver(Transition{From: from, To: PhaseAnonymous})
}

// Current returns the active claim, if any, and the current phase.
func (c *Controller) Current() (*domain.Claim, Phase) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.claim, c.phase
}

// IsAuthenticated reports whether an identity claim is active.
func (c *Controller) IsAuthenticated() bool {
	_, phase := c.Current()
	return phase == PhaseAuthenticated
}

// Loading reports whether Initialize has not resolved yet. Routing must
// withhold decisions while this is true.
func (c *Controller) Loading() bool {
	_, phase := c.Current()
	return phase == PhaseInitializing
}

func (c *Controller) deliver(t Transition) {
	c.subMu.Lock()
	observers := append([]Observer{}, c.observers...)
	c.subMu.Unlock()

	for _, obs := range observers {
		obs(t)
	}
}
