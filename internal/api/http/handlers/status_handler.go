package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/hashtagpe-console/internal/channel"
	"github.com/spec-kit/hashtagpe-console/internal/observability"
	"github.com/spec-kit/hashtagpe-console/internal/session"
)

// StatusHandler exposes a snapshot of the console's session, channel and
// counter state for operators.
type StatusHandler struct {
	sessions *session.Controller
	channels *channel.Manager
	counters *channel.Counters
	metrics  *observability.Metrics
}

// NewStatusHandler constructs the handler.
func NewStatusHandler(sessions *session.Controller, channels *channel.Manager, counters *channel.Counters, metrics *observability.Metrics) *StatusHandler {
	return &StatusHandler{sessions: sessions, channels: channels, counters: counters, metrics: metrics}
}

// Snapshot handles GET /status.
func (h *StatusHandler) Snapshot(c *fiber.Ctx) error {
	claim, phase := h.sessions.Current()
	sessionView := fiber.Map{
		"phase": phase.String(),
	}
	if claim != nil {
		sessionView["email"] = claim.Email
		sessionView["role"] = string(claim.Role)
		sessionView["expires_at"] = claim.ExpiresAt
	}

	state, retries, identity := h.channels.Snapshot()
	channelView := fiber.Map{
		"state":   state.String(),
		"retries": retries,
	}
	if identity != "" {
		channelView["identity"] = identity
	}

	return c.JSON(fiber.Map{
		"session":  sessionView,
		"channel":  channelView,
		"counters": h.counters.Snapshot(),
		"requests": h.metrics.RequestSnapshot(),
	})
}
