package session

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	fibersession "github.com/gofiber/fiber/v2/middleware/session"
)

const (
	stateKey  = "state"
	handleKey = "session.handle"
)

// Config controls the session cookie and its backing storage.
type Config struct {
	Expiration   time.Duration
	CookieSecure bool
	// Storage persists session data. Nil keeps sessions in process memory.
	Storage fiber.Storage
}

// Manager loads and saves State through Fiber's session store.
type Manager struct {
	store *fibersession.Store
}

// NewManager creates a Manager using the given configuration.
func NewManager(cfg Config) *Manager {
	if cfg.Expiration <= 0 {
		cfg.Expiration = 24 * time.Hour
	}
	return &Manager{
		store: fibersession.New(fibersession.Config{
			Expiration:     cfg.Expiration,
			Storage:        cfg.Storage,
			KeyLookup:      "cookie:storefront_session",
			CookieHTTPOnly: true,
			CookieSecure:   cfg.CookieSecure,
			CookieSameSite: "Lax",
		}),
	}
}

// Load returns the state of the session attached to the request, creating
// an empty one when there is none.
func (m *Manager) Load(c *fiber.Ctx) (*State, error) {
	sess, err := m.store.Get(c)
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	c.Locals(handleKey, sess)

	state := NewState()
	raw, ok := sess.Get(stateKey).(string)
	if ok && raw != "" {
		if err := json.Unmarshal([]byte(raw), state); err != nil {
			return nil, fmt.Errorf("failed to decode session state: %w", err)
		}
		if state.Cart == nil {
			state.Cart = Cart{}
		}
	}
	return state, nil
}

// Save writes state back to the session attached to the request. It reuses
// the handle obtained by Load when there is one.
func (m *Manager) Save(c *fiber.Ctx, state *State) error {
	sess, ok := c.Locals(handleKey).(*fibersession.Session)
	if !ok {
		var err error
		if sess, err = m.store.Get(c); err != nil {
			return fmt.Errorf("failed to get session: %w", err)
		}
	}
	if state.regenerate {
		if err := sess.Regenerate(); err != nil {
			return fmt.Errorf("failed to regenerate session: %w", err)
		}
		state.regenerate = false
	}

	raw, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to encode session state: %w", err)
	}
	sess.Set(stateKey, string(raw))
	if err := sess.Save(); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}
