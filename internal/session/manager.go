package session

import (
	"context"
	"sync"
	"time"

	"github.com/trendlens/trendlens/pkg/client"
	"github.com/trendlens/trendlens/pkg/domain"
)

// AuthAPI is the slice of the API client the manager needs.
type AuthAPI interface {
	Login(ctx context.Context, email, password string) (*client.TokenResponse, error)
	Register(ctx context.Context, email, password string) error
}

// Manager owns the session token and its decoded claims. It is the only
// mutator of session state. Views read the derived identity through
// Subject and never see the raw token; the HTTP layer reads Token.
//
// The token and claims are set and cleared together: there is never a
// partial session.
type Manager struct {
	api   AuthAPI
	store Store
	now   func() time.Time

	mu     sync.RWMutex
	token  string
	claims *Claims
}

// Option configures a Manager.
type Option func(*Manager)

// WithClock overrides the wall clock used for expiry checks.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

// NewManager creates a session manager in the unauthenticated state.
func NewManager(api AuthAPI, store Store, opts ...Option) *Manager {
	m := &Manager{api: api, store: store, now: time.Now}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Restore evaluates a previously stored token once at startup. A valid
// token transitions the manager to authenticated. An undecodable or
// expired token is purged from the store and reported: expiry as
// ErrSessionExpired, decode failures as the decode error. An absent
// token restores to unauthenticated silently.
func (m *Manager) Restore() error {
	tok, err := m.store.Read()
	if err != nil {
		return err
	}
	if tok == "" {
		return nil
	}
	claims, err := decodeClaims(tok)
	if err != nil {
		m.store.Clear() //nolint:errcheck // best-effort purge of a bad token
		return err
	}
	if !claims.ExpiresAt.After(m.now()) {
		if err := m.store.Clear(); err != nil {
			return err
		}
		return ErrSessionExpired
	}
	m.mu.Lock()
	m.token, m.claims = tok, &claims
	m.mu.Unlock()
	return nil
}

// Login exchanges credentials for a token and populates the session.
// On any failure the manager stays fully empty. Server rejections come
// back as *AuthError with the server's message verbatim.
func (m *Manager) Login(ctx context.Context, email, password string) error {
	creds := domain.Credentials{Email: email, Password: password}
	if err := creds.Validate(); err != nil {
		return &AuthError{Message: err.Error()}
	}
	resp, err := m.api.Login(ctx, email, password)
	if err != nil {
		if detail := client.Detail(err); detail != "" {
			return &AuthError{Message: detail}
		}
		return err
	}
	claims, err := decodeClaims(resp.AccessToken)
	if err != nil {
		return err
	}
	if err := m.store.Write(resp.AccessToken); err != nil {
		return err
	}
	m.mu.Lock()
	m.token, m.claims = resp.AccessToken, &claims
	m.mu.Unlock()
	return nil
}

// Register creates an account. It never transitions session state; a
// successful registration is typically followed by Login. Server
// rejections come back as *RegistrationError with the message verbatim.
func (m *Manager) Register(ctx context.Context, email, password string) error {
	creds := domain.Credentials{Email: email, Password: password}
	if err := creds.Validate(); err != nil {
		return &RegistrationError{Message: err.Error()}
	}
	if err := m.api.Register(ctx, email, password); err != nil {
		if detail := client.Detail(err); detail != "" {
			return &RegistrationError{Message: detail}
		}
		return err
	}
	return nil
}

// Logout clears the session. The in-memory state is always cleared; a
// store failure is reported but does not resurrect the session.
func (m *Manager) Logout() error {
	m.mu.Lock()
	m.token, m.claims = "", nil
	m.mu.Unlock()
	return m.store.Clear()
}

// IsAuthenticated reports whether a valid session is held. Expiry is
// re-checked against the wall clock on every call: an authenticated
// session silently reads as unauthenticated once its claims expire,
// without an explicit transition event.
func (m *Manager) IsAuthenticated() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.claims != nil && m.claims.ExpiresAt.After(m.now())
}

// Subject returns the identity claim of the current session, or "" when
// unauthenticated. This is the only identity views ever see.
func (m *Manager) Subject() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.claims == nil {
		return ""
	}
	return m.claims.Subject
}

// Token implements client.TokenProvider. An expired session yields "",
// so requests after silent expiry go out unauthenticated.
func (m *Manager) Token() string {
	if !m.IsAuthenticated() {
		return ""
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.token
}
