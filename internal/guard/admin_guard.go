package guard

import (
	"context"
	"net/http"
	"sync"

	"jobmatch-client/internal/rest"
	jobmatch_errors "jobmatch-client/pkg/errors"
	"jobmatch-client/pkg/logger"
)

// State is where the admin gate currently stands. Verified is the only
// state that renders the admin area; NotAdmin is terminal.
type State string

const (
	StateChecking    State = "checking"
	StateNotAdmin    State = "not-admin-error"
	StateNeedsSetup  State = "needs-setup"
	StateNeedsVerify State = "needs-verify"
	StateVerified    State = "verified"
)

// AdminAPI is the 2FA slice of the REST client.
type AdminAPI interface {
	TwoFactorStatus(ctx context.Context) (bool, error)
	BeginTwoFactorSetup(ctx context.Context) (rest.TwoFactorSetup, error)
	VerifyTwoFactor(ctx context.Context, code string) (string, error)
	ProbeAdminSession(ctx context.Context, sessionToken string) error
}

// AuthSource is the token accessor slice the guard needs.
type AuthSource interface {
	Valid() bool
	IsAdmin() bool
}

// Navigator is how the guard forces the app elsewhere: to login when no
// token resolves, out of the admin area when 2FA is refused. 2FA is
// mandatory for admins, cancelling is never a silent no-op.
type Navigator interface {
	NavigateToLogin()
	LeaveAdmin()
}

// SessionStore holds the short-lived 2FA session token between mounts.
type SessionStore interface {
	Get(ctx context.Context) (string, error)
	Set(ctx context.Context, token string) error
	Clear(ctx context.Context) error
}

// Guard gates the admin area behind mandatory 2FA.
type Guard struct {
	api      AdminAPI
	auth     AuthSource
	sessions SessionStore
	nav      Navigator
	log      *logger.Logger

	mu    sync.Mutex
	state State
}

func New(api AdminAPI, auth AuthSource, sessions SessionStore, nav Navigator, log *logger.Logger) *Guard {
	return &Guard{
		api:      api,
		auth:     auth,
		sessions: sessions,
		nav:      nav,
		log:      log,
		state:    StateChecking,
	}
}

func (g *Guard) State() State {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state
}

// Allowed reports whether the admin area may render.
func (g *Guard) Allowed() bool {
	return g.State() == StateVerified
}

func (g *Guard) setState(s State) {
	g.mu.Lock()
	g.state = s
	g.mu.Unlock()
}

// Mount runs the entry check: token, role, cached session probe, then the
// 2FA status fetch. It returns the state the guard lands in.
func (g *Guard) Mount(ctx context.Context) (State, error) {
	g.setState(StateChecking)

	if !g.auth.Valid() {
		g.log.Warnf("admin mount without valid token, redirecting to login")
		g.nav.NavigateToLogin()
		return StateChecking, jobmatch_errors.ErrAuthRequired
	}
	if !g.auth.IsAdmin() {
		g.setState(StateNotAdmin)
		return StateNotAdmin, jobmatch_errors.ErrNotAdmin
	}

	if token, err := g.sessions.Get(ctx); err == nil && token != "" {
		probeErr := g.api.ProbeAdminSession(ctx, token)
		if probeErr == nil {
			g.setState(StateVerified)
			return StateVerified, nil
		}
		apiErr, ok := jobmatch_errors.AsAPIError(probeErr)
		if !ok || apiErr.Status != http.StatusForbidden {
			return StateChecking, probeErr
		}
		// stale session, fall through to the status check
		g.log.Infof("2fa session rejected, clearing cached token")
		if err := g.sessions.Clear(ctx); err != nil {
			g.log.Errorf("clear 2fa session: %v", err)
		}
	}

	enabled, err := g.api.TwoFactorStatus(ctx)
	if err != nil {
		return StateChecking, err
	}
	if !enabled {
		g.setState(StateNeedsSetup)
		return StateNeedsSetup, nil
	}
	g.setState(StateNeedsVerify)
	return StateNeedsVerify, nil
}

// BeginSetup starts 2FA enrolment. Only valid from needs-setup.
func (g *Guard) BeginSetup(ctx context.Context) (rest.TwoFactorSetup, error) {
	if g.State() != StateNeedsSetup {
		return rest.TwoFactorSetup{}, jobmatch_errors.ErrInvalidInput
	}
	return g.api.BeginTwoFactorSetup(ctx)
}

// CompleteSetup moves an enrolled admin on to code verification.
func (g *Guard) CompleteSetup() (State, error) {
	if g.State() != StateNeedsSetup {
		return g.State(), jobmatch_errors.ErrInvalidInput
	}
	g.setState(StateNeedsVerify)
	return StateNeedsVerify, nil
}

// Verify exchanges a TOTP code for a session token, stores it, and opens
// the gate.
func (g *Guard) Verify(ctx context.Context, code string) (State, error) {
	if g.State() != StateNeedsVerify {
		return g.State(), jobmatch_errors.ErrInvalidInput
	}
	token, err := g.api.VerifyTwoFactor(ctx, code)
	if err != nil {
		return StateNeedsVerify, err
	}
	if err := g.sessions.Set(ctx, token); err != nil {
		g.log.Errorf("store 2fa session: %v", err)
	}
	g.setState(StateVerified)
	g.log.Infof("2fa verified, admin area unlocked")
	return StateVerified, nil
}

// Cancel abandons setup or verification. The guard never degrades to an
// unverified admin view, it navigates out of the admin area instead.
func (g *Guard) Cancel() {
	switch g.State() {
	case StateNeedsSetup, StateNeedsVerify:
		g.setState(StateChecking)
		g.nav.LeaveAdmin()
	}
}

// MemorySessionStore keeps the 2FA session token for the lifetime of the
// process. The redis-backed store is used when sessions should survive a
// restart.
type MemorySessionStore struct {
	mu    sync.Mutex
	token string
}

func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{}
}

func (m *MemorySessionStore) Get(ctx context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token, nil
}

func (m *MemorySessionStore) Set(ctx context.Context, token string) error {
	m.mu.Lock()
	m.token = token
	m.mu.Unlock()
	return nil
}

func (m *MemorySessionStore) Clear(ctx context.Context) error {
	m.mu.Lock()
	m.token = ""
	m.mu.Unlock()
	return nil
}
