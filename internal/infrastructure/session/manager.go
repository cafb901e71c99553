// Package session implements the gateway's per-browser session store: a
// Result-returning repository boundary (Redis in production, in-memory in
// tests) and a Manager that applies the deliberate "ignore and default"
// policy on top of it. Reads never fail (a missing, corrupt, or unreachable
// session degrades to a guest) and writes are best-effort.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/gachisikyeo/gongu-gateway/internal/core/domain"
	"github.com/gachisikyeo/gongu-gateway/internal/core/ports"
)

const (
	fieldAccessToken       = "accessToken"
	fieldRefreshToken      = "refreshToken"
	fieldAuthUser          = "authUser"
	fieldOAuth2SignupToken = "oauth2SignupToken"
)

// Legacy keys written by earlier frontend builds. The auth set shadowed the
// authoritative profile and is swept on every token save; the data set is
// only removed on logout.
var (
	legacyAuthFields = []string{
		"devUserRole",
		"userType",
		"signup_nickName",
	}
	legacyDataFields = []string{
		"sellerBusinessInfoData",
		"sellerBusinessInfoRegistered",
		"gachi_my_orders_v1",
	}
)

const (
	defaultSessionTTL     = 14 * 24 * time.Hour
	defaultSignupTokenTTL = 10 * time.Minute
)

// Manager is the single authorized mutator of session state. It is
// constructed once per process and injected wherever session access is
// needed.
type Manager struct {
	repo           ports.SessionRepository
	log            zerolog.Logger
	sessionTTL     time.Duration
	signupTokenTTL time.Duration
}

// NewManager wraps a repository with the gateway's session policy.
func NewManager(repo ports.SessionRepository, log zerolog.Logger, sessionTTL, signupTokenTTL time.Duration) *Manager {
	if sessionTTL <= 0 {
		sessionTTL = defaultSessionTTL
	}
	if signupTokenTTL <= 0 {
		signupTokenTTL = defaultSignupTokenTTL
	}
	return &Manager{repo: repo, log: log, sessionTTL: sessionTTL, signupTokenTTL: signupTokenTTL}
}

// AuthUser returns the persisted session profile, or the guest default on
// missing, corrupt, or unreadable data. It never fails.
func (m *Manager) AuthUser(ctx context.Context, sessionID string) domain.Session {
	raw, err := m.repo.Get(ctx, sessionID, fieldAuthUser)
	if err != nil {
		if !errors.Is(err, domain.ErrSessionFieldNotFound) {
			m.log.Debug().Err(err).Msg("session read failed, defaulting to guest")
		}
		return domain.GuestSession()
	}

	var s domain.Session
	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		m.log.Debug().Err(err).Msg("corrupt session profile, defaulting to guest")
		return domain.GuestSession()
	}
	return s.Normalize()
}

// SaveAuthUser persists the session profile. Best-effort: storage failures
// are logged and swallowed.
func (m *Manager) SaveAuthUser(ctx context.Context, sessionID string, s domain.Session) {
	raw, err := json.Marshal(s.Normalize())
	if err != nil {
		m.log.Debug().Err(err).Msg("session profile marshal failed")
		return
	}
	if err := m.repo.Set(ctx, sessionID, fieldAuthUser, string(raw), m.sessionTTL); err != nil {
		m.log.Debug().Err(err).Msg("session profile write failed")
	}
}

// AccessToken returns the stored access token, or "" when absent.
func (m *Manager) AccessToken(ctx context.Context, sessionID string) string {
	return m.field(ctx, sessionID, fieldAccessToken)
}

// RefreshToken returns the stored refresh token, or "" when absent.
func (m *Manager) RefreshToken(ctx context.Context, sessionID string) string {
	return m.field(ctx, sessionID, fieldRefreshToken)
}

// SaveTokens persists a token pair and sweeps legacy fields, best-effort.
func (m *Manager) SaveTokens(ctx context.Context, sessionID, accessToken, refreshToken string) {
	if err := m.repo.Delete(ctx, sessionID, legacyAuthFields...); err != nil {
		m.log.Debug().Err(err).Msg("legacy field sweep failed")
	}
	if err := m.repo.Set(ctx, sessionID, fieldAccessToken, accessToken, m.sessionTTL); err != nil {
		m.log.Debug().Err(err).Msg("access token write failed")
	}
	if err := m.repo.Set(ctx, sessionID, fieldRefreshToken, refreshToken, m.sessionTTL); err != nil {
		m.log.Debug().Err(err).Msg("refresh token write failed")
	}
}

// ClearAuth removes tokens, the profile, the signup token, and every legacy
// field. It always succeeds, even when nothing was stored.
func (m *Manager) ClearAuth(ctx context.Context, sessionID string) {
	fields := []string{fieldAccessToken, fieldRefreshToken, fieldAuthUser, fieldOAuth2SignupToken}
	fields = append(fields, legacyAuthFields...)
	fields = append(fields, legacyDataFields...)
	if err := m.repo.Delete(ctx, sessionID, fields...); err != nil {
		m.log.Debug().Err(err).Msg("session clear failed")
	}
}

// SetOAuth2SignupToken stores the short-lived interstitial signup token.
func (m *Manager) SetOAuth2SignupToken(ctx context.Context, sessionID, token string) {
	if err := m.repo.Set(ctx, sessionID, fieldOAuth2SignupToken, token, m.signupTokenTTL); err != nil {
		m.log.Debug().Err(err).Msg("oauth2 signup token write failed")
	}
}

// OAuth2SignupToken returns the interstitial signup token, or "" when absent
// or expired.
func (m *Manager) OAuth2SignupToken(ctx context.Context, sessionID string) string {
	return m.field(ctx, sessionID, fieldOAuth2SignupToken)
}

// ClearOAuth2SignupToken removes the interstitial signup token.
func (m *Manager) ClearOAuth2SignupToken(ctx context.Context, sessionID string) {
	if err := m.repo.Delete(ctx, sessionID, fieldOAuth2SignupToken); err != nil {
		m.log.Debug().Err(err).Msg("oauth2 signup token delete failed")
	}
}

func (m *Manager) field(ctx context.Context, sessionID, field string) string {
	val, err := m.repo.Get(ctx, sessionID, field)
	if err != nil {
		if !errors.Is(err, domain.ErrSessionFieldNotFound) {
			m.log.Debug().Err(err).Str("field", field).Msg("session field read failed")
		}
		return ""
	}
	return val
}
