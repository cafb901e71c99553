package ports

import (
	"context"

	"github.com/gachisikyeo/gongu-gateway/internal/core/domain"
)

// SessionStore is the policy-level session surface the services depend on.
// Reads never fail; a broken or missing session degrades to a guest.
type SessionStore interface {
	AuthUser(ctx context.Context, sessionID string) domain.Session
	SaveAuthUser(ctx context.Context, sessionID string, s domain.Session)
	SaveTokens(ctx context.Context, sessionID, accessToken, refreshToken string)
	ClearAuth(ctx context.Context, sessionID string)

	SetOAuth2SignupToken(ctx context.Context, sessionID, token string)
	OAuth2SignupToken(ctx context.Context, sessionID string) string
	ClearOAuth2SignupToken(ctx context.Context, sessionID string)
}

// HistoryRecorder accepts product views for asynchronous persistence.
type HistoryRecorder interface {
	Enqueue(view domain.ProductView)
}
