package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/gachisikyeo/gongu-gateway/internal/core/domain"
	"github.com/gachisikyeo/gongu-gateway/internal/core/ports"
)

// AuthService drives the login, signup, and OAuth2 flows against the upstream
// auth API and keeps the browser session in sync with their outcomes.
type AuthService struct {
	auth     ports.AuthAPI
	mypage   ports.MyPageAPI
	sessions ports.SessionStore
	logger   zerolog.Logger
}

func NewAuthService(auth ports.AuthAPI, mypage ports.MyPageAPI, sessions ports.SessionStore, logger zerolog.Logger) *AuthService {
	return &AuthService{auth: auth, mypage: mypage, sessions: sessions, logger: logger}
}

// Session returns the current session profile. Always succeeds; an unknown
// session is a guest.
func (s *AuthService) Session(ctx context.Context, sessionID string) domain.Session {
	return s.sessions.AuthUser(ctx, sessionID)
}

// Login exchanges email credentials upstream and stores the resulting token
// pair and profile in the session.
func (s *AuthService) Login(ctx context.Context, sessionID, email, password string) (domain.Session, error) {
	res, err := s.auth.Login(ctx, email, password)
	if err != nil {
		return domain.GuestSession(), err
	}

	s.sessions.SaveTokens(ctx, sessionID, res.AccessToken, res.RefreshToken)
	sess := s.hydrate(ctx, sessionID, res.Session())
	s.sessions.SaveAuthUser(ctx, sessionID, sess)

	s.logger.Info().Int64("user_id", sess.ID).Str("user_type", string(sess.UserType)).Msg("login")
	return sess, nil
}

// Signup registers a new email account. The caller logs in afterwards; no
// session state changes here.
func (s *AuthService) Signup(ctx context.Context, in ports.SignupInput) error {
	return s.auth.Signup(ctx, in)
}

// CompleteOAuth2Redirect consumes the parameters the upstream OAuth2 redirect
// delivered. An existing user arrives with a full token pair; a first-time
// user arrives with only a short-lived signup token and must complete the
// interstitial signup step. The returned flag reports the latter case.
func (s *AuthService) CompleteOAuth2Redirect(ctx context.Context, sessionID, accessToken, refreshToken, signupToken string) (domain.Session, bool, error) {
	if signupToken != "" {
		s.sessions.SetOAuth2SignupToken(ctx, sessionID, signupToken)
		return domain.GuestSession(), true, nil
	}
	if accessToken == "" || refreshToken == "" {
		return domain.GuestSession(), false, domain.Invalid("redirect", "missing tokens in OAuth2 redirect")
	}

	s.sessions.SaveTokens(ctx, sessionID, accessToken, refreshToken)

	// The redirect carries no profile; fetch it with the fresh tokens.
	profile, err := s.mypage.Profile(ctx, sessionID)
	if err != nil {
		s.sessions.ClearAuth(ctx, sessionID)
		return domain.GuestSession(), false, err
	}
	sess := profile.Session()
	s.sessions.SaveAuthUser(ctx, sessionID, sess)

	s.logger.Info().Int64("user_id", sess.ID).Msg("oauth2 login")
	return sess, false, nil
}

// OAuth2Signup finishes a first-time Google signup using the signup token
// stored by CompleteOAuth2Redirect. The token is single-use and expires on
// its own; a missing token means the step was never started or timed out.
func (s *AuthService) OAuth2Signup(ctx context.Context, sessionID, nickName string, userType domain.UserType, lawDongID int64) (domain.Session, error) {
	token := s.sessions.OAuth2SignupToken(ctx, sessionID)
	if token == "" {
		return domain.GuestSession(), domain.ErrSignupTokenMissing
	}

	res, err := s.auth.OAuth2Signup(ctx, ports.OAuth2SignupInput{
		OAuth2SignupToken: token,
		NickName:          nickName,
		UserType:          userType,
		LawDongID:         lawDongID,
	})
	if err != nil {
		return domain.GuestSession(), err
	}

	s.sessions.ClearOAuth2SignupToken(ctx, sessionID)
	s.sessions.SaveTokens(ctx, sessionID, res.AccessToken, res.RefreshToken)
	sess := s.hydrate(ctx, sessionID, res.Session())
	s.sessions.SaveAuthUser(ctx, sessionID, sess)

	s.logger.Info().Int64("user_id", sess.ID).Msg("oauth2 signup completed")
	return sess, nil
}

// Logout invalidates the upstream token pair and clears local session state.
// The local clear happens regardless of the upstream outcome.
func (s *AuthService) Logout(ctx context.Context, sessionID string) {
	if err := s.auth.Logout(ctx, sessionID); err != nil {
		s.logger.Debug().Err(err).Msg("upstream logout failed")
	}
	s.sessions.ClearAuth(ctx, sessionID)
}

// hydrate backfills nickname and region from the my-page profile when the
// login payload came back without them. Best-effort: on any failure the
// original session is kept.
func (s *AuthService) hydrate(ctx context.Context, sessionID string, sess domain.Session) domain.Session {
	if sess.NickName != "" && sess.LawDong != nil {
		return sess
	}
	profile, err := s.mypage.Profile(ctx, sessionID)
	if err != nil {
		s.logger.Debug().Err(err).Msg("profile hydration failed")
		return sess
	}
	if sess.NickName == "" {
		sess.NickName = profile.NickName
	}
	if sess.LawDong == nil {
		sess.LawDong = profile.LawDong
	}
	if sess.MarketName == "" {
		sess.MarketName = profile.MarketName
	}
	return sess.Normalize()
}
