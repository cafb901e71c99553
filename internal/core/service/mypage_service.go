package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/gachisikyeo/gongu-gateway/internal/core/domain"
	"github.com/gachisikyeo/gongu-gateway/internal/core/ports"
)

// MyPageService serves the logged-in user's profile and order history.
type MyPageService struct {
	mypage   ports.MyPageAPI
	sessions ports.SessionStore
	logger   zerolog.Logger
}

func NewMyPageService(mypage ports.MyPageAPI, sessions ports.SessionStore, logger zerolog.Logger) *MyPageService {
	return &MyPageService{mypage: mypage, sessions: sessions, logger: logger}
}

func (s *MyPageService) requireLogin(ctx context.Context, sessionID string) error {
	if !s.sessions.AuthUser(ctx, sessionID).IsLoggedIn {
		return domain.ErrNotAuthenticated
	}
	return nil
}

// Profile fetches the upstream profile and refreshes the session copy so a
// nickname or region changed elsewhere becomes visible on the next request.
func (s *MyPageService) Profile(ctx context.Context, sessionID string) (*domain.Profile, error) {
	if err := s.requireLogin(ctx, sessionID); err != nil {
		return nil, err
	}
	profile, err := s.mypage.Profile(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	s.sessions.SaveAuthUser(ctx, sessionID, profile.Session())
	return profile, nil
}

// OngoingParticipations lists campaigns still collecting quantity.
func (s *MyPageService) OngoingParticipations(ctx context.Context, sessionID string) ([]domain.ParticipationSummary, error) {
	if err := s.requireLogin(ctx, sessionID); err != nil {
		return nil, err
	}
	return s.mypage.OngoingParticipations(ctx, sessionID)
}

// CompletedParticipations lists finished orders.
func (s *MyPageService) CompletedParticipations(ctx context.Context, sessionID string) ([]domain.ParticipationSummary, error) {
	if err := s.requireLogin(ctx, sessionID); err != nil {
		return nil, err
	}
	return s.mypage.CompletedParticipations(ctx, sessionID)
}

// CompletedDetail returns one finished order with pickup information.
func (s *MyPageService) CompletedDetail(ctx context.Context, sessionID string, id int64) (*domain.CompletedOrder, error) {
	if err := s.requireLogin(ctx, sessionID); err != nil {
		return nil, err
	}
	return s.mypage.CompletedDetail(ctx, sessionID, id)
}
