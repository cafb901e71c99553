package upstream

import (
	"context"
	"fmt"

	"github.com/gachisikyeo/gongu-gateway/internal/core/domain"
	"github.com/gachisikyeo/gongu-gateway/internal/core/ports"
)

// Profile returns the logged-in user's my-page profile.
func (c *Client) Profile(ctx context.Context, sessionID string) (*domain.Profile, error) {
	var p domain.Profile
	if err := c.getJSON(ctx, sessionID, "/api/mypage/profile", "/api/mypage/profile", &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// OngoingParticipations lists campaigns the user has joined that are still
// collecting quantity.
func (c *Client) OngoingParticipations(ctx context.Context, sessionID string) ([]domain.ParticipationSummary, error) {
	var items []domain.ParticipationSummary
	if err := c.getJSON(ctx, sessionID, "/api/mypage/participations/ongoing", "/api/mypage/participations/ongoing", &items); err != nil {
		return nil, err
	}
	return items, nil
}

// CompletedParticipations lists the user's finished orders.
func (c *Client) CompletedParticipations(ctx context.Context, sessionID string) ([]domain.ParticipationSummary, error) {
	var items []domain.ParticipationSummary
	if err := c.getJSON(ctx, sessionID, "/api/mypage/participations/completed", "/api/mypage/participations/completed", &items); err != nil {
		return nil, err
	}
	return items, nil
}

// CompletedDetail returns one finished order with pickup information.
func (c *Client) CompletedDetail(ctx context.Context, sessionID string, id int64) (*domain.CompletedOrder, error) {
	var o domain.CompletedOrder
	path := fmt.Sprintf("/api/mypage/completed/%d", id)
	if err := c.getJSON(ctx, sessionID, path, "/api/mypage/completed/:id", &o); err != nil {
		return nil, err
	}
	return &o, nil
}

var _ ports.MyPageAPI = (*Client)(nil)
