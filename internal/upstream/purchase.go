package upstream

import (
	"context"
	"fmt"

	"github.com/gachisikyeo/gongu-gateway/internal/core/domain"
	"github.com/gachisikyeo/gongu-gateway/internal/core/gongu"
	"github.com/gachisikyeo/gongu-gateway/internal/core/ports"
)

// GroupPurchaseDetail returns the authoritative campaign read model. The join
// flow always calls this instead of trusting list snapshots.
func (c *Client) GroupPurchaseDetail(ctx context.Context, sessionID string, id int64) (*domain.GroupPurchaseDetail, error) {
	var d domain.GroupPurchaseDetail
	path := fmt.Sprintf("/api/group-purchases/%d", id)
	if err := c.getJSON(ctx, sessionID, path, "/api/group-purchases/:id", &d); err != nil {
		return nil, err
	}
	return &d, nil
}

// CreateGroupPurchase opens a campaign for a product.
func (c *Client) CreateGroupPurchase(ctx context.Context, sessionID string, productID int64, req gongu.CreateRequest) (*domain.GroupPurchase, error) {
	var gp domain.GroupPurchase
	path := fmt.Sprintf("/api/products/%d/group-purchases", productID)
	if err := c.postJSON(ctx, sessionID, path, "/api/products/:id/group-purchases", req, &gp); err != nil {
		return nil, err
	}
	return &gp, nil
}

// CreateParticipation commits a buyer to a campaign.
func (c *Client) CreateParticipation(ctx context.Context, sessionID string, groupPurchaseID int64, in ports.ParticipationInput) (*domain.Participation, error) {
	var p domain.Participation
	path := fmt.Sprintf("/api/group-purchases/%d/participations", groupPurchaseID)
	if err := c.postJSON(ctx, sessionID, path, "/api/group-purchases/:id/participations", in, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// Participation returns one commitment, including the server-computed share
// amount used on the payment screen.
func (c *Client) Participation(ctx context.Context, sessionID string, id int64) (*domain.Participation, error) {
	var p domain.Participation
	path := fmt.Sprintf("/api/participations/%d", id)
	if err := c.getJSON(ctx, sessionID, path, "/api/participations/:id", &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// ConfirmPayment marks a participation as paid.
func (c *Client) ConfirmPayment(ctx context.Context, sessionID string, participationID int64) (*domain.Participation, error) {
	var p domain.Participation
	path := fmt.Sprintf("/api/participations/%d/payments/confirm", participationID)
	if err := c.postJSON(ctx, sessionID, path, "/api/participations/:id/payments/confirm", nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

var _ ports.PurchaseAPI = (*Client)(nil)
