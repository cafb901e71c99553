package upstream

import (
	"context"

	"github.com/gachisikyeo/gongu-gateway/internal/core/domain"
	"github.com/gachisikyeo/gongu-gateway/internal/core/ports"
)

// CreateBusinessInfo registers the seller's business record.
func (c *Client) CreateBusinessInfo(ctx context.Context, sessionID string, in ports.BusinessInfoInput) (*domain.BusinessInfo, error) {
	var bi domain.BusinessInfo
	if err := c.postJSON(ctx, sessionID, "/api/business-info", "/api/business-info", in, &bi); err != nil {
		return nil, err
	}
	return &bi, nil
}

// MyBusinessInfo returns the seller's own business record.
func (c *Client) MyBusinessInfo(ctx context.Context, sessionID string) (*domain.BusinessInfo, error) {
	var bi domain.BusinessInfo
	if err := c.getJSON(ctx, sessionID, "/api/business-info/me", "/api/business-info/me", &bi); err != nil {
		return nil, err
	}
	return &bi, nil
}

// DashboardSales returns the seller dashboard headline figures.
func (c *Client) DashboardSales(ctx context.Context, sessionID string) (*domain.DashboardSales, error) {
	var s domain.DashboardSales
	if err := c.getJSON(ctx, sessionID, "/api/seller/dashboard/sales", "/api/seller/dashboard/sales", &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// DashboardProducts returns per-product sales performance.
func (c *Client) DashboardProducts(ctx context.Context, sessionID string) ([]domain.DashboardProduct, error) {
	var items []domain.DashboardProduct
	if err := c.getJSON(ctx, sessionID, "/api/seller/dashboard/products", "/api/seller/dashboard/products", &items); err != nil {
		return nil, err
	}
	return items, nil
}

// DashboardMonthlySales returns month-by-month revenue.
func (c *Client) DashboardMonthlySales(ctx context.Context, sessionID string) ([]domain.MonthlySales, error) {
	var items []domain.MonthlySales
	if err := c.getJSON(ctx, sessionID, "/api/seller/dashboard/monthly-sales", "/api/seller/dashboard/monthly-sales", &items); err != nil {
		return nil, err
	}
	return items, nil
}

var _ ports.SellerAPI = (*Client)(nil)
