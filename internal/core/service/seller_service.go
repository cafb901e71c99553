package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/gachisikyeo/gongu-gateway/internal/core/domain"
	"github.com/gachisikyeo/gongu-gateway/internal/core/ports"
)

// SellerService covers the seller-only surface: business registration,
// product registration, uploads, and the dashboard.
type SellerService struct {
	seller   ports.SellerAPI
	catalog  ports.CatalogAPI
	files    ports.FileAPI
	sessions ports.SessionStore
	logger   zerolog.Logger
}

func NewSellerService(seller ports.SellerAPI, catalog ports.CatalogAPI, files ports.FileAPI, sessions ports.SessionStore, logger zerolog.Logger) *SellerService {
	return &SellerService{seller: seller, catalog: catalog, files: files, sessions: sessions, logger: logger}
}

// requireSeller gates every operation in this service.
func (s *SellerService) requireSeller(ctx context.Context, sessionID string) error {
	user := s.sessions.AuthUser(ctx, sessionID)
	if !user.IsLoggedIn {
		return domain.ErrNotAuthenticated
	}
	if user.UserType != domain.UserTypeSeller {
		return domain.ErrForbidden
	}
	return nil
}

// CreateBusinessInfo registers the seller's business record. All three
// agreements are mandatory before anything is sent upstream.
func (s *SellerService) CreateBusinessInfo(ctx context.Context, sessionID string, in ports.BusinessInfoInput) (*domain.BusinessInfo, error) {
	if err := s.requireSeller(ctx, sessionID); err != nil {
		return nil, err
	}
	if !in.SellerTermsAgreed || !in.PrivacyPolicyAgreed || !in.ElectronicFinanceAgreed {
		return nil, domain.Invalid("agreements", "all seller agreements are required")
	}

	bi, err := s.seller.CreateBusinessInfo(ctx, sessionID, in)
	if err != nil {
		return nil, err
	}
	s.logger.Info().Int64("business_info_id", bi.ID).Msg("business info registered")
	return bi, nil
}

// MyBusinessInfo returns the seller's own business record.
func (s *SellerService) MyBusinessInfo(ctx context.Context, sessionID string) (*domain.BusinessInfo, error) {
	if err := s.requireSeller(ctx, sessionID); err != nil {
		return nil, err
	}
	return s.seller.MyBusinessInfo(ctx, sessionID)
}

// CreateProduct registers a product through the multipart catalog endpoint.
func (s *SellerService) CreateProduct(ctx context.Context, sessionID string, in ports.ProductCreateInput, image *ports.FileInput) (*domain.Product, error) {
	if err := s.requireSeller(ctx, sessionID); err != nil {
		return nil, err
	}
	if in.ProductName == "" {
		return nil, domain.Invalid("productName", "product name is required")
	}
	if in.Price <= 0 {
		return nil, domain.Invalid("price", "price must be positive")
	}
	if in.UnitQuantity < 1 {
		return nil, domain.Invalid("unitQuantity", "pack size must be at least 1")
	}

	p, err := s.catalog.CreateProduct(ctx, sessionID, in, image)
	if err != nil {
		return nil, err
	}
	s.logger.Info().Int64("product_id", p.ID).Str("category", string(p.Category)).Msg("product registered")
	return p, nil
}

// UploadFiles forwards files to upstream storage.
func (s *SellerService) UploadFiles(ctx context.Context, sessionID string, files []ports.FileInput) ([]string, error) {
	if err := s.requireSeller(ctx, sessionID); err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, domain.Invalid("files", "at least one file is required")
	}
	return s.files.UploadFiles(ctx, sessionID, files)
}

// DeleteFile removes one uploaded file.
func (s *SellerService) DeleteFile(ctx context.Context, sessionID, fileName string) error {
	if err := s.requireSeller(ctx, sessionID); err != nil {
		return err
	}
	return s.files.DeleteFile(ctx, sessionID, fileName)
}

// DashboardSales returns the dashboard headline figures.
func (s *SellerService) DashboardSales(ctx context.Context, sessionID string) (*domain.DashboardSales, error) {
	if err := s.requireSeller(ctx, sessionID); err != nil {
		return nil, err
	}
	return s.seller.DashboardSales(ctx, sessionID)
}

// DashboardProducts returns per-product sales performance.
func (s *SellerService) DashboardProducts(ctx context.Context, sessionID string) ([]domain.DashboardProduct, error) {
	if err := s.requireSeller(ctx, sessionID); err != nil {
		return nil, err
	}
	return s.seller.DashboardProducts(ctx, sessionID)
}

// DashboardMonthlySales returns month-by-month revenue.
func (s *SellerService) DashboardMonthlySales(ctx context.Context, sessionID string) ([]domain.MonthlySales, error) {
	if err := s.requireSeller(ctx, sessionID); err != nil {
		return nil, err
	}
	return s.seller.DashboardMonthlySales(ctx, sessionID)
}
