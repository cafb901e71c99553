package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/gachisikyeo/gongu-gateway/internal/core/domain"
	"github.com/gachisikyeo/gongu-gateway/internal/core/ports"
)

type stubSellerAPI struct {
	createBusinessFn func(ctx context.Context, sessionID string, in ports.BusinessInfoInput) (*domain.BusinessInfo, error)
	myBusinessFn     func(ctx context.Context, sessionID string) (*domain.BusinessInfo, error)
	salesFn          func(ctx context.Context, sessionID string) (*domain.DashboardSales, error)
	productsFn       func(ctx context.Context, sessionID string) ([]domain.DashboardProduct, error)
	monthlyFn        func(ctx context.Context, sessionID string) ([]domain.MonthlySales, error)
}

func (s *stubSellerAPI) CreateBusinessInfo(ctx context.Context, sessionID string, in ports.BusinessInfoInput) (*domain.BusinessInfo, error) {
	if s.createBusinessFn == nil {
		return nil, errors.New("unexpected CreateBusinessInfo call")
	}
	return s.createBusinessFn(ctx, sessionID, in)
}

func (s *stubSellerAPI) MyBusinessInfo(ctx context.Context, sessionID string) (*domain.BusinessInfo, error) {
	if s.myBusinessFn == nil {
		return nil, errors.New("unexpected MyBusinessInfo call")
	}
	return s.myBusinessFn(ctx, sessionID)
}

func (s *stubSellerAPI) DashboardSales(ctx context.Context, sessionID string) (*domain.DashboardSales, error) {
	if s.salesFn == nil {
		return nil, errors.New("unexpected DashboardSales call")
	}
	return s.salesFn(ctx, sessionID)
}

func (s *stubSellerAPI) DashboardProducts(ctx context.Context, sessionID string) ([]domain.DashboardProduct, error) {
	if s.productsFn == nil {
		return nil, errors.New("unexpected DashboardProducts call")
	}
	return s.productsFn(ctx, sessionID)
}

func (s *stubSellerAPI) DashboardMonthlySales(ctx context.Context, sessionID string) ([]domain.MonthlySales, error) {
	if s.monthlyFn == nil {
		return nil, errors.New("unexpected DashboardMonthlySales call")
	}
	return s.monthlyFn(ctx, sessionID)
}

type stubFileAPI struct {
	uploadFn func(ctx context.Context, sessionID string, files []ports.FileInput) ([]string, error)
	deleteFn func(ctx context.Context, sessionID, fileName string) error
}

func (s *stubFileAPI) UploadFiles(ctx context.Context, sessionID string, files []ports.FileInput) ([]string, error) {
	if s.uploadFn == nil {
		return nil, errors.New("unexpected UploadFiles call")
	}
	return s.uploadFn(ctx, sessionID, files)
}

func (s *stubFileAPI) DeleteFile(ctx context.Context, sessionID, fileName string) error {
	if s.deleteFn == nil {
		return errors.New("unexpected DeleteFile call")
	}
	return s.deleteFn(ctx, sessionID, fileName)
}

func sellerSession() domain.Session {
	return domain.Session{
		IsLoggedIn: true,
		UserType:   domain.UserTypeSeller,
		ID:         9,
		NickName:   "상점주인",
		MarketName: "합정청과",
	}
}

func allAgreed() ports.BusinessInfoInput {
	return ports.BusinessInfoInput{
		BusinessNumber:          "123-45-67890",
		StoreName:               "합정청과",
		CEOName:                 "김사장",
		Address:                 "서울특별시 마포구",
		SellerTermsAgreed:       true,
		PrivacyPolicyAgreed:     true,
		ElectronicFinanceAgreed: true,
	}
}

func TestSellerService_Gates(t *testing.T) {
	seller := &stubSellerAPI{}

	t.Run("guest", func(t *testing.T) {
		svc := NewSellerService(seller, &stubCatalogAPI{}, &stubFileAPI{}, newMemSessions(), zerolog.Nop())
		if _, err := svc.DashboardSales(context.Background(), "sid-1"); !errors.Is(err, domain.ErrNotAuthenticated) {
			t.Fatalf("expected ErrNotAuthenticated, got %v", err)
		}
	})

	t.Run("buyer", func(t *testing.T) {
		sessions := newMemSessions()
		sessions.user = hostSession()
		svc := NewSellerService(seller, &stubCatalogAPI{}, &stubFileAPI{}, sessions, zerolog.Nop())
		if _, err := svc.DashboardSales(context.Background(), "sid-1"); !errors.Is(err, domain.ErrForbidden) {
			t.Fatalf("expected ErrForbidden, got %v", err)
		}
	})
}

func TestSellerService_CreateBusinessInfo_RequiresAllAgreements(t *testing.T) {
	sessions := newMemSessions()
	sessions.user = sellerSession()
	svc := NewSellerService(&stubSellerAPI{}, &stubCatalogAPI{}, &stubFileAPI{}, sessions, zerolog.Nop())

	in := allAgreed()
	in.ElectronicFinanceAgreed = false

	_, err := svc.CreateBusinessInfo(context.Background(), "sid-1", in)
	var ve *domain.ValidationError
	if !errors.As(err, &ve) || ve.Field != "agreements" {
		t.Fatalf("expected agreements validation error, got %v", err)
	}
}

func TestSellerService_CreateBusinessInfo_Success(t *testing.T) {
	sessions := newMemSessions()
	sessions.user = sellerSession()
	seller := &stubSellerAPI{
		createBusinessFn: func(_ context.Context, _ string, in ports.BusinessInfoInput) (*domain.BusinessInfo, error) {
			if in.BusinessNumber != "123-45-67890" {
				t.Fatalf("unexpected input: %+v", in)
			}
			return &domain.BusinessInfo{ID: 5, UserID: 9, StoreName: in.StoreName}, nil
		},
	}
	svc := NewSellerService(seller, &stubCatalogAPI{}, &stubFileAPI{}, sessions, zerolog.Nop())

	bi, err := svc.CreateBusinessInfo(context.Background(), "sid-1", allAgreed())
	if err != nil {
		t.Fatalf("CreateBusinessInfo returned error: %v", err)
	}
	if bi.ID != 5 || bi.StoreName != "합정청과" {
		t.Fatalf("unexpected business info: %+v", bi)
	}
}

func TestSellerService_CreateProduct_Validation(t *testing.T) {
	sessions := newMemSessions()
	sessions.user = sellerSession()
	svc := NewSellerService(&stubSellerAPI{}, &stubCatalogAPI{}, &stubFileAPI{}, sessions, zerolog.Nop())

	cases := []struct {
		name  string
		in    ports.ProductCreateInput
		field string
	}{
		{"missing name", ports.ProductCreateInput{Price: 1000, UnitQuantity: 10}, "productName"},
		{"zero price", ports.ProductCreateInput{ProductName: "감귤", UnitQuantity: 10}, "price"},
		{"zero pack size", ports.ProductCreateInput{ProductName: "감귤", Price: 1000}, "unitQuantity"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.CreateProduct(context.Background(), "sid-1", tc.in, nil)
			var ve *domain.ValidationError
			if !errors.As(err, &ve) || ve.Field != tc.field {
				t.Fatalf("expected %s validation error, got %v", tc.field, err)
			}
		})
	}
}

func TestSellerService_UploadFiles_RequiresFiles(t *testing.T) {
	sessions := newMemSessions()
	sessions.user = sellerSession()
	svc := NewSellerService(&stubSellerAPI{}, &stubCatalogAPI{}, &stubFileAPI{}, sessions, zerolog.Nop())

	_, err := svc.UploadFiles(context.Background(), "sid-1", nil)
	var ve *domain.ValidationError
	if !errors.As(err, &ve) || ve.Field != "files" {
		t.Fatalf("expected files validation error, got %v", err)
	}
}
