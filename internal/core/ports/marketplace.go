// Package ports declares the interfaces and data-transfer shapes the core
// services depend on: the upstream marketplace API surface, session storage,
// and the browse-history repository.
package ports

import (
	"context"

	"github.com/gachisikyeo/gongu-gateway/internal/core/domain"
	"github.com/gachisikyeo/gongu-gateway/internal/core/gongu"
)

// SignupInput is the email signup payload.
type SignupInput struct {
	Email     string
	Password  string
	Name      string
	NickName  string
	UserType  domain.UserType
	LawDongID int64
}

// OAuth2SignupInput completes the interstitial signup step after a Google
// OAuth2 redirect delivered a signup token instead of a full token pair.
type OAuth2SignupInput struct {
	OAuth2SignupToken string
	NickName          string
	UserType          domain.UserType
	LawDongID         int64
}

// AuthAPI is the upstream authentication surface.
type AuthAPI interface {
	Login(ctx context.Context, email, password string) (*domain.LoginResult, error)
	Signup(ctx context.Context, in SignupInput) error
	OAuth2Signup(ctx context.Context, in OAuth2SignupInput) (*domain.LoginResult, error)
	Logout(ctx context.Context, sessionID string) error
}

// RegionAPI is the administrative-region cascade (no auth required).
type RegionAPI interface {
	SidoList(ctx context.Context) ([]string, error)
	SigunguList(ctx context.Context, sido string) ([]string, error)
	DongList(ctx context.Context, sido, sigungu string) ([]string, error)
	ResolveLawDong(ctx context.Context, sido, sigungu, dong string) (*domain.LawDong, error)
}

// ProductCreateInput is the JSON half of the multipart product registration.
type ProductCreateInput struct {
	Category         domain.ProductCategory `json:"category"`
	ProductName      string                 `json:"productName"`
	Price            int                    `json:"price"`
	StockQuantity    int                    `json:"stockQuantity"`
	UnitQuantity     int                    `json:"unitQuantity"`
	ImageURL         string                 `json:"imageUrl,omitempty"`
	DescriptionTitle string                 `json:"descriptionTitle,omitempty"`
	Description      string                 `json:"description,omitempty"`
}

// FileInput is an uploaded file held in memory for forwarding.
type FileInput struct {
	Name        string
	ContentType string
	Data        []byte
}

// CatalogAPI is the product catalog surface.
type CatalogAPI interface {
	Products(ctx context.Context) ([]domain.Product, error)
	ProductsByCategory(ctx context.Context, category domain.ProductCategory) ([]domain.Product, error)
	PopularProducts(ctx context.Context) ([]domain.Product, error)
	Product(ctx context.Context, id int64) (*domain.Product, error)
	CreateProduct(ctx context.Context, sessionID string, in ProductCreateInput, image *FileInput) (*domain.Product, error)
	GroupPurchases(ctx context.Context, productID int64) ([]domain.GroupPurchase, error)
}

// ParticipationInput is a buyer's commitment payload.
type ParticipationInput struct {
	Quantity     int    `json:"quantity"`
	BuyerContact string `json:"buyerContact"`
}

// PurchaseAPI covers campaign creation, joining, and payment confirmation.
type PurchaseAPI interface {
	GroupPurchaseDetail(ctx context.Context, sessionID string, id int64) (*domain.GroupPurchaseDetail, error)
	CreateGroupPurchase(ctx context.Context, sessionID string, productID int64, req gongu.CreateRequest) (*domain.GroupPurchase, error)
	CreateParticipation(ctx context.Context, sessionID string, groupPurchaseID int64, in ParticipationInput) (*domain.Participation, error)
	Participation(ctx context.Context, sessionID string, id int64) (*domain.Participation, error)
	ConfirmPayment(ctx context.Context, sessionID string, participationID int64) (*domain.Participation, error)
}

// MyPageAPI is the logged-in user's profile and history surface.
type MyPageAPI interface {
	Profile(ctx context.Context, sessionID string) (*domain.Profile, error)
	OngoingParticipations(ctx context.Context, sessionID string) ([]domain.ParticipationSummary, error)
	CompletedParticipations(ctx context.Context, sessionID string) ([]domain.ParticipationSummary, error)
	CompletedDetail(ctx context.Context, sessionID string, id int64) (*domain.CompletedOrder, error)
}

// BusinessInfoInput is the seller business registration payload.
type BusinessInfoInput struct {
	BusinessNumber          string `json:"businessNumber"`
	StoreName               string `json:"storeName"`
	CEOName                 string `json:"ceoName"`
	Address                 string `json:"address"`
	SellerTermsAgreed       bool   `json:"sellerTermsAgreed"`
	PrivacyPolicyAgreed     bool   `json:"privacyPolicyAgreed"`
	ElectronicFinanceAgreed bool   `json:"electronicFinanceAgreed"`
}

// SellerAPI is the seller-only surface.
type SellerAPI interface {
	CreateBusinessInfo(ctx context.Context, sessionID string, in BusinessInfoInput) (*domain.BusinessInfo, error)
	MyBusinessInfo(ctx context.Context, sessionID string) (*domain.BusinessInfo, error)
	DashboardSales(ctx context.Context, sessionID string) (*domain.DashboardSales, error)
	DashboardProducts(ctx context.Context, sessionID string) ([]domain.DashboardProduct, error)
	DashboardMonthlySales(ctx context.Context, sessionID string) ([]domain.MonthlySales, error)
}

// FileAPI is the upstream file storage surface.
type FileAPI interface {
	UploadFiles(ctx context.Context, sessionID string, files []FileInput) ([]string, error)
	DeleteFile(ctx context.Context, sessionID, fileName string) error
}

// HistoryRepository persists recently-viewed products per user.
type HistoryRepository interface {
	Record(ctx context.Context, view domain.ProductView) error
	Recent(ctx context.Context, userID int64, limit int) ([]domain.ProductView, error)
}
