package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/gachisikyeo/gongu-gateway/docs"
	"github.com/gachisikyeo/gongu-gateway/internal/api/handler"
	"github.com/gachisikyeo/gongu-gateway/internal/api/middleware"
	"github.com/gachisikyeo/gongu-gateway/internal/core/domain"
	"github.com/gachisikyeo/gongu-gateway/internal/core/ports"
)

// Deps carries everything the router needs. Services are constructed in main
// so their wiring (upstream client, history pipeline, session manager) stays
// out of the transport layer.
type Deps struct {
	Auth      handler.AuthFlows
	Catalog   handler.CatalogBrowse
	Purchases handler.PurchaseFlows
	MyPage    handler.MyPageFlows
	Seller    handler.SellerFlows
	Regions   ports.RegionAPI
	Sessions  ports.SessionStore

	Mongo *mongo.Database
	Redis *redis.Client

	SessionJWTSecret string
	SessionTTL       time.Duration
	Logger           zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("gongu"))
	e.Use(middleware.Session(deps.SessionJWTSecret, deps.SessionTTL))

	requireLogin := middleware.RequireLogin(deps.Sessions)
	requireSeller := middleware.RequireUserType(deps.Sessions, domain.UserTypeSeller)

	// --- Auth routes ---
	authHandler := handler.NewAuthHandler(deps.Auth)
	e.GET("/auth/session", authHandler.Session)
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/signup", authHandler.Signup)
	e.POST("/auth/logout", authHandler.Logout)
	e.GET("/oauth2/redirect", authHandler.OAuth2Redirect)
	e.POST("/auth/oauth2/signup", authHandler.OAuth2Signup)

	// --- Catalog routes ---
	productHandler := handler.NewProductHandler(deps.Catalog)
	e.GET("/api/products", productHandler.List)
	e.GET("/api/products/popular", productHandler.Popular)
	e.GET("/api/products/:id", productHandler.Detail)
	e.GET("/api/products/:id/group-purchases", productHandler.GroupPurchases)
	e.GET("/api/recent", productHandler.RecentlyViewed, requireLogin)

	// --- Group purchase routes ---
	gonguHandler := handler.NewGonguHandler(deps.Purchases)
	e.POST("/api/products/:id/group-purchases", gonguHandler.Create, requireLogin)
	e.GET("/api/group-purchases/:id/join", gonguHandler.JoinState)
	e.POST("/api/group-purchases/:id/participations", gonguHandler.Join, requireLogin)
	e.GET("/api/participations/:id", gonguHandler.Participation, requireLogin)
	e.POST("/api/participations/:id/payment", gonguHandler.ConfirmPayment, requireLogin)

	// --- My page routes ---
	myPageHandler := handler.NewMyPageHandler(deps.MyPage)
	mypage := e.Group("/api/mypage", requireLogin)
	mypage.GET("/profile", myPageHandler.Profile)
	mypage.GET("/participations/ongoing", myPageHandler.Ongoing)
	mypage.GET("/participations/completed", myPageHandler.Completed)
	mypage.GET("/orders/:id", myPageHandler.OrderDetail)

	// --- Seller routes ---
	sellerHandler := handler.NewSellerHandler(deps.Seller)
	e.POST("/api/business-info", sellerHandler.CreateBusinessInfo, requireLogin)
	e.GET("/api/business-info/me", sellerHandler.MyBusinessInfo, requireSeller)
	e.POST("/api/products", sellerHandler.CreateProduct, requireSeller)
	e.POST("/files", sellerHandler.UploadFiles, requireSeller)
	e.DELETE("/files/:name", sellerHandler.DeleteFile, requireSeller)

	dashboard := e.Group("/api/seller/dashboard", requireSeller)
	dashboard.GET("/sales", sellerHandler.DashboardSales)
	dashboard.GET("/products", sellerHandler.DashboardProducts)
	dashboard.GET("/monthly-sales", sellerHandler.DashboardMonthlySales)

	// --- Region routes (no auth required) ---
	regionHandler := handler.NewRegionHandler(deps.Regions)
	e.GET("/law-dong/sido", regionHandler.Sido)
	e.GET("/law-dong/sigungu", regionHandler.Sigungu)
	e.GET("/law-dong/dong", regionHandler.Dong)
	e.GET("/law-dong/resolve", regionHandler.Resolve)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(deps.Mongo, deps.Redis)

	e.GET("/health", healthHandler.Liveness)           // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – are dependencies up?

	// --- Operational endpoints ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
