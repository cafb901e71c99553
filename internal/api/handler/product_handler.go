package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/gachisikyeo/gongu-gateway/internal/api/middleware"
	"github.com/gachisikyeo/gongu-gateway/internal/core/domain"
)

// CatalogBrowse is the slice of the catalog service the handler needs.
type CatalogBrowse interface {
	Products(ctx context.Context, category domain.ProductCategory) ([]domain.Product, error)
	PopularProducts(ctx context.Context) ([]domain.Product, error)
	Product(ctx context.Context, sessionID string, id int64) (*domain.Product, error)
	GroupPurchases(ctx context.Context, productID int64) ([]domain.GroupPurchase, error)
	RecentlyViewed(ctx context.Context, sessionID string, limit int) ([]domain.ProductView, error)
}

type ProductHandler struct {
	service CatalogBrowse
}

func NewProductHandler(service CatalogBrowse) *ProductHandler {
	return &ProductHandler{service: service}
}

// List returns all products, optionally filtered by category.
//
// @Summary      List products
// @Tags         catalog
// @Produce      json
// @Param        category  query  string  false  "FOOD, NON_FOOD or CLOTHES"
// @Success      200  {array}  domain.Product
// @Router       /api/products [get]
func (h *ProductHandler) List(c echo.Context) error {
	category := domain.ProductCategory(c.QueryParam("category"))
	products, err := h.service.Products(c.Request().Context(), category)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, products)
}

// Popular returns the popularity-ranked product list.
//
// @Summary      Popular products
// @Tags         catalog
// @Produce      json
// @Success      200  {array}  domain.Product
// @Router       /api/products/popular [get]
func (h *ProductHandler) Popular(c echo.Context) error {
	products, err := h.service.PopularProducts(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, products)
}

// Detail returns one product and records the view for logged-in users.
//
// @Summary      Product detail
// @Tags         catalog
// @Produce      json
// @Param        id  path  int  true  "Product ID"
// @Success      200  {object}  domain.Product
// @Failure      404  {object}  errorResponse
// @Router       /api/products/{id} [get]
func (h *ProductHandler) Detail(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	product, err := h.service.Product(c.Request().Context(), middleware.SessionID(c), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, product)
}

// GroupPurchases lists open campaigns for a product.
//
// @Summary      Campaigns for a product
// @Tags         catalog
// @Produce      json
// @Param        id  path  int  true  "Product ID"
// @Success      200  {array}  domain.GroupPurchase
// @Router       /api/products/{id}/group-purchases [get]
func (h *ProductHandler) GroupPurchases(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	purchases, err := h.service.GroupPurchases(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, purchases)
}

// RecentlyViewed returns the caller's browse history, newest first.
//
// @Summary      Recently viewed products
// @Tags         catalog
// @Produce      json
// @Param        limit  query  int  false  "Maximum entries (default 20)"
// @Success      200  {array}  domain.ProductView
// @Failure      401  {object}  errorResponse
// @Router       /api/recent [get]
func (h *ProductHandler) RecentlyViewed(c echo.Context) error {
	limit := 0
	if raw := c.QueryParam("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return echo.NewHTTPError(http.StatusBadRequest, "limit must be a non-negative integer")
		}
		limit = n
	}
	views, err := h.service.RecentlyViewed(c.Request().Context(), middleware.SessionID(c), limit)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, views)
}

// pathID parses a positive int64 path parameter.
func pathID(c echo.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, name+" must be a positive integer")
	}
	return id, nil
}
