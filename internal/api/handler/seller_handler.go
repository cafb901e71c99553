package handler

import (
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/gachisikyeo/gongu-gateway/internal/api/middleware"
	"github.com/gachisikyeo/gongu-gateway/internal/core/domain"
	"github.com/gachisikyeo/gongu-gateway/internal/core/ports"
)

// maxUploadBytes bounds how much of an uploaded file is buffered before
// forwarding it upstream.
const maxUploadBytes = 10 << 20

// SellerFlows is the slice of the seller service the handler needs.
type SellerFlows interface {
	CreateBusinessInfo(ctx context.Context, sessionID string, in ports.BusinessInfoInput) (*domain.BusinessInfo, error)
	MyBusinessInfo(ctx context.Context, sessionID string) (*domain.BusinessInfo, error)
	CreateProduct(ctx context.Context, sessionID string, in ports.ProductCreateInput, image *ports.FileInput) (*domain.Product, error)
	UploadFiles(ctx context.Context, sessionID string, files []ports.FileInput) ([]string, error)
	DeleteFile(ctx context.Context, sessionID, fileName string) error
	DashboardSales(ctx context.Context, sessionID string) (*domain.DashboardSales, error)
	DashboardProducts(ctx context.Context, sessionID string) ([]domain.DashboardProduct, error)
	DashboardMonthlySales(ctx context.Context, sessionID string) ([]domain.MonthlySales, error)
}

type SellerHandler struct {
	service SellerFlows
}

func NewSellerHandler(service SellerFlows) *SellerHandler {
	return &SellerHandler{service: service}
}

type businessInfoRequest struct {
	BusinessNumber          string `json:"businessNumber" validate:"required"`
	StoreName               string `json:"storeName"      validate:"required"`
	CEOName                 string `json:"ceoName"        validate:"required"`
	Address                 string `json:"address"        validate:"required"`
	SellerTermsAgreed       bool   `json:"sellerTermsAgreed"`
	PrivacyPolicyAgreed     bool   `json:"privacyPolicyAgreed"`
	ElectronicFinanceAgreed bool   `json:"electronicFinanceAgreed"`
}

// CreateBusinessInfo registers the seller's business details.
//
// @Summary      Register business info
// @Tags         seller
// @Accept       json
// @Produce      json
// @Param        body  body      businessInfoRequest  true  "Business details"
// @Success      201   {object}  domain.BusinessInfo
// @Failure      403   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /api/business-info [post]
func (h *SellerHandler) CreateBusinessInfo(c echo.Context) error {
	var req businessInfoRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	info, err := h.service.CreateBusinessInfo(c.Request().Context(), middleware.SessionID(c), ports.BusinessInfoInput{
		BusinessNumber:          req.BusinessNumber,
		StoreName:               req.StoreName,
		CEOName:                 req.CEOName,
		Address:                 req.Address,
		SellerTermsAgreed:       req.SellerTermsAgreed,
		PrivacyPolicyAgreed:     req.PrivacyPolicyAgreed,
		ElectronicFinanceAgreed: req.ElectronicFinanceAgreed,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, info)
}

// MyBusinessInfo returns the caller's registered business details.
//
// @Summary      My business info
// @Tags         seller
// @Produce      json
// @Success      200  {object}  domain.BusinessInfo
// @Failure      403  {object}  errorResponse
// @Router       /api/business-info/me [get]
func (h *SellerHandler) MyBusinessInfo(c echo.Context) error {
	info, err := h.service.MyBusinessInfo(c.Request().Context(), middleware.SessionID(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, info)
}

// CreateProduct registers a product from a multipart form: a "data" part with
// the product JSON and an optional "image" file part.
//
// @Summary      Register product
// @Tags         seller
// @Accept       multipart/form-data
// @Produce      json
// @Param        data   formData  string  true   "Product JSON"
// @Param        image  formData  file    false  "Product image"
// @Success      201  {object}  domain.Product
// @Failure      403  {object}  errorResponse
// @Failure      422  {object}  errorResponse
// @Router       /api/products [post]
func (h *SellerHandler) CreateProduct(c echo.Context) error {
	raw := c.FormValue("data")
	if raw == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "data part is required")
	}
	var in ports.ProductCreateInput
	if err := json.Unmarshal([]byte(raw), &in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "data part is not valid JSON")
	}

	var image *ports.FileInput
	if fh, err := c.FormFile("image"); err == nil {
		file, err := readFilePart(fh)
		if err != nil {
			return err
		}
		image = file
	}

	product, err := h.service.CreateProduct(c.Request().Context(), middleware.SessionID(c), in, image)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, product)
}

// UploadFiles forwards uploaded files to the storage backend.
//
// @Summary      Upload files
// @Tags         seller
// @Accept       multipart/form-data
// @Produce      json
// @Param        files  formData  file  true  "Files to upload"
// @Success      201  {array}  string
// @Failure      403  {object}  errorResponse
// @Router       /files [post]
func (h *SellerHandler) UploadFiles(c echo.Context) error {
	form, err := c.MultipartForm()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "multipart form required")
	}

	headers := form.File["files"]
	files := make([]ports.FileInput, 0, len(headers))
	for _, fh := range headers {
		file, err := readFilePart(fh)
		if err != nil {
			return err
		}
		files = append(files, *file)
	}

	urls, err := h.service.UploadFiles(c.Request().Context(), middleware.SessionID(c), files)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, urls)
}

// DeleteFile removes a stored file.
//
// @Summary      Delete file
// @Tags         seller
// @Param        name  path  string  true  "File name"
// @Success      204
// @Failure      403  {object}  errorResponse
// @Router       /files/{name} [delete]
func (h *SellerHandler) DeleteFile(c echo.Context) error {
	name := c.Param("name")
	if name == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "file name is required")
	}
	if err := h.service.DeleteFile(c.Request().Context(), middleware.SessionID(c), name); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// DashboardSales returns aggregate sales figures.
//
// @Summary      Dashboard sales
// @Tags         seller
// @Produce      json
// @Success      200  {object}  domain.DashboardSales
// @Failure      403  {object}  errorResponse
// @Router       /api/seller/dashboard/sales [get]
func (h *SellerHandler) DashboardSales(c echo.Context) error {
	sales, err := h.service.DashboardSales(c.Request().Context(), middleware.SessionID(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, sales)
}

// DashboardProducts returns per-product performance.
//
// @Summary      Dashboard products
// @Tags         seller
// @Produce      json
// @Success      200  {array}  domain.DashboardProduct
// @Failure      403  {object}  errorResponse
// @Router       /api/seller/dashboard/products [get]
func (h *SellerHandler) DashboardProducts(c echo.Context) error {
	products, err := h.service.DashboardProducts(c.Request().Context(), middleware.SessionID(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, products)
}

// DashboardMonthlySales returns the monthly sales series.
//
// @Summary      Dashboard monthly sales
// @Tags         seller
// @Produce      json
// @Success      200  {array}  domain.MonthlySales
// @Failure      403  {object}  errorResponse
// @Router       /api/seller/dashboard/monthly-sales [get]
func (h *SellerHandler) DashboardMonthlySales(c echo.Context) error {
	series, err := h.service.DashboardMonthlySales(c.Request().Context(), middleware.SessionID(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, series)
}

// readFilePart buffers one multipart file for upstream forwarding.
func readFilePart(fh *multipart.FileHeader) (*ports.FileInput, error) {
	if fh.Size > maxUploadBytes {
		return nil, echo.NewHTTPError(http.StatusRequestEntityTooLarge, "file too large")
	}
	src, err := fh.Open()
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "unreadable file part")
	}
	defer src.Close()

	data, err := io.ReadAll(io.LimitReader(src, maxUploadBytes))
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "unreadable file part")
	}
	return &ports.FileInput{
		Name:        fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}
