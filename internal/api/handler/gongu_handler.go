package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/gachisikyeo/gongu-gateway/internal/api/middleware"
	"github.com/gachisikyeo/gongu-gateway/internal/core/domain"
	"github.com/gachisikyeo/gongu-gateway/internal/core/gongu"
)

// PurchaseFlows is the slice of the purchase service the handler needs.
type PurchaseFlows interface {
	CreateGroupPurchase(ctx context.Context, sessionID string, productID int64, form gongu.CreateForm) (*domain.GroupPurchase, error)
	JoinState(ctx context.Context, sessionID string, groupPurchaseID int64) (*gongu.JoinState, error)
	Join(ctx context.Context, sessionID string, groupPurchaseID int64, form gongu.JoinForm) (*domain.Participation, error)
	Participation(ctx context.Context, sessionID string, id int64) (*domain.Participation, error)
	ConfirmPayment(ctx context.Context, sessionID string, participationID int64) (*domain.Participation, error)
}

type GonguHandler struct {
	service PurchaseFlows
}

func NewGonguHandler(service PurchaseFlows) *GonguHandler {
	return &GonguHandler{service: service}
}

type createGroupPurchaseRequest struct {
	BoxCount         int    `json:"boxCount"         validate:"required,gt=0"`
	HostBuyQuantity  int    `json:"hostBuyQuantity"  validate:"gte=0"`
	MinimumOrderUnit int    `json:"minimumOrderUnit" validate:"gte=0"`
	HostContact      string `json:"hostContact"      validate:"required"`
	DeliveryLocation string `json:"deliveryLocation" validate:"required"`
	PickupLocation   string `json:"pickupLocation"   validate:"required"`
	PickupAfterEnd   bool   `json:"pickupAfterEnd"`
	EndDate          string `json:"endDate"          validate:"required"`
	PickupDate       string `json:"pickupDate"       validate:"required"`
	PickupMeridiem   string `json:"pickupMeridiem"   validate:"required,oneof=AM PM"`
	PickupHour       int    `json:"pickupHour"       validate:"gte=1,lte=12"`
	PickupMinute     int    `json:"pickupMinute"     validate:"gte=0,lte=59"`
}

func (r createGroupPurchaseRequest) form() gongu.CreateForm {
	return gongu.CreateForm{
		BoxCount:         r.BoxCount,
		HostBuyQuantity:  r.HostBuyQuantity,
		MinimumOrderUnit: r.MinimumOrderUnit,
		HostContact:      r.HostContact,
		DeliveryLocation: r.DeliveryLocation,
		PickupLocation:   r.PickupLocation,
		PickupAfterEnd:   r.PickupAfterEnd,
		EndDate:          r.EndDate,
		PickupDate:       r.PickupDate,
		PickupMeridiem:   gongu.Meridiem(r.PickupMeridiem),
		PickupHour:       r.PickupHour,
		PickupMinute:     r.PickupMinute,
	}
}

type joinRequest struct {
	Quantity      int    `json:"quantity"      validate:"required,gt=0"`
	BuyerContact  string `json:"buyerContact"  validate:"required"`
	AgreeDeadline bool   `json:"agreeDeadline"`
	AgreePickup   bool   `json:"agreePickup"`
}

// Create opens a campaign for a product.
//
// @Summary      Create group purchase
// @Tags         gongu
// @Accept       json
// @Produce      json
// @Param        id    path  int                         true  "Product ID"
// @Param        body  body  createGroupPurchaseRequest  true  "Campaign form"
// @Success      201  {object}  domain.GroupPurchase
// @Failure      401  {object}  errorResponse
// @Failure      422  {object}  errorResponse
// @Router       /api/products/{id}/group-purchases [post]
func (h *GonguHandler) Create(c echo.Context) error {
	productID, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req createGroupPurchaseRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	gp, err := h.service.CreateGroupPurchase(c.Request().Context(), middleware.SessionID(c), productID, req.form())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, gp)
}

// JoinState returns the join read model for a campaign.
//
// @Summary      Join screen state
// @Tags         gongu
// @Produce      json
// @Param        id  path  int  true  "Group purchase ID"
// @Success      200  {object}  gongu.JoinState
// @Router       /api/group-purchases/{id}/join [get]
func (h *GonguHandler) JoinState(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	state, err := h.service.JoinState(c.Request().Context(), middleware.SessionID(c), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, state)
}

// Join creates a participation in a campaign.
//
// @Summary      Join group purchase
// @Tags         gongu
// @Accept       json
// @Produce      json
// @Param        id    path  int          true  "Group purchase ID"
// @Param        body  body  joinRequest  true  "Join form"
// @Success      201  {object}  domain.Participation
// @Failure      409  {object}  errorResponse
// @Failure      422  {object}  errorResponse
// @Router       /api/group-purchases/{id}/participations [post]
func (h *GonguHandler) Join(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req joinRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	p, err := h.service.Join(c.Request().Context(), middleware.SessionID(c), id, gongu.JoinForm{
		Quantity:      req.Quantity,
		BuyerContact:  req.BuyerContact,
		AgreeDeadline: req.AgreeDeadline,
		AgreePickup:   req.AgreePickup,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, p)
}

// Participation returns one commitment for the payment screen.
//
// @Summary      Participation detail
// @Tags         gongu
// @Produce      json
// @Param        id  path  int  true  "Participation ID"
// @Success      200  {object}  domain.Participation
// @Failure      401  {object}  errorResponse
// @Router       /api/participations/{id} [get]
func (h *GonguHandler) Participation(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	p, err := h.service.Participation(c.Request().Context(), middleware.SessionID(c), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, p)
}

// ConfirmPayment marks a participation as paid.
//
// @Summary      Confirm payment
// @Tags         gongu
// @Produce      json
// @Param        id  path  int  true  "Participation ID"
// @Success      200  {object}  domain.Participation
// @Failure      401  {object}  errorResponse
// @Router       /api/participations/{id}/payment [post]
func (h *GonguHandler) ConfirmPayment(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	p, err := h.service.ConfirmPayment(c.Request().Context(), middleware.SessionID(c), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, p)
}
