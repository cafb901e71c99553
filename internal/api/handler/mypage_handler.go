package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/gachisikyeo/gongu-gateway/internal/api/middleware"
	"github.com/gachisikyeo/gongu-gateway/internal/core/domain"
)

// MyPageFlows is the slice of the my-page service the handler needs.
type MyPageFlows interface {
	Profile(ctx context.Context, sessionID string) (*domain.Profile, error)
	OngoingParticipations(ctx context.Context, sessionID string) ([]domain.ParticipationSummary, error)
	CompletedParticipations(ctx context.Context, sessionID string) ([]domain.ParticipationSummary, error)
	CompletedDetail(ctx context.Context, sessionID string, id int64) (*domain.CompletedOrder, error)
}

type MyPageHandler struct {
	service MyPageFlows
}

func NewMyPageHandler(service MyPageFlows) *MyPageHandler {
	return &MyPageHandler{service: service}
}

// Profile returns the logged-in user's profile.
//
// @Summary      My profile
// @Tags         mypage
// @Produce      json
// @Success      200  {object}  domain.Profile
// @Failure      401  {object}  errorResponse
// @Router       /api/mypage/profile [get]
func (h *MyPageHandler) Profile(c echo.Context) error {
	profile, err := h.service.Profile(c.Request().Context(), middleware.SessionID(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, profile)
}

// Ongoing lists the user's in-progress participations.
//
// @Summary      Ongoing participations
// @Tags         mypage
// @Produce      json
// @Success      200  {array}  domain.ParticipationSummary
// @Failure      401  {object}  errorResponse
// @Router       /api/mypage/participations/ongoing [get]
func (h *MyPageHandler) Ongoing(c echo.Context) error {
	items, err := h.service.OngoingParticipations(c.Request().Context(), middleware.SessionID(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, items)
}

// Completed lists the user's finished participations.
//
// @Summary      Completed participations
// @Tags         mypage
// @Produce      json
// @Success      200  {array}  domain.ParticipationSummary
// @Failure      401  {object}  errorResponse
// @Router       /api/mypage/participations/completed [get]
func (h *MyPageHandler) Completed(c echo.Context) error {
	items, err := h.service.CompletedParticipations(c.Request().Context(), middleware.SessionID(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, items)
}

// OrderDetail returns one completed order.
//
// @Summary      Completed order detail
// @Tags         mypage
// @Produce      json
// @Param        id  path  int  true  "Order ID"
// @Success      200  {object}  domain.CompletedOrder
// @Failure      401  {object}  errorResponse
// @Router       /api/mypage/orders/{id} [get]
func (h *MyPageHandler) OrderDetail(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	order, err := h.service.CompletedDetail(c.Request().Context(), middleware.SessionID(c), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, order)
}
