package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/gachisikyeo/gongu-gateway/internal/api/middleware"
	"github.com/gachisikyeo/gongu-gateway/internal/core/domain"
	"github.com/gachisikyeo/gongu-gateway/internal/core/ports"
)

// AuthFlows is the slice of the auth service the handler needs.
type AuthFlows interface {
	Session(ctx context.Context, sessionID string) domain.Session
	Login(ctx context.Context, sessionID, email, password string) (domain.Session, error)
	Signup(ctx context.Context, in ports.SignupInput) error
	CompleteOAuth2Redirect(ctx context.Context, sessionID, accessToken, refreshToken, signupToken string) (domain.Session, bool, error)
	OAuth2Signup(ctx context.Context, sessionID, nickName string, userType domain.UserType, lawDongID int64) (domain.Session, error)
	Logout(ctx context.Context, sessionID string)
}

type AuthHandler struct {
	service AuthFlows
}

func NewAuthHandler(service AuthFlows) *AuthHandler {
	return &AuthHandler{service: service}
}

type sessionResponse struct {
	User domain.Session `json:"user"`
}

type oauth2RedirectResponse struct {
	User        domain.Session `json:"user"`
	NeedsSignup bool           `json:"needsSignup"`
}

// Session returns the current session profile.
//
// @Summary      Current session
// @Tags         auth
// @Produce      json
// @Success      200  {object}  sessionResponse
// @Router       /auth/session [get]
func (h *AuthHandler) Session(c echo.Context) error {
	user := h.service.Session(c.Request().Context(), middleware.SessionID(c))
	return c.JSON(http.StatusOK, sessionResponse{User: user})
}

// Login authenticates with email credentials.
//
// @Summary      Email login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  sessionResponse
// @Failure      401   {object}  errorResponse
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.service.Login(c.Request().Context(), middleware.SessionID(c), req.Email, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, sessionResponse{User: user})
}

// Signup registers a new email account.
//
// @Summary      Email signup
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      signupRequest  true  "Signup details"
// @Success      201   {object}  map[string]string
// @Failure      400   {object}  errorResponse
// @Router       /auth/signup [post]
func (h *AuthHandler) Signup(c echo.Context) error {
	var req signupRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	err := h.service.Signup(c.Request().Context(), ports.SignupInput{
		Email:     req.Email,
		Password:  req.Password,
		Name:      req.Name,
		NickName:  req.NickName,
		UserType:  domain.UserType(req.UserType),
		LawDongID: req.LawDongID,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, map[string]string{"status": "created"})
}

// OAuth2Redirect completes the Google OAuth2 redirect leg.
//
// @Summary      OAuth2 redirect completion
// @Tags         auth
// @Produce      json
// @Param        accessToken   query  string  false  "Access token for an existing user"
// @Param        refreshToken  query  string  false  "Refresh token for an existing user"
// @Param        signupToken   query  string  false  "Signup token for a first-time user"
// @Success      200  {object}  oauth2RedirectResponse
// @Router       /oauth2/redirect [get]
func (h *AuthHandler) OAuth2Redirect(c echo.Context) error {
	user, needsSignup, err := h.service.CompleteOAuth2Redirect(
		c.Request().Context(),
		middleware.SessionID(c),
		c.QueryParam("accessToken"),
		c.QueryParam("refreshToken"),
		c.QueryParam("signupToken"),
	)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, oauth2RedirectResponse{User: user, NeedsSignup: needsSignup})
}

// OAuth2Signup finishes a first-time Google signup.
//
// @Summary      OAuth2 interstitial signup
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      oauth2SignupRequest  true  "Signup details"
// @Success      200   {object}  sessionResponse
// @Failure      401   {object}  errorResponse
// @Router       /auth/oauth2/signup [post]
func (h *AuthHandler) OAuth2Signup(c echo.Context) error {
	var req oauth2SignupRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.service.OAuth2Signup(c.Request().Context(), middleware.SessionID(c), req.NickName, domain.UserType(req.UserType), req.LawDongID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, sessionResponse{User: user})
}

// Logout clears the session.
//
// @Summary      Logout
// @Tags         auth
// @Success      204
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	h.service.Logout(c.Request().Context(), middleware.SessionID(c))
	return c.NoContent(http.StatusNoContent)
}
