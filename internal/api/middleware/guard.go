package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/gachisikyeo/gongu-gateway/internal/core/domain"
	"github.com/gachisikyeo/gongu-gateway/internal/core/ports"
)

// AuthUserKey is the echo context key the resolved session profile is stored
// under by the guards.
const AuthUserKey = "auth_user"

// RequireLogin rejects guests. The resolved profile is stored in the context
// for handlers that need it.
func RequireLogin(sessions ports.SessionStore) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user := sessions.AuthUser(c.Request().Context(), SessionID(c))
			if !user.IsLoggedIn {
				return domain.ErrNotAuthenticated
			}
			c.Set(AuthUserKey, user)
			return next(c)
		}
	}
}

// RequireUserType rejects guests and sessions of a different user type.
func RequireUserType(sessions ports.SessionStore, userType domain.UserType) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user := sessions.AuthUser(c.Request().Context(), SessionID(c))
			if !user.IsLoggedIn {
				return domain.ErrNotAuthenticated
			}
			if user.UserType != userType {
				return domain.ErrForbidden
			}
			c.Set(AuthUserKey, user)
			return next(c)
		}
	}
}

// AuthUser returns the profile stored by a guard, or a guest when no guard
// ran on this route.
func AuthUser(c echo.Context) domain.Session {
	if user, ok := c.Get(AuthUserKey).(domain.Session); ok {
		return user
	}
	return domain.GuestSession()
}
