package middleware

import (
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/gachisikyeo/gongu-gateway/internal/api/metrics"
)

const (
	// SessionCookie carries the signed session id.
	SessionCookie = "gongu_session"
	// SessionIDKey is the echo context key the session id is stored under.
	SessionIDKey = "session_id"
)

// Session resolves the browser session id from the signed cookie, minting a
// fresh one when the cookie is absent, expired, or tampered with. Every
// request downstream of this middleware has a session id.
func Session(jwtSecret string, ttl time.Duration) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sid := ""
			if cookie, err := c.Cookie(SessionCookie); err == nil {
				sid = parseSessionID(cookie.Value, jwtSecret)
			}
			if sid == "" {
				sid = uuid.NewString()
				token, err := signSessionID(sid, jwtSecret, ttl)
				if err != nil {
					return err
				}
				c.SetCookie(&http.Cookie{
					Name:     SessionCookie,
					Value:    token,
					Path:     "/",
					MaxAge:   int(ttl.Seconds()),
					HttpOnly: true,
					SameSite: http.SameSiteLaxMode,
				})
				metrics.SessionsIssuedTotal.Inc()
			}

			c.Set(SessionIDKey, sid)
			return next(c)
		}
	}
}

// SessionID returns the session id resolved by the Session middleware, or ""
// when the middleware did not run.
func SessionID(c echo.Context) string {
	sid, _ := c.Get(SessionIDKey).(string)
	return sid
}

func signSessionID(sid, jwtSecret string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sid": sid,
		"iat": now.Unix(),
		"exp": now.Add(ttl).Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(jwtSecret))
}

func parseSessionID(token, jwtSecret string) string {
	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(token, claims, func(token *jwt.Token) (interface{}, error) {
		if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(jwtSecret), nil
	})
	if err != nil || !tkn.Valid {
		return ""
	}
	sid, _ := claims["sid"].(string)
	return sid
}
