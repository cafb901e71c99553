package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/gachisikyeo/gongu-gateway/internal/core/domain"
)

const testSecret = "test-secret"

func runSession(t *testing.T, req *http.Request) (string, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var sid string
	mw := Session(testSecret, time.Hour)
	handler := mw(func(c echo.Context) error {
		sid = SessionID(c)
		return c.NoContent(http.StatusOK)
	})
	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	return sid, rec
}

func TestSession_MintsCookieForNewVisitor(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	sid, rec := runSession(t, req)

	if sid == "" {
		t.Fatal("expected a session id")
	}
	cookies := rec.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != SessionCookie {
		t.Fatalf("expected one %s cookie, got %v", SessionCookie, cookies)
	}
	if !cookies[0].HttpOnly {
		t.Fatal("session cookie must be http-only")
	}
	if parseSessionID(cookies[0].Value, testSecret) != sid {
		t.Fatal("cookie does not round-trip the session id")
	}
}

func TestSession_ReusesValidCookie(t *testing.T) {
	first := httptest.NewRequest(http.MethodGet, "/", nil)
	firstSID, rec := runSession(t, first)
	cookie := rec.Result().Cookies()[0]

	second := httptest.NewRequest(http.MethodGet, "/", nil)
	second.AddCookie(cookie)
	secondSID, rec2 := runSession(t, second)

	if secondSID != firstSID {
		t.Fatalf("expected session id %s to be reused, got %s", firstSID, secondSID)
	}
	if len(rec2.Result().Cookies()) != 0 {
		t.Fatal("valid cookie must not be reminted")
	}
}

func TestSession_RejectsTamperedCookie(t *testing.T) {
	forged, err := signSessionID("forged-sid", "wrong-secret", time.Hour)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: forged})

	sid, rec := runSession(t, req)
	if sid == "forged-sid" {
		t.Fatal("tampered cookie must not be trusted")
	}
	if len(rec.Result().Cookies()) != 1 {
		t.Fatal("expected a replacement cookie")
	}
}

type fixedSessions struct {
	user domain.Session
}

func (f fixedSessions) AuthUser(context.Context, string) domain.Session { return f.user }

func (fixedSessions) SaveAuthUser(context.Context, string, domain.Session) {}
func (fixedSessions) SaveTokens(context.Context, string, string, string)   {}
func (fixedSessions) ClearAuth(context.Context, string)                    {}
func (fixedSessions) SetOAuth2SignupToken(context.Context, string, string) {}
func (fixedSessions) OAuth2SignupToken(context.Context, string) string     { return "" }
func (fixedSessions) ClearOAuth2SignupToken(context.Context, string)       {}

func TestRequireLogin(t *testing.T) {
	e := echo.New()

	t.Run("guest rejected", func(t *testing.T) {
		c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
		mw := RequireLogin(fixedSessions{user: domain.GuestSession()})
		err := mw(func(c echo.Context) error {
			t.Fatal("should not reach next handler")
			return nil
		})(c)
		if err != domain.ErrNotAuthenticated {
			t.Fatalf("expected ErrNotAuthenticated, got %v", err)
		}
	})

	t.Run("buyer passes", func(t *testing.T) {
		c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
		buyer := domain.Session{IsLoggedIn: true, UserType: domain.UserTypeBuyer, ID: 42}
		mw := RequireLogin(fixedSessions{user: buyer})
		called := false
		err := mw(func(c echo.Context) error {
			called = true
			if AuthUser(c).ID != 42 {
				t.Fatal("profile not stored in context")
			}
			return c.NoContent(http.StatusOK)
		})(c)
		if err != nil || !called {
			t.Fatalf("expected pass-through, got %v", err)
		}
	})
}

func TestRequireUserType(t *testing.T) {
	e := echo.New()
	buyer := domain.Session{IsLoggedIn: true, UserType: domain.UserTypeBuyer}

	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	mw := RequireUserType(fixedSessions{user: buyer}, domain.UserTypeSeller)
	err := mw(func(c echo.Context) error {
		t.Fatal("should not reach next handler")
		return nil
	})(c)
	if err != domain.ErrForbidden {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}
