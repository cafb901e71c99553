package upstream

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/gachisikyeo/gongu-gateway/internal/core/domain"
	"github.com/gachisikyeo/gongu-gateway/internal/core/ports"
)

// fakeTokenStore is an in-memory TokenStore recording every mutation.
type fakeTokenStore struct {
	mu      sync.Mutex
	access  string
	refresh string
	cleared bool
}

func (s *fakeTokenStore) AccessToken(context.Context, string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.access
}

func (s *fakeTokenStore) RefreshToken(context.Context, string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.refresh
}

func (s *fakeTokenStore) SaveTokens(_ context.Context, _ string, access, refresh string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.access = access
	s.refresh = refresh
}

func (s *fakeTokenStore) ClearAuth(context.Context, string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.access = ""
	s.refresh = ""
	s.cleared = true
}

func (s *fakeTokenStore) wasCleared() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cleared
}

func writeOK(w http.ResponseWriter, data any) {
	raw, _ := json.Marshal(data)
	_ = json.NewEncoder(w).Encode(envelope{Status: 200, Success: true, Data: raw})
}

func writeFail(w http.ResponseWriter, httpStatus, status int, msg string) {
	w.WriteHeader(httpStatus)
	_ = json.NewEncoder(w).Encode(envelope{Status: status, Success: false, Message: msg})
}

func newTestClient(t *testing.T, handler http.Handler, store *fakeTokenStore) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, store, zerolog.Nop(), 5*time.Second)
}

func TestCall_ConcurrentExpiry_SingleRefresh(t *testing.T) {
	const parallel = 16
	store := &fakeTokenStore{access: "access-1", refresh: "refresh-1"}

	var (
		expired       int32
		refreshCalls  int32
		protectedHits int32
		allExpired    = make(chan struct{})
	)

	mux := http.NewServeMux()
	mux.HandleFunc("/api/mypage/profile", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&protectedHits, 1)
		if r.Header.Get("Authorization") == "Bearer access-2" {
			writeOK(w, domain.Profile{ID: 7, NickName: "host"})
			return
		}
		if atomic.AddInt32(&expired, 1) == parallel {
			close(allExpired)
		}
		writeFail(w, http.StatusUnauthorized, 401, "token expired")
	})
	mux.HandleFunc("/auth/refresh", func(w http.ResponseWriter, r *http.Request) {
		// Hold the refresh open until every request has seen its 401, so all
		// of them contend for the same flight.
		<-allExpired
		time.Sleep(50 * time.Millisecond)
		atomic.AddInt32(&refreshCalls, 1)
		writeOK(w, map[string]string{"accessToken": "access-2", "refreshToken": "refresh-2"})
	})

	c := newTestClient(t, mux, store)

	var wg sync.WaitGroup
	errs := make([]error, parallel)
	for i := 0; i < parallel; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = c.Profile(context.Background(), "sid-1")
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			t.Fatalf("request %d failed: %v", i, err)
		}
	}
	if got := atomic.LoadInt32(&refreshCalls); got != 1 {
		t.Fatalf("expected exactly 1 refresh, got %d", got)
	}
	if store.AccessToken(context.Background(), "sid-1") != "access-2" {
		t.Fatal("refreshed access token not stored")
	}
	if store.RefreshToken(context.Background(), "sid-1") != "refresh-2" {
		t.Fatal("rotated refresh token not stored")
	}
	// Each request hits the API at most twice: its 401 plus one replay.
	if got := atomic.LoadInt32(&protectedHits); got > 2*parallel {
		t.Fatalf("too many protected hits: %d", got)
	}
}

func TestCall_NoSecondRetry(t *testing.T) {
	store := &fakeTokenStore{access: "access-1", refresh: "refresh-1"}

	var protectedHits, refreshCalls int32
	mux := http.NewServeMux()
	mux.HandleFunc("/api/mypage/profile", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&protectedHits, 1)
		writeFail(w, http.StatusUnauthorized, 401, "still expired")
	})
	mux.HandleFunc("/auth/refresh", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&refreshCalls, 1)
		writeOK(w, map[string]string{"accessToken": "access-2", "refreshToken": "refresh-2"})
	})

	c := newTestClient(t, mux, store)

	_, err := c.Profile(context.Background(), "sid-1")
	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.Status != http.StatusUnauthorized {
		t.Fatalf("expected 401 APIError, got %v", err)
	}
	if got := atomic.LoadInt32(&protectedHits); got != 2 {
		t.Fatalf("expected exactly 2 attempts (original + one replay), got %d", got)
	}
	if got := atomic.LoadInt32(&refreshCalls); got != 1 {
		t.Fatalf("expected exactly 1 refresh, got %d", got)
	}
}

func TestCall_RefreshFailure_SurfacesOriginalAndClearsSession(t *testing.T) {
	store := &fakeTokenStore{access: "access-1", refresh: "refresh-1"}

	var protectedHits int32
	mux := http.NewServeMux()
	mux.HandleFunc("/api/mypage/profile", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&protectedHits, 1)
		writeFail(w, http.StatusUnauthorized, 401, "access token expired")
	})
	mux.HandleFunc("/auth/refresh", func(w http.ResponseWriter, r *http.Request) {
		writeFail(w, http.StatusUnauthorized, 401, "refresh token revoked")
	})

	c := newTestClient(t, mux, store)

	_, err := c.Profile(context.Background(), "sid-1")
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	// The caller sees the failure that started the cycle, not the refresh's.
	if apiErr.Message != "access token expired" {
		t.Fatalf("expected original error message, got %q", apiErr.Message)
	}
	if !store.wasCleared() {
		t.Fatal("session auth state should be cleared after refresh failure")
	}
	if got := atomic.LoadInt32(&protectedHits); got != 1 {
		t.Fatalf("expected no replay after failed refresh, got %d attempts", got)
	}
}

func TestCall_NoRefreshToken_FailsFast(t *testing.T) {
	store := &fakeTokenStore{access: "access-1"}

	var refreshCalls int32
	mux := http.NewServeMux()
	mux.HandleFunc("/api/mypage/profile", func(w http.ResponseWriter, r *http.Request) {
		writeFail(w, http.StatusUnauthorized, 401, "token expired")
	})
	mux.HandleFunc("/auth/refresh", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&refreshCalls, 1)
		writeOK(w, map[string]string{"accessToken": "never"})
	})

	c := newTestClient(t, mux, store)

	_, err := c.Profile(context.Background(), "sid-1")
	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.Status != http.StatusUnauthorized {
		t.Fatalf("expected 401 APIError, got %v", err)
	}
	if atomic.LoadInt32(&refreshCalls) != 0 {
		t.Fatal("refresh endpoint should not be called without a refresh token")
	}
	if !store.wasCleared() {
		t.Fatal("session auth state should be cleared")
	}
}

func TestCall_AuthEndpointsAreNeverRetried(t *testing.T) {
	store := &fakeTokenStore{}

	var loginHits, refreshCalls int32
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/login", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&loginHits, 1)
		writeFail(w, http.StatusUnauthorized, 401, "이메일 또는 비밀번호가 올바르지 않습니다.")
	})
	mux.HandleFunc("/auth/refresh", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&refreshCalls, 1)
		writeOK(w, map[string]string{"accessToken": "never"})
	})

	c := newTestClient(t, mux, store)

	_, err := c.Login(context.Background(), "a@b.c", "wrong")
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.Message != "이메일 또는 비밀번호가 올바르지 않습니다." {
		t.Fatalf("upstream message must pass through verbatim, got %q", apiErr.Message)
	}
	if atomic.LoadInt32(&loginHits) != 1 {
		t.Fatal("login must not be retried")
	}
	if atomic.LoadInt32(&refreshCalls) != 0 {
		t.Fatal("a failed login must not trigger a refresh")
	}
}

func TestCall_EnvelopeFailureBecomesAPIError(t *testing.T) {
	store := &fakeTokenStore{access: "access-1", refresh: "refresh-1"}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/group-purchases/9/participations", func(w http.ResponseWriter, r *http.Request) {
		// HTTP 200 with a failed envelope still maps to an APIError.
		writeFail(w, http.StatusOK, 409, "이미 참여한 공구입니다.")
	})

	c := newTestClient(t, mux, store)

	_, err := c.CreateParticipation(context.Background(), "sid-1", 9, ports.ParticipationInput{Quantity: 3, BuyerContact: "010-1234-5678"})
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.Status != 409 || apiErr.Message != "이미 참여한 공구입니다." {
		t.Fatalf("unexpected APIError: %+v", apiErr)
	}
}

func TestCall_RedirectShapedExpiry_RefreshesAndReplays(t *testing.T) {
	store := &fakeTokenStore{access: "access-1", refresh: "refresh-1"}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/mypage/profile", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") == "Bearer access-2" {
			writeOK(w, domain.Profile{ID: 3})
			return
		}
		// Expired sessions bounce to the Google authorization page.
		w.Header().Set("Location", "/oauth2/authorization/google")
		w.WriteHeader(http.StatusFound)
	})
	mux.HandleFunc("/auth/refresh", func(w http.ResponseWriter, r *http.Request) {
		writeOK(w, map[string]string{"accessToken": "access-2", "refreshToken": "refresh-2"})
	})

	c := newTestClient(t, mux, store)

	p, err := c.Profile(context.Background(), "sid-1")
	if err != nil {
		t.Fatalf("expected redirect to be treated as expiry and recovered, got %v", err)
	}
	if p.ID != 3 {
		t.Fatalf("unexpected profile: %+v", p)
	}
}

func TestLogin_DecodesTokenPairAndProfile(t *testing.T) {
	store := &fakeTokenStore{}

	mux := http.NewServeMux()
	mux.HandleFunc("/auth/login", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body["email"] != "host@gachi.kr" {
			t.Errorf("unexpected login body: %v", body)
		}
		writeOK(w, domain.LoginResult{
			AccessToken:  "access-1",
			RefreshToken: "refresh-1",
			ID:           42,
			NickName:     "host",
			UserType:     domain.UserTypeBuyer,
			LawDong:      &domain.LawDong{ID: 1111, Sido: "서울특별시", Sigungu: "마포구", Dong: "합정동"},
		})
	})

	c := newTestClient(t, mux, store)

	res, err := c.Login(context.Background(), "host@gachi.kr", "secret")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if res.AccessToken != "access-1" || res.RefreshToken != "refresh-1" {
		t.Fatalf("unexpected token pair: %+v", res)
	}
	s := res.Session()
	if !s.IsLoggedIn || s.RegionID() != 1111 {
		t.Fatalf("unexpected session: %+v", s)
	}
}

func TestClient_EmitsDocumentedUpstreamPaths(t *testing.T) {
	var mu sync.Mutex
	var got []string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		got = append(got, r.Method+" "+r.URL.RequestURI())
		mu.Unlock()
		if r.URL.Path == "/api/products/category" {
			writeOK(w, []domain.Product{})
			return
		}
		writeOK(w, map[string]any{})
	})
	store := &fakeTokenStore{access: "access-1", refresh: "refresh-1"}
	client := newTestClient(t, handler, store)
	ctx := context.Background()

	if _, err := client.ConfirmPayment(ctx, "sid-1", 9); err != nil {
		t.Fatalf("ConfirmPayment: %v", err)
	}
	if err := client.DeleteFile(ctx, "sid-1", "pic.png"); err != nil {
		t.Fatalf("DeleteFile: %v", err)
	}
	if err := client.Logout(ctx, "sid-1"); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	if _, err := client.ProductsByCategory(ctx, domain.CategoryFood); err != nil {
		t.Fatalf("ProductsByCategory: %v", err)
	}
	if _, err := client.CompletedDetail(ctx, "sid-1", 5); err != nil {
		t.Fatalf("CompletedDetail: %v", err)
	}

	want := []string{
		"POST /api/participations/9/payments/confirm",
		"DELETE /files?fileName=pic.png",
		"DELETE /auth/logout",
		"GET /api/products/category?category=FOOD",
		"GET /api/mypage/completed/5",
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d upstream calls, got %v", len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("call %d: got %q, want %q", i, got[i], want[i])
		}
	}
}
