// Package upstream implements the authenticated HTTP client for the external
// marketplace REST API. It owns the response envelope, bearer-token injection
// from the session store, and the transparent refresh-and-retry cycle: on an
// auth-expired response the client refreshes the token pair exactly once per
// session (concurrent requests share a single refresh) and replays the
// request one time.
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/gachisikyeo/gongu-gateway/internal/api/metrics"
	"github.com/gachisikyeo/gongu-gateway/internal/core/domain"
)

const (
	defaultTimeout  = 15 * time.Second
	maxResponseSize = 4 << 20

	contentTypeJSON = "application/json"
)

// TokenStore is the session-backed token storage the client reads bearer
// tokens from and writes refreshed pairs back to.
type TokenStore interface {
	AccessToken(ctx context.Context, sessionID string) string
	RefreshToken(ctx context.Context, sessionID string) string
	SaveTokens(ctx context.Context, sessionID, accessToken, refreshToken string)
	ClearAuth(ctx context.Context, sessionID string)
}

// APIError is a structured failure reported by the upstream envelope. Message
// carries the upstream text verbatim so handlers can surface it unchanged.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("upstream error (status %d)", e.Status)
}

// envelope is the uniform upstream response shape.
type envelope struct {
	Status  int             `json:"status"`
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// Client is the marketplace API client. Safe for concurrent use.
type Client struct {
	baseURL string
	httpc   *http.Client
	tokens  TokenStore
	log     zerolog.Logger

	mu      sync.Mutex
	flights map[string]*refreshFlight
}

// refreshFlight tracks one in-progress token refresh. Waiters are released in
// arrival order with the new access token, or "" when the refresh failed.
type refreshFlight struct {
	waiters []chan string
}

// NewClient builds a client for the API rooted at baseURL.
func NewClient(baseURL string, tokens TokenStore, log zerolog.Logger, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc: &http.Client{
			Timeout: timeout,
			// Some deployments answer an expired session with a redirect to
			// the Google authorization page instead of a 401. Keeping the 3xx
			// visible lets the client treat it as auth expiry.
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
		tokens:  tokens,
		log:     log,
		flights: make(map[string]*refreshFlight),
	}
}

// request is one upstream call. endpoint is the metric label; when empty the
// raw path is used.
type request struct {
	method      string
	path        string
	endpoint    string
	contentType string
	body        []byte
}

func (r request) label() string {
	if r.endpoint != "" {
		return r.endpoint
	}
	return r.path
}

// call performs the request with the session's access token and, on an
// auth-expired failure outside /auth/, refreshes once and replays once. The
// replay's result is returned as-is, so a second auth failure surfaces
// instead of looping.
func (c *Client) call(ctx context.Context, sessionID string, req request) (json.RawMessage, error) {
	start := time.Now()
	raw, err := c.send(ctx, req, c.tokens.AccessToken(ctx, sessionID))
	if err == nil || strings.HasPrefix(req.path, "/auth/") || !isAuthExpired(err) {
		c.observe(req, start, err)
		return raw, err
	}

	token, ok := c.refreshAccess(ctx, sessionID)
	if !ok {
		// Refresh failed: the session was cleared, the caller gets the
		// failure that started the cycle.
		metrics.UpstreamRequestsTotal.WithLabelValues(req.label(), "auth_expired").Inc()
		metrics.UpstreamRequestDuration.WithLabelValues(req.label()).Observe(time.Since(start).Seconds())
		return nil, err
	}

	raw, err = c.send(ctx, req, token)
	c.observe(req, start, err)
	return raw, err
}

func (c *Client) observe(req request, start time.Time, err error) {
	outcome := "ok"
	switch {
	case err == nil:
	case isAuthExpired(err):
		outcome = "auth_expired"
	case isAPIError(err):
		outcome = "api_error"
	default:
		outcome = "transport_error"
	}
	metrics.UpstreamRequestsTotal.WithLabelValues(req.label(), outcome).Inc()
	metrics.UpstreamRequestDuration.WithLabelValues(req.label()).Observe(time.Since(start).Seconds())
}

func (c *Client) send(ctx context.Context, req request, bearer string) (json.RawMessage, error) {
	httpReq, err := http.NewRequestWithContext(ctx, req.method, c.baseURL+req.path, bytes.NewReader(req.body))
	if err != nil {
		return nil, fmt.Errorf("build request %s: %w", req.path, err)
	}
	httpReq.Header.Set("Accept", contentTypeJSON)
	if req.contentType != "" {
		httpReq.Header.Set("Content-Type", req.contentType)
	}
	if bearer != "" {
		httpReq.Header.Set("Authorization", "Bearer "+bearer)
	}

	resp, err := c.httpc.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("upstream %s %s: %w", req.method, req.path, err)
	}
	defer resp.Body.Close()

	return decodeEnvelope(resp)
}

func decodeEnvelope(resp *http.Response) (json.RawMessage, error) {
	// The API proper never redirects; a 3xx is the login interstitial
	// (/oauth2/authorization/google) and means the session expired.
	if resp.StatusCode >= 300 && resp.StatusCode < 400 {
		return nil, &APIError{Status: http.StatusUnauthorized, Message: "login required"}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("read upstream response: %w", err)
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		if resp.StatusCode >= 400 {
			return nil, &APIError{Status: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
		}
		return nil, fmt.Errorf("decode upstream envelope: %w", err)
	}

	status := env.Status
	if status == 0 {
		status = resp.StatusCode
	}
	if !env.Success || status >= 400 {
		return nil, &APIError{Status: status, Message: env.Message}
	}
	return env.Data, nil
}

func isAuthExpired(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusUnauthorized
}

func isAPIError(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr)
}

// refreshAccess exchanges the stored refresh token for a new pair. Concurrent
// callers for the same session share one upstream refresh: the first caller
// performs it, the rest park until it finishes and receive the outcome. On
// failure the session's auth state is cleared and every caller reports the
// failure it originally saw.
func (c *Client) refreshAccess(ctx context.Context, sessionID string) (string, bool) {
	c.mu.Lock()
	if f, ok := c.flights[sessionID]; ok {
		ch := make(chan string, 1)
		f.waiters = append(f.waiters, ch)
		c.mu.Unlock()

		metrics.RefreshWaiters.Inc()
		defer metrics.RefreshWaiters.Dec()
		select {
		case <-ctx.Done():
			return "", false
		case token := <-ch:
			return token, token != ""
		}
	}
	c.flights[sessionID] = &refreshFlight{}
	c.mu.Unlock()

	token, err := c.doRefresh(ctx, sessionID)
	if err != nil {
		c.log.Debug().Err(err).Msg("token refresh failed")
		metrics.TokenRefreshTotal.WithLabelValues("failure").Inc()
		c.tokens.ClearAuth(ctx, sessionID)
		c.finishFlight(sessionID, "")
		return "", false
	}
	metrics.TokenRefreshTotal.WithLabelValues("success").Inc()
	c.finishFlight(sessionID, token)
	return token, true
}

// finishFlight removes the flight and releases waiters in arrival order.
func (c *Client) finishFlight(sessionID, token string) {
	c.mu.Lock()
	f := c.flights[sessionID]
	delete(c.flights, sessionID)
	c.mu.Unlock()
	if f == nil {
		return
	}
	for _, ch := range f.waiters {
		ch <- token
	}
}

func (c *Client) doRefresh(ctx context.Context, sessionID string) (string, error) {
	refresh := c.tokens.RefreshToken(ctx, sessionID)
	if refresh == "" {
		return "", domain.ErrNoRefreshToken
	}

	body, _ := json.Marshal(map[string]string{"refreshToken": refresh})
	raw, err := c.send(ctx, request{
		method:      http.MethodPost,
		path:        "/auth/refresh",
		contentType: contentTypeJSON,
		body:        body,
	}, "")
	if err != nil {
		return "", err
	}

	var pair struct {
		AccessToken  string `json:"accessToken"`
		RefreshToken string `json:"refreshToken"`
	}
	if err := json.Unmarshal(raw, &pair); err != nil {
		return "", fmt.Errorf("decode refresh payload: %w", err)
	}
	if pair.AccessToken == "" {
		return "", errors.New("refresh returned no access token")
	}
	// Upstream may rotate only the access token.
	if pair.RefreshToken == "" {
		pair.RefreshToken = refresh
	}
	c.tokens.SaveTokens(ctx, sessionID, pair.AccessToken, pair.RefreshToken)
	return pair.AccessToken, nil
}

// ── typed helpers ─────────────────────────────────────────────────────────────

func (c *Client) getJSON(ctx context.Context, sessionID, path, endpoint string, out any) error {
	raw, err := c.call(ctx, sessionID, request{method: http.MethodGet, path: path, endpoint: endpoint})
	if err != nil {
		return err
	}
	return decodeData(raw, out)
}

func (c *Client) postJSON(ctx context.Context, sessionID, path, endpoint string, in, out any) error {
	var body []byte
	if in != nil {
		var err error
		if body, err = json.Marshal(in); err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
	}
	raw, err := c.call(ctx, sessionID, request{
		method:      http.MethodPost,
		path:        path,
		endpoint:    endpoint,
		contentType: contentTypeJSON,
		body:        body,
	})
	if err != nil {
		return err
	}
	return decodeData(raw, out)
}

func (c *Client) deleteJSON(ctx context.Context, sessionID, path, endpoint string) error {
	_, err := c.call(ctx, sessionID, request{method: http.MethodDelete, path: path, endpoint: endpoint})
	return err
}

func (c *Client) postMultipart(ctx context.Context, sessionID, path, endpoint, contentType string, body []byte, out any) error {
	raw, err := c.call(ctx, sessionID, request{
		method:      http.MethodPost,
		path:        path,
		endpoint:    endpoint,
		contentType: contentType,
		body:        body,
	})
	if err != nil {
		return err
	}
	return decodeData(raw, out)
}

func decodeData(raw json.RawMessage, out any) error {
	if out == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode upstream payload: %w", err)
	}
	return nil
}
