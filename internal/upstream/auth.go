package upstream

import (
	"context"
	"net/http"

	"github.com/gachisikyeo/gongu-gateway/internal/core/domain"
	"github.com/gachisikyeo/gongu-gateway/internal/core/ports"
)

// Login exchanges email credentials for a token pair and profile.
func (c *Client) Login(ctx context.Context, email, password string) (*domain.LoginResult, error) {
	var res domain.LoginResult
	err := c.postJSON(ctx, "", "/auth/login", "/auth/login", map[string]string{
		"email":    email,
		"password": password,
	}, &res)
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// Signup registers a new email account. The upstream returns no payload; the
// caller logs in afterwards.
func (c *Client) Signup(ctx context.Context, in ports.SignupInput) error {
	return c.postJSON(ctx, "", "/auth/signup", "/auth/signup", map[string]any{
		"email":     in.Email,
		"password":  in.Password,
		"name":      in.Name,
		"nickName":  in.NickName,
		"userType":  in.UserType,
		"lawDongId": in.LawDongID,
	}, nil)
}

// OAuth2Signup completes the interstitial signup step with the short-lived
// token the OAuth2 redirect delivered.
func (c *Client) OAuth2Signup(ctx context.Context, in ports.OAuth2SignupInput) (*domain.LoginResult, error) {
	var res domain.LoginResult
	err := c.postJSON(ctx, "", "/auth/oauth2/signup", "/auth/oauth2/signup", map[string]any{
		"oauth2SignupToken": in.OAuth2SignupToken,
		"nickName":          in.NickName,
		"userType":          in.UserType,
		"lawDongId":         in.LawDongID,
	}, &res)
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// Logout invalidates the server-side token pair. Best-effort: the caller
// clears local session state regardless of the outcome.
func (c *Client) Logout(ctx context.Context, sessionID string) error {
	_, err := c.call(ctx, sessionID, request{
		method:      http.MethodDelete,
		path:        "/auth/logout",
		contentType: contentTypeJSON,
	})
	return err
}

var _ ports.AuthAPI = (*Client)(nil)
