package api

import (
	"context"
	"encoding/json"
	"net/url"
	"strings"

	"github.com/suPer8Hu/gopherchat/internal/common"
	"github.com/suPer8Hu/gopherchat/internal/logging"
)

// Register returns the server's result as-is; data is not interpreted.
func (c *Client) Register(ctx context.Context, in RegisterInput) (Result[json.RawMessage], error) {
	resp, err := c.post(ctx, "register", "/api/user/reg", in)
	if err != nil {
		return Result[json.RawMessage]{}, err
	}
	return decode[json.RawMessage](ctx, resp)
}

// Login saves the token from the response Authorization header, and only
// when the envelope code is 0. The result is returned either way.
func (c *Client) Login(ctx context.Context, cred Credentials) (Result[*User], error) {
	resp, err := c.post(ctx, "login", "/api/user/login", cred)
	if err != nil {
		return Result[*User]{}, err
	}
	r, err := decode[*User](ctx, resp)
	if err != nil || !r.OK {
		return r, err
	}

	tok := bearerToken(resp.Header.Get("Authorization"))
	if tok == "" {
		return r, &common.AuthError{Op: "login", Reason: "no token in response"}
	}
	if c.Session != nil {
		if err := c.Session.Update(ctx, tok); err != nil {
			return r, err
		}
	}
	log := logging.Ctx(ctx)
	log.Info().Str(logging.FieldLoginID, cred.LoginID).Msg("logged in")
	return r, nil
}

// Exists reports whether loginID is already registered (data is a bool).
func (c *Client) Exists(ctx context.Context, loginID string) (Result[bool], error) {
	q := url.Values{}
	q.Set("loginId", loginID)
	resp, err := c.get(ctx, "exists", "/api/user/exists?"+q.Encode())
	if err != nil {
		return Result[bool]{}, err
	}
	return decode[bool](ctx, resp)
}

// Profile returns the logged-in user; Data is nil when the server says
// there is none.
func (c *Client) Profile(ctx context.Context) (Result[*User], error) {
	resp, err := c.get(ctx, "profile", "/api/user/profile")
	if err != nil {
		return Result[*User]{}, err
	}
	return decode[*User](ctx, resp)
}

// Logout forgets the token. No request is sent.
func (c *Client) Logout(ctx context.Context) error {
	if c.Session == nil {
		return nil
	}
	return c.Session.Clear(ctx)
}

func bearerToken(h string) string {
	h = strings.TrimSpace(h)
	if len(h) > 7 && strings.EqualFold(h[:7], "bearer ") {
		h = strings.TrimSpace(h[7:])
	}
	return h
}
