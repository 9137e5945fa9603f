package client

import (
	"context"
	"time"
)

// SessionUser is the staff identity returned by login.
type SessionUser struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

// Session is an explicit, expiring login session. There is no ambient
// authentication state: a caller holds a Session and asks it whether it is
// still valid.
type Session struct {
	Token     string
	User      SessionUser
	ExpiresAt time.Time
}

// IsAuthenticated reports whether the session holds an unexpired token.
func (s *Session) IsAuthenticated() bool {
	return s != nil && s.Token != "" && time.Now().Before(s.ExpiresAt)
}

// sessionTTL mirrors the server's token lifetime.
const sessionTTL = 24 * time.Hour

// Login authenticates a staff account and installs the returned token on
// the client for subsequent calls.
func (c *Client) Login(ctx context.Context, username, password string) (*Session, error) {
	var resp struct {
		Token string      `json:"token"`
		User  SessionUser `json:"user"`
	}
	err := c.post(ctx, "/auth/login", map[string]string{
		"username": username,
		"password": password,
	}, &resp)
	if err != nil {
		return nil, err
	}

	c.SetToken(resp.Token)
	return &Session{
		Token:     resp.Token,
		User:      resp.User,
		ExpiresAt: time.Now().Add(sessionTTL),
	}, nil
}

// ChangePassword rotates a staff credential.
func (c *Client) ChangePassword(ctx context.Context, username, currentPassword, newPassword string) error {
	return c.post(ctx, "/auth/change-password", map[string]string{
		"username":        username,
		"currentPassword": currentPassword,
		"newPassword":     newPassword,
	}, nil)
}
