package client

import (
	"context"
	"net/http"
)

type authResponse struct {
	User      User   `json:"user"`
	Token     string `json:"token"`
	ExpiresIn int64  `json:"expires_in"`
}

type signupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Signup registers a new account and opens a session for it.
func (c *Client) Signup(ctx context.Context, name, email, password string) (*User, error) {
	var resp authResponse
	err := c.do(ctx, http.MethodPost, "/auth/signup", signupRequest{Name: name, Email: email, Password: password}, &resp)
	if err != nil {
		return nil, err
	}

	c.setIdentity(resp.Token, &resp.User)
	user := resp.User
	return &user, nil
}

// Login authenticates and stores the session token for subsequent calls.
func (c *Client) Login(ctx context.Context, email, password string) (*User, error) {
	var resp authResponse
	err := c.do(ctx, http.MethodPost, "/auth/login", loginRequest{Email: email, Password: password}, &resp)
	if err != nil {
		return nil, err
	}

	c.setIdentity(resp.Token, &resp.User)
	user := resp.User
	return &user, nil
}

// Logout drops the session locally. No server call is made; the token simply
// stops being sent.
func (c *Client) Logout() {
	c.clearIdentity()
}

// CurrentIdentity returns the locally cached user from the last successful
// login, or nil when the session is anonymous.
func (c *Client) CurrentIdentity() *User {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.user == nil {
		return nil
	}
	user := *c.user
	return &user
}

// Me fetches the canonical account for the current session from the server.
// An expired or revoked token surfaces as KindUnauthenticated and the local
// session is dropped.
func (c *Client) Me(ctx context.Context) (*User, error) {
	var user User
	if err := c.do(ctx, http.MethodGet, "/me", nil, &user); err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.user = &user
	c.mu.Unlock()

	copied := user
	return &copied, nil
}
