package client

import (
	"context"
	"net/http"
)

type RegisterInput struct {
	Username    string `json:"username"`
	Password    string `json:"password"`
	Name        string `json:"name"`
	Surname     string `json:"surname"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phoneNumber,omitempty"`
	Address     string `json:"address,omitempty"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type registerRequest struct {
	RegisterInput
	Role string `json:"rol"`
}

// loginResponse tolerates a password field in the response body so it can be
// stripped before the session is stored.
type loginResponse struct {
	SessionUser
	Password string `json:"password,omitempty"`
}

// Login exchanges credentials for a session. The returned user is sanitized
// and persisted; on invalid credentials the backend's message is surfaced
// unchanged and the session stays anonymous.
func (c *Client) Login(ctx context.Context, username, password string) (*SessionUser, error) {
	var resp loginResponse
	body := loginRequest{Username: username, Password: password}
	if err := c.request(ctx, http.MethodPost, "/auth/login", body, "login", &resp); err != nil {
		return nil, err
	}
	user := resp.SessionUser
	if err := c.store.SetUser(&user); err != nil {
		return nil, err
	}
	c.notifier.Success("¡Sesión iniciada correctamente!")
	return &user, nil
}

// Register creates a new account. The role is always forced to CLIENT,
// whatever the caller supplied.
func (c *Client) Register(ctx context.Context, input RegisterInput) (*SessionUser, error) {
	var resp loginResponse
	body := registerRequest{RegisterInput: input, Role: "CLIENT"}
	if err := c.request(ctx, http.MethodPost, "/auth/register", body, "register", &resp); err != nil {
		return nil, err
	}
	user := resp.SessionUser
	c.notifier.Success("¡Cuenta creada correctamente!")
	return &user, nil
}

// Logout clears the session and its persisted copy.
func (c *Client) Logout() error {
	return c.store.SetUser(nil)
}
