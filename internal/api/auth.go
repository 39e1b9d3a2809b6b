package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/thenoetrevino/taskdeck/internal/models"
	"github.com/thenoetrevino/taskdeck/internal/types"
)

// AuthResult is returned by login and sign-up.
type AuthResult struct {
	Token  string        `json:"token"`
	Client models.Client `json:"client"`
}

// Login exchanges credentials for a token and the client profile.
func (c *Client) Login(ctx context.Context, email, password string) (AuthResult, error) {
	const op = "login"
	resp, err := c.do(ctx, request{
		op:         op,
		method:     http.MethodPost,
		path:       "/client/login",
		body:       loginBody{Email: email, Password: password},
		defaultMsg: "Login failed",
	})
	if err != nil {
		return AuthResult{}, err
	}
	var w authWire
	if err := decode(op, resp, &w); err != nil {
		return AuthResult{}, err
	}
	return AuthResult{Token: w.Token, Client: w.Client.model()}, nil
}

// SignUp registers a new client and signs it in.
func (c *Client) SignUp(ctx context.Context, req SignUpRequest) (AuthResult, error) {
	const op = "sign_up"
	resp, err := c.do(ctx, request{
		op:         op,
		method:     http.MethodPatch,
		path:       "/client/signin",
		body:       req,
		defaultMsg: "Sign in failed",
	})
	if err != nil {
		return AuthResult{}, err
	}
	var w authWire
	if err := decode(op, resp, &w); err != nil {
		return AuthResult{}, err
	}
	return AuthResult{Token: w.Token, Client: w.Client.model()}, nil
}

// Logout ends the server-side session.
func (c *Client) Logout(ctx context.Context) error {
	_, err := c.do(ctx, request{
		op:         "logout",
		method:     http.MethodPost,
		path:       "/client/logout",
		defaultMsg: "Logout failed",
	})
	return err
}

// clientFieldEndpoint maps a profile field to its endpoint and query parameter.
func clientFieldEndpoint(field models.ClientField) (path, param string, err error) {
	switch field {
	case models.FieldName:
		return "/client/updateClientName/", "new_name", nil
	case models.FieldEmail:
		return "/client/updateClientEmail/", "new_email", nil
	case models.FieldPhone:
		return "/client/updateClientPhoneNumber/", "new_phone_number", nil
	}
	return "", "", fmt.Errorf("%w: %q", models.ErrInvalidField, field)
}

// UpdateClientField changes a single profile field and returns the stored profile.
func (c *Client) UpdateClientField(ctx context.Context, id types.ClientID, field models.ClientField, value string) (models.Client, error) {
	const op = "update_client_field"
	path, param, err := clientFieldEndpoint(field)
	if err != nil {
		return models.Client{}, err
	}
	resp, err := c.do(ctx, request{
		op:         op,
		method:     http.MethodPatch,
		path:       path + id.String(),
		query:      url.Values{param: {value}},
		defaultMsg: "Failed to update profile",
	})
	if err != nil {
		return models.Client{}, err
	}
	var w clientWire
	if err := decode(op, resp, &w); err != nil {
		return models.Client{}, err
	}
	return w.model(), nil
}

// ChangePassword replaces the client's password after checking the old one.
func (c *Client) ChangePassword(ctx context.Context, id types.ClientID, oldPassword, newPassword string) error {
	_, err := c.do(ctx, request{
		op:         "change_password",
		method:     http.MethodPatch,
		path:       "/client/updateClientPassword/" + id.String(),
		query:      url.Values{"old_password": {oldPassword}, "new_password": {newPassword}},
		defaultMsg: "Failed to change password",
	})
	return err
}

// DeleteAccount removes the client and everything it owns.
func (c *Client) DeleteAccount(ctx context.Context, id types.ClientID) error {
	_, err := c.do(ctx, request{
		op:         "delete_account",
		method:     http.MethodDelete,
		path:       "/client/removeById/" + id.String(),
		defaultMsg: "Failed to delete account",
	})
	return err
}
