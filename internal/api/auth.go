package api

import (
	"context"
	"errors"
	"net/http"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login exchanges credentials for a bearer token and the user identity.
// Rejected credentials surface as KindAuthentication.
func (c *Client) Login(ctx context.Context, email, password string) (*AuthPayload, error) {
	payload, err := post[AuthPayload](ctx, c, "/auth/login", loginRequest{Email: email, Password: password})
	if err != nil {
		return nil, asAuthFailure(err)
	}
	return &payload, nil
}

// Register creates an account and logs it in within the same round trip.
func (c *Client) Register(ctx context.Context, name, email, password string) (*AuthPayload, error) {
	payload, err := post[AuthPayload](ctx, c, "/auth/register", registerRequest{Name: name, Email: email, Password: password})
	if err != nil {
		return nil, asAuthFailure(err)
	}
	return &payload, nil
}

// asAuthFailure reclassifies client-input rejections on the auth endpoints
// (bad credentials, failed validation) as authentication errors. Network and
// server-side failures pass through untouched.
func asAuthFailure(err error) error {
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		return err
	}
	switch apiErr.Status {
	case http.StatusBadRequest, http.StatusUnauthorized, http.StatusUnprocessableEntity, http.StatusConflict:
		return &Error{Kind: KindAuthentication, Status: apiErr.Status, Message: apiErr.Message}
	}
	return err
}
