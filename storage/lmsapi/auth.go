package lmsapi

import (
	"context"
	"net/http"

	"github.com/trezcool/lideo/core/identity"
)

type AuthClient struct {
	c *Client
}

var _ identity.AuthService = (*AuthClient)(nil)

func NewAuthClient(c *Client) *AuthClient {
	return &AuthClient{c: c}
}

func (a *AuthClient) Authenticate(ctx context.Context, email, secret string) (identity.Identity, error) {
	payload := struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}{email, secret}

	var id identity.Identity
	err := a.c.do(ctx, http.MethodPost, "/api/auth/login", payload, &id)
	return id, err
}

func (a *AuthClient) SuperAdminLogin(ctx context.Context, submitted, expected string) (identity.Identity, error) {
	payload := struct {
		SubmittedCode string `json:"submittedCode"`
		ExpectedCode  string `json:"expectedCode"`
	}{submitted, expected}

	var id identity.Identity
	err := a.c.do(ctx, http.MethodPost, "/api/auth/superadmin-login", payload, &id)
	return id, err
}
