package rest

import (
	"context"
	"net/http"

	"go-jobsearch-agent/internal/domain"
	"go-jobsearch-agent/pkg/apperror"
)

type authGateway struct {
	client *Client
}

// NewAuthGateway binds the backend auth endpoints.
func NewAuthGateway(client *Client) domain.AuthGateway {
	return &authGateway{client: client}
}

type signupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
}

func (g *authGateway) Signup(ctx context.Context, email, password, fullName string) (*domain.UserProfile, error) {
	body := jsonBody(signupRequest{Email: email, Password: password, FullName: fullName})
	req, err := g.client.newRequest(ctx, http.MethodPost, "/auth/signup", nil, body, requestOptions{})
	if err != nil {
		return nil, err
	}

	var user domain.UserProfile
	if err := g.client.send(req, &user); err != nil {
		return nil, err
	}
	if user.ID == 0 || user.Email == "" {
		return nil, apperror.Protocol("Signup response missing profile fields", nil)
	}
	return &user, nil
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	AccessToken string `json:"access_token"`
}

func (g *authGateway) Login(ctx context.Context, email, password string) (string, error) {
	body := jsonBody(loginRequest{Email: email, Password: password})
	req, err := g.client.newRequest(ctx, http.MethodPost, "/auth/login", nil, body, requestOptions{})
	if err != nil {
		return "", err
	}

	var out loginResponse
	if err := g.client.send(req, &out); err != nil {
		// Never disambiguate wrong-password from unknown-account; that would
		// leak account existence.
		if !apperror.Is(err, apperror.KindNetwork) && !apperror.Is(err, apperror.KindProtocol) {
			return "", apperror.AuthFailed("Invalid email or password")
		}
		return "", err
	}
	if out.AccessToken == "" {
		return "", apperror.Protocol("Login response missing access token", nil)
	}
	return out.AccessToken, nil
}

func (g *authGateway) Me(ctx context.Context, token string) (*domain.UserProfile, error) {
	req, err := g.client.newRequest(ctx, http.MethodGet, "/auth/me", nil, nil, requestOptions{noCache: true})
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)

	var user domain.UserProfile
	if err := g.client.send(req, &user); err != nil {
		return nil, err
	}
	if user.ID == 0 || user.Email == "" {
		return nil, apperror.Protocol("Profile response missing required fields", nil)
	}
	return &user, nil
}
