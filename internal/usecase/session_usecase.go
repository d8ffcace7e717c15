package usecase

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"

	"go-jobsearch-agent/internal/domain"
	"go-jobsearch-agent/internal/eventbus"
	"go-jobsearch-agent/pkg/apperror"
	"go-jobsearch-agent/pkg/logger"
)

type sessionUsecase struct {
	gateway  domain.AuthGateway
	creds    domain.CredentialStore
	bus      *eventbus.Bus
	validate *validator.Validate
}

// NewSessionUsecase creates the session store. Session changes are announced
// on the injected event bus; nothing else knows who is listening.
func NewSessionUsecase(gateway domain.AuthGateway, creds domain.CredentialStore, bus *eventbus.Bus, validate *validator.Validate) domain.SessionUsecase {
	return &sessionUsecase{
		gateway:  gateway,
		creds:    creds,
		bus:      bus,
		validate: validate,
	}
}

type signupInput struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=6"`
	FullName string `validate:"max=120"`
}

func (u *sessionUsecase) Signup(ctx context.Context, email, password, fullName string) (*domain.UserProfile, error) {
	// 1. Validate locally before any network call
	input := signupInput{Email: email, Password: password, FullName: fullName}
	if err := u.validate.Struct(input); err != nil {
		return nil, apperror.Validation("Signup requires a valid email and a password of at least 6 characters")
	}

	// 2. Register the account
	user, err := u.gateway.Signup(ctx, email, password, fullName)
	if err != nil {
		return nil, err
	}

	// 3. Registration does not establish a session; log in with the same
	// credentials immediately
	if _, err := u.Login(ctx, email, password); err != nil {
		return nil, err
	}

	return user, nil
}

func (u *sessionUsecase) Login(ctx context.Context, email, password string) (*domain.Session, error) {
	token, err := u.gateway.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}

	if err := u.creds.Save(token); err != nil {
		return nil, apperror.Internal(err)
	}

	logger.Log.Info("session established", "email", email)
	u.bus.Publish(eventbus.TopicLogin)

	// The profile is resolved lazily by the next CurrentUser call; a present
	// token without a user is a valid session state.
	return &domain.Session{Token: token}, nil
}

// Logout clears the durable credential and announces the change. It needs no
// network round-trip, cannot fail, and is idempotent without a session.
func (u *sessionUsecase) Logout() {
	_ = u.creds.Clear()
	logger.Log.Info("session cleared")
	u.bus.Publish(eventbus.TopicLogout)
}

func (u *sessionUsecase) CurrentUser(ctx context.Context) (*domain.UserProfile, error) {
	token, err := u.creds.Load()
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if token == "" {
		return nil, nil
	}

	// An expired token cannot resolve to a profile; treat it as anonymous
	// without bothering the backend.
	if tokenExpired(token) {
		_ = u.creds.Clear()
		return nil, nil
	}

	user, err := u.gateway.Me(ctx, token)
	if err != nil {
		// A rejected credential is normalized to "no session": clear the
		// stale token and report anonymous instead of propagating.
		if apperror.Is(err, apperror.KindAuthFailed) {
			_ = u.creds.Clear()
			return nil, nil
		}
		return nil, err
	}

	return user, nil
}

func (u *sessionUsecase) Token() string {
	token, err := u.creds.Load()
	if err != nil {
		return ""
	}
	return token
}

// tokenExpired inspects the token's exp claim without verifying the
// signature; verification is the backend's job. Tokens that do not parse as
// JWTs or carry no expiry are passed through to the backend to judge.
func tokenExpired(token string) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(time.Now())
}
