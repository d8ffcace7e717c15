package usecase

import (
	"context"

	"go-jobsearch-agent/internal/domain"
	"go-jobsearch-agent/pkg/apperror"
)

type billingUsecase struct {
	gateway domain.BillingGateway
	session domain.SessionUsecase
}

func NewBillingUsecase(gateway domain.BillingGateway, session domain.SessionUsecase) domain.BillingUsecase {
	return &billingUsecase{gateway: gateway, session: session}
}

// CheckoutURL gates the upgrade on a freshly fetched profile; a cached IsPro
// flag is never trusted for billing decisions.
func (u *billingUsecase) CheckoutURL(ctx context.Context) (string, error) {
	user, err := u.session.CurrentUser(ctx)
	if err != nil {
		return "", err
	}
	if user == nil {
		return "", apperror.AuthRequired("Log in to upgrade")
	}
	if user.IsPro {
		return "", apperror.Validation("You are already on the Pro plan")
	}
	return u.gateway.CreateCheckout(ctx)
}

func (u *billingUsecase) PortalURL(ctx context.Context) (string, error) {
	user, err := u.session.CurrentUser(ctx)
	if err != nil {
		return "", err
	}
	if user == nil {
		return "", apperror.AuthRequired("Log in to manage billing")
	}
	if !user.IsPro {
		return "", apperror.Validation("The billing portal requires a Pro subscription")
	}
	return u.gateway.CreatePortal(ctx)
}
