package domain

import "context"

// BillingGateway returns opaque redirect URLs from the payment collaborator.
type BillingGateway interface {
	CreateCheckout(ctx context.Context) (string, error)
	CreatePortal(ctx context.Context) (string, error)
}

// BillingUsecase gates paid actions on a freshly fetched profile; a cached
// IsPro flag is never trusted for billing decisions.
type BillingUsecase interface {
	CheckoutURL(ctx context.Context) (string, error)
	PortalURL(ctx context.Context) (string, error)
}
