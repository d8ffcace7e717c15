package rest

import (
	"context"
	"net/http"

	"go-jobsearch-agent/internal/domain"
	"go-jobsearch-agent/pkg/apperror"
)

type billingGateway struct {
	client *Client
}

// NewBillingGateway binds the payment collaborator endpoints. The returned
// URLs are opaque redirect targets.
func NewBillingGateway(client *Client) domain.BillingGateway {
	return &billingGateway{client: client}
}

type redirectResponse struct {
	URL string `json:"url"`
}

func (g *billingGateway) CreateCheckout(ctx context.Context) (string, error) {
	return g.redirect(ctx, "/stripe/create-checkout")
}

func (g *billingGateway) CreatePortal(ctx context.Context) (string, error) {
	return g.redirect(ctx, "/stripe/create-portal")
}

func (g *billingGateway) redirect(ctx context.Context, path string) (string, error) {
	req, err := g.client.newRequest(ctx, http.MethodPost, path, nil, nil, requestOptions{authed: true})
	if err != nil {
		return "", err
	}

	var out redirectResponse
	if err := g.client.send(req, &out); err != nil {
		return "", err
	}
	if out.URL == "" {
		return "", apperror.Protocol("Payment response missing redirect URL", nil)
	}
	return out.URL, nil
}
