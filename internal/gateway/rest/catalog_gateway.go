package rest

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"go-jobsearch-agent/internal/domain"
	"go-jobsearch-agent/pkg/apperror"
)

type catalogGateway struct {
	client *Client
}

// NewCatalogGateway binds the paginated job catalog endpoint.
func NewCatalogGateway(client *Client) domain.CatalogGateway {
	return &catalogGateway{client: client}
}

// rawCatalogPage decodes with pointer counters so an absent field is
// distinguishable from zero. The gateway must not trust the backend shape
// blindly: an unchecked mismatch silently corrupts pagination state
// downstream.
type rawCatalogPage struct {
	Total *int                `json:"total"`
	Count *int                `json:"count"`
	Next  *int                `json:"next"`
	Items []domain.JobPosting `json:"items"`
}

func (g *catalogGateway) FetchPage(ctx context.Context, filter domain.FilterState) (*domain.CatalogPage, error) {
	query := url.Values{}
	query.Set("limit", strconv.Itoa(filter.PageSize))
	query.Set("offset", strconv.Itoa(filter.Cursor))
	if filter.MaxAgeDays > 0 {
		query.Set("days", strconv.Itoa(filter.MaxAgeDays))
	}
	if filter.Query != "" {
		query.Set("q", filter.Query)
	}
	if filter.Skill != "" {
		query.Set("skill", filter.Skill)
	}
	if filter.Location != "" {
		query.Set("location", filter.Location)
	}
	switch filter.Remote {
	case domain.RemoteOnly:
		query.Set("remote", "true")
	case domain.OnsiteOnly:
		query.Set("remote", "false")
	}

	req, err := g.client.newRequest(ctx, http.MethodGet, "/jobs/page", query, nil, requestOptions{})
	if err != nil {
		return nil, err
	}

	var raw rawCatalogPage
	if err := g.client.send(req, &raw); err != nil {
		return nil, err
	}

	if raw.Total == nil || raw.Count == nil || raw.Items == nil {
		return nil, apperror.Protocol("Catalog page missing total, count or items", nil)
	}
	if *raw.Count != len(raw.Items) {
		return nil, apperror.Protocol("Catalog page count does not match item list", nil)
	}

	return &domain.CatalogPage{
		Total: *raw.Total,
		Count: *raw.Count,
		Next:  raw.Next,
		Items: raw.Items,
	}, nil
}
