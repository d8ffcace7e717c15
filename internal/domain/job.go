package domain

import (
	"context"
	"errors"
	"time"
)

// Common domain errors
var ErrNotFound = errors.New("resource not found")

// JobPosting is immutable from the client's perspective; identity is ID.
type JobPosting struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title"`
	Company     string     `json:"company"`
	Location    *string    `json:"location,omitempty"`
	RemoteFlag  *bool      `json:"remote_flag,omitempty"`
	PostedAt    *time.Time `json:"posted_at,omitempty"`
	ApplyURL    *string    `json:"apply_url,omitempty"`
	Description *string    `json:"description_text,omitempty"`
}

// CatalogPage is one page of postings. Next is absent iff this is the last
// page; Total is stable within a query session but may drift between
// independent fetches (eventual consistency, not a bug).
type CatalogPage struct {
	Total int          `json:"total"`
	Count int          `json:"count"`
	Next  *int         `json:"next"`
	Items []JobPosting `json:"items"`
}

// RemoteMode is the tri-state remote filter.
type RemoteMode string

const (
	RemoteAny  RemoteMode = "any"
	RemoteOnly RemoteMode = "remote"
	OnsiteOnly RemoteMode = "onsite"
)

// FilterState is the full catalog query. Mutating any field other than
// Cursor resets Cursor to the start; a stale pagination sequence must never
// silently continue across a filter change.
type FilterState struct {
	Query      string
	Skill      string
	Location   string
	Remote     RemoteMode
	MaxAgeDays int
	PageSize   int
	Cursor     int
}

// CatalogGateway fetches one page from the backend for a filter state.
type CatalogGateway interface {
	FetchPage(ctx context.Context, filter FilterState) (*CatalogPage, error)
}

// CatalogUsecase owns cursor advancement and filter state. Responses are
// applied in request-issuance order: a response to a superseded request is
// discarded on arrival (last-request-wins).
type CatalogUsecase interface {
	SetFilters(ctx context.Context, query, skill, location string, remote RemoteMode) (*CatalogPage, error)
	SetPageSize(ctx context.Context, size int) (*CatalogPage, error)
	NextPage(ctx context.Context) (*CatalogPage, error)
	PrevPage(ctx context.Context) (*CatalogPage, error)
	Refresh(ctx context.Context) (*CatalogPage, error)
	Page() *CatalogPage
	Filter() FilterState
}
