package usecase

import (
	"context"
	"sync"

	"go-jobsearch-agent/internal/domain"
	"go-jobsearch-agent/pkg/apperror"
	"go-jobsearch-agent/pkg/logger"
)

// catalogUsecase composes server pagination with local filter state. It is
// stateless across sessions but owns two invariants while alive:
//   - any filter-field change (except next/prev) resets the cursor and
//     issues exactly one fetch
//   - responses are applied in request-issuance order; a response to a
//     superseded request is discarded on arrival (last-request-wins)
type catalogUsecase struct {
	mu      sync.Mutex
	gateway domain.CatalogGateway
	filter  domain.FilterState
	page    *domain.CatalogPage
	issued  uint64 // sequence of the most recently issued request
	applied uint64 // sequence of the response currently displayed
}

func NewCatalogUsecase(gateway domain.CatalogGateway, pageSize, maxAgeDays int) domain.CatalogUsecase {
	if pageSize <= 0 {
		pageSize = 25
	}
	if pageSize > 100 {
		pageSize = 100
	}
	return &catalogUsecase{
		gateway: gateway,
		filter: domain.FilterState{
			Remote:     domain.RemoteAny,
			MaxAgeDays: maxAgeDays,
			PageSize:   pageSize,
		},
	}
}

func (u *catalogUsecase) SetFilters(ctx context.Context, query, skill, location string, remote domain.RemoteMode) (*domain.CatalogPage, error) {
	if remote == "" {
		remote = domain.RemoteAny
	}
	switch remote {
	case domain.RemoteAny, domain.RemoteOnly, domain.OnsiteOnly:
	default:
		return nil, apperror.Validation("Remote filter must be any, remote or onsite")
	}

	u.mu.Lock()
	changed := query != u.filter.Query ||
		skill != u.filter.Skill ||
		location != u.filter.Location ||
		remote != u.filter.Remote
	if !changed {
		page := u.page
		u.mu.Unlock()
		return page, nil
	}

	u.filter.Query = query
	u.filter.Skill = skill
	u.filter.Location = location
	u.filter.Remote = remote
	u.filter.Cursor = 0 // a stale pagination sequence must never survive a filter change
	return u.fetchLocked(ctx)
}

func (u *catalogUsecase) SetPageSize(ctx context.Context, size int) (*domain.CatalogPage, error) {
	if size <= 0 || size > 100 {
		return nil, apperror.Validation("Page size must be between 1 and 100")
	}

	u.mu.Lock()
	if size == u.filter.PageSize {
		page := u.page
		u.mu.Unlock()
		return page, nil
	}

	u.filter.PageSize = size
	u.filter.Cursor = 0
	return u.fetchLocked(ctx)
}

// NextPage advances the cursor to the backend-supplied continuation. An
// absent Next is the sole termination signal; the call is then a no-op.
func (u *catalogUsecase) NextPage(ctx context.Context) (*domain.CatalogPage, error) {
	u.mu.Lock()
	if u.page == nil || u.page.Next == nil {
		page := u.page
		u.mu.Unlock()
		return page, nil
	}

	u.filter.Cursor = *u.page.Next
	return u.fetchLocked(ctx)
}

// PrevPage retreats one page, clamping to offset 0. At the first page it is
// a no-op and issues no fetch.
func (u *catalogUsecase) PrevPage(ctx context.Context) (*domain.CatalogPage, error) {
	u.mu.Lock()
	cursor := u.filter.Cursor - u.filter.PageSize
	if cursor < 0 {
		cursor = 0
	}
	if cursor == u.filter.Cursor {
		page := u.page
		u.mu.Unlock()
		return page, nil
	}

	u.filter.Cursor = cursor
	return u.fetchLocked(ctx)
}

func (u *catalogUsecase) Refresh(ctx context.Context) (*domain.CatalogPage, error) {
	u.mu.Lock()
	return u.fetchLocked(ctx)
}

func (u *catalogUsecase) Page() *domain.CatalogPage {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.page
}

func (u *catalogUsecase) Filter() domain.FilterState {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.filter
}

// fetchLocked issues one fetch for the current filter state. The caller must
// hold the mutex; it is released for the network round-trip and re-acquired
// to apply the response. A response whose sequence is not newer than the one
// already applied is discarded, and the page on display is returned instead.
func (u *catalogUsecase) fetchLocked(ctx context.Context) (*domain.CatalogPage, error) {
	u.issued++
	seq := u.issued
	filter := u.filter
	u.mu.Unlock()

	page, err := u.gateway.FetchPage(ctx, filter)

	u.mu.Lock()
	defer u.mu.Unlock()

	if seq <= u.applied {
		logger.Log.Info("discarding superseded catalog response", "seq", seq, "applied", u.applied)
		return u.page, nil
	}
	u.applied = seq

	if err != nil {
		// The slot is consumed even on failure so an older in-flight
		// response cannot later overwrite newer state.
		return nil, err
	}

	u.page = page
	return page, nil
}
