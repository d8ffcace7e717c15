package usecase

import (
	"context"
	"sync"

	"go-jobsearch-agent/internal/domain"
	"go-jobsearch-agent/pkg/apperror"
	"go-jobsearch-agent/pkg/logger"
)

// trackerUsecase owns the local tracked-application set and its derived
// aggregate. Every mutation is confirmed by the backend before the local set
// changes, so a failed mutation leaves the set exactly as it was. Mutations
// are serialized behind the mutex: a second call issued while one is in
// flight blocks until the first resolves.
type trackerUsecase struct {
	mu      sync.Mutex
	gateway domain.TrackerGateway
	session domain.SessionUsecase
	apps    []domain.TrackedApplication
	stats   domain.StatusAggregate
}

func NewTrackerUsecase(gateway domain.TrackerGateway, session domain.SessionUsecase) domain.TrackerUsecase {
	return &trackerUsecase{
		gateway: gateway,
		session: session,
		stats:   domain.StatusAggregate{ByStatus: map[string]int{}},
	}
}

func (u *trackerUsecase) requireSession() error {
	if u.session.Token() == "" {
		return apperror.AuthRequired("Log in to track applications")
	}
	return nil
}

// Load replaces the local set and aggregate with the backend's view.
func (u *trackerUsecase) Load(ctx context.Context) error {
	u.mu.Lock()
	defer u.mu.Unlock()

	if err := u.requireSession(); err != nil {
		return err
	}

	apps, err := u.gateway.List(ctx)
	if err != nil {
		return err
	}
	u.apps = apps
	u.refreshStatsLocked(ctx)
	return nil
}

func (u *trackerUsecase) Track(ctx context.Context, jobID int64) (*domain.TrackedApplication, error) {
	u.mu.Lock()
	defer u.mu.Unlock()

	if err := u.requireSession(); err != nil {
		return nil, err
	}
	if jobID <= 0 {
		return nil, apperror.Validation("A job must be selected to track")
	}

	app, err := u.gateway.Create(ctx, jobID)
	if err != nil {
		return nil, err
	}

	u.apps = append(u.apps, *app)
	u.refreshStatsLocked(ctx)
	return app, nil
}

// UpdateStatus moves an application to any of the five statuses; the
// pipeline is a free lattice, so backward moves (interview back to saved) are
// accepted.
func (u *trackerUsecase) UpdateStatus(ctx context.Context, appID int64, status string) error {
	if !domain.ValidStatus(status) {
		return apperror.Validation("Status must be one of: saved, applied, interview, offer, rejected")
	}
	return u.patch(ctx, appID, domain.ApplicationPatch{Status: &status})
}

// UpdateNotes overwrites the notes wholesale. An empty string is a valid
// value, distinct from notes never having been set.
func (u *trackerUsecase) UpdateNotes(ctx context.Context, appID int64, notes string) error {
	return u.patch(ctx, appID, domain.ApplicationPatch{Notes: &notes})
}

func (u *trackerUsecase) patch(ctx context.Context, appID int64, patch domain.ApplicationPatch) error {
	u.mu.Lock()
	defer u.mu.Unlock()

	if err := u.requireSession(); err != nil {
		return err
	}

	idx := u.indexLocked(appID)
	if idx < 0 {
		return apperror.NotFound("Application not found")
	}

	updated, err := u.gateway.Update(ctx, appID, patch)
	if err != nil {
		return err
	}

	u.apps[idx] = *updated
	u.refreshStatsLocked(ctx)
	return nil
}

// Remove deletes a tracked application. Confirmation is the caller's
// concern; from here the removal is irreversible.
func (u *trackerUsecase) Remove(ctx context.Context, appID int64) error {
	u.mu.Lock()
	defer u.mu.Unlock()

	if err := u.requireSession(); err != nil {
		return err
	}

	idx := u.indexLocked(appID)
	if idx < 0 {
		return apperror.NotFound("Application not found")
	}

	if err := u.gateway.Delete(ctx, appID); err != nil {
		return err
	}

	u.apps = append(u.apps[:idx], u.apps[idx+1:]...)
	u.refreshStatsLocked(ctx)
	return nil
}

// List filters the already-fetched set locally and never hits the network.
func (u *trackerUsecase) List(filterStatus string) []domain.TrackedApplication {
	u.mu.Lock()
	defer u.mu.Unlock()

	out := make([]domain.TrackedApplication, 0, len(u.apps))
	for _, app := range u.apps {
		if filterStatus == "" || filterStatus == domain.StatusAll || app.Status == filterStatus {
			out = append(out, app)
		}
	}
	return out
}

func (u *trackerUsecase) Stats() domain.StatusAggregate {
	u.mu.Lock()
	defer u.mu.Unlock()

	byStatus := make(map[string]int, len(u.stats.ByStatus))
	for k, v := range u.stats.ByStatus {
		byStatus[k] = v
	}
	return domain.StatusAggregate{Total: u.stats.Total, ByStatus: byStatus}
}

func (u *trackerUsecase) indexLocked(appID int64) int {
	for i, app := range u.apps {
		if app.ID == appID {
			return i
		}
	}
	return -1
}

// refreshStatsLocked re-derives the aggregate after a mutation. The
// authoritative stats endpoint is preferred; a locally incremented counter is
// never used, since a partially failed upstream mutation would make it
// drift. If the follow-up fetch itself fails, the aggregate is folded from
// the confirmed local set rather than left stale.
func (u *trackerUsecase) refreshStatsLocked(ctx context.Context) {
	stats, err := u.gateway.Stats(ctx)
	if err != nil {
		logger.Log.Warn("stats re-fetch failed, deriving locally", "error", err)
		u.stats = u.deriveStatsLocked()
		return
	}
	u.stats = *stats
}

func (u *trackerUsecase) deriveStatsLocked() domain.StatusAggregate {
	agg := domain.StatusAggregate{
		Total:    len(u.apps),
		ByStatus: map[string]int{},
	}
	for _, app := range u.apps {
		agg.ByStatus[app.Status]++
	}
	return agg
}
