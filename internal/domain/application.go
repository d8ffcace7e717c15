package domain

import (
	"context"
	"time"
)

// Application status constants. The pipeline is a free lattice: any status
// may move to any other, including backward (e.g. interview back to saved).
const (
	StatusSaved     = "saved"
	StatusApplied   = "applied"
	StatusInterview = "interview"
	StatusOffer     = "offer"
	StatusRejected  = "rejected"
)

// StatusAll filters nothing in TrackerUsecase.List.
const StatusAll = "all"

// ValidStatus reports whether s names one of the five pipeline statuses.
func ValidStatus(s string) bool {
	switch s {
	case StatusSaved, StatusApplied, StatusInterview, StatusOffer, StatusRejected:
		return true
	}
	return false
}

// JobSummary is the posting subset joined into tracked-application responses.
type JobSummary struct {
	ID       int64   `json:"id"`
	Title    string  `json:"title"`
	Company  string  `json:"company"`
	Location *string `json:"location"`
	ApplyURL *string `json:"apply_url"`
}

// TrackedApplication is one posting the user tracks through the pipeline.
// At most one exists per (user, job) pair. Notes nil means never set;
// Notes "" is a distinct, valid value.
type TrackedApplication struct {
	ID        int64      `json:"id"`
	JobID     int64      `json:"job_id"`
	Status    string     `json:"status"`
	Notes     *string    `json:"notes"`
	AppliedAt *time.Time `json:"applied_at"` // stamped by the backend when status first becomes "applied"
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	Job       JobSummary `json:"job"`
}

// StatusAggregate is derived, never stored authoritatively on the client.
type StatusAggregate struct {
	Total    int            `json:"total"`
	ByStatus map[string]int `json:"by_status"`
}

// ApplicationPatch carries a partial update; nil fields are left untouched
// by the backend. A non-nil empty Notes overwrites to "".
type ApplicationPatch struct {
	Status *string `json:"status,omitempty"`
	Notes  *string `json:"notes,omitempty"`
}

// TrackerGateway is the backend surface for tracked applications.
type TrackerGateway interface {
	Create(ctx context.Context, jobID int64) (*TrackedApplication, error)
	List(ctx context.Context) ([]TrackedApplication, error)
	Update(ctx context.Context, id int64, patch ApplicationPatch) (*TrackedApplication, error)
	Delete(ctx context.Context, id int64) error
	Stats(ctx context.Context) (*StatusAggregate, error)
}

// TrackerUsecase owns the local tracked set. Mutations are confirmed by the
// backend before the local set changes, and the aggregate is re-derived from
// the authoritative source after every mutation.
type TrackerUsecase interface {
	Load(ctx context.Context) error
	Track(ctx context.Context, jobID int64) (*TrackedApplication, error)
	UpdateStatus(ctx context.Context, appID int64, status string) error
	UpdateNotes(ctx context.Context, appID int64, notes string) error
	Remove(ctx context.Context, appID int64) error
	// List filters the already-fetched set locally; no network call.
	List(filterStatus string) []TrackedApplication
	Stats() StatusAggregate
}

// ExportUsecase renders the confirmed tracked set for download.
type ExportUsecase interface {
	ExportXLSX() ([]byte, error)
}
