package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"go-jobsearch-agent/internal/domain"
	"go-jobsearch-agent/internal/usecase"
	"go-jobsearch-agent/pkg/apperror"
)

func strPtr(s string) *string { return &s }

func makeApp(id, jobID int64, status string) *domain.TrackedApplication {
	now := time.Now()
	return &domain.TrackedApplication{
		ID:        id,
		JobID:     jobID,
		Status:    status,
		CreatedAt: now,
		UpdatedAt: now,
		Job:       domain.JobSummary{ID: jobID, Title: "Engineer", Company: "Acme"},
	}
}

func statsFor(apps ...*domain.TrackedApplication) *domain.StatusAggregate {
	agg := &domain.StatusAggregate{Total: len(apps), ByStatus: map[string]int{}}
	for _, app := range apps {
		agg.ByStatus[app.Status]++
	}
	return agg
}

func TestTrackRequiresSession(t *testing.T) {
	gateway := new(MockTrackerGateway)
	uc := usecase.NewTrackerUsecase(gateway, &stubSession{token: ""})

	_, err := uc.Track(context.Background(), 42)
	assert.True(t, apperror.Is(err, apperror.KindAuthRequired))
	gateway.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestTrackAppendsOnConfirmation(t *testing.T) {
	gateway := new(MockTrackerGateway)
	uc := usecase.NewTrackerUsecase(gateway, &stubSession{token: "tok"})

	app := makeApp(1, 42, domain.StatusSaved)
	gateway.On("Create", mock.Anything, int64(42)).Return(app, nil)
	gateway.On("Stats", mock.Anything).Return(statsFor(app), nil)

	created, err := uc.Track(context.Background(), 42)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), created.ID)
	assert.Len(t, uc.List(domain.StatusAll), 1)
}

func TestTrackDuplicateIsDistinctAndLeavesSetUnchanged(t *testing.T) {
	gateway := new(MockTrackerGateway)
	uc := usecase.NewTrackerUsecase(gateway, &stubSession{token: "tok"})

	app := makeApp(1, 42, domain.StatusSaved)
	gateway.On("Create", mock.Anything, int64(42)).Return(app, nil).Once()
	gateway.On("Create", mock.Anything, int64(42)).
		Return(nil, apperror.Duplicate("Already tracking this job")).Once()
	gateway.On("Stats", mock.Anything).Return(statsFor(app), nil)

	_, err := uc.Track(context.Background(), 42)
	assert.NoError(t, err)

	_, err = uc.Track(context.Background(), 42)
	assert.True(t, apperror.Is(err, apperror.KindDuplicate),
		"already-tracking must be distinguishable from a generic failure")

	assert.Len(t, uc.List(domain.StatusAll), 1, "exactly one record for the pair")
}

func TestUpdateStatusAcceptsBackwardTransition(t *testing.T) {
	gateway := new(MockTrackerGateway)
	uc := usecase.NewTrackerUsecase(gateway, &stubSession{token: "tok"})

	app := makeApp(1, 42, domain.StatusInterview)
	gateway.On("Create", mock.Anything, int64(42)).Return(app, nil)
	gateway.On("Stats", mock.Anything).Return(statsFor(app), nil).Once()

	_, err := uc.Track(context.Background(), 42)
	assert.NoError(t, err)

	// interview back to saved: the pipeline is a free lattice, not forward-only
	moved := makeApp(1, 42, domain.StatusSaved)
	gateway.On("Update", mock.Anything, int64(1),
		domain.ApplicationPatch{Status: strPtr(domain.StatusSaved)}).Return(moved, nil)
	gateway.On("Stats", mock.Anything).Return(statsFor(moved), nil)

	assert.NoError(t, uc.UpdateStatus(context.Background(), 1, domain.StatusSaved))

	listed := uc.List(domain.StatusAll)
	assert.Equal(t, domain.StatusSaved, listed[0].Status)

	stats := uc.Stats()
	sum := 0
	for _, n := range stats.ByStatus {
		sum += n
	}
	assert.Equal(t, stats.Total, sum, "by-status counts must sum to the total")
}

func TestUpdateStatusRejectsUnknownStatus(t *testing.T) {
	gateway := new(MockTrackerGateway)
	uc := usecase.NewTrackerUsecase(gateway, &stubSession{token: "tok"})

	err := uc.UpdateStatus(context.Background(), 1, "ghosted")
	assert.True(t, apperror.Is(err, apperror.KindValidation))
	gateway.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}

func TestFailedMutationLeavesLocalSetUnchanged(t *testing.T) {
	gateway := new(MockTrackerGateway)
	uc := usecase.NewTrackerUsecase(gateway, &stubSession{token: "tok"})

	app := makeApp(1, 42, domain.StatusSaved)
	gateway.On("Create", mock.Anything, int64(42)).Return(app, nil)
	gateway.On("Stats", mock.Anything).Return(statsFor(app), nil)
	gateway.On("Update", mock.Anything, int64(1), mock.Anything).
		Return(nil, apperror.Network(assert.AnError))

	_, err := uc.Track(context.Background(), 42)
	assert.NoError(t, err)

	err = uc.UpdateStatus(context.Background(), 1, domain.StatusApplied)
	assert.True(t, apperror.Is(err, apperror.KindNetwork))

	listed := uc.List(domain.StatusAll)
	assert.Equal(t, domain.StatusSaved, listed[0].Status, "no partial optimistic application")
}

func TestUpdateNotesEmptyStringIsDistinctFromAbsent(t *testing.T) {
	gateway := new(MockTrackerGateway)
	uc := usecase.NewTrackerUsecase(gateway, &stubSession{token: "tok"})

	app := makeApp(1, 42, domain.StatusSaved) // Notes nil: never set
	gateway.On("Create", mock.Anything, int64(42)).Return(app, nil)
	gateway.On("Stats", mock.Anything).Return(statsFor(app), nil)

	_, err := uc.Track(context.Background(), 42)
	assert.NoError(t, err)
	assert.Nil(t, uc.List(domain.StatusAll)[0].Notes)

	cleared := makeApp(1, 42, domain.StatusSaved)
	cleared.Notes = strPtr("")
	gateway.On("Update", mock.Anything, int64(1),
		domain.ApplicationPatch{Notes: strPtr("")}).Return(cleared, nil)

	assert.NoError(t, uc.UpdateNotes(context.Background(), 1, ""))

	notes := uc.List(domain.StatusAll)[0].Notes
	assert.NotNil(t, notes, `"" is a valid value, distinct from no notes`)
	assert.Equal(t, "", *notes)
}

func TestRemoveDeletesLocallyAfterConfirmation(t *testing.T) {
	gateway := new(MockTrackerGateway)
	uc := usecase.NewTrackerUsecase(gateway, &stubSession{token: "tok"})

	app := makeApp(1, 42, domain.StatusSaved)
	gateway.On("Create", mock.Anything, int64(42)).Return(app, nil)
	gateway.On("Stats", mock.Anything).Return(statsFor(app), nil).Once()
	gateway.On("Delete", mock.Anything, int64(1)).Return(nil)
	gateway.On("Stats", mock.Anything).Return(&domain.StatusAggregate{Total: 0, ByStatus: map[string]int{}}, nil)

	_, err := uc.Track(context.Background(), 42)
	assert.NoError(t, err)

	assert.NoError(t, uc.Remove(context.Background(), 1))
	assert.Empty(t, uc.List(domain.StatusAll))
	assert.Zero(t, uc.Stats().Total)
}

func TestListFiltersLocallyWithoutNetwork(t *testing.T) {
	gateway := new(MockTrackerGateway)
	uc := usecase.NewTrackerUsecase(gateway, &stubSession{token: "tok"})

	saved := makeApp(1, 42, domain.StatusSaved)
	applied := makeApp(2, 43, domain.StatusApplied)
	gateway.On("List", mock.Anything).
		Return([]domain.TrackedApplication{*saved, *applied}, nil).Once()
	gateway.On("Stats", mock.Anything).Return(statsFor(saved, applied), nil).Once()

	assert.NoError(t, uc.Load(context.Background()))

	assert.Len(t, uc.List(domain.StatusAll), 2)
	assert.Len(t, uc.List(domain.StatusApplied), 1)
	assert.Empty(t, uc.List(domain.StatusOffer))

	// No further gateway traffic for local filtering
	gateway.AssertNumberOfCalls(t, "List", 1)
}

func TestStatsDerivedLocallyWhenRefetchFails(t *testing.T) {
	gateway := new(MockTrackerGateway)
	uc := usecase.NewTrackerUsecase(gateway, &stubSession{token: "tok"})

	app := makeApp(1, 42, domain.StatusSaved)
	gateway.On("Create", mock.Anything, int64(42)).Return(app, nil)
	gateway.On("Stats", mock.Anything).Return(nil, apperror.Network(assert.AnError))

	_, err := uc.Track(context.Background(), 42)
	assert.NoError(t, err)

	stats := uc.Stats()
	assert.Equal(t, 1, stats.Total)
	assert.Equal(t, 1, stats.ByStatus[domain.StatusSaved])
}
