package usecase_test

import (
	"context"
	"sync"

	"github.com/stretchr/testify/mock"

	"go-jobsearch-agent/internal/domain"
)

// Mock Gateways

type MockAuthGateway struct {
	mock.Mock
}

func (m *MockAuthGateway) Signup(ctx context.Context, email, password, fullName string) (*domain.UserProfile, error) {
	args := m.Called(ctx, email, password, fullName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UserProfile), args.Error(1)
}

func (m *MockAuthGateway) Login(ctx context.Context, email, password string) (string, error) {
	args := m.Called(ctx, email, password)
	return args.String(0), args.Error(1)
}

func (m *MockAuthGateway) Me(ctx context.Context, token string) (*domain.UserProfile, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UserProfile), args.Error(1)
}

type MockTrackerGateway struct {
	mock.Mock
}

func (m *MockTrackerGateway) Create(ctx context.Context, jobID int64) (*domain.TrackedApplication, error) {
	args := m.Called(ctx, jobID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TrackedApplication), args.Error(1)
}

func (m *MockTrackerGateway) List(ctx context.Context) ([]domain.TrackedApplication, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TrackedApplication), args.Error(1)
}

func (m *MockTrackerGateway) Update(ctx context.Context, id int64, patch domain.ApplicationPatch) (*domain.TrackedApplication, error) {
	args := m.Called(ctx, id, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TrackedApplication), args.Error(1)
}

func (m *MockTrackerGateway) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockTrackerGateway) Stats(ctx context.Context) (*domain.StatusAggregate, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StatusAggregate), args.Error(1)
}

// scriptedCatalogGateway lets a test hand-script each fetch, including
// blocking one response behind a channel to stage overlapping requests.
type scriptedCatalogGateway struct {
	mu      sync.Mutex
	fetches []domain.FilterState
	script  func(call int, filter domain.FilterState) (*domain.CatalogPage, error)
}

func (g *scriptedCatalogGateway) FetchPage(ctx context.Context, filter domain.FilterState) (*domain.CatalogPage, error) {
	g.mu.Lock()
	g.fetches = append(g.fetches, filter)
	call := len(g.fetches)
	script := g.script
	g.mu.Unlock()
	return script(call, filter)
}

func (g *scriptedCatalogGateway) calls() []domain.FilterState {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make([]domain.FilterState, len(g.fetches))
	copy(out, g.fetches)
	return out
}

// blockingAnalysisGateway holds the first submission open until released.
type blockingAnalysisGateway struct {
	started  chan struct{}
	release  chan struct{}
	result   *domain.AnalysisResult
	failWith error
}

func (g *blockingAnalysisGateway) Analyze(ctx context.Context, sub domain.ResumeSubmission) (*domain.AnalysisResult, error) {
	if g.started != nil {
		close(g.started)
		g.started = nil
		<-g.release
	}
	if g.failWith != nil {
		return nil, g.failWith
	}
	return g.result, nil
}

type MockAnalysisGateway struct {
	mock.Mock
}

func (m *MockAnalysisGateway) Analyze(ctx context.Context, sub domain.ResumeSubmission) (*domain.AnalysisResult, error) {
	args := m.Called(ctx, sub)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AnalysisResult), args.Error(1)
}

type MockBillingGateway struct {
	mock.Mock
}

func (m *MockBillingGateway) CreateCheckout(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *MockBillingGateway) CreatePortal(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

// stubSession is a fixed-state session store for gating tests.
type stubSession struct {
	token string
	user  *domain.UserProfile
	err   error
}

func (s *stubSession) Signup(ctx context.Context, email, password, fullName string) (*domain.UserProfile, error) {
	return s.user, s.err
}

func (s *stubSession) Login(ctx context.Context, email, password string) (*domain.Session, error) {
	return &domain.Session{Token: s.token}, s.err
}

func (s *stubSession) Logout() {}

func (s *stubSession) CurrentUser(ctx context.Context) (*domain.UserProfile, error) {
	return s.user, s.err
}

func (s *stubSession) Token() string {
	return s.token
}
