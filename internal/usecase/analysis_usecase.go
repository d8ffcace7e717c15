package usecase

import (
	"context"
	"path/filepath"
	"strings"
	"sync"

	"go-jobsearch-agent/internal/domain"
	"go-jobsearch-agent/pkg/apperror"
	"go-jobsearch-agent/pkg/logger"
)

// maxResumeBytes is the client-side upload ceiling; oversized files are
// rejected before any network traffic.
const maxResumeBytes = 5 * 1024 * 1024

// analysisUsecase runs the single-shot resume analysis workflow:
// idle -> submitting -> succeeded/failed. Completion is terminal for that
// submission; a new Submit clears the previous outcome first.
type analysisUsecase struct {
	mu      sync.Mutex
	gateway domain.AnalysisGateway
	session domain.SessionUsecase
	state   domain.AnalysisState
	result  *domain.AnalysisResult
	failure error
}

func NewAnalysisUsecase(gateway domain.AnalysisGateway, session domain.SessionUsecase) domain.AnalysisUsecase {
	return &analysisUsecase{
		gateway: gateway,
		session: session,
		state:   domain.AnalysisIdle,
	}
}

func (u *analysisUsecase) Submit(ctx context.Context, sub domain.ResumeSubmission) (*domain.AnalysisResult, error) {
	// 1. Validate locally; none of these reach the network
	if sub.JobID <= 0 {
		return nil, apperror.Validation("Select a job to analyze against")
	}
	if sub.File == nil || sub.FileName == "" {
		return nil, apperror.Validation("Select a resume file")
	}
	ext := strings.ToLower(filepath.Ext(sub.FileName))
	if ext != ".pdf" && ext != ".docx" {
		return nil, apperror.Validation("Resume must be a PDF or DOCX file")
	}
	if sub.FileSize > maxResumeBytes {
		return nil, apperror.Validation("Resume must be 5 MB or smaller")
	}

	// 2. Enter submitting; a concurrent submission is rejected, not queued
	u.mu.Lock()
	if u.state == domain.AnalysisSubmitting {
		u.mu.Unlock()
		return nil, apperror.Validation("An analysis is already in progress")
	}
	if u.session.Token() == "" {
		u.mu.Unlock()
		return nil, apperror.AuthRequired("Log in to analyze your resume")
	}
	u.state = domain.AnalysisSubmitting
	u.result = nil
	u.failure = nil
	u.mu.Unlock()

	// 3. Single outstanding request; no timeout of our own, no mid-flight
	// cancellation beyond what the transport enforces
	result, err := u.gateway.Analyze(ctx, sub)

	u.mu.Lock()
	defer u.mu.Unlock()

	if err != nil {
		u.state = domain.AnalysisFailed
		u.failure = err
		logger.Log.Warn("resume analysis failed", "job_id", sub.JobID, "error", err)
		return nil, err
	}

	u.state = domain.AnalysisSucceeded
	u.result = result
	logger.Log.Info("resume analysis complete", "job_id", sub.JobID, "score", result.MatchScore)
	return result, nil
}

func (u *analysisUsecase) State() domain.AnalysisState {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.state
}

func (u *analysisUsecase) Result() *domain.AnalysisResult {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.result
}

func (u *analysisUsecase) Failure() error {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.failure
}

// Reset returns the workflow to idle, discarding any previous outcome. It
// has no effect on a submission in flight.
func (u *analysisUsecase) Reset() {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.state == domain.AnalysisSubmitting {
		return
	}
	u.state = domain.AnalysisIdle
	u.result = nil
	u.failure = nil
}
