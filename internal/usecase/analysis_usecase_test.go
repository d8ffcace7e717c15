package usecase_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"go-jobsearch-agent/internal/domain"
	"go-jobsearch-agent/internal/usecase"
	"go-jobsearch-agent/pkg/apperror"
)

func validSubmission() domain.ResumeSubmission {
	return domain.ResumeSubmission{
		JobID:         42,
		FileName:      "resume.pdf",
		FileSize:      128 * 1024,
		File:          strings.NewReader("%PDF-1.4 ..."),
		GenerateCover: true,
	}
}

func TestSubmitRejectsOversizedFileBeforeNetwork(t *testing.T) {
	gateway := new(MockAnalysisGateway)
	uc := usecase.NewAnalysisUsecase(gateway, &stubSession{token: "tok"})

	sub := validSubmission()
	sub.FileSize = 6 * 1024 * 1024 // 6 MiB

	_, err := uc.Submit(context.Background(), sub)
	assert.True(t, apperror.Is(err, apperror.KindValidation))
	assert.Equal(t, domain.AnalysisIdle, uc.State())
	gateway.AssertNotCalled(t, "Analyze", mock.Anything, mock.Anything)
}

func TestSubmitRejectsWrongExtension(t *testing.T) {
	gateway := new(MockAnalysisGateway)
	uc := usecase.NewAnalysisUsecase(gateway, &stubSession{token: "tok"})

	sub := validSubmission()
	sub.FileName = "resume.txt"

	_, err := uc.Submit(context.Background(), sub)
	assert.True(t, apperror.Is(err, apperror.KindValidation))
	gateway.AssertNotCalled(t, "Analyze", mock.Anything, mock.Anything)
}

func TestSubmitAcceptsUppercaseExtension(t *testing.T) {
	gateway := new(MockAnalysisGateway)
	uc := usecase.NewAnalysisUsecase(gateway, &stubSession{token: "tok"})

	sub := validSubmission()
	sub.FileName = "Resume.DOCX"
	gateway.On("Analyze", mock.Anything, mock.Anything).
		Return(&domain.AnalysisResult{ID: 1, JobID: 42, MatchScore: 70}, nil)

	_, err := uc.Submit(context.Background(), sub)
	assert.NoError(t, err)
}

func TestSubmitRequiresSession(t *testing.T) {
	gateway := new(MockAnalysisGateway)
	uc := usecase.NewAnalysisUsecase(gateway, &stubSession{token: ""})

	_, err := uc.Submit(context.Background(), validSubmission())
	assert.True(t, apperror.Is(err, apperror.KindAuthRequired))
	assert.Equal(t, domain.AnalysisIdle, uc.State())
}

func TestSubmitSuccessIsTerminal(t *testing.T) {
	gateway := new(MockAnalysisGateway)
	uc := usecase.NewAnalysisUsecase(gateway, &stubSession{token: "tok"})

	result := &domain.AnalysisResult{
		ID:              9,
		JobID:           42,
		JobTitle:        "Engineer",
		Company:         "Acme",
		MatchScore:      83.5,
		MissingKeywords: []string{"kubernetes"},
		Strengths:       []string{"go", "distributed systems"},
		Suggestions:     "Mention container orchestration experience.",
		AnalysisSeconds: 7.2,
	}
	gateway.On("Analyze", mock.Anything, mock.Anything).Return(result, nil)

	got, err := uc.Submit(context.Background(), validSubmission())
	assert.NoError(t, err)
	assert.Equal(t, result, got)
	assert.Equal(t, domain.AnalysisSucceeded, uc.State())
	assert.Equal(t, result, uc.Result())
	assert.Nil(t, uc.Failure())
}

func TestSubmitFailureRecordsReason(t *testing.T) {
	gateway := new(MockAnalysisGateway)
	uc := usecase.NewAnalysisUsecase(gateway, &stubSession{token: "tok"})

	gateway.On("Analyze", mock.Anything, mock.Anything).
		Return(nil, apperror.Network(assert.AnError))

	_, err := uc.Submit(context.Background(), validSubmission())
	assert.True(t, apperror.Is(err, apperror.KindNetwork))
	assert.Equal(t, domain.AnalysisFailed, uc.State())
	assert.NotNil(t, uc.Failure())
	assert.Nil(t, uc.Result())
}

func TestConcurrentSubmissionRejectedNotQueued(t *testing.T) {
	gateway := &blockingAnalysisGateway{
		started: make(chan struct{}),
		release: make(chan struct{}),
		result:  &domain.AnalysisResult{ID: 1, JobID: 42, MatchScore: 60},
	}
	uc := usecase.NewAnalysisUsecase(gateway, &stubSession{token: "tok"})

	started := gateway.started
	firstDone := make(chan error, 1)
	go func() {
		_, err := uc.Submit(context.Background(), validSubmission())
		firstDone <- err
	}()

	<-started
	assert.Equal(t, domain.AnalysisSubmitting, uc.State())

	_, err := uc.Submit(context.Background(), validSubmission())
	assert.True(t, apperror.Is(err, apperror.KindValidation),
		"a second submission while one is in flight is rejected at the call boundary")

	close(gateway.release)
	assert.NoError(t, <-firstDone)
	assert.Equal(t, domain.AnalysisSucceeded, uc.State())
}

func TestNewSubmissionClearsPreviousOutcome(t *testing.T) {
	gateway := new(MockAnalysisGateway)
	uc := usecase.NewAnalysisUsecase(gateway, &stubSession{token: "tok"})

	gateway.On("Analyze", mock.Anything, mock.Anything).
		Return(nil, apperror.Network(assert.AnError)).Once()
	gateway.On("Analyze", mock.Anything, mock.Anything).
		Return(&domain.AnalysisResult{ID: 2, JobID: 42, MatchScore: 90}, nil).Once()

	_, err := uc.Submit(context.Background(), validSubmission())
	assert.Error(t, err)
	assert.Equal(t, domain.AnalysisFailed, uc.State())

	// A fresh attempt re-enters idle first: the old failure must not linger
	got, err := uc.Submit(context.Background(), validSubmission())
	assert.NoError(t, err)
	assert.Equal(t, int64(2), got.ID)
	assert.Nil(t, uc.Failure())
}

func TestResetReturnsToIdle(t *testing.T) {
	gateway := new(MockAnalysisGateway)
	uc := usecase.NewAnalysisUsecase(gateway, &stubSession{token: "tok"})

	gateway.On("Analyze", mock.Anything, mock.Anything).
		Return(&domain.AnalysisResult{ID: 1, JobID: 42, MatchScore: 60}, nil)

	_, err := uc.Submit(context.Background(), validSubmission())
	assert.NoError(t, err)

	uc.Reset()
	assert.Equal(t, domain.AnalysisIdle, uc.State())
	assert.Nil(t, uc.Result())
}
