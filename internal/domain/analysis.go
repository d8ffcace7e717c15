package domain

import (
	"context"
	"io"
)

// AnalysisState tracks the single-shot resume analysis workflow.
type AnalysisState int

const (
	AnalysisIdle AnalysisState = iota
	AnalysisSubmitting
	AnalysisSucceeded
	AnalysisFailed
)

func (s AnalysisState) String() string {
	switch s {
	case AnalysisSubmitting:
		return "submitting"
	case AnalysisSucceeded:
		return "succeeded"
	case AnalysisFailed:
		return "failed"
	}
	return "idle"
}

// AnalysisResult is created once per submission and immutable.
type AnalysisResult struct {
	ID              int64    `json:"id"`
	JobID           int64    `json:"job_id"`
	JobTitle        string   `json:"job_title"`
	Company         string   `json:"company"`
	MatchScore      float64  `json:"match_score"` // 0..100
	MissingKeywords []string `json:"missing_keywords"`
	Strengths       []string `json:"strengths"`
	Suggestions     string   `json:"suggestions"`
	CoverLetter     *string  `json:"cover_letter"`
	AnalysisSeconds float64  `json:"analysis_time_seconds"`
}

// ResumeSubmission is the input to one analysis attempt. FileSize must be
// known up front so oversized resumes are rejected before any upload starts.
type ResumeSubmission struct {
	JobID         int64
	FileName      string
	FileSize      int64
	File          io.Reader
	GenerateCover bool
}

type AnalysisGateway interface {
	Analyze(ctx context.Context, sub ResumeSubmission) (*AnalysisResult, error)
}

// AnalysisUsecase runs idle -> submitting -> succeeded/failed. Only one
// submission may be outstanding; a concurrent Submit is rejected, not queued.
type AnalysisUsecase interface {
	Submit(ctx context.Context, sub ResumeSubmission) (*AnalysisResult, error)
	State() AnalysisState
	Result() *AnalysisResult
	Failure() error
	Reset()
}
