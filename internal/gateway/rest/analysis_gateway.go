package rest

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"

	"go-jobsearch-agent/internal/domain"
	"go-jobsearch-agent/pkg/apperror"
)

type analysisGateway struct {
	client *Client
}

// NewAnalysisGateway binds the AI resume analysis endpoint.
func NewAnalysisGateway(client *Client) domain.AnalysisGateway {
	return &analysisGateway{client: client}
}

func (g *analysisGateway) Analyze(ctx context.Context, sub domain.ResumeSubmission) (*domain.AnalysisResult, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, err := writer.CreateFormFile("file", sub.FileName)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if _, err := io.Copy(part, sub.File); err != nil {
		return nil, apperror.Internal(err)
	}
	if err := writer.WriteField("job_id", strconv.FormatInt(sub.JobID, 10)); err != nil {
		return nil, apperror.Internal(err)
	}
	if err := writer.WriteField("generate_cover", strconv.FormatBool(sub.GenerateCover)); err != nil {
		return nil, apperror.Internal(err)
	}
	if err := writer.Close(); err != nil {
		return nil, apperror.Internal(err)
	}

	req, err := g.client.newRequest(ctx, http.MethodPost, "/ai/analyze-resume", nil, &buf, requestOptions{authed: true})
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	var result domain.AnalysisResult
	if err := g.client.send(req, &result); err != nil {
		return nil, err
	}
	if result.MatchScore < 0 || result.MatchScore > 100 {
		return nil, apperror.Protocol("Analysis score outside the 0-100 range", nil)
	}
	return &result, nil
}
