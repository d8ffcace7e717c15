package rest

import (
	"context"
	"fmt"
	"net/http"

	"go-jobsearch-agent/internal/domain"
	"go-jobsearch-agent/pkg/apperror"
)

type trackerGateway struct {
	client *Client
}

// NewTrackerGateway binds the tracked-application endpoints. All of them
// require the bearer credential.
func NewTrackerGateway(client *Client) domain.TrackerGateway {
	return &trackerGateway{client: client}
}

type createApplicationRequest struct {
	JobID  int64  `json:"job_id"`
	Status string `json:"status"`
}

func (g *trackerGateway) Create(ctx context.Context, jobID int64) (*domain.TrackedApplication, error) {
	body := jsonBody(createApplicationRequest{JobID: jobID, Status: domain.StatusSaved})
	req, err := g.client.newRequest(ctx, http.MethodPost, "/applications/", nil, body, requestOptions{authed: true})
	if err != nil {
		return nil, err
	}

	var app domain.TrackedApplication
	if err := g.client.send(req, &app); err != nil {
		// The backend reports an existing (user, job) pair as a plain 400;
		// surface it as the distinct duplicate kind so the caller can show
		// "already tracking" rather than a generic failure.
		if apperror.Is(err, apperror.KindValidation) {
			return nil, apperror.Duplicate("Already tracking this job")
		}
		return nil, err
	}
	if app.ID == 0 || app.JobID != jobID {
		return nil, apperror.Protocol("Tracking response does not match the requested job", nil)
	}
	return &app, nil
}

func (g *trackerGateway) List(ctx context.Context) ([]domain.TrackedApplication, error) {
	req, err := g.client.newRequest(ctx, http.MethodGet, "/applications/", nil, nil, requestOptions{authed: true})
	if err != nil {
		return nil, err
	}

	var apps []domain.TrackedApplication
	if err := g.client.send(req, &apps); err != nil {
		return nil, err
	}
	return apps, nil
}

func (g *trackerGateway) Update(ctx context.Context, id int64, patch domain.ApplicationPatch) (*domain.TrackedApplication, error) {
	path := fmt.Sprintf("/applications/%d", id)
	req, err := g.client.newRequest(ctx, http.MethodPatch, path, nil, jsonBody(patch), requestOptions{authed: true})
	if err != nil {
		return nil, err
	}

	var app domain.TrackedApplication
	if err := g.client.send(req, &app); err != nil {
		return nil, err
	}
	if app.ID != id {
		return nil, apperror.Protocol("Update response does not match the requested application", nil)
	}
	return &app, nil
}

func (g *trackerGateway) Delete(ctx context.Context, id int64) error {
	path := fmt.Sprintf("/applications/%d", id)
	req, err := g.client.newRequest(ctx, http.MethodDelete, path, nil, nil, requestOptions{authed: true})
	if err != nil {
		return err
	}
	return g.client.send(req, nil)
}

func (g *trackerGateway) Stats(ctx context.Context) (*domain.StatusAggregate, error) {
	req, err := g.client.newRequest(ctx, http.MethodGet, "/applications/stats", nil, nil, requestOptions{authed: true})
	if err != nil {
		return nil, err
	}

	var stats domain.StatusAggregate
	if err := g.client.send(req, &stats); err != nil {
		return nil, err
	}
	if stats.ByStatus == nil {
		return nil, apperror.Protocol("Stats response missing by_status breakdown", nil)
	}
	return &stats, nil
}
