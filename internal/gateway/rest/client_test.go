package rest_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"go-jobsearch-agent/internal/gateway/rest"
	"go-jobsearch-agent/pkg/apperror"
)

// staticTokens serves a fixed bearer credential; "" means anonymous.
type staticTokens struct {
	token string
}

func (s staticTokens) Load() (string, error) { return s.token, nil }

func TestTransportFailureMapsToNetworkKind(t *testing.T) {
	// Nothing listens here; the dial itself fails.
	client := rest.NewClient("http://127.0.0.1:1", staticTokens{token: "tok"})
	gateway := rest.NewTrackerGateway(client)

	_, err := gateway.List(context.Background())
	assert.True(t, apperror.Is(err, apperror.KindNetwork))
}

func TestAuthedRequestWithoutTokenFailsBeforeNetwork(t *testing.T) {
	hit := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hit = true
	}))
	defer srv.Close()

	client := rest.NewClient(srv.URL, staticTokens{})
	gateway := rest.NewTrackerGateway(client)

	_, err := gateway.List(context.Background())
	assert.True(t, apperror.Is(err, apperror.KindAuthRequired))
	assert.False(t, hit, "no request may leave the process without a credential")
}

func TestUnauthorizedResponseMapsToAuthFailed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"detail": "Could not validate credentials"}`))
	}))
	defer srv.Close()

	client := rest.NewClient(srv.URL, staticTokens{token: "expired"})
	gateway := rest.NewTrackerGateway(client)

	_, err := gateway.List(context.Background())
	assert.True(t, apperror.Is(err, apperror.KindAuthFailed))
	assert.Contains(t, err.Error(), "Could not validate credentials")
}

func TestMalformedSuccessBodyMapsToProtocolKind(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html>not json</html>`))
	}))
	defer srv.Close()

	client := rest.NewClient(srv.URL, staticTokens{token: "tok"})
	gateway := rest.NewTrackerGateway(client)

	_, err := gateway.Stats(context.Background())
	assert.True(t, apperror.Is(err, apperror.KindProtocol))
}

func TestBearerHeaderInjectedOnAuthedRequests(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	client := rest.NewClient(srv.URL, staticTokens{token: "tok-123"})
	gateway := rest.NewTrackerGateway(client)

	apps, err := gateway.List(context.Background())
	assert.NoError(t, err)
	assert.Empty(t, apps)
	assert.Equal(t, "Bearer tok-123", gotAuth)
}
