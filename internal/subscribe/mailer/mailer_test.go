package mailer

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"praxis/pkg/platform/sentinel"
)

func TestHTTPMailerAddToList(t *testing.T) {
	var gotPath, gotAuth string
	var gotBody map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.WriteHeader(http.StatusCreated)
	}))
	t.Cleanup(srv.Close)

	m := NewHTTP(srv.URL, "key-123")
	require.NoError(t, m.AddToList(context.Background(), "a@b.com", "os-waitlist", "os-homepage"))

	assert.Equal(t, "/v1/lists/os-waitlist/subscribers", gotPath)
	assert.Equal(t, "Bearer key-123", gotAuth)
	assert.Equal(t, "a@b.com", gotBody["email"])
	assert.Equal(t, "os-homepage", gotBody["source"])
}

func TestHTTPMailerAlreadySubscribedIsSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusConflict)
	}))
	t.Cleanup(srv.Close)

	m := NewHTTP(srv.URL, "key-123")
	assert.NoError(t, m.AddToList(context.Background(), "a@b.com", "signal", "signal-page"))
}

func TestHTTPMailerProviderErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	t.Cleanup(srv.Close)

	m := NewHTTP(srv.URL, "key-123")
	assert.Error(t, m.AddToList(context.Background(), "a@b.com", "signal", "signal-page"))
}

func TestHTTPMailerProviderDown(t *testing.T) {
	srv := httptest.NewServer(nil)
	srv.Close() // connection refused

	m := NewHTTP(srv.URL, "key-123")
	err := m.AddToList(context.Background(), "a@b.com", "signal", "signal-page")
	require.ErrorIs(t, err, sentinel.ErrUnavailable)
}

func TestLogOnlyNeverFails(t *testing.T) {
	m := NewLogOnly(slog.New(slog.NewTextHandler(io.Discard, nil)))
	assert.NoError(t, m.AddToList(context.Background(), "a@b.com", "signal", "signal-page"))
}
