package handler

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"praxis/internal/subscribe/mailer"
	subscribeservice "praxis/internal/subscribe/service"
	"praxis/internal/subscribe/store"
)

func newTestRouter(t *testing.T) (chi.Router, *subscribeservice.Service, store.Store) {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	submissions := store.NewInMemory()
	svc, err := subscribeservice.New(submissions, mailer.NewLogOnly(logger), subscribeservice.ListRouting{
		SignalListID: "list-signal",
		OSListID:     "list-os",
	}, logger, nil)
	require.NoError(t, err)

	r := chi.NewRouter()
	New(svc, logger).Register(r)
	return r, svc, submissions
}

func post(r chi.Router, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/subscribe", strings.NewReader(body))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHandleSubscribe(t *testing.T) {
	r, svc, submissions := newTestRouter(t)

	w := post(r, `{"email":"ana@example.com","source":"signal-homepage"}`)
	svc.Drain()

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true}`, w.Body.String())

	recent, err := submissions.Recent(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, recent, 1)
	assert.Equal(t, "ana@example.com", recent[0].Email)
	assert.Equal(t, "list-signal", recent[0].ListID)
}

func TestHandleSubscribeInvalidEmail(t *testing.T) {
	r, _, submissions := newTestRouter(t)

	for _, body := range []string{
		`{"email":"not-an-email","source":"signal-page"}`,
		`{"email":"   ","source":"signal-page"}`,
		`{"email":""}`,
		`{not json`,
	} {
		w := post(r, body)
		assert.Equal(t, http.StatusBadRequest, w.Code, body)
		assert.JSONEq(t, `{"error":"Invalid email"}`, w.Body.String(), body)
	}

	recent, err := submissions.Recent(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, recent)
}

func TestHandleSubscribeOverlongEmail(t *testing.T) {
	r, _, _ := newTestRouter(t)

	w := post(r, `{"email":"`+strings.Repeat("a", 300)+`@example.com"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"Invalid email"}`, w.Body.String())
}

func TestHandleSubscribeRoutesWaitlistSources(t *testing.T) {
	r, svc, submissions := newTestRouter(t)

	w := post(r, `{"email":"ben@example.com","source":"os-waitlist"}`)
	svc.Drain()

	require.Equal(t, http.StatusOK, w.Code)
	recent, err := submissions.Recent(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, recent, 1)
	assert.Equal(t, "list-os", recent[0].ListID)
}

func TestHandleSubscribeNoSource(t *testing.T) {
	r, svc, submissions := newTestRouter(t)

	w := post(r, `{"email":"cara@example.com"}`)
	svc.Drain()

	require.Equal(t, http.StatusOK, w.Code)
	recent, err := submissions.Recent(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, recent, 1)
	assert.Equal(t, "unknown", recent[0].Source)
}
