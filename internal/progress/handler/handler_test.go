package handler

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"praxis/internal/catalog"
	profilestore "praxis/internal/profile/store"
	"praxis/internal/progress/service"
	"praxis/pkg/requestcontext"
)

type ProgressHandlerSuite struct {
	suite.Suite
	ctx context.Context
}

func (s *ProgressHandlerSuite) SetupSuite() {
	s.ctx = context.Background()
}

func TestProgressHandlerSuite(t *testing.T) {
	suite.Run(t, new(ProgressHandlerSuite))
}

func newTestRouter(t *testing.T) chi.Router {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc, err := service.New(catalog.Default(), profilestore.NewInMemory(), logger, nil)
	require.NoError(t, err)

	r := chi.NewRouter()
	New(svc, logger).Register(r)
	return r
}

func (s *ProgressHandlerSuite) do(r chi.Router, method, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	req = req.WithContext(requestcontext.WithUserID(req.Context(), "user123"))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func (s *ProgressHandlerSuite) TestListModules() {
	r := newTestRouter(s.T())

	w := s.do(r, http.MethodGet, "/api/modules")

	require.Equal(s.T(), http.StatusOK, w.Code)
	var resp listResponse
	require.NoError(s.T(), json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(s.T(), resp.Modules, catalog.Default().Len())
	assert.Equal(s.T(), "the-blueprint", resp.Modules[0].Slug)
	for _, m := range resp.Modules {
		assert.False(s.T(), m.Completed)
	}
}

func (s *ProgressHandlerSuite) TestGetModule() {
	r := newTestRouter(s.T())

	w := s.do(r, http.MethodGet, "/api/modules/seeing-affordances")

	require.Equal(s.T(), http.StatusOK, w.Code)
	var resp moduleResponse
	require.NoError(s.T(), json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(s.T(), "seeing-affordances", resp.Slug)
	assert.Equal(s.T(), "/modules/designing-constraints", resp.Next)
	assert.False(s.T(), resp.Completed)
}

func (s *ProgressHandlerSuite) TestGetModuleUnknownSlug() {
	r := newTestRouter(s.T())

	w := s.do(r, http.MethodGet, "/api/modules/no-such-module")

	assert.Equal(s.T(), http.StatusNotFound, w.Code)
}

func (s *ProgressHandlerSuite) TestCompleteModule() {
	r := newTestRouter(s.T())

	w := s.do(r, http.MethodPost, "/api/modules/the-blueprint/complete")

	require.Equal(s.T(), http.StatusOK, w.Code)
	var resp completeResponse
	require.NoError(s.T(), json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(s.T(), []string{"the-blueprint"}, resp.CompletedModules)
	assert.Equal(s.T(), "/modules/the-ecological-revolution", resp.Next)

	// Completion state is reflected on subsequent reads.
	got := s.do(r, http.MethodGet, "/api/modules/the-blueprint")
	var module moduleResponse
	require.NoError(s.T(), json.Unmarshal(got.Body.Bytes(), &module))
	assert.True(s.T(), module.Completed)
}

func (s *ProgressHandlerSuite) TestCompleteFinalModulePointsAtDashboard() {
	r := newTestRouter(s.T())

	w := s.do(r, http.MethodPost, "/api/modules/the-attractor-state/complete")

	require.Equal(s.T(), http.StatusOK, w.Code)
	var resp completeResponse
	require.NoError(s.T(), json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(s.T(), "/dashboard", resp.Next)
}

func (s *ProgressHandlerSuite) TestCompleteUnauthenticated() {
	r := newTestRouter(s.T())

	req := httptest.NewRequest(http.MethodPost, "/api/modules/the-blueprint/complete", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(s.T(), http.StatusUnauthorized, w.Code)
}
