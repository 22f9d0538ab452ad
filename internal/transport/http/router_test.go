package httptransport

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"praxis/internal/accesskey"
	"praxis/internal/catalog"
	foundationshandler "praxis/internal/foundations/handler"
	foundationsservice "praxis/internal/foundations/service"
	onboardinghandler "praxis/internal/onboarding/handler"
	onboardingmodels "praxis/internal/onboarding/models"
	onboardingservice "praxis/internal/onboarding/service"
	profilestore "praxis/internal/profile/store"
	progresshandler "praxis/internal/progress/handler"
	progressservice "praxis/internal/progress/service"
	"praxis/internal/sessiontoken"
	subscribehandler "praxis/internal/subscribe/handler"
	"praxis/internal/subscribe/mailer"
	subscribeservice "praxis/internal/subscribe/service"
	subscribestore "praxis/internal/subscribe/store"
	"praxis/pkg/testutil"
)

const testSigningKey = "router-test-signing-key"

// RouterSuite exercises the assembled HTTP surface end to end against
// in-memory backends: gate, wizard, module track, and dashboard readback.
type RouterSuite struct {
	suite.Suite
	router    http.Handler
	subscribe *subscribeservice.Service
	profiles  *profilestore.InMemory
}

func TestRouterSuite(t *testing.T) {
	suite.Run(t, new(RouterSuite))
}

func (s *RouterSuite) SetupTest() {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s.profiles = profilestore.NewInMemory()

	keyHash, err := accesskey.HashKey("alpha-cohort-2026")
	s.Require().NoError(err)
	gate, err := accesskey.NewService(keyHash, s.profiles, logger)
	s.Require().NoError(err)
	onboarding, err := onboardingservice.New(s.profiles, logger, nil)
	s.Require().NoError(err)
	foundations, err := foundationsservice.New(s.profiles, logger, nil)
	s.Require().NoError(err)
	progress, err := progressservice.New(catalog.Default(), s.profiles, logger, nil)
	s.Require().NoError(err)
	s.subscribe, err = subscribeservice.New(subscribestore.NewInMemory(), mailer.NewLogOnly(logger), subscribeservice.ListRouting{
		SignalListID: "list-signal",
		OSListID:     "list-os",
	}, logger, nil)
	s.Require().NoError(err)

	s.router = NewRouter(Deps{
		Logger:      logger,
		Sessions:    sessiontoken.NewValidator(testSigningKey),
		Subscribe:   subscribehandler.New(s.subscribe, logger),
		AccessKey:   accesskey.NewHandler(gate),
		Onboarding:  onboardinghandler.New(onboarding, logger),
		Foundations: foundationshandler.New(foundations, progress, logger),
		Progress:    progresshandler.New(progress, logger),
		Health:      map[string]HealthChecker{"self": func(context.Context) error { return nil }},
	})
}

func (s *RouterSuite) token(userID string) string {
	claims := sessiontoken.Claims{
		UserID:    userID,
		SessionID: "sess_1",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSigningKey))
	s.Require().NoError(err)
	return signed
}

func (s *RouterSuite) authed(method, path string, body any, userID string) *http.Request {
	req := testutil.NewJSONRequest(s.T(), method, path, body)
	req.Header.Set("Authorization", "Bearer "+s.token(userID))
	return req
}

func (s *RouterSuite) TestPublicRoutesNeedNoToken() {
	rr := testutil.DoRequest(s.router, testutil.NewJSONRequest(s.T(), http.MethodPost, "/api/subscribe",
		map[string]string{"email": "ana@example.com", "source": "signal-page"}))
	s.subscribe.Drain()
	testutil.AssertStatusOK(s.T(), rr)

	rr = testutil.DoRequest(s.router, testutil.NewRequest(s.T(), http.MethodGet, "/healthz"))
	testutil.AssertStatusOK(s.T(), rr)

	rr = testutil.DoRequest(s.router, testutil.NewRequest(s.T(), http.MethodGet, "/metrics"))
	testutil.AssertStatusOK(s.T(), rr)
}

func (s *RouterSuite) TestProductRoutesRejectMissingToken() {
	for _, route := range []struct{ method, path string }{
		{http.MethodPost, "/api/access-key"},
		{http.MethodPost, "/api/onboarding/advance"},
		{http.MethodPost, "/api/onboarding/skip"},
		{http.MethodGet, "/api/foundations"},
		{http.MethodPatch, "/api/foundations/goal"},
		{http.MethodGet, "/api/modules"},
		{http.MethodGet, "/api/modules/the-blueprint"},
		{http.MethodPost, "/api/modules/the-blueprint/complete"},
	} {
		rr := testutil.DoRequest(s.router, testutil.NewRequest(s.T(), route.method, route.path))
		assert.Equal(s.T(), http.StatusUnauthorized, rr.Code, "%s %s", route.method, route.path)
	}
}

func (s *RouterSuite) TestProductRoutesRejectGarbageToken() {
	req := testutil.NewRequest(s.T(), http.MethodGet, "/api/modules")
	req.Header.Set("Authorization", "Bearer not-a-jwt")
	rr := testutil.DoRequest(s.router, req)
	assert.Equal(s.T(), http.StatusUnauthorized, rr.Code)
}

// TestNewMemberJourney walks the whole product path a new member takes:
// unlock with the access key, answer the three wizard steps, read the
// dashboard back, then work through the module track.
func (s *RouterSuite) TestNewMemberJourney() {
	const userID = "user_journey"
	t := s.T()

	rr := testutil.DoRequest(s.router, s.authed(http.MethodPost, "/api/access-key",
		map[string]string{"key": "alpha-cohort-2026"}, userID))
	testutil.AssertStatusOK(t, rr)

	// The wizard client resubmits the accumulated answer set on every step.
	answers := []map[string]any{
		{"step": 0, "answers": map[string]string{
			"domain": "Brazilian Jiu-Jitsu",
		}},
		{"step": 1, "answers": map[string]string{
			"domain":     "Brazilian Jiu-Jitsu",
			"constraint": "Escape bad positions without freezing",
		}},
		{"step": 2, "answers": map[string]string{
			"domain":     "Brazilian Jiu-Jitsu",
			"constraint": "Escape bad positions without freezing",
			"goal":       "Win my first competition match",
		}},
	}
	var wizard struct {
		State     string `json:"state"`
		Finalized bool   `json:"finalized"`
		Redirect  string `json:"redirect"`
	}
	for _, body := range answers {
		rr = testutil.DoRequest(s.router, s.authed(http.MethodPost, "/api/onboarding/advance", body, userID))
		testutil.AssertStatusOK(t, rr)
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &wizard))
	}
	assert.True(t, wizard.Finalized)
	assert.Equal(t, "/dashboard", wizard.Redirect)
	assert.Equal(t, onboardingmodels.StateFinalized.String(), wizard.State)

	// Dashboard readback shows the answers and points at the first module.
	rr = testutil.DoRequest(s.router, s.authed(http.MethodGet, "/api/foundations", nil, userID))
	testutil.AssertStatusOK(t, rr)
	var overview struct {
		Domain             string   `json:"domain"`
		Constraint         string   `json:"constraint"`
		Goal               string   `json:"goal"`
		CompletedModules   []string `json:"completedModules"`
		OnboardingComplete bool     `json:"onboardingComplete"`
		Resume             string   `json:"resume"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &overview))
	assert.Equal(t, "Brazilian Jiu-Jitsu", overview.Domain)
	assert.Equal(t, "Escape bad positions without freezing", overview.Constraint)
	assert.Equal(t, "Win my first competition match", overview.Goal)
	assert.True(t, overview.OnboardingComplete)
	assert.Empty(t, overview.CompletedModules)
	assert.Equal(t, "/modules/the-blueprint", overview.Resume)

	// Completing the first module points at the second.
	rr = testutil.DoRequest(s.router, s.authed(http.MethodPost, "/api/modules/the-blueprint/complete", nil, userID))
	testutil.AssertStatusOK(t, rr)
	var completion struct {
		CompletedModules []string `json:"completedModules"`
		Next             string   `json:"next"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &completion))
	assert.Equal(t, []string{"the-blueprint"}, completion.CompletedModules)
	assert.Equal(t, "/modules/the-ecological-revolution", completion.Next)

	// Completing the last module points at the dashboard.
	rr = testutil.DoRequest(s.router, s.authed(http.MethodPost, "/api/modules/the-attractor-state/complete", nil, userID))
	testutil.AssertStatusOK(t, rr)
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &completion))
	assert.Equal(t, "/dashboard", completion.Next)

	// Re-running the wizard after finalization is an idempotent redirect.
	rr = testutil.DoRequest(s.router, s.authed(http.MethodPost, "/api/onboarding/advance",
		map[string]any{"step": 0, "answers": map[string]string{"domain": "Chess"}}, userID))
	testutil.AssertStatusOK(t, rr)
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &wizard))
	assert.True(t, wizard.Finalized)

	profile, err := s.profiles.Get(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, "Brazilian Jiu-Jitsu", profile.Foundations.Domain)
}

func (s *RouterSuite) TestSkippedOnboardingLeavesPlaceholders() {
	const userID = "user_skip"

	rr := testutil.DoRequest(s.router, s.authed(http.MethodPost, "/api/onboarding/skip",
		map[string]any{"answers": map[string]string{"domain": "Climbing"}}, userID))
	testutil.AssertStatusOK(s.T(), rr)

	profile, err := s.profiles.Get(context.Background(), userID)
	s.Require().NoError(err)
	assert.Equal(s.T(), "Climbing", profile.Foundations.Domain)
	assert.Equal(s.T(), onboardingmodels.Unset, profile.Foundations.Constraint)
	assert.Equal(s.T(), onboardingmodels.Unset, profile.Foundations.Goal)
	assert.True(s.T(), profile.OnboardingComplete)
}

func (s *RouterSuite) TestContentTypeEnforced() {
	req := testutil.NewRequestWithBody(s.T(), http.MethodPost, "/api/subscribe", `email=x`)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rr := testutil.DoRequest(s.router, req)
	assert.Equal(s.T(), http.StatusUnsupportedMediaType, rr.Code)
}
