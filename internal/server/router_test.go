package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"advisor-services/internal/common/config"
	"advisor-services/internal/common/database"
	"advisor-services/internal/common/genai"
	commonhttp "advisor-services/internal/common/http"
	"advisor-services/internal/common/logger"
	"advisor-services/internal/common/observability"
	"advisor-services/internal/dataset"
	studentchat "advisor-services/internal/services/chatbot/student-chat"
	sopconversation "advisor-services/internal/services/documents/sop-conversation"
	"advisor-services/internal/store/universities"
	"advisor-services/pkg/registry"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

type fixedGenerator string

func (g fixedGenerator) Generate(context.Context, genai.Request) (string, error) { return string(g), nil }

type downPinger struct{}

func (downPinger) Ping(context.Context) error { return errors.New("connection refused") }

func baseConfig() *config.Config {
	return &config.Config{Services: map[string]config.ServiceConfig{}}
}

func baseDeps(t *testing.T) (Deps, *tracetest.SpanRecorder) {
	t.Helper()
	reg := prometheus.NewRegistry()
	spans := tracetest.NewSpanRecorder()
	obs, err := observability.New("advisor-test",
		observability.WithRegisterer(reg),
		observability.WithSpanProcessor(spans),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = obs.Shutdown(context.Background()) })

	return Deps{
		Students: dataset.NewStudentSet([]dataset.Student{
			{StudentID: "1", GPA: 3.9, Major: "Physics", LocationPreference: "Texas"},
			{StudentID: "2", GPA: 3.1, Major: "Biology", LocationPreference: "California"},
		}),
		Visas: dataset.NewVisaCatalog([]dataset.VisaRequirement{
			{Country: "USA", VisaType: "F-1 Student Visa", Steps: []string{"Apply online"}},
		}),
		Observability:  obs,
		MetricsHandler: promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
	}, spans
}

func newTestServer(t *testing.T, cfg *config.Config, deps Deps) *httptest.Server {
	t.Helper()
	h, err := NewRouter(cfg, deps, logger.NewTestLogger(t))
	require.NoError(t, err)
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return srv
}

func postJSON(t *testing.T, url, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(url, "application/json", strings.NewReader(body))
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestRouter_ChatRoutes(t *testing.T) {
	deps, spans := baseDeps(t)
	srv := newTestServer(t, baseConfig(), deps)

	resp := postJSON(t, srv.URL+"/chat", `{"user_query": "tell me a joke"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get(commonhttp.RequestIDHeader))

	var out studentchat.Output
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, studentchat.FallbackReply, out.Reply)

	resp = postJSON(t, srv.URL+"/visa/chat", `{"user_query": "What documents do I need for the USA?"}`)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	ended := spans.Ended()
	require.Len(t, ended, 2)
	assert.Equal(t, "/chat", ended[0].Name())
}

func TestRouter_MethodAndDisabledServices(t *testing.T) {
	deps, _ := baseDeps(t)
	cfg := baseConfig()
	cfg.Services[studentchat.ServiceName] = config.ServiceConfig{Enabled: false}
	srv := newTestServer(t, cfg, deps)

	resp := postJSON(t, srv.URL+"/chat", `{"user_query": "hi"}`)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	get, err := http.Get(srv.URL + "/visa/chat")
	require.NoError(t, err)
	defer get.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, get.StatusCode)
}

func TestRouter_OptionalRoutesNeedBackends(t *testing.T) {
	deps, _ := baseDeps(t)
	srv := newTestServer(t, baseConfig(), deps)

	get, err := http.Get(srv.URL + "/university-recommendations?gpa=3.5")
	require.NoError(t, err)
	defer get.Body.Close()
	assert.Equal(t, http.StatusNotFound, get.StatusCode)

	resp := postJSON(t, srv.URL+"/start-sop-conversation", `{"student_id": 1, "university_name": "X"}`)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestRouter_SOPConversationMounted(t *testing.T) {
	deps, _ := baseDeps(t)
	deps.Universities = universities.NewMemoryStore([]universities.University{{ID: "1", Name: "Rice University"}})
	deps.Sessions = sopconversation.NewMemoryStore(sopconversation.MemoryStoreConfig{})
	deps.Generator = fixedGenerator("Tell me about your research.")
	srv := newTestServer(t, baseConfig(), deps)

	resp := postJSON(t, srv.URL+"/start-sop-conversation", `{"student_id": 1, "university_name": "Rice University"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = postJSON(t, srv.URL+"/continue-sop-conversation", `{"student_id": 1, "student_response": "I study optics."}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var msg sopconversation.MessageOutput
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&msg))
	assert.Equal(t, "Tell me about your research.", msg.Message)
}

func TestRouter_HealthReadyMetrics(t *testing.T) {
	deps, _ := baseDeps(t)
	deps.Backends = map[string]database.Pinger{"redis": downPinger{}}
	srv := newTestServer(t, baseConfig(), deps)

	health, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	defer health.Body.Close()
	assert.Equal(t, http.StatusOK, health.StatusCode)

	ready, err := http.Get(srv.URL + "/ready")
	require.NoError(t, err)
	defer ready.Body.Close()
	assert.Equal(t, http.StatusServiceUnavailable, ready.StatusCode)
	body, _ := io.ReadAll(ready.Body)
	assert.Contains(t, string(body), "redis: connection refused")

	postJSON(t, srv.URL+"/chat", `{"user_query": "highest gpa"}`)
	m, err := http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer m.Body.Close()
	body, _ = io.ReadAll(m.Body)
	assert.Contains(t, string(body), "http_server_requests")
}

func TestBootstrap_MemoryBackends(t *testing.T) {
	cfg := baseConfig()
	cfg.Data = config.DataConfig{
		StudentsPath: filepath.Join("..", "..", "data", "distilled_data.json"),
		VisaPath:     filepath.Join("..", "..", "data", "visa_requirements.json"),
	}
	cfg.Universities = config.UniversityConfig{
		Backend:  config.BackendMemory,
		SeedPath: filepath.Join("..", "..", "data", "universities.json"),
	}
	cfg.Sessions = config.SessionConfig{Backend: config.BackendMemory, TTL: 60000, MaxSessions: 10}

	deps, cleanup, err := Bootstrap(context.Background(), cfg, logger.NewTestLogger(t))
	defer cleanup()
	require.NoError(t, err)

	assert.Positive(t, deps.Students.Len())
	assert.Equal(t, 2, deps.Visas.Len())
	require.NotNil(t, deps.Universities)
	require.NotNil(t, deps.Sessions)
	assert.Nil(t, deps.Generator)

	u, err := deps.Universities.FindByName(context.Background(), "university of toronto")
	require.NoError(t, err)
	assert.Equal(t, "Canada", u.Country)
}

func TestBootstrap_MissingDataset(t *testing.T) {
	cfg := baseConfig()
	cfg.Data = config.DataConfig{StudentsPath: filepath.Join(t.TempDir(), "missing.json"), VisaPath: "unused"}

	_, cleanup, err := Bootstrap(context.Background(), cfg, logger.NewNoOpLogger())
	defer cleanup()
	assert.ErrorIs(t, err, dataset.ErrDatasetLoad)
}

func TestRouter_ServicesListsMountedEndpoints(t *testing.T) {
	deps, _ := baseDeps(t)
	srv := newTestServer(t, baseConfig(), deps)

	resp, err := http.Get(srv.URL + "/services")
	require.NoError(t, err)
	defer resp.Body.Close()

	var catalog registry.Catalog
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&catalog))
	ids := make([]string, 0, len(catalog.Endpoints))
	for _, e := range catalog.Endpoints {
		ids = append(ids, e.ID)
	}
	assert.Equal(t, []string{"chat", "visa-chat", "recommendations", "generate-sop"}, ids)
}

func TestRouter_CustomCatalog(t *testing.T) {
	deps, _ := baseDeps(t)
	deps.Catalog = &registry.Catalog{Endpoints: []registry.Endpoint{
		{ID: "chat", Service: "student-chat", Method: http.MethodPost, Path: "/v2/chat"},
	}}
	srv := newTestServer(t, baseConfig(), deps)

	resp := postJSON(t, srv.URL+"/v2/chat", `{"user_query": "hello"}`)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp = postJSON(t, srv.URL+"/chat", `{"user_query": "hello"}`)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	deps.Catalog = &registry.Catalog{Endpoints: []registry.Endpoint{
		{ID: "weather", Service: "weather", Method: http.MethodGet, Path: "/weather"},
	}}
	_, err := NewRouter(baseConfig(), deps, logger.NewNoOpLogger())
	assert.ErrorContains(t, err, `no handler for endpoint "weather"`)
}
