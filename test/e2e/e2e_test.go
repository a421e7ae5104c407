// test/e2e/e2e_test.go
package e2e

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"advisor-services/internal/common/config"
	"advisor-services/internal/common/logger"
	"advisor-services/internal/server"
)

// fakeGenAI answers by max_tokens so each caller gets a recognizable reply.
type fakeGenAI struct {
	mu      sync.Mutex
	prompts []string
}

func (f *fakeGenAI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/api/ai/generate" || r.Header.Get("Authorization") != "Bearer test-key" {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}
	var req struct {
		Prompt    string `json:"prompt"`
		MaxTokens int    `json:"max_tokens"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	f.mu.Lock()
	f.prompts = append(f.prompts, req.Prompt)
	f.mu.Unlock()

	text := "What research have you done?"
	switch req.MaxTokens {
	case 1500:
		text = "Statement of Purpose\n\nIntroduction..."
	case 500:
		text = "Arizona State University is the most affordable fit."
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"text": text})
}

type env struct {
	url   string
	redis *miniredis.Miniredis
	genai *fakeGenAI
}

func setup(t *testing.T) *env {
	t.Helper()
	mr := miniredis.RunT(t)
	gen := &fakeGenAI{}
	genSrv := httptest.NewServer(gen)
	t.Cleanup(genSrv.Close)

	data := filepath.Join("..", "..", "data")
	cfg := &config.Config{
		App: config.AppConfig{Name: "advisor-e2e"},
		Data: config.DataConfig{
			StudentsPath: filepath.Join(data, "distilled_data.json"),
			VisaPath:     filepath.Join(data, "visa_requirements.json"),
		},
		Database: config.DatabaseConfig{Redis: config.RedisConfig{Address: mr.Addr()}},
		Universities: config.UniversityConfig{
			Backend:  config.BackendMemory,
			SeedPath: filepath.Join(data, "universities.json"),
		},
		Sessions: config.SessionConfig{
			Backend:   config.BackendRedis,
			TTL:       3600000,
			KeyPrefix: "e2e:sop:",
		},
		Services: map[string]config.ServiceConfig{},
		Server:   config.ServerConfig{ReadTimeout: 1000},
	}
	cfg.APIs.GenAI.BaseURL = genSrv.URL
	cfg.APIs.GenAI.APIKey = "test-key"
	cfg.APIs.GenAI.Timeout = 5000

	log := logger.NewTestLogger(t)
	deps, cleanup, err := server.Bootstrap(context.Background(), cfg, log)
	t.Cleanup(cleanup)
	require.NoError(t, err)

	handler, err := server.NewRouter(cfg, deps, log)
	require.NoError(t, err)
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return &env{url: srv.URL, redis: mr, genai: gen}
}

func (e *env) do(t *testing.T, method, path, body string) (int, map[string]interface{}) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, e.url+path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var out map[string]interface{}
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &out), string(raw))
	}
	return resp.StatusCode, out
}

func TestStudentChat(t *testing.T) {
	e := setup(t)

	status, out := e.do(t, http.MethodPost, "/chat", `{"user_query": "Who has the highest GPA?"}`)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "The highest GPA is 3.9, from student_id 2 studying Biology at Riverside College.", out["reply"])

	_, out = e.do(t, http.MethodPost, "/chat", `{"user_query": "Which students want to study in Texas?"}`)
	assert.Equal(t, "Students wanting to study in texas are student_id(s): 3, 6.", out["reply"])

	status, _ = e.do(t, http.MethodPost, "/chat", `{"user_query":`)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestVisaGuidance(t *testing.T) {
	e := setup(t)

	status, out := e.do(t, http.MethodPost, "/visa/chat", `{"user_query": "How do I get a US student visa?"}`)
	require.Equal(t, http.StatusOK, status)
	reply, _ := out["reply"].(string)
	assert.True(t, strings.HasPrefix(reply, "The process for a F-1 Student Visa in USA typically includes:"), reply)

	_, out = e.do(t, http.MethodPost, "/visa/chat", `{"user_query": "tell me about visas"}`)
	assert.Contains(t, out["reply"], "USA or Canada")
}

func TestRecommendations(t *testing.T) {
	e := setup(t)

	status, out := e.do(t, http.MethodGet, "/recommendations?gpa=3.5&major=Computer%20Science", "")
	require.Equal(t, http.StatusOK, status)
	recs, _ := out["recommendations"].([]interface{})
	require.Len(t, recs, 2)
	assert.Equal(t, float64(1), recs[0].(map[string]interface{})["student_id"])
}

func TestUniversityRecommendations(t *testing.T) {
	e := setup(t)

	status, out := e.do(t, http.MethodGet, "/university-recommendations?gpa=3.3&budget=35000&country=USA", "")
	require.Equal(t, http.StatusOK, status)
	recs, _ := out["recommendations"].([]interface{})
	require.Len(t, recs, 3)
	assert.Equal(t, "Arizona State University", recs[0].(map[string]interface{})["name"])
	assert.Equal(t, "Arizona State University is the most affordable fit.", out["summary"])
}

func TestGenerateSOP(t *testing.T) {
	e := setup(t)

	status, out := e.do(t, http.MethodPost, "/generate-sop", `{"student_id": 1, "target_program": "M.S. in Data Science"}`)
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, out["sop_draft"], "M.S. in Data Science")

	status, _ = e.do(t, http.MethodPost, "/generate-sop", `{"student_id": 404}`)
	assert.Equal(t, http.StatusNotFound, status)

	status, _ = e.do(t, http.MethodPost, "/generate-sop", `{}`)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestSOPConversation(t *testing.T) {
	e := setup(t)

	status, out := e.do(t, http.MethodPost, "/start-sop-conversation",
		`{"student_id": 4, "university_name": "Massachusetts Institute of Technology"}`)
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, out["message"], "Let's begin drafting your SOP.")
	assert.True(t, e.redis.Exists("e2e:sop:4:meta"))

	status, out = e.do(t, http.MethodPost, "/continue-sop-conversation",
		`{"student_id": 4, "student_response": "I built a distributed key-value store."}`)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "What research have you done?", out["message"])

	status, out = e.do(t, http.MethodGet, "/get-sop-draft?student_id=4", "")
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, out["sop_draft"], "Statement of Purpose")

	turns, err := e.redis.List("e2e:sop:4:turns")
	require.NoError(t, err)
	assert.Len(t, turns, 3)

	e.genai.mu.Lock()
	last := e.genai.prompts[len(e.genai.prompts)-1]
	e.genai.mu.Unlock()
	assert.Contains(t, last, "University Requirements: Emphasize research experience and a clear technical focus.")
	assert.Contains(t, last, "Student: I built a distributed key-value store.")
}

func TestSOPConversation_Errors(t *testing.T) {
	e := setup(t)

	status, out := e.do(t, http.MethodPost, "/start-sop-conversation", `{"student_id": 1, "university_name": "Atlantis U"}`)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "University 'Atlantis U' not found in our database.", out["message"])

	status, out = e.do(t, http.MethodPost, "/continue-sop-conversation", `{"student_id": 1, "student_response": "hi"}`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "No active SOP drafting session found. Please start a new session.", out["message"])

	status, out = e.do(t, http.MethodGet, "/get-sop-draft?student_id=1", "")
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "No active SOP session found.", out["message"])
}

func TestHealthAndReady(t *testing.T) {
	e := setup(t)

	status, out := e.do(t, http.MethodGet, "/ready", "")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "ready", out["status"])

	e.redis.SetError("LOADING Redis is loading the dataset in memory")
	status, _ = e.do(t, http.MethodGet, "/ready", "")
	assert.Equal(t, http.StatusServiceUnavailable, status)
}
