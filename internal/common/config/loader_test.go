package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadFromFile_AppliesDefaults(t *testing.T) {
	path := writeConfig(t, `
app:
  name: advisor
services:
  student-chat:
    enabled: true
  recommendations:
    enabled: true
    max_results: 3
`)

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, "advisor", cfg.App.Name)
	assert.Equal(t, ":8080", cfg.Server.Address)
	assert.Equal(t, "data/distilled_data.json", cfg.Data.StudentsPath)
	assert.Equal(t, "data/visa_requirements.json", cfg.Data.VisaPath)
	assert.Equal(t, BackendNone, cfg.Universities.Backend)
	assert.Equal(t, BackendMemory, cfg.Sessions.Backend)
	assert.Equal(t, 24*time.Hour, GetDuration(cfg.Sessions.TTL))
	assert.Equal(t, "sop:session:", cfg.Sessions.KeyPrefix)
	assert.Equal(t, 5, cfg.Services["student-chat"].MaxResults)
	assert.Equal(t, 3, cfg.Services["recommendations"].MaxResults)
	assert.Equal(t, 30000, cfg.Services["recommendations"].Timeout)
}

func TestLoadFromFile_ExpandsEnvPlaceholders(t *testing.T) {
	t.Setenv("TEST_GENAI_URL", "http://genai.local")
	path := writeConfig(t, `
apis:
  genai:
    base_url: ${TEST_GENAI_URL}
`)

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "http://genai.local", cfg.APIs.GenAI.BaseURL)
}

func TestLoadFromFile_Validation(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{
			name: "postgres backend without host",
			body: `
universities:
  backend: postgres
`,
			wantErr: "database.postgres.host is required",
		},
		{
			name: "elasticsearch backend without addresses",
			body: `
universities:
  backend: elasticsearch
`,
			wantErr: "database.elasticsearch.addresses or url is required",
		},
		{
			name: "redis sessions without address",
			body: `
sessions:
  backend: redis
`,
			wantErr: "database.redis.address is required",
		},
		{
			name: "memory backend without seed",
			body: `
universities:
  backend: memory
`,
			wantErr: "universities.seed_path is required",
		},
		{
			name: "unknown university backend",
			body: `
universities:
  backend: mongo
`,
			wantErr: `universities.backend "mongo" is not supported`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFromFile(writeConfig(t, tt.body))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadFromFile_ElasticsearchURLFallback(t *testing.T) {
	path := writeConfig(t, `
universities:
  backend: elasticsearch
database:
  elasticsearch:
    url: http://es:9200
`)

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"http://es:9200"}, cfg.Database.Elasticsearch.GetAddresses())
}

func TestGetServiceConfig_DefaultsToEnabled(t *testing.T) {
	cfg := &Config{Services: map[string]ServiceConfig{
		"visa-guidance": {Enabled: false},
	}}

	assert.False(t, IsServiceEnabled(cfg, "visa-guidance"))
	assert.True(t, IsServiceEnabled(cfg, "student-chat"))
	assert.Equal(t, 5, GetServiceConfig(cfg, "student-chat").MaxResults)
}

func TestPostgresConfig_GetDSN(t *testing.T) {
	p := PostgresConfig{Host: "db", Port: 5432, User: "u", Password: "p", Database: "unis", SSLMode: "disable"}
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=unis sslmode=disable", p.GetDSN())
}
