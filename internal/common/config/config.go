// internal/common/config/config.go
package config

import "fmt"

// Config is the main application configuration struct.
type Config struct {
	App          AppConfig                `mapstructure:"app"`
	Server       ServerConfig             `mapstructure:"server"`
	Data         DataConfig               `mapstructure:"data"`
	Database     DatabaseConfig           `mapstructure:"database"`
	Universities UniversityConfig         `mapstructure:"universities"`
	Sessions     SessionConfig            `mapstructure:"sessions"`
	Services     map[string]ServiceConfig `mapstructure:"services"`
	APIs         APIsConfig               `mapstructure:"apis"`
	Logging      LoggingConfig            `mapstructure:"logging"`
}

// --- Core App/Infrastructure Config ---
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

type ServerConfig struct {
	Address         string `mapstructure:"address"`
	ReadTimeout     int    `mapstructure:"read_timeout"`     // milliseconds
	WriteTimeout    int    `mapstructure:"write_timeout"`    // milliseconds
	ShutdownTimeout int    `mapstructure:"shutdown_timeout"` // milliseconds
	CatalogPath     string `mapstructure:"catalog_path"`     // optional endpoint catalog override
}

// DataConfig points at the static record sets loaded once at start.
type DataConfig struct {
	StudentsPath string `mapstructure:"students_path"`
	VisaPath     string `mapstructure:"visa_path"`
}

type DatabaseConfig struct {
	Postgres      PostgresConfig      `mapstructure:"postgres"`
	Elasticsearch ElasticsearchConfig `mapstructure:"elasticsearch"`
	Redis         RedisConfig         `mapstructure:"redis"`
}

type PostgresConfig struct {
	Host           string `mapstructure:"host"`
	Port           int    `mapstructure:"port"`
	Database       string `mapstructure:"database"`
	User           string `mapstructure:"user"`
	Password       string `mapstructure:"password"`
	MaxConnections int    `mapstructure:"max_connections"`
	MaxIdle        int    `mapstructure:"max_idle"`
	SSLMode        string `mapstructure:"sslmode"`
}

// GetDSN returns the PostgreSQL connection string
func (p PostgresConfig) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.Database, p.SSLMode,
	)
}

type ElasticsearchConfig struct {
	Addresses []string `mapstructure:"addresses"`
	Username  string   `mapstructure:"username"`
	Password  string   `mapstructure:"password"`
	URL       string   `mapstructure:"url"` // Single URL for backwards compatibility
}

// GetAddresses returns Addresses, or URL when only the single form is set.
func (e ElasticsearchConfig) GetAddresses() []string {
	if len(e.Addresses) > 0 {
		return e.Addresses
	}
	if e.URL != "" {
		return []string{e.URL}
	}
	return nil
}

type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// --- Specific Configuration Sections ---

// University store backends.
const (
	BackendPostgres      = "postgres"
	BackendElasticsearch = "elasticsearch"
	BackendMemory        = "memory"
	BackendRedis         = "redis"
	BackendNone          = "none"
)

// UniversityConfig selects the document store used for university lookups.
type UniversityConfig struct {
	Backend  string `mapstructure:"backend"` // postgres | elasticsearch | memory | none
	Table    string `mapstructure:"table"`
	Index    string `mapstructure:"index"`
	SeedPath string `mapstructure:"seed_path"` // memory backend only
}

// SessionConfig holds the drafting-session store policy.
type SessionConfig struct {
	Backend     string `mapstructure:"backend"` // memory | redis
	TTL         int    `mapstructure:"ttl"`     // milliseconds, idle expiry
	MaxSessions int    `mapstructure:"max_sessions"`
	KeyPrefix   string `mapstructure:"key_prefix"`
}

// ServiceConfig holds the core settings applicable to every HTTP service.
type ServiceConfig struct {
	Enabled    bool `mapstructure:"enabled"`
	Timeout    int  `mapstructure:"timeout"` // milliseconds
	MaxResults int  `mapstructure:"max_results"`
}

// APIsConfig holds settings for external API integrations.
type APIsConfig struct {
	GenAI struct {
		BaseURL string `mapstructure:"base_url"`
		APIKey  string `mapstructure:"api_key"`
		Timeout int    `mapstructure:"timeout"` // milliseconds
	} `mapstructure:"genai"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}
