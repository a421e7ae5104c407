// internal/services/matching/recommendations/config.go
package recommendations

type Config struct {
	MaxResults int
}

func LoadConfig() *Config {
	return &Config{
		MaxResults: 5,
	}
}
