// internal/services/matching/university-recommendations/config.go
package universityrecommendations

import "time"

type Config struct {
	Timeout          time.Duration
	MaxResults       int
	SummaryMaxTokens int
}

func LoadConfig() *Config {
	return &Config{
		Timeout:          30 * time.Second,
		MaxResults:       5,
		SummaryMaxTokens: 500,
	}
}
