// internal/services/documents/sop-conversation/config.go
package sopconversation

import "time"

const (
	OpeningQuestion     = "Let's begin drafting your SOP. To start, tell me about your academic background and major achievements."
	DefaultRequirements = "General SOP requirements."
)

type Config struct {
	Timeout        time.Duration
	TurnMaxTokens  int
	DraftMaxTokens int
	Temperature    float64
}

func LoadConfig() *Config {
	return &Config{
		Timeout:        30 * time.Second,
		TurnMaxTokens:  800,
		DraftMaxTokens: 1500,
		Temperature:    0.7,
	}
}
