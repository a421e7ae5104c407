// internal/services/documents/generate-sop/config.go
package generatesop

const defaultTargetProgram = "the graduate program"

type Config struct {
	// Template overrides the built-in draft template when non-empty.
	Template string
}

func LoadConfig() *Config {
	return &Config{}
}
