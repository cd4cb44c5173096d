// internal/workers/intelligence/analyze-win-loss/config.go
package analyzewinloss

import "time"

type Config struct {
	Timeout time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Timeout: 10 * time.Second,
	}
}
