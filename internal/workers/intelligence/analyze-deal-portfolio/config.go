// internal/workers/intelligence/analyze-deal-portfolio/config.go
package analyzedealportfolio

import "time"

type Config struct {
	Timeout    time.Duration
	TopReasons int
}

func LoadConfig() *Config {
	return &Config{
		Timeout:    10 * time.Second,
		TopReasons: 5,
	}
}
