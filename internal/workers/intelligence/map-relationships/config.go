// internal/workers/intelligence/map-relationships/config.go
package maprelationships

import "time"

type Config struct {
	Timeout  time.Duration
	MaxEdges int
}

func LoadConfig() *Config {
	return &Config{
		Timeout:  15 * time.Second,
		MaxEdges: 20,
	}
}
