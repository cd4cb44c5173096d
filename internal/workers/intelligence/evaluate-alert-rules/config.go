// internal/workers/intelligence/evaluate-alert-rules/config.go
package evaluatealertrules

import "time"

type Config struct {
	Timeout time.Duration
	// ProspectLimit bounds each prospect scan.
	ProspectLimit int
}

func LoadConfig() *Config {
	return &Config{
		Timeout:       60 * time.Second,
		ProspectLimit: 100,
	}
}
