// internal/workers/intelligence/detect-buying-signals/config.go
package detectbuyingsignals

import "time"

type Config struct {
	Timeout time.Duration
	// ProspectLimit bounds the tenant-wide scan.
	ProspectLimit int
}

func LoadConfig() *Config {
	return &Config{
		Timeout:       30 * time.Second,
		ProspectLimit: 100,
	}
}
