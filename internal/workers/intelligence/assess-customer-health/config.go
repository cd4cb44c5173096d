// internal/workers/intelligence/assess-customer-health/config.go
package assesscustomerhealth

import "time"

type Config struct {
	Timeout time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Timeout: 10 * time.Second,
	}
}
