// internal/workers/gigs/resolve-disclaimer/config.go
package resolvedisclaimer

import "time"

type Config struct {
	Timeout time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Timeout: 20 * time.Second,
	}
}
