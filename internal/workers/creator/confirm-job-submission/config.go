// internal/workers/creator/confirm-job-submission/config.go
package confirmjobsubmission

import "time"

type Config struct {
	Timeout time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Timeout: 15 * time.Second,
	}
}
