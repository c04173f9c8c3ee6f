// internal/workers/communication/send-user-notification/config.go
package sendusernotification

import "time"

type Config struct {
	PushEnabled  bool
	EmailEnabled bool
	Timeout      time.Duration
}

func LoadConfig() *Config {
	return &Config{
		PushEnabled: true,
		Timeout:     30 * time.Second,
	}
}
