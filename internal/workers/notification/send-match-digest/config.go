// internal/workers/notification/send-match-digest/config.go
package sendmatchdigest

import (
	"time"

	"jobmatch-workers/internal/common/config"
)

type Config struct {
	Timeout          time.Duration
	EmailEnabled     bool
	SMSEnabled       bool
	DefaultThreshold int
	MaxItems         int
}

func LoadConfig(cfg config.NotificationConfig) *Config {
	c := &Config{
		Timeout:          30 * time.Second,
		EmailEnabled:     cfg.Email.Enabled,
		SMSEnabled:       cfg.SMS.Enabled,
		DefaultThreshold: cfg.DigestThreshold,
		MaxItems:         cfg.DigestMaxItems,
	}
	if c.DefaultThreshold <= 0 {
		c.DefaultThreshold = 70
	}
	if c.MaxItems <= 0 {
		c.MaxItems = 10
	}
	return c
}
