// internal/workers/matching/match-jobs-for-persona/config.go
package matchjobsforpersona

import "time"

type Config struct {
	Timeout time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Timeout: 30 * time.Second,
	}
}
