// internal/workers/matching/calculate-match-score/config.go
package calculatematchscore

import (
	"time"

	"jobmatch-workers/internal/models"
)

type Config struct {
	Timeout time.Duration
	// DefaultWeights applies when the job carries no weights variable.
	DefaultWeights *models.FactorWeights
}

func LoadConfig() *Config {
	return &Config{
		Timeout: 10 * time.Second,
	}
}
