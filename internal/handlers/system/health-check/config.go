// internal/handlers/system/health-check/config.go
package healthcheck

import (
	"time"

	"salary-predictor/internal/common/config"
)

type Config struct {
	Timeout time.Duration
	// FailStatus makes an unhealthy report answer 503 instead of 200.
	FailStatus bool
}

func LoadConfig(cfg *config.Config) *Config {
	c := &Config{Timeout: 2 * time.Second}
	if cfg != nil {
		c.FailStatus = cfg.Server.HealthFailStatus
	}
	return c
}
