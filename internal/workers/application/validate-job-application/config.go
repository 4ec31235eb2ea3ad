// internal/workers/application/validate-job-application/config.go
package validatejobapplication

import (
	"fmt"
	"time"

	"job-application-form/internal/common/config"
)

type Config struct {
	Enabled       bool
	MaxJobsActive int
	Timeout       time.Duration

	// ExemptInapplicableFields is passed to every Store the worker creates.
	ExemptInapplicableFields bool
}

func DefaultConfig() *Config {
	return &Config{
		Enabled:       true,
		MaxJobsActive: 5,
		Timeout:       30 * time.Second,
	}
}

// FromAppConfig reads the worker entry for TaskType and the form settings.
func FromAppConfig(cfg *config.Config) *Config {
	if cfg == nil {
		return DefaultConfig()
	}
	wcfg := config.GetWorkerConfig(cfg, TaskType)
	return &Config{
		Enabled:                  config.IsWorkerEnabled(cfg, TaskType),
		MaxJobsActive:            wcfg.MaxJobsActive,
		Timeout:                  config.GetDuration(wcfg.Timeout),
		ExemptInapplicableFields: cfg.Form.ExemptInapplicableFields,
	}
}

func (c *Config) Validate() error {
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive")
	}
	if c.MaxJobsActive <= 0 {
		return fmt.Errorf("max_jobs_active must be positive")
	}
	return nil
}
