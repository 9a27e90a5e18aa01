package config

import "time"

// DaemonConfig holds daemon process configuration
type DaemonConfig struct {
	// PID file path for single-instance enforcement
	PIDFile string `mapstructure:"pid_file"`

	// Interval between periodic state saves
	SaveInterval time.Duration `mapstructure:"save_interval"`

	// Maximum time to wait for a clean shutdown
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}
