package config

// ScenarioConfig holds simulation scenario configuration
type ScenarioConfig struct {
	// Restore persisted lookup tables and activity state on startup
	RestoreOnStartup bool `mapstructure:"restore_on_startup"`
}

// FeedConfig holds lookup table feed processing configuration
type FeedConfig struct {
	// Delete tables absent from an auto-delete feed batch
	AutoDeleteDefault bool `mapstructure:"auto_delete_default"`

	// Maximum number of table definitions accepted in one batch
	MaxBatchSize int `mapstructure:"max_batch_size" validate:"min=1"`
}
