package config

// Config holds all library configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Scheduler SchedulerConfig `mapstructure:"scheduler" validate:"required"`
	Logging   LoggingConfig   `mapstructure:"logging"   validate:"required"`
	Retry     RetryConfig     `mapstructure:"retry"`
}

// SchedulerConfig contains the default scheduler's settings.
type SchedulerConfig struct {
	// Lanes is the number of concurrent lanes executing tasks.
	Lanes int `mapstructure:"lanes" validate:"required,gte=1,lte=1024"`

	// QueueSize is the buffer size of the run queue feeding the lanes.
	QueueSize int `mapstructure:"queue_size" validate:"required,gte=1"`
}

// LoggingConfig contains logging settings.
type LoggingConfig struct {
	Level string `mapstructure:"level" validate:"required,oneof=debug info warn error"`
}

// RetryConfig carries default retry parameters for callers that want
// environment-tunable policies.
type RetryConfig struct {
	MaxAttempts int `mapstructure:"max_attempts" validate:"gte=0"`
	DelayMs     int `mapstructure:"delay_ms"     validate:"gte=0"`
}
