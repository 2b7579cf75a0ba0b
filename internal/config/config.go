package config

import (
	"fmt"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Policy   PolicyConfig   `mapstructure:"policy"`
	Training TrainingConfig `mapstructure:"training"`
	Eval     EvalConfig     `mapstructure:"eval"`
	Play     PlayConfig     `mapstructure:"play"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// PolicyConfig holds value-table and exploration settings
type PolicyConfig struct {
	Path         string  `mapstructure:"path"`
	LearningRate float64 `mapstructure:"learning_rate"`
	Gamma        float64 `mapstructure:"gamma"`
	MaxEpsilon   float64 `mapstructure:"max_epsilon"`
	MinEpsilon   float64 `mapstructure:"min_epsilon"`
	DecayRate    float64 `mapstructure:"decay_rate"`
	Exploration  string  `mapstructure:"exploration"`
	Temperature  float64 `mapstructure:"temperature"`
}

// TrainingConfig holds training run settings
type TrainingConfig struct {
	Episodes      int   `mapstructure:"episodes"`
	MaxSteps      int   `mapstructure:"max_steps"`
	Seed          int64 `mapstructure:"seed"`
	ProgressEvery int   `mapstructure:"progress_every"`
}

// EvalConfig holds evaluation run settings
type EvalConfig struct {
	Games    int   `mapstructure:"games"`
	MaxTurns int   `mapstructure:"max_turns"`
	Seed     int64 `mapstructure:"seed"`
}

// PlayConfig holds interactive session settings
type PlayConfig struct {
	Learn bool `mapstructure:"learn"`
}

// LoggingConfig holds log output settings
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

var (
	// Global config instance
	cfg *Config
	v   *viper.Viper
)

// setViperDefaults sets all default values using Viper's SetDefault
func setViperDefaults(v *viper.Viper) {
	// Policy defaults
	v.SetDefault("policy.path", "policy.csv")
	v.SetDefault("policy.learning_rate", 0.2)
	v.SetDefault("policy.gamma", 1.0)
	v.SetDefault("policy.max_epsilon", 1.0)
	v.SetDefault("policy.min_epsilon", 0.1)
	v.SetDefault("policy.decay_rate", 0.01)
	v.SetDefault("policy.exploration", "epsilon")
	v.SetDefault("policy.temperature", 1.0)

	// Training defaults
	v.SetDefault("training.episodes", 1000)
	v.SetDefault("training.max_steps", 0)
	v.SetDefault("training.seed", 0)
	v.SetDefault("training.progress_every", 100)

	// Evaluation defaults
	v.SetDefault("eval.games", 100)
	v.SetDefault("eval.max_turns", 1000)
	v.SetDefault("eval.seed", 0)

	// Play defaults
	v.SetDefault("play.learn", true)

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
}

// Init initializes the configuration
func Init(configPath string) error {
	v = viper.New()

	// Set defaults before loading any config
	setViperDefaults(v)

	// Set config file
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		// Default config locations
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		v.AddConfigPath("/etc/mancala-rl")
	}

	// Set environment variable prefix
	v.SetEnvPrefix("MRL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		// If we have a specific config path and it doesn't exist, that's ok - use defaults
		if configPath != "" {
			// Specific file requested but not found - that's ok, use defaults
		} else if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// For default locations, only ignore ConfigFileNotFoundError
			return fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found; use defaults
	}

	// Unmarshal into config struct
	cfg = &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return fmt.Errorf("unable to decode config into struct: %w", err)
	}

	// Validate configuration
	if err := Validate(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	return nil
}

// Get returns the global config instance
func Get() *Config {
	if cfg == nil {
		// Initialize with defaults if not already initialized
		if err := Init(""); err != nil {
			panic("failed to initialize config with defaults: " + err.Error())
		}
	}
	return cfg
}

// GetViper returns the viper instance for advanced usage
func GetViper() *viper.Viper {
	if v == nil {
		panic("config not initialized - call Init() first")
	}
	return v
}

// LoadEnvironmentConfig loads environment-specific config overlay
func LoadEnvironmentConfig(env string) error {
	if env == "" {
		return nil
	}

	envFile := fmt.Sprintf("config.%s.yaml", env)

	// Try to find environment-specific config
	v.SetConfigFile(envFile)
	if err := v.MergeInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("error merging environment config %s: %w", envFile, err)
		}
	}

	// Re-unmarshal with merged config
	if err := v.Unmarshal(cfg); err != nil {
		return fmt.Errorf("unable to decode merged config into struct: %w", err)
	}

	return nil
}

// Set allows runtime config updates
func Set(key string, value interface{}) {
	v.Set(key, value)
	// Re-unmarshal to update struct
	v.Unmarshal(cfg)
}

// GetString gets a string value from config
func GetString(key string) string {
	return v.GetString(key)
}

// GetInt gets an int value from config
func GetInt(key string) int {
	return v.GetInt(key)
}

// GetBool gets a bool value from config
func GetBool(key string) bool {
	return v.GetBool(key)
}

// GetFloat64 gets a float64 value from config
func GetFloat64(key string) float64 {
	return v.GetFloat64(key)
}

// ConfigFilePath returns the path of the loaded config file
func ConfigFilePath() string {
	return v.ConfigFileUsed()
}

// WatchConfig enables hot-reloading of config file
func WatchConfig(onChange func()) {
	v.WatchConfig()
	v.OnConfigChange(func(e fsnotify.Event) {
		// Re-unmarshal on change
		v.Unmarshal(cfg)
		if onChange != nil {
			onChange()
		}
	})
}

// Validate validates the configuration values
func Validate(c *Config) error {
	// Validate policy parameters
	if c.Policy.Path == "" {
		return fmt.Errorf("policy.path must not be empty")
	}
	if c.Policy.LearningRate <= 0 || c.Policy.LearningRate > 1 {
		return fmt.Errorf("policy.learning_rate must be in (0, 1]")
	}
	if c.Policy.Gamma < 0 || c.Policy.Gamma > 1 {
		return fmt.Errorf("policy.gamma must be between 0 and 1")
	}
	if c.Policy.MinEpsilon < 0 || c.Policy.MinEpsilon > 1 {
		return fmt.Errorf("policy.min_epsilon must be between 0 and 1")
	}
	if c.Policy.MaxEpsilon < 0 || c.Policy.MaxEpsilon > 1 {
		return fmt.Errorf("policy.max_epsilon must be between 0 and 1")
	}
	if c.Policy.MinEpsilon > c.Policy.MaxEpsilon {
		return fmt.Errorf("policy.min_epsilon must not exceed policy.max_epsilon")
	}
	if c.Policy.DecayRate < 0 {
		return fmt.Errorf("policy.decay_rate must be non-negative")
	}
	if c.Policy.Exploration != "epsilon" && c.Policy.Exploration != "softmax" {
		return fmt.Errorf("policy.exploration must be \"epsilon\" or \"softmax\"")
	}
	if c.Policy.Temperature <= 0 {
		return fmt.Errorf("policy.temperature must be positive")
	}

	// Validate training settings
	if c.Training.Episodes <= 0 {
		return fmt.Errorf("training.episodes must be positive")
	}
	if c.Training.MaxSteps < 0 {
		return fmt.Errorf("training.max_steps must be non-negative")
	}
	if c.Training.ProgressEvery <= 0 {
		return fmt.Errorf("training.progress_every must be positive")
	}

	// Validate evaluation settings
	if c.Eval.Games <= 0 {
		return fmt.Errorf("eval.games must be positive")
	}
	if c.Eval.MaxTurns <= 0 {
		return fmt.Errorf("eval.max_turns must be positive")
	}

	return nil
}
