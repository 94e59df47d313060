package rwc

import (
	"fmt"
	"io"
	"math"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

// Config manages run configuration using Viper
type Config struct {
	v *viper.Viper
}

// NewConfig creates a new configuration with defaults.
// Every key can be overridden by an RWC_ environment variable, e.g. RWC_ALGORITHM_MAX_STEPS.
func NewConfig() *Config {
	v := viper.New()

	// Algorithm parameters
	v.SetDefault("algorithm.percent", 1.0)
	v.SetDefault("algorithm.simulations", 100)
	v.SetDefault("algorithm.max_steps", DefaultMaxSteps)
	v.SetDefault("algorithm.random_seed", time.Now().UnixNano())
	v.SetDefault("algorithm.timeout", time.Duration(0))

	// Performance parameters
	v.SetDefault("performance.num_workers", runtime.NumCPU())

	// Logging parameters
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.enable_progress", false)

	// HTTP server parameters
	v.SetDefault("server.address", ":8080")
	v.SetDefault("server.read_timeout", 30*time.Second)
	v.SetDefault("server.write_timeout", 5*time.Minute)
	v.SetDefault("server.max_simulations", 100_000)

	v.SetEnvPrefix("rwc")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return &Config{v: v}
}

// LoadFromFile loads configuration from file
func (c *Config) LoadFromFile(path string) error {
	c.v.SetConfigFile(path)
	if err := c.v.ReadInConfig(); err != nil {
		return fmt.Errorf("failed to read config %s: %w", path, err)
	}
	return nil
}

// Getters for algorithm parameters
func (c *Config) Percent() float64       { return c.v.GetFloat64("algorithm.percent") }
func (c *Config) Simulations() int       { return c.v.GetInt("algorithm.simulations") }
func (c *Config) MaxSteps() int          { return c.v.GetInt("algorithm.max_steps") }
func (c *Config) RandomSeed() int64      { return c.v.GetInt64("algorithm.random_seed") }
func (c *Config) Timeout() time.Duration { return c.v.GetDuration("algorithm.timeout") }

func (c *Config) NumWorkers() int { return c.v.GetInt("performance.num_workers") }

func (c *Config) LogLevel() string     { return c.v.GetString("logging.level") }
func (c *Config) EnableProgress() bool { return c.v.GetBool("logging.enable_progress") }

func (c *Config) ServerAddress() string             { return c.v.GetString("server.address") }
func (c *Config) ServerReadTimeout() time.Duration  { return c.v.GetDuration("server.read_timeout") }
func (c *Config) ServerWriteTimeout() time.Duration { return c.v.GetDuration("server.write_timeout") }
func (c *Config) ServerMaxSimulations() int         { return c.v.GetInt("server.max_simulations") }

// Set allows dynamic configuration changes
func (c *Config) Set(key string, value interface{}) {
	c.v.Set(key, value)
}

// Validate checks the algorithm parameters before any work is scheduled
func (c *Config) Validate() error {
	percent := c.Percent()
	if math.IsNaN(percent) || percent < 0 || percent > 1 {
		return fmt.Errorf("%w: percent must be in [0,1], got %v", ErrInvalidParameter, percent)
	}
	if c.Simulations() <= 0 {
		return fmt.Errorf("%w: simulations must be positive, got %d", ErrInvalidParameter, c.Simulations())
	}
	if c.MaxSteps() <= 0 {
		return fmt.Errorf("%w: max_steps must be positive, got %d", ErrInvalidParameter, c.MaxSteps())
	}
	if c.NumWorkers() < 0 {
		return fmt.Errorf("%w: num_workers must not be negative, got %d", ErrInvalidParameter, c.NumWorkers())
	}
	if c.ServerMaxSimulations() <= 0 {
		return fmt.Errorf("%w: server.max_simulations must be positive, got %d", ErrInvalidParameter, c.ServerMaxSimulations())
	}
	if c.Timeout() < 0 {
		return fmt.Errorf("%w: timeout must not be negative, got %s", ErrInvalidParameter, c.Timeout())
	}
	return nil
}

// Options converts the configuration into Compute options
func (c *Config) Options() []Option {
	opts := []Option{
		WithMaxWorkers(c.NumWorkers()),
		WithSeed(c.RandomSeed()),
		WithMaxSteps(c.MaxSteps()),
		WithTimeout(c.Timeout()),
		WithProgressLogging(c.EnableProgress()),
	}
	return opts
}

// CreateLogger creates a zerolog logger based on config
func (c *Config) CreateLogger() zerolog.Logger {
	return c.CreateLoggerTo(os.Stderr)
}

// CreateLoggerTo creates a console logger writing to out
func (c *Config) CreateLoggerTo(out io.Writer) zerolog.Logger {
	level, err := zerolog.ParseLevel(c.LogLevel())
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}

	return zerolog.New(zerolog.ConsoleWriter{
		Out:        out,
		TimeFormat: "15:04:05",
	}).Level(level).With().Timestamp().Str("service", "rwc").Logger()
}
