// Package config loads settings for the tasks API and the tasklist web
// frontend from the environment, optionally layered over a YAML file
// named by CONFIG_PATH.
package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/ilyakaznacheev/cleanenv"
)

// Server configures the tasks API binary.
type Server struct {
	Addr     string `yaml:"addr" env:"TASKS_ADDR" env-default:":2222" validate:"required"`
	LogLevel string `yaml:"log_level" env:"LOG_LEVEL" env-default:"info" validate:"oneof=debug info warn warning error"`

	Store     Store     `yaml:"store"`
	RateLimit RateLimit `yaml:"rate_limit"`

	// RequestTimeout of zero leaves handlers unbounded.
	RequestTimeout  time.Duration `yaml:"request_timeout" env:"REQUEST_TIMEOUT" env-default:"0s" validate:"gte=0"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SHUTDOWN_TIMEOUT" env-default:"5s" validate:"gt=0"`
	TracingExporter string        `yaml:"tracing_exporter" env:"TRACING_EXPORTER" env-default:"none" validate:"oneof=none stdout otlp"`
}

type Store struct {
	Driver    string `yaml:"driver" env:"STORE_DRIVER" env-default:"memory" validate:"oneof=memory sqlite"`
	SQLiteDSN string `yaml:"sqlite_dsn" env:"SQLITE_DSN" env-default:"file:tasks?mode=memory&cache=shared" validate:"required_if=Driver sqlite,sqlite_memory"`
}

// RateLimit is disabled when RPS is zero.
type RateLimit struct {
	RPS   float64 `yaml:"rps" env:"RATE_LIMIT_RPS" env-default:"0" validate:"gte=0"`
	Burst int     `yaml:"burst" env:"RATE_LIMIT_BURST" env-default:"10" validate:"gte=1"`
}

// Web configures the tasklist frontend binary.
type Web struct {
	Addr            string        `yaml:"addr" env:"WEB_ADDR" env-default:":3000" validate:"required"`
	APIURL          string        `yaml:"api_url" env:"TASKS_API_URL" env-default:"http://localhost:2222" validate:"required,url"`
	LogLevel        string        `yaml:"log_level" env:"LOG_LEVEL" env-default:"info" validate:"oneof=debug info warn warning error"`
	MaxSessions     int           `yaml:"max_sessions" env:"MAX_SESSIONS" env-default:"1024" validate:"gte=1"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SHUTDOWN_TIMEOUT" env-default:"5s" validate:"gt=0"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("sqlite_memory", func(fl validator.FieldLevel) bool {
		return isMemoryDSN(fl.Field().String())
	})
	return v
}

// isMemoryDSN accepts only DSNs whose database disappears with the
// process: ":memory:" or a file: URI with mode=memory. Emptiness is left
// to required_if.
func isMemoryDSN(dsn string) bool {
	if dsn == "" || dsn == ":memory:" {
		return true
	}
	if !strings.HasPrefix(dsn, "file:") {
		return false
	}
	_, query, _ := strings.Cut(dsn, "?")
	q, err := url.ParseQuery(query)
	return err == nil && q.Get("mode") == "memory"
}

// LoadServer reads and validates the API configuration.
func LoadServer() (Server, error) {
	var cfg Server
	if err := load(&cfg); err != nil {
		return Server{}, err
	}
	return cfg, nil
}

// LoadWeb reads and validates the frontend configuration.
func LoadWeb() (Web, error) {
	var cfg Web
	if err := load(&cfg); err != nil {
		return Web{}, err
	}
	return cfg, nil
}

func load(cfg any) error {
	var err error
	if path := os.Getenv("CONFIG_PATH"); path != "" {
		err = cleanenv.ReadConfig(path, cfg)
	} else {
		err = cleanenv.ReadEnv(cfg)
	}
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}
