package models

import (
	"os"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
)

// ConfigFile is read from the working directory if it exists.
const ConfigFile = "daytimed.toml"

// Config holds the settings that are not given on the command line.
// The zero-configuration defaults reproduce the classic behaviour.
type Config struct {

	// Path of the append-only activity log, relative to the working directory
	LogFile string `toml:"log_file"`
	// Maximum number of pending connections queued by the listening socket
	Backlog int `toml:"backlog"`
	// Maximum number of bytes read from a client per command
	ReadBuffer int `toml:"read_buffer"`
	// If true, a read or write failure on any client connection stops the whole server.
	// If false, it only ends that client's session.
	SessionErrorsFatal bool `toml:"session_errors_fatal"`

	// URL of the APM Server receiving session traces, tracing is off if empty
	ApmServerUrl string `toml:"apm_server_url"`
	// Secret token of the APM Server
	ApmSecretToken string `toml:"apm_secret_token"`
	// Service name passed to the tracer
	ServiceName string `toml:"service_name"`
}

func DefaultConfig() Config {
	return Config{
		LogFile:            "ServerLog.txt",
		Backlog:            5,
		ReadBuffer:         254,
		SessionErrorsFatal: true,
		ServiceName:        "daytimed",
	}
}

// LoadConfig decodes the file at path over the defaults.
// A missing file is not an error.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return DefaultConfig(), errors.Wrapf(err, "reading %s", path)
	}
	return cfg, cfg.validate()
}

func (cfg Config) validate() error {
	if cfg.LogFile == "" {
		return errors.New("log_file can't be empty")
	}
	if cfg.Backlog <= 0 {
		return errors.Errorf("backlog must be positive, got %d", cfg.Backlog)
	}
	// anything shorter can't hold a command
	if cfg.ReadBuffer < 4 {
		return errors.Errorf("read_buffer must be at least 4 bytes, got %d", cfg.ReadBuffer)
	}
	return nil
}
