package config

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"github.com/vango-dev/vnode/internal/errors"
	"github.com/vango-dev/vnode/pkg/render"
)

const (
	// ConfigFileName is the name of the configuration file.
	ConfigFileName = "vnode.json"

	// DefaultPort is the default inspector server port.
	DefaultPort = 7070

	// DefaultHost is the default inspector server host.
	DefaultHost = "localhost"

	// DefaultNamespace is the default Prometheus namespace.
	DefaultNamespace = "vnode"

	// DefaultLogLevel is the default log level.
	DefaultLogLevel = "info"
)

// Config represents the complete vnode.json configuration.
type Config struct {
	// KeyPolicy selects how multi-child lists are reconciled:
	// "positional", "strict" or "remount".
	KeyPolicy string `json:"keyPolicy,omitempty"`

	// Log contains logging configuration.
	Log LogConfig `json:"log,omitempty"`

	// Metrics contains Prometheus configuration.
	Metrics MetricsConfig `json:"metrics,omitempty"`

	// Serve contains inspector server configuration.
	Serve ServeConfig `json:"serve,omitempty"`

	// Snapshots contains snapshot store configuration.
	Snapshots SnapshotConfig `json:"snapshots,omitempty"`

	// configPath stores the path where the config was loaded from.
	configPath string
}

// LogConfig configures logging.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `json:"level,omitempty"`

	// JSON switches the handler from text to JSON output.
	JSON bool `json:"json,omitempty"`
}

// MetricsConfig configures the renderer's Prometheus metrics.
type MetricsConfig struct {
	// Namespace is the metrics namespace.
	Namespace string `json:"namespace,omitempty"`

	// Subsystem is the metrics subsystem.
	Subsystem string `json:"subsystem,omitempty"`
}

// ServeConfig configures the inspector server.
type ServeConfig struct {
	Host string `json:"host,omitempty"`
	Port int    `json:"port,omitempty"`
}

// SnapshotConfig configures where replay snapshots are written.
type SnapshotConfig struct {
	// Dir is a local directory for snapshots. Empty disables local snapshots.
	Dir string `json:"dir,omitempty"`

	// S3 enables snapshots to an S3 bucket when Bucket is set.
	S3 S3Config `json:"s3,omitempty"`
}

// S3Config configures the S3 snapshot store.
type S3Config struct {
	Bucket   string `json:"bucket,omitempty"`
	Region   string `json:"region,omitempty"`
	Endpoint string `json:"endpoint,omitempty"`
	Prefix   string `json:"prefix,omitempty"`
}

// New creates a new Config with default values.
func New() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load loads configuration from vnode.json in the specified directory.
func Load(dir string) (*Config, error) {
	return LoadFile(filepath.Join(dir, ConfigFileName))
}

// LoadFile loads configuration from a specific file path.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New(errors.CodeConfigNotFound).
				WithDetail("No " + ConfigFileName + " found in " + filepath.Dir(path))
		}
		return nil, errors.New(errors.CodeConfigInvalid).Wrap(err)
	}

	cfg := &Config{}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, errors.New(errors.CodeConfigInvalid).
			WithDetail("Failed to parse " + filepath.Base(path) + ": " + err.Error())
	}

	cfg.configPath = path
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the configuration to the path it was loaded from.
func (c *Config) Save() error {
	if c.configPath == "" {
		return errors.New(errors.CodeConfigInvalid).WithDetail("config has no path; use SaveTo")
	}
	return c.SaveTo(c.configPath)
}

// SaveTo writes the configuration to a specific path.
func (c *Config) SaveTo(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return err
	}
	c.configPath = path
	return nil
}

// Path returns the path to the config file.
func (c *Config) Path() string {
	return c.configPath
}

// applyDefaults fills in default values for empty fields.
func (c *Config) applyDefaults() {
	if c.KeyPolicy == "" {
		c.KeyPolicy = render.KeyPolicyPositional.String()
	}
	if c.Log.Level == "" {
		c.Log.Level = DefaultLogLevel
	}
	if c.Metrics.Namespace == "" {
		c.Metrics.Namespace = DefaultNamespace
	}
	if c.Serve.Host == "" {
		c.Serve.Host = DefaultHost
	}
	if c.Serve.Port == 0 {
		c.Serve.Port = DefaultPort
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if _, err := render.ParseKeyPolicy(c.KeyPolicy); err != nil {
		return errors.New(errors.CodeConfigInvalid).
			WithDetail("keyPolicy: " + err.Error())
	}
	if _, err := c.LogLevel(); err != nil {
		return errors.New(errors.CodeConfigInvalid).
			WithDetail("log.level: " + err.Error())
	}
	if c.Serve.Port < 0 || c.Serve.Port > 65535 {
		return errors.New(errors.CodeConfigInvalid).
			WithDetail("serve.port must be between 0 and 65535")
	}
	return nil
}

// Policy returns the parsed key policy.
func (c *Config) Policy() render.KeyPolicy {
	p, err := render.ParseKeyPolicy(c.KeyPolicy)
	if err != nil {
		return render.KeyPolicyPositional
	}
	return p
}

// LogLevel returns the parsed log level.
func (c *Config) LogLevel() (slog.Level, error) {
	var level slog.Level
	err := level.UnmarshalText([]byte(c.Log.Level))
	return level, err
}

// ServeAddress returns the address string for the inspector server.
func (c *Config) ServeAddress() string {
	return c.Serve.Host + ":" + strconv.Itoa(c.Serve.Port)
}

// Exists checks if a vnode.json exists in the given directory.
func Exists(dir string) bool {
	_, err := os.Stat(filepath.Join(dir, ConfigFileName))
	return err == nil
}

// LoadOrDefault loads vnode.json from dir, or returns defaults if none exists.
func LoadOrDefault(dir string) (*Config, error) {
	if !Exists(dir) {
		return New(), nil
	}
	return Load(dir)
}
