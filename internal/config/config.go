// Package config loads the settings of the classflow command from a
// classflow.yaml file and CLASSFLOW_* environment variables.
package config

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"

	"github.com/syssam/classflow/compiler/gen"
	"github.com/syssam/classflow/compiler/gen/golang"
	"github.com/syssam/classflow/compiler/gen/java"
)

// EnvPrefix prefixes the environment variables overriding file settings,
// e.g. CLASSFLOW_RUNNER_URL for runner.url.
const EnvPrefix = "CLASSFLOW"

// Name is the base name of the config file looked up in the working
// directory when no path is given.
const Name = "classflow"

type (
	// Config holds all settings of the command.
	Config struct {
		Gen    GenConfig    `mapstructure:"gen"`
		Runner RunnerConfig `mapstructure:"runner"`
		Log    LogConfig    `mapstructure:"log"`
	}

	// GenConfig configures code generation.
	GenConfig struct {
		Dialect string `mapstructure:"dialect"`
		Package string `mapstructure:"package"`
		Header  string `mapstructure:"header"`
		Target  string `mapstructure:"target"`
		Workers int    `mapstructure:"workers"`
	}

	// RunnerConfig configures the remote execution service.
	RunnerConfig struct {
		URL     string        `mapstructure:"url"`
		Timeout time.Duration `mapstructure:"timeout"`
	}

	// LogConfig configures logging. File enables a rotating JSON log next
	// to the console output; sizes are in megabytes and ages in days.
	LogConfig struct {
		Level      string `mapstructure:"level"`
		File       string `mapstructure:"file"`
		MaxSize    int    `mapstructure:"max_size"`
		MaxBackups int    `mapstructure:"max_backups"`
		MaxAge     int    `mapstructure:"max_age"`
		Compress   bool   `mapstructure:"compress"`
		Dev        bool   `mapstructure:"dev"`
	}
)

var defaults = map[string]any{
	"gen.dialect":     "java",
	"gen.package":     "model",
	"gen.header":      "",
	"gen.target":      "",
	"gen.workers":     0,
	"runner.url":      "http://localhost:8080",
	"runner.timeout":  30 * time.Second,
	"log.level":       "info",
	"log.file":        "",
	"log.max_size":    10,
	"log.max_backups": 3,
	"log.max_age":     7,
	"log.compress":    false,
	"log.dev":         false,
}

// NewDialect returns the code generation dialect named by the config.
func (c GenConfig) NewDialect() (gen.Dialect, error) {
	switch strings.ToLower(c.Dialect) {
	case "", "java":
		return java.NewDialect(), nil
	case "go", "golang":
		return golang.NewDialect(), nil
	}
	return nil, fmt.Errorf("config: unknown dialect %q", c.Dialect)
}

// Options returns the gen options matching the config.
func (c GenConfig) Options() ([]gen.Option, error) {
	d, err := c.NewDialect()
	if err != nil {
		return nil, err
	}
	opts := []gen.Option{gen.WithDialect(d), gen.WithHeader(c.Header)}
	if c.Package != "" {
		opts = append(opts, gen.WithPackage(c.Package))
	}
	if c.Target != "" {
		opts = append(opts, gen.WithTarget(c.Target))
	}
	if c.Workers > 0 {
		opts = append(opts, gen.WithWorkers(c.Workers))
	}
	return opts, nil
}

// Loader reads the config and keeps it current while the file changes.
type Loader struct {
	v    *viper.Viper
	mu   sync.RWMutex
	conf Config
}

// Load reads the config file at path, or classflow.yaml in the working
// directory when path is empty. A missing default file is not an error.
func Load(path string) (*Loader, error) {
	v := viper.New()
	for k, val := range defaults {
		v.SetDefault(k, val)
	}
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(Name)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("config: read: %w", err)
		}
	}
	l := &Loader{v: v}
	if err := l.reload(); err != nil {
		return nil, err
	}
	return l, nil
}

func (l *Loader) reload() error {
	var c Config
	if err := l.v.Unmarshal(&c); err != nil {
		return fmt.Errorf("config: unmarshal: %w", err)
	}
	l.mu.Lock()
	l.conf = c
	l.mu.Unlock()
	return nil
}

// Config returns the current settings.
func (l *Loader) Config() Config {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.conf
}

// File returns the path of the config file in use, or "".
func (l *Loader) File() string {
	return l.v.ConfigFileUsed()
}

// Watch reloads the config whenever its file changes and calls fn with the
// new settings. fn gets the error instead when the file cannot be decoded;
// the previous settings stay in effect then. It is a no-op without a file.
func (l *Loader) Watch(fn func(Config, error)) {
	if l.File() == "" {
		return
	}
	l.v.OnConfigChange(func(e fsnotify.Event) {
		if !e.Has(fsnotify.Write) && !e.Has(fsnotify.Create) {
			return
		}
		if err := l.reload(); err != nil {
			fn(Config{}, err)
			return
		}
		fn(l.Config(), nil)
	})
	l.v.WatchConfig()
}

// Set overrides a setting, e.g. from a command line flag.
func (l *Loader) Set(key string, value any) error {
	l.v.Set(key, value)
	return l.reload()
}
