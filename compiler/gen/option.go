package gen

import (
	"errors"
	"go/token"
	"runtime"
)

// Config holds the configuration of a generation run.
type Config struct {
	// Dialect renders entities to source text.
	Dialect Dialect
	// Package is the package clause of generated files, for dialects
	// that have one.
	Package string
	// Target is the output directory of the Writer.
	Target string
	// Header is an optional comment placed at the top of each rendered file.
	Header string
	// Workers bounds the number of files written in parallel.
	Workers int
}

// Option configures code generation.
type Option func(*Config) error

// WithDialect sets the dialect used to render entities.
func WithDialect(d Dialect) Option {
	return func(c *Config) error {
		if d == nil {
			return NewConfigError("Dialect", nil, "dialect cannot be nil")
		}
		c.Dialect = d
		return nil
	}
}

// WithPackage sets the package name of generated files.
func WithPackage(pkg string) Option {
	return func(c *Config) error {
		if !token.IsIdentifier(pkg) {
			return NewConfigError("Package", pkg, "package must be a valid identifier")
		}
		c.Package = pkg
		return nil
	}
}

// WithTarget sets the output directory.
func WithTarget(dir string) Option {
	return func(c *Config) error {
		if dir == "" {
			return NewConfigError("Target", nil, "target directory cannot be empty")
		}
		c.Target = dir
		return nil
	}
}

// WithHeader sets the comment placed above each entity.
func WithHeader(header string) Option {
	return func(c *Config) error {
		c.Header = header
		return nil
	}
}

// WithWorkers sets the number of parallel file writers.
func WithWorkers(n int) Option {
	return func(c *Config) error {
		if n <= 0 {
			return NewConfigError("Workers", n, "workers must be positive")
		}
		c.Workers = n
		return nil
	}
}

// Apply applies opts in order and stops at the first rejected one.
func (c *Config) Apply(opts ...Option) error {
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return err
		}
	}
	return nil
}

// ApplyAll applies every option and joins the rejections.
func (c *Config) ApplyAll(opts ...Option) error {
	var errs []error
	for _, opt := range opts {
		if err := opt(c); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// NewConfig returns a Config with opts applied. The package
// defaults to "model" and the number of workers to GOMAXPROCS.
func NewConfig(opts ...Option) (*Config, error) {
	c := &Config{
		Package: "model",
		Workers: runtime.GOMAXPROCS(0),
	}
	if err := c.Apply(opts...); err != nil {
		return nil, err
	}
	return c, nil
}

// MustNewConfig is like NewConfig but panics on a rejected option.
func MustNewConfig(opts ...Option) *Config {
	c, err := NewConfig(opts...)
	if err != nil {
		panic(err)
	}
	return c
}
