package graph

import (
	"errors"
	"log/slog"

	"github.com/syssam/classflow/compiler/gen"
	"github.com/syssam/classflow/model"
	"github.com/syssam/classflow/rules"
)

// Option configures an Editor.
type Option func(*Editor) error

// WithDiagram sets the initial state of the editor. The diagram must be
// structurally valid.
func WithDiagram(d model.Diagram) Option {
	return func(e *Editor) error {
		if err := d.Validate(); err != nil {
			return err
		}
		e.diagram = d.Clone()
		return nil
	}
}

// WithIDGenerator sets the generator of fresh entity ids.
func WithIDGenerator(ids model.IDGenerator) Option {
	return func(e *Editor) error {
		if ids == nil {
			return errors.New("graph: id generator cannot be nil")
		}
		e.ids = ids
		return nil
	}
}

// WithPolicy sets the policy deciding which relationships are legal.
func WithPolicy(p rules.Policy) Option {
	return func(e *Editor) error {
		if len(p) == 0 {
			return errors.New("graph: policy cannot be empty")
		}
		e.policy = p
		return nil
	}
}

// WithDialect sets the dialect the editor renders code with.
func WithDialect(d gen.Dialect) Option {
	return func(e *Editor) error {
		return e.gen.Apply(gen.WithDialect(d))
	}
}

// WithGenOptions applies code generation options, such as a header.
func WithGenOptions(opts ...gen.Option) Option {
	return func(e *Editor) error {
		return e.gen.Apply(opts...)
	}
}

// WithLogger sets the logger of the editor.
func WithLogger(l *slog.Logger) Option {
	return func(e *Editor) error {
		if l == nil {
			return errors.New("graph: logger cannot be nil")
		}
		e.log = l
		return nil
	}
}
