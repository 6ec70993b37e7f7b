package model

import (
	"slices"

	"github.com/syssam/classflow"
)

type (
	// ClassEntity is a diagram node: a class, interface or enum together
	// with its ordered members.
	ClassEntity struct {
		// ID is stable and unique within a diagram.
		ID   string `json:"id" yaml:"id"`
		Name string `json:"name" yaml:"name"`
		Kind Kind   `json:"type" yaml:"type"`
		// Properties and Methods keep insertion order; the order is
		// significant for generated code and constructor matching.
		Properties []Property `json:"properties" yaml:"properties"`
		Methods    []Method   `json:"methods" yaml:"methods"`
		// Position is owned by the presentation layer.
		Position Position `json:"position" yaml:"position"`
		// GeneratedCode caches the last rendered block for this entity.
		// It is derived and never authoritative.
		GeneratedCode string `json:"code,omitempty" yaml:"code,omitempty"`
	}

	// Property is a field of an entity.
	Property struct {
		Name       string     `json:"name" yaml:"name"`
		Type       string     `json:"type" yaml:"type"`
		Visibility Visibility `json:"visibility" yaml:"visibility"`
		IsStatic   bool       `json:"isStatic" yaml:"isStatic"`
		IsFinal    bool       `json:"isFinal" yaml:"isFinal"`
		// InitialValue is rendered as an initializer when non-empty.
		InitialValue string `json:"initialValue,omitempty" yaml:"initialValue,omitempty"`
	}

	// Method is an operation of an entity. A method named after its owner
	// is the owner's constructor.
	Method struct {
		Name       string      `json:"name" yaml:"name"`
		ReturnType string      `json:"returnType" yaml:"returnType"`
		Parameters []Parameter `json:"parameters" yaml:"parameters"`
		Visibility Visibility  `json:"visibility" yaml:"visibility"`
		IsStatic   bool        `json:"isStatic" yaml:"isStatic"`
		IsFinal    bool        `json:"isFinal" yaml:"isFinal"`
		// InsideCode is substituted verbatim as the body when non-empty.
		InsideCode string `json:"insideCode,omitempty" yaml:"insideCode,omitempty"`
	}

	// Parameter is a method parameter.
	Parameter struct {
		Name string `json:"name" yaml:"name"`
		Type string `json:"type" yaml:"type"`
	}

	// Position is a layout coordinate.
	Position struct {
		X float64 `json:"x" yaml:"x"`
		Y float64 `json:"y" yaml:"y"`
	}
)

// Clone returns a deep copy of the method.
func (m Method) Clone() Method {
	m.Parameters = slices.Clone(m.Parameters)
	return m
}

// IsConstructorOf reports whether m is named after the entity name.
func (m Method) IsConstructorOf(name string) bool {
	return m.Name == name
}

// Clone returns a deep copy of the entity. Entities returned by the
// operations below never share backing arrays with their receiver.
func (e ClassEntity) Clone() ClassEntity {
	e.Properties = slices.Clone(e.Properties)
	if e.Methods != nil {
		methods := make([]Method, len(e.Methods))
		for i := range e.Methods {
			methods[i] = e.Methods[i].Clone()
		}
		e.Methods = methods
	}
	return e
}

// Constructor returns the index of the first method named after the
// entity, or false if there is none.
func (e ClassEntity) Constructor() (int, bool) {
	for i, m := range e.Methods {
		if m.IsConstructorOf(e.Name) {
			return i, true
		}
	}
	return -1, false
}

// Rename returns a copy of the entity with the given name.
func (e ClassEntity) Rename(name string) ClassEntity {
	c := e.Clone()
	c.Name = name
	return c
}

// WithPosition returns a copy of the entity moved to p.
func (e ClassEntity) WithPosition(p Position) ClassEntity {
	c := e.Clone()
	c.Position = p
	return c
}

// AddProperty returns a copy of the entity with p appended.
func (e ClassEntity) AddProperty(p Property) ClassEntity {
	c := e.Clone()
	c.Properties = append(c.Properties, p)
	return c
}

// UpdateProperty returns a copy of the entity with the property at i replaced.
func (e ClassEntity) UpdateProperty(i int, p Property) (ClassEntity, error) {
	if err := e.checkIndex("property", i, len(e.Properties)); err != nil {
		return e, err
	}
	c := e.Clone()
	c.Properties[i] = p
	return c, nil
}

// RemoveProperty returns a copy of the entity without the property at i.
func (e ClassEntity) RemoveProperty(i int) (ClassEntity, error) {
	if err := e.checkIndex("property", i, len(e.Properties)); err != nil {
		return e, err
	}
	c := e.Clone()
	c.Properties = slices.Delete(c.Properties, i, i+1)
	return c, nil
}

// MoveProperty returns a copy of the entity with the property at from
// moved to position to.
func (e ClassEntity) MoveProperty(from, to int) (ClassEntity, error) {
	if err := e.checkIndex("property", from, len(e.Properties)); err != nil {
		return e, err
	}
	if err := e.checkIndex("property", to, len(e.Properties)); err != nil {
		return e, err
	}
	c := e.Clone()
	p := c.Properties[from]
	c.Properties = slices.Insert(slices.Delete(c.Properties, from, from+1), to, p)
	return c, nil
}

// AddMethod returns a copy of the entity with m appended.
func (e ClassEntity) AddMethod(m Method) ClassEntity {
	c := e.Clone()
	c.Methods = append(c.Methods, m.Clone())
	return c
}

// UpdateMethod returns a copy of the entity with the method at i replaced.
func (e ClassEntity) UpdateMethod(i int, m Method) (ClassEntity, error) {
	if err := e.checkIndex("method", i, len(e.Methods)); err != nil {
		return e, err
	}
	c := e.Clone()
	c.Methods[i] = m.Clone()
	return c, nil
}

// RemoveMethod returns a copy of the entity without the method at i.
func (e ClassEntity) RemoveMethod(i int) (ClassEntity, error) {
	if err := e.checkIndex("method", i, len(e.Methods)); err != nil {
		return e, err
	}
	c := e.Clone()
	c.Methods = slices.Delete(c.Methods, i, i+1)
	return c, nil
}

// MoveMethod returns a copy of the entity with the method at from moved
// to position to.
func (e ClassEntity) MoveMethod(from, to int) (ClassEntity, error) {
	if err := e.checkIndex("method", from, len(e.Methods)); err != nil {
		return e, err
	}
	if err := e.checkIndex("method", to, len(e.Methods)); err != nil {
		return e, err
	}
	c := e.Clone()
	m := c.Methods[from]
	c.Methods = slices.Insert(slices.Delete(c.Methods, from, from+1), to, m)
	return c, nil
}

func (e ClassEntity) checkIndex(member string, i, n int) error {
	if i < 0 || i >= n {
		label := e.ID
		if label == "" {
			label = e.Name
		}
		return classflow.NewInvalidIndexError(label, member, i, n)
	}
	return nil
}
