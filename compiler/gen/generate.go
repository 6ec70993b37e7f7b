package gen

import (
	"github.com/syssam/classflow/model"
)

type (
	// Output is the rendered source of a diagram.
	Output struct {
		// Dialect is the name of the dialect that rendered the output.
		Dialect string
		// Files holds one rendered unit per entity, in entity order.
		Files []File
		// Source is the aggregate source text of all entities.
		Source string
	}

	// File is the rendered unit of a single entity.
	File struct {
		EntityID string
		// Name is the file name the Writer uses for the unit.
		Name   string
		Source string
	}
)

// Generate renders the entities and relationships with the configured
// dialect. It is deterministic: the same input yields byte-identical
// output.
func Generate(c *Config, entities []model.ClassEntity, rels []model.Relationship) (*Output, error) {
	if c == nil || c.Dialect == nil {
		return nil, NewConfigError("Dialect", nil, "no dialect set: use WithDialect")
	}
	g, err := NewGraph(c, entities, rels)
	if err != nil {
		return nil, err
	}
	out := &Output{
		Dialect: c.Dialect.Name(),
		Files:   make([]File, 0, len(g.Nodes)),
	}
	for _, t := range g.Nodes {
		name := t.FileName(c.Dialect.Ext())
		src, err := c.Dialect.GenType(t)
		if err != nil {
			return nil, NewGenerationError(PhaseEntity, name, err)
		}
		out.Files = append(out.Files, File{EntityID: t.ID, Name: name, Source: src})
	}
	if out.Source, err = c.Dialect.GenGraph(g); err != nil {
		return nil, NewGenerationError(PhaseSource, "", err)
	}
	return out, nil
}

// File returns the rendered unit of the given entity.
func (o *Output) File(id string) (File, bool) {
	for _, f := range o.Files {
		if f.EntityID == id {
			return f, true
		}
	}
	return File{}, false
}
