package gen

import (
	"strings"
	"unicode"

	"github.com/syssam/classflow/model"
)

// The following types and their exported methods are used by the
// dialects to render the assets.
type (
	// Graph holds the entities of a diagram in rendering order together
	// with the relationships resolved between them.
	Graph struct {
		*Config
		// Nodes are the types in entity order.
		Nodes []*Type
		// Edges are the relationships whose endpoints both resolve.
		Edges []*Edge
		nodes map[string]*Type
	}

	// Type represents one entity in the graph and the supertype lists
	// collected from its outgoing relationships.
	Type struct {
		*Config
		model.ClassEntity
		// Extends holds the names of Implementation targets.
		Extends []string
		// Implements holds the names of Inheritance targets.
		Implements []string
		// Edges holds the outgoing relationships of the entity.
		Edges []*Edge
		graph *Graph
	}

	// Edge is a resolved relationship between two types.
	Edge struct {
		model.Relationship
		From *Type
		To   *Type
	}
)

// NewGraph creates a graph for the given entities and relationships.
// Relationships referencing unknown entities are ignored.
func NewGraph(c *Config, entities []model.ClassEntity, rels []model.Relationship) (*Graph, error) {
	if c == nil {
		return nil, NewConfigError("Config", nil, "config cannot be nil")
	}
	g := &Graph{
		Config: c,
		Nodes:  make([]*Type, 0, len(entities)),
		nodes:  make(map[string]*Type, len(entities)),
	}
	for _, e := range entities {
		t := &Type{Config: c, ClassEntity: e.Clone(), graph: g}
		g.Nodes = append(g.Nodes, t)
		if _, ok := g.nodes[e.ID]; !ok {
			g.nodes[e.ID] = t
		}
	}
	for _, r := range rels {
		from, to := g.nodes[r.SourceID], g.nodes[r.TargetID]
		if from == nil || to == nil {
			continue
		}
		e := &Edge{Relationship: r, From: from, To: to}
		g.Edges = append(g.Edges, e)
		from.Edges = append(from.Edges, e)
		switch r.Kind {
		case model.Implementation:
			from.Extends = append(from.Extends, to.Name)
		case model.Inheritance:
			from.Implements = append(from.Implements, to.Name)
		}
	}
	return g, nil
}

// Type returns the type of the entity with the given id.
func (g *Graph) Type(id string) (*Type, bool) {
	t, ok := g.nodes[id]
	return t, ok
}

// Named returns the first type with the given entity name.
func (g *Graph) Named(name string) (*Type, bool) {
	for _, t := range g.Nodes {
		if t.Name == name {
			return t, true
		}
	}
	return nil, false
}

// Graph returns the graph the type belongs to.
func (t *Type) Graph() *Graph {
	return t.graph
}

// Keyword returns the declaration keyword of the type.
func (t *Type) Keyword() string {
	return t.Kind.Keyword()
}

// IsConstructor reports whether m is the constructor of the type.
func (t *Type) IsConstructor(m model.Method) bool {
	return m.IsConstructorOf(t.Name)
}

// Constructor returns the constructor of the type, if any.
func (t *Type) Constructor() (model.Method, bool) {
	if i, ok := t.ClassEntity.Constructor(); ok {
		return t.Methods[i], true
	}
	return model.Method{}, false
}

// Supertypes returns the extends list followed by the implements list.
func (t *Type) Supertypes() []string {
	out := make([]string, 0, len(t.Extends)+len(t.Implements))
	out = append(out, t.Extends...)
	return append(out, t.Implements...)
}

// FileName returns the snake-cased file name of the type with the given
// extension. Characters other than letters, digits and underscores are
// replaced so the name never leaves the target directory.
func (t *Type) FileName(ext string) string {
	name := t.Name
	if name == "" {
		name = t.ID
	}
	return strings.Map(func(r rune) rune {
		if r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r) {
			return r
		}
		return '_'
	}, Snake(name)) + ext
}
