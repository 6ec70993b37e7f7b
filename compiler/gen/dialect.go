package gen

// TypeGenerator renders a single entity.
// It is called once per entity in the graph.
type TypeGenerator interface {
	// GenType returns the source block of the type. The result is what
	// is cached on the entity and written to its own file.
	GenType(t *Type) (string, error)
}

// GraphGenerator renders the aggregate source of a graph.
type GraphGenerator interface {
	// GenGraph returns the source of all types in entity order.
	GenGraph(g *Graph) (string, error)
}

// Dialect defines the interface for language-specific code generation.
//
// Architecture:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│                Generate / Writer                            │
//	│  (Orchestration: graph building, parallel file writing)     │
//	└─────────────────────────┬───────────────────────────────────┘
//	                          │ uses
//	                          ▼
//	┌─────────────────────────────────────────────────────────────┐
//	│                       Dialect                               │
//	│  (Interface: defines what each language must implement)     │
//	└─────────────────────────┬───────────────────────────────────┘
//	                          │ implemented by
//	                  ┌───────┴───────┐
//	                  ▼               ▼
//	           ┌─────────────┐ ┌─────────────┐
//	           │ java        │ │ golang      │
//	           │ (gen/java)  │ │ (gen/golang)│
//	           └─────────────┘ └─────────────┘
//
// Usage:
//
//	import "github.com/syssam/classflow/compiler/gen/java"
//
//	cfg := gen.MustNewConfig(gen.WithDialect(java.NewDialect()))
//	out, err := gen.Generate(cfg, entities, relationships)
type Dialect interface {
	// Name returns the dialect name (e.g., "java", "golang").
	Name() string
	// Ext returns the file extension of generated files, with the dot.
	Ext() string
	TypeGenerator
	GraphGenerator
}
