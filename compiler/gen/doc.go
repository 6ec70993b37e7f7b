// Package gen renders class diagrams as source code.
//
// The package turns the entities and relationships of a diagram into
// per-entity source blocks and an aggregate source text, and writes the
// blocks to disk.
//
// # Architecture
//
// The code generation pipeline follows this flow:
//
//	Diagram (model.ClassEntity, model.Relationship)
//	        ↓
//	   Graph (types with resolved supertype lists)
//	        ↓
//	   Dialect (java, golang)
//	        ↓
//	   Output (one File per entity + aggregate Source)
//	        ↓
//	   Writer (parallel file output)
//
// # Key Types
//
//   - Graph: Holds the Types of a diagram in entity order
//   - Type: An entity with its Extends and Implements lists
//   - Edge: A relationship whose endpoints both resolve
//   - Config: Dialect, package, header and writer settings
//   - Output: The rendered files and aggregate source
//
// Implementation relationships contribute the target to the source's
// Extends list and Inheritance relationships to its Implements list.
// The other kinds render nothing in the header; composition and
// aggregation show up through the members they synthesized.
//
// # Error Handling
//
//   - ConfigError: Configuration errors, matching ErrInvalidConfig
//   - GenerationError: Rendering and write errors, matching ErrGenerationFailed
//
// Example error handling:
//
//	out, err := gen.Generate(cfg, entities, relationships)
//	if err != nil {
//	    if gen.IsConfigError(err) {
//	        // Handle configuration error
//	    }
//	    return err
//	}
//
// # Configuration
//
// Configuration is done via the functional options pattern:
//
//	cfg, err := gen.NewConfig(
//	    gen.WithDialect(golang.NewDialect()),
//	    gen.WithPackage("shapes"),
//	    gen.WithTarget("./out"),
//	    gen.WithHeader("Code generated by classflow. DO NOT EDIT."),
//	)
//
// # Dialects
//
// The java dialect is the canonical one: its blocks are what the loader
// parses back into a diagram. The golang dialect uses Jennifer and maps
// classes to structs, interfaces to interface types and enums to string
// constants.
package gen
