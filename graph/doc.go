// Package graph edits class diagrams.
//
// The package has two layers. The pure functions (Compose, Aggregate,
// Decompose, Deaggregate, ApplyRelationship, RemoveRelationship and
// RemoveEntity) take a diagram and return a new one without touching
// their input. The Editor owns a diagram, serializes every mutation with
// a single mutex and renders the code again after each one.
//
// # Connection State Machine
//
// Relationships are created in two steps:
//
//	Idle ──Connect──▶ PendingSelection ──Select(kind)──▶ Idle
//	                         │
//	                         └──────Cancel──────▶ Idle
//
// Connect swaps the endpoints when the connection was drawn from a top
// anchor or into a bottom anchor, so the source is always the dependent
// entity. Select evaluates the rules.Policy of the editor; a legal
// relationship is appended together with the members it synthesizes:
//
//   - Composition: a private property named and typed after the target,
//     and a constructor parameter of the target type
//   - Aggregation: the private property only
//
// # Deletion
//
// DeleteRelationship reconciles the synthesized members before removing
// the relationship. DeleteEntity does the same for every relationship
// pointing at the deleted entity from a surviving one, then prunes the
// incident relationships.
//
// # Usage
//
//	ed, err := graph.New(graph.WithDiagram(d))
//	if err != nil {
//	    return err
//	}
//	if err := ed.Connect(graph.ConnectEvent{SourceID: car, TargetID: engine}); err != nil {
//	    return err
//	}
//	if _, err := ed.Select(model.Composition); err != nil {
//	    // rejected: the editor is idle again
//	}
//	fmt.Println(ed.Code())
package graph
