// Package classflow models UML class diagrams and keeps them in sync with
// source code.
//
// A diagram is a set of entities (classes, interfaces and enums with
// ordered properties and methods) joined by typed relationships. Adding a
// Composition or Aggregation synthesizes members on the dependent entity
// and deleting it removes them again; code is regenerated after every
// change. The parser recovers a diagram from code in the same shape.
//
// The root package holds the error taxonomy shared by the subpackages:
//
//	model            entities, relationships and the diagram value
//	rules            legality of relationships as allow/deny rule chains
//	graph            the Editor and the pure synthesis functions
//	compiler/gen     code generation with java and golang dialects
//	compiler/load    recovery of a diagram from source text
//	codec            JSON, YAML and MessagePack persistence
//	runner           client of the remote code execution service
//	cmd/classflow    the command line tool
package classflow
