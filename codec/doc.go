// Package codec reads and writes the persisted shape of a class diagram.
//
// Three formats are supported, selected by file extension:
//
//	.json           JSON
//	.yaml, .yml     YAML
//	.msgpack, .mp   MessagePack
//
// All formats use the same field names, the json names of package model.
// Decoded diagrams are validated before they are returned.
package codec
