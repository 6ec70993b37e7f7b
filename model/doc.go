// Package model defines the class diagram data model: entities (classes,
// interfaces and enums) with their ordered properties and methods, typed
// relationships between them, and the canonical identity of a relationship.
//
// All entity operations are pure. They return a new value and never alias
// the receiver's member slices, so a snapshot handed to a renderer cannot be
// changed by a later edit:
//
//	car := model.NewEntity("c1", model.KindClass)
//	car = car.Rename("Car")
//	car, err := car.UpdateProperty(0, model.Property{Name: "vin", Type: "String"})
//	if classflow.IsInvalidIndex(err) {
//	    // contract violation by the caller
//	}
//
// Relationship identity is the triple (source, target, kind):
//
//	k := model.Key{Source: "c1", Target: "e1", Kind: model.Composition}
//	k.ID()        // "c1-e1-composition"
//	k.Reverse()   // e1 -> c1
package model
