package model

import (
	"fmt"
	"slices"

	"github.com/syssam/classflow"
)

// Diagram is the persisted and initial shape of a class diagram: its
// entities, its relationships and the opaque entry-point text handed to
// the execution service.
type Diagram struct {
	Entities      []ClassEntity  `json:"entities" yaml:"entities"`
	Relationships []Relationship `json:"relationships" yaml:"relationships"`
	Main          string         `json:"main,omitempty" yaml:"main,omitempty"`
}

// Clone returns a deep copy of the diagram.
func (d Diagram) Clone() Diagram {
	c := Diagram{Main: d.Main}
	if d.Entities != nil {
		c.Entities = make([]ClassEntity, len(d.Entities))
		for i := range d.Entities {
			c.Entities[i] = d.Entities[i].Clone()
		}
	}
	c.Relationships = slices.Clone(d.Relationships)
	return c
}

// Entity returns the entity with the given id.
func (d Diagram) Entity(id string) (ClassEntity, bool) {
	if i := d.EntityIndex(id); i >= 0 {
		return d.Entities[i], true
	}
	return ClassEntity{}, false
}

// EntityIndex returns the position of the entity with the given id, or -1.
func (d Diagram) EntityIndex(id string) int {
	return slices.IndexFunc(d.Entities, func(e ClassEntity) bool { return e.ID == id })
}

// Relationship returns the relationship with the given id.
func (d Diagram) Relationship(id string) (Relationship, bool) {
	if i := d.RelationshipIndex(id); i >= 0 {
		return d.Relationships[i], true
	}
	return Relationship{}, false
}

// RelationshipIndex returns the position of the relationship with the given id, or -1.
func (d Diagram) RelationshipIndex(id string) int {
	return slices.IndexFunc(d.Relationships, func(r Relationship) bool { return r.ID == id })
}

// Has reports whether a relationship with the given key exists. Keys are
// compared field by field, not by their string form.
func (d Diagram) Has(k Key) bool {
	return slices.ContainsFunc(d.Relationships, func(r Relationship) bool { return r.Key() == k })
}

// HasID reports whether a relationship with the given id exists.
func (d Diagram) HasID(id string) bool {
	return d.RelationshipIndex(id) >= 0
}

// Outgoing returns the relationships whose source is the given entity,
// in collection order.
func (d Diagram) Outgoing(id string) []Relationship {
	var out []Relationship
	for _, r := range d.Relationships {
		if r.SourceID == id {
			out = append(out, r)
		}
	}
	return out
}

// Validate checks the structural invariants of the diagram: unique entity
// ids, relationships referencing existing entities, unique relationship
// keys and ids, and valid kinds.
func (d Diagram) Validate() error {
	var errs []error
	seen := make(map[string]struct{}, len(d.Entities))
	for _, e := range d.Entities {
		if _, ok := seen[e.ID]; ok {
			errs = append(errs, fmt.Errorf("model: duplicate entity id %q", e.ID))
			continue
		}
		seen[e.ID] = struct{}{}
	}
	keys := make(map[Key]struct{}, len(d.Relationships))
	ids := make(map[string]struct{}, len(d.Relationships))
	for _, r := range d.Relationships {
		_, dupKey := keys[r.Key()]
		_, dupID := ids[r.ID]
		switch dup := dupKey || dupID; {
		case !r.Kind.Valid():
			errs = append(errs, classflow.NewRejectedRelationshipError(r.SourceID, r.TargetID, string(r.Kind), "unknown kind", nil))
		case dup:
			errs = append(errs, classflow.NewRejectedRelationshipError(r.SourceID, r.TargetID, string(r.Kind), "duplicate relationship", nil))
		default:
			for _, id := range []string{r.SourceID, r.TargetID} {
				if _, ok := seen[id]; !ok {
					errs = append(errs, classflow.NewNotFoundError("entity", id))
				}
			}
		}
		keys[r.Key()] = struct{}{}
		ids[r.ID] = struct{}{}
	}
	return classflow.NewAggregateError(errs...)
}
