package graph

import (
	"slices"

	"github.com/syssam/classflow"
	"github.com/syssam/classflow/compiler/gen"
	"github.com/syssam/classflow/model"
)

// Compose returns src with the members a composition with target
// synthesizes: a private property named and typed after the target, and
// a constructor parameter of the target type. The constructor is created
// when src has none.
func Compose(src, target model.ClassEntity) model.ClassEntity {
	c := Aggregate(src, target)
	param := model.Parameter{Name: gen.Camel(target.Name), Type: target.Name}
	if i, ok := c.Constructor(); ok {
		c.Methods[i].Parameters = append(c.Methods[i].Parameters, param)
		return c
	}
	return c.AddMethod(model.Method{
		Name:       c.Name,
		Parameters: []model.Parameter{param},
		Visibility: model.Public,
	})
}

// Aggregate returns src with a private property named and typed after the
// target.
func Aggregate(src, target model.ClassEntity) model.ClassEntity {
	return src.AddProperty(model.Property{
		Name:       target.Name,
		Type:       target.Name,
		Visibility: model.Private,
	})
}

// Decompose is the inverse of Compose. It drops the properties of the
// given type, drops parameters of that type from every method, and drops
// constructors this left without parameters.
func Decompose(src model.ClassEntity, typ string) model.ClassEntity {
	c := Deaggregate(src, typ)
	methods := c.Methods[:0]
	for _, m := range c.Methods {
		n := len(m.Parameters)
		m.Parameters = slices.DeleteFunc(m.Parameters, func(p model.Parameter) bool { return p.Type == typ })
		if n > 0 && len(m.Parameters) == 0 && m.IsConstructorOf(c.Name) {
			continue
		}
		methods = append(methods, m)
	}
	c.Methods = methods
	return c
}

// Deaggregate is the inverse of Aggregate: it drops the properties of the
// given type.
func Deaggregate(src model.ClassEntity, typ string) model.ClassEntity {
	c := src.Clone()
	c.Properties = slices.DeleteFunc(c.Properties, func(p model.Property) bool { return p.Type == typ })
	return c
}

// synthesize applies the members a relationship of the given kind adds to
// its source.
func synthesize(kind model.RelationshipKind, src, target model.ClassEntity) model.ClassEntity {
	switch kind {
	case model.Composition:
		return Compose(src, target)
	case model.Aggregation:
		return Aggregate(src, target)
	default:
		return src
	}
}

// reconcile is the structural inverse of synthesize.
func reconcile(kind model.RelationshipKind, src, target model.ClassEntity) model.ClassEntity {
	switch kind {
	case model.Composition:
		return Decompose(src, target.Name)
	case model.Aggregation:
		return Deaggregate(src, target.Name)
	default:
		return src
	}
}

// ApplyRelationship returns a copy of d with r appended and its members
// synthesized on the source entity. It does not check legality.
func ApplyRelationship(d model.Diagram, r model.Relationship) (model.Diagram, error) {
	si, ti := d.EntityIndex(r.SourceID), d.EntityIndex(r.TargetID)
	if si < 0 {
		return d, classflow.NewNotFoundError("entity", r.SourceID)
	}
	if ti < 0 {
		return d, classflow.NewNotFoundError("entity", r.TargetID)
	}
	c := d.Clone()
	c.Entities[si] = synthesize(r.Kind, c.Entities[si], c.Entities[ti])
	c.Relationships = append(c.Relationships, r)
	return c, nil
}

// RemoveRelationship returns a copy of d without the relationship with the
// given id, after reconciling the members it synthesized.
func RemoveRelationship(d model.Diagram, id string) (model.Diagram, error) {
	i := d.RelationshipIndex(id)
	if i < 0 {
		return d, classflow.NewNotFoundError("relationship", id)
	}
	c := d.Clone()
	r := c.Relationships[i]
	si, ti := c.EntityIndex(r.SourceID), c.EntityIndex(r.TargetID)
	if si >= 0 && ti >= 0 {
		c.Entities[si] = reconcile(r.Kind, c.Entities[si], c.Entities[ti])
	}
	c.Relationships = slices.Delete(c.Relationships, i, i+1)
	return c, nil
}

// RemoveEntity returns a copy of d without the entity with the given id
// and its incident relationships. Members that relationships into the
// entity synthesized on surviving sources are reconciled first.
func RemoveEntity(d model.Diagram, id string) (model.Diagram, error) {
	i := d.EntityIndex(id)
	if i < 0 {
		return d, classflow.NewNotFoundError("entity", id)
	}
	c := d.Clone()
	target := c.Entities[i]
	for _, r := range c.Relationships {
		if r.TargetID != id || r.SourceID == id {
			continue
		}
		if si := c.EntityIndex(r.SourceID); si >= 0 {
			c.Entities[si] = reconcile(r.Kind, c.Entities[si], target)
		}
	}
	c.Relationships = slices.DeleteFunc(c.Relationships, func(r model.Relationship) bool { return r.Touches(id) })
	c.Entities = slices.Delete(c.Entities, i, i+1)
	return c, nil
}
