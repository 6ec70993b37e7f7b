package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/classflow"
)

func TestKey(t *testing.T) {
	k := Key{Source: "a", Target: "b", Kind: Composition}
	assert.Equal(t, "a-b-composition", k.ID())
	assert.Equal(t, Key{Source: "b", Target: "a", Kind: Composition}, k.Reverse())
	assert.Equal(t, Key{Source: "a", Target: "b", Kind: Aggregation}, k.WithKind(Aggregation))

	r := NewRelationship("a", "b", Dependency)
	assert.Equal(t, "a-b-dependency", r.ID)
	assert.Equal(t, Key{Source: "a", Target: "b", Kind: Dependency}, r.Key())
	assert.True(t, r.Touches("a"))
	assert.True(t, r.Touches("b"))
	assert.False(t, r.Touches("c"))

	ids := map[string]Key{}
	for _, k := range []Key{
		{Source: "a-b", Target: "c", Kind: Composition},
		{Source: "a", Target: "b-c", Kind: Composition},
		{Source: `a\`, Target: "b", Kind: Composition},
		{Source: "a", Target: `\b`, Kind: Composition},
		{Source: `a\-b`, Target: "c", Kind: Composition},
		{Source: "a", Target: "b-c-composition", Kind: Composition},
	} {
		id := k.ID()
		prev, dup := ids[id]
		assert.False(t, dup, "%v and %v share id %q", prev, k, id)
		ids[id] = k
	}
	assert.Equal(t, `a\-b-c-composition`, Key{Source: "a-b", Target: "c", Kind: Composition}.ID())
}

func TestDiagramLookups(t *testing.T) {
	d := Diagram{
		Entities: []ClassEntity{
			{ID: "a", Name: "A", Kind: KindClass},
			{ID: "b", Name: "B", Kind: KindClass},
		},
		Relationships: []Relationship{
			NewRelationship("a", "b", Dependency),
			NewRelationship("b", "a", Composition),
		},
	}

	e, ok := d.Entity("b")
	require.True(t, ok)
	assert.Equal(t, "B", e.Name)
	_, ok = d.Entity("zzz")
	assert.False(t, ok)

	r, ok := d.Relationship("b-a-composition")
	require.True(t, ok)
	assert.Equal(t, Composition, r.Kind)

	assert.True(t, d.Has(Key{Source: "a", Target: "b", Kind: Dependency}))
	assert.False(t, d.Has(Key{Source: "b", Target: "a", Kind: Dependency}))

	out := d.Outgoing("a")
	require.Len(t, out, 1)
	assert.Equal(t, "b", out[0].TargetID)
}

func TestDiagramClone(t *testing.T) {
	d := Diagram{
		Entities:      []ClassEntity{NewEntity("a", KindClass)},
		Relationships: []Relationship{NewRelationship("a", "a", Dependency)},
		Main:          "main()",
	}
	c := d.Clone()
	c.Entities[0].Properties[0].Name = "changed"
	c.Relationships[0].Kind = Inheritance
	assert.Equal(t, "id", d.Entities[0].Properties[0].Name)
	assert.Equal(t, Dependency, d.Relationships[0].Kind)
	assert.Equal(t, "main()", c.Main)
}

func TestDiagramValidate(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		d := Diagram{
			Entities:      []ClassEntity{{ID: "a"}, {ID: "b"}},
			Relationships: []Relationship{NewRelationship("a", "b", Dependency)},
		}
		assert.NoError(t, d.Validate())
	})

	t.Run("dangling relationship", func(t *testing.T) {
		d := Diagram{
			Entities:      []ClassEntity{{ID: "a"}},
			Relationships: []Relationship{NewRelationship("a", "ghost", Dependency)},
		}
		err := d.Validate()
		require.Error(t, err)
		assert.True(t, classflow.IsNotFound(err))
	})

	t.Run("duplicates", func(t *testing.T) {
		d := Diagram{
			Entities: []ClassEntity{{ID: "a"}, {ID: "a"}, {ID: "b"}},
			Relationships: []Relationship{
				NewRelationship("a", "b", Dependency),
				NewRelationship("a", "b", Dependency),
			},
		}
		err := d.Validate()
		require.Error(t, err)
		var agg *classflow.AggregateError
		require.ErrorAs(t, err, &agg)
		assert.Len(t, agg.Errors, 2)
	})

	t.Run("duplicate id", func(t *testing.T) {
		forged := NewRelationship("b", "a", Aggregation)
		forged.ID = NewRelationship("a", "b", Dependency).ID
		d := Diagram{
			Entities:      []ClassEntity{{ID: "a"}, {ID: "b"}},
			Relationships: []Relationship{NewRelationship("a", "b", Dependency), forged},
		}
		err := d.Validate()
		require.Error(t, err)
		assert.True(t, classflow.IsRejectedRelationship(err))
		assert.False(t, d.HasID("missing"))
		assert.True(t, d.HasID(forged.ID))
	})
}
