package gen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/classflow/model"
)

func entity(id, name string, kind model.Kind) model.ClassEntity {
	return model.ClassEntity{ID: id, Name: name, Kind: kind}
}

func TestNewGraph(t *testing.T) {
	t.Run("nil config", func(t *testing.T) {
		g, err := NewGraph(nil, nil, nil)
		require.Error(t, err)
		assert.True(t, IsConfigError(err))
		assert.Nil(t, g)
	})

	t.Run("nodes in entity order", func(t *testing.T) {
		g, err := NewGraph(&Config{}, []model.ClassEntity{
			entity("b", "B", model.KindClass),
			entity("a", "A", model.KindInterface),
		}, nil)
		require.NoError(t, err)
		require.Len(t, g.Nodes, 2)
		assert.Equal(t, "B", g.Nodes[0].Name)
		assert.Equal(t, "A", g.Nodes[1].Name)
		assert.Same(t, g, g.Nodes[0].Graph())
	})

	t.Run("supertype lists", func(t *testing.T) {
		g, err := NewGraph(&Config{}, []model.ClassEntity{
			entity("car", "Car", model.KindClass),
			entity("veh", "Vehicle", model.KindClass),
			entity("mov", "Movable", model.KindInterface),
			entity("eng", "Engine", model.KindClass),
		}, []model.Relationship{
			model.NewRelationship("car", "veh", model.Implementation),
			model.NewRelationship("car", "mov", model.Inheritance),
			model.NewRelationship("car", "eng", model.Composition),
		})
		require.NoError(t, err)

		car, ok := g.Type("car")
		require.True(t, ok)
		assert.Equal(t, []string{"Vehicle"}, car.Extends)
		assert.Equal(t, []string{"Movable"}, car.Implements)
		assert.Equal(t, []string{"Vehicle", "Movable"}, car.Supertypes())
		assert.Len(t, car.Edges, 3)
		assert.Len(t, g.Edges, 3)
	})

	t.Run("dangling relationships are ignored", func(t *testing.T) {
		g, err := NewGraph(&Config{}, []model.ClassEntity{
			entity("a", "A", model.KindClass),
		}, []model.Relationship{
			model.NewRelationship("a", "ghost", model.Implementation),
		})
		require.NoError(t, err)
		assert.Empty(t, g.Edges)
		assert.Empty(t, g.Nodes[0].Extends)
	})

	t.Run("entities are copied", func(t *testing.T) {
		e := entity("a", "A", model.KindClass)
		e.Properties = []model.Property{{Name: "x", Type: "int"}}
		g, err := NewGraph(&Config{}, []model.ClassEntity{e}, nil)
		require.NoError(t, err)

		g.Nodes[0].Properties[0].Name = "changed"
		assert.Equal(t, "x", e.Properties[0].Name)
	})
}

func TestGraphNamed(t *testing.T) {
	g, err := NewGraph(&Config{}, []model.ClassEntity{
		entity("1", "Engine", model.KindClass),
		entity("2", "Engine", model.KindEnum),
	}, nil)
	require.NoError(t, err)

	typ, ok := g.Named("Engine")
	require.True(t, ok)
	assert.Equal(t, "1", typ.ID)

	_, ok = g.Named("Wheel")
	assert.False(t, ok)
}

func TestTypeConstructor(t *testing.T) {
	e := entity("car", "Car", model.KindClass)
	e.Methods = []model.Method{
		{Name: "drive", ReturnType: "void"},
		{Name: "Car", Parameters: []model.Parameter{{Name: "engine", Type: "Engine"}}},
	}
	g, err := NewGraph(&Config{}, []model.ClassEntity{e}, nil)
	require.NoError(t, err)
	typ := g.Nodes[0]

	ctor, ok := typ.Constructor()
	require.True(t, ok)
	assert.Equal(t, "Car", ctor.Name)
	assert.True(t, typ.IsConstructor(ctor))
	assert.False(t, typ.IsConstructor(typ.Methods[0]))
	assert.Equal(t, "class", typ.Keyword())

	typ = &Type{ClassEntity: entity("i", "I", model.KindInterface)}
	_, ok = typ.Constructor()
	assert.False(t, ok)
	assert.Equal(t, "interface", typ.Keyword())
}
