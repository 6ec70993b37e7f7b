package java

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/classflow/compiler/gen"
	"github.com/syssam/classflow/model"
)

func car() model.ClassEntity {
	return model.ClassEntity{
		ID:   "car",
		Name: "Car",
		Kind: model.KindClass,
		Properties: []model.Property{
			{Name: "Engine", Type: "Engine", Visibility: model.Private},
		},
		Methods: []model.Method{
			{Name: "Car", Visibility: model.Public, Parameters: []model.Parameter{{Name: "engine", Type: "Engine"}}},
		},
	}
}

func generate(t *testing.T, entities []model.ClassEntity, rels []model.Relationship, opts ...gen.Option) *gen.Output {
	t.Helper()
	opts = append([]gen.Option{gen.WithDialect(NewDialect())}, opts...)
	out, err := gen.Generate(gen.MustNewConfig(opts...), entities, rels)
	require.NoError(t, err)
	return out
}

func TestDialect(t *testing.T) {
	d := NewDialect()
	assert.Equal(t, "java", d.Name())
	assert.Equal(t, ".java", d.Ext())
}

func TestGenTypeComposition(t *testing.T) {
	out := generate(t, []model.ClassEntity{car()}, nil)
	require.Len(t, out.Files, 1)
	assert.Equal(t, "class Car {\n  private Engine Engine;\n\n  public Car( Engine engine ){ this.engine = engine }\n}", out.Files[0].Source)
	assert.Equal(t, "car.java", out.Files[0].Name)
}

func TestGenTypeEmpty(t *testing.T) {
	out := generate(t, []model.ClassEntity{
		{ID: "a", Name: "A", Kind: model.KindClass},
		{ID: "i", Name: "Shape", Kind: model.KindInterface},
		{ID: "e", Name: "Color", Kind: model.KindEnum},
	}, nil)
	assert.Equal(t, "class A {\n}", out.Files[0].Source)
	assert.Equal(t, "interface Shape {\n}", out.Files[1].Source)
	assert.Equal(t, "enum Color {\n}", out.Files[2].Source)
	assert.Equal(t, "class A {\n}\n\ninterface Shape {\n}\n\nenum Color {\n}", out.Source)
}

func TestGenTypeSupertypes(t *testing.T) {
	entities := []model.ClassEntity{
		{ID: "truck", Name: "Truck", Kind: model.KindClass},
		{ID: "veh", Name: "Vehicle", Kind: model.KindClass},
		{ID: "mov", Name: "Movable", Kind: model.KindInterface},
		{ID: "cargo", Name: "Cargo", Kind: model.KindInterface},
	}
	rels := []model.Relationship{
		model.NewRelationship("truck", "veh", model.Implementation),
		model.NewRelationship("truck", "mov", model.Inheritance),
		model.NewRelationship("truck", "cargo", model.Inheritance),
		model.NewRelationship("truck", "veh", model.Dependency),
	}
	out := generate(t, entities, rels)
	assert.Equal(t, "class Truck extends Vehicle implements Movable, Cargo {\n}", out.Files[0].Source)
	assert.Equal(t, "class Vehicle {\n}", out.Files[1].Source)
}

func TestGenTypeMembers(t *testing.T) {
	e := model.ClassEntity{
		ID:   "c",
		Name: "Counter",
		Kind: model.KindClass,
		Properties: []model.Property{
			{Name: "MAX", Type: "int", Visibility: model.Public, IsStatic: true, IsFinal: true, InitialValue: "10"},
			{Name: "count", Type: "int", Visibility: model.Protected},
			{Name: "label", Type: "String", Visibility: "bogus"},
		},
		Methods: []model.Method{
			{Name: "Counter", Visibility: model.Public},
			{Name: "reset", ReturnType: "void", Visibility: model.Public, IsFinal: true, InsideCode: "count = 0;"},
			{Name: "add", ReturnType: "int", Visibility: model.Private, IsStatic: true, Parameters: []model.Parameter{
				{Name: "a", Type: "int"}, {Name: "b", Type: "int"},
			}},
		},
	}
	out := generate(t, []model.ClassEntity{e}, nil)
	expected := "class Counter {\n" +
		"  static final public int MAX = 10;\n" +
		"  protected int count;\n" +
		"  public String label;\n" +
		"\n" +
		"  public Counter(){ }\n" +
		"  final public void reset(){ count = 0; }\n" +
		"  static private int add( int a, int b ){ }\n" +
		"}"
	assert.Equal(t, expected, out.Files[0].Source)
}

func TestGenHeader(t *testing.T) {
	out := generate(t, []model.ClassEntity{{ID: "a", Name: "A", Kind: model.KindClass}}, nil,
		gen.WithHeader("Code generated by classflow.\nDO NOT EDIT."))
	assert.Equal(t, "// Code generated by classflow.\n// DO NOT EDIT.\nclass A {\n}", out.Files[0].Source)
	assert.Equal(t, out.Files[0].Source, out.Source)
}

func TestGenerateIdempotent(t *testing.T) {
	entities := []model.ClassEntity{car(), {ID: "eng", Name: "Engine", Kind: model.KindClass}}
	rels := []model.Relationship{model.NewRelationship("car", "eng", model.Composition)}
	first := generate(t, entities, rels)
	second := generate(t, entities, rels)
	assert.Equal(t, first.Source, second.Source)
	assert.Equal(t, first.Files, second.Files)
}

func TestParams(t *testing.T) {
	assert.Equal(t, "()", Params(nil))
	assert.Equal(t, "( Engine engine )", Params([]model.Parameter{{Name: "engine", Type: "Engine"}}))
	assert.Equal(t, "( int a, int b )", Params([]model.Parameter{{Name: "a", Type: "int"}, {Name: "b", Type: "int"}}))
}

func TestBody(t *testing.T) {
	params := []model.Parameter{{Name: "engine", Type: "Engine"}, {Name: "wheel", Type: "Wheel"}}
	assert.Equal(t, "{ this.engine = engine; this.wheel = wheel }", Body(model.Method{Parameters: params}, true))
	assert.Equal(t, "{ }", Body(model.Method{Parameters: params}, false))
	assert.Equal(t, "{ }", Body(model.Method{}, true))
	assert.Equal(t, "{ return 1; }", Body(model.Method{InsideCode: "return 1;", Parameters: params}, true))
	assert.Equal(t, "this.engine = engine", Assignments(params[:1]))

	tests := []struct {
		code string
		want string
	}{
		{"return 1; // one", "{ return 1; // one\n  }"},
		{"// first\nreturn 1;", "{ // first\nreturn 1; }"},
		{`return "http://x";`, `{ return "http://x"; }`},
		{`char c = '"'; // quote`, "{ char c = '\"'; // quote\n  }"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Body(model.Method{InsideCode: tt.code}, false), tt.code)
	}
}
