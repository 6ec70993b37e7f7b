package gen_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/syssam/classflow/compiler/gen"
	"github.com/syssam/classflow/compiler/gen/java"
	"github.com/syssam/classflow/model"
)

func benchDiagram(n int) ([]model.ClassEntity, []model.Relationship) {
	entities := make([]model.ClassEntity, n)
	var rels []model.Relationship
	for i := range entities {
		entities[i] = model.NewEntity(fmt.Sprintf("e%d", i), model.KindClass).Rename(fmt.Sprintf("Type%d", i))
		if i > 0 {
			rels = append(rels, model.NewRelationship(entities[i].ID, entities[i-1].ID, model.Implementation))
		}
	}
	return entities, rels
}

func BenchmarkGenerate(b *testing.B) {
	entities, rels := benchDiagram(100)
	c := gen.MustNewConfig(gen.WithDialect(java.NewDialect()))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, err := gen.Generate(c, entities, rels)
		require.NoError(b, err)
	}
}

func BenchmarkWriter_Write(b *testing.B) {
	entities, rels := benchDiagram(100)
	c := gen.MustNewConfig(gen.WithDialect(java.NewDialect()), gen.WithTarget(b.TempDir()))
	out, err := gen.Generate(c, entities, rels)
	require.NoError(b, err)
	w, err := gen.NewWriter(c)
	require.NoError(b, err)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, err := w.Write(context.Background(), out)
		require.NoError(b, err)
	}
}
