package memory

import (
	"context"
	"testing"

	"github.com/meikuraledutech/catbook"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDiagram() *catbook.Diagram {
	return &catbook.Diagram{
		ID:    "ch2-composition",
		Title: "Composition of morphisms",
		Objects: []catbook.Object{
			{ID: "A", X: 80, Y: 220},
			{ID: "B", X: 220, Y: 80},
			{ID: "C", X: 360, Y: 220},
		},
		Morphisms: []catbook.Morphism{
			{ID: "f", Label: "f", Source: "A", Target: "B"},
			{ID: "g", Label: "g", Source: "B", Target: "C"},
		},
	}
}

func TestCreateAndGetDiagram(t *testing.T) {
	ctx := context.Background()
	store := New()

	created, err := store.CreateDiagram(ctx, testDiagram())
	require.NoError(t, err)
	require.NotNil(t, created)

	got, err := store.GetDiagram(ctx, "ch2-composition")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Composition of morphisms", got.Title)
	assert.Len(t, got.Objects, 3)
	assert.Len(t, got.Morphisms, 2)
}

func TestGetDiagramMissing(t *testing.T) {
	got, err := New().GetDiagram(context.Background(), "nope")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestCreateDiagramGeneratesIDs(t *testing.T) {
	ctx := context.Background()
	store := New()

	d := testDiagram()
	d.Objects = append(d.Objects, catbook.Object{})
	created, err := store.CreateDiagram(ctx, d)
	require.NoError(t, err)
	assert.NotEmpty(t, created.Objects[3].ID)
}

func TestCreateDiagramRejectsUnknownObject(t *testing.T) {
	ctx := context.Background()
	store := New()

	d := testDiagram()
	d.Morphisms = append(d.Morphisms, catbook.Morphism{ID: "bad", Label: "bad", Source: "A", Target: "Z"})
	_, err := store.CreateDiagram(ctx, d)
	assert.ErrorIs(t, err, catbook.ErrUnknownObject)
}

func TestCreateDiagramReplaces(t *testing.T) {
	ctx := context.Background()
	store := New()

	_, err := store.CreateDiagram(ctx, testDiagram())
	require.NoError(t, err)

	replacement := &catbook.Diagram{
		ID:      "ch2-composition",
		Title:   "Revised",
		Objects: []catbook.Object{{ID: "X"}},
	}
	_, err = store.CreateDiagram(ctx, replacement)
	require.NoError(t, err)

	got, err := store.GetDiagram(ctx, "ch2-composition")
	require.NoError(t, err)
	assert.Equal(t, "Revised", got.Title)
	assert.Len(t, got.Objects, 1)
	assert.Empty(t, got.Morphisms)

	// Replacement keeps a single listing entry.
	infos, err := store.ListDiagrams(ctx)
	require.NoError(t, err)
	assert.Len(t, infos, 1)
}

func TestDeleteDiagram(t *testing.T) {
	ctx := context.Background()
	store := New()

	_, err := store.CreateDiagram(ctx, testDiagram())
	require.NoError(t, err)

	require.NoError(t, store.DeleteDiagram(ctx, "ch2-composition"))

	got, err := store.GetDiagram(ctx, "ch2-composition")
	require.NoError(t, err)
	assert.Nil(t, got)

	// Deleting again is not an error.
	assert.NoError(t, store.DeleteDiagram(ctx, "ch2-composition"))
}

func TestListDiagramsOrder(t *testing.T) {
	ctx := context.Background()
	store := New()

	first := testDiagram()
	first.ID = "first"
	second := testDiagram()
	second.ID = "second"

	_, err := store.CreateDiagram(ctx, first)
	require.NoError(t, err)
	_, err = store.CreateDiagram(ctx, second)
	require.NoError(t, err)

	infos, err := store.ListDiagrams(ctx)
	require.NoError(t, err)
	require.Len(t, infos, 2)
	assert.Equal(t, "first", infos[0].ID)
	assert.Equal(t, "second", infos[1].ID)
}

func TestStoredDiagramIsIsolated(t *testing.T) {
	ctx := context.Background()
	store := New()

	d := testDiagram()
	_, err := store.CreateDiagram(ctx, d)
	require.NoError(t, err)

	// Mutating the input after storing must not affect the store.
	d.Morphisms[0].Label = "mutated"

	got, err := store.GetDiagram(ctx, "ch2-composition")
	require.NoError(t, err)
	assert.Equal(t, "f", got.Morphisms[0].Label)

	// Mutating a retrieved copy must not affect the store either.
	got.Objects[0].X = -1
	again, err := store.GetDiagram(ctx, "ch2-composition")
	require.NoError(t, err)
	assert.Equal(t, float64(80), again.Objects[0].X)
}

func TestObjectCRUD(t *testing.T) {
	ctx := context.Background()
	store := New()
	_, err := store.CreateDiagram(ctx, testDiagram())
	require.NoError(t, err)

	id, err := store.AddObject(ctx, "ch2-composition", &catbook.Object{ID: "D", X: 500, Y: 80})
	require.NoError(t, err)
	assert.Equal(t, "D", id)

	o, err := store.GetObject(ctx, "ch2-composition", "D")
	require.NoError(t, err)
	require.NotNil(t, o)
	assert.Equal(t, float64(500), o.X)

	require.NoError(t, store.UpdateObject(ctx, "ch2-composition", &catbook.Object{ID: "D", X: 510, Y: 90}))
	o, err = store.GetObject(ctx, "ch2-composition", "D")
	require.NoError(t, err)
	assert.Equal(t, float64(510), o.X)

	err = store.UpdateObject(ctx, "ch2-composition", &catbook.Object{ID: "Z"})
	assert.ErrorIs(t, err, catbook.ErrObjectNotFound)

	require.NoError(t, store.DeleteObject(ctx, "ch2-composition", "D"))
	o, err = store.GetObject(ctx, "ch2-composition", "D")
	require.NoError(t, err)
	assert.Nil(t, o)
}

func TestDeleteObjectCascadesMorphisms(t *testing.T) {
	ctx := context.Background()
	store := New()
	_, err := store.CreateDiagram(ctx, testDiagram())
	require.NoError(t, err)

	require.NoError(t, store.DeleteObject(ctx, "ch2-composition", "B"))

	morphisms, err := store.ListMorphisms(ctx, "ch2-composition")
	require.NoError(t, err)
	assert.Empty(t, morphisms) // both f and g touched B
}

func TestMorphismCRUD(t *testing.T) {
	ctx := context.Background()
	store := New()
	_, err := store.CreateDiagram(ctx, testDiagram())
	require.NoError(t, err)

	id, err := store.AddMorphism(ctx, "ch2-composition", &catbook.Morphism{
		ID: "k", Label: "k", Source: "A", Target: "C",
	})
	require.NoError(t, err)
	assert.Equal(t, "k", id)

	m, err := store.GetMorphism(ctx, "ch2-composition", "k")
	require.NoError(t, err)
	require.NotNil(t, m)
	assert.Equal(t, "A", m.Source)

	require.NoError(t, store.UpdateMorphism(ctx, "ch2-composition", &catbook.Morphism{
		ID: "k", Label: "k'", Source: "B", Target: "C",
	}))
	m, err = store.GetMorphism(ctx, "ch2-composition", "k")
	require.NoError(t, err)
	assert.Equal(t, "k'", m.Label)
	assert.Equal(t, "B", m.Source)

	require.NoError(t, store.DeleteMorphism(ctx, "ch2-composition", "k"))
	m, err = store.GetMorphism(ctx, "ch2-composition", "k")
	require.NoError(t, err)
	assert.Nil(t, m)
}

func TestAddMorphismRejectsUnknownEndpoint(t *testing.T) {
	ctx := context.Background()
	store := New()
	_, err := store.CreateDiagram(ctx, testDiagram())
	require.NoError(t, err)

	_, err = store.AddMorphism(ctx, "ch2-composition", &catbook.Morphism{
		ID: "bad", Label: "bad", Source: "A", Target: "Z",
	})
	assert.ErrorIs(t, err, catbook.ErrUnknownObject)

	err = store.UpdateMorphism(ctx, "ch2-composition", &catbook.Morphism{
		ID: "f", Label: "f", Source: "Z", Target: "B",
	})
	assert.ErrorIs(t, err, catbook.ErrUnknownObject)
}

func TestUpdateMorphismMissing(t *testing.T) {
	ctx := context.Background()
	store := New()
	_, err := store.CreateDiagram(ctx, testDiagram())
	require.NoError(t, err)

	err = store.UpdateMorphism(ctx, "ch2-composition", &catbook.Morphism{
		ID: "nope", Label: "n", Source: "A", Target: "B",
	})
	assert.ErrorIs(t, err, catbook.ErrMorphismNotFound)
}

func TestPrereqGraphRoundtrip(t *testing.T) {
	ctx := context.Background()
	store := New()

	g := &catbook.PrereqGraph{
		ChapterID: "ch2",
		Concepts: []catbook.Concept{
			{ID: "object", Label: "Object"},
			{ID: "morphism", Label: "Morphism"},
		},
		Requirements: []catbook.Requirement{
			{ConceptID: "morphism", RequiresID: "object"},
		},
	}
	require.NoError(t, store.SavePrereqGraph(ctx, g))

	got, err := store.GetPrereqGraph(ctx, "ch2")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Len(t, got.Concepts, 2)
	require.Len(t, got.Requirements, 1)
	assert.NotEmpty(t, got.Requirements[0].ID) // backfilled

	require.NoError(t, store.DeletePrereqGraph(ctx, "ch2"))
	got, err = store.GetPrereqGraph(ctx, "ch2")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestSavePrereqGraphRejectsCycle(t *testing.T) {
	ctx := context.Background()
	store := New()

	g := &catbook.PrereqGraph{
		ChapterID: "ch2",
		Concepts: []catbook.Concept{
			{ID: "a", Label: "A"},
			{ID: "b", Label: "B"},
		},
		Requirements: []catbook.Requirement{
			{ConceptID: "a", RequiresID: "b"},
			{ConceptID: "b", RequiresID: "a"},
		},
	}
	err := store.SavePrereqGraph(ctx, g)
	assert.ErrorIs(t, err, catbook.ErrCycleDetected)

	got, err := store.GetPrereqGraph(ctx, "ch2")
	require.NoError(t, err)
	assert.Nil(t, got) // nothing saved
}

func TestDropSchema(t *testing.T) {
	ctx := context.Background()
	store := New()

	_, err := store.CreateDiagram(ctx, testDiagram())
	require.NoError(t, err)
	require.NoError(t, store.DropSchema(ctx))

	infos, err := store.ListDiagrams(ctx)
	require.NoError(t, err)
	assert.Empty(t, infos)
}
