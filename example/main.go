package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/meikuraledutech/catbook"
	"github.com/meikuraledutech/catbook/memory"
)

func main() {
	ctx := context.Background()

	// Wire up the in-memory implementation behind the Store interface.
	var store catbook.Store = memory.New()

	// ── Seed the chapter-2 composition diagram ────────────────────────
	diagram := &catbook.Diagram{
		ID:    "ch2-composition",
		Title: "Composition of morphisms",
		Objects: []catbook.Object{
			{ID: "A", X: 80, Y: 220},
			{ID: "B", X: 220, Y: 80},
			{ID: "C", X: 360, Y: 220},
			{ID: "D", X: 500, Y: 80},
		},
		Morphisms: []catbook.Morphism{
			{ID: "f", Label: "f", Source: "A", Target: "B"},
			{ID: "g", Label: "g", Source: "B", Target: "C"},
			{ID: "h", Label: "h", Source: "C", Target: "D"},
			{ID: "k", Label: "k", Source: "A", Target: "C"},
		},
	}

	if _, err := store.CreateDiagram(ctx, diagram); err != nil {
		log.Fatalf("create diagram: %v", err)
	}
	fmt.Println("diagram stored")

	// ── Open a composer over the stored catalog ───────────────────────
	d, err := store.GetDiagram(ctx, "ch2-composition")
	if err != nil {
		log.Fatalf("get diagram: %v", err)
	}
	engine := catbook.NewEngine(d)

	// Click f, then g: composable, composite g∘f appears.
	mustSelect(engine, "f")
	state := mustSelect(engine, "g")
	fmt.Println("\nclicked f then g:")
	printJSON(state)

	// A third click starts over with the clicked morphism.
	state = mustSelect(engine, "h")
	fmt.Println("\nclicked h (starts over):")
	printJSON(state)

	// f and h share no endpoint: not composable, h stays selected.
	mustSelect(engine, "f")
	state = mustSelect(engine, "h")
	fmt.Println("\nclicked f then h (not composable):")
	printJSON(state)

	// Clicking g now works: g composes before h.
	state = mustSelect(engine, "g")
	fmt.Println("\nclicked g (composes with the kept h):")
	printJSON(state)

	// ── Clear and toggle ──────────────────────────────────────────────
	engine.Clear()
	mustSelect(engine, "k")
	state = mustSelect(engine, "k")
	fmt.Println("\nclicked k twice (toggle off):")
	printJSON(state)
}

func mustSelect(engine *catbook.Engine, id string) catbook.State {
	state, err := engine.Select(id)
	if err != nil {
		log.Fatalf("select %s: %v", id, err)
	}
	return state
}

func printJSON(v any) {
	out, _ := json.MarshalIndent(v, "", "  ")
	fmt.Println(string(out))
}
