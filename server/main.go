package main

import (
	"context"
	"os"

	"github.com/charmbracelet/log"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/meikuraledutech/catbook"
	"github.com/meikuraledutech/catbook/memory"
	"github.com/meikuraledutech/catbook/postgres"
)

func main() {
	_ = godotenv.Load()

	var store catbook.Store

	if dbURL := os.Getenv("DATABASE_URL"); dbURL != "" {
		pool, err := pgxpool.New(context.Background(), dbURL)
		if err != nil {
			log.Fatal("connect to postgres", "err", err)
		}
		defer pool.Close()
		store = postgres.New(pool)
		log.Info("using postgres catalog store")
	} else {
		mem := memory.New()
		if err := seedTextbook(mem); err != nil {
			log.Fatal("seed textbook diagrams", "err", err)
		}
		store = mem
		log.Info("DATABASE_URL not set, using in-memory catalog store with seeded diagrams")
	}

	app := newApp(store, newSessionRegistry())

	port := os.Getenv("PORT")
	if port == "" {
		port = "3000"
	}
	log.Info("listening", "port", port)
	if err := app.Listen(":" + port); err != nil {
		log.Fatal("server stopped", "err", err)
	}
}

// seedTextbook loads the book's built-in diagrams and prerequisite
// graphs so the viewer works without a database.
func seedTextbook(store catbook.Store) error {
	ctx := context.Background()

	diagrams := []*catbook.Diagram{
		{
			ID:    "ch1-first-arrows",
			Title: "First arrows",
			Objects: []catbook.Object{
				{ID: "A", X: 80, Y: 200},
				{ID: "B", X: 240, Y: 80},
				{ID: "C", X: 400, Y: 200},
			},
			Morphisms: []catbook.Morphism{
				{ID: "f", Label: "f", Source: "A", Target: "B"},
				{ID: "g", Label: "g", Source: "B", Target: "C"},
				{ID: "h", Label: "h", Source: "A", Target: "C"},
			},
		},
		{
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
		},
	}

	for _, d := range diagrams {
		if _, err := store.CreateDiagram(ctx, d); err != nil {
			return err
		}
	}

	prereqs := &catbook.PrereqGraph{
		ChapterID: "ch2",
		Concepts: []catbook.Concept{
			{ID: "object", Label: "Object"},
			{ID: "morphism", Label: "Morphism"},
			{ID: "composition", Label: "Composition"},
			{ID: "identity", Label: "Identity morphism"},
		},
		Requirements: []catbook.Requirement{
			{ConceptID: "morphism", RequiresID: "object"},
			{ConceptID: "composition", RequiresID: "morphism"},
			{ConceptID: "identity", RequiresID: "morphism"},
		},
	}

	return store.SavePrereqGraph(ctx, prereqs)
}
