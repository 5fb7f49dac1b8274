package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/meikuraledutech/catbook"
)

// SavePrereqGraph saves a chapter's full prerequisite graph in one
// transaction, with replace semantics for an existing chapter.
// Concepts/requirements without IDs get auto-generated UUIDs.
// The graph must be acyclic and internally consistent.
func (s *PGStore) SavePrereqGraph(ctx context.Context, g *catbook.PrereqGraph) error {
	for i := range g.Concepts {
		if g.Concepts[i].ID == "" {
			g.Concepts[i].ID = uuid.NewString()
		}
	}
	for i := range g.Requirements {
		if g.Requirements[i].ID == "" {
			g.Requirements[i].ID = uuid.NewString()
		}
	}

	if err := g.Validate(); err != nil {
		return err
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("catbook: begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM concept_requirements WHERE chapter_id = $1`, g.ChapterID); err != nil {
		return fmt.Errorf("catbook: delete requirements: %w", err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM chapter_concepts WHERE chapter_id = $1`, g.ChapterID); err != nil {
		return fmt.Errorf("catbook: delete concepts: %w", err)
	}

	for _, c := range g.Concepts {
		if _, err := tx.Exec(ctx,
			`INSERT INTO chapter_concepts (chapter_id, id, label) VALUES ($1, $2, $3)`,
			g.ChapterID, c.ID, c.Label,
		); err != nil {
			return fmt.Errorf("catbook: insert concept %s: %w", c.ID, err)
		}
	}

	for _, r := range g.Requirements {
		if _, err := tx.Exec(ctx,
			`INSERT INTO concept_requirements (chapter_id, id, concept_id, requires_id) VALUES ($1, $2, $3, $4)`,
			g.ChapterID, r.ID, r.ConceptID, r.RequiresID,
		); err != nil {
			return fmt.Errorf("catbook: insert requirement %s: %w", r.ID, err)
		}
	}

	return tx.Commit(ctx)
}

// GetPrereqGraph retrieves a chapter's prerequisite graph.
// Returns nil, nil if the chapter has no concepts.
func (s *PGStore) GetPrereqGraph(ctx context.Context, chapterID string) (*catbook.PrereqGraph, error) {
	g := &catbook.PrereqGraph{ChapterID: chapterID}

	rows, err := s.db.Query(ctx,
		`SELECT id, label FROM chapter_concepts WHERE chapter_id = $1 ORDER BY created_at`, chapterID)
	if err != nil {
		return nil, fmt.Errorf("catbook: query concepts: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var c catbook.Concept
		if err := rows.Scan(&c.ID, &c.Label); err != nil {
			return nil, fmt.Errorf("catbook: scan concept: %w", err)
		}
		g.Concepts = append(g.Concepts, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("catbook: rows concepts: %w", err)
	}

	if len(g.Concepts) == 0 {
		return nil, nil
	}

	rows, err = s.db.Query(ctx,
		`SELECT id, concept_id, requires_id FROM concept_requirements WHERE chapter_id = $1 ORDER BY created_at`, chapterID)
	if err != nil {
		return nil, fmt.Errorf("catbook: query requirements: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var r catbook.Requirement
		if err := rows.Scan(&r.ID, &r.ConceptID, &r.RequiresID); err != nil {
			return nil, fmt.Errorf("catbook: scan requirement: %w", err)
		}
		g.Requirements = append(g.Requirements, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("catbook: rows requirements: %w", err)
	}

	return g, nil
}

// DeletePrereqGraph removes all concepts and requirements for a chapter.
// No error if the chapter doesn't exist.
func (s *PGStore) DeletePrereqGraph(ctx context.Context, chapterID string) error {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("catbook: begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM concept_requirements WHERE chapter_id = $1`, chapterID); err != nil {
		return fmt.Errorf("catbook: delete requirements: %w", err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM chapter_concepts WHERE chapter_id = $1`, chapterID); err != nil {
		return fmt.Errorf("catbook: delete concepts: %w", err)
	}

	return tx.Commit(ctx)
}
