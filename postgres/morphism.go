package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/meikuraledutech/catbook"
)

// AddMorphism inserts a single morphism into a diagram.
// If morphism.ID is empty, a UUID is auto-generated.
// Validates that the source and target objects exist in the diagram.
// Returns the morphism ID (generated or provided).
func (s *PGStore) AddMorphism(ctx context.Context, diagramID string, morphism *catbook.Morphism) (string, error) {
	if morphism.ID == "" {
		morphism.ID = uuid.NewString()
	}

	if err := s.checkEndpoints(ctx, diagramID, morphism); err != nil {
		return "", err
	}

	_, err := s.db.Exec(ctx,
		`INSERT INTO diagram_morphisms (diagram_id, id, label, source_id, target_id) VALUES ($1, $2, $3, $4, $5)`,
		diagramID, morphism.ID, morphism.Label, morphism.Source, morphism.Target,
	)
	if err != nil {
		return "", fmt.Errorf("catbook: insert morphism: %w", err)
	}

	return morphism.ID, nil
}

// GetMorphism fetches a single morphism by diagram and morphism ID.
// Returns nil, nil if not found.
func (s *PGStore) GetMorphism(ctx context.Context, diagramID, morphismID string) (*catbook.Morphism, error) {
	var m catbook.Morphism
	err := s.db.QueryRow(ctx,
		`SELECT id, label, source_id, target_id FROM diagram_morphisms WHERE diagram_id = $1 AND id = $2`,
		diagramID, morphismID,
	).Scan(&m.ID, &m.Label, &m.Source, &m.Target)

	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("catbook: get morphism: %w", err)
	}

	return &m, nil
}

// UpdateMorphism updates an existing morphism's label, source, and target.
// Validates that the new endpoints exist in the diagram.
// Returns ErrMorphismNotFound if the morphism doesn't exist.
func (s *PGStore) UpdateMorphism(ctx context.Context, diagramID string, morphism *catbook.Morphism) error {
	if err := s.checkEndpoints(ctx, diagramID, morphism); err != nil {
		return err
	}

	ct, err := s.db.Exec(ctx,
		`UPDATE diagram_morphisms SET label = $1, source_id = $2, target_id = $3 WHERE diagram_id = $4 AND id = $5`,
		morphism.Label, morphism.Source, morphism.Target, diagramID, morphism.ID,
	)
	if err != nil {
		return fmt.Errorf("catbook: update morphism: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return catbook.ErrMorphismNotFound
	}
	return nil
}

// DeleteMorphism deletes a morphism by its ID.
// No error if the morphism doesn't exist.
func (s *PGStore) DeleteMorphism(ctx context.Context, diagramID, morphismID string) error {
	_, err := s.db.Exec(ctx,
		`DELETE FROM diagram_morphisms WHERE diagram_id = $1 AND id = $2`,
		diagramID, morphismID,
	)
	if err != nil {
		return fmt.Errorf("catbook: delete morphism: %w", err)
	}
	return nil
}

// ListMorphisms returns all morphisms for a diagram, ordered by created_at.
// Returns an empty slice (not nil) if none found.
func (s *PGStore) ListMorphisms(ctx context.Context, diagramID string) ([]catbook.Morphism, error) {
	rows, err := s.db.Query(ctx,
		`SELECT id, label, source_id, target_id FROM diagram_morphisms WHERE diagram_id = $1 ORDER BY created_at`, diagramID)
	if err != nil {
		return nil, fmt.Errorf("catbook: list morphisms: %w", err)
	}
	defer rows.Close()

	morphisms := []catbook.Morphism{}
	for rows.Next() {
		var m catbook.Morphism
		if err := rows.Scan(&m.ID, &m.Label, &m.Source, &m.Target); err != nil {
			return nil, fmt.Errorf("catbook: scan morphism: %w", err)
		}
		morphisms = append(morphisms, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("catbook: rows morphisms: %w", err)
	}

	return morphisms, nil
}

// checkEndpoints verifies that a morphism's source and target objects
// exist in the diagram.
func (s *PGStore) checkEndpoints(ctx context.Context, diagramID string, morphism *catbook.Morphism) error {
	objects, err := s.ListObjects(ctx, diagramID)
	if err != nil {
		return err
	}

	known := make(map[string]bool, len(objects))
	for _, o := range objects {
		known[o.ID] = true
	}

	if !known[morphism.Source] {
		return fmt.Errorf("catbook: morphism %q: source %q: %w", morphism.ID, morphism.Source, catbook.ErrUnknownObject)
	}
	if !known[morphism.Target] {
		return fmt.Errorf("catbook: morphism %q: target %q: %w", morphism.ID, morphism.Target, catbook.ErrUnknownObject)
	}
	return nil
}
