package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/meikuraledutech/catbook"
)

// CreateDiagram saves a full diagram (objects + morphisms) in one
// transaction, with replace semantics for an existing diagram id.
// Objects/morphisms without IDs get auto-generated UUIDs. Every
// morphism's source/target must name an object in the diagram.
// Returns the diagram with all IDs filled in.
func (s *PGStore) CreateDiagram(ctx context.Context, d *catbook.Diagram) (*catbook.Diagram, error) {
	for i := range d.Objects {
		if d.Objects[i].ID == "" {
			d.Objects[i].ID = uuid.NewString()
		}
	}
	for i := range d.Morphisms {
		if d.Morphisms[i].ID == "" {
			d.Morphisms[i].ID = uuid.NewString()
		}
	}

	if err := d.Validate(); err != nil {
		return nil, err
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("catbook: begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx,
		`INSERT INTO diagrams (id, title) VALUES ($1, $2)
		 ON CONFLICT (id) DO UPDATE SET title = EXCLUDED.title`,
		d.ID, d.Title,
	); err != nil {
		return nil, fmt.Errorf("catbook: upsert diagram: %w", err)
	}

	// Replace semantics: drop any existing objects/morphisms first.
	if _, err := tx.Exec(ctx, `DELETE FROM diagram_morphisms WHERE diagram_id = $1`, d.ID); err != nil {
		return nil, fmt.Errorf("catbook: delete morphisms: %w", err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM diagram_objects WHERE diagram_id = $1`, d.ID); err != nil {
		return nil, fmt.Errorf("catbook: delete objects: %w", err)
	}

	for _, o := range d.Objects {
		if _, err := tx.Exec(ctx,
			`INSERT INTO diagram_objects (diagram_id, id, pos_x, pos_y) VALUES ($1, $2, $3, $4)`,
			d.ID, o.ID, o.X, o.Y,
		); err != nil {
			return nil, fmt.Errorf("catbook: insert object %s: %w", o.ID, err)
		}
	}

	for _, m := range d.Morphisms {
		if _, err := tx.Exec(ctx,
			`INSERT INTO diagram_morphisms (diagram_id, id, label, source_id, target_id) VALUES ($1, $2, $3, $4, $5)`,
			d.ID, m.ID, m.Label, m.Source, m.Target,
		); err != nil {
			return nil, fmt.Errorf("catbook: insert morphism %s: %w", m.ID, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("catbook: commit: %w", err)
	}

	return d, nil
}

// GetDiagram retrieves a full diagram (objects + morphisms) by its ID.
// Returns nil, nil if the diagram doesn't exist.
func (s *PGStore) GetDiagram(ctx context.Context, diagramID string) (*catbook.Diagram, error) {
	d := &catbook.Diagram{ID: diagramID}

	err := s.db.QueryRow(ctx,
		`SELECT title FROM diagrams WHERE id = $1`, diagramID,
	).Scan(&d.Title)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("catbook: get diagram: %w", err)
	}

	if d.Objects, err = s.ListObjects(ctx, diagramID); err != nil {
		return nil, err
	}
	if d.Morphisms, err = s.ListMorphisms(ctx, diagramID); err != nil {
		return nil, err
	}

	return d, nil
}

// DeleteDiagram removes a diagram and all of its objects and morphisms.
// No error if the diagramID doesn't exist.
func (s *PGStore) DeleteDiagram(ctx context.Context, diagramID string) error {
	if _, err := s.db.Exec(ctx, `DELETE FROM diagrams WHERE id = $1`, diagramID); err != nil {
		return fmt.Errorf("catbook: delete diagram: %w", err)
	}
	return nil
}

// ListDiagrams returns id/title pairs for all stored diagrams, ordered
// by created_at. Returns an empty slice (not nil) if none exist.
func (s *PGStore) ListDiagrams(ctx context.Context) ([]catbook.DiagramInfo, error) {
	rows, err := s.db.Query(ctx, `SELECT id, title FROM diagrams ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("catbook: list diagrams: %w", err)
	}
	defer rows.Close()

	infos := []catbook.DiagramInfo{}
	for rows.Next() {
		var info catbook.DiagramInfo
		if err := rows.Scan(&info.ID, &info.Title); err != nil {
			return nil, fmt.Errorf("catbook: scan diagram: %w", err)
		}
		infos = append(infos, info)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("catbook: rows diagrams: %w", err)
	}

	return infos, nil
}
