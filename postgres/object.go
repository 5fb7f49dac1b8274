package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/meikuraledutech/catbook"
)

// AddObject inserts a single object into a diagram.
// If object.ID is empty, a UUID is auto-generated.
// Returns the object ID (generated or provided).
func (s *PGStore) AddObject(ctx context.Context, diagramID string, object *catbook.Object) (string, error) {
	if object.ID == "" {
		object.ID = uuid.NewString()
	}

	_, err := s.db.Exec(ctx,
		`INSERT INTO diagram_objects (diagram_id, id, pos_x, pos_y) VALUES ($1, $2, $3, $4)`,
		diagramID, object.ID, object.X, object.Y,
	)
	if err != nil {
		return "", fmt.Errorf("catbook: insert object: %w", err)
	}

	return object.ID, nil
}

// GetObject fetches a single object by diagram and object ID.
// Returns nil, nil if not found.
func (s *PGStore) GetObject(ctx context.Context, diagramID, objectID string) (*catbook.Object, error) {
	var o catbook.Object
	err := s.db.QueryRow(ctx,
		`SELECT id, pos_x, pos_y FROM diagram_objects WHERE diagram_id = $1 AND id = $2`,
		diagramID, objectID,
	).Scan(&o.ID, &o.X, &o.Y)

	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("catbook: get object: %w", err)
	}

	return &o, nil
}

// UpdateObject updates an object's display position.
// Returns ErrObjectNotFound if the object doesn't exist.
func (s *PGStore) UpdateObject(ctx context.Context, diagramID string, object *catbook.Object) error {
	ct, err := s.db.Exec(ctx,
		`UPDATE diagram_objects SET pos_x = $1, pos_y = $2 WHERE diagram_id = $3 AND id = $4`,
		object.X, object.Y, diagramID, object.ID,
	)
	if err != nil {
		return fmt.Errorf("catbook: update object: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return catbook.ErrObjectNotFound
	}
	return nil
}

// DeleteObject deletes an object by its ID.
// Morphisms touching it are cascade-deleted by the DB.
// No error if the object doesn't exist.
func (s *PGStore) DeleteObject(ctx context.Context, diagramID, objectID string) error {
	_, err := s.db.Exec(ctx,
		`DELETE FROM diagram_objects WHERE diagram_id = $1 AND id = $2`,
		diagramID, objectID,
	)
	if err != nil {
		return fmt.Errorf("catbook: delete object: %w", err)
	}
	return nil
}

// ListObjects returns all objects for a diagram, ordered by created_at.
// Returns an empty slice (not nil) if none found.
func (s *PGStore) ListObjects(ctx context.Context, diagramID string) ([]catbook.Object, error) {
	rows, err := s.db.Query(ctx,
		`SELECT id, pos_x, pos_y FROM diagram_objects WHERE diagram_id = $1 ORDER BY created_at`, diagramID)
	if err != nil {
		return nil, fmt.Errorf("catbook: list objects: %w", err)
	}
	defer rows.Close()

	objects := []catbook.Object{}
	for rows.Next() {
		var o catbook.Object
		if err := rows.Scan(&o.ID, &o.X, &o.Y); err != nil {
			return nil, fmt.Errorf("catbook: scan object: %w", err)
		}
		objects = append(objects, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("catbook: rows objects: %w", err)
	}

	return objects, nil
}
