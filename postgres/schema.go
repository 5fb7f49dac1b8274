package postgres

import "context"

const schemaSQL = `
CREATE TABLE IF NOT EXISTS diagrams (
    id         TEXT PRIMARY KEY,
    title      TEXT NOT NULL DEFAULT '',
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS diagram_objects (
    diagram_id TEXT NOT NULL REFERENCES diagrams(id) ON DELETE CASCADE,
    id         TEXT NOT NULL,
    pos_x      DOUBLE PRECISION NOT NULL DEFAULT 0,
    pos_y      DOUBLE PRECISION NOT NULL DEFAULT 0,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    PRIMARY KEY (diagram_id, id)
);

CREATE TABLE IF NOT EXISTS diagram_morphisms (
    diagram_id TEXT NOT NULL REFERENCES diagrams(id) ON DELETE CASCADE,
    id         TEXT NOT NULL,
    label      TEXT NOT NULL,
    source_id  TEXT NOT NULL,
    target_id  TEXT NOT NULL,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    PRIMARY KEY (diagram_id, id),
    FOREIGN KEY (diagram_id, source_id) REFERENCES diagram_objects(diagram_id, id) ON DELETE CASCADE,
    FOREIGN KEY (diagram_id, target_id) REFERENCES diagram_objects(diagram_id, id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS chapter_concepts (
    chapter_id TEXT NOT NULL,
    id         TEXT NOT NULL,
    label      TEXT NOT NULL,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    PRIMARY KEY (chapter_id, id)
);

CREATE TABLE IF NOT EXISTS concept_requirements (
    chapter_id  TEXT NOT NULL,
    id          TEXT NOT NULL,
    concept_id  TEXT NOT NULL,
    requires_id TEXT NOT NULL,
    created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    PRIMARY KEY (chapter_id, id),
    FOREIGN KEY (chapter_id, concept_id)  REFERENCES chapter_concepts(chapter_id, id) ON DELETE CASCADE,
    FOREIGN KEY (chapter_id, requires_id) REFERENCES chapter_concepts(chapter_id, id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_diagram_objects_diagram   ON diagram_objects(diagram_id);
CREATE INDEX IF NOT EXISTS idx_diagram_morphisms_diagram ON diagram_morphisms(diagram_id);
CREATE INDEX IF NOT EXISTS idx_concept_reqs_chapter      ON concept_requirements(chapter_id);
`

// CreateSchema creates the catalog tables if they don't exist.
func (s *PGStore) CreateSchema(ctx context.Context) error {
	_, err := s.db.Exec(ctx, schemaSQL)
	return err
}

// DropSchema drops all catalog tables.
func (s *PGStore) DropSchema(ctx context.Context) error {
	_, err := s.db.Exec(ctx, `DROP TABLE IF EXISTS concept_requirements, chapter_concepts, diagram_morphisms, diagram_objects, diagrams CASCADE;`)
	return err
}
