package catbook

import (
	"context"
	"errors"
)

var (
	ErrUnknownObject    = errors.New("catbook: morphism references an object not in the diagram")
	ErrUnknownConcept   = errors.New("catbook: requirement references an unknown concept")
	ErrCycleDetected    = errors.New("catbook: prerequisite cycle detected, graph is not acyclic")
	ErrObjectNotFound   = errors.New("catbook: object not found")
	ErrMorphismNotFound = errors.New("catbook: morphism not found")
)

// Store defines the contract for persisting and retrieving the book's
// diagram catalogs and prerequisite graphs.
//
// Object and morphism ids are author-chosen and unique only within
// their diagram, so the granular operations are scoped by diagram id.
type Store interface {
	// Schema
	CreateSchema(ctx context.Context) error
	DropSchema(ctx context.Context) error

	// Diagrams (bulk operations)
	CreateDiagram(ctx context.Context, d *Diagram) (*Diagram, error)
	GetDiagram(ctx context.Context, diagramID string) (*Diagram, error)
	DeleteDiagram(ctx context.Context, diagramID string) error
	ListDiagrams(ctx context.Context) ([]DiagramInfo, error)

	// Objects
	AddObject(ctx context.Context, diagramID string, object *Object) (string, error)
	GetObject(ctx context.Context, diagramID, objectID string) (*Object, error)
	UpdateObject(ctx context.Context, diagramID string, object *Object) error
	DeleteObject(ctx context.Context, diagramID, objectID string) error
	ListObjects(ctx context.Context, diagramID string) ([]Object, error)

	// Morphisms
	AddMorphism(ctx context.Context, diagramID string, morphism *Morphism) (string, error)
	GetMorphism(ctx context.Context, diagramID, morphismID string) (*Morphism, error)
	UpdateMorphism(ctx context.Context, diagramID string, morphism *Morphism) error
	DeleteMorphism(ctx context.Context, diagramID, morphismID string) error
	ListMorphisms(ctx context.Context, diagramID string) ([]Morphism, error)

	// Prerequisite graphs
	SavePrereqGraph(ctx context.Context, g *PrereqGraph) error
	GetPrereqGraph(ctx context.Context, chapterID string) (*PrereqGraph, error)
	DeletePrereqGraph(ctx context.Context, chapterID string) error
}
