// Package memory provides an in-memory catbook.Store. It backs the
// viewer when no database is configured (the shipped textbook's
// diagrams are fixed, so persistence is optional) and keeps tests free
// of external dependencies.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/meikuraledutech/catbook"
)

// MemStore implements catbook.Store with mutex-guarded maps.
// Values are deep-copied on the way in and out, so callers can't
// mutate stored state through retained pointers.
type MemStore struct {
	mu       sync.RWMutex
	diagrams map[string]*catbook.Diagram
	order    []string
	prereqs  map[string]*catbook.PrereqGraph
}

// New creates an empty MemStore.
func New() *MemStore {
	return &MemStore{
		diagrams: make(map[string]*catbook.Diagram),
		prereqs:  make(map[string]*catbook.PrereqGraph),
	}
}

// CreateSchema is a no-op; the maps exist from construction.
func (s *MemStore) CreateSchema(ctx context.Context) error { return nil }

// DropSchema discards all stored diagrams and prerequisite graphs.
func (s *MemStore) DropSchema(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.diagrams = make(map[string]*catbook.Diagram)
	s.order = nil
	s.prereqs = make(map[string]*catbook.PrereqGraph)
	return nil
}

// CreateDiagram stores a full diagram with replace semantics.
// Objects/morphisms without IDs get auto-generated UUIDs. Every
// morphism's source/target must name an object in the diagram.
func (s *MemStore) CreateDiagram(ctx context.Context, d *catbook.Diagram) (*catbook.Diagram, error) {
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

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.diagrams[d.ID]; !exists {
		s.order = append(s.order, d.ID)
	}
	s.diagrams[d.ID] = copyDiagram(d)

	return d, nil
}

// GetDiagram returns a copy of the stored diagram, or nil, nil if absent.
func (s *MemStore) GetDiagram(ctx context.Context, diagramID string) (*catbook.Diagram, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	d, ok := s.diagrams[diagramID]
	if !ok {
		return nil, nil
	}
	return copyDiagram(d), nil
}

// DeleteDiagram removes a diagram. No error if it doesn't exist.
func (s *MemStore) DeleteDiagram(ctx context.Context, diagramID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.diagrams[diagramID]; !ok {
		return nil
	}
	delete(s.diagrams, diagramID)
	for i, id := range s.order {
		if id == diagramID {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

// ListDiagrams returns id/title pairs in insertion order.
func (s *MemStore) ListDiagrams(ctx context.Context) ([]catbook.DiagramInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	infos := []catbook.DiagramInfo{}
	for _, id := range s.order {
		d := s.diagrams[id]
		infos = append(infos, catbook.DiagramInfo{ID: d.ID, Title: d.Title})
	}
	return infos, nil
}

// AddObject appends an object to a diagram, generating a UUID for a
// blank ID. Returns the object ID.
func (s *MemStore) AddObject(ctx context.Context, diagramID string, object *catbook.Object) (string, error) {
	if object.ID == "" {
		object.ID = uuid.NewString()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	d, ok := s.diagrams[diagramID]
	if !ok {
		return "", fmt.Errorf("catbook: diagram %q does not exist", diagramID)
	}
	d.Objects = append(d.Objects, *object)
	return object.ID, nil
}

// GetObject returns a copy of the object, or nil, nil if absent.
func (s *MemStore) GetObject(ctx context.Context, diagramID, objectID string) (*catbook.Object, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	d, ok := s.diagrams[diagramID]
	if !ok {
		return nil, nil
	}
	for _, o := range d.Objects {
		if o.ID == objectID {
			cp := o
			return &cp, nil
		}
	}
	return nil, nil
}

// UpdateObject updates an object's display position.
// Returns ErrObjectNotFound if the object doesn't exist.
func (s *MemStore) UpdateObject(ctx context.Context, diagramID string, object *catbook.Object) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	d, ok := s.diagrams[diagramID]
	if !ok {
		return catbook.ErrObjectNotFound
	}
	for i := range d.Objects {
		if d.Objects[i].ID == object.ID {
			d.Objects[i].X = object.X
			d.Objects[i].Y = object.Y
			return nil
		}
	}
	return catbook.ErrObjectNotFound
}

// DeleteObject removes an object and every morphism touching it.
// No error if the object doesn't exist.
func (s *MemStore) DeleteObject(ctx context.Context, diagramID, objectID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	d, ok := s.diagrams[diagramID]
	if !ok {
		return nil
	}
	objects := d.Objects[:0]
	for _, o := range d.Objects {
		if o.ID != objectID {
			objects = append(objects, o)
		}
	}
	d.Objects = objects

	morphisms := d.Morphisms[:0]
	for _, m := range d.Morphisms {
		if m.Source != objectID && m.Target != objectID {
			morphisms = append(morphisms, m)
		}
	}
	d.Morphisms = morphisms
	return nil
}

// ListObjects returns copies of a diagram's objects in insertion order.
func (s *MemStore) ListObjects(ctx context.Context, diagramID string) ([]catbook.Object, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	objects := []catbook.Object{}
	if d, ok := s.diagrams[diagramID]; ok {
		objects = append(objects, d.Objects...)
	}
	return objects, nil
}

// AddMorphism appends a morphism to a diagram, generating a UUID for a
// blank ID. The source and target objects must exist in the diagram.
func (s *MemStore) AddMorphism(ctx context.Context, diagramID string, morphism *catbook.Morphism) (string, error) {
	if morphism.ID == "" {
		morphism.ID = uuid.NewString()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	d, ok := s.diagrams[diagramID]
	if !ok {
		return "", fmt.Errorf("catbook: diagram %q does not exist", diagramID)
	}
	if err := checkEndpoints(d, morphism); err != nil {
		return "", err
	}
	d.Morphisms = append(d.Morphisms, *morphism)
	return morphism.ID, nil
}

// GetMorphism returns a copy of the morphism, or nil, nil if absent.
func (s *MemStore) GetMorphism(ctx context.Context, diagramID, morphismID string) (*catbook.Morphism, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	d, ok := s.diagrams[diagramID]
	if !ok {
		return nil, nil
	}
	for _, m := range d.Morphisms {
		if m.ID == morphismID {
			cp := m
			return &cp, nil
		}
	}
	return nil, nil
}

// UpdateMorphism updates a morphism's label, source, and target.
// Returns ErrMorphismNotFound if the morphism doesn't exist.
func (s *MemStore) UpdateMorphism(ctx context.Context, diagramID string, morphism *catbook.Morphism) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	d, ok := s.diagrams[diagramID]
	if !ok {
		return catbook.ErrMorphismNotFound
	}
	if err := checkEndpoints(d, morphism); err != nil {
		return err
	}
	for i := range d.Morphisms {
		if d.Morphisms[i].ID == morphism.ID {
			d.Morphisms[i].Label = morphism.Label
			d.Morphisms[i].Source = morphism.Source
			d.Morphisms[i].Target = morphism.Target
			return nil
		}
	}
	return catbook.ErrMorphismNotFound
}

// DeleteMorphism removes a morphism. No error if it doesn't exist.
func (s *MemStore) DeleteMorphism(ctx context.Context, diagramID, morphismID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	d, ok := s.diagrams[diagramID]
	if !ok {
		return nil
	}
	morphisms := d.Morphisms[:0]
	for _, m := range d.Morphisms {
		if m.ID != morphismID {
			morphisms = append(morphisms, m)
		}
	}
	d.Morphisms = morphisms
	return nil
}

// ListMorphisms returns copies of a diagram's morphisms in insertion order.
func (s *MemStore) ListMorphisms(ctx context.Context, diagramID string) ([]catbook.Morphism, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	morphisms := []catbook.Morphism{}
	if d, ok := s.diagrams[diagramID]; ok {
		morphisms = append(morphisms, d.Morphisms...)
	}
	return morphisms, nil
}

// SavePrereqGraph stores a chapter's prerequisite graph with replace
// semantics. The graph must be acyclic and internally consistent.
func (s *MemStore) SavePrereqGraph(ctx context.Context, g *catbook.PrereqGraph) error {
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

	s.mu.Lock()
	defer s.mu.Unlock()
	s.prereqs[g.ChapterID] = copyPrereqGraph(g)
	return nil
}

// GetPrereqGraph returns a copy of a chapter's prerequisite graph,
// or nil, nil if the chapter has none.
func (s *MemStore) GetPrereqGraph(ctx context.Context, chapterID string) (*catbook.PrereqGraph, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	g, ok := s.prereqs[chapterID]
	if !ok {
		return nil, nil
	}
	return copyPrereqGraph(g), nil
}

// DeletePrereqGraph removes a chapter's prerequisite graph.
// No error if the chapter doesn't exist.
func (s *MemStore) DeletePrereqGraph(ctx context.Context, chapterID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.prereqs, chapterID)
	return nil
}

func checkEndpoints(d *catbook.Diagram, morphism *catbook.Morphism) error {
	known := make(map[string]bool, len(d.Objects))
	for _, o := range d.Objects {
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

func copyDiagram(d *catbook.Diagram) *catbook.Diagram {
	cp := &catbook.Diagram{ID: d.ID, Title: d.Title}
	cp.Objects = append([]catbook.Object{}, d.Objects...)
	cp.Morphisms = append([]catbook.Morphism{}, d.Morphisms...)
	return cp
}

func copyPrereqGraph(g *catbook.PrereqGraph) *catbook.PrereqGraph {
	cp := &catbook.PrereqGraph{ChapterID: g.ChapterID}
	cp.Concepts = append([]catbook.Concept{}, g.Concepts...)
	cp.Requirements = append([]catbook.Requirement{}, g.Requirements...)
	return cp
}
