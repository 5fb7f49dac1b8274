package catbook

import "fmt"

// Diagram is the fixed catalog of objects and morphisms backing one
// composer widget. A widget reads its diagram once at construction;
// diagrams are never mutated by a running engine.
type Diagram struct {
	ID        string     `json:"id"`
	Title     string     `json:"title,omitempty"`
	Objects   []Object   `json:"objects"`
	Morphisms []Morphism `json:"morphisms"`
}

// Object is a vertex in a diagram. X/Y are display coordinates for the
// viewer; the composition engine never reads them.
type Object struct {
	ID string  `json:"id"`
	X  float64 `json:"x"`
	Y  float64 `json:"y"`
}

// Morphism is a directed, labeled arrow between two objects.
// Source and Target name object IDs within the same diagram.
type Morphism struct {
	ID     string `json:"id"`
	Label  string `json:"label"`
	Source string `json:"source"`
	Target string `json:"target"`
}

// DiagramInfo is the lightweight listing form of a diagram.
type DiagramInfo struct {
	ID    string `json:"id"`
	Title string `json:"title,omitempty"`
}

// Validate checks referential integrity: every morphism's source and
// target must name an object in the diagram.
func (d *Diagram) Validate() error {
	objects := make(map[string]bool, len(d.Objects))
	for _, o := range d.Objects {
		objects[o.ID] = true
	}
	for _, m := range d.Morphisms {
		if !objects[m.Source] {
			return fmt.Errorf("catbook: morphism %q: source %q: %w", m.ID, m.Source, ErrUnknownObject)
		}
		if !objects[m.Target] {
			return fmt.Errorf("catbook: morphism %q: target %q: %w", m.ID, m.Target, ErrUnknownObject)
		}
	}
	return nil
}
