package catbook

import "fmt"

// Concept is a vertex in a chapter's prerequisite graph.
type Concept struct {
	ID    string `json:"id,omitempty"`
	Label string `json:"label"`
}

// Requirement is a directed prerequisite edge: understanding ConceptID
// requires RequiresID first.
type Requirement struct {
	ID         string `json:"id,omitempty"`
	ConceptID  string `json:"concept_id"`
	RequiresID string `json:"requires_id"`
}

// PrereqGraph is the concept-prerequisite graph shown in a chapter's
// panel. It must stay acyclic: a concept cannot transitively require
// itself.
type PrereqGraph struct {
	ChapterID    string        `json:"chapter_id"`
	Concepts     []Concept     `json:"concepts"`
	Requirements []Requirement `json:"requirements"`
}

// Validate checks that every requirement names known concepts and that
// the requirements form no cycle.
func (g *PrereqGraph) Validate() error {
	concepts := make(map[string]bool, len(g.Concepts))
	for _, c := range g.Concepts {
		concepts[c.ID] = true
	}
	for _, r := range g.Requirements {
		if !concepts[r.ConceptID] {
			return fmt.Errorf("catbook: requirement %q: concept %q: %w", r.ID, r.ConceptID, ErrUnknownConcept)
		}
		if !concepts[r.RequiresID] {
			return fmt.Errorf("catbook: requirement %q: concept %q: %w", r.ID, r.RequiresID, ErrUnknownConcept)
		}
	}
	return validateAcyclic(g.Concepts, g.Requirements)
}

// validateAcyclic checks that the requirements don't form a cycle using DFS.
func validateAcyclic(concepts []Concept, reqs []Requirement) error {
	adj := make(map[string][]string)
	for _, r := range reqs {
		adj[r.ConceptID] = append(adj[r.ConceptID], r.RequiresID)
	}

	const (
		unvisited = 0
		visiting  = 1
		visited   = 2
	)

	state := make(map[string]int)
	for _, c := range concepts {
		state[c.ID] = unvisited
	}

	var dfs func(id string) bool
	dfs = func(id string) bool {
		state[id] = visiting
		for _, next := range adj[id] {
			switch state[next] {
			case visiting:
				return true
			case unvisited:
				if dfs(next) {
					return true
				}
			}
		}
		state[id] = visited
		return false
	}

	for id, s := range state {
		if s == unvisited {
			if dfs(id) {
				return ErrCycleDetected
			}
		}
	}

	return nil
}
