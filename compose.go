package catbook

// CanCompose reports whether m2 can be applied after m1, i.e. whether
// the composite m2∘m1 exists.
func CanCompose(m1, m2 Morphism) bool {
	return m1.Target == m2.Source
}

// Compose derives the composite of m1 followed by m2. The id and label
// use right-to-left notation: composing f then g yields g∘f.
// Returns false when the pair is not composable in that order.
func Compose(m1, m2 Morphism) (Morphism, bool) {
	if !CanCompose(m1, m2) {
		return Morphism{}, false
	}
	return Morphism{
		ID:     m2.ID + "∘" + m1.ID,
		Label:  m2.Label + "∘" + m1.Label,
		Source: m1.Source,
		Target: m2.Target,
	}, true
}
