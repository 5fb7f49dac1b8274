package catbook

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanCompose(t *testing.T) {
	f := Morphism{ID: "f", Label: "f", Source: "A", Target: "B"}
	g := Morphism{ID: "g", Label: "g", Source: "B", Target: "C"}
	h := Morphism{ID: "h", Label: "h", Source: "C", Target: "D"}

	assert.True(t, CanCompose(f, g))
	assert.False(t, CanCompose(g, f)) // wrong order never succeeds
	assert.True(t, CanCompose(g, h))
	assert.False(t, CanCompose(f, h))
	assert.False(t, CanCompose(h, f))
}

func TestCanComposeMatchesEndpoints(t *testing.T) {
	objects := []string{"A", "B", "C"}
	for _, src1 := range objects {
		for _, tgt1 := range objects {
			for _, src2 := range objects {
				for _, tgt2 := range objects {
					m1 := Morphism{ID: "m1", Source: src1, Target: tgt1}
					m2 := Morphism{ID: "m2", Source: src2, Target: tgt2}
					assert.Equal(t, tgt1 == src2, CanCompose(m1, m2))
				}
			}
		}
	}
}

func TestComposeLabelConvention(t *testing.T) {
	f := Morphism{ID: "f", Label: "f", Source: "A", Target: "B"}
	g := Morphism{ID: "g", Label: "g", Source: "B", Target: "C"}

	c, ok := Compose(f, g)
	require.True(t, ok)
	assert.Equal(t, "g∘f", c.ID)
	assert.Equal(t, "g∘f", c.Label)
	assert.Equal(t, "A", c.Source)
	assert.Equal(t, "C", c.Target)
}

func TestComposeNotComposable(t *testing.T) {
	f := Morphism{ID: "f", Label: "f", Source: "A", Target: "B"}
	h := Morphism{ID: "h", Label: "h", Source: "C", Target: "D"}

	c, ok := Compose(f, h)
	assert.False(t, ok)
	assert.Equal(t, Morphism{}, c)
}

func TestComposeDeterministic(t *testing.T) {
	f := Morphism{ID: "f", Label: "f", Source: "A", Target: "B"}
	g := Morphism{ID: "g", Label: "g", Source: "B", Target: "C"}

	c1, ok1 := Compose(f, g)
	c2, ok2 := Compose(f, g)
	require.True(t, ok1)
	require.True(t, ok2)
	assert.Equal(t, c1, c2)
}
