package catbook

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDiagramValidate(t *testing.T) {
	d := compositionDiagram()
	assert.NoError(t, d.Validate())
}

func TestDiagramValidateUnknownSource(t *testing.T) {
	d := compositionDiagram()
	d.Morphisms = append(d.Morphisms, Morphism{ID: "bad", Label: "bad", Source: "Z", Target: "A"})
	assert.ErrorIs(t, d.Validate(), ErrUnknownObject)
}

func TestDiagramValidateUnknownTarget(t *testing.T) {
	d := compositionDiagram()
	d.Morphisms = append(d.Morphisms, Morphism{ID: "bad", Label: "bad", Source: "A", Target: "Z"})
	assert.ErrorIs(t, d.Validate(), ErrUnknownObject)
}

func TestDiagramValidateEmpty(t *testing.T) {
	d := &Diagram{ID: "empty"}
	assert.NoError(t, d.Validate())
}
