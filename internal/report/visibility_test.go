package report

import (
	"testing"

	"github.com/Harshitk-cp/intelreport/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestVisibilityTablesAreComplete(t *testing.T) {
	for _, kind := range domain.AllEntityKinds() {
		v, ok := VisibilityFor(kind)
		if !assert.True(t, ok, "no visibility table for %s", kind) {
			continue
		}
		assert.Equal(t, kind, v.Kind())
		for _, a := range v.Attributes() {
			assert.NotPanics(t, func() { v.Required(a) }, "%s.%s", kind, a)
		}
	}
}

func TestMustVisibility_PanicsOnMissingEntry(t *testing.T) {
	assert.Panics(t, func() {
		MustVisibility(domain.KindShip,
			[]Attribute{AttrName, AttrStrength},
			map[Attribute]domain.CoverageLevel{AttrName: domain.CoverageBasic, AttrOwner: domain.CoverageAware})
	})
	assert.Panics(t, func() {
		MustVisibility(domain.KindShip,
			[]Attribute{AttrName},
			map[Attribute]domain.CoverageLevel{})
	})
	assert.Panics(t, func() {
		MustVisibility(domain.KindShip,
			[]Attribute{AttrName},
			map[Attribute]domain.CoverageLevel{AttrName: domain.CoverageLevel(-1)})
	})
}

func TestVisibility_RequiredPanicsOnUndeclaredAttribute(t *testing.T) {
	assert.Panics(t, func() { StarVisibility.Required(AttrCapacity) })
}

func TestVisibility_Discloses(t *testing.T) {
	assert.False(t, PlanetVisibility.Discloses(AttrCapacity, domain.CoverageBasic))
	assert.True(t, PlanetVisibility.Discloses(AttrCapacity, domain.CoverageEssential))
	assert.True(t, PlanetVisibility.Discloses(AttrCapacity, domain.CoverageComprehensive))
}

func TestField(t *testing.T) {
	v, ok := Known(5).Get()
	assert.True(t, ok)
	assert.Equal(t, 5, v)

	v, ok = Unknown[int]().Get()
	assert.False(t, ok)
	assert.Zero(t, v)

	var zero Field[string]
	assert.False(t, zero.IsKnown())

	b, err := Unknown[int]().MarshalJSON()
	assert.NoError(t, err)
	assert.Equal(t, "null", string(b))

	b, err = Known("Alpha").MarshalJSON()
	assert.NoError(t, err)
	assert.Equal(t, `"Alpha"`, string(b))
}
