package report

import (
	"fmt"

	"github.com/Harshitk-cp/intelreport/internal/domain"
)

// Attribute names a report field for visibility purposes.
type Attribute string

const (
	AttrName          Attribute = "name"
	AttrOwner         Attribute = "owner"
	AttrCategory      Attribute = "category"
	AttrCapacity      Attribute = "capacity"
	AttrResources     Attribute = "resources"
	AttrHealth        Attribute = "health"
	AttrStrength      Attribute = "strength"
	AttrSpeed         Attribute = "speed"
	AttrShipCount     Attribute = "ship_count"
	AttrTotalStrength Attribute = "total_strength"
)

// Visibility maps every attribute of one entity kind to the minimum
// coverage at which it is disclosed.
type Visibility struct {
	kind  domain.EntityKind
	attrs []Attribute
	min   map[Attribute]domain.CoverageLevel
}

// MustVisibility builds a table and panics if any declared attribute has no
// minimum coverage, or the table names an attribute that is not declared.
func MustVisibility(kind domain.EntityKind, attrs []Attribute, min map[Attribute]domain.CoverageLevel) Visibility {
	if len(attrs) != len(min) {
		panic(fmt.Sprintf("report: %s visibility declares %d attributes but maps %d", kind, len(attrs), len(min)))
	}
	for _, a := range attrs {
		level, ok := min[a]
		if !ok {
			panic(fmt.Sprintf("report: %s attribute %q has no minimum coverage", kind, a))
		}
		if !domain.ValidCoverageLevel(level) {
			panic(fmt.Sprintf("report: %s attribute %q has invalid coverage %d", kind, a, int(level)))
		}
	}
	return Visibility{kind: kind, attrs: attrs, min: min}
}

func (v Visibility) Kind() domain.EntityKind {
	return v.kind
}

// Attributes returns the declared attributes in declaration order.
func (v Visibility) Attributes() []Attribute {
	out := make([]Attribute, len(v.attrs))
	copy(out, v.attrs)
	return out
}

// Required returns the minimum coverage for a. Asking about an attribute the
// kind does not declare is a programming error.
func (v Visibility) Required(a Attribute) domain.CoverageLevel {
	level, ok := v.min[a]
	if !ok {
		panic(fmt.Sprintf("report: %s has no attribute %q", v.kind, a))
	}
	return level
}

// Discloses reports whether coverage is enough to see a.
func (v Visibility) Discloses(a Attribute, coverage domain.CoverageLevel) bool {
	return coverage.AtLeast(v.Required(a))
}

func disclose[T any](v Visibility, a Attribute, coverage domain.CoverageLevel, value T) Field[T] {
	if !v.Discloses(a, coverage) {
		return Unknown[T]()
	}
	return Known(value)
}

var (
	StarVisibility = MustVisibility(domain.KindStar,
		[]Attribute{AttrName, AttrCategory},
		map[Attribute]domain.CoverageLevel{
			AttrName:     domain.CoverageAware,
			AttrCategory: domain.CoverageBasic,
		})

	PlanetVisibility = MustVisibility(domain.KindPlanet,
		[]Attribute{AttrName, AttrOwner, AttrCapacity, AttrResources, AttrHealth},
		map[Attribute]domain.CoverageLevel{
			AttrName:      domain.CoverageBasic,
			AttrOwner:     domain.CoverageBasic,
			AttrCapacity:  domain.CoverageEssential,
			AttrResources: domain.CoverageBroad,
			AttrHealth:    domain.CoverageComprehensive,
		})

	ShipVisibility = MustVisibility(domain.KindShip,
		[]Attribute{AttrName, AttrOwner, AttrCategory, AttrStrength, AttrSpeed, AttrHealth},
		map[Attribute]domain.CoverageLevel{
			AttrName:     domain.CoverageBasic,
			AttrOwner:    domain.CoverageAware,
			AttrCategory: domain.CoverageBasic,
			AttrStrength: domain.CoverageEssential,
			AttrSpeed:    domain.CoverageBroad,
			AttrHealth:   domain.CoverageComprehensive,
		})

	FleetVisibility = MustVisibility(domain.KindFleet,
		[]Attribute{AttrName, AttrOwner, AttrSpeed, AttrShipCount, AttrTotalStrength},
		map[Attribute]domain.CoverageLevel{
			AttrName:          domain.CoverageBasic,
			AttrOwner:         domain.CoverageAware,
			AttrSpeed:         domain.CoverageBroad,
			AttrShipCount:     domain.CoverageAware,
			AttrTotalStrength: domain.CoverageEssential,
		})
)

// VisibilityFor returns the table for kind.
func VisibilityFor(kind domain.EntityKind) (Visibility, bool) {
	switch kind {
	case domain.KindStar:
		return StarVisibility, true
	case domain.KindPlanet:
		return PlanetVisibility, true
	case domain.KindShip:
		return ShipVisibility, true
	case domain.KindFleet:
		return FleetVisibility, true
	}
	return Visibility{}, false
}
