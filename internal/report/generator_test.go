package report

import (
	"testing"

	"github.com/Harshitk-cp/intelreport/internal/data"
	"github.com/Harshitk-cp/intelreport/internal/domain"
	"github.com/Harshitk-cp/intelreport/internal/intel"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newPlanetGenerator(d *data.Planet, entityID uuid.UUID) *Generator[*Planet, Report] {
	return NewGenerator[*Planet, Report](d, func(playerID uuid.UUID, in intel.Intel, _ []Report) *Planet {
		return BuildPlanet(entityID, playerID, in, d)
	}, zap.NewNop())
}

func newFleetGenerator(d *data.Fleet, entityID uuid.UUID) *Generator[*Fleet, *Ship] {
	return NewGenerator[*Fleet, *Ship](d, func(playerID uuid.UUID, in intel.Intel, ships []*Ship) *Fleet {
		return BuildFleet(entityID, playerID, in, d, ships)
	}, zap.NewNop())
}

func TestGenerator_Idempotent(t *testing.T) {
	d := data.NewPlanet("Alpha")
	g := newPlanetGenerator(d, uuid.New())
	playerID := uuid.New()
	in := intel.NewImproving(domain.CoverageBasic)

	first, err := g.GetReport(playerID, in, nil)
	require.NoError(t, err)
	second, err := g.GetReport(playerID, in, nil)
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, 1, g.Builds())
}

func TestGenerator_MutationBustsCache(t *testing.T) {
	d := data.NewPlanet("Alpha")
	g := newPlanetGenerator(d, uuid.New())
	playerID := uuid.New()
	in := intel.NewImproving(domain.CoverageBasic)

	first, err := g.GetReport(playerID, in, nil)
	require.NoError(t, err)
	assert.False(t, d.IsDirty())

	d.SetName("Beta")
	assert.True(t, d.IsDirty())

	second, err := g.GetReport(playerID, in, nil)
	require.NoError(t, err)
	assert.NotSame(t, first, second)
	assert.False(t, d.IsDirty(), "generation accepts changes")
	name, _ := second.Name().Get()
	assert.Equal(t, "Beta", name)

	third, err := g.GetReport(playerID, in, nil)
	require.NoError(t, err)
	assert.Same(t, second, third)
	assert.Equal(t, 2, g.Builds())
}

func TestGenerator_NoopWriteKeepsCache(t *testing.T) {
	d := data.NewPlanet("Alpha")
	g := newPlanetGenerator(d, uuid.New())
	playerID := uuid.New()
	in := intel.NewImproving(domain.CoverageBasic)

	first, _ := g.GetReport(playerID, in, nil)
	d.SetName("Alpha")
	second, _ := g.GetReport(playerID, in, nil)

	assert.Same(t, first, second)
}

func TestGenerator_CoverageChangeBustsCache(t *testing.T) {
	d := data.NewPlanet("Alpha")
	d.SetCapacity(5)
	g := newPlanetGenerator(d, uuid.New())
	playerID := uuid.New()
	in := intel.NewImproving(domain.CoverageBasic)

	first, _ := g.GetReport(playerID, in, nil)
	assert.False(t, first.Capacity().IsKnown())

	require.True(t, in.TrySetCoverage(domain.CoverageEssential))
	second, _ := g.GetReport(playerID, in, nil)

	assert.NotSame(t, first, second)
	capacity, ok := second.Capacity().Get()
	assert.True(t, ok)
	assert.Equal(t, 5, capacity)
}

func TestGenerator_FreshnessDoesNotBustCache(t *testing.T) {
	d := data.NewPlanet("Alpha")
	g := newPlanetGenerator(d, uuid.New())
	playerID := uuid.New()
	in := intel.NewImproving(domain.CoverageBasic)

	first, _ := g.GetReport(playerID, in, nil)
	in.MarkStale(in.LastKnown())
	second, _ := g.GetReport(playerID, in, nil)

	assert.Same(t, first, second)
}

func TestGenerator_PlayerChangeBustsCache(t *testing.T) {
	d := data.NewPlanet("Alpha")
	g := newPlanetGenerator(d, uuid.New())
	in := intel.NewImproving(domain.CoverageBasic)
	red, blue := uuid.New(), uuid.New()

	first, _ := g.GetReport(red, in, nil)
	second, _ := g.GetReport(blue, in, nil)

	assert.NotSame(t, first, second)
	assert.Equal(t, blue, second.PlayerID())
}

func TestGenerator_ChildSetSensitivity(t *testing.T) {
	playerID := uuid.New()
	fleetData := data.NewFleet("First", "red")
	g := newFleetGenerator(fleetData, uuid.New())
	in := intel.NewImproving(domain.CoverageEssential)

	a := shipReport(t, playerID, domain.CoverageEssential, 4)
	b := shipReport(t, playerID, domain.CoverageEssential, 6)

	first, err := g.GetReport(playerID, in, []*Ship{a})
	require.NoError(t, err)

	same, err := g.GetReport(playerID, in, []*Ship{a})
	require.NoError(t, err)
	assert.Same(t, first, same)

	added, err := g.GetReport(playerID, in, []*Ship{a, b})
	require.NoError(t, err)
	assert.NotSame(t, first, added)
	total, _ := added.TotalStrength().Get()
	assert.Equal(t, 10, total)

	reordered, err := g.GetReport(playerID, in, []*Ship{b, a})
	require.NoError(t, err)
	assert.Same(t, added, reordered, "child order is not part of the key")

	removed, err := g.GetReport(playerID, in, []*Ship{b})
	require.NoError(t, err)
	assert.NotSame(t, added, removed)

	b2 := shipReport(t, playerID, domain.CoverageEssential, 6)
	replaced, err := g.GetReport(playerID, in, []*Ship{b2})
	require.NoError(t, err)
	assert.NotSame(t, removed, replaced, "a regenerated child is a different report")

	assert.False(t, fleetData.IsDirty())
	assert.Equal(t, 4, g.Builds())
}

func TestGenerator_RejectsBadChildren(t *testing.T) {
	playerID := uuid.New()
	g := newFleetGenerator(data.NewFleet("First", "red"), uuid.New())
	in := intel.NewImproving(domain.CoverageEssential)
	ship := shipReport(t, playerID, domain.CoverageBasic, 1)

	_, err := g.GetReport(playerID, in, []*Ship{nil})
	assert.ErrorIs(t, err, ErrNilChildReport)

	_, err = g.GetReport(uuid.New(), in, []*Ship{ship})
	assert.ErrorIs(t, err, ErrChildPlayerMismatch)

	_, err = g.GetReport(playerID, in, []*Ship{ship, ship})
	assert.ErrorIs(t, err, ErrDuplicateChild)

	_, err = g.GetReport(playerID, nil, nil)
	assert.ErrorIs(t, err, ErrNilIntel)

	_, ok := g.Cached()
	assert.False(t, ok, "failed calls must not populate the cache")
	assert.Zero(t, g.Builds())
}

func TestGenerator_Invalidate(t *testing.T) {
	d := data.NewPlanet("Alpha")
	g := newPlanetGenerator(d, uuid.New())
	playerID := uuid.New()
	in := intel.NewImproving(domain.CoverageBasic)

	first, _ := g.GetReport(playerID, in, nil)
	cached, ok := g.Cached()
	require.True(t, ok)
	assert.Same(t, first, cached)

	g.Invalidate()
	second, _ := g.GetReport(playerID, in, nil)
	assert.NotSame(t, first, second)
}
