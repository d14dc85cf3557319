package label

import (
	"testing"

	"github.com/Harshitk-cp/intelreport/internal/data"
	"github.com/Harshitk-cp/intelreport/internal/domain"
	"github.com/Harshitk-cp/intelreport/internal/intel"
	"github.com/Harshitk-cp/intelreport/internal/report"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func planetReport(coverage domain.CoverageLevel) *report.Planet {
	d := data.NewPlanet("Alpha")
	d.SetCapacity(5)
	return report.BuildPlanet(uuid.New(), uuid.New(), intel.NewImproving(coverage), d)
}

func TestRenderText_OmissionPolicy(t *testing.T) {
	r := planetReport(domain.CoverageBasic)

	text, err := PlanetFormatter.RenderText(domain.TargetHover, r, false)
	require.NoError(t, err)
	assert.Equal(t, "Name: Alpha", text, "unknown capacity line is omitted without a blank line")

	text, err = PlanetFormatter.RenderText(domain.TargetHover, r, true)
	require.NoError(t, err)
	assert.Equal(t, "Name: Alpha\nCapacity: ?", text)
}

func TestRenderText_KnownValueIsFormatted(t *testing.T) {
	text, err := PlanetFormatter.RenderText(domain.TargetHover, planetReport(domain.CoverageEssential), true)
	require.NoError(t, err)
	assert.Equal(t, "Name: Alpha\nCapacity: 05", text)
}

func TestRenderText_AllUnknownIsEmpty(t *testing.T) {
	text, err := PlanetFormatter.RenderText(domain.TargetSelection, planetReport(domain.CoverageAware), false)
	require.NoError(t, err)
	assert.Equal(t, "", text)
}

func TestTryFormatLine(t *testing.T) {
	r := planetReport(domain.CoverageBasic)

	line, ok, err := PlanetFormatter.TryFormatLine(domain.LineName, r, false)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "Name: Alpha", line)

	_, ok, err = PlanetFormatter.TryFormatLine(domain.LineCapacity, r, false)
	require.NoError(t, err)
	assert.False(t, ok)

	line, ok, err = PlanetFormatter.TryFormatLine(domain.LineCapacity, r, true)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "Capacity: ?", line)

	line, ok, err = PlanetFormatter.TryFormatLine(domain.LineOwner, r, false)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "Owner: -", line, "an empty known value is not unknown")
}

func TestUnmappedIdsAreErrors(t *testing.T) {
	r := planetReport(domain.CoverageBasic)

	_, _, err := PlanetFormatter.TryFormatLine(domain.LineShipCount, r, true)
	assert.ErrorIs(t, err, ErrUnmappedLine)

	_, err = PlanetFormatter.RenderText(domain.DisplayTarget("minimap"), r, true)
	assert.ErrorIs(t, err, ErrUnmappedTarget)

	_, err = PlanetFormatter.LineIDsFor(domain.DisplayTarget("minimap"))
	assert.ErrorIs(t, err, ErrUnmappedTarget)
}

func TestLineIDsFor_DeclarationOrder(t *testing.T) {
	ids, err := ShipFormatter.LineIDsFor(domain.TargetSelection)
	require.NoError(t, err)
	assert.Equal(t, []domain.LineID{
		domain.LineName,
		domain.LineOwner,
		domain.LineCategory,
		domain.LineStrength,
		domain.LineSpeed,
		domain.LineHealth,
	}, ids)

	ids[0] = domain.LineHealth
	again, _ := ShipFormatter.LineIDsFor(domain.TargetSelection)
	assert.Equal(t, domain.LineName, again[0], "callers get a copy")
}

func TestMustFormatter_PanicsOnTableOmission(t *testing.T) {
	name := field("Name: %s", (*report.Star).Name, text)
	allTargets := func(ids ...domain.LineID) map[domain.DisplayTarget][]domain.LineID {
		m := make(map[domain.DisplayTarget][]domain.LineID)
		for _, target := range domain.AllDisplayTargets() {
			m[target] = ids
		}
		return m
	}

	assert.NotPanics(t, func() {
		MustFormatter(domain.KindStar, map[domain.LineID]Line[*report.Star]{domain.LineName: name}, allTargets(domain.LineName))
	})

	t.Run("target lists unmapped line", func(t *testing.T) {
		assert.Panics(t, func() {
			MustFormatter(domain.KindStar, map[domain.LineID]Line[*report.Star]{domain.LineName: name}, allTargets(domain.LineName, domain.LineCategory))
		})
	})

	t.Run("missing target", func(t *testing.T) {
		assert.Panics(t, func() {
			MustFormatter(domain.KindStar, map[domain.LineID]Line[*report.Star]{domain.LineName: name},
				map[domain.DisplayTarget][]domain.LineID{domain.TargetHover: {domain.LineName}})
		})
	})

	t.Run("nil extractor", func(t *testing.T) {
		assert.Panics(t, func() {
			MustFormatter(domain.KindStar, map[domain.LineID]Line[*report.Star]{domain.LineName: {Template: "%s"}}, allTargets(domain.LineName))
		})
	})

	t.Run("template without verb", func(t *testing.T) {
		bad := name
		bad.Template = "Name"
		assert.Panics(t, func() {
			MustFormatter(domain.KindStar, map[domain.LineID]Line[*report.Star]{domain.LineName: bad}, allTargets(domain.LineName))
		})
	})
}

func TestFleetStrengthLine(t *testing.T) {
	playerID := uuid.New()
	ship := func(coverage domain.CoverageLevel, strength int) *report.Ship {
		d := data.NewShip("s", "red", "frigate")
		d.SetStrength(strength)
		return report.BuildShip(uuid.New(), playerID, intel.NewImproving(coverage), d)
	}
	fleet := report.BuildFleet(uuid.New(), playerID, intel.NewImproving(domain.CoverageEssential), data.NewFleet("First", "red"),
		[]*report.Ship{ship(domain.CoverageEssential, 8), ship(domain.CoverageBasic, 3)})

	text, err := FleetFormatter.RenderText(domain.TargetHover, fleet, false)
	require.NoError(t, err)
	assert.Equal(t, "Name: First\nShips: 2\nStrength: 8 (+1 ?)", text)
}

func TestRender_Dispatch(t *testing.T) {
	star := report.BuildStar(uuid.New(), uuid.New(), intel.NewFixed(domain.CoverageBasic), data.NewStar("Sol", "yellow dwarf"))
	text, err := Render(domain.TargetHover, star, false)
	require.NoError(t, err)
	assert.Equal(t, "Sol\nClass: yellow dwarf", text)

	_, err = Render(domain.TargetHover, fakeReport{}, false)
	assert.ErrorIs(t, err, ErrUnsupportedReport)

	ids, err := LineIDsFor(domain.KindFleet, domain.TargetTooltip)
	require.NoError(t, err)
	assert.Equal(t, []domain.LineID{domain.LineName}, ids)

	_, err = LineIDsFor(domain.EntityKind("moon"), domain.TargetTooltip)
	assert.ErrorIs(t, err, ErrUnsupportedReport)
}

type fakeReport struct{}

func (fakeReport) Kind() domain.EntityKind        { return domain.EntityKind("moon") }
func (fakeReport) EntityID() uuid.UUID            { return uuid.Nil }
func (fakeReport) PlayerID() uuid.UUID            { return uuid.Nil }
func (fakeReport) Coverage() domain.CoverageLevel { return domain.CoverageNone }
