package intel

import (
	"testing"
	"time"

	"github.com/Harshitk-cp/intelreport/internal/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFixed_RejectsWrites(t *testing.T) {
	f := NewFixed(domain.CoverageBroad)

	assert.False(t, f.TrySetCoverage(domain.CoverageComprehensive))
	assert.False(t, f.TrySetCoverage(domain.CoverageAware))
	assert.Equal(t, domain.CoverageBroad, f.CurrentCoverage())

	f.MarkStale(time.Now())
	assert.Equal(t, domain.FreshnessCurrent, f.Freshness())
	assert.True(t, f.LastKnown().IsZero())
	assert.True(t, f.IsFixed())
}

func TestImproving_NonIncreasingSequenceIsNoop(t *testing.T) {
	in := NewImproving(domain.CoverageEssential)

	for _, level := range []domain.CoverageLevel{
		domain.CoverageEssential,
		domain.CoverageBasic,
		domain.CoverageAware,
		domain.CoverageNone,
	} {
		assert.False(t, in.TrySetCoverage(level), "TrySetCoverage(%v)", level)
		assert.Equal(t, domain.CoverageEssential, in.CurrentCoverage())
	}
}

func TestImproving_IncreasingSequenceAdvancesInOrder(t *testing.T) {
	in := NewImproving(domain.CoverageNone)

	for _, level := range []domain.CoverageLevel{
		domain.CoverageAware,
		domain.CoverageBasic,
		domain.CoverageEssential,
		domain.CoverageBroad,
		domain.CoverageComprehensive,
	} {
		require.True(t, in.TrySetCoverage(level), "TrySetCoverage(%v)", level)
		assert.Equal(t, level, in.CurrentCoverage())
	}
}

func TestImproving_SkipsLevels(t *testing.T) {
	in := NewImproving(domain.CoverageAware)
	assert.True(t, in.TrySetCoverage(domain.CoverageBroad))
	assert.False(t, in.TrySetCoverage(domain.CoverageEssential))
	assert.Equal(t, domain.CoverageBroad, in.CurrentCoverage())
}

func TestImproving_RejectsInvalidLevel(t *testing.T) {
	in := NewImproving(domain.CoverageBasic)
	assert.False(t, in.TrySetCoverage(domain.CoverageLevel(99)))
	assert.Equal(t, domain.CoverageBasic, in.CurrentCoverage())
}

func TestImproving_Freshness(t *testing.T) {
	t.Run("undetected starts unknown", func(t *testing.T) {
		in := NewImproving(domain.CoverageNone)
		assert.Equal(t, domain.FreshnessUnknown, in.Freshness())
	})

	t.Run("detected starts current", func(t *testing.T) {
		in := NewImproving(domain.CoverageAware)
		assert.Equal(t, domain.FreshnessCurrent, in.Freshness())
	})

	t.Run("stale keeps coverage", func(t *testing.T) {
		in := NewImproving(domain.CoverageEssential)
		lost := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

		in.MarkStale(lost)

		assert.Equal(t, domain.FreshnessStale, in.Freshness())
		assert.Equal(t, domain.CoverageEssential, in.CurrentCoverage())
		assert.Equal(t, lost, in.LastKnown())
	})

	t.Run("regaining detection may raise coverage", func(t *testing.T) {
		in := NewImproving(domain.CoverageBasic)
		in.MarkStale(time.Now())

		in.MarkCurrent()
		assert.True(t, in.TrySetCoverage(domain.CoverageBroad))

		assert.Equal(t, domain.FreshnessCurrent, in.Freshness())
		assert.Equal(t, domain.CoverageBroad, in.CurrentCoverage())
	})
}

func TestRecordRoundTrip(t *testing.T) {
	entityID, playerID := uuid.New(), uuid.New()
	lost := time.Date(2026, 5, 2, 8, 30, 0, 0, time.UTC)

	in := NewImproving(domain.CoverageBroad)
	in.MarkStale(lost)

	rec := ToRecord(in, entityID, playerID)
	assert.Equal(t, entityID, rec.EntityID)
	assert.Equal(t, playerID, rec.PlayerID)
	assert.False(t, rec.Fixed)
	require.NotNil(t, rec.LastKnown)

	restored := FromRecord(rec)
	assert.Equal(t, domain.CoverageBroad, restored.CurrentCoverage())
	assert.Equal(t, domain.FreshnessStale, restored.Freshness())
	assert.Equal(t, lost, restored.LastKnown())
	assert.False(t, restored.TrySetCoverage(domain.CoverageBasic))

	fixed := FromRecord(ToRecord(NewFixed(domain.CoverageBasic), entityID, playerID))
	assert.True(t, fixed.IsFixed())
	assert.Nil(t, ToRecord(fixed, entityID, playerID).LastKnown)
}
