// Package intel holds what one player currently knows about one entity.
package intel

import (
	"time"

	"github.com/Harshitk-cp/intelreport/internal/domain"
	"github.com/google/uuid"
)

// Intel is the per-(entity, player) knowledge state. It is mutated only by
// the detection subsystem and read by report generators.
type Intel interface {
	CurrentCoverage() domain.CoverageLevel
	Freshness() domain.Freshness
	// LastKnown is the moment the intel was last current. Zero if it never went stale.
	LastKnown() time.Time
	// TrySetCoverage raises coverage. It returns false and changes nothing
	// when the write is not allowed.
	TrySetCoverage(level domain.CoverageLevel) bool
	MarkStale(at time.Time)
	MarkCurrent()
	IsFixed() bool
}

// Fixed is intel whose coverage never changes, e.g. for a landmark every
// player can always see. It is always current.
type Fixed struct {
	coverage domain.CoverageLevel
}

func NewFixed(level domain.CoverageLevel) *Fixed {
	return &Fixed{coverage: level}
}

func (f *Fixed) CurrentCoverage() domain.CoverageLevel          { return f.coverage }
func (f *Fixed) Freshness() domain.Freshness                    { return domain.FreshnessCurrent }
func (f *Fixed) LastKnown() time.Time                           { return time.Time{} }
func (f *Fixed) TrySetCoverage(level domain.CoverageLevel) bool { return false }
func (f *Fixed) MarkStale(at time.Time)                         {}
func (f *Fixed) MarkCurrent()                                   {}
func (f *Fixed) IsFixed() bool                                  { return true }

// Improving is intel whose coverage only ever goes up. Losing detection makes
// it stale but keeps the best coverage reached.
type Improving struct {
	coverage  domain.CoverageLevel
	freshness domain.Freshness
	lastKnown time.Time
}

// NewImproving starts at level. Intel created at CoverageNone has unknown
// freshness until the entity is first detected.
func NewImproving(level domain.CoverageLevel) *Improving {
	freshness := domain.FreshnessCurrent
	if level == domain.CoverageNone {
		freshness = domain.FreshnessUnknown
	}
	return &Improving{coverage: level, freshness: freshness}
}

// Restore rebuilds an Improving intel from persisted state. It is not a
// reset: a restored intel keeps the same monotonic guarantees from then on.
func Restore(level domain.CoverageLevel, freshness domain.Freshness, lastKnown time.Time) *Improving {
	return &Improving{coverage: level, freshness: freshness, lastKnown: lastKnown}
}

func (i *Improving) CurrentCoverage() domain.CoverageLevel { return i.coverage }
func (i *Improving) Freshness() domain.Freshness           { return i.freshness }
func (i *Improving) LastKnown() time.Time                  { return i.lastKnown }
func (i *Improving) IsFixed() bool                         { return false }

func (i *Improving) TrySetCoverage(level domain.CoverageLevel) bool {
	if !domain.ValidCoverageLevel(level) || level <= i.coverage {
		return false
	}
	i.coverage = level
	return true
}

// MarkStale records that detection was lost at the given time.
func (i *Improving) MarkStale(at time.Time) {
	i.freshness = domain.FreshnessStale
	i.lastKnown = at
}

func (i *Improving) MarkCurrent() {
	i.freshness = domain.FreshnessCurrent
}

// FromRecord rebuilds intel from its persisted form.
func FromRecord(r *domain.IntelRecord) Intel {
	if r.Fixed {
		return NewFixed(r.Coverage)
	}
	var lastKnown time.Time
	if r.LastKnown != nil {
		lastKnown = *r.LastKnown
	}
	return Restore(r.Coverage, r.Freshness, lastKnown)
}

// ToRecord captures the persisted form of in for the given pair.
func ToRecord(in Intel, entityID, playerID uuid.UUID) *domain.IntelRecord {
	r := &domain.IntelRecord{
		EntityID:  entityID,
		PlayerID:  playerID,
		Fixed:     in.IsFixed(),
		Coverage:  in.CurrentCoverage(),
		Freshness: in.Freshness(),
	}
	if lk := in.LastKnown(); !lk.IsZero() {
		r.LastKnown = &lk
	}
	return r
}
