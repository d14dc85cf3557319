package report

import (
	"errors"

	"github.com/Harshitk-cp/intelreport/internal/data"
	"github.com/Harshitk-cp/intelreport/internal/domain"
	"github.com/Harshitk-cp/intelreport/internal/intel"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrNilIntel            = errors.New("report: intel is required")
	ErrNilChildReport      = errors.New("report: child report is nil")
	ErrChildPlayerMismatch = errors.New("report: child report was generated for a different player")
	ErrDuplicateChild      = errors.New("report: child report supplied twice")
)

// BuildFunc synthesizes a fresh report. It must be pure: it reads the
// entity's data but never clears its dirty flag.
type BuildFunc[R Report, C Report] func(playerID uuid.UUID, in intel.Intel, children []C) R

// Generator owns the cached report of one entity and decides when it has to
// be rebuilt. A cached report is reused until the player, the player's
// coverage, the entity data or the set of child reports changes.
//
// A Generator is not safe for concurrent use; callers serialize access per
// entity.
type Generator[R Report, C Report] struct {
	src    data.Source
	build  BuildFunc[R, C]
	logger *zap.Logger

	cache  *cacheEntry[R]
	builds int
}

type cacheEntry[R Report] struct {
	report   R
	playerID uuid.UUID
	coverage domain.CoverageLevel
	version  uint64
	children map[Report]struct{}
}

func NewGenerator[R Report, C Report](src data.Source, build BuildFunc[R, C], logger *zap.Logger) *Generator[R, C] {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Generator[R, C]{src: src, build: build, logger: logger}
}

// GetReport returns the cached report when it is still valid and builds a
// new one otherwise. Children must already be generated for playerID.
func (g *Generator[R, C]) GetReport(playerID uuid.UUID, in intel.Intel, children []C) (R, error) {
	var zero R
	if in == nil {
		return zero, ErrNilIntel
	}

	childSet := make(map[Report]struct{}, len(children))
	for _, c := range children {
		child := Report(c)
		if child == nil || isNilPointer(child) {
			return zero, ErrNilChildReport
		}
		if child.PlayerID() != playerID {
			return zero, ErrChildPlayerMismatch
		}
		if _, dup := childSet[child]; dup {
			return zero, ErrDuplicateChild
		}
		childSet[child] = struct{}{}
	}

	coverage := in.CurrentCoverage()
	reason := g.staleReason(playerID, coverage, childSet)
	if reason == "" {
		return g.cache.report, nil
	}

	report := g.build(playerID, in, children)
	g.src.AcceptChanges()
	g.cache = &cacheEntry[R]{
		report:   report,
		playerID: playerID,
		coverage: coverage,
		version:  g.src.Version(),
		children: childSet,
	}
	g.builds++

	g.logger.Debug("report regenerated",
		zap.String("kind", string(report.Kind())),
		zap.String("entity_id", report.EntityID().String()),
		zap.String("player_id", playerID.String()),
		zap.String("reason", reason),
	)
	return report, nil
}

// Cached returns the last report without checking whether it is still valid.
func (g *Generator[R, C]) Cached() (R, bool) {
	if g.cache == nil {
		var zero R
		return zero, false
	}
	return g.cache.report, true
}

// Builds counts how many reports this generator has synthesized.
func (g *Generator[R, C]) Builds() int {
	return g.builds
}

// Invalidate drops the cached report.
func (g *Generator[R, C]) Invalidate() {
	g.cache = nil
}

func (g *Generator[R, C]) staleReason(playerID uuid.UUID, coverage domain.CoverageLevel, children map[Report]struct{}) string {
	c := g.cache
	switch {
	case c == nil:
		return "empty"
	case c.playerID != playerID:
		return "player"
	case c.coverage != coverage:
		return "coverage"
	case g.src.IsDirty() || c.version != g.src.Version():
		return "data"
	case !sameSet(c.children, children):
		return "children"
	}
	return ""
}

// sameSet reports whether the symmetric difference of a and b is empty.
func sameSet(a, b map[Report]struct{}) bool {
	if len(a) != len(b) {
		return false
	}
	for k := range a {
		if _, ok := b[k]; !ok {
			return false
		}
	}
	return true
}

func isNilPointer(r Report) bool {
	switch v := r.(type) {
	case *Star:
		return v == nil
	case *Planet:
		return v == nil
	case *Ship:
		return v == nil
	case *Fleet:
		return v == nil
	}
	return false
}
