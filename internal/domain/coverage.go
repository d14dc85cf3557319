package domain

import (
	"fmt"
	"strings"
)

// CoverageLevel is how deep an observer's knowledge of an entity goes.
// Levels are totally ordered; every visibility check compares them.
type CoverageLevel int

const (
	CoverageNone CoverageLevel = iota
	CoverageAware
	CoverageBasic
	CoverageEssential
	CoverageBroad
	CoverageComprehensive
)

var coverageNames = map[CoverageLevel]string{
	CoverageNone:          "none",
	CoverageAware:         "aware",
	CoverageBasic:         "basic",
	CoverageEssential:     "essential",
	CoverageBroad:         "broad",
	CoverageComprehensive: "comprehensive",
}

func (c CoverageLevel) String() string {
	if name, ok := coverageNames[c]; ok {
		return name
	}
	return fmt.Sprintf("coverage(%d)", int(c))
}

// AtLeast reports whether c discloses anything gated at min.
func (c CoverageLevel) AtLeast(min CoverageLevel) bool {
	return c >= min
}

func (c CoverageLevel) MarshalText() ([]byte, error) {
	if !ValidCoverageLevel(c) {
		return nil, fmt.Errorf("invalid coverage level %d", int(c))
	}
	return []byte(c.String()), nil
}

func (c *CoverageLevel) UnmarshalText(b []byte) error {
	level, err := ParseCoverageLevel(string(b))
	if err != nil {
		return err
	}
	*c = level
	return nil
}

// ParseCoverageLevel accepts the lowercase level names, case-insensitively.
func ParseCoverageLevel(s string) (CoverageLevel, error) {
	want := strings.ToLower(strings.TrimSpace(s))
	for level, name := range coverageNames {
		if name == want {
			return level, nil
		}
	}
	return CoverageNone, fmt.Errorf("unknown coverage level %q", s)
}

func ValidCoverageLevel(c CoverageLevel) bool {
	return c >= CoverageNone && c <= CoverageComprehensive
}

func AllCoverageLevels() []CoverageLevel {
	return []CoverageLevel{
		CoverageNone,
		CoverageAware,
		CoverageBasic,
		CoverageEssential,
		CoverageBroad,
		CoverageComprehensive,
	}
}

// Freshness says whether knowledge reflects the present or a past moment.
// It is independent of CoverageLevel.
type Freshness string

const (
	FreshnessUnknown Freshness = "unknown"
	FreshnessStale   Freshness = "stale"
	FreshnessCurrent Freshness = "current"
)

func ValidFreshness(f string) bool {
	switch Freshness(f) {
	case FreshnessUnknown, FreshnessStale, FreshnessCurrent:
		return true
	}
	return false
}
