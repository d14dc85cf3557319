package label

import (
	"fmt"

	"github.com/Harshitk-cp/intelreport/internal/domain"
	"github.com/Harshitk-cp/intelreport/internal/report"
)

// Render dispatches r to the formatter of its kind.
func Render(target domain.DisplayTarget, r report.Report, includeUnknown bool) (string, error) {
	switch rep := r.(type) {
	case *report.Star:
		return StarFormatter.RenderText(target, rep, includeUnknown)
	case *report.Planet:
		return PlanetFormatter.RenderText(target, rep, includeUnknown)
	case *report.Ship:
		return ShipFormatter.RenderText(target, rep, includeUnknown)
	case *report.Fleet:
		return FleetFormatter.RenderText(target, rep, includeUnknown)
	}
	return "", fmt.Errorf("%w: %T", ErrUnsupportedReport, r)
}

// LineIDsFor returns the ordered lines kind renders for target.
func LineIDsFor(kind domain.EntityKind, target domain.DisplayTarget) ([]domain.LineID, error) {
	switch kind {
	case domain.KindStar:
		return StarFormatter.LineIDsFor(target)
	case domain.KindPlanet:
		return PlanetFormatter.LineIDsFor(target)
	case domain.KindShip:
		return ShipFormatter.LineIDsFor(target)
	case domain.KindFleet:
		return FleetFormatter.LineIDsFor(target)
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupportedReport, kind)
}
