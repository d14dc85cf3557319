package label

import (
	"fmt"

	"github.com/Harshitk-cp/intelreport/internal/domain"
	"github.com/Harshitk-cp/intelreport/internal/report"
)

var StarFormatter = MustFormatter(domain.KindStar,
	map[domain.LineID]Line[*report.Star]{
		domain.LineName:     field("%s", (*report.Star).Name, text),
		domain.LineCategory: field("Class: %s", (*report.Star).Category, text),
	},
	map[domain.DisplayTarget][]domain.LineID{
		domain.TargetHover:     {domain.LineName, domain.LineCategory},
		domain.TargetSelection: {domain.LineName, domain.LineCategory},
		domain.TargetTooltip:   {domain.LineName},
	})

var PlanetFormatter = MustFormatter(domain.KindPlanet,
	map[domain.LineID]Line[*report.Planet]{
		domain.LineName:      field("Name: %s", (*report.Planet).Name, text),
		domain.LineOwner:     field("Owner: %s", (*report.Planet).Owner, text),
		domain.LineCapacity:  field("Capacity: %s", (*report.Planet).Capacity, padded),
		domain.LineResources: field("Resources: %s", (*report.Planet).Resources, count),
		domain.LineHealth:    field("Health: %s", (*report.Planet).Health, percent),
	},
	map[domain.DisplayTarget][]domain.LineID{
		domain.TargetHover: {domain.LineName, domain.LineCapacity},
		domain.TargetSelection: {
			domain.LineName,
			domain.LineOwner,
			domain.LineCapacity,
			domain.LineResources,
			domain.LineHealth,
		},
		domain.TargetTooltip: {domain.LineName},
	})

var ShipFormatter = MustFormatter(domain.KindShip,
	map[domain.LineID]Line[*report.Ship]{
		domain.LineName:     field("Name: %s", (*report.Ship).Name, text),
		domain.LineOwner:    field("Owner: %s", (*report.Ship).Owner, text),
		domain.LineCategory: field("Class: %s", (*report.Ship).Category, text),
		domain.LineStrength: field("Strength: %s", (*report.Ship).Strength, count),
		domain.LineSpeed:    field("Speed: %s", (*report.Ship).Speed, speed),
		domain.LineHealth:   field("Health: %s", (*report.Ship).Health, percent),
	},
	map[domain.DisplayTarget][]domain.LineID{
		domain.TargetHover: {domain.LineName, domain.LineCategory, domain.LineStrength},
		domain.TargetSelection: {
			domain.LineName,
			domain.LineOwner,
			domain.LineCategory,
			domain.LineStrength,
			domain.LineSpeed,
			domain.LineHealth,
		},
		domain.TargetTooltip: {domain.LineName, domain.LineOwner},
	})

var FleetFormatter = MustFormatter(domain.KindFleet,
	map[domain.LineID]Line[*report.Fleet]{
		domain.LineName:          field("Name: %s", (*report.Fleet).Name, text),
		domain.LineOwner:         field("Owner: %s", (*report.Fleet).Owner, text),
		domain.LineSpeed:         field("Speed: %s", (*report.Fleet).Speed, speed),
		domain.LineShipCount:     field("Ships: %s", (*report.Fleet).ShipCount, count),
		domain.LineTotalStrength: {Template: "Strength: %s", Value: fleetStrength},
	},
	map[domain.DisplayTarget][]domain.LineID{
		domain.TargetHover: {domain.LineName, domain.LineShipCount, domain.LineTotalStrength},
		domain.TargetSelection: {
			domain.LineName,
			domain.LineOwner,
			domain.LineSpeed,
			domain.LineShipCount,
			domain.LineTotalStrength,
		},
		domain.TargetTooltip: {domain.LineName},
	})

// fleetStrength flags a partial total with the number of ships left out.
func fleetStrength(r *report.Fleet) (string, bool) {
	total, ok := r.TotalStrength().Get()
	if !ok {
		return "", false
	}
	if missing, _ := r.UndisclosedStrength().Get(); missing > 0 {
		return fmt.Sprintf("%d (+%d %s)", total, missing, Placeholder), true
	}
	return count(total), true
}
