package domain

// DisplayTarget identifies the UI surface a block of label text is destined for.
type DisplayTarget string

const (
	TargetHover     DisplayTarget = "hover"
	TargetSelection DisplayTarget = "selection"
	TargetTooltip   DisplayTarget = "tooltip"
)

func AllDisplayTargets() []DisplayTarget {
	return []DisplayTarget{TargetHover, TargetSelection, TargetTooltip}
}

func ValidDisplayTarget(t string) bool {
	switch DisplayTarget(t) {
	case TargetHover, TargetSelection, TargetTooltip:
		return true
	}
	return false
}

// LineID names one line of a rendered label.
type LineID string

const (
	LineName          LineID = "name"
	LineOwner         LineID = "owner"
	LineCategory      LineID = "category"
	LineCapacity      LineID = "capacity"
	LineResources     LineID = "resources"
	LineHealth        LineID = "health"
	LineStrength      LineID = "strength"
	LineSpeed         LineID = "speed"
	LineShipCount     LineID = "ship_count"
	LineTotalStrength LineID = "total_strength"
)

func AllLineIDs() []LineID {
	return []LineID{
		LineName,
		LineOwner,
		LineCategory,
		LineCapacity,
		LineResources,
		LineHealth,
		LineStrength,
		LineSpeed,
		LineShipCount,
		LineTotalStrength,
	}
}
