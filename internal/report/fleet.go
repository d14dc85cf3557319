package report

import (
	"encoding/json"

	"github.com/Harshitk-cp/intelreport/internal/data"
	"github.com/Harshitk-cp/intelreport/internal/domain"
	"github.com/Harshitk-cp/intelreport/internal/intel"
	"github.com/google/uuid"
)

// Fleet is the report of a composite entity. Its aggregates are derived
// from the member ship reports, which were filtered for the same player.
type Fleet struct {
	header
	name          Field[string]
	owner         Field[string]
	speed         Field[float64]
	shipCount     Field[int]
	totalStrength Field[int]
	undisclosed   Field[int]
	ships         []*Ship
}

// BuildFleet aggregates only what each ship report itself discloses; it
// never looks at ship data directly.
func BuildFleet(entityID, playerID uuid.UUID, in intel.Intel, d *data.Fleet, ships []*Ship) *Fleet {
	cov := in.CurrentCoverage()
	v := FleetVisibility

	total, disclosed := 0, 0
	for _, s := range ships {
		if strength, ok := s.Strength().Get(); ok {
			total += strength
			disclosed++
		}
	}

	r := &Fleet{
		header:    header{entityID: entityID, playerID: playerID, coverage: cov},
		name:      disclose(v, AttrName, cov, d.Name()),
		owner:     disclose(v, AttrOwner, cov, d.Owner()),
		speed:     disclose(v, AttrSpeed, cov, d.Speed()),
		shipCount: disclose(v, AttrShipCount, cov, len(ships)),
	}
	// An empty fleet has a disclosed total of zero.
	if v.Discloses(AttrTotalStrength, cov) && (disclosed > 0 || len(ships) == 0) {
		r.totalStrength = Known(total)
		r.undisclosed = Known(len(ships) - disclosed)
	}
	if r.shipCount.IsKnown() {
		r.ships = make([]*Ship, len(ships))
		copy(r.ships, ships)
	}
	return r
}

func (r *Fleet) Kind() domain.EntityKind   { return domain.KindFleet }
func (r *Fleet) Name() Field[string]       { return r.name }
func (r *Fleet) Owner() Field[string]      { return r.owner }
func (r *Fleet) Speed() Field[float64]     { return r.speed }
func (r *Fleet) ShipCount() Field[int]     { return r.shipCount }
func (r *Fleet) TotalStrength() Field[int] { return r.totalStrength }

// UndisclosedStrength counts member ships whose strength was withheld from
// the total. Known exactly when TotalStrength is.
func (r *Fleet) UndisclosedStrength() Field[int] { return r.undisclosed }

// Ships returns the member reports, or nil when the ship count is not
// disclosed.
func (r *Fleet) Ships() []*Ship {
	if r.ships == nil {
		return nil
	}
	out := make([]*Ship, len(r.ships))
	copy(out, r.ships)
	return out
}

// MarshalJSON lists only the member ships the player is aware of.
func (r *Fleet) MarshalJSON() ([]byte, error) {
	var ships []*Ship
	for _, s := range r.ships {
		if s.Coverage().AtLeast(domain.CoverageAware) {
			ships = append(ships, s)
		}
	}
	return json.Marshal(struct {
		headerJSON
		Name                Field[string]  `json:"name"`
		Owner               Field[string]  `json:"owner"`
		Speed               Field[float64] `json:"speed"`
		ShipCount           Field[int]     `json:"ship_count"`
		TotalStrength       Field[int]     `json:"total_strength"`
		UndisclosedStrength Field[int]     `json:"undisclosed_strength"`
		Ships               []*Ship        `json:"ships,omitempty"`
	}{
		r.header.json(domain.KindFleet),
		r.name, r.owner, r.speed, r.shipCount, r.totalStrength, r.undisclosed, ships,
	})
}
