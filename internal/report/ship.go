package report

import (
	"encoding/json"

	"github.com/Harshitk-cp/intelreport/internal/data"
	"github.com/Harshitk-cp/intelreport/internal/domain"
	"github.com/Harshitk-cp/intelreport/internal/intel"
	"github.com/google/uuid"
)

type Ship struct {
	header
	name     Field[string]
	owner    Field[string]
	category Field[string]
	strength Field[int]
	speed    Field[float64]
	health   Field[float64]
}

func BuildShip(entityID, playerID uuid.UUID, in intel.Intel, d *data.Ship) *Ship {
	cov := in.CurrentCoverage()
	v := ShipVisibility
	return &Ship{
		header:   header{entityID: entityID, playerID: playerID, coverage: cov},
		name:     disclose(v, AttrName, cov, d.Name()),
		owner:    disclose(v, AttrOwner, cov, d.Owner()),
		category: disclose(v, AttrCategory, cov, d.Category()),
		strength: disclose(v, AttrStrength, cov, d.Strength()),
		speed:    disclose(v, AttrSpeed, cov, d.Speed()),
		health:   disclose(v, AttrHealth, cov, d.Health()),
	}
}

func (r *Ship) Kind() domain.EntityKind { return domain.KindShip }
func (r *Ship) Name() Field[string]     { return r.name }
func (r *Ship) Owner() Field[string]    { return r.owner }
func (r *Ship) Category() Field[string] { return r.category }
func (r *Ship) Strength() Field[int]    { return r.strength }
func (r *Ship) Speed() Field[float64]   { return r.speed }
func (r *Ship) Health() Field[float64]  { return r.health }

func (r *Ship) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		headerJSON
		Name     Field[string]  `json:"name"`
		Owner    Field[string]  `json:"owner"`
		Category Field[string]  `json:"category"`
		Strength Field[int]     `json:"strength"`
		Speed    Field[float64] `json:"speed"`
		Health   Field[float64] `json:"health"`
	}{r.header.json(domain.KindShip), r.name, r.owner, r.category, r.strength, r.speed, r.health})
}
