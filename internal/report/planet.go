package report

import (
	"encoding/json"

	"github.com/Harshitk-cp/intelreport/internal/data"
	"github.com/Harshitk-cp/intelreport/internal/domain"
	"github.com/Harshitk-cp/intelreport/internal/intel"
	"github.com/google/uuid"
)

type Planet struct {
	header
	name      Field[string]
	owner     Field[string]
	capacity  Field[int]
	resources Field[int]
	health    Field[float64]
}

func BuildPlanet(entityID, playerID uuid.UUID, in intel.Intel, d *data.Planet) *Planet {
	cov := in.CurrentCoverage()
	v := PlanetVisibility
	return &Planet{
		header:    header{entityID: entityID, playerID: playerID, coverage: cov},
		name:      disclose(v, AttrName, cov, d.Name()),
		owner:     disclose(v, AttrOwner, cov, d.Owner()),
		capacity:  disclose(v, AttrCapacity, cov, d.Capacity()),
		resources: disclose(v, AttrResources, cov, d.Resources()),
		health:    disclose(v, AttrHealth, cov, d.Health()),
	}
}

func (r *Planet) Kind() domain.EntityKind { return domain.KindPlanet }
func (r *Planet) Name() Field[string]     { return r.name }
func (r *Planet) Owner() Field[string]    { return r.owner }
func (r *Planet) Capacity() Field[int]    { return r.capacity }
func (r *Planet) Resources() Field[int]   { return r.resources }
func (r *Planet) Health() Field[float64]  { return r.health }

func (r *Planet) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		headerJSON
		Name      Field[string]  `json:"name"`
		Owner     Field[string]  `json:"owner"`
		Capacity  Field[int]     `json:"capacity"`
		Resources Field[int]     `json:"resources"`
		Health    Field[float64] `json:"health"`
	}{r.header.json(domain.KindPlanet), r.name, r.owner, r.capacity, r.resources, r.health})
}
