package report

import (
	"encoding/json"

	"github.com/Harshitk-cp/intelreport/internal/data"
	"github.com/Harshitk-cp/intelreport/internal/domain"
	"github.com/Harshitk-cp/intelreport/internal/intel"
	"github.com/google/uuid"
)

type Star struct {
	header
	name     Field[string]
	category Field[string]
}

func BuildStar(entityID, playerID uuid.UUID, in intel.Intel, d *data.Star) *Star {
	cov := in.CurrentCoverage()
	v := StarVisibility
	return &Star{
		header:   header{entityID: entityID, playerID: playerID, coverage: cov},
		name:     disclose(v, AttrName, cov, d.Name()),
		category: disclose(v, AttrCategory, cov, d.Category()),
	}
}

func (r *Star) Kind() domain.EntityKind { return domain.KindStar }
func (r *Star) Name() Field[string]     { return r.name }
func (r *Star) Category() Field[string] { return r.category }

func (r *Star) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		headerJSON
		Name     Field[string] `json:"name"`
		Category Field[string] `json:"category"`
	}{r.header.json(domain.KindStar), r.name, r.category})
}
