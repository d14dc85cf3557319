// Package scenario loads a world description from YAML and populates a
// WorldService with it.
package scenario

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/Harshitk-cp/intelreport/internal/domain"
	"github.com/Harshitk-cp/intelreport/internal/service"
	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// namespace seeds the ids derived from entry keys, so a scenario loaded
// twice yields the same entity ids and persisted intel lines up again.
var namespace = uuid.MustParse("6f1c3f4e-2b7a-5d0e-9a61-5c3e8f2d4b17")

var ErrInvalidScenario = errors.New("invalid scenario")

// Scenario is the root of a scenario file.
type Scenario struct {
	Stars   []Star   `yaml:"stars,omitempty"`
	Planets []Planet `yaml:"planets,omitempty"`
	Ships   []Ship   `yaml:"ships,omitempty"`
	Fleets  []Fleet  `yaml:"fleets,omitempty"`
}

// Entry is what every entity carries. Key names the entity inside the file;
// ID, when empty, is derived from the kind and key.
type Entry struct {
	Key string `yaml:"key"`
	ID  string `yaml:"id,omitempty"`
}

type Star struct {
	Entry    `yaml:",inline"`
	Name     string `yaml:"name"`
	Category string `yaml:"category,omitempty"`
	// Landmark is a coverage level every player holds permanently.
	Landmark string `yaml:"landmark,omitempty"`
}

type Planet struct {
	Entry     `yaml:",inline"`
	Name      string  `yaml:"name"`
	Owner     string  `yaml:"owner,omitempty"`
	Capacity  int     `yaml:"capacity,omitempty"`
	Resources int     `yaml:"resources,omitempty"`
	Health    float64 `yaml:"health,omitempty"`
}

type Ship struct {
	Entry    `yaml:",inline"`
	Name     string  `yaml:"name"`
	Owner    string  `yaml:"owner,omitempty"`
	Category string  `yaml:"category,omitempty"`
	Strength int     `yaml:"strength,omitempty"`
	Health   float64 `yaml:"health,omitempty"`
	Speed    float64 `yaml:"speed,omitempty"`
}

type Fleet struct {
	Entry `yaml:",inline"`
	Name  string  `yaml:"name"`
	Owner string  `yaml:"owner,omitempty"`
	Speed float64 `yaml:"speed,omitempty"`
	// Ships lists member ship keys in fleet order.
	Ships []string `yaml:"ships,omitempty"`
}

// Load reads a scenario file.
func Load(path string) (*Scenario, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	s, err := Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return s, nil
}

// Parse decodes a scenario. Unknown fields are rejected.
func Parse(raw []byte) (*Scenario, error) {
	var s Scenario
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	if _, err := s.resolve(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Apply adds every entity of the scenario to world, fleets last, and
// returns the entity id of each key.
func (s *Scenario) Apply(world *service.WorldService) (map[string]uuid.UUID, error) {
	ids, err := s.resolve()
	if err != nil {
		return nil, err
	}

	for _, st := range s.Stars {
		spec := service.StarSpec{ID: ids[st.Key], Name: st.Name, Category: st.Category}
		if st.Landmark != "" {
			level, _ := domain.ParseCoverageLevel(st.Landmark)
			spec.Landmark = &level
		}
		if _, err := world.AddStar(spec); err != nil {
			return nil, fmt.Errorf("star %q: %w", st.Key, err)
		}
	}
	for _, p := range s.Planets {
		if _, err := world.AddPlanet(service.PlanetSpec{
			ID:        ids[p.Key],
			Name:      p.Name,
			Owner:     p.Owner,
			Capacity:  p.Capacity,
			Resources: p.Resources,
			Health:    p.Health,
		}); err != nil {
			return nil, fmt.Errorf("planet %q: %w", p.Key, err)
		}
	}
	for _, sh := range s.Ships {
		if _, err := world.AddShip(service.ShipSpec{
			ID:       ids[sh.Key],
			Name:     sh.Name,
			Owner:    sh.Owner,
			Category: sh.Category,
			Strength: sh.Strength,
			Health:   sh.Health,
			Speed:    sh.Speed,
		}); err != nil {
			return nil, fmt.Errorf("ship %q: %w", sh.Key, err)
		}
	}
	for _, f := range s.Fleets {
		members := make([]uuid.UUID, 0, len(f.Ships))
		for _, key := range f.Ships {
			members = append(members, ids[key])
		}
		if _, err := world.AddFleet(service.FleetSpec{
			ID:    ids[f.Key],
			Name:  f.Name,
			Owner: f.Owner,
			Speed: f.Speed,
			Ships: members,
		}); err != nil {
			return nil, fmt.Errorf("fleet %q: %w", f.Key, err)
		}
	}
	return ids, nil
}

// resolve validates the scenario and assigns an id to every key.
func (s *Scenario) resolve() (map[string]uuid.UUID, error) {
	ids := make(map[string]uuid.UUID)
	kinds := make(map[string]domain.EntityKind)

	add := func(kind domain.EntityKind, e Entry, name string) error {
		if e.Key == "" {
			return fmt.Errorf("%w: %s %q has no key", ErrInvalidScenario, kind, name)
		}
		if name == "" {
			return fmt.Errorf("%w: %s %q has no name", ErrInvalidScenario, kind, e.Key)
		}
		if _, dup := ids[e.Key]; dup {
			return fmt.Errorf("%w: duplicate key %q", ErrInvalidScenario, e.Key)
		}
		id, err := e.resolveID(kind)
		if err != nil {
			return err
		}
		ids[e.Key] = id
		kinds[e.Key] = kind
		return nil
	}

	for _, st := range s.Stars {
		if err := add(domain.KindStar, st.Entry, st.Name); err != nil {
			return nil, err
		}
		if st.Landmark != "" {
			if _, err := domain.ParseCoverageLevel(st.Landmark); err != nil {
				return nil, fmt.Errorf("%w: star %q: %v", ErrInvalidScenario, st.Key, err)
			}
		}
	}
	for _, p := range s.Planets {
		if err := add(domain.KindPlanet, p.Entry, p.Name); err != nil {
			return nil, err
		}
	}
	for _, sh := range s.Ships {
		if err := add(domain.KindShip, sh.Entry, sh.Name); err != nil {
			return nil, err
		}
	}
	for _, f := range s.Fleets {
		if err := add(domain.KindFleet, f.Entry, f.Name); err != nil {
			return nil, err
		}
	}

	assigned := make(map[string]string)
	for _, f := range s.Fleets {
		for _, key := range f.Ships {
			if kinds[key] != domain.KindShip {
				return nil, fmt.Errorf("%w: fleet %q member %q is not a ship", ErrInvalidScenario, f.Key, key)
			}
			if other, taken := assigned[key]; taken {
				return nil, fmt.Errorf("%w: ship %q is in fleets %q and %q", ErrInvalidScenario, key, other, f.Key)
			}
			assigned[key] = f.Key
		}
	}
	return ids, nil
}

func (e Entry) resolveID(kind domain.EntityKind) (uuid.UUID, error) {
	if e.ID == "" {
		return uuid.NewSHA1(namespace, []byte(string(kind)+"/"+e.Key)), nil
	}
	id, err := uuid.Parse(e.ID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %s %q: bad id: %v", ErrInvalidScenario, kind, e.Key, err)
	}
	return id, nil
}
