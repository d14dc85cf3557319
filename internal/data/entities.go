package data

// Field names passed to change subscribers.
const (
	FieldName      = "name"
	FieldOwner     = "owner"
	FieldCategory  = "category"
	FieldCapacity  = "capacity"
	FieldResources = "resources"
	FieldHealth    = "health"
	FieldStrength  = "strength"
	FieldSpeed     = "speed"
)

// Star is a landmark. Stars do not change much, but they still track writes.
type Star struct {
	Tracker
	name     string
	category string
}

func NewStar(name, category string) *Star {
	return &Star{name: name, category: category}
}

func (s *Star) Name() string     { return s.name }
func (s *Star) Category() string { return s.category }

func (s *Star) SetName(v string) bool     { return Set(&s.Tracker, FieldName, &s.name, v) }
func (s *Star) SetCategory(v string) bool { return Set(&s.Tracker, FieldCategory, &s.category, v) }

type Planet struct {
	Tracker
	name      string
	owner     string
	capacity  int
	resources int
	health    float64
}

func NewPlanet(name string) *Planet {
	return &Planet{name: name, health: 1}
}

func (p *Planet) Name() string    { return p.name }
func (p *Planet) Owner() string   { return p.owner }
func (p *Planet) Capacity() int   { return p.capacity }
func (p *Planet) Resources() int  { return p.resources }
func (p *Planet) Health() float64 { return p.health }

func (p *Planet) SetName(v string) bool   { return Set(&p.Tracker, FieldName, &p.name, v) }
func (p *Planet) SetOwner(v string) bool  { return Set(&p.Tracker, FieldOwner, &p.owner, v) }
func (p *Planet) SetCapacity(v int) bool  { return Set(&p.Tracker, FieldCapacity, &p.capacity, v) }
func (p *Planet) SetResources(v int) bool { return Set(&p.Tracker, FieldResources, &p.resources, v) }
func (p *Planet) SetHealth(v float64) bool {
	return Set(&p.Tracker, FieldHealth, &p.health, clampUnit(v))
}

type Ship struct {
	Tracker
	name     string
	owner    string
	category string
	strength int
	health   float64
	speed    float64
}

func NewShip(name, owner, category string) *Ship {
	return &Ship{name: name, owner: owner, category: category, health: 1}
}

func (s *Ship) Name() string     { return s.name }
func (s *Ship) Owner() string    { return s.owner }
func (s *Ship) Category() string { return s.category }
func (s *Ship) Strength() int    { return s.strength }
func (s *Ship) Health() float64  { return s.health }
func (s *Ship) Speed() float64   { return s.speed }

func (s *Ship) SetName(v string) bool     { return Set(&s.Tracker, FieldName, &s.name, v) }
func (s *Ship) SetOwner(v string) bool    { return Set(&s.Tracker, FieldOwner, &s.owner, v) }
func (s *Ship) SetCategory(v string) bool { return Set(&s.Tracker, FieldCategory, &s.category, v) }
func (s *Ship) SetStrength(v int) bool    { return Set(&s.Tracker, FieldStrength, &s.strength, v) }
func (s *Ship) SetHealth(v float64) bool {
	return Set(&s.Tracker, FieldHealth, &s.health, clampUnit(v))
}
func (s *Ship) SetSpeed(v float64) bool { return Set(&s.Tracker, FieldSpeed, &s.speed, v) }

// Fleet is a composite. Its member ships are tracked by whoever owns the
// fleet; only the fleet's own attributes live here.
type Fleet struct {
	Tracker
	name  string
	owner string
	speed float64
}

func NewFleet(name, owner string) *Fleet {
	return &Fleet{name: name, owner: owner}
}

func (f *Fleet) Name() string   { return f.name }
func (f *Fleet) Owner() string  { return f.owner }
func (f *Fleet) Speed() float64 { return f.speed }

func (f *Fleet) SetName(v string) bool   { return Set(&f.Tracker, FieldName, &f.name, v) }
func (f *Fleet) SetOwner(v string) bool  { return Set(&f.Tracker, FieldOwner, &f.owner, v) }
func (f *Fleet) SetSpeed(v float64) bool { return Set(&f.Tracker, FieldSpeed, &f.speed, v) }

// health is a fraction of full integrity.
func clampUnit(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
