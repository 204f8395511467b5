package snapshot

import (
	"fmt"
	"os"
	"sync/atomic"

	"gopkg.in/yaml.v3"

	"github.com/mitchelldurbincs/HeroBattleAgent/internal/game/core"
)

// Resource kinds as written in snapshot documents
const (
	KindDiamondMine = "diamond_mine"
	KindHealthWell  = "health_well"
)

// DefaultMaxSize bounds the side length of a board built from a snapshot
const DefaultMaxSize = 256

var maxSize atomic.Int64

func init() {
	maxSize.Store(DefaultMaxSize)
}

// SetMaxSize changes the largest side length Validate accepts. Values below
// 1 restore DefaultMaxSize.
func SetMaxSize(n int) {
	if n < 1 {
		n = DefaultMaxSize
	}
	maxSize.Store(int64(n))
}

// MaxSize returns the largest side length Validate accepts
func MaxSize() int {
	return int(maxSize.Load())
}

// Unit is a hero placed on the board
type Unit struct {
	ID     string `yaml:"id" json:"id"`
	Team   int    `yaml:"team" json:"team"`
	Health int    `yaml:"health" json:"health"`
	Row    int    `yaml:"row" json:"row"`
	Col    int    `yaml:"col" json:"col"`
}

// Resource is a diamond mine or health well. Owner names the holding unit;
// OwnerTeam is only needed when that unit is not on the board.
type Resource struct {
	Kind      string `yaml:"kind" json:"kind"`
	Row       int    `yaml:"row" json:"row"`
	Col       int    `yaml:"col" json:"col"`
	Owner     string `yaml:"owner,omitempty" json:"owner,omitempty"`
	OwnerTeam *int   `yaml:"owner_team,omitempty" json:"owner_team,omitempty"`
}

// Snapshot is the external description of one decision: the board and the
// id of the unit to move. JSON documents parse as well, being valid YAML.
type Snapshot struct {
	Size      int        `yaml:"size" json:"size"`
	Active    string     `yaml:"active" json:"active"`
	Units     []Unit     `yaml:"units" json:"units"`
	Resources []Resource `yaml:"resources,omitempty" json:"resources,omitempty"`
}

// Parse decodes and validates a snapshot document
func Parse(data []byte) (*Snapshot, error) {
	var s Snapshot
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("decode snapshot: %v: %w", err, ErrInvalidSnapshot)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Load reads a snapshot file
func Load(path string) (*Snapshot, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read snapshot %s: %w", path, err)
	}
	s, err := Parse(b)
	if err != nil {
		return nil, fmt.Errorf("snapshot %s: %w", path, err)
	}
	return s, nil
}

// Marshal encodes the snapshot as YAML
func (s *Snapshot) Marshal() ([]byte, error) {
	return yaml.Marshal(s)
}

// Validate checks the snapshot describes a buildable board with a live
// active unit
func (s *Snapshot) Validate() error {
	if s.Size <= 0 {
		return invalid("size %d must be positive", s.Size)
	}
	if limit := MaxSize(); s.Size > limit {
		return invalid("size %d exceeds the maximum of %d", s.Size, limit)
	}

	occupied := make(map[core.Coordinate]string)
	claim := func(what string, row, col int) error {
		at := core.Coordinate{Row: row, Col: col}
		if !at.InSquare(s.Size) {
			return invalid("%s at %s is off the %dx%d board", what, at, s.Size, s.Size)
		}
		if prev, ok := occupied[at]; ok {
			return invalid("%s at %s collides with %s", what, at, prev)
		}
		occupied[at] = what
		return nil
	}

	ids := make(map[string]bool, len(s.Units))
	for _, u := range s.Units {
		if u.ID == "" {
			return invalid("unit at (%d,%d) has no id", u.Row, u.Col)
		}
		if ids[u.ID] {
			return invalid("duplicate unit id %q", u.ID)
		}
		ids[u.ID] = true
		if u.Health < core.MinHealth || u.Health > core.MaxHealth {
			return invalid("unit %q health %d outside %d-%d", u.ID, u.Health, core.MinHealth, core.MaxHealth)
		}
		if err := claim("unit "+u.ID, u.Row, u.Col); err != nil {
			return err
		}
	}

	for i, r := range s.Resources {
		if r.Kind != KindDiamondMine && r.Kind != KindHealthWell {
			return invalid("resource %d has unknown kind %q", i, r.Kind)
		}
		if r.Owner != "" && r.Kind != KindDiamondMine {
			return invalid("resource %d: only diamond mines can be owned", i)
		}
		if r.Owner != "" && r.OwnerTeam == nil && !ids[r.Owner] {
			return invalid("resource %d owner %q is not on the board and has no owner_team", i, r.Owner)
		}
		if err := claim(r.Kind, r.Row, r.Col); err != nil {
			return err
		}
	}

	if s.Active == "" {
		return invalid("no active unit")
	}
	if !ids[s.Active] {
		return invalid("active unit %q is not on the board", s.Active)
	}
	return nil
}

// Build validates the snapshot and returns its board and the active unit's
// position
func (s *Snapshot) Build() (*core.Board, core.Coordinate, error) {
	if err := s.Validate(); err != nil {
		return nil, core.Coordinate{}, err
	}

	board := core.NewBoard(s.Size)
	teams := make(map[string]int, len(s.Units))
	var active core.Coordinate

	for _, u := range s.Units {
		at := core.Coordinate{Row: u.Row, Col: u.Col}
		if err := board.PlaceUnit(at, core.Unit{ID: u.ID, Team: u.Team, Health: u.Health}); err != nil {
			return nil, core.Coordinate{}, fmt.Errorf("%v: %w", err, ErrInvalidSnapshot)
		}
		teams[u.ID] = u.Team
		if u.ID == s.Active {
			active = at
		}
	}

	for _, r := range s.Resources {
		res := core.Resource{Kind: core.ResourceDiamondMine}
		if r.Kind == KindHealthWell {
			res.Kind = core.ResourceHealthWell
		}
		if r.Owner != "" {
			team := teams[r.Owner]
			if r.OwnerTeam != nil {
				team = *r.OwnerTeam
			}
			res.Owned = true
			res.Owner = core.Owner{UnitID: r.Owner, Team: team}
		}
		if err := board.PlaceResource(core.Coordinate{Row: r.Row, Col: r.Col}, res); err != nil {
			return nil, core.Coordinate{}, fmt.Errorf("%v: %w", err, ErrInvalidSnapshot)
		}
	}

	return board, active, nil
}

// FromBoard describes a board as a snapshot with activeID as the unit to
// move. Owner teams are always written out.
func FromBoard(b *core.Board, activeID string) *Snapshot {
	s := &Snapshot{Size: b.N, Active: activeID}
	for _, c := range b.Units() {
		s.Units = append(s.Units, Unit{
			ID:     c.Unit.ID,
			Team:   c.Unit.Team,
			Health: c.Unit.Health,
			Row:    c.Row,
			Col:    c.Col,
		})
	}
	for _, c := range b.Resources() {
		r := Resource{Kind: KindDiamondMine, Row: c.Row, Col: c.Col}
		if c.IsHealthWell() {
			r.Kind = KindHealthWell
		}
		if c.Resource.Owned {
			team := c.Resource.Owner.Team
			r.Owner = c.Resource.Owner.UnitID
			r.OwnerTeam = &team
		}
		s.Resources = append(s.Resources, r)
	}
	return s
}

func invalid(format string, args ...interface{}) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrInvalidSnapshot)
}
