package core

import "fmt"

// OccupantKind says what, if anything, stands on a cell.
type OccupantKind int

const (
	OccupantEmpty OccupantKind = iota
	OccupantResource
	OccupantUnit
)

func (k OccupantKind) String() string {
	switch k {
	case OccupantEmpty:
		return "Empty"
	case OccupantResource:
		return "ResourceNode"
	case OccupantUnit:
		return "Unit"
	default:
		return fmt.Sprintf("OccupantKind(%d)", int(k))
	}
}

// ResourceKind distinguishes the resource nodes found on a board.
type ResourceKind int

const (
	ResourceDiamondMine ResourceKind = iota
	ResourceHealthWell
)

func (k ResourceKind) String() string {
	switch k {
	case ResourceDiamondMine:
		return "DiamondMine"
	case ResourceHealthWell:
		return "HealthWell"
	default:
		return fmt.Sprintf("ResourceKind(%d)", int(k))
	}
}

const (
	MinHealth = 0
	MaxHealth = 100
)

// Unit is a hero standing on a cell.
type Unit struct {
	ID     string
	Team   int
	Health int
}

// Owner identifies the unit (and its team) holding a resource node.
type Owner struct {
	UnitID string
	Team   int
}

// Resource is a resource node. Owner is only meaningful when Owned is set.
type Resource struct {
	Kind  ResourceKind
	Owned bool
	Owner Owner
}

// Cell is one board position and its occupant. Only the occupant struct
// matching Kind carries data.
type Cell struct {
	Row, Col int
	Kind     OccupantKind
	Unit     Unit
	Resource Resource
}

func (c Cell) Coord() Coordinate { return Coordinate{Row: c.Row, Col: c.Col} }
func (c Cell) IsEmpty() bool { return c.Kind == OccupantEmpty }
func (c Cell) IsUnit() bool { return c.Kind == OccupantUnit }
func (c Cell) IsResource() bool { return c.Kind == OccupantResource }
func (c Cell) IsDiamondMine() bool { return c.IsResource() && c.Resource.Kind == ResourceDiamondMine }
func (c Cell) IsHealthWell() bool { return c.IsResource() && c.Resource.Kind == ResourceHealthWell }

// Board is a square grid of side N. Tiles is indexed [row][col].
type Board struct {
	N     int
	Tiles [][]Cell
}

// NewBoard creates an n×n board with every cell empty
func NewBoard(n int) *Board {
	b := &Board{N: n, Tiles: make([][]Cell, n)}
	for r := range b.Tiles {
		b.Tiles[r] = make([]Cell, n)
		for c := range b.Tiles[r] {
			b.Tiles[r][c] = Cell{Row: r, Col: c, Kind: OccupantEmpty}
		}
	}
	return b
}

// Size returns the side length of the board
func (b *Board) Size() int { return b.N }

// IsValid checks if the coordinate lies on the board
func (b *Board) IsValid(c Coordinate) bool {
	return c.InSquare(b.N)
}

// CellAt returns the cell at c, or an error wrapping ErrOutOfRange
func (b *Board) CellAt(c Coordinate) (Cell, error) {
	if !b.IsValid(c) {
		return Cell{}, fmt.Errorf("cell at %s on %dx%d board: %w", c, b.N, b.N, ErrOutOfRange)
	}
	return b.Tiles[c.Row][c.Col], nil
}

// PlaceUnit puts a unit on an empty cell
func (b *Board) PlaceUnit(c Coordinate, u Unit) error {
	if u.Health < MinHealth || u.Health > MaxHealth {
		return fmt.Errorf("unit %q health %d: %w", u.ID, u.Health, ErrInvalidHealth)
	}
	cell, err := b.emptyCell(c)
	if err != nil {
		return err
	}
	cell.Kind = OccupantUnit
	cell.Unit = u
	return nil
}

// PlaceResource puts a resource node on an empty cell
func (b *Board) PlaceResource(c Coordinate, r Resource) error {
	cell, err := b.emptyCell(c)
	if err != nil {
		return err
	}
	cell.Kind = OccupantResource
	cell.Resource = r
	return nil
}

func (b *Board) emptyCell(c Coordinate) (*Cell, error) {
	if !b.IsValid(c) {
		return nil, fmt.Errorf("place at %s: %w", c, ErrOutOfRange)
	}
	cell := &b.Tiles[c.Row][c.Col]
	if !cell.IsEmpty() {
		return nil, fmt.Errorf("place at %s (%s): %w", c, cell.Kind, ErrOccupied)
	}
	return cell, nil
}

// Validate checks the N×N shape and that every cell knows its own position
func (b *Board) Validate() error {
	if b.N <= 0 {
		return fmt.Errorf("side length %d: %w", b.N, ErrMalformedBoard)
	}
	if len(b.Tiles) != b.N {
		return fmt.Errorf("%d rows, want %d: %w", len(b.Tiles), b.N, ErrMalformedBoard)
	}
	for r, row := range b.Tiles {
		if len(row) != b.N {
			return fmt.Errorf("row %d has %d columns, want %d: %w", r, len(row), b.N, ErrMalformedBoard)
		}
		for c, cell := range row {
			if cell.Row != r || cell.Col != c {
				return fmt.Errorf("cell at (%d,%d) claims %s: %w", r, c, cell.Coord(), ErrMalformedBoard)
			}
		}
	}
	return nil
}

// Units returns every unit cell in row-major order
func (b *Board) Units() []Cell {
	var units []Cell
	for _, row := range b.Tiles {
		for _, cell := range row {
			if cell.IsUnit() {
				units = append(units, cell)
			}
		}
	}
	return units
}

// Resources returns every resource cell in row-major order
func (b *Board) Resources() []Cell {
	var res []Cell
	for _, row := range b.Tiles {
		for _, cell := range row {
			if cell.IsResource() {
				res = append(res, cell)
			}
		}
	}
	return res
}

// FindUnit returns the cell holding the unit with the given id
func (b *Board) FindUnit(id string) (Cell, bool) {
	for _, row := range b.Tiles {
		for _, cell := range row {
			if cell.IsUnit() && cell.Unit.ID == id {
				return cell, true
			}
		}
	}
	return Cell{}, false
}
