package battleship

import (
	cerr "github.com/saeidalz13/battleship-ai/internal/error"
)

const (
	GridSize = 10

	ValidLowerBound = 0
	ValidUpperBound = GridSize - 1
)

const (
	PositionStateUnknown uint8 = iota
	PositionStateMiss
	PositionStateHit
)

type Coordinates struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func NewCoordinates(row, col int) Coordinates {
	return Coordinates{Row: row, Col: col}
}

func (c Coordinates) InBounds() bool {
	return c.Row >= ValidLowerBound && c.Row <= ValidUpperBound &&
		c.Col >= ValidLowerBound && c.Col <= ValidUpperBound
}

func (c Coordinates) IsEvenParity() bool {
	return (c.Row+c.Col)%2 == 0
}

// Orthogonal in-bounds neighbours in the order up, down, left, right.
func (c Coordinates) Neighbours() []Coordinates {
	candidates := [4]Coordinates{
		{Row: c.Row - 1, Col: c.Col},
		{Row: c.Row + 1, Col: c.Col},
		{Row: c.Row, Col: c.Col - 1},
		{Row: c.Row, Col: c.Col + 1},
	}

	neighbours := make([]Coordinates, 0, len(candidates))
	for _, n := range candidates {
		if n.InBounds() {
			neighbours = append(neighbours, n)
		}
	}
	return neighbours
}

type Cell struct {
	Coordinates Coordinates
	IsShip      bool
	Status      uint8
}

// HitResult is what the defending side reports back after a shot.
// SunkShipCoords is only populated when ShipSunk is true.
type HitResult struct {
	Hit            bool          `json:"hit"`
	ShipSunk       bool          `json:"ship_sunk"`
	SunkShipCoords []Coordinates `json:"sunk_ship_coords,omitempty"`
}

type Board interface {
	CellAt(row, col int) (Cell, error)
	IsShip(row, col int) (bool, error)
	PlaceShip(code uint8, coords []Coordinates) (*Ship, error)
}

type Opponent interface {
	ReceiveShot(row, col int) (HitResult, error)
}

// Grid is the arena of cells a player places ships on. Ships keep
// coordinates only; lookups from a cell to its ship go through shipIdx.
type Grid struct {
	cells   [GridSize][GridSize]Cell
	shipIdx [GridSize][GridSize]int
	ships   []*Ship
}

var (
	_ Board    = (*Grid)(nil)
	_ Opponent = (*Grid)(nil)
)

func NewGrid() *Grid {
	g := &Grid{ships: make([]*Ship, 0, len(StandardFleet))}
	for row := 0; row < GridSize; row++ {
		for col := 0; col < GridSize; col++ {
			g.cells[row][col] = Cell{Coordinates: NewCoordinates(row, col)}
			g.shipIdx[row][col] = -1
		}
	}
	return g
}

func (g *Grid) CellAt(row, col int) (Cell, error) {
	if !NewCoordinates(row, col).InBounds() {
		return Cell{}, cerr.ErrXorYOutOfGridBound(row, col)
	}
	return g.cells[row][col], nil
}

func (g *Grid) IsShip(row, col int) (bool, error) {
	cell, err := g.CellAt(row, col)
	if err != nil {
		return false, err
	}
	return cell.IsShip, nil
}

func (g *Grid) PlaceShip(code uint8, coords []Coordinates) (*Ship, error) {
	ship, err := NewShip(code, coords)
	if err != nil {
		return nil, err
	}

	for _, c := range coords {
		if g.cells[c.Row][c.Col].IsShip {
			return nil, cerr.ErrShipCellsOverlap(c.Row, c.Col)
		}
	}

	idx := len(g.ships)
	for _, c := range coords {
		g.cells[c.Row][c.Col].IsShip = true
		g.shipIdx[c.Row][c.Col] = idx
	}
	g.ships = append(g.ships, ship)

	return ship, nil
}

// ReceiveShot marks the cell and damages the ship occupying it, if any.
// A cell can only be shot once.
func (g *Grid) ReceiveShot(row, col int) (HitResult, error) {
	cell, err := g.CellAt(row, col)
	if err != nil {
		return HitResult{}, err
	}
	if cell.Status != PositionStateUnknown {
		return HitResult{}, cerr.ErrDefenceGridPositionAlreadyHit(row, col)
	}

	if !cell.IsShip {
		g.cells[row][col].Status = PositionStateMiss
		return HitResult{}, nil
	}

	ship := g.ships[g.shipIdx[row][col]]
	if err := ship.RegisterHit(cell.Coordinates); err != nil {
		return HitResult{}, err
	}
	g.cells[row][col].Status = PositionStateHit

	result := HitResult{Hit: true}
	if ship.IsDestroyed() {
		result.ShipSunk = true
		result.SunkShipCoords = ship.Coordinates()
	}
	return result, nil
}

func (g *Grid) Ships() []*Ship {
	return g.ships
}

func (g *Grid) SunkenShips() int {
	sunk := 0
	for _, ship := range g.ships {
		if ship.IsDestroyed() {
			sunk++
		}
	}
	return sunk
}

func (g *Grid) AllShipsSunk() bool {
	return len(g.ships) > 0 && g.SunkenShips() == len(g.ships)
}

// States returns a snapshot of cell statuses, row major.
func (g *Grid) States() [][]uint8 {
	states := make([][]uint8, GridSize)
	for row := 0; row < GridSize; row++ {
		states[row] = make([]uint8, GridSize)
		for col := 0; col < GridSize; col++ {
			states[row][col] = g.cells[row][col].Status
		}
	}
	return states
}
