package battleship

import (
	cerr "github.com/saeidalz13/battleship-ai/internal/error"
)

const (
	ShipCodeDestroyer uint8 = iota + 1
	ShipCodeSubmarine
	ShipCodeCruiser
	ShipCodeBattleship
	ShipCodeCarrier
)

const (
	OrientationHorizontal uint8 = iota
	OrientationVertical
)

const (
	MinShipLength = 2
	MaxShipLength = 5
)

// Ship codes mapped to their lengths. Submarine and cruiser share a length.
var ShipLengths = map[uint8]int{
	ShipCodeDestroyer:  2,
	ShipCodeSubmarine:  3,
	ShipCodeCruiser:    3,
	ShipCodeBattleship: 4,
	ShipCodeCarrier:    5,
}

// StandardFleet lists ship codes in placement order, largest first.
var StandardFleet = []uint8{
	ShipCodeCarrier,
	ShipCodeBattleship,
	ShipCodeCruiser,
	ShipCodeSubmarine,
	ShipCodeDestroyer,
}

func IsValidShipLength(length int) bool {
	return length >= MinShipLength && length <= MaxShipLength
}

type Ship struct {
	Code    uint8
	coords  []Coordinates
	damaged []bool
	hits    int
}

// NewShip validates the geometry: allowed length, in bounds, single
// orientation and no gaps. Coordinates may come in any order along the
// line; they are stored sorted from the top-left end.
func NewShip(code uint8, coords []Coordinates) (*Ship, error) {
	if !IsValidShipLength(len(coords)) {
		return nil, cerr.ErrShipLength(len(coords))
	}

	for _, c := range coords {
		if !c.InBounds() {
			return nil, cerr.ErrXorYOutOfGridBound(c.Row, c.Col)
		}
	}

	sorted, err := sortAlongLine(coords)
	if err != nil {
		return nil, err
	}

	return &Ship{
		Code:    code,
		coords:  sorted,
		damaged: make([]bool, len(sorted)),
	}, nil
}

func sortAlongLine(coords []Coordinates) ([]Coordinates, error) {
	sameRow, sameCol := true, true
	minRow, minCol := coords[0].Row, coords[0].Col
	for _, c := range coords[1:] {
		sameRow = sameRow && c.Row == coords[0].Row
		sameCol = sameCol && c.Col == coords[0].Col
		minRow = min(minRow, c.Row)
		minCol = min(minCol, c.Col)
	}
	if !sameRow && !sameCol {
		return nil, cerr.ErrShipNotContiguous
	}

	sorted := make([]Coordinates, len(coords))
	filled := make([]bool, len(coords))
	for _, c := range coords {
		offset := c.Col - minCol
		if sameCol {
			offset = c.Row - minRow
		}
		if offset >= len(coords) || filled[offset] {
			return nil, cerr.ErrShipNotContiguous
		}
		sorted[offset] = c
		filled[offset] = true
	}
	return sorted, nil
}

func (sh *Ship) Len() int {
	return len(sh.coords)
}

// Orientation of a ship is implied by its coordinates.
func (sh *Ship) Orientation() uint8 {
	if sh.coords[0].Row == sh.coords[len(sh.coords)-1].Row {
		return OrientationHorizontal
	}
	return OrientationVertical
}

func (sh *Ship) Coordinates() []Coordinates {
	out := make([]Coordinates, len(sh.coords))
	copy(out, sh.coords)
	return out
}

func (sh *Ship) Contains(c Coordinates) bool {
	return sh.indexOf(c) >= 0
}

func (sh *Ship) indexOf(c Coordinates) int {
	for i, sc := range sh.coords {
		if sc == c {
			return i
		}
	}
	return -1
}

// RegisterHit damages the cell at c. Hitting an already damaged cell
// does not count twice.
func (sh *Ship) RegisterHit(c Coordinates) error {
	i := sh.indexOf(c)
	if i < 0 {
		return cerr.ErrCellNotInShip(sh.Code, c.Row, c.Col)
	}
	if !sh.damaged[i] {
		sh.damaged[i] = true
		sh.hits++
	}
	return nil
}

func (sh *Ship) IsDestroyed() bool {
	return sh.hits == len(sh.coords)
}

func (sh *Ship) GetHitCoordinates() []Coordinates {
	hit := make([]Coordinates, 0, sh.hits)
	for i, c := range sh.coords {
		if sh.damaged[i] {
			hit = append(hit, c)
		}
	}
	return hit
}
