package battleship

import (
	cerr "github.com/saeidalz13/battleship-ai/internal/error"
)

// Random sampling gives up after this many rejected runs and switches
// to enumerating every remaining valid placement.
const PlacementRetryBudget = 1000

// RandSource is the only source of randomness for placement and
// targeting. *math/rand/v2.Rand satisfies it.
type RandSource interface {
	IntN(n int) int
}

// PlaceRandomShip finds a random free straight run for the ship and
// registers it on the board.
func PlaceRandomShip(board Board, code uint8, rng RandSource) (*Ship, error) {
	length, prs := ShipLengths[code]
	if !prs {
		return nil, cerr.ErrShipLength(0)
	}

	coords, err := RandomPlacement(board, length, rng)
	if err != nil {
		return nil, err
	}
	return board.PlaceShip(code, coords)
}

func PlaceRandomFleet(board Board, fleet []uint8, rng RandSource) ([]*Ship, error) {
	ships := make([]*Ship, 0, len(fleet))
	for _, code := range fleet {
		ship, err := PlaceRandomShip(board, code, rng)
		if err != nil {
			return nil, err
		}
		ships = append(ships, ship)
	}
	return ships, nil
}

// RandomPlacement returns contiguous, in-bounds coordinates of the given
// length that do not touch any occupied cell of the board.
func RandomPlacement(board Board, length int, rng RandSource) ([]Coordinates, error) {
	if !IsValidShipLength(length) {
		return nil, cerr.ErrShipLength(length)
	}

	for tries := 0; tries < PlacementRetryBudget; tries++ {
		orientation := uint8(rng.IntN(2))

		var start Coordinates
		if orientation == OrientationHorizontal {
			start = NewCoordinates(rng.IntN(GridSize), rng.IntN(GridSize-length+1))
		} else {
			start = NewCoordinates(rng.IntN(GridSize-length+1), rng.IntN(GridSize))
		}

		coords := buildRun(start, length, orientation)
		free, err := isRunFree(board, coords)
		if err != nil {
			return nil, err
		}
		if free {
			return coords, nil
		}
	}

	placements, err := ValidPlacements(board, length)
	if err != nil {
		return nil, err
	}
	if len(placements) == 0 {
		return nil, cerr.ErrNoPlacementForLength(length)
	}
	return placements[rng.IntN(len(placements))], nil
}

// ValidPlacements enumerates every free run of the given length,
// horizontal runs first, in row-major order of their start cell.
func ValidPlacements(board Board, length int) ([][]Coordinates, error) {
	placements := make([][]Coordinates, 0)

	for _, orientation := range []uint8{OrientationHorizontal, OrientationVertical} {
		maxRow, maxCol := GridSize-1, GridSize-length
		if orientation == OrientationVertical {
			maxRow, maxCol = GridSize-length, GridSize-1
		}

		for row := 0; row <= maxRow; row++ {
			for col := 0; col <= maxCol; col++ {
				coords := buildRun(NewCoordinates(row, col), length, orientation)
				free, err := isRunFree(board, coords)
				if err != nil {
					return nil, err
				}
				if free {
					placements = append(placements, coords)
				}
			}
		}
	}
	return placements, nil
}

func buildRun(start Coordinates, length int, orientation uint8) []Coordinates {
	coords := make([]Coordinates, length)
	for i := 0; i < length; i++ {
		if orientation == OrientationHorizontal {
			coords[i] = NewCoordinates(start.Row, start.Col+i)
		} else {
			coords[i] = NewCoordinates(start.Row+i, start.Col)
		}
	}
	return coords
}

func isRunFree(board Board, coords []Coordinates) (bool, error) {
	for _, c := range coords {
		isShip, err := board.IsShip(c.Row, c.Col)
		if err != nil {
			return false, err
		}
		if isShip {
			return false, nil
		}
	}
	return true, nil
}
