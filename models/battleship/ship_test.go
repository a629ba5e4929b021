package battleship

import (
	"testing"

	cerr "github.com/saeidalz13/battleship-ai/internal/error"
	"github.com/stretchr/testify/require"
)

func coords(pairs ...int) []Coordinates {
	out := make([]Coordinates, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		out = append(out, NewCoordinates(pairs[i], pairs[i+1]))
	}
	return out
}

func TestNewShip(t *testing.T) {
	tests := []struct {
		name        string
		coords      []Coordinates
		expectedErr error
		orientation uint8
	}{
		{name: "horizontal destroyer", coords: coords(0, 0, 0, 1), orientation: OrientationHorizontal},
		{name: "vertical carrier unordered", coords: coords(4, 3, 2, 3, 3, 3, 6, 3, 5, 3), orientation: OrientationVertical},
		{name: "length one", coords: coords(1, 1), expectedErr: cerr.ErrInvalidShipLength},
		{name: "length six", coords: coords(0, 0, 0, 1, 0, 2, 0, 3, 0, 4, 0, 5), expectedErr: cerr.ErrInvalidShipLength},
		{name: "gap", coords: coords(0, 0, 0, 2, 0, 3), expectedErr: cerr.ErrShipNotContiguous},
		{name: "diagonal", coords: coords(0, 0, 1, 1), expectedErr: cerr.ErrShipNotContiguous},
		{name: "repeated cell", coords: coords(3, 3, 3, 3, 3, 4), expectedErr: cerr.ErrShipNotContiguous},
		{name: "out of grid", coords: coords(9, 9, 9, 10), expectedErr: cerr.ErrOutOfBounds},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			ship, err := NewShip(ShipCodeCruiser, test.coords)
			if test.expectedErr != nil {
				require.ErrorIs(t, err, test.expectedErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, len(test.coords), ship.Len())
			require.Equal(t, test.orientation, ship.Orientation())
			require.False(t, ship.IsDestroyed())
		})
	}
}

func TestShipRegisterHit(t *testing.T) {
	ship, err := NewShip(ShipCodeCruiser, coords(2, 2, 2, 3, 2, 4))
	require.NoError(t, err)

	require.ErrorIs(t, ship.RegisterHit(NewCoordinates(3, 3)), cerr.ErrInvalidCell)

	require.NoError(t, ship.RegisterHit(NewCoordinates(2, 3)))
	require.NoError(t, ship.RegisterHit(NewCoordinates(2, 3)))
	require.False(t, ship.IsDestroyed())
	require.Equal(t, coords(2, 3), ship.GetHitCoordinates())

	require.NoError(t, ship.RegisterHit(NewCoordinates(2, 2)))
	require.NoError(t, ship.RegisterHit(NewCoordinates(2, 4)))
	require.True(t, ship.IsDestroyed())
	require.Equal(t, coords(2, 2, 2, 3, 2, 4), ship.Coordinates())
}

func TestGridReceiveShot(t *testing.T) {
	grid := NewGrid()
	_, err := grid.PlaceShip(ShipCodeDestroyer, coords(0, 0, 0, 1))
	require.NoError(t, err)

	_, err = grid.PlaceShip(ShipCodeCruiser, coords(0, 1, 1, 1, 2, 1))
	require.ErrorIs(t, err, cerr.ErrShipOverlap)

	_, err = grid.CellAt(10, 0)
	require.ErrorIs(t, err, cerr.ErrOutOfBounds)

	res, err := grid.ReceiveShot(5, 5)
	require.NoError(t, err)
	require.False(t, res.Hit)

	_, err = grid.ReceiveShot(5, 5)
	require.ErrorIs(t, err, cerr.ErrPositionAlreadyHit)

	res, err = grid.ReceiveShot(0, 0)
	require.NoError(t, err)
	require.Equal(t, HitResult{Hit: true}, res)

	res, err = grid.ReceiveShot(0, 1)
	require.NoError(t, err)
	require.True(t, res.ShipSunk)
	require.Equal(t, coords(0, 0, 0, 1), res.SunkShipCoords)
	require.True(t, grid.AllShipsSunk())

	states := grid.States()
	require.Equal(t, PositionStateHit, states[0][0])
	require.Equal(t, PositionStateMiss, states[5][5])
	require.Equal(t, PositionStateUnknown, states[9][9])
}
