package battleship

import (
	"errors"
	"testing"

	cerr "github.com/saeidalz13/battleship-ai/internal/error"
	"github.com/stretchr/testify/require"
)

// firstRand always picks the first element, lastRand the last one.
type firstRand struct{}

func (firstRand) IntN(n int) int { return 0 }

type lastRand struct{}

func (lastRand) IntN(n int) int { return n - 1 }

type failingOpponent struct{ err error }

func (f failingOpponent) ReceiveShot(row, col int) (HitResult, error) {
	return HitResult{}, f.err
}

func untriedEvenLeft(e *TargetingEngine) bool {
	for row := 0; row < GridSize; row++ {
		for col := 0; col < GridSize; col++ {
			c := NewCoordinates(row, col)
			if c.IsEvenParity() && !e.HasTried(c) {
				return true
			}
		}
	}
	return false
}

func TestTargetingScenarioCruiser(t *testing.T) {
	engine := NewTargetingEngine(firstRand{})
	require.Equal(t, ModeHunt, engine.Mode())

	require.NoError(t, engine.RecordOutcome(NewCoordinates(2, 3), HitResult{Hit: true}))
	require.Equal(t, ModeTarget, engine.Mode())
	require.ElementsMatch(t, coords(1, 3, 3, 3, 2, 2, 2, 4), engine.Knowledge())

	require.NoError(t, engine.RecordOutcome(NewCoordinates(2, 4), HitResult{Hit: true}))
	require.Contains(t, engine.Knowledge(), NewCoordinates(2, 5))
	require.NotContains(t, engine.Knowledge(), NewCoordinates(2, 4))
	require.Equal(t, ModeTarget, engine.Mode())

	// the line through the two hits is horizontal
	next, err := engine.NextShot()
	require.NoError(t, err)
	require.Contains(t, coords(2, 2, 2, 5), next)

	sunk := HitResult{Hit: true, ShipSunk: true, SunkShipCoords: coords(2, 2, 2, 3, 2, 4)}
	require.NoError(t, engine.RecordOutcome(NewCoordinates(2, 2), sunk))
	require.Empty(t, engine.Knowledge())
	require.Equal(t, ModeHunt, engine.Mode())
}

func TestTargetingKeepsCandidatesOfOtherShip(t *testing.T) {
	engine := NewTargetingEngine(firstRand{})

	// (4,4) belongs to a different ship than the destroyer at (5,4)-(5,5)
	require.NoError(t, engine.RecordOutcome(NewCoordinates(4, 4), HitResult{Hit: true}))
	require.NoError(t, engine.RecordOutcome(NewCoordinates(5, 4), HitResult{Hit: true}))

	sunk := HitResult{Hit: true, ShipSunk: true, SunkShipCoords: coords(5, 4, 5, 5)}
	require.NoError(t, engine.RecordOutcome(NewCoordinates(5, 5), sunk))

	require.Equal(t, ModeTarget, engine.Mode())
	require.ElementsMatch(t, coords(3, 4, 4, 3, 4, 5), engine.Knowledge())
}

func TestTargetingSunkWithoutCoordinates(t *testing.T) {
	engine := NewTargetingEngine(firstRand{})

	require.NoError(t, engine.RecordOutcome(NewCoordinates(0, 0), HitResult{Hit: true}))
	require.NoError(t, engine.RecordOutcome(NewCoordinates(0, 1), HitResult{Hit: true, ShipSunk: true}))

	require.Empty(t, engine.Knowledge())
	require.Equal(t, ModeHunt, engine.Mode())
}

func TestTargetingHitPropagation(t *testing.T) {
	engine := NewTargetingEngine(firstRand{})

	require.NoError(t, engine.RecordOutcome(NewCoordinates(0, 1), HitResult{}))
	require.Equal(t, ModeHunt, engine.Mode(), "a miss does not change mode")

	require.NoError(t, engine.RecordOutcome(NewCoordinates(0, 0), HitResult{Hit: true}))
	require.Equal(t, coords(1, 0), engine.Knowledge())
}

func TestTargetingColinearPreference(t *testing.T) {
	for _, rng := range []RandSource{firstRand{}, lastRand{}} {
		engine := NewTargetingEngine(rng)
		require.NoError(t, engine.RecordOutcome(NewCoordinates(5, 5), HitResult{Hit: true}))
		require.NoError(t, engine.RecordOutcome(NewCoordinates(6, 5), HitResult{Hit: true}))

		next, err := engine.NextShot()
		require.NoError(t, err)
		require.Contains(t, coords(4, 5, 7, 5), next)
	}
}

func TestTargetingTargetExhaustedRevertsToHunt(t *testing.T) {
	engine := NewTargetingEngine(firstRand{})
	require.NoError(t, engine.RecordOutcome(NewCoordinates(0, 0), HitResult{Hit: true}))

	for engine.Mode() == ModeTarget {
		next, err := engine.NextShot()
		require.NoError(t, err)
		require.NoError(t, engine.RecordOutcome(next, HitResult{}))
	}
	require.Empty(t, engine.Knowledge())
	require.Len(t, engine.History(), 3)
}

func TestTargetingStaleKnowledgeFiltered(t *testing.T) {
	engine := NewTargetingEngine(firstRand{})
	require.NoError(t, engine.RecordOutcome(NewCoordinates(4, 4), HitResult{}))

	// a candidate that was attempted through another path
	engine.knowledge = append(engine.knowledge, candidate{coords: NewCoordinates(4, 4), sources: coords(4, 5)})
	require.Equal(t, ModeHunt, engine.Mode())

	next, err := engine.NextShot()
	require.NoError(t, err)
	require.NotEqual(t, NewCoordinates(4, 4), next)
	require.Empty(t, engine.knowledge)
}

func TestTargetingHuntParityFallback(t *testing.T) {
	engine := NewTargetingEngine(firstRand{})

	for row := 0; row < GridSize; row++ {
		for col := 0; col < GridSize; col++ {
			if c := NewCoordinates(row, col); c.IsEvenParity() {
				require.NoError(t, engine.RecordOutcome(c, HitResult{}))
			}
		}
	}

	next, err := engine.NextShot()
	require.NoError(t, err)
	require.False(t, next.IsEvenParity())
	require.Equal(t, NewCoordinates(0, 1), next)
}

func TestTargetingNoLegalMove(t *testing.T) {
	engine := NewTargetingEngine(firstRand{})
	for row := 0; row < GridSize; row++ {
		for col := 0; col < GridSize; col++ {
			require.NoError(t, engine.RecordOutcome(NewCoordinates(row, col), HitResult{}))
		}
	}

	_, err := engine.NextShot()
	require.ErrorIs(t, err, cerr.ErrNoLegalMove)
}

func TestTargetingRecordOutcomeErrors(t *testing.T) {
	engine := NewTargetingEngine(firstRand{})

	require.ErrorIs(t, engine.RecordOutcome(NewCoordinates(-1, 0), HitResult{}), cerr.ErrOutOfBounds)
	require.NoError(t, engine.RecordOutcome(NewCoordinates(3, 3), HitResult{}))
	require.ErrorIs(t, engine.RecordOutcome(NewCoordinates(3, 3), HitResult{}), cerr.ErrDuplicateShot)
	require.Len(t, engine.History(), 1)
}

func TestTargetingFirePropagatesOpponentError(t *testing.T) {
	opponentErr := errors.New("opponent unavailable")
	engine := NewTargetingEngine(firstRand{})

	_, _, err := engine.Fire(failingOpponent{err: opponentErr})
	require.ErrorIs(t, err, opponentErr)
	require.Empty(t, engine.History())
}

func TestTargetingSinksWholeFleet(t *testing.T) {
	for seed := uint64(0); seed < 100; seed++ {
		grid := NewGrid()
		_, err := PlaceRandomFleet(grid, StandardFleet, newTestRand(seed))
		require.NoError(t, err)

		engine := NewTargetingEngine(newTestRand(seed + 1000))
		seen := make(map[Coordinates]bool, GridSize*GridSize)

		for shots := 0; !grid.AllShipsSunk(); shots++ {
			require.Less(t, shots, GridSize*GridSize, "seed %d: fleet not sunk within grid size", seed)

			mode := engine.Mode()
			require.Equal(t, mode == ModeTarget, len(engine.Knowledge()) > 0)
			evenLeft := untriedEvenLeft(engine)

			c, res, err := engine.Fire(grid)
			require.NoError(t, err)
			require.False(t, seen[c], "seed %d: %v fired twice", seed, c)
			seen[c] = true

			if mode == ModeHunt && evenLeft {
				require.True(t, c.IsEvenParity(), "seed %d: hunt shot %v off parity", seed, c)
			}
			if res.Hit && !res.ShipSunk {
				require.Equal(t, ModeTarget, engine.Mode())
			}
		}

		require.Equal(t, len(seen), len(engine.History()))
	}
}
