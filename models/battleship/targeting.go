package battleship

import (
	cerr "github.com/saeidalz13/battleship-ai/internal/error"
)

type Mode uint8

const (
	ModeHunt Mode = iota
	ModeTarget
)

func (m Mode) String() string {
	if m == ModeTarget {
		return "target"
	}
	return "hunt"
}

// A candidate is an untried cell next to at least one hit that does not
// yet belong to a sunk ship. sources holds those hits.
type candidate struct {
	coords  Coordinates
	sources []Coordinates
}

// TargetingEngine chooses the computer's shots. With no knowledge it
// hunts on the even-parity checkerboard; after a hit it works through
// the neighbours of unsunk hits until they are exhausted or the ship
// goes down.
type TargetingEngine struct {
	rng        RandSource
	tried      [GridSize][GridSize]bool
	history    []Coordinates
	knowledge  []candidate
	unsunkHits []Coordinates
}

func NewTargetingEngine(rng RandSource) *TargetingEngine {
	return &TargetingEngine{
		rng:     rng,
		history: make([]Coordinates, 0, GridSize*GridSize),
	}
}

// Mode is derived from knowledge so the two can never disagree.
func (e *TargetingEngine) Mode() Mode {
	for _, cand := range e.knowledge {
		if !e.HasTried(cand.coords) {
			return ModeTarget
		}
	}
	return ModeHunt
}

func (e *TargetingEngine) HasTried(c Coordinates) bool {
	return c.InBounds() && e.tried[c.Row][c.Col]
}

func (e *TargetingEngine) History() []Coordinates {
	out := make([]Coordinates, len(e.history))
	copy(out, e.history)
	return out
}

func (e *TargetingEngine) Knowledge() []Coordinates {
	out := make([]Coordinates, 0, len(e.knowledge))
	for _, cand := range e.knowledge {
		if !e.HasTried(cand.coords) {
			out = append(out, cand.coords)
		}
	}
	return out
}

// NextShot picks the next cell to fire at without recording it.
func (e *TargetingEngine) NextShot() (Coordinates, error) {
	e.pruneKnowledge()

	var (
		c   Coordinates
		err error
	)
	if len(e.knowledge) == 0 {
		c, err = e.hunt()
	} else {
		c = e.target()
	}
	if err != nil {
		return Coordinates{}, err
	}

	if e.HasTried(c) {
		return Coordinates{}, cerr.ErrAttackPositionAlreadyFilled(c.Row, c.Col)
	}
	return c, nil
}

// RecordOutcome stores the shot and updates knowledge from the result.
func (e *TargetingEngine) RecordOutcome(c Coordinates, result HitResult) error {
	if !c.InBounds() {
		return cerr.ErrXorYOutOfGridBound(c.Row, c.Col)
	}
	if e.tried[c.Row][c.Col] {
		return cerr.ErrAttackPositionAlreadyFilled(c.Row, c.Col)
	}

	e.tried[c.Row][c.Col] = true
	e.history = append(e.history, c)
	e.removeCandidate(c)

	if !result.Hit {
		return nil
	}

	if result.ShipSunk {
		e.forgetSunkShip(c, result.SunkShipCoords)
		return nil
	}

	e.unsunkHits = append(e.unsunkHits, c)
	for _, n := range c.Neighbours() {
		if !e.HasTried(n) {
			e.addCandidate(n, c)
		}
	}
	return nil
}

// Fire selects a shot, asks the opponent for the outcome and records it.
func (e *TargetingEngine) Fire(opponent Opponent) (Coordinates, HitResult, error) {
	c, err := e.NextShot()
	if err != nil {
		return Coordinates{}, HitResult{}, err
	}

	result, err := opponent.ReceiveShot(c.Row, c.Col)
	if err != nil {
		return c, HitResult{}, err
	}

	if err := e.RecordOutcome(c, result); err != nil {
		return c, result, err
	}
	return c, result, nil
}

func (e *TargetingEngine) hunt() (Coordinates, error) {
	even := make([]Coordinates, 0, GridSize*GridSize/2)
	untried := make([]Coordinates, 0, GridSize*GridSize)

	for row := 0; row < GridSize; row++ {
		for col := 0; col < GridSize; col++ {
			if e.tried[row][col] {
				continue
			}
			c := NewCoordinates(row, col)
			untried = append(untried, c)
			if c.IsEvenParity() {
				even = append(even, c)
			}
		}
	}

	pool := even
	if len(pool) == 0 {
		pool = untried
	}
	if len(pool) == 0 {
		return Coordinates{}, cerr.ErrNoLegalMove
	}
	return pool[e.rng.IntN(len(pool))], nil
}

func (e *TargetingEngine) target() Coordinates {
	pool := e.colinearCandidates()
	if len(pool) == 0 {
		pool = make([]Coordinates, len(e.knowledge))
		for i, cand := range e.knowledge {
			pool[i] = cand.coords
		}
	}
	return pool[e.rng.IntN(len(pool))]
}

// colinearCandidates keeps the candidates that extend the line through
// the two most recent unsunk hits. Returns nil when no line is known.
func (e *TargetingEngine) colinearCandidates() []Coordinates {
	if len(e.unsunkHits) < 2 {
		return nil
	}
	a, b := e.unsunkHits[len(e.unsunkHits)-2], e.unsunkHits[len(e.unsunkHits)-1]

	var onLine func(c Coordinates) bool
	switch {
	case a.Row == b.Row:
		onLine = func(c Coordinates) bool { return c.Row == a.Row }
	case a.Col == b.Col:
		onLine = func(c Coordinates) bool { return c.Col == a.Col }
	default:
		return nil
	}

	pool := make([]Coordinates, 0, 2)
	for _, cand := range e.knowledge {
		if !onLine(cand.coords) {
			continue
		}
		for _, src := range cand.sources {
			if onLine(src) {
				pool = append(pool, cand.coords)
				break
			}
		}
	}
	return pool
}

func (e *TargetingEngine) addCandidate(c, source Coordinates) {
	for i := range e.knowledge {
		if e.knowledge[i].coords == c {
			e.knowledge[i].sources = append(e.knowledge[i].sources, source)
			return
		}
	}
	e.knowledge = append(e.knowledge, candidate{coords: c, sources: []Coordinates{source}})
}

func (e *TargetingEngine) removeCandidate(c Coordinates) {
	for i := range e.knowledge {
		if e.knowledge[i].coords == c {
			e.knowledge = append(e.knowledge[:i], e.knowledge[i+1:]...)
			return
		}
	}
}

// pruneKnowledge drops candidates that got tried through another path.
func (e *TargetingEngine) pruneKnowledge() {
	kept := e.knowledge[:0]
	for _, cand := range e.knowledge {
		if !e.HasTried(cand.coords) {
			kept = append(kept, cand)
		}
	}
	e.knowledge = kept
}

// forgetSunkShip removes the sunk ship's hits and every candidate that
// was only there because of them. Without the ship's coordinates all
// outstanding hits are attributed to it.
func (e *TargetingEngine) forgetSunkShip(last Coordinates, shipCoords []Coordinates) {
	sunk := make(map[Coordinates]bool, MaxShipLength)
	sunk[last] = true
	if len(shipCoords) == 0 {
		for _, h := range e.unsunkHits {
			sunk[h] = true
		}
	}
	for _, c := range shipCoords {
		sunk[c] = true
	}

	hits := e.unsunkHits[:0]
	for _, h := range e.unsunkHits {
		if !sunk[h] {
			hits = append(hits, h)
		}
	}
	e.unsunkHits = hits

	kept := e.knowledge[:0]
	for _, cand := range e.knowledge {
		sources := cand.sources[:0]
		for _, src := range cand.sources {
			if !sunk[src] {
				sources = append(sources, src)
			}
		}
		if len(sources) > 0 {
			cand.sources = sources
			kept = append(kept, cand)
		}
	}
	e.knowledge = kept
}
