package battleship

import (
	"fmt"
	"time"

	"github.com/hashicorp/go-multierror"
	cerr "github.com/saeidalz13/battleship-ai/internal/error"
)

type ShipPlacement struct {
	Code   uint8         `json:"code"`
	Coords []Coordinates `json:"coords"`
}

// Game is a single human vs computer match. The computer fleet is
// placed on creation; the game starts once the human fleet is set.
// The human always shoots first.
type Game struct {
	uuid        string
	human       *Player
	computer    *Player
	engine      *TargetingEngine
	isHumanTurn bool
	isFinished  bool
	createdAt   time.Time
}

func NewGame(gameUuid string, rng RandSource) (*Game, error) {
	computer := NewPlayer(true)
	if _, err := PlaceRandomFleet(computer.DefenceGrid(), StandardFleet, rng); err != nil {
		return nil, err
	}
	computer.SetReady()

	return &Game{
		uuid:        gameUuid,
		human:       NewPlayer(false),
		computer:    computer,
		engine:      NewTargetingEngine(rng),
		isHumanTurn: true,
		createdAt:   time.Now(),
	}, nil
}

func (g *Game) Uuid() string {
	return g.uuid
}

func (g *Game) Human() *Player {
	return g.human
}

func (g *Game) Computer() *Player {
	return g.computer
}

func (g *Game) Engine() *TargetingEngine {
	return g.engine
}

func (g *Game) CreatedAt() time.Time {
	return g.createdAt
}

func (g *Game) IsHumanTurn() bool {
	return g.isHumanTurn
}

func (g *Game) IsFinished() bool {
	return g.isFinished
}

func (g *Game) IsReadyToStart() bool {
	return g.human.IsReady() && g.computer.IsReady()
}

// SetHumanFleet validates every placement and reports all problems at
// once. Nothing is placed unless the whole fleet is valid.
func (g *Game) SetHumanFleet(placements []ShipPlacement) error {
	if g.human.IsReady() {
		return fmt.Errorf("%w: fleet already placed", cerr.ErrInvalidFleet)
	}
	if err := ValidateFleet(placements); err != nil {
		return err
	}

	for _, p := range placements {
		if _, err := g.human.DefenceGrid().PlaceShip(p.Code, p.Coords); err != nil {
			return err
		}
	}
	g.human.SetReady()
	return nil
}

func ValidateFleet(placements []ShipPlacement) error {
	var result *multierror.Error

	expected := make(map[uint8]int, len(StandardFleet))
	for _, code := range StandardFleet {
		expected[code]++
	}

	occupied := NewGrid()
	for _, p := range placements {
		length, prs := ShipLengths[p.Code]
		if !prs {
			result = multierror.Append(result, fmt.Errorf("%w: unknown ship code %d", cerr.ErrInvalidFleet, p.Code))
			continue
		}
		expected[p.Code]--

		if len(p.Coords) != length {
			result = multierror.Append(result, fmt.Errorf("ship %d: %w", p.Code, cerr.ErrShipLength(len(p.Coords))))
			continue
		}
		if _, err := occupied.PlaceShip(p.Code, p.Coords); err != nil {
			result = multierror.Append(result, fmt.Errorf("ship %d: %w", p.Code, err))
		}
	}

	for _, code := range StandardFleet {
		switch n := expected[code]; {
		case n > 0:
			result = multierror.Append(result, fmt.Errorf("%w: missing ship %d", cerr.ErrInvalidFleet, code))
		case n < 0:
			result = multierror.Append(result, fmt.Errorf("%w: duplicate ship %d", cerr.ErrInvalidFleet, code))
		}
	}

	return result.ErrorOrNil()
}

func (g *Game) checkCanAttack(humanTurn bool) error {
	if g.isFinished {
		return cerr.ErrGameFinished
	}
	if !g.IsReadyToStart() {
		return cerr.ErrGameNotReady
	}
	if g.isHumanTurn != humanTurn {
		return cerr.ErrNotPlayerTurn
	}
	return nil
}

// HumanAttack fires the human's shot at the computer fleet.
func (g *Game) HumanAttack(c Coordinates) (HitResult, error) {
	if err := g.checkCanAttack(true); err != nil {
		return HitResult{}, err
	}

	result, err := g.computer.DefenceGrid().ReceiveShot(c.Row, c.Col)
	if err != nil {
		return HitResult{}, err
	}

	g.isHumanTurn = false
	g.finishIfOver(g.human, g.computer)
	return result, nil
}

// ComputerAttack lets the targeting engine fire at the human fleet.
func (g *Game) ComputerAttack() (Coordinates, HitResult, error) {
	if err := g.checkCanAttack(false); err != nil {
		return Coordinates{}, HitResult{}, err
	}

	c, result, err := g.engine.Fire(g.human.DefenceGrid())
	if err != nil {
		return c, HitResult{}, err
	}

	g.isHumanTurn = true
	g.finishIfOver(g.computer, g.human)
	return c, result, nil
}

func (g *Game) finishIfOver(attacker, defender *Player) {
	if !defender.IsLoser() {
		return
	}
	attacker.SetMatchStatus(PlayerMatchStatusWon)
	defender.SetMatchStatus(PlayerMatchStatusLost)
	g.isFinished = true
}
