package battleship

import (
	"github.com/google/uuid"
)

const (
	PlayerMatchStatusLost      = -1
	PlayerMatchStatusUndefined = 0
	PlayerMatchStatusWon       = 1
)

type Player struct {
	uuid        string
	isComputer  bool
	isReady     bool
	matchStatus int
	defenceGrid *Grid
}

func NewPlayer(isComputer bool) *Player {
	return &Player{
		uuid:        uuid.NewString()[:10],
		isComputer:  isComputer,
		matchStatus: PlayerMatchStatusUndefined,
		defenceGrid: NewGrid(),
	}
}

func (p *Player) Uuid() string {
	return p.uuid
}

func (p *Player) IsComputer() bool {
	return p.isComputer
}

func (p *Player) IsReady() bool {
	return p.isReady
}

func (p *Player) SetReady() {
	p.isReady = true
}

func (p *Player) MatchStatus() int {
	return p.matchStatus
}

func (p *Player) SetMatchStatus(status int) {
	p.matchStatus = status
}

func (p *Player) DefenceGrid() *Grid {
	return p.defenceGrid
}

func (p *Player) SunkenShips() int {
	return p.defenceGrid.SunkenShips()
}

func (p *Player) IsLoser() bool {
	return p.defenceGrid.AllShipsSunk()
}
