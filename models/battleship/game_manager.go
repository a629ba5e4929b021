package battleship

import (
	"math/rand/v2"
	"sync"

	"github.com/google/uuid"
	cerr "github.com/saeidalz13/battleship-ai/internal/error"
)

type GameManager interface {
	CreateGame() (*Game, error)
	FetchGame(gameUuid string) (*Game, error)
	TerminateGame(gameUuid string)
	GamesCount() int
}

type BattleshipGameManager struct {
	games map[string]*Game
	seed  *uint64
	count uint64
	mu    sync.RWMutex
}

var _ GameManager = (*BattleshipGameManager)(nil)

type GameManagerOption func(*BattleshipGameManager)

// WithSeed makes every game's placement and targeting reproducible.
// The n-th created game always gets the same random stream.
func WithSeed(seed uint64) GameManagerOption {
	return func(bgm *BattleshipGameManager) {
		bgm.seed = &seed
	}
}

func NewBattleshipGameManager(opts ...GameManagerOption) *BattleshipGameManager {
	bgm := &BattleshipGameManager{
		games: make(map[string]*Game, 10),
	}
	for _, opt := range opts {
		opt(bgm)
	}
	return bgm
}

func (bgm *BattleshipGameManager) CreateGame() (*Game, error) {
	bgm.mu.Lock()
	defer bgm.mu.Unlock()

	bgm.count++
	game, err := NewGame(uuid.NewString()[:6], bgm.newRand())
	if err != nil {
		return nil, err
	}

	bgm.games[game.Uuid()] = game
	return game, nil
}

func (bgm *BattleshipGameManager) newRand() *rand.Rand {
	if bgm.seed != nil {
		return rand.New(rand.NewPCG(*bgm.seed, bgm.count))
	}
	return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}

func (bgm *BattleshipGameManager) FetchGame(gameUuid string) (*Game, error) {
	bgm.mu.RLock()
	defer bgm.mu.RUnlock()

	game, prs := bgm.games[gameUuid]
	if !prs {
		return nil, cerr.ErrGameNotExists(gameUuid)
	}
	return game, nil
}

func (bgm *BattleshipGameManager) TerminateGame(gameUuid string) {
	bgm.mu.Lock()
	delete(bgm.games, gameUuid)
	bgm.mu.Unlock()
}

func (bgm *BattleshipGameManager) GamesCount() int {
	bgm.mu.RLock()
	defer bgm.mu.RUnlock()
	return len(bgm.games)
}
