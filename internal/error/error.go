package error

import (
	"errors"
	"fmt"
)

const (
	ConstErrAttackFailed = "attack operation failed"
	ConstErrReadyFailed  = "failed to place the fleet"
	ConstErrCreateFailed = "failed to create the game"
)

var (
	ErrOutOfBounds         = errors.New("coordinates out of grid bound")
	ErrDuplicateShot       = errors.New("coordinates already attempted")
	ErrInvalidCell         = errors.New("cell does not belong to ship")
	ErrNoLegalMove         = errors.New("no legal move left")
	ErrNoPlacementPossible = errors.New("no valid placement for ship")
	ErrInvalidShipLength   = errors.New("invalid ship length")
	ErrShipNotContiguous   = errors.New("ship cells are not contiguous")
	ErrShipOverlap         = errors.New("ship overlaps another ship")
	ErrPositionAlreadyHit  = errors.New("position already hit")
	ErrInvalidFleet        = errors.New("invalid fleet")
	ErrGameNotReady        = errors.New("game is not ready")
	ErrGameFinished        = errors.New("game is already finished")
	ErrNotPlayerTurn       = errors.New("not the player's turn")
	ErrNotFound            = errors.New("not found")
)

func ErrGameNotExists(gameUuid string) error {
	return fmt.Errorf("game with this uuid does not exist, uuid: %s: %w", gameUuid, ErrNotFound)
}

func ErrSessionNotFound(sessionId string) error {
	return fmt.Errorf("session with this id does not exist, id: %s: %w", sessionId, ErrNotFound)
}

func ErrXorYOutOfGridBound(row, col int) error {
	return fmt.Errorf("%w\trow: %d\tcol: %d", ErrOutOfBounds, row, col)
}

func ErrAttackPositionAlreadyFilled(row, col int) error {
	return fmt.Errorf("%w\trow: %d\tcol: %d", ErrDuplicateShot, row, col)
}

func ErrDefenceGridPositionAlreadyHit(row, col int) error {
	return fmt.Errorf("this position is already hit by the attacker in previous rounds: %w\trow: %d\tcol: %d", ErrPositionAlreadyHit, row, col)
}

func ErrCellNotInShip(code uint8, row, col int) error {
	return fmt.Errorf("%w\tship: %d\trow: %d\tcol: %d", ErrInvalidCell, code, row, col)
}

func ErrShipLength(length int) error {
	return fmt.Errorf("%w: %d", ErrInvalidShipLength, length)
}

func ErrShipCellsOverlap(row, col int) error {
	return fmt.Errorf("%w\trow: %d\tcol: %d", ErrShipOverlap, row, col)
}

func ErrNoPlacementForLength(length int) error {
	return fmt.Errorf("%w\tlength: %d", ErrNoPlacementPossible, length)
}
