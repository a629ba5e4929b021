package connection

import (
	mb "github.com/saeidalz13/battleship-ai/models/battleship"
)

type RespCreateGame struct {
	GameUuid   string `json:"game_uuid"`
	PlayerUuid string `json:"player_uuid"`
}

type RespAttack struct {
	Row            int              `json:"row"`
	Col            int              `json:"col"`
	PositionState  uint8            `json:"position_state"`
	IsTurn         bool             `json:"is_turn"`
	SunkenShips    int              `json:"sunken_ships"`
	SunkShipCoords []mb.Coordinates `json:"sunk_ship_coords,omitempty"`
}

// The computer's shot. Mode is the targeting mode after the shot.
type RespComputerAttack struct {
	RespAttack
	Mode string `json:"mode"`
}

type RespSessionId struct {
	SessionID string `json:"session_id"`
}

type RespEndGame struct {
	PlayerMatchStatus int `json:"player_match_status"`
}

type RespErr struct {
	ErrorDetails string `json:"error_details,omitempty"`
	Message      string `json:"message,omitempty"`
}

func NewRespErr(errorDetails, message string) *RespErr {
	return &RespErr{
		ErrorDetails: errorDetails,
		Message:      message,
	}
}

func NewRespAttack(c mb.Coordinates, result mb.HitResult, sunkenShips int, isTurn bool) RespAttack {
	resp := RespAttack{
		Row:            c.Row,
		Col:            c.Col,
		PositionState:  mb.PositionStateMiss,
		IsTurn:         isTurn,
		SunkenShips:    sunkenShips,
		SunkShipCoords: result.SunkShipCoords,
	}
	if result.Hit {
		resp.PositionState = mb.PositionStateHit
	}
	return resp
}
