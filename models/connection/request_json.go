package connection

import (
	mb "github.com/saeidalz13/battleship-ai/models/battleship"
)

type ReqReadyPlayer struct {
	GameUuid string             `json:"game_uuid"`
	Ships    []mb.ShipPlacement `json:"ships"`
}

type ReqAttack struct {
	GameUuid string `json:"game_uuid"`
	Row      int    `json:"row"`
	Col      int    `json:"col"`
}
