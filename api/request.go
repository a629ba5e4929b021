package api

import (
	"encoding/json"

	cerr "github.com/saeidalz13/battleship-ai/internal/error"
	mb "github.com/saeidalz13/battleship-ai/models/battleship"
	mc "github.com/saeidalz13/battleship-ai/models/connection"
)

type Request struct {
	payload []byte
}

func NewRequest(payload ...[]byte) Request {
	if len(payload) == 0 {
		return Request{}
	}
	return Request{payload: payload[0]}
}

func (r Request) HandleCreateGame(gameManager mb.GameManager) (*mb.Game, mc.Message[mc.RespCreateGame]) {
	resp := mc.NewMessage[mc.RespCreateGame](mc.CodeCreateGame)

	game, err := gameManager.CreateGame()
	if err != nil {
		resp.AddError(err.Error(), cerr.ConstErrCreateFailed)
		return nil, resp
	}

	resp.AddPayload(mc.RespCreateGame{GameUuid: game.Uuid(), PlayerUuid: game.Human().Uuid()})
	return game, resp
}

// The human sends the fleet placement; the computer fleet is already
// placed when the game is created.
func (r Request) HandleReadyPlayer(game *mb.Game) mc.Message[mc.NoPayload] {
	resp := mc.NewMessage[mc.NoPayload](mc.CodeReady)

	var req mc.Message[mc.ReqReadyPlayer]
	if err := json.Unmarshal(r.payload, &req); err != nil {
		resp.AddError(err.Error(), "invalid ready payload")
		return resp
	}
	if err := checkGame(game, req.Payload.GameUuid); err != nil {
		resp.AddError(err.Error(), cerr.ConstErrReadyFailed)
		return resp
	}

	if err := game.SetHumanFleet(req.Payload.Ships); err != nil {
		resp.AddError(err.Error(), cerr.ConstErrReadyFailed)
	}
	return resp
}

func (r Request) HandleAttack(game *mb.Game) mc.Message[mc.RespAttack] {
	resp := mc.NewMessage[mc.RespAttack](mc.CodeAttack)

	var req mc.Message[mc.ReqAttack]
	if err := json.Unmarshal(r.payload, &req); err != nil {
		resp.AddError(err.Error(), "invalid attack payload")
		return resp
	}
	if err := checkGame(game, req.Payload.GameUuid); err != nil {
		resp.AddError(err.Error(), cerr.ConstErrAttackFailed)
		return resp
	}

	c := mb.NewCoordinates(req.Payload.Row, req.Payload.Col)
	result, err := game.HumanAttack(c)
	if err != nil {
		resp.AddError(err.Error(), cerr.ConstErrAttackFailed)
		return resp
	}

	resp.AddPayload(mc.NewRespAttack(c, result, game.Computer().SunkenShips(), false))
	return resp
}

func (r Request) HandleComputerAttack(game *mb.Game) mc.Message[mc.RespComputerAttack] {
	resp := mc.NewMessage[mc.RespComputerAttack](mc.CodeComputerAttack)

	c, result, err := game.ComputerAttack()
	if err != nil {
		resp.AddError(err.Error(), cerr.ConstErrAttackFailed)
		return resp
	}

	resp.AddPayload(mc.RespComputerAttack{
		RespAttack: mc.NewRespAttack(c, result, game.Human().SunkenShips(), !game.IsFinished()),
		Mode:       game.Engine().Mode().String(),
	})
	return resp
}

func checkGame(game *mb.Game, gameUuid string) error {
	if game == nil {
		return cerr.ErrGameNotExists(gameUuid)
	}
	if gameUuid != "" && gameUuid != game.Uuid() {
		return cerr.ErrGameNotExists(gameUuid)
	}
	return nil
}
