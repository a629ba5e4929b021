package connection

const (
	CodeSessionID uint8 = iota
	CodeReceivedInvalidSessionID
	CodeCreateGame
	CodeReady
	CodeStartGame
	CodeAttack

	// Sent right after a human attack when the game goes on;
	// carries the computer's shot at the human fleet
	CodeComputerAttack
	CodeEndGame
	CodeInvalidSignal

	// if the req msg does not contain "code" field
	CodeSignalAbsent

	// The client came back on a previous session after an abnormal closure
	CodeReconnected
)

type Signal struct {
	Code uint8 `json:"code"`
}

func NewSignal(code uint8) Signal {
	return Signal{Code: code}
}
