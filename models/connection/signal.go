package connection

// Codes of the frames sent to spectators.
const (
	CodeSessionID uint8 = iota
	CodeInvalidGameID
	CodeTurn
	CodeShot
	CodeEndGame

	// Spectators are not expected to talk, anything they send is
	// answered with this and otherwise ignored.
	CodeInvalidSignal
)

type Signal struct {
	Code uint8 `json:"code"`
}

func NewSignal(code uint8) Signal {
	return Signal{Code: code}
}
