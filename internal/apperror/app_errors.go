package apperror

import "errors"

var (
	ErrGameFinished       = errors.New("game is already finished")
	ErrGameNotFound       = errors.New("game not found")
	ErrGameConflict       = errors.New("game was modified concurrently")
	ErrNotYourTurn        = errors.New("it's not your turn")
	ErrNotYourGame        = errors.New("game belongs to another player")
	ErrCellOccupied       = errors.New("cell is already occupied")
	ErrInvalidCell        = errors.New("invalid cell index")
	ErrInvalidMark        = errors.New("invalid mark")
	ErrNoAvailableMoves   = errors.New("no available moves")
	ErrUnknownGameType    = errors.New("unknown game type")
	ErrUnknownDifficulty  = errors.New("unknown difficulty")
	ErrUnknownGameStatus  = errors.New("unknown game status")
	ErrUnknownFormat      = errors.New("unknown output format")
	ErrInvalidBoardString = errors.New("invalid board string")
)
