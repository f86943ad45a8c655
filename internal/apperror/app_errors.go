package apperror

import "errors"

// Move errors. Every one of them is caused by the caller's input and leaves the game untouched.
var (
	ErrGameOver     = errors.New("game is already over")
	ErrNotYourTurn  = errors.New("it's not your turn")
	ErrInvalidCell  = errors.New("invalid cell index")
	ErrCellOccupied = errors.New("cell is already occupied")
)
