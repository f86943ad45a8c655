package game

import "fmt"

const (
	StatusOngoing = "ongoing"
	StatusWin     = "win"
	StatusTie     = "tie"
)

// Player is one of the two sides of the game.
type Player string

const (
	PlayerX Player = "X"
	PlayerO Player = "O"
)

// Cell is the content of a single board position.
type Cell string

const (
	EmptyCell Cell = ""
	MarkX     Cell = "X"
	MarkO     Cell = "O"
)

// BoardSize is the number of cells on the 3x3 board.
const BoardSize = 9

// Board holds the cells in row-major order: index i is row i/3, column i%3.
type Board [BoardSize]Cell

// Line is a triple of cell indexes.
type Line [3]int

// Outcome is the phase of the game computed from a board.
// Winner and Line are only meaningful when Status is StatusWin.
type Outcome struct {
	Status string `json:"status"`
	Winner Player `json:"winner,omitempty"`
	Line   Line   `json:"line"`
}

// State is a snapshot of the whole game.
type State struct {
	Board   Board   `json:"board"`
	Turn    Player  `json:"turn"`
	Outcome Outcome `json:"outcome"`
}

func InProgress() Outcome {
	return Outcome{Status: StatusOngoing}
}

func Win(player Player, line Line) Outcome {
	return Outcome{Status: StatusWin, Winner: player, Line: line}
}

func Tie() Outcome {
	return Outcome{Status: StatusTie}
}

func (that Outcome) IsOngoing() bool {
	return that.Status == StatusOngoing
}

// IsFinished reports whether the outcome is terminal (win or tie).
func (that Outcome) IsFinished() bool {
	return that.Status == StatusWin || that.Status == StatusTie
}

// Mark returns the cell value the player writes on the board.
func (that Player) Mark() Cell {
	switch that {
	case PlayerX:
		return MarkX
	case PlayerO:
		return MarkO
	default:
		panic(fmt.Sprintf("unknown player %q", string(that)))
	}
}

// Opponent returns the other player.
func (that Player) Opponent() Player {
	switch that {
	case PlayerX:
		return PlayerO
	case PlayerO:
		return PlayerX
	default:
		panic(fmt.Sprintf("unknown player %q", string(that)))
	}
}

func (that Player) IsValid() bool {
	return that == PlayerX || that == PlayerO
}

// Owner returns the player whose mark is in the cell, or false for an empty cell.
func (that Cell) Owner() (Player, bool) {
	switch that {
	case MarkX:
		return PlayerX, true
	case MarkO:
		return PlayerO, true
	default:
		return "", false
	}
}

// IsFull reports whether no empty cell is left.
func (that Board) IsFull() bool {
	for _, cell := range that {
		if cell == EmptyCell {
			return false
		}
	}

	return true
}

// EmptyCells returns the indexes of all empty cells in ascending order.
func (that Board) EmptyCells() []int {
	cells := make([]int, 0, BoardSize)
	for i, cell := range that {
		if cell == EmptyCell {
			cells = append(cells, i)
		}
	}

	return cells
}

// NewState returns the initial state: an empty board, X to move, game in progress.
func NewState() State {
	return State{
		Turn:    PlayerX,
		Outcome: InProgress(),
	}
}
