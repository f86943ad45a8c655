package view

import (
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"sync"

	"github.com/rocketscienceinc/tictactoe-engine/internal/game"
)

const (
	title        = "Tic Tac Toe"
	rowSeparator = "---+---+---"
)

// Renderer writes the board to out every time the game state changes.
type Renderer struct {
	logger      *slog.Logger
	out         io.Writer
	showNumbers bool

	mu          sync.Mutex
	renderCount int
}

func NewRenderer(logger *slog.Logger, out io.Writer, showNumbers bool) *Renderer {
	return &Renderer{
		logger:      logger.With("component", "renderer"),
		out:         out,
		showNumbers: showNumbers,
	}
}

// OnStateChange - re-renders the game after a transition.
func (that *Renderer) OnStateChange(state game.State) {
	that.Render(state)
}

// Render writes the state to the output.
func (that *Renderer) Render(state game.State) {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.renderCount++
	that.logger.Debug("rendering game", "render", that.renderCount, "status", state.Outcome.Status)

	if _, err := io.WriteString(that.out, RenderGame(state, that.showNumbers)); err != nil {
		that.logger.Error("failed to write game", "error", err)
	}
}

// RenderCount returns how many times the game has been rendered.
func (that *Renderer) RenderCount() int {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.renderCount
}

// RenderGame builds the full text view: title, status line and board.
func RenderGame(state game.State, showNumbers bool) string {
	var sb strings.Builder

	sb.WriteString(title)
	sb.WriteString("\n")
	sb.WriteString(RenderStatus(state))
	sb.WriteString("\n\n")
	sb.WriteString(RenderBoard(state.Board, showNumbers))
	sb.WriteString("\n")

	return sb.String()
}

// RenderStatus describes whose turn it is or how the game ended.
func RenderStatus(state game.State) string {
	switch state.Outcome.Status {
	case game.StatusWin:
		line := state.Outcome.Line
		return fmt.Sprintf("Winner: %s (cells %d, %d, %d)", state.Outcome.Winner, line[0], line[1], line[2])
	case game.StatusTie:
		return "Result: tie"
	default:
		return "Current turn: " + string(state.Turn)
	}
}

// RenderBoard draws the 3x3 grid. Empty cells are blank, or show their index when showNumbers is set.
func RenderBoard(board game.Board, showNumbers bool) string {
	rows := make([]string, 0, 3)
	for row := range 3 {
		squares := make([]string, 0, 3)
		for col := range 3 {
			index := row*3 + col
			squares = append(squares, " "+renderSquare(index, board[index], showNumbers)+" ")
		}
		rows = append(rows, strings.Join(squares, "|"))
	}

	return strings.Join(rows, "\n"+rowSeparator+"\n") + "\n"
}

func renderSquare(index int, cell game.Cell, showNumbers bool) string {
	if cell != game.EmptyCell {
		return string(cell)
	}

	if showNumbers {
		return strconv.Itoa(index)
	}

	return " "
}
