package game

import (
	"fmt"
	"sync"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
)

// Listener is notified after every state transition, e.g. to re-render the board.
// Snapshots arrive in transition order. A listener must not call back into the engine.
type Listener interface {
	OnStateChange(state State)
}

// Engine is the only writer of the game state. It is safe for concurrent use.
type Engine struct {
	mu    sync.Mutex
	state State

	// held from the end of a transition until its listeners return
	notifyMu  sync.Mutex
	listeners []Listener
}

func NewEngine(listeners ...Listener) *Engine {
	return &Engine{
		state:     NewState(),
		listeners: listeners,
	}
}

// ApplyMove places player's mark on cell, passes the turn and stores the new outcome.
// The caller learns whether the game ended from State().Outcome.
func (that *Engine) ApplyMove(player Player, cell int) error {
	that.mu.Lock()

	if err := that.validateMove(player, cell); err != nil {
		that.mu.Unlock()
		return err
	}

	that.state.Board[cell] = player.Mark()
	that.state.Turn = player.Opponent()
	that.state.Outcome = Evaluate(that.state.Board)

	snapshot := that.state
	that.notifyMu.Lock()
	that.mu.Unlock()

	that.notify(snapshot)

	return nil
}

// validateMove - checks preconditions in order, the first failure wins.
func (that *Engine) validateMove(player Player, cell int) error {
	if that.state.Outcome.IsFinished() {
		return apperror.ErrGameOver
	}

	if player != that.state.Turn {
		return fmt.Errorf("%w: %s to move", apperror.ErrNotYourTurn, that.state.Turn)
	}

	if cell < 0 || cell >= BoardSize {
		return fmt.Errorf("%w: cell %d", apperror.ErrInvalidCell, cell)
	}

	if that.state.Board[cell] != EmptyCell {
		return fmt.Errorf("%w: cell %d", apperror.ErrCellOccupied, cell)
	}

	return nil
}

// Reset replaces the whole state with the initial one.
func (that *Engine) Reset() {
	that.mu.Lock()
	that.state = NewState()
	snapshot := that.state
	that.notifyMu.Lock()
	that.mu.Unlock()

	that.notify(snapshot)
}

// State returns a snapshot of the current state.
func (that *Engine) State() State {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.state
}

// notify - delivers the snapshot and releases notifyMu taken by the caller.
func (that *Engine) notify(state State) {
	defer that.notifyMu.Unlock()

	for _, listener := range that.listeners {
		listener.OnStateChange(state)
	}
}
