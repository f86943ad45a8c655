package console

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-engine/internal/game"
	"github.com/rocketscienceinc/tictactoe-engine/internal/view"
)

type testSetup struct {
	server *Server
	engine *game.Engine
	out    *bytes.Buffer
}

func newTestSetup(t *testing.T) *testSetup {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	out := &bytes.Buffer{}
	renderer := view.NewRenderer(logger, out, true)
	engine := game.NewEngine(renderer)

	return &testSetup{
		server: New(logger, engine, renderer, out, "> "),
		engine: engine,
		out:    out,
	}
}

func (that *testSetup) serve(t *testing.T, input string) {
	t.Helper()

	require.NoError(t, that.server.Serve(context.Background(), strings.NewReader(input)))
}

func TestServer_Serve(t *testing.T) {
	t.Run("Bare numbers play for the side to move", func(t *testing.T) {
		// Given: a console server
		setup := newTestSetup(t)

		// When: two cells are clicked
		setup.serve(t, "4\n0\n")

		// Then: X and O took turns
		state := setup.engine.State()
		assert.Equal(t, game.MarkX, state.Board[4])
		assert.Equal(t, game.MarkO, state.Board[0])
		assert.Equal(t, game.PlayerX, state.Turn)
	})

	t.Run("Winning sequence is rendered", func(t *testing.T) {
		// Given: a console server
		setup := newTestSetup(t)

		// When: X completes the top row
		setup.serve(t, "move 0\nmove 3\nmove 1\nmove 4\nmove 2\n")

		// Then: the win is in the state and in the output
		assert.Equal(t, game.Win(game.PlayerX, game.Line{0, 1, 2}), setup.engine.State().Outcome)
		assert.Contains(t, setup.out.String(), "Winner: X (cells 0, 1, 2)")
	})

	t.Run("Explicit player out of turn is reported", func(t *testing.T) {
		// Given: a console server
		setup := newTestSetup(t)

		// When: O tries to open the game
		setup.serve(t, "play o 4\n")

		// Then: the error is printed and the board is untouched
		assert.Contains(t, setup.out.String(), "error: it's not your turn")
		assert.Equal(t, game.NewState(), setup.engine.State())
	})

	t.Run("Invalid cells are reported", func(t *testing.T) {
		// Given: a console server
		setup := newTestSetup(t)

		// When: a cell outside the board and a non-integer cell are played
		setup.serve(t, "9\nmove 1.5\nmove abc\n")

		// Then: each is rejected as an invalid cell
		assert.Equal(t, 3, strings.Count(setup.out.String(), "error: invalid cell index"))
		assert.Equal(t, game.NewState(), setup.engine.State())
	})

	t.Run("Occupied cells are reported", func(t *testing.T) {
		// Given: a console server
		setup := newTestSetup(t)

		// When: the same cell is clicked twice
		setup.serve(t, "4\n4\n")

		// Then: the second click is rejected
		assert.Contains(t, setup.out.String(), "error: cell is already occupied")
		assert.Equal(t, game.PlayerO, setup.engine.State().Turn)
	})

	t.Run("Moves after the game ended are reported", func(t *testing.T) {
		// Given: a console server
		setup := newTestSetup(t)

		// When: a move follows X's win
		setup.serve(t, "0\n3\n1\n4\n2\n5\n")

		// Then: the move is rejected
		assert.Contains(t, setup.out.String(), "error: game is already over")
	})

	t.Run("Reset starts a new game", func(t *testing.T) {
		// Given: a console server
		setup := newTestSetup(t)

		// When: a move is played and the game is reset
		setup.serve(t, "4\nreset\n")

		// Then: the state is the initial one
		assert.Equal(t, game.NewState(), setup.engine.State())
	})

	t.Run("Show, help and unknown commands", func(t *testing.T) {
		// Given: a console server
		setup := newTestSetup(t)

		// When: informational and unknown commands are sent
		setup.serve(t, "show\nhelp\n\njump 4\nmove\n")

		// Then: each gets its answer
		out := setup.out.String()
		assert.Contains(t, out, "Current turn: X")
		assert.Contains(t, out, "play <X|O> <cell>")
		assert.Contains(t, out, `error: unknown command: "jump"`)
		assert.Contains(t, out, "error: missing argument")
	})

	t.Run("Quit stops reading", func(t *testing.T) {
		// Given: a console server
		setup := newTestSetup(t)

		// When: quit comes before a move
		setup.serve(t, "quit\n4\n")

		// Then: the move after quit is never played
		assert.Equal(t, game.NewState(), setup.engine.State())
	})
}

func TestServer_Serve_ContextCanceled(t *testing.T) {
	// Given: a console server reading from input that never arrives
	setup := newTestSetup(t)
	reader, writer := io.Pipe()
	t.Cleanup(func() { _ = writer.Close() })

	ctx, cancel := context.WithCancel(context.Background())

	errCh := make(chan error, 1)
	go func() {
		errCh <- setup.server.Serve(ctx, reader)
	}()

	// When: the context is canceled
	cancel()

	// Then: Serve returns the context error
	select {
	case err := <-errCh:
		require.ErrorIs(t, err, context.Canceled)
	case <-time.After(5 * time.Second):
		t.Fatal("Serve did not return after cancel")
	}
}

func TestServer_Serve_QuitReleasesReader(t *testing.T) {
	// Given: the goroutine count before any session
	before := runtime.NumGoroutine()

	// When: sessions quit while more input is still buffered
	for range 20 {
		setup := newTestSetup(t)
		setup.serve(t, "quit\n4\n5\n")
	}

	// Then: every reader goroutine has exited
	require.Eventually(t, func() bool {
		return runtime.NumGoroutine() <= before
	}, 5*time.Second, 10*time.Millisecond, "reader goroutines still running after quit")
}
