package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/game"
)

var (
	ErrUnknownCommand  = errors.New("unknown command")
	ErrMissingArgument = errors.New("missing argument")

	errQuit = errors.New("quit")
)

const helpText = `commands:
  <cell>              play the side to move on cell 0-8
  move <cell>         same as above
  play <X|O> <cell>   play for the given side
  show                render the board
  reset               start a new game
  help                show this help
  quit                exit
`

type gameEngine interface {
	ApplyMove(player game.Player, cell int) error
	Reset()
	State() game.State
}

type renderer interface {
	Render(state game.State)
}

type handlerFunc func(args []string) error

// Server reads commands line by line and turns them into engine calls.
type Server struct {
	logger   *slog.Logger
	engine   gameEngine
	renderer renderer
	out      io.Writer
	prompt   string

	handlers map[string]handlerFunc
}

func New(logger *slog.Logger, engine gameEngine, renderer renderer, out io.Writer, prompt string) *Server {
	server := &Server{
		logger:   logger.With("component", "console"),
		engine:   engine,
		renderer: renderer,
		out:      out,
		prompt:   prompt,

		handlers: make(map[string]handlerFunc),
	}

	server.handlers["move"] = server.handleMove
	server.handlers["play"] = server.handlePlay
	server.handlers["show"] = server.handleShow
	server.handlers["reset"] = server.handleReset
	server.handlers["help"] = server.handleHelp
	server.handlers["quit"] = server.handleQuit
	server.handlers["exit"] = server.handleQuit

	return server
}

// Serve - processes input until EOF, a quit command or context cancellation.
func (that *Server) Serve(ctx context.Context, in io.Reader) error {
	log := that.logger.With("method", "Serve")

	// stops the reader goroutine when Serve returns on quit
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	lines := make(chan string)
	scanErrCh := make(chan error, 1)

	go func() {
		defer close(lines)

		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}

		scanErrCh <- scanner.Err()
	}()

	that.writePrompt()

	for {
		select {
		case <-ctx.Done():
			log.Info("input loop canceled")
			return ctx.Err()
		case line, ok := <-lines:
			if !ok {
				return that.finish(ctx, scanErrCh)
			}

			if err := that.handleLine(line); err != nil {
				if errors.Is(err, errQuit) {
					log.Info("quit requested")
					return nil
				}

				that.reportError(err)
			}

			that.writePrompt()
		}
	}
}

// finish - decides how the loop ends once the input is closed.
func (that *Server) finish(ctx context.Context, scanErrCh <-chan error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := <-scanErrCh; err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}

	that.logger.Info("input closed")

	return nil
}

func (that *Server) handleLine(line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}

	// a bare number is a click on that square
	if _, err := strconv.Atoi(fields[0]); err == nil {
		return that.handleMove(fields)
	}

	handler, ok := that.handlers[strings.ToLower(fields[0])]
	if !ok {
		return fmt.Errorf("%w: %q, type help", ErrUnknownCommand, fields[0])
	}

	return handler(fields[1:])
}

func (that *Server) handleMove(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: move <cell>", ErrMissingArgument)
	}

	cell, err := parseCell(args[0])
	if err != nil {
		return err
	}

	return that.engine.ApplyMove(that.engine.State().Turn, cell)
}

func (that *Server) handlePlay(args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("%w: play <X|O> <cell>", ErrMissingArgument)
	}

	cell, err := parseCell(args[1])
	if err != nil {
		return err
	}

	return that.engine.ApplyMove(game.Player(strings.ToUpper(args[0])), cell)
}

func (that *Server) handleShow(_ []string) error {
	that.renderer.Render(that.engine.State())
	return nil
}

func (that *Server) handleReset(_ []string) error {
	that.engine.Reset()
	return nil
}

func (that *Server) handleHelp(_ []string) error {
	that.write(helpText)
	return nil
}

func (that *Server) handleQuit(_ []string) error {
	return errQuit
}

func (that *Server) reportError(err error) {
	that.logger.Warn("command rejected", "error", err)
	that.write("error: " + err.Error() + "\n")
}

func (that *Server) writePrompt() {
	that.write(that.prompt)
}

func (that *Server) write(text string) {
	if _, err := io.WriteString(that.out, text); err != nil {
		that.logger.Error("failed to write output", "error", err)
	}
}

// parseCell - converts user input to a cell index; anything but an integer is an invalid cell.
func parseCell(raw string) (int, error) {
	cell, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", apperror.ErrInvalidCell, raw)
	}

	return cell, nil
}
