package tui

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rocketscienceinc/tictactoe-arcade/internal/entity"
)

// Game is the part of usecase.GameManager the terminal view drives.
type Game interface {
	Play(ctx context.Context, cell int) (entity.GameView, error)
	Reset(ctx context.Context) (entity.GameView, error)
	NewGame(ctx context.Context) (entity.GameView, error)
	SetMode(ctx context.Context, mode entity.Mode) (entity.GameView, error)
	Snapshot() entity.GameView
}

// ViewMsg carries a new game view into the program, e.g. after the computer moved.
type ViewMsg entity.GameView

type errMsg struct {
	err error
}

type Model struct {
	ctx    context.Context
	logger *slog.Logger
	game   Game

	view   entity.GameView
	cursor int
	err    error

	keys keyMap
	help help.Model
}

func NewModel(ctx context.Context, logger *slog.Logger, game Game) Model {
	return Model{
		ctx:    ctx,
		logger: logger.With("component", "tui"),
		game:   game,
		view:   game.Snapshot(),
		cursor: entity.CenterCell,
		keys:   defaultKeys,
		help:   help.New(),
	}
}

func (that Model) Init() tea.Cmd {
	return nil
}

func (that Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case ViewMsg:
		that.view = entity.GameView(msg)
		that.err = nil

	case errMsg:
		that.logger.Error("game action failed", "error", msg.err)
		that.err = msg.err

	case tea.WindowSizeMsg:
		that.help.Width = msg.Width

	case tea.KeyMsg:
		return that.handleKey(msg)
	}

	return that, nil
}

func (that Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, that.keys.Quit):
		return that, tea.Quit

	case key.Matches(msg, that.keys.Up):
		if that.cursor >= 3 {
			that.cursor -= 3
		}
	case key.Matches(msg, that.keys.Down):
		if that.cursor < 6 {
			that.cursor += 3
		}
	case key.Matches(msg, that.keys.Left):
		if that.cursor%3 > 0 {
			that.cursor--
		}
	case key.Matches(msg, that.keys.Right):
		if that.cursor%3 < 2 {
			that.cursor++
		}

	case key.Matches(msg, that.keys.Play):
		return that, that.play(that.cursor)

	case key.Matches(msg, that.keys.Cell):
		number, err := strconv.Atoi(msg.String())
		if err != nil {
			return that, nil
		}

		that.cursor = number - 1
		return that, that.play(that.cursor)

	case key.Matches(msg, that.keys.Reset):
		return that, that.run(that.game.Reset)

	case key.Matches(msg, that.keys.New):
		return that, that.run(that.game.NewGame)

	case key.Matches(msg, that.keys.Mode):
		mode := entity.ModePlayerVsComputer
		if that.view.Mode == entity.ModePlayerVsComputer {
			mode = entity.ModePlayerVsPlayer
		}

		return that, that.run(func(ctx context.Context) (entity.GameView, error) {
			return that.game.SetMode(ctx, mode)
		})
	}

	return that, nil
}

func (that Model) play(cell int) tea.Cmd {
	return that.run(func(ctx context.Context) (entity.GameView, error) {
		return that.game.Play(ctx, cell)
	})
}

func (that Model) run(action func(ctx context.Context) (entity.GameView, error)) tea.Cmd {
	ctx := that.ctx

	return func() tea.Msg {
		view, err := action(ctx)
		if err != nil {
			return errMsg{err: err}
		}

		return ViewMsg(view)
	}
}

func (that Model) View() string {
	var builder strings.Builder

	builder.WriteString(TitleStyle.Render("TIC TAC TOE"))
	builder.WriteString("\n\n")
	builder.WriteString(that.renderBoard())
	builder.WriteString("\n\n")
	builder.WriteString(StatusStyle.Render(that.view.Status))
	builder.WriteString("\n")
	builder.WriteString(InfoStyle.Render(fmt.Sprintf("X: %d  O: %d  mode: %s",
		that.view.Scores.Of(entity.PlayerX), that.view.Scores.Of(entity.PlayerO), modeName(that.view.Mode))))
	builder.WriteString("\n")

	if that.err != nil {
		builder.WriteString(ErrorStyle.Render(that.err.Error()))
		builder.WriteString("\n")
	}

	builder.WriteString("\n")
	builder.WriteString(that.help.View(that.keys))
	builder.WriteString("\n")

	return builder.String()
}

func (that Model) renderBoard() string {
	rows := make([]string, 0, 5)

	for row := range 3 {
		cells := make([]string, 0, 3)
		for col := range 3 {
			cells = append(cells, that.renderCell(row*3+col))
		}

		rows = append(rows, strings.Join(cells, "│"))
		if row < 2 {
			rows = append(rows, strings.Repeat("─", 17))
		}
	}

	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (that Model) renderCell(index int) string {
	var mark string

	switch that.view.Cells[index] {
	case entity.PlayerX:
		mark = XStyle.Render("X")
	case entity.PlayerO:
		mark = OStyle.Render("O")
	default:
		mark = InfoStyle.Render(strconv.Itoa(index + 1))
	}

	if index == that.cursor {
		return CursorStyle.Render(mark)
	}

	return CellStyle.Render(mark)
}

func modeName(mode entity.Mode) string {
	if mode == entity.ModePlayerVsComputer {
		return "vs computer"
	}

	return "two players"
}
