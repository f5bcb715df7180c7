package tui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/coder/quartz"

	"github.com/rocketscienceinc/tictactoe-arcade/internal/entity"
	"github.com/rocketscienceinc/tictactoe-arcade/internal/repository"
	"github.com/rocketscienceinc/tictactoe-arcade/internal/service"
	"github.com/rocketscienceinc/tictactoe-arcade/internal/usecase"
)

const localSessionID = "local"

// Run plays a local game in the terminal until the user quits or ctx is done.
func Run(ctx context.Context, logger *slog.Logger, computerDelay time.Duration) error {
	log := logger.With("component", "tui", "method", "Run")

	manager := usecase.NewGameManager(
		logger,
		repository.NewMemoryGameRepository(),
		service.NewBotService(nil),
		quartz.NewReal(),
		computerDelay,
	)
	defer endSession(ctx, log, manager)

	if _, err := manager.Load(ctx, localSessionID); err != nil {
		return fmt.Errorf("failed to load game: %w", err)
	}

	program := tea.NewProgram(NewModel(ctx, logger, manager), tea.WithContext(ctx))

	// computer moves land here from the timer goroutine
	manager.OnChange(func(view entity.GameView) {
		program.Send(ViewMsg(view))
	})

	log.Info("Starting terminal game")

	if _, err := program.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("failed to run terminal game: %w", err)
	}

	return nil
}

// endSession forgets the local game once the terminal closes, even when ctx is already canceled.
func endSession(ctx context.Context, log *slog.Logger, manager *usecase.GameManager) {
	if err := manager.End(context.WithoutCancel(ctx)); err != nil {
		log.Error("failed to end session", "error", err)
	}
}
