package tui

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/coder/quartz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-arcade/internal/entity"
	"github.com/rocketscienceinc/tictactoe-arcade/internal/repository"
	"github.com/rocketscienceinc/tictactoe-arcade/internal/service"
	"github.com/rocketscienceinc/tictactoe-arcade/internal/usecase"
)

func TestEndSession(t *testing.T) {
	// Given: a local session with a pending computer move
	ctx, cancel := context.WithCancel(context.Background())
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	gameRepo := repository.NewMemoryGameRepository()
	manager := usecase.NewGameManager(logger, gameRepo, service.NewBotService(nil), quartz.NewMock(t), usecase.DefaultComputerDelay)

	_, err := manager.Load(ctx, localSessionID)
	require.NoError(t, err)
	_, err = manager.SetMode(ctx, entity.ModePlayerVsComputer)
	require.NoError(t, err)
	_, err = manager.Play(ctx, 0)
	require.NoError(t, err)
	require.True(t, manager.ComputerMovePending())

	// When: the terminal closes after its context was canceled
	cancel()
	endSession(ctx, logger, manager)

	// Then: the pending move is dropped and the stored game is gone
	assert.False(t, manager.ComputerMovePending())
	_, err = gameRepo.GetByID(context.Background(), localSessionID)
	require.ErrorIs(t, err, repository.ErrGameNotFound)
}
