package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/coder/quartz"

	"github.com/rocketscienceinc/tictactoe-arcade/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-arcade/internal/entity"
	"github.com/rocketscienceinc/tictactoe-arcade/internal/metrics"
	"github.com/rocketscienceinc/tictactoe-arcade/internal/service"
)

const DefaultComputerDelay = 700 * time.Millisecond

type gameRepoDep interface {
	CreateOrUpdate(ctx context.Context, game *entity.Game) error
	GetByID(ctx context.Context, id string) (*entity.Game, error)
	DeleteByID(ctx context.Context, id string) error
}

// Listener receives the session view after every change.
type Listener func(view entity.GameView)

// GameManager drives one session's game for a view layer.
type GameManager struct {
	logger     *slog.Logger
	gameRepo   gameRepoDep
	botService service.BotService

	computerMove *Deferred

	mu       sync.Mutex
	game     *entity.Game
	listener Listener
}

func NewGameManager(logger *slog.Logger, gameRepo gameRepoDep, botService service.BotService, clock quartz.Clock, computerDelay time.Duration) *GameManager {
	return &GameManager{
		logger:       logger.With("component", "game-manager"),
		gameRepo:     gameRepo,
		botService:   botService,
		computerMove: NewDeferred(clock, computerDelay, "game-manager", "computer-move"),
		game:         entity.NewGame("", entity.ModePlayerVsPlayer),
	}
}

func (that *GameManager) OnChange(listener Listener) {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.listener = listener
}

// Load restores the session's game, or starts a new one when the session has none.
func (that *GameManager) Load(ctx context.Context, sessionID string) (entity.GameView, error) {
	log := that.logger.With("method", "Load", "sessionID", sessionID)

	game, err := that.gameRepo.GetByID(ctx, sessionID)
	switch {
	case errors.Is(err, apperror.ErrNotFound):
		log.Debug("no stored game, starting a new one")

		game = entity.NewGame(sessionID, entity.ModePlayerVsPlayer)
		if err = that.gameRepo.CreateOrUpdate(ctx, game.Clone()); err != nil {
			return entity.GameView{}, fmt.Errorf("failed to create game: %w", err)
		}
	case err != nil:
		return entity.GameView{}, fmt.Errorf("failed to get game by id: %w", err)
	}

	that.mu.Lock()
	that.computerMove.Cancel()
	that.game = game
	if game.IsComputerTurn() {
		that.scheduleComputerMove(ctx)
	}
	view := that.game.View()
	that.mu.Unlock()

	that.notify(view)

	return view, nil
}

// Play makes the human move on cell. Plays the rules reject are silently ignored.
// The move only counts once it is stored.
func (that *GameManager) Play(ctx context.Context, cell int) (entity.GameView, error) {
	that.mu.Lock()

	// the board belongs to the computer until it has answered
	if that.game.IsComputerTurn() {
		view := that.game.View()
		that.mu.Unlock()
		return view, nil
	}

	next := that.game.Clone()
	if !next.Play(cell) {
		view := that.game.View()
		that.mu.Unlock()
		return view, nil
	}

	if err := that.persist(ctx, next); err != nil {
		that.mu.Unlock()
		return entity.GameView{}, fmt.Errorf("failed to update game: %w", err)
	}

	that.game = next

	metrics.Moves.WithLabelValues(metrics.ActorHuman).Inc()
	that.recordResult()

	if that.game.IsComputerTurn() {
		that.scheduleComputerMove(ctx)
	}

	view := that.game.View()
	that.mu.Unlock()

	that.notify(view)

	return view, nil
}

// Reset clears the board and keeps the scores.
func (that *GameManager) Reset(ctx context.Context) (entity.GameView, error) {
	return that.mutate(ctx, "Reset", func(game *entity.Game) {
		game.Reset()
	})
}

// NewGame clears the board and zeroes the scores.
func (that *GameManager) NewGame(ctx context.Context) (entity.GameView, error) {
	return that.mutate(ctx, "NewGame", func(game *entity.Game) {
		game.Restart()
	})
}

// SetMode switches between player vs player and player vs computer; unknown modes are ignored.
func (that *GameManager) SetMode(ctx context.Context, mode entity.Mode) (entity.GameView, error) {
	if !mode.IsValid() {
		return that.Snapshot(), nil
	}

	return that.mutate(ctx, "SetMode", func(game *entity.Game) {
		game.SetMode(mode)
	})
}

func (that *GameManager) Snapshot() entity.GameView {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.game.View()
}

// ComputerMovePending reports whether the computer's answer is scheduled.
func (that *GameManager) ComputerMovePending() bool {
	return that.computerMove.Pending()
}

// Close drops the pending computer move. The stored game is kept for the session.
func (that *GameManager) Close() {
	that.computerMove.Cancel()
}

// End drops the pending computer move and forgets the stored game.
func (that *GameManager) End(ctx context.Context) error {
	that.computerMove.Cancel()

	that.mu.Lock()
	gameID := that.game.ID
	that.mu.Unlock()

	if err := that.gameRepo.DeleteByID(ctx, gameID); err != nil {
		return fmt.Errorf("failed to delete game: %w", err)
	}

	return nil
}

// mutate applies change to a copy and keeps it only once it is stored.
// A failed save leaves the game and its pending computer move untouched.
func (that *GameManager) mutate(ctx context.Context, method string, change func(game *entity.Game)) (entity.GameView, error) {
	that.mu.Lock()

	next := that.game.Clone()
	change(next)

	if err := that.persist(ctx, next); err != nil {
		that.mu.Unlock()
		return entity.GameView{}, fmt.Errorf("failed to update game: %w", err)
	}

	that.computerMove.Cancel()
	that.game = next

	that.logger.Debug("game changed", "method", method, "gameID", that.game.ID, "mode", that.game.Mode)

	view := that.game.View()
	that.mu.Unlock()

	that.notify(view)

	return view, nil
}

// scheduleComputerMove must be called with mu held.
func (that *GameManager) scheduleComputerMove(ctx context.Context) {
	detached := context.WithoutCancel(ctx)

	that.computerMove.Schedule(func() {
		that.playComputerMove(detached)
	})
}

func (that *GameManager) playComputerMove(ctx context.Context) {
	log := that.logger.With("method", "playComputerMove")

	that.mu.Lock()

	if !that.game.IsComputerTurn() {
		that.mu.Unlock()
		log.Debug("computer move skipped, game state changed")
		return
	}

	cell, err := that.botService.MakeTurn(that.game)
	if err != nil {
		that.mu.Unlock()
		log.Error("bot failed to make turn", "error", err)
		return
	}

	metrics.Moves.WithLabelValues(metrics.ActorComputer).Inc()
	that.recordResult()

	// the move stays in memory even when it cannot be stored, so the human gets the turn back
	if err = that.persist(ctx, that.game); err != nil {
		log.Error("failed to update game", "error", err)
	}

	log.Debug("computer moved", "gameID", that.game.ID, "cell", cell)

	view := that.game.View()
	that.mu.Unlock()

	that.notify(view)
}

func (that *GameManager) persist(ctx context.Context, game *entity.Game) error {
	if err := that.gameRepo.CreateOrUpdate(ctx, game.Clone()); err != nil {
		return fmt.Errorf("failed to save game: %w", err)
	}
	return nil
}

func (that *GameManager) recordResult() {
	if !that.game.IsFinished() {
		return
	}

	switch that.game.Winner {
	case entity.PlayerX:
		metrics.GamesFinished.WithLabelValues(metrics.ResultX).Inc()
	case entity.PlayerO:
		metrics.GamesFinished.WithLabelValues(metrics.ResultO).Inc()
	default:
		metrics.GamesFinished.WithLabelValues(metrics.ResultDraw).Inc()
	}
}

func (that *GameManager) notify(view entity.GameView) {
	that.mu.Lock()
	listener := that.listener
	that.mu.Unlock()

	if listener != nil {
		listener(view)
	}
}
