package websocket

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-arcade/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-arcade/internal/field"
)

func decodePayload(message *Message, target any) error {
	if len(message.Payload) == 0 {
		return fmt.Errorf("%s: %w", message.Action, apperror.ErrInvalidPayload)
	}

	if err := json.Unmarshal(message.Payload, target); err != nil {
		return fmt.Errorf("%s: %w", message.Action, apperror.ErrInvalidPayload)
	}

	return nil
}

func (that *Server) handleGameState(ctx context.Context, conn *connection, _ *Message) error {
	conn.sendMessage(ctx, ActionGameState, conn.game.Snapshot())
	return nil
}

// handleGamePlay plays the human move. The new state reaches the client through the session listener.
func (that *Server) handleGamePlay(ctx context.Context, conn *connection, message *Message) error {
	var payload PlayPayload
	if err := decodePayload(message, &payload); err != nil {
		return err
	}

	if payload.Cell == nil {
		return fmt.Errorf("cell is required: %w", apperror.ErrInvalidPayload)
	}

	if _, err := conn.game.Play(ctx, *payload.Cell); err != nil {
		return fmt.Errorf("failed to play: %w", err)
	}

	return nil
}

func (that *Server) handleGameReset(ctx context.Context, conn *connection, _ *Message) error {
	if _, err := conn.game.Reset(ctx); err != nil {
		return fmt.Errorf("failed to reset game: %w", err)
	}

	return nil
}

func (that *Server) handleGameNew(ctx context.Context, conn *connection, _ *Message) error {
	if _, err := conn.game.NewGame(ctx); err != nil {
		return fmt.Errorf("failed to start new game: %w", err)
	}

	return nil
}

func (that *Server) handleGameMode(ctx context.Context, conn *connection, message *Message) error {
	var payload ModePayload
	if err := decodePayload(message, &payload); err != nil {
		return err
	}

	if _, err := conn.game.SetMode(ctx, payload.Mode); err != nil {
		return fmt.Errorf("failed to set mode: %w", err)
	}

	return nil
}

// handleFieldResize starts the particle field on the first size and reseeds it on every later one.
func (that *Server) handleFieldResize(_ context.Context, conn *connection, message *Message) error {
	var payload ResizePayload
	if err := decodePayload(message, &payload); err != nil {
		return err
	}

	if payload.Width <= 0 || payload.Height <= 0 {
		return fmt.Errorf("canvas size must be positive: %w", apperror.ErrInvalidPayload)
	}

	if conn.field == nil {
		conn.field = field.New(payload.Width, payload.Height, that.options.Particles, nil)
		return nil
	}

	conn.field.OnResize(payload.Width, payload.Height)

	return nil
}

func (that *Server) handleFieldPointer(_ context.Context, conn *connection, message *Message) error {
	var payload PointerPayload
	if err := decodePayload(message, &payload); err != nil {
		return err
	}

	// no canvas yet, nothing to repel
	if conn.field == nil {
		return nil
	}

	conn.field.OnPointerMove(payload.X, payload.Y)

	return nil
}
