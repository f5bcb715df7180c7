package websocket

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/rocketscienceinc/tictactoe-arcade/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-arcade/internal/entity"
	"github.com/rocketscienceinc/tictactoe-arcade/internal/field"
	"github.com/rocketscienceinc/tictactoe-arcade/internal/metrics"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096

	sendBufferSize    = 64
	inboundBufferSize = 16
)

// connection owns one client. Inbound messages, game changes and field ticks
// are all handled by eventLoop, one at a time.
type connection struct {
	server *Server
	logger *slog.Logger
	conn   *websocket.Conn
	game   Session

	limiter *rate.Limiter
	inbound chan Message
	send    chan []byte

	// touched only by eventLoop
	field *field.Field

	mu      sync.Mutex
	latest  entity.GameView
	changed chan struct{}
}

func newConnection(server *Server, conn *websocket.Conn, game Session, logger *slog.Logger) *connection {
	return &connection{
		server:  server,
		logger:  logger,
		conn:    conn,
		game:    game,
		limiter: rate.NewLimiter(server.options.RateLimit, server.options.Burst),
		inbound: make(chan Message, inboundBufferSize),
		send:    make(chan []byte, sendBufferSize),
		changed: make(chan struct{}, 1),
	}
}

func (that *connection) serve(ctx context.Context, sessionID string) error {
	group, ctx := errgroup.WithContext(ctx)

	// unblocks readPump once any part of the connection stops
	stop := context.AfterFunc(ctx, func() {
		_ = that.conn.Close()
	})
	defer stop()

	that.game.OnChange(that.onGameChange)

	if _, err := that.game.Load(ctx, sessionID); err != nil {
		_ = that.conn.Close()
		return fmt.Errorf("failed to load game: %w", err)
	}

	group.Go(func() error {
		return that.readPump(ctx)
	})
	group.Go(func() error {
		return that.writePump(ctx)
	})
	group.Go(func() error {
		return that.eventLoop(ctx)
	})

	return group.Wait()
}

// onGameChange keeps only the latest view; eventLoop sends it when it gets to it.
func (that *connection) onGameChange(view entity.GameView) {
	that.mu.Lock()
	that.latest = view
	that.mu.Unlock()

	select {
	case that.changed <- struct{}{}:
	default:
	}
}

func (that *connection) readPump(ctx context.Context) error {
	log := that.logger.With("method", "readPump")

	that.conn.SetReadLimit(maxMessageSize)
	_ = that.conn.SetReadDeadline(time.Now().Add(pongWait))
	that.conn.SetPongHandler(func(string) error {
		return that.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := that.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Warn("unexpected close", "error", err)
			}
			return apperror.ErrSessionClosed
		}

		if !that.limiter.Allow() {
			metrics.MessagesRejected.WithLabelValues("rate").Inc()
			that.sendError(ctx, "", apperror.ErrRateLimited)
			continue
		}

		var message Message
		if err = json.Unmarshal(data, &message); err != nil {
			metrics.MessagesRejected.WithLabelValues("malformed").Inc()
			log.Debug("failed to unmarshal message", "error", err)
			that.sendError(ctx, "", apperror.ErrInvalidPayload)
			continue
		}

		select {
		case that.inbound <- message:
		case <-ctx.Done():
			return nil
		}
	}
}

func (that *connection) writePump(ctx context.Context) error {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			_ = that.conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(writeWait))
			return nil

		case data := <-that.send:
			_ = that.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := that.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return fmt.Errorf("failed to write message: %w", err)
			}

		case <-ticker.C:
			_ = that.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := that.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return fmt.Errorf("failed to write ping: %w", err)
			}
		}
	}
}

func (that *connection) eventLoop(ctx context.Context) error {
	ticker := that.server.clock.NewTicker(that.server.options.FrameInterval, "websocket", "field")
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case message := <-that.inbound:
			that.dispatch(ctx, &message)

		case <-that.changed:
			that.mu.Lock()
			view := that.latest
			that.mu.Unlock()

			that.sendMessage(ctx, ActionGameState, view)

		case <-ticker.C:
			// a tick that arrives while a message is handled waits for the next select
			if that.field == nil {
				continue
			}

			if that.trySendMessage(ActionFieldFrame, that.field.Tick()) {
				metrics.FieldFrames.Inc()
			}
		}
	}
}

func (that *connection) dispatch(ctx context.Context, message *Message) {
	log := that.logger.With("method", "dispatch", "action", message.Action)

	handler, ok := that.server.handlers[message.Action]
	if !ok {
		metrics.MessagesRejected.WithLabelValues("unknown").Inc()
		that.sendError(ctx, message.Action, apperror.ErrUnknownAction)
		return
	}

	if err := handler(ctx, that, message); err != nil {
		log.Error("error processing message", "error", err)
		that.sendError(ctx, message.Action, err)
	}
}

// sendMessage queues a message, waiting for room in the send buffer.
func (that *connection) sendMessage(ctx context.Context, action string, payload any) {
	data, err := encodeMessage(action, payload)
	if err != nil {
		that.logger.Error("failed to encode message", "action", action, "error", err)
		return
	}

	select {
	case that.send <- data:
	case <-ctx.Done():
	}
}

// trySendMessage drops the message when the client is not keeping up.
func (that *connection) trySendMessage(action string, payload any) bool {
	data, err := encodeMessage(action, payload)
	if err != nil {
		that.logger.Error("failed to encode message", "action", action, "error", err)
		return false
	}

	select {
	case that.send <- data:
		return true
	default:
		return false
	}
}

func (that *connection) sendError(ctx context.Context, action string, err error) {
	that.sendMessage(ctx, ActionError, ErrorPayload{Action: action, Error: err.Error()})
}
