package websocket

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/coder/quartz"
	"github.com/gorilla/websocket"
	"golang.org/x/time/rate"

	"github.com/rocketscienceinc/tictactoe-arcade/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-arcade/internal/entity"
	"github.com/rocketscienceinc/tictactoe-arcade/internal/metrics"
	"github.com/rocketscienceinc/tictactoe-arcade/internal/usecase"
)

const (
	sessionCookieName = "user_session"
	sessionCookieTTL  = 24 * time.Hour
)

// Session is one client's game, as driven by usecase.GameManager.
type Session interface {
	OnChange(listener usecase.Listener)
	Load(ctx context.Context, sessionID string) (entity.GameView, error)
	Play(ctx context.Context, cell int) (entity.GameView, error)
	Reset(ctx context.Context) (entity.GameView, error)
	NewGame(ctx context.Context) (entity.GameView, error)
	SetMode(ctx context.Context, mode entity.Mode) (entity.GameView, error)
	Snapshot() entity.GameView
	Close()
}

// SessionFactory builds a fresh Session for every accepted connection.
type SessionFactory func() Session

type Options struct {
	FrameInterval time.Duration
	Particles     int
	// RateLimit is the inbound messages per second. Zero or less means unlimited.
	RateLimit rate.Limit
	Burst     int
	// AllowedOrigins are the browser origins allowed to connect from another host.
	AllowedOrigins []string
}

type handlerFunc func(ctx context.Context, conn *connection, message *Message) error

type Server struct {
	logger     *slog.Logger
	newSession SessionFactory
	clock      quartz.Clock
	options    Options
	upgrader   websocket.Upgrader

	handlers map[string]handlerFunc
}

func New(logger *slog.Logger, newSession SessionFactory, clock quartz.Clock, options Options) *Server {
	if options.FrameInterval <= 0 {
		options.FrameInterval = time.Second / 30
	}

	if options.RateLimit <= 0 {
		options.RateLimit = rate.Inf
	}

	if options.Burst <= 0 {
		options.Burst = 1
	}

	server := &Server{
		logger:     logger.With("component", "websocket"),
		newSession: newSession,
		clock:      clock,
		options:    options,
		handlers:   make(map[string]handlerFunc),
	}

	// the upgrade request is not covered by the router's cors middleware
	server.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     server.checkOrigin,
	}

	server.handlers[ActionGameState] = server.handleGameState
	server.handlers[ActionGamePlay] = server.handleGamePlay
	server.handlers[ActionGameReset] = server.handleGameReset
	server.handlers[ActionGameNew] = server.handleGameNew
	server.handlers[ActionGameMode] = server.handleGameMode
	server.handlers[ActionFieldResize] = server.handleFieldResize
	server.handlers[ActionFieldPointer] = server.handleFieldPointer

	return server
}

// ServeHTTP upgrades the request and serves the connection until either side closes it.
func (that *Server) ServeHTTP(writer http.ResponseWriter, req *http.Request) {
	log := that.logger.With("method", "ServeHTTP")

	sessionID, header := that.sessionCookie(req)

	wsConn, err := that.upgrader.Upgrade(writer, req, header)
	if err != nil {
		log.Error("failed to upgrade connection", "error", err)
		return
	}

	metrics.SessionsActive.Inc()
	defer metrics.SessionsActive.Dec()

	session := that.newSession()
	defer session.Close()

	log = log.With("sessionID", sessionID)
	log.Info("WebSocket connection established")

	conn := newConnection(that, wsConn, session, log)
	if err = conn.serve(req.Context(), sessionID); err != nil && !errors.Is(err, apperror.ErrSessionClosed) {
		log.Error("connection closed with error", "error", err)
		return
	}

	log.Info("WebSocket connection closed")
}

// sessionCookie returns the client's session id, and a Set-Cookie header when a new one was issued.
func (that *Server) sessionCookie(req *http.Request) (string, http.Header) {
	log := that.logger.With("method", "sessionCookie")

	if cookie, err := req.Cookie(sessionCookieName); err == nil && cookie.Value != "" {
		log.Debug("session cookie found", "cookie", cookie.Value)
		return cookie.Value, nil
	}

	cookie := &http.Cookie{
		Name:     sessionCookieName,
		Value:    GenerateNewSessionID(),
		Expires:  time.Now().Add(sessionCookieTTL),
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}

	header := http.Header{}
	header.Add("Set-Cookie", cookie.String())

	log.Debug("session cookie not found, new one created", "cookie", cookie.Value)

	return cookie.Value, header
}

// GenerateNewSessionID - generates a new unique sessionID.
func GenerateNewSessionID() string {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "error-generating-session-id"
	}

	return base64.RawURLEncoding.EncodeToString(b)
}
