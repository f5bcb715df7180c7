package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	ActorHuman    = "human"
	ActorComputer = "computer"

	ResultX    = "x"
	ResultO    = "o"
	ResultDraw = "draw"
)

// Labels are bounded: no per-session values.
var (
	GamesFinished = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tictactoe_games_finished_total",
		Help: "Finished rounds by result",
	}, []string{"result"})

	Moves = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tictactoe_moves_total",
		Help: "Accepted moves by actor",
	}, []string{"actor"})

	SessionsActive = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "websocket_sessions_active",
		Help: "Currently open websocket sessions",
	})

	MessagesRejected = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "websocket_messages_rejected_total",
		Help: "Inbound messages dropped",
	}, []string{"reason"})

	FieldFrames = promauto.NewCounter(prometheus.CounterOpts{
		Name: "field_frames_sent_total",
		Help: "Particle frames pushed to clients",
	})
)
