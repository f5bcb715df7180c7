package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
	charmlog "github.com/charmbracelet/log"

	app "github.com/rocketscienceinc/tictactoe-arcade/internal"
	"github.com/rocketscienceinc/tictactoe-arcade/internal/canvas"
	"github.com/rocketscienceinc/tictactoe-arcade/internal/config"
	"github.com/rocketscienceinc/tictactoe-arcade/internal/tui"
)

type Globals struct {
	Config string `short:"c" default:"./config.yml" type:"path" help:"Path to the config file"`
}

type CLI struct {
	Globals

	Serve ServeCmd `cmd:"" default:"1" help:"Run the websocket game server"`
	Play  PlayCmd  `cmd:"" help:"Play tic-tac-toe in the terminal"`
	Field FieldCmd `cmd:"" help:"Show the particle field in a desktop window"`
}

type ServeCmd struct{}

func (that *ServeCmd) Run(globals *Globals) error {
	conf := config.MustLoad(globals.Config)
	logger := initLogger(conf, os.Stdout)

	ctx, cancel := app.SignalContext(logger)
	defer cancel()

	if err := app.RunApp(ctx, logger, conf); err != nil {
		return fmt.Errorf("app run failed: %w", err)
	}

	return nil
}

type PlayCmd struct {
	LogFile string `type:"path" help:"Write logs to this file; the terminal belongs to the game"`
}

func (that *PlayCmd) Run(globals *Globals) error {
	conf := config.MustLoad(globals.Config)

	var output io.Writer = io.Discard
	if that.LogFile != "" {
		file, err := os.OpenFile(that.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		defer file.Close()

		output = file
	}

	logger := initLogger(conf, output)

	ctx, cancel := app.SignalContext(logger)
	defer cancel()

	return tui.Run(ctx, logger, conf.Game.ComputerDelay)
}

type FieldCmd struct{}

func (that *FieldCmd) Run(globals *Globals) error {
	conf := config.MustLoad(globals.Config)
	logger := initLogger(conf, os.Stdout)

	return canvas.Run(logger, conf.Field.Width, conf.Field.Height, conf.Field.Particles, conf.Field.FPS)
}

// main - is the entry point of the application. It parses the command line and runs the chosen command.
func main() {
	defer func() {
		if err := recover(); err != nil {
			fmt.Fprintf(os.Stderr, "recovered from panic: %v\n", err)
			os.Exit(1)
		}
	}()

	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("tictactoe"),
		kong.Description("Tic-tac-toe with a computer opponent and a particle backdrop"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
	)

	err := ctx.Run(&cli.Globals)
	ctx.FatalIfErrorf(err)
}

// initialize logger.
func initLogger(conf *config.Config, output io.Writer) *slog.Logger {
	var level slog.Level

	switch conf.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	if conf.LogFormat == "text" {
		return slog.New(charmlog.NewWithOptions(output, charmlog.Options{
			Level:           charmlog.Level(level),
			ReportTimestamp: true,
			TimeFormat:      "15:04:05",
		}))
	}

	return slog.New(slog.NewJSONHandler(output, &slog.HandlerOptions{Level: level}))
}
