package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/pflag"

	"github.com/saeidalz13/battle-of-warships/api"
	"github.com/saeidalz13/battle-of-warships/db"
	"github.com/saeidalz13/battle-of-warships/db/local"
	"github.com/saeidalz13/battle-of-warships/db/sqlc"
	"github.com/saeidalz13/battle-of-warships/internal/config"
	"github.com/saeidalz13/battle-of-warships/internal/input"
	"github.com/saeidalz13/battle-of-warships/internal/logging"
	"github.com/saeidalz13/battle-of-warships/internal/render"
	mb "github.com/saeidalz13/battle-of-warships/models/battleship"
	mc "github.com/saeidalz13/battle-of-warships/models/connection"
)

const (
	appName       = "warships"
	statsCommand  = "stats"
	recordTimeout = time.Second * 10
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	stats := len(args) > 0 && args[0] == statsCommand
	if stats {
		args = args[1:]
	}

	flags := config.NewFlagSet(appName)
	flags.SetOutput(stderr)
	player := ""
	if stats {
		flags.StringVar(&player, "player", "", "only count matches of this player")
	}
	if err := flags.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return 0
		}
		return 2
	}

	cfg, err := config.Load(".", flags)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	var logFile io.Writer
	if cfg.LogFile != "" {
		file, err := logging.OpenFile(cfg.LogFile)
		if err != nil {
			fmt.Fprintln(stderr, err)
			return 1
		}
		defer file.Close()
		logFile = file
	}
	logger := logging.New(stderr, logFile, cfg.LogLevel)

	recorder, closeRecorder, err := openRecorder(cfg, logger)
	if err != nil {
		logger.Error().Err(err).Msg("failed to open match storage")
		return 1
	}
	defer func() {
		if err := closeRecorder(); err != nil {
			logger.Warn().Err(err).Msg("failed to close match storage")
		}
	}()

	renderer := render.NewRenderer(stdout)

	if stats {
		err = printStats(ctx, renderer, recorder, player)
	} else {
		prompter := input.NewConsolePrompter(stdin, stdout, mb.GridSize)
		err = play(ctx, cfg, logger, renderer, prompter, recorder, stdout)
	}
	if err != nil {
		logger.Error().Err(err).Msg(appName + " stopped")
		return 1
	}
	return 0
}

// openRecorder picks where match summaries go. The returned func
// releases the storage.
func openRecorder(cfg config.Config, logger zerolog.Logger) (mb.Recorder, func() error, error) {
	switch cfg.Storage.Type {
	case config.StoragePostgres:
		sqlDB := db.MustConnectToDb(cfg.Storage.PostgresUrl, logger)
		dbManager := sqlc.NewDbManager(sqlc.New(sqlDB), db.ServerIpNet())
		return dbManager.Analytics, sqlDB.Close, nil

	case config.StorageSqlite:
		store, err := local.Open(cfg.Storage.SqlitePath, logger)
		if err != nil {
			return nil, nil, err
		}
		return store, store.Close, nil

	default:
		return mb.NopRecorder{}, func() error { return nil }, nil
	}
}

func printStats(ctx context.Context, renderer *render.Renderer, recorder mb.Recorder, player string) error {
	var (
		totals mb.Totals
		err    error
	)
	if player != "" {
		totals, err = recorder.PlayerTotals(ctx, player)
	} else {
		totals, err = recorder.Totals(ctx)
	}
	if err != nil {
		return fmt.Errorf("failed to read match totals: %w", err)
	}

	renderer.Stats(player, totals)
	return nil
}

// play runs matches until the player declines another one. Running out
// of input or being interrupted ends the session without an error.
func play(
	ctx context.Context,
	cfg config.Config,
	logger zerolog.Logger,
	renderer *render.Renderer,
	prompter *input.ConsolePrompter,
	recorder mb.Recorder,
	stdout io.Writer,
) error {
	var gameManager *mb.BattleshipGameManager
	if cfg.Seed != 0 {
		gameManager = mb.NewBattleshipGameManager(mb.NewRand(cfg.Seed), mb.WithPlacerLogger(logger))
	} else {
		gameManager = mb.NewBattleshipGameManager(nil, mb.WithPlacerLogger(logger))
	}

	observers := []mb.Observer{renderer}
	if cfg.Spectator.Enabled {
		sessionManager := mc.NewBattleshipSessionManager(logger)
		server := api.NewServer(
			gameManager,
			sessionManager,
			api.WithPort(cfg.Spectator.Port),
			api.WithStage(cfg.Stage),
			api.WithAllowedOrigins(cfg.Spectator.AllowedOrigins...),
			api.WithLogger(logger),
		)

		serverCtx, stopServer := context.WithCancel(ctx)
		defer stopServer()
		go func() {
			if err := server.ListenAndServe(serverCtx); err != nil {
				logger.Error().Err(err).Msg("spectator feed stopped")
			}
		}()

		observers = append(observers, api.NewFeed(sessionManager, logger))
	}

	renderer.Greet()
	for {
		game := gameManager.CreateGame(cfg.PlayerName, mb.NewHumanTargeter(prompter), observers...)
		logger.Debug().Str("game", game.Uuid()).Msg("match started")
		if cfg.Spectator.Enabled {
			fmt.Fprintf(stdout, "Spectators: ws://localhost:%s/battleship?%s=%s\n",
				cfg.Spectator.Port, api.URLQueryGameIDKeyword, game.Uuid())
		}

		err := game.Run(ctx)
		gameManager.TerminateGame(game.Uuid())
		if err != nil {
			if isQuit(err) {
				logger.Debug().Str("game", game.Uuid()).Msg("match abandoned")
				return nil
			}
			return err
		}

		recordCtx, cancel := context.WithTimeout(ctx, recordTimeout)
		if err := recorder.RecordMatch(recordCtx, game.Summary()); err != nil {
			logger.Warn().Err(err).Str("game", game.Uuid()).Msg("failed to record match")
		}
		cancel()

		again, err := prompter.Confirm(ctx, "Play again?")
		if err != nil {
			if isQuit(err) {
				return nil
			}
			return err
		}
		if !again {
			return nil
		}
	}
}

func isQuit(err error) bool {
	return errors.Is(err, io.EOF) || errors.Is(err, context.Canceled)
}
