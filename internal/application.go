package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/poboll/tictactoe-arm/internal/config"
	"github.com/poboll/tictactoe-arm/internal/repository"
	"github.com/poboll/tictactoe-arm/internal/repository/storage"
	"github.com/poboll/tictactoe-arm/internal/repository/storage/sqlite"
	"github.com/poboll/tictactoe-arm/internal/session"
	"github.com/poboll/tictactoe-arm/internal/transport/serialport"
	"github.com/poboll/tictactoe-arm/internal/vision"
	"github.com/poboll/tictactoe-arm/transport/rest"
)

var ErrAddrNotFound = errors.New("redis address string is empty")

// RunApp - runs the application.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigs
		log.Info("Received signal, shutting down", "signal", sig)
		cancel()
	}()

	redisAddrString := conf.Redis.GetRedisAddr()
	if redisAddrString == "" {
		return ErrAddrNotFound
	}

	redisStorage, err := storage.New(ctx, redisAddrString)
	if err != nil {
		return fmt.Errorf("could not connect to redis storage: %w", err)
	}

	defer func() {
		if err = redisStorage.Close(); err != nil {
			log.Error("could not close redis storage", "error", err)
		}
	}()

	sqliteStorage, err := sqlite.New(conf.SQLiteStoragePath)
	if err != nil {
		return fmt.Errorf("could not open sqlite storage: %w", err)
	}

	defer func() {
		if err = sqliteStorage.Close(); err != nil {
			log.Error("could not close sqlite storage", "error", err)
		}
	}()

	if err = sqliteStorage.Init(ctx); err != nil {
		return fmt.Errorf("could not init sqlite storage: %w", err)
	}

	sessionRepo := repository.NewSessionRepository(redisStorage.Connection)
	archiveRepo := repository.NewArchiveRepository(sqliteStorage)

	armPort, err := serialport.Open(logger, conf.Serial.Port, conf.Serial.BaudRate)
	if err != nil {
		return fmt.Errorf("could not open arm serial port: %w", err)
	}

	defer func() {
		if err = armPort.Close(); err != nil {
			log.Error("could not close serial port", "error", err)
		}
	}()

	feed := vision.NewFeed(logger, conf.Game.SelfColor, conf.Game.CameraQuarterTurns)

	// run vision feed listener
	feedErrCh := make(chan error, 1)
	go func() {
		log.Info("Starting vision feed listener", "port", conf.VisionPort)
		if feedErr := feed.Listen(ctx, conf.VisionPort); feedErr != nil {
			log.Error("Vision feed error", "error", feedErr)
			feedErrCh <- feedErr
		}
	}()

	// run HTTP server
	httpErrCh := make(chan error, 1)
	go func() {
		log.Info("Starting HTTP server", "port", conf.HTTPPort)
		if httpErr := rest.Start(logger, conf.HTTPPort, sessionRepo, archiveRepo); httpErr != nil {
			log.Error("HTTP server error", "error", httpErr)
			httpErrCh <- httpErr
		}
	}()

	controller := session.New(logger, feed, armPort, sessionRepo, archiveRepo, newSessionID(), session.Options{
		Mode:            conf.Game.Mode,
		SelfColor:       conf.Game.SelfColor,
		OpeningCell:     conf.Game.OpeningCell,
		StabilityWindow: conf.Game.StabilityWindow,
		PollInterval:    conf.Game.PollInterval,
		DecisionTimeout: conf.Game.DecisionTimeout,
	})

	// run the game session
	sessionErrCh := make(chan error, 1)
	sessionDoneCh := make(chan struct{}, 1)
	go func() {
		finished, runErr := controller.Run(ctx)
		if runErr != nil {
			log.Error("Session error", "error", runErr)
			sessionErrCh <- runErr
			return
		}

		log.Info("Session complete", "id", finished.ID, "result", finished.Result, "status", finished.Status)
		sessionDoneCh <- struct{}{}
	}()

	select {
	case err = <-httpErrCh:
		return fmt.Errorf("HTTP server error: %w", err)
	case err = <-feedErrCh:
		return fmt.Errorf("vision feed error: %w", err)
	case err = <-sessionErrCh:
		return fmt.Errorf("session error: %w", err)
	case <-sessionDoneCh:
		return nil
	case <-ctx.Done():
		log.Info("Application context canceled, shutting down")
		return nil
	}
}

func newSessionID() string {
	return fmt.Sprintf("%d", time.Now().Unix())
}
