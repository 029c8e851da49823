package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"teamtime-bot/internal/clock"
	"teamtime-bot/internal/config"
	"teamtime-bot/internal/database"
	"teamtime-bot/internal/handler"
	"teamtime-bot/internal/repository"
	"teamtime-bot/internal/seed"
	"teamtime-bot/internal/service"
	"teamtime-bot/internal/transport/http/handlers"
	"teamtime-bot/pkg/telegram"

	"github.com/sirupsen/logrus"
)

func main() {
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	logrus.Info("Initializing config...")
	cfg := config.GetBotConfig()
	logrus.SetLevel(cfg.Level())
	logrus.Info("Config initialized...")

	loc, err := cfg.Location()
	if err != nil {
		logrus.WithError(err).Fatal("Failed to resolve timezone")
	}

	db, err := database.Open(cfg.DatabaseURL)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to connect to database")
	}
	sessionDB, err := database.Open(cfg.SessionDatabaseURL)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to connect to session database")
	}

	store, err := repository.NewStore(db)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to create store")
	}
	sessions, err := repository.NewGormSessionRepository(sessionDB)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to create session repository")
	}

	fixture, err := seed.Load(cfg.SeedFile)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to load seed data")
	}
	res, err := seed.Apply(store, fixture)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to apply seed data")
	}
	logrus.WithFields(logrus.Fields{
		"users":      res.Users,
		"requests":   res.Requests,
		"attendance": res.Attendance,
		"skipped":    res.Skipped,
	}).Info("Seed data applied")

	clk := clock.System{Location: loc}
	userService := service.NewUserService(store, sessions)
	requestService := service.NewRequestService(store, clk)
	attendanceService := service.NewAttendanceService(store, clk)
	viewService := service.NewViewService(store, clk)

	var client *telegram.Client
	if cfg.TelegramToken != "" {
		client, err = telegram.NewClient(cfg.TelegramToken, cfg.BotDebug)
		if err != nil {
			logrus.WithError(err).Fatal("Failed to create Telegram client")
		}
		logrus.Infof("Authorized on account %s", client.Bot.Self.UserName)

		botHandler := handler.NewHandler(client.Bot, userService, requestService, attendanceService, viewService, clk)
		updates := client.Bot.GetUpdatesChan(client.UpdateConfig)
		go botHandler.HandleUpdates(updates)
		logrus.Info("Bot started")
	}

	var server *http.Server
	if cfg.HTTPAddr != "" {
		server = &http.Server{
			Addr:              cfg.HTTPAddr,
			Handler:           handlers.NewRouter(handlers.NewHandler(userService, requestService, attendanceService, viewService)),
			ReadHeaderTimeout: 10 * time.Second,
		}
		go func() {
			logrus.Infof("HTTP API listening on %s", cfg.HTTPAddr)
			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logrus.WithError(err).Fatal("HTTP server failed")
			}
		}()
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	logrus.Info("Press Ctrl+C to stop.")
	<-stop

	if client != nil {
		client.Bot.StopReceivingUpdates()
	}
	if server != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := server.Shutdown(ctx); err != nil {
			logrus.WithError(err).Warn("HTTP server shutdown failed")
		}
		cancel()
	}

	if err := database.Close(sessionDB); err != nil {
		logrus.Warnf("Error closing session database: %v", err)
	}
	if err := database.Close(db); err != nil {
		logrus.Warnf("Error closing database: %v", err)
	}

	logrus.Info("Stopped gracefully")
}
