package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/danielhkuo/topic-vote/auth"
	"github.com/danielhkuo/topic-vote/chat"
	"github.com/danielhkuo/topic-vote/cliparse"
	"github.com/danielhkuo/topic-vote/db"
	"github.com/danielhkuo/topic-vote/middleware"
	"github.com/danielhkuo/topic-vote/notify"
	"github.com/danielhkuo/topic-vote/router"
	"github.com/danielhkuo/topic-vote/session"
	"github.com/danielhkuo/topic-vote/topics"
)

const (
	sweepInterval  = 10 * time.Minute
	dialogueMaxAge = time.Hour
)

func main() {
	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	sched, err := notify.ParseSchedule(cfg.NotifyDay, cfg.NotifyTime, time.Local)
	if err != nil {
		slog.Error("invalid reminder schedule", "error", err)
		os.Exit(1)
	}

	// signal.NotifyContext cancels on Ctrl-C or SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Connect to the database
	dbConn, dialect, err := db.Open(ctx, cfg.DatabaseType, cfg.DatabaseURL)
	if err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	defer dbConn.Close()

	// Create schema (tables)
	if err := db.CreateSchema(dbConn, dialect); err != nil {
		slog.Error("schema creation failed", "error", err)
		os.Exit(1)
	}
	slog.Info("Database schema ready", "type", dialect.Name)

	svc := topics.NewService(dbConn, dialect)
	guard := auth.NewGuard(cfg.AdminIDs, cfg.BannedIDs)
	coord := session.NewCoordinator(svc, guard)

	// Chat transport
	bot, err := chat.NewBot(cfg.BotToken, cfg.GuildID, coord)
	if err != nil {
		slog.Error("bot setup failed", "error", err)
		os.Exit(1)
	}
	if err := bot.Start(); err != nil {
		slog.Error("bot connection failed", "error", err)
		os.Exit(1)
	}
	defer bot.Stop()

	// Weekly reminders
	notifier := notify.NewNotifier(svc, bot, session.ReminderText())
	go func() {
		if err := notifier.Run(ctx, sched); err != nil && !errors.Is(err, context.Canceled) {
			slog.Error("reminder loop stopped", "error", err)
		}
	}()

	// Abandoned dialogues
	go func() {
		ticker := time.NewTicker(sweepInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				coord.Sweep(dialogueMaxAge)
			}
		}
	}()

	// Read-only HTTP API
	server := http.Server{
		Handler:           middleware.CORS(router.NewRouter(svc)),
		Addr:              ":" + strconv.Itoa(cfg.Port),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		server.Shutdown(shutdownCtx)
	}()

	slog.Info("Listening", "port", cfg.Port, "reminders", sched.String())
	err = server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		slog.Error("Server closed", "error", err)
	} else {
		slog.Info("Server closed")
	}
}
