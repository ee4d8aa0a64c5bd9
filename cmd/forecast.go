package main

import (
	"context"
	"fmt"
	stdslog "log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cartabinaria/auth/pkg/httputil"
	"github.com/cartabinaria/forecast/api"
	"github.com/cartabinaria/forecast/auth"
	_ "github.com/cartabinaria/forecast/docs"
	"github.com/cartabinaria/forecast/util"
	"golang.org/x/exp/slog"
)

// @title			Forecast API
// @version		1.0
// @description	Backend API of a prediction platform: accounts, predictions, ballots and tallies, comments, reasons and their sources
// @contact.name	cartabinaria
// @license.name	AGPL-3.0
// @license.url	https://www.gnu.org/licenses/agpl-3.0.en.html
// @BasePath		/
func main() {
	if len(os.Args) > 2 {
		fmt.Println("Usage: forecast [config-file]")
		os.Exit(1)
	}
	configPath := ""
	if len(os.Args) == 2 {
		configPath = os.Args[1]
	}

	config, err := loadConfig(configPath, os.Getenv)
	if err != nil {
		slog.Error("failed to load config", "err", err)
		os.Exit(1)
	}
	setupLogger(config)

	err = util.ConnectDb(config.DbURI)
	if err != nil {
		slog.Error("failed to connect to db", "err", err)
		os.Exit(1)
	}
	if err = util.Migrate(util.GetDb()); err != nil {
		slog.Error("AutoMigrate failed", "err", err)
		os.Exit(1)
	}

	tokens := auth.NewTokenService(config.JWTSecret, time.Duration(config.TokenTTL))
	mux := api.NewMux(tokens)
	handler := util.NewLoggerMiddleware(httputil.NewCorsMiddleware(config.ClientURLs, true, mux)(mux))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// start resolution watcher
	go util.ResolutionWatcher(ctx, time.Duration(config.ResolutionInterval))

	server := &http.Server{
		Addr:              config.Listen,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("failed to shut down", "err", err)
		}
	}()

	slog.Info("listening at", "address", config.Listen, "environment", config.Environment)
	err = server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		slog.Error("failed to serve", "err", err)
		os.Exit(1)
	}
}

// setupLogger installs the same handler on both slog packages: the packages
// of the service log through log/slog, the entrypoint through x/exp/slog.
func setupLogger(config Config) {
	level := stdslog.LevelDebug
	if config.Production() {
		level = stdslog.LevelInfo
	}

	if config.Production() {
		stdslog.SetDefault(stdslog.New(stdslog.NewJSONHandler(os.Stdout, &stdslog.HandlerOptions{Level: level})))
		slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.Level(level)})))
	} else {
		stdslog.SetDefault(stdslog.New(stdslog.NewTextHandler(os.Stdout, &stdslog.HandlerOptions{Level: level})))
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.Level(level)})))
	}
}
