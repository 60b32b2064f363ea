package main

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/zeabis/zeabis/internal/auth"
	"github.com/zeabis/zeabis/internal/cli"
	"github.com/zeabis/zeabis/internal/config"
	"github.com/zeabis/zeabis/internal/db"
	"github.com/zeabis/zeabis/internal/service"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger := cfg.Logger()

	// Open database
	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// Wire services
	var observers []service.UseCaseObserver
	if cfg.LogUseCases {
		observers = append(observers, service.NewSlogUseCaseObserver(logger))
	}
	services := service.NewServices(database, auth.NewIssuer(cfg.JWTSecret, cfg.TokenTTL), observers...)

	app := &cli.App{
		Services: services,
		Config:   cfg,
		Logger:   logger,
	}

	// Detect interactive terminal; forms and the tracker view need one.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	return cli.NewRootCmd(app).Execute()
}
