package main

import (
	"database/sql"
	"fmt"
	"os"

	"github.com/alexanderramin/cocoon/internal/cli"
	"github.com/alexanderramin/cocoon/internal/config"
	"github.com/alexanderramin/cocoon/internal/db"
	"github.com/mattn/go-isatty"
	"go.uber.org/zap"
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

	app := &cli.App{Config: cfg}

	// Detect interactive terminal for prompts and markdown rendering.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	// The database is opened lazily so `cocoon --help` never touches disk.
	var database *sql.DB
	app.Bootstrap = func(logger *zap.Logger) error {
		conn, err := db.OpenDB(cfg.DBPath)
		if err != nil {
			return fmt.Errorf("opening database: %w", err)
		}
		database = conn
		logger.Debug("database opened", zap.String("path", cfg.DBPath))
		cli.Wire(app, conn, logger)
		return nil
	}
	defer func() {
		if database != nil {
			database.Close()
		}
	}()

	return cli.NewRootCmd(app).Execute()
}
