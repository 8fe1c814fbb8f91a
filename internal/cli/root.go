package cli

import (
	"database/sql"
	"fmt"
	"io"
	"time"

	"github.com/alexanderramin/cocoon/internal/config"
	"github.com/alexanderramin/cocoon/internal/db"
	"github.com/alexanderramin/cocoon/internal/logging"
	"github.com/alexanderramin/cocoon/internal/repository"
	"github.com/alexanderramin/cocoon/internal/service"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Items    service.ItemService
	Comments service.CommentService
	Audit    service.AuditService
	Reports  service.ReportService
	Org      service.OrgService

	Config *config.Config
	Logger *zap.Logger

	// Bootstrap wires the services once the logger exists. It is skipped
	// when the services are already set.
	Bootstrap func(logger *zap.Logger) error

	// IsInteractive reports whether stdin is a terminal; nil means never.
	IsInteractive func() bool
	// Now overrides the clock for tests.
	Now func() time.Time
}

// Wire builds every service over conn. Use-case events are logged when the
// config enables them.
func Wire(app *App, conn *sql.DB, logger *zap.Logger) {
	var observers []service.UseCaseObserver
	if app.Config != nil && app.Config.LogUseCases {
		observers = append(observers, service.NewLogUseCaseObserver(logger))
	}

	itemRepo := repository.NewSQLiteItemRepo(conn)
	auditRepo := repository.NewSQLiteAuditLogRepo(conn)

	var seedSource service.SeedSource
	if app.Config != nil && app.Config.OrgSeed != "" {
		seedSource = service.SeedFromFile(app.Config.OrgSeed)
	}

	app.Items = service.NewItemService(itemRepo, auditRepo, observers...)
	app.Comments = service.NewCommentService(repository.NewSQLiteCommentRepo(conn), observers...)
	app.Audit = service.NewAuditService(auditRepo)
	app.Reports = service.NewReportService(itemRepo, observers...)
	app.Org = service.NewOrgService(conn, db.NewSQLiteUnitOfWork(conn), seedSource, observers...)
}

func (a *App) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now()
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

func (a *App) userID() string {
	if a.Config == nil || a.Config.UserID == "" {
		return "user1"
	}
	return a.Config.UserID
}

func (a *App) locale() string {
	if a.Config == nil {
		return ""
	}
	return a.Config.Locale
}

// setup builds the logger and, when needed, the services.
func (a *App) setup(stderr io.Writer) error {
	if a.Logger == nil {
		level := "warn"
		if a.Config != nil && a.Config.LogLevel != "" {
			level = a.Config.LogLevel
		}
		logger, err := logging.New(level, stderr)
		if err != nil {
			return fmt.Errorf("building logger: %w", err)
		}
		a.Logger = logger
	}
	if a.Items == nil && a.Bootstrap != nil {
		if err := a.Bootstrap(a.Logger); err != nil {
			return err
		}
	}
	return nil
}

// NewRootCmd creates the top-level "cocoon" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "cocoon",
		Short:         "Innovation pipeline tracker, weekly KPIs and org chart",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.setup(cmd.ErrOrStderr())
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if app.Logger != nil {
				_ = app.Logger.Sync()
			}
		},
	}

	root.AddCommand(
		newItemCmd(app),
		newCommentCmd(app),
		newAuditCmd(app),
		newBoardCmd(app),
		newKPICmd(app),
		newReportCmd(app),
		newOrgCmd(app),
	)

	return root
}
