package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"fintrack/internal/analytics"
	"fintrack/internal/backend"
	"fintrack/internal/cache"
	"fintrack/internal/config"
	"fintrack/internal/console"
	"fintrack/internal/export"
	apphttp "fintrack/internal/http"
	applog "fintrack/internal/log"
	"fintrack/internal/screens"
	"fintrack/internal/services"
	"fintrack/internal/version"
)

const (
	shutdownTimeout    = 30 * time.Second
	cacheSweepInterval = time.Minute
)

// App is the fintrack command tree.
type App struct {
	root   *cobra.Command
	out    io.Writer
	errOut io.Writer

	configFile string
	noColor    bool
}

func NewApp(out, errOut io.Writer) *App {
	app := &App{out: out, errOut: errOut}

	root := &cobra.Command{
		Use:   "fintrack",
		Short: "Personal finance tracker",
		Long: "fintrack shows balances, transactions, budgets and goals from a read-only dataset,\n" +
			"in the terminal or over a JSON API.",
		Version:       version.FormatVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if app.noColor || color.NoColor {
				console.SetColor(false)
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			console.Banner(app.out, version.Short())
			return app.withSession(cmd.Context(), func(s *session) error {
				screen, err := screens.ParseScreen(s.cfg.DefaultScreen)
				if err != nil {
					return err
				}
				return s.render(cmd.Context(), screen)
			})
		},
	}
	root.SetOut(out)
	root.SetErr(errOut)
	root.SetVersionTemplate(`{{printf "fintrack version: %s\n" .Version}}`)

	pf := root.PersistentFlags()
	pf.StringVarP(&app.configFile, "config-file", "C", "", "Path to a TOML, YAML, or JSON configuration file")
	pf.BoolVar(&app.noColor, "no-color", false, "Disable colored output")

	root.AddCommand(
		app.serveCmd(),
		app.screenCmd(screens.DashboardScreen, "Show balance, recent transactions, budgets and goals"),
		app.transactionsCmd(),
		app.screenCmd(screens.AnalyticsScreen, "Show income, expense, savings rate and spending by category"),
		app.screenCmd(screens.AccountsScreen, "List accounts and total assets"),
		app.screenCmd(screens.SettingsScreen, "Show currency, data backend, screens and categories"),
		app.exportCmd(),
	)

	app.root = root
	return app
}

// Run executes the command named by args.
func (app *App) Run(ctx context.Context, args []string) error {
	app.root.SetArgs(args)
	return app.root.ExecuteContext(ctx)
}

// session is everything a command needs once configuration is loaded.
type session struct {
	cfg      *config.Config
	logger   *applog.Logger
	finance  *services.FinanceService
	backend  *backend.BackendResult
	renderer *console.Renderer
}

func (s *session) Close() {
	if err := s.backend.Close(); err != nil {
		s.logger.Warn("Failed to close backend", applog.FieldError, err.Error())
	}
}

func (app *App) open(ctx context.Context) (*session, error) {
	cfg, err := LoadConfig(app.configFile)
	if err != nil {
		return nil, err
	}
	logger, err := SetupLogger(cfg, app.errOut)
	if err != nil {
		return nil, err
	}
	finance, result, err := InitFinance(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	return &session{
		cfg:      cfg,
		logger:   logger.WithComponent(applog.ComponentCLI),
		finance:  finance,
		backend:  result,
		renderer: console.NewRenderer(app.out),
	}, nil
}

// withSession opens a session for fn and closes it afterwards.
func (app *App) withSession(ctx context.Context, fn func(*session) error) error {
	s, err := app.open(ctx)
	if err != nil {
		return err
	}
	defer s.Close()
	return fn(s)
}

// render shows screen; transactions are listed unfiltered.
func (s *session) render(ctx context.Context, screen screens.Screen) error {
	switch screen {
	case screens.DashboardScreen:
		view, err := s.finance.Dashboard(ctx)
		if err != nil {
			return err
		}
		return s.renderer.Dashboard(view)
	case screens.TransactionsScreen:
		view, err := s.finance.Transactions(ctx, analytics.TransactionFilter{Type: analytics.FilterAll})
		if err != nil {
			return err
		}
		return s.renderer.Transactions(view)
	case screens.AnalyticsScreen:
		view, err := s.finance.Analytics(ctx)
		if err != nil {
			return err
		}
		return s.renderer.Analytics(view)
	case screens.AccountsScreen:
		view, err := s.finance.Accounts(ctx)
		if err != nil {
			return err
		}
		return s.renderer.Accounts(view)
	case screens.SettingsScreen:
		return s.renderer.Settings(s.finance.Settings(ctx))
	}
	return fmt.Errorf("unknown screen %q", screen)
}

// screenCmd shows one screen that takes no options.
func (app *App) screenCmd(screen screens.Screen, short string) *cobra.Command {
	return &cobra.Command{
		Use:   string(screen),
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.withSession(cmd.Context(), func(s *session) error {
				return s.render(cmd.Context(), screen)
			})
		},
	}
}

func (app *App) transactionsCmd() *cobra.Command {
	var typ, search string
	cmd := &cobra.Command{
		Use:     "transactions",
		Aliases: []string{"tx"},
		Short:   "List transactions, optionally filtered by type and search text",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			filter, err := transactionFilter(typ, search)
			if err != nil {
				return err
			}
			return app.withSession(cmd.Context(), func(s *session) error {
				view, err := s.finance.Transactions(cmd.Context(), filter)
				if err != nil {
					return err
				}
				return s.renderer.Transactions(view)
			})
		},
	}
	addFilterFlags(cmd, &typ, &search)
	return cmd
}

func (app *App) exportCmd() *cobra.Command {
	var (
		formats     []string
		dir, name   string
		typ, search string
	)
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write a report as CSV, JSON and/or PDF",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			parsed := make([]export.Format, 0, len(formats))
			for _, f := range formats {
				format, err := export.ParseFormat(f)
				if err != nil {
					return err
				}
				parsed = append(parsed, format)
			}
			filter, err := transactionFilter(typ, search)
			if err != nil {
				return err
			}

			return app.withSession(cmd.Context(), func(s *session) error {
				report, err := s.finance.Report(cmd.Context(), filter)
				if err != nil {
					return err
				}
				exportLog := applog.NewStructuredLogger(s.logger)
				for _, format := range parsed {
					path, err := export.ToFile(report, format, dir, name)
					if err != nil {
						return err
					}
					exportLog.LogExportWritten(cmd.Context(), string(format), path)
					s.renderer.Success("%s report saved to: %s", format, path)
				}
				return nil
			})
		},
	}
	flags := cmd.Flags()
	flags.StringSliceVarP(&formats, "format", "f", []string{"csv"}, "Report formats: csv, json, pdf")
	flags.StringVarP(&dir, "dir", "d", "", "Directory to save the report files (default: current directory)")
	flags.StringVarP(&name, "name", "n", "fintrack", "Base name for the report files")
	addFilterFlags(cmd, &typ, &search)
	return cmd
}

func (app *App) serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the screens as a JSON API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			console.Banner(app.out, version.Short())
			return app.withSession(cmd.Context(), func(s *session) error {
				return serve(cmd.Context(), s)
			})
		},
	}
}

func serve(ctx context.Context, s *session) error {
	caches := cache.NewManager(s.logger.WithComponent(applog.ComponentCache).Slog())
	caches.Register(s.finance.ViewCache())
	caches.StartCleanup(cacheSweepInterval)

	srv := apphttp.NewServer(":"+s.cfg.Port, s.finance, apphttp.Options{
		Logger:         s.logger,
		RateLimit:      s.cfg.RateLimit,
		TrustedProxies: s.cfg.TrustedProxies,
		Caches:         caches,
	})

	// Load the dataset before accepting requests.
	if err := s.finance.Ready(ctx); err != nil {
		_ = srv.Shutdown(context.Background())
		return fmt.Errorf("load dataset: %w", err)
	}

	s.logger.Info("Starting fintrack server",
		"port", s.cfg.Port,
		applog.FieldBackend, s.backend.Type.String(),
		applog.FieldOperation, applog.OpStartup)

	run := func() error {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	}
	if err := RunUntilSignal(ctx, s.logger, shutdownTimeout, run, srv.Shutdown); err != nil {
		return err
	}
	s.logger.Info("Server stopped gracefully")
	return nil
}

func addFilterFlags(cmd *cobra.Command, typ, search *string) {
	cmd.Flags().StringVarP(typ, "type", "t", "all", "Transaction type: all, income, expense, transfer")
	cmd.Flags().StringVarP(search, "search", "s", "", "Only transactions whose description or category contains this text")
}

func transactionFilter(typ, search string) (analytics.TransactionFilter, error) {
	t, err := analytics.ParseTypeFilter(typ)
	if err != nil {
		return analytics.TransactionFilter{}, err
	}
	return analytics.TransactionFilter{Type: t, Query: search}, nil
}
