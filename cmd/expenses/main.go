package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"expenses/internal/backend"
	"expenses/internal/cli"
	"expenses/internal/config"
	applog "expenses/internal/log"
	"expenses/internal/services"
)

var version = "dev"

// app holds what the commands share once the root pre-run has loaded the
// configuration and opened the store.
type app struct {
	logOut  io.Writer
	cfg     *config.Config
	base    *slog.Logger
	logger  *slog.Logger
	backend *backend.BackendResult
	svc     *services.ExpenseService
}

type rootFlags struct {
	backend   string
	file      string
	logLevel  string
	logFormat string
}

func newRootCmd(a *app) *cobra.Command {
	var flags rootFlags

	root := &cobra.Command{
		Use:   "expenses",
		Short: "Personal expense tracker",
		Long: `expenses records personal expenses in a CSV file and reports on them:
category totals, monthly summaries, the highest expense and an exported
summary report.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.open(cmd, flags)
		},
	}

	root.PersistentFlags().StringVar(&flags.backend, "backend", "", "storage backend ("+strings.Join(backend.GetBackendTypeStrings(), ", ")+")")
	root.PersistentFlags().StringVar(&flags.file, "file", "", "expense file for the csv backend")
	root.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "log level (debug, info, warn, error)")
	root.PersistentFlags().StringVar(&flags.logFormat, "log-format", "", "log format (text, json)")

	root.AddCommand(initCmd(a))
	root.AddCommand(addCmd(a))
	root.AddCommand(listCmd(a))
	root.AddCommand(summaryCmd(a))
	root.AddCommand(monthlyCmd(a))
	root.AddCommand(highestCmd(a))
	root.AddCommand(exportCmd(a))
	root.AddCommand(categoriesCmd(a))
	root.AddCommand(workerCmd(a))

	return root
}

func (a *app) open(cmd *cobra.Command, flags rootFlags) error {
	cli.LoadEnvFile()

	cfg, err := cli.LoadAndValidateConfig(func(c *config.Config) {
		if flags.backend != "" {
			c.Backend = flags.backend
		}
		if flags.file != "" {
			c.CSVPath = flags.file
		}
		if flags.logLevel != "" {
			c.LogLevel = flags.logLevel
		}
		if flags.logFormat != "" {
			c.LogFormat = flags.logFormat
		}
	})
	if err != nil {
		return err
	}
	a.cfg = cfg

	logger, err := cli.SetupLogger(cfg, a.logOut)
	if err != nil {
		return fmt.Errorf("failed to setup logging: %w", err)
	}
	a.base = logger
	a.logger = applog.WithComponent(logger, applog.ComponentApp)

	ctx := cmd.Context()
	a.backend, err = cli.OpenBackend(ctx, cfg, logger)
	if err != nil {
		return err
	}

	a.svc = services.NewExpenseService(a.backend.Store, nil, logger)

	a.logger.Debug("Store opened", applog.FieldBackend, cfg.Backend)
	return a.svc.Init(ctx)
}

func (a *app) close() {
	if a.svc != nil {
		if err := a.svc.Close(); err != nil {
			a.logger.Warn("Failed to close expense service", applog.FieldError, err)
		}
	}
	if err := a.backend.Close(); err != nil {
		a.logger.Warn("Failed to close store", applog.FieldError, err)
	}
}

// run executes the command line and releases whatever the commands opened.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	a := &app{logOut: stderr}
	root := newRootCmd(a)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.ExecuteContext(ctx)
	a.close()
	return err
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()

	if err != nil {
		fmt.Fprintln(os.Stderr, cli.ErrorStyle.Render("Error: "+err.Error()))
		os.Exit(1)
	}
}
