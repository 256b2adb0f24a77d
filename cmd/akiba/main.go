package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/Veraticus/akihabara-market/internal/cli"
	"github.com/Veraticus/akihabara-market/internal/common"
	"github.com/Veraticus/akihabara-market/internal/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var version = "dev"

// interactiveAnnotation marks commands that own the terminal. Their logs
// go to the rotating log file instead of stderr.
const interactiveAnnotation = "interactive"

// app carries the state shared by every command of one invocation.
type app struct {
	v         *viper.Viper
	logCloser io.Closer
	cfgFile   string
	settings  config.Settings
}

func newRootCmd() *cobra.Command {
	a := &app{v: viper.New()}

	rootCmd := &cobra.Command{
		Use:   "akiba",
		Short: "🏮 Akihabara Market inventory and customer manager",
		Long: `akiba keeps the product catalogue and the customer register of
Akihabara Market in a local SQLite database.

Run without a subcommand to open the console menu, or use "akiba ui" for
the form application. An optional language model drafts product
descriptions and suggests categories.`,
		SilenceUsage:       true,
		SilenceErrors:      true,
		PersistentPreRunE:  a.initConfig,
		PersistentPostRunE: a.closeLogs,
		Annotations:        map[string]string{interactiveAnnotation: "true"},
		RunE:               a.runMenu,
	}

	// Global flags
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.cfgFile, "config", "", "config file (default: $HOME/.config/akiba/config.yaml)")
	flags.String("log-level", "info", "log level (debug, info, warn, error)")
	flags.String("log-format", "console", "log format (console, json)")
	flags.String("db", "", "path to the SQLite database")
	flags.String("driver", "", "SQLite driver (sqlite3, sqlite)")

	// Bind flags to viper
	_ = a.v.BindPFlag("logging.level", flags.Lookup("log-level"))
	_ = a.v.BindPFlag("logging.format", flags.Lookup("log-format"))
	_ = a.v.BindPFlag("database.path", flags.Lookup("db"))
	_ = a.v.BindPFlag("database.driver", flags.Lookup("driver"))

	// Add commands
	rootCmd.AddCommand(a.menuCmd())
	rootCmd.AddCommand(a.uiCmd())
	rootCmd.AddCommand(a.productsCmd())
	rootCmd.AddCommand(a.customersCmd())
	rootCmd.AddCommand(a.aiCmd())
	rootCmd.AddCommand(a.migrateCmd())
	rootCmd.AddCommand(a.seedCmd())
	rootCmd.AddCommand(versionCmd())

	return rootCmd
}

func main() {
	// Set up signal handling
	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		slog.Info("Received interrupt signal, shutting down gracefully...")
		cancel()
	}()

	err := newRootCmd().ExecuteContext(ctx)
	cancel()

	if err != nil {
		fmt.Fprintln(os.Stderr, cli.FormatError(cli.ErrorMessage(err)))
		os.Exit(1)
	}
}

func (a *app) initConfig(cmd *cobra.Command, _ []string) error {
	config.SetDefaults(a.v)
	if err := config.Configure(a.v, a.cfgFile); err != nil {
		return err
	}

	settings, err := config.Load(a.v)
	if err != nil {
		return err
	}
	a.settings = settings

	opts := common.LogOptions{
		Level:  settings.Logging.Level,
		Format: settings.Logging.Format,
	}
	if cmd.Annotations[interactiveAnnotation] == "true" {
		opts.File = settings.Logging.File
	}

	_, closer, err := common.SetupLogger(opts)
	if err != nil {
		return fmt.Errorf("failed to setup logging: %w", err)
	}
	a.logCloser = closer

	if used := a.v.ConfigFileUsed(); used != "" {
		slog.Debug("loaded config", "file", used)
	}
	return nil
}

func (a *app) closeLogs(_ *cobra.Command, _ []string) error {
	if a.logCloser == nil {
		return nil
	}
	return a.logCloser.Close()
}

// versionCmd skips config loading so a broken config file cannot hide the
// version.
func versionCmd() *cobra.Command {
	noop := func(*cobra.Command, []string) error { return nil }
	return &cobra.Command{
		Use:                "version",
		Short:              "Print version information",
		PersistentPreRunE:  noop,
		PersistentPostRunE: noop,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "akiba %s\n", version)
		},
	}
}
