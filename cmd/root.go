// =============================================================================
// Order Code Filter - Root Command
// =============================================================================
//
// This file defines the root command for the Cobra CLI. Every subcommand
// shares the configuration and logger set up here.
//
// COBRA CLI STRUCTURE:
//   rootCmd (orderfilter)
//   ├── codesCmd   (orderfilter codes <file>)
//   ├── ordersCmd  (orderfilter orders <file>)
//   ├── filterCmd  (orderfilter filter <orders-file> ...)
//   └── versionCmd (orderfilter version)
//
// CONFIGURATION:
//   Before any subcommand runs, the root command:
//   1. Loads the YAML configuration (--config, default config.yaml)
//   2. Sets up logging (--verbose forces debug level)
//   3. Builds the loader options shared by every command
//
// =============================================================================

package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/ginjaninja78/order-code-filter/internal/config"
	"github.com/ginjaninja78/order-code-filter/internal/loader"
	"github.com/ginjaninja78/order-code-filter/internal/logging"
	"github.com/ginjaninja78/order-code-filter/internal/session"
)

// =============================================================================
// GLOBAL VARIABLES
// =============================================================================

// cfgFile holds the path to the configuration file.
var cfgFile string

// verbose enables debug logging when set to true.
var verbose bool

// appConfig is the configuration loaded in the persistent pre-run.
var appConfig = config.Default()

// logger is the application logger, set up in the persistent pre-run.
var logger = slog.Default()

// closeLog releases the log file, if any.
var closeLog = func() error { return nil }

// =============================================================================
// ROOT COMMAND DEFINITION
// =============================================================================

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "orderfilter",
	Short: "Order Code Filter - Filter HPE order exports by product line code",
	Long: `Order Code Filter loads an orders export and narrows it to the
rows whose Product Line Code is one of a chosen set of codes. Codes are taken
from the "code" column of a codes file, or given on the command line.

Example Usage:
  orderfilter codes codes.xlsx                          # Show a codes file
  orderfilter orders orders.xlsx                        # Show the order columns
  orderfilter filter orders.xlsx --codes codes.xlsx --rows 0,2
  orderfilter filter orders.xlsx --code 30 --code 3X --out ./exports/`,

	SilenceUsage:  true,
	SilenceErrors: true,

	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initConfig(cmd)
	},

	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return closeLog()
	},

	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// =============================================================================
// EXECUTE FUNCTION
// =============================================================================

// Execute runs the root command. This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// =============================================================================
// INITIALIZATION
// =============================================================================

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		"config.yaml",
		"Path to the configuration file",
	)

	rootCmd.PersistentFlags().BoolVarP(
		&verbose,
		"verbose",
		"v",
		false,
		"Enable verbose output for debugging",
	)
}

// initConfig loads the configuration and sets up logging. The default
// config path may be absent; an explicit --config must exist.
func initConfig(cmd *cobra.Command) error {
	explicit := cmd.Flags().Changed("config")

	cfg, err := config.Load(cfgFile, !explicit)
	if err != nil {
		return err
	}
	if verbose {
		cfg.LogLevel = "debug"
	}

	l, closeFn, err := logging.Setup(logging.Settings{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
		File:   cfg.LogFile,
	})
	if err != nil {
		return err
	}

	appConfig = cfg
	logger = l
	closeLog = closeFn
	logger.Debug("configuration loaded", slog.String("path", cfgFile), slog.Bool("explicit", explicit))
	return nil
}

// loaderOptions builds the file reading options from the configuration.
func loaderOptions() (loader.Options, error) {
	opts := loader.DefaultOptions()

	delim, err := appConfig.Delimiter()
	if err != nil {
		return opts, err
	}
	opts.Delimiter = delim
	opts.MissingValues = appConfig.MissingValues
	return opts, nil
}

// newSession creates a session reading files with the configured options.
func newSession() (*session.Session, error) {
	opts, err := loaderOptions()
	if err != nil {
		return nil, err
	}
	return session.New(opts, logger), nil
}

// userError converts err to the message a user is shown for it.
func userError(err error) error {
	if err == nil {
		return nil
	}
	msg, _ := session.Message(err)
	return errors.New(msg)
}
