package main

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/rtlmigrate/cmd/rtlmigrate/commands"
	"github.com/walteh/rtlmigrate/cmd/rtlmigrate/opts"
	"github.com/walteh/rtlmigrate/pkg/config"
	"github.com/walteh/rtlmigrate/pkg/log"
	"gitlab.com/tozd/go/errors"
)

var (
	// Flags
	configFile string
	debug      bool
)

// newRootCmd builds the command tree. Shared options are filled in before any
// subcommand runs.
func newRootCmd() *cobra.Command {
	rootOpts := &opts.RootOpts{}

	cmd := &cobra.Command{
		Use:   "rtlmigrate",
		Short: "Convert enzyme tests to React Testing Library",
		Long: `rtlmigrate rewrites enzyme based tests into React Testing Library tests.
Conversion is lexical and best effort: review every converted file.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			ctx := setupLogging(cmd.Context())

			if err := loadRootOpts(ctx, rootOpts); err != nil {
				return err
			}

			cmd.SetContext(log.NewContext(ctx, rootOpts.Logger))
			return nil
		},
	}

	addRootFlags(cmd)

	cmd.AddCommand(
		commands.NewConvertCmd(rootOpts),
		commands.NewRulesCmd(rootOpts),
		newVersionCmd(),
	)

	return cmd
}

// loadRootOpts fills rootOpts with the logger and configuration
func loadRootOpts(ctx context.Context, rootOpts *opts.RootOpts) error {
	// console output already covers what the structured log would say at info
	level := zerolog.WarnLevel
	if debug {
		level = zerolog.DebugLevel
	}
	rootOpts.Logger = log.New(os.Stdout, level)

	cwd, err := os.Getwd()
	if err != nil {
		return errors.Errorf("getting working directory: %w", err)
	}

	cfg, err := config.LoadOrDefault(ctx, configFile, cwd)
	if err != nil {
		return errors.Errorf("loading config: %w", err)
	}
	rootOpts.Config = cfg
	rootOpts.ConfigPath = configFile

	zerolog.Ctx(ctx).Debug().Str("config", cfg.String()).Msg("configuration loaded")
	return nil
}

// addRootFlags adds shared flags to the root command
func addRootFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "config file path (default: .rtlmigrate.{yaml,yml,json,hcl} in the working directory)")
	cmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug logging")
}

// setupLogging configures zerolog based on flags and attaches it to ctx
func setupLogging(ctx context.Context) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}
	logger := zerolog.New(zerolog.NewConsoleWriter(func(w *zerolog.ConsoleWriter) {
		w.Out = os.Stderr
	})).Level(level).With().Timestamp().Logger()
	return logger.WithContext(ctx)
}

// newVersionCmd prints build information. It skips config loading so it
// works in any directory.
func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprint(cmd.OutOrStdout(), FormatVersion())
			return err
		},
	}
}
