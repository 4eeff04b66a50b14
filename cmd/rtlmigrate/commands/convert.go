package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/rtlmigrate/cmd/rtlmigrate/opts"
	"github.com/walteh/rtlmigrate/pkg/log"
	"github.com/walteh/rtlmigrate/pkg/operation"
	"gitlab.com/tozd/go/errors"
)

type convertFlags struct {
	dryRun      bool
	diff        bool
	verbose     bool
	output      string
	concurrency int
}

// NewConvertCmd creates a new convert command
func NewConvertCmd(rootOpts *opts.RootOpts) *cobra.Command {
	flags := &convertFlags{}

	cmd := &cobra.Command{
		Use:   "convert [paths...]",
		Short: "Convert enzyme tests to React Testing Library",
		Long: `Convert rewrites enzyme test files to React Testing Library.
It will:
1. Find test files under each path (files are taken as given)
2. Replace enzyme imports and add the testing-library header
3. Rewrite wrapper calls such as find, simulate and text
4. Write the result in place, or into --output, unless --dry-run is set

Paths default to the current directory.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(cmd.Context(), cmd.OutOrStdout(), rootOpts, flags, args)
		},
	}

	cmd.Flags().BoolVarP(&flags.dryRun, "dry-run", "n", false, "convert without writing files")
	cmd.Flags().BoolVar(&flags.diff, "diff", false, "print a unified diff for each changed file")
	cmd.Flags().BoolVarP(&flags.verbose, "verbose", "v", false, "print every conversion warning")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "write results under this directory instead of in place")
	cmd.Flags().IntVarP(&flags.concurrency, "concurrency", "j", 0, "files converted at once (default from config)")

	return cmd
}

func runConvert(ctx context.Context, out io.Writer, rootOpts *opts.RootOpts, flags *convertFlags, args []string) error {
	ctx = zerolog.Ctx(ctx).With().Str("command", "convert").Logger().WithContext(ctx)
	cfg := rootOpts.Config
	ulog := rootOpts.Logger

	if len(args) == 0 {
		args = []string{"."}
	}

	files, err := operation.DiscoverAll(ctx, args, cfg.Include, cfg.Exclude)
	if err != nil {
		return errors.Errorf("discovering files: %w", err)
	}

	conv, err := cfg.NewConverter()
	if err != nil {
		return errors.Errorf("creating converter: %w", err)
	}

	concurrency := cfg.Concurrency
	if flags.concurrency > 0 {
		concurrency = flags.concurrency
	}

	runner, err := operation.NewRunner(operation.Options{
		Converter:   conv,
		Root:        outputRoot(args),
		OutputDir:   flags.output,
		DryRun:      flags.dryRun,
		Diff:        flags.diff,
		Concurrency: concurrency,
	})
	if err != nil {
		return errors.Errorf("creating runner: %w", err)
	}

	if len(files) == 0 {
		ulog.Warningf("no test files found under %s", strings.Join(args, ", "))
		return nil
	}

	ulog.SetVerbose(flags.verbose)
	ulog.StartRun(ctx, log.RunOperation{
		Root:   strings.Join(args, ", "),
		Files:  len(files),
		DryRun: flags.dryRun,
	})

	reports, runErr := runner.Run(ctx, files)
	for _, r := range reports {
		// skipped after cancellation
		if r.Path == "" {
			continue
		}
		ulog.LogFileOperation(ctx, log.FileOperation{
			Path:     r.Path,
			Status:   r.Status(),
			Changes:  r.Changes(),
			Warnings: r.Warnings(),
			Err:      r.Err,
		})
		if r.Diff != "" {
			fmt.Fprint(out, r.Diff)
		}
	}

	summary := ulog.EndRun(ctx)
	if runErr != nil {
		return errors.Errorf("running conversion: %w", runErr)
	}
	if summary.HasFailures() {
		return errors.Errorf("%d of %d files failed", summary.Failed, summary.Files)
	}
	return nil
}

// outputRoot is the directory --output paths are made relative to: the
// deepest directory containing every argument. File arguments count as
// their parent directory.
func outputRoot(args []string) string {
	var common []string
	for i, arg := range args {
		abs, err := filepath.Abs(arg)
		if err != nil {
			return "."
		}
		if info, err := os.Stat(abs); err != nil || !info.IsDir() {
			abs = filepath.Dir(abs)
		}

		parts := strings.Split(abs, string(filepath.Separator))
		if i == 0 {
			common = parts
			continue
		}
		n := 0
		for n < len(common) && n < len(parts) && common[n] == parts[n] {
			n++
		}
		common = common[:n]
	}

	if len(common) == 0 {
		return "."
	}
	root := strings.Join(common, string(filepath.Separator))
	if root == "" || root == filepath.VolumeName(root) {
		root += string(filepath.Separator)
	}
	return root
}
