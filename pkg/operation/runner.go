// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package operation

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
	"github.com/rs/zerolog"
	"github.com/walteh/rtlmigrate/pkg/convert"
	"github.com/walteh/rtlmigrate/pkg/status"
	"gitlab.com/tozd/go/errors"
	"golang.org/x/sync/errgroup"
)

// 🔧 Options configures a Runner
type Options struct {
	Converter   *convert.Converter // Required; shared by all workers
	Root        string             // Base for paths under OutputDir, defaults to "."
	OutputDir   string             // Mirror results here instead of writing in place
	DryRun      bool               // Convert without writing
	Diff        bool               // Attach a unified diff to each changed report
	Concurrency int                // Files converted at once, defaults to 1
}

// 📄 FileReport is the outcome for one file
type FileReport struct {
	Path   string          // Source path
	Output string          // Where the result was written, empty when nothing was
	Result *convert.Result // Nil when the file could not be read
	Diff   string          // Unified diff, when requested and changed
	Err    error           // Read or write failure
}

// Status classifies the report
func (r FileReport) Status() status.FileStatus {
	switch {
	case r.Err != nil:
		return status.StatusFailed
	case r.Result == nil || !r.Result.Changed():
		return status.StatusUnchanged
	case r.Output == "":
		return status.StatusPending
	default:
		return status.StatusConverted
	}
}

// Changes returns the number of substitutions made
func (r FileReport) Changes() int {
	if r.Result == nil {
		return 0
	}
	return len(r.Result.Changes)
}

// Warnings returns the engine warnings for the file
func (r FileReport) Warnings() []string {
	if r.Result == nil {
		return nil
	}
	return r.Result.Warnings
}

// 🏃 Runner converts files
type Runner struct {
	opts Options
}

// 🏗️ NewRunner creates a new runner
func NewRunner(opts Options) (*Runner, error) {
	if opts.Converter == nil {
		return nil, errors.Errorf("converter is required")
	}
	if opts.DryRun && opts.OutputDir != "" {
		return nil, errors.Errorf("dry run and output directory are mutually exclusive")
	}
	if opts.Root == "" {
		opts.Root = "."
	}
	if opts.Concurrency < 1 {
		opts.Concurrency = 1
	}
	return &Runner{opts: opts}, nil
}

// 🏃 Run converts every path. Reports are returned in the order of paths.
// A path whose destination was already claimed by an earlier path fails
// without being converted. The error is non-nil only when ctx is cancelled.
func (r *Runner) Run(ctx context.Context, paths []string) ([]FileReport, error) {
	reports := make([]FileReport, len(paths))

	claimed := make(map[string]string, len(paths))
	skip := make([]bool, len(paths))
	for i, path := range paths {
		dest := r.destination(path)
		if first, ok := claimed[dest]; ok {
			reports[i] = FileReport{
				Path: path,
				Err:  errors.Errorf("destination %s is already used by %s", dest, first),
			}
			skip[i] = true
			continue
		}
		claimed[dest] = path
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.opts.Concurrency)

	for i, path := range paths {
		if skip[i] {
			continue
		}
		i, path := i, path
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			reports[i] = r.ConvertFile(gctx, path)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return reports, errors.Errorf("converting files: %w", err)
	}
	return reports, nil
}

// 📝 ConvertFile converts one file and writes the result according to the options
func (r *Runner) ConvertFile(ctx context.Context, path string) FileReport {
	logger := zerolog.Ctx(ctx).With().Str("path", path).Logger()
	report := FileReport{Path: path}

	info, err := os.Stat(path)
	if err != nil {
		report.Err = errors.Errorf("checking file: %w", err)
		return report
	}

	data, err := os.ReadFile(path)
	if err != nil {
		report.Err = errors.Errorf("reading file: %w", err)
		return report
	}

	original := string(data)
	report.Result = r.opts.Converter.Convert(logger.WithContext(ctx), original)
	logger.Debug().Int("changes", len(report.Result.Changes)).Msg("converted")

	if r.opts.Diff && report.Result.Changed() {
		diff, err := UnifiedDiff(path, original, report.Result.Code)
		if err != nil {
			logger.Warn().Err(err).Msg("building diff")
		}
		report.Diff = diff
	}

	if r.opts.DryRun {
		return report
	}

	target, write := r.target(path, report.Result)
	if !write {
		return report
	}

	if err := status.WriteFileAtomic(target, []byte(report.Result.Code), info.Mode().Perm()); err != nil {
		report.Err = errors.Errorf("writing %s: %w", target, err)
		return report
	}
	report.Output = target
	return report
}

// target decides where a result goes. In place, only changed files are
// written; with an output directory every file is mirrored.
func (r *Runner) target(path string, res *convert.Result) (string, bool) {
	if r.opts.OutputDir == "" {
		return path, res.Changed()
	}
	return r.destination(path), true
}

// destination is the file a path is written to. Under an output directory
// the path keeps its location relative to Root; paths outside Root keep
// their full absolute location so two sources never share a destination.
func (r *Runner) destination(path string) string {
	if r.opts.OutputDir == "" {
		return filepath.Clean(path)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		abs = filepath.Clean(path)
	}

	rel := ""
	if root, err := filepath.Abs(r.opts.Root); err == nil {
		if rel, err = filepath.Rel(root, abs); err != nil {
			rel = ""
		}
	}
	if rel == "." {
		rel = filepath.Base(abs)
	}
	if rel == "" || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		rel = strings.TrimLeft(strings.TrimPrefix(abs, filepath.VolumeName(abs)), string(filepath.Separator))
	}
	return filepath.Join(r.opts.OutputDir, rel)
}

// 🔀 UnifiedDiff renders the difference between two versions of a file
func UnifiedDiff(path, before, after string) (string, error) {
	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(before),
		B:        difflib.SplitLines(after),
		FromFile: "a/" + filepath.ToSlash(path),
		ToFile:   "b/" + filepath.ToSlash(path),
		Context:  3,
	})
	if err != nil {
		return "", errors.Errorf("building diff: %w", err)
	}
	return diff, nil
}
