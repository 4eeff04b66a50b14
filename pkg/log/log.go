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


package log

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/walteh/rtlmigrate/pkg/status"
)

// 🎯 FileOperation represents the result for one file
type FileOperation struct {
	Path     string            // File path as shown to the user
	Status   status.FileStatus // What happened to the file
	Changes  int               // Number of substitutions
	Warnings []string          // Engine warnings, printed when verbose
	Err      error             // Read or write failure
}

// 📦 RunOperation describes a conversion run for logging
type RunOperation struct {
	Root   string // Directory or file the run started from
	Files  int    // Number of files discovered
	DryRun bool   // Whether results are written
}

// 🎯 Logger handles structured logging with console output
type Logger struct {
	zlog      zerolog.Logger
	console   io.Writer
	formatter status.FileFormatter
	mu        sync.Mutex
	verbose   bool
	currentOp *RunOperation
	summary   status.Summary
}

// 🏭 New creates a new logger. Console output goes to console, structured
// logs go to stderr.
func New(console io.Writer, level zerolog.Level) *Logger {
	zlog := zerolog.New(zerolog.NewConsoleWriter(func(w *zerolog.ConsoleWriter) {
		w.Out = os.Stderr
	})).With().Timestamp().Logger().Level(level)
	return &Logger{
		zlog:      zlog,
		console:   console,
		formatter: status.NewDefaultFileFormatter(),
	}
}

// 🔑 contextKey is the type for context values
type contextKey struct{}

// 🎯 FromContext gets the logger from context
func FromContext(ctx context.Context) *Logger {
	logger, ok := ctx.Value(contextKey{}).(*Logger)
	if !ok {
		panic("logger not found in context")
	}
	return logger
}

// 🎯 NewContext adds the logger to context
func NewContext(ctx context.Context, l *Logger) context.Context {
	return context.WithValue(ctx, contextKey{}, l)
}

// Zerolog returns the structured logger backing l
func (l *Logger) Zerolog() *zerolog.Logger {
	return &l.zlog
}

// SetVerbose prints every engine warning under its file line
func (l *Logger) SetVerbose(v bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.verbose = v
}

// 📝 StartRun starts a new conversion run
func (l *Logger) StartRun(ctx context.Context, op RunOperation) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.currentOp = &op
	l.summary = status.Summary{}

	mode := "write"
	if op.DryRun {
		mode = "dry run"
	}

	fmt.Fprintf(l.console, "[converting %s]\n",
		color.New(color.FgCyan).Sprint(op.Root))

	fmt.Fprintf(l.console, "%s %s %s %s\n",
		color.New(color.FgMagenta).Sprint("◆"),
		color.New(color.Bold).Sprintf("%d files", op.Files),
		color.New(color.Faint).Sprint("•"),
		color.New(color.FgYellow).Sprint(mode))

	l.zlog.Info().
		Str("root", op.Root).
		Int("files", op.Files).
		Bool("dry_run", op.DryRun).
		Msg("starting conversion run")
}

// 📝 LogFileOperation logs the result for one file
func (l *Logger) LogFileOperation(ctx context.Context, op FileOperation) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.summary.Track(op.Status, op.Changes, len(op.Warnings))

	fmt.Fprintln(l.console, status.FormatFileLine(op.Path, op.Status, op.Changes))

	if op.Err != nil {
		fmt.Fprintf(l.console, "        %s\n", color.New(color.FgRed).Sprint(op.Err.Error()))
	}
	if l.verbose {
		for _, w := range op.Warnings {
			fmt.Fprintf(l.console, "        %s\n", color.New(color.Faint).Sprint(w))
		}
	}

	ev := l.zlog.Info()
	if op.Err != nil {
		ev = l.zlog.Error().Err(op.Err)
	}
	ev.Str("file", op.Path).
		Str("status", op.Status.String()).
		Int("changes", op.Changes).
		Int("warnings", len(op.Warnings)).
		Msg("file converted")
}

// 📝 EndRun prints the summary of the current run and returns it
func (l *Logger) EndRun(ctx context.Context) status.Summary {
	l.mu.Lock()
	defer l.mu.Unlock()

	summary := l.summary
	if l.currentOp == nil {
		return summary
	}

	fmt.Fprintln(l.console)
	fmt.Fprintln(l.console, l.formatter.FormatSummary(summary))

	l.zlog.Info().
		Str("root", l.currentOp.Root).
		Int("files", summary.Files).
		Int("converted", summary.Converted).
		Int("failed", summary.Failed).
		Int("changes", summary.Changes).
		Msg("conversion run complete")

	l.currentOp = nil
	l.summary = status.Summary{}
	return summary
}

// 📝 LogNewline logs a newline
func (l *Logger) LogNewline() {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintln(l.console)
}

// 📝 Header logs a header
func (l *Logger) Header(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	name := color.New(color.Bold, color.FgCyan).Sprint("rtlmigrate")
	fmt.Fprintf(l.console, "\n%s %s\n\n", name, color.New(color.Faint).Sprint("• "+msg))
	l.zlog.Info().Msg(msg)
}

// 📝 Success logs a success message
func (l *Logger) Success(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "✅ %s\n", color.New(color.FgGreen).Sprint(msg))
	l.zlog.Info().Msg(msg)
}

// 📝 Warning logs a warning message
func (l *Logger) Warning(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "⚠️  %s\n", color.New(color.FgYellow).Sprint(msg))
	l.zlog.Warn().Msg(msg)
}

// 📝 Error logs an error message
func (l *Logger) Error(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "❌ %s\n", color.New(color.FgRed).Sprint(msg))
	l.zlog.Error().Msg(msg)
}

// 📝 Info logs an info message
func (l *Logger) Info(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "ℹ️  %s\n", color.New(color.FgCyan).Sprint(msg))
	l.zlog.Info().Msg(msg)
}

// 📝 Infof logs a formatted info message
func (l *Logger) Infof(format string, args ...interface{}) {
	l.Info(fmt.Sprintf(format, args...))
}

// 📝 Warningf logs a formatted warning message
func (l *Logger) Warningf(format string, args ...interface{}) {
	l.Warning(fmt.Sprintf(format, args...))
}

// 📝 Errorf logs a formatted error message
func (l *Logger) Errorf(format string, args ...interface{}) {
	l.Error(fmt.Sprintf(format, args...))
}

// 📝 Successf logs a formatted success message
func (l *Logger) Successf(format string, args ...interface{}) {
	l.Success(fmt.Sprintf(format, args...))
}
