// Package app wires the command tree to the stores, the editor, and the
// diagnostics.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/rbright/vtrans/internal/cli"
	"github.com/rbright/vtrans/internal/config"
	"github.com/rbright/vtrans/internal/i18n"
	"github.com/rbright/vtrans/internal/logging"
)

type Runner struct {
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger
	// Lookup reads locale variables. Nil means the process environment.
	Lookup i18n.Lookup
	// Edit runs the terminal editor. Nil means the bubbletea program.
	Edit func(ctx context.Context, ws *Workspace, provider string, logger *slog.Logger) error
}

func Execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	r := Runner{Stdout: stdout, Stderr: stderr}
	return r.Execute(ctx, args)
}

func (r Runner) Execute(ctx context.Context, args []string) int {
	h := &handler{runner: r}
	defer h.close()

	root := cli.New(h, r.Stdout, r.Stderr)
	h.globals = &root.Globals

	err := root.Execute(ctx, args)
	if err == nil {
		return 0
	}

	var usage *cli.UsageError
	if errors.As(err, &usage) {
		fmt.Fprintf(r.Stderr, "error: %v\n\n", err)
		fmt.Fprint(r.Stderr, root.UsageText(args))
		return 2
	}
	var exit *cli.ExitError
	if errors.As(err, &exit) {
		return exit.Code
	}

	fmt.Fprintf(r.Stderr, "error: %v\n", err)
	h.logger().Error("command failed", "error", err.Error())
	return 1
}

// handler executes parsed commands. The workspace opens on first use so
// version and usage errors never touch the disk.
type handler struct {
	runner  Runner
	globals *cli.Globals

	ws   *Workspace
	logs logging.Runtime
}

func (h *handler) logger() *slog.Logger {
	if h.runner.Logger != nil {
		return h.runner.Logger
	}
	if h.logs.Logger != nil {
		return h.logs.Logger
	}
	return logging.Discard().Logger
}

func (h *handler) workspace() (*Workspace, error) {
	if h.ws != nil {
		return h.ws, nil
	}

	root, err := config.ResolveRoot(h.globals.Root)
	if err != nil {
		return nil, err
	}

	if h.runner.Logger == nil {
		logs, err := logging.New(config.NewPaths(root).Logs)
		if err != nil {
			return nil, fmt.Errorf("setup logging: %w", err)
		}
		h.logs = logs
	}
	logger := h.logger()

	ws, err := Open(root, logger, h.runner.Lookup)
	if err != nil {
		logger.Error("open workspace failed", "root", root, "error", err.Error())
		return nil, err
	}
	for _, w := range ws.Warnings() {
		fmt.Fprintf(h.runner.Stderr, "warning: %s\n", w)
	}

	logger.Info("command start", "root", root, "log", h.logs.Path)
	h.ws = ws
	return ws, nil
}

func (h *handler) close() {
	_ = h.logs.Close()
}
