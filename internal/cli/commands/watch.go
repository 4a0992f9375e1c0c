package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/leapstack-labs/doccheck/internal/cli/config"
)

const watchDebounce = 200 * time.Millisecond

// runWatch runs the check, then re-runs it whenever the tree file, the
// installed list or the ignore file changes, until interrupted.
func runWatch(ctx context.Context, cc *CommandContext, opts *CheckOptions) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	inputs := watchedInputs(cc.Cfg)
	// Editors often replace files, so watch the directories.
	dirs := map[string]bool{}
	for p := range inputs {
		dirs[filepath.Dir(p)] = true
	}
	for dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("failed to watch %s: %w", dir, err)
		}
	}

	run := watchRun(ctx, cc, opts)
	run()

	cc.Logger.Info("Watching for changes (Ctrl+C to stop)...", "files", len(inputs))
	watchLoop(ctx, watcher, inputs, watchDebounce, cc.Logger, run)
	return nil
}

// watchRun returns one check pass for the watch loop. A failed pass is shown
// to the user, even with --quiet, and the loop keeps going.
func watchRun(ctx context.Context, cc *CommandContext, opts *CheckOptions) func() {
	return func() {
		_, err := checkOnce(ctx, cc, opts)
		if err == nil || errors.Is(err, context.Canceled) {
			return
		}
		cc.Logger.Debug("check failed", "error", err)
		cc.Renderer.Warning("check failed: " + err.Error())
	}
}

func watchedInputs(cfg *config.Config) map[string]bool {
	inputs := map[string]bool{}
	for _, p := range []string{cfg.Tree, cfg.Installed, cfg.Ignore} {
		if p != "" {
			inputs[filepath.Clean(p)] = true
		}
	}
	return inputs
}

// watchLoop calls run after changes to inputs settle. Runs never overlap.
func watchLoop(ctx context.Context, watcher *fsnotify.Watcher, inputs map[string]bool,
	debounce time.Duration, logger *slog.Logger, run func()) {
	var debounceTimer *time.Timer
	trigger := make(chan struct{}, 1)
	defer func() {
		if debounceTimer != nil {
			debounceTimer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if !inputs[filepath.Clean(event.Name)] {
				continue
			}

			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			name := event.Name
			debounceTimer = time.AfterFunc(debounce, func() {
				logger.Info("Change detected", "file", filepath.Base(name))
				select {
				case trigger <- struct{}{}:
				default:
				}
			})
		case <-trigger:
			run()
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			logger.Warn("watcher error", "error", err)
		}
	}
}
