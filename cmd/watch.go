package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// watchCmd re-runs the scenario every time the scenario file changes
var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Re-run the simulation whenever the scenario file changes",
	Run: func(cmd *cobra.Command, args []string) {
		setLogLevel()
		if scenarioPath == "" {
			logrus.Fatalf("--scenario is required for watch")
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		rerun := func() error {
			cfg, err := buildConfig(cmd.Flags())
			if err != nil {
				return err
			}
			return runSimulation(cfg, cmd.OutOrStdout())
		}
		if err := rerun(); err != nil {
			logrus.Errorf("run failed: %v", err)
		}
		if err := watchScenario(ctx, scenarioPath, rerun); err != nil {
			logrus.Fatalf("%v", err)
		}
	},
}

// watchScenario calls onChange after every write to path until ctx is done.
// The parent directory is watched so editors that save by rename are seen.
// A failing onChange is logged and watching continues.
func watchScenario(ctx context.Context, path string, onChange func() error) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	target := filepath.Clean(path)
	if err := watcher.Add(filepath.Dir(target)); err != nil {
		return fmt.Errorf("watching %s: %w", filepath.Dir(target), err)
	}
	logrus.Infof("watching %s", target)

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != target {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			logrus.Debugf("scenario changed: %s", ev)
			if err := onChange(); err != nil {
				logrus.Errorf("run failed: %v", err)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logrus.Warnf("watch error: %v", err)
		}
	}
}
