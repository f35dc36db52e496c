package monthgrid

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/fsnotify/fsnotify"
	"golang.org/x/sync/errgroup"

	"github.com/monthgrid/monthgrid/pkg/calendar"
)

var buildVersion = "dev"

func Main() int {
	options, err := parseCliOptions(os.Args[1:])
	if err != nil {
		fmt.Println(err)
		return 1
	}

	switch options.intent {
	case cliIntentServe:
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		if err := serveWithConfigReload(ctx, options.configPath); err != nil {
			slog.Error("Server stopped", "error", err)
			return 1
		}
	case cliIntentCheckConfig:
		if _, err := newConfigFromFile(options.configPath); err != nil {
			fmt.Println(err)
			return 1
		}

		fmt.Println("config is valid")
	case cliIntentRender:
		if err := renderToWriter(os.Stdout, options); err != nil {
			fmt.Println(err)
			return 1
		}
	}

	return 0
}

// renderToWriter uses the config file when it exists and the defaults when it
// doesn't, so rendering works without any setup.
func renderToWriter(w io.Writer, options *cliOptions) error {
	config, err := newConfigFromFile(options.configPath)
	if errors.Is(err, fs.ErrNotExist) {
		config, err = newConfig(), nil
	}
	if err != nil {
		return err
	}

	cal, err := calendar.New(&config.Calendar)
	if err != nil {
		return err
	}

	months := options.months
	if months == 0 {
		months = config.Months
	}

	result := cal.Render(months, options.at)

	_, err = fmt.Fprintf(w, "%s\n", result.HTML)
	return err
}

// serveWithConfigReload runs the application until ctx is done, replacing it
// with a fresh one every time the config file is written to.
func serveWithConfigReload(ctx context.Context, configPath string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating file watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(configPath); err != nil {
		return fmt.Errorf("watching config file: %w", err)
	}

	changed := make(chan struct{}, 1)
	group, ctx := errgroup.WithContext(ctx)

	group.Go(func() error {
		return watchConfigFile(ctx, watcher, changed)
	})

	group.Go(func() error {
		return runApplication(ctx, configPath, changed)
	})

	return group.Wait()
}

func watchConfigFile(ctx context.Context, watcher *fsnotify.Watcher, changed chan<- struct{}) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}

			if event.Op == fsnotify.Chmod {
				continue
			}

			// Editors that save by replacing the file drop the watch along
			// with the old inode.
			if event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
				if err := watcher.Add(event.Name); err != nil {
					slog.Error("Lost watch on config file", "path", event.Name, "error", err)
					continue
				}
			}

			select {
			case changed <- struct{}{}:
			default:
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}

			slog.Error("Error watching config file", "error", err)
		}
	}
}

// runApplication fails only when the first config can't be loaded or the
// server can't listen. A broken config on reload is logged and the server
// stays down until the next write fixes it.
func runApplication(ctx context.Context, configPath string, changed <-chan struct{}) error {
	for first := true; ; first = false {
		app, err := loadApplication(configPath)
		if err != nil {
			if first {
				return err
			}

			slog.Error("Failed to reload config", "path", configPath, "error", err)

			select {
			case <-ctx.Done():
				return nil
			case <-changed:
				continue
			}
		}

		start, stop := app.server()
		serveErr := make(chan error, 1)

		go func() {
			serveErr <- start()
		}()

		select {
		case <-ctx.Done():
			stop()
			return <-serveErr
		case err := <-serveErr:
			return err
		case <-changed:
			slog.Info("Config file modified, restarting application", "path", configPath)

			if err := stop(); err != nil {
				slog.Error("Failed to shut down application", "error", err)
			}

			if err := <-serveErr; err != nil {
				return err
			}
		}
	}
}

func loadApplication(configPath string) (*application, error) {
	config, err := newConfigFromFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	app, err := newApplication(config)
	if err != nil {
		return nil, fmt.Errorf("creating application: %w", err)
	}

	return app, nil
}
