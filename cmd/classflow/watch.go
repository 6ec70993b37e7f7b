package main

import (
	"context"
	"io"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/urfave/cli/v3"

	"github.com/syssam/classflow/internal/config"
)

// settle is how long the diagram file must stay quiet before it is
// regenerated. Editors save in several writes.
const settle = 100 * time.Millisecond

func (a *app) watchCommand() *cli.Command {
	return &cli.Command{
		Name:      "watch",
		Usage:     "Regenerate code whenever a diagram or the config changes",
		ArgsUsage: "<diagram>",
		Flags:     genFlags(),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			path := cmd.Args().First()
			if path == "" {
				return errMissingDiagram
			}
			if err := override(a.conf, cmd, genKeys); err != nil {
				return err
			}
			return a.watch(ctx, path, stdout(cmd))
		},
	}
}

// watch generates the diagram at path, then again after every change of
// the file or the config, until ctx is done. Failed generations are
// logged and do not stop the loop.
func (a *app) watch(ctx context.Context, path string, w io.Writer) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer func() { _ = watcher.Close() }()

	path = filepath.Clean(path)
	// The directory is watched so that files replaced by rename are seen.
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return err
	}

	reload := make(chan struct{}, 1)
	a.conf.Watch(func(_ config.Config, err error) {
		if err != nil {
			a.log.ErrorContext(ctx, "config reload failed", "error", err)
			return
		}
		select {
		case reload <- struct{}{}:
		default:
		}
	})

	regenerate := func() {
		if err := a.generate(ctx, path, w); err != nil {
			a.log.ErrorContext(ctx, "generation failed", "file", path, "error", err)
		}
	}
	regenerate()
	a.log.InfoContext(ctx, "watching", "file", path)

	var timer <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != path {
				continue
			}
			if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) || ev.Has(fsnotify.Rename) {
				timer = time.After(settle)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			a.log.WarnContext(ctx, "watch error", "error", err)
		case <-timer:
			timer = nil
			regenerate()
		case <-reload:
			a.log.InfoContext(ctx, "config changed")
			regenerate()
		}
	}
}
