package main

import (
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/eringen/folio/export"
	"github.com/eringen/folio/preview"
)

var watchOpts struct {
	out   string
	media string
}

var watchCmd = &cobra.Command{
	Use:   "watch <project.json>",
	Short: "Re-render the page every time the project document is saved",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := filepath.Abs(args[0])
		if err != nil {
			return err
		}

		var (
			mu     sync.Mutex
			latest export.Bundle
		)
		render := func() (string, error) {
			s, err := loadProject(path, watchOpts.media)
			if err != nil {
				return "", err
			}
			b, err := build(s)
			if err != nil {
				return "", err
			}
			mu.Lock()
			latest = b
			mu.Unlock()
			return b.HTML, nil
		}
		driver := preview.NewDriver(cfg.PreviewDelay, render, preview.WithOnSettle(func(st preview.Status) {
			if st.Err != nil {
				logger.Error("render failed, keeping previous output", "err", st.Err)
				return
			}
			mu.Lock()
			b := latest
			mu.Unlock()
			if err := export.WriteDir(watchOpts.out, b); err != nil {
				logger.Error("write failed", "err", err)
				return
			}
			logger.Info("page written", "dir", watchOpts.out, "renders", st.Renders)
		}))
		defer driver.Close()

		// Watch the directory: editors often save by replacing the file.
		watcher, err := fsnotify.NewWatcher()
		if err != nil {
			return err
		}
		defer watcher.Close()
		if err := watcher.Add(filepath.Dir(path)); err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		logger.Info("watching", "file", path, "out", watchOpts.out)
		driver.Show()
		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return nil
				}
				if filepath.Clean(event.Name) != path {
					continue
				}
				if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) {
					logger.Debug("change detected", "op", event.Op.String())
					driver.Touch()
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return nil
				}
				logger.Warn("watcher error", "err", err)
			case <-ctx.Done():
				return nil
			}
		}
	},
}

func init() {
	watchCmd.Flags().StringVarP(&watchOpts.out, "out", "o", "site", "output directory")
	watchCmd.Flags().StringVar(&watchOpts.media, "media", "", "directory holding uploaded media by file name")
	rootCmd.AddCommand(watchCmd)
}
