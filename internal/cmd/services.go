package cmd

import (
	"time"

	"flutteredit/internal/config"
	"flutteredit/internal/log"
	"flutteredit/internal/metrics"
	"flutteredit/internal/terminal"
	"flutteredit/internal/watch"
	"flutteredit/internal/workspace"
)

// ownWriteQuiet is how long the watcher ignores the active file after the
// editor itself writes it.
const ownWriteQuiet = time.Second

// services are shared by both front-ends.
type services struct {
	workspace *workspace.Workspace
	metrics   *metrics.Reader
	launcher  *terminal.Launcher
	watcher   *watch.Watcher
}

func newServices(cfg *config.Config) (*services, error) {
	hide, err := cfg.HidePatterns()
	if err != nil {
		return nil, err
	}

	svc := &services{
		metrics:  metrics.NewSystemReader(),
		launcher: terminal.NewLauncher(terminal.ExecSpawner{}, cfg.Terminal.Command, cfg.Terminal.Args...),
	}

	wsOpts := []workspace.Option{
		workspace.WithHidePatterns(hide),
		workspace.WithSortedListing(cfg.Explorer.Sort),
	}
	if cfg.Editor.WatchExternalChanges {
		w, err := watch.New()
		if err != nil {
			// The editor works without the watcher.
			log.LogWithError(err).Warn("external change watching disabled")
		} else {
			svc.watcher = w
			wsOpts = append(wsOpts, workspace.WithBeforeWrite(func(string) {
				w.Suppress(ownWriteQuiet)
			}))
		}
	}
	svc.workspace = workspace.New(wsOpts...)

	return svc, nil
}
