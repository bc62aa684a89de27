package cmd

import (
	"fmt"
	"io"
	"os"

	"flutteredit/internal/log"
	"flutteredit/internal/tui"

	"github.com/spf13/cobra"
)

func tuiCmd(opts *options) *cobra.Command {
	var logFile string

	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Run the editor in the terminal",
		Long: `Run the same editor as a full-screen terminal program. Paths are typed into a
prompt instead of picked from a dialog.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// The program owns the screen, so logs go to a file or nowhere.
			var out io.Writer = io.Discard
			if logFile != "" {
				f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
				if err != nil {
					return fmt.Errorf("failed to open log file: %w", err)
				}
				defer f.Close()
				out = f
			}
			log.Configure(opts.logOptions(log.WithOutput(out))...)
			defer log.Configure(opts.logOptions()...)

			svc, err := newServices(opts.cfg)
			if err != nil {
				return err
			}
			log.Infof("starting terminal editor")
			return tui.Run(tui.Deps{
				Workspace: svc.workspace,
				Metrics:   svc.metrics,
				Launcher:  svc.launcher,
				Watcher:   svc.watcher,
				Refresh:   opts.cfg.RefreshInterval(),
			})
		},
	}

	cmd.Flags().StringVar(&logFile, "log-file", "", "append logs to this file while the TUI runs")
	return cmd
}
