package cmd

import (
	"fmt"
	"os"

	"flutteredit/internal/config"
	"flutteredit/internal/errors"
	"flutteredit/internal/gui"
	"flutteredit/internal/log"

	"github.com/spf13/cobra"
)

// Version is stamped at build time with -ldflags "-X flutteredit/internal/cmd.Version=...".
var Version = "dev"

type options struct {
	cfgFile string
	debug   bool
	logJSON bool
	cfg     *config.Config
}

// NewRootCmd builds the command tree. Running it without a subcommand opens
// the desktop window.
func NewRootCmd() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:   "flutteredit",
		Short: "A small text editor with a file explorer and system metrics",
		Long: `Flutteredit edits one text file at a time, lists the files of an open folder,
shows memory and disk usage and can start an external terminal.`,
		Version:       Version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.load()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := newServices(opts.cfg)
			if err != nil {
				return err
			}
			log.Infof("opening window %q", opts.cfg.Window.Title)
			return gui.Run(gui.Deps{
				Config:    opts.cfg,
				Workspace: svc.workspace,
				Metrics:   svc.metrics,
				Launcher:  svc.launcher,
				Watcher:   svc.watcher,
			})
		},
	}

	rootCmd.PersistentFlags().StringVar(&opts.cfgFile, "config", "", "config file (default is $HOME/.config/flutteredit/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&opts.debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&opts.logJSON, "log-json", false, "write logs as JSON")

	rootCmd.AddCommand(tuiCmd(opts))
	rootCmd.AddCommand(versionCmd())
	rootCmd.AddCommand(configCmd(opts))

	return rootCmd
}

// Execute runs the command tree against os.Args.
func Execute() error {
	return NewRootCmd().Execute()
}

// load reads the config file. A broken file is reported and replaced by the
// defaults so the editor still starts.
func (o *options) load() error {
	var err error
	if o.cfgFile != "" {
		o.cfg, err = config.LoadConfigFile(o.cfgFile)
	} else {
		o.cfg, err = config.LoadConfig()
	}
	if err != nil {
		if errors.IsInvalidConfig(err) {
			fmt.Fprintf(os.Stderr, "Warning: invalid configuration: %v\n", err)
		} else {
			fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		}
		fmt.Fprintln(os.Stderr, "Using default settings.")
		o.cfg = config.New()
	}

	log.Configure(o.logOptions()...)
	log.SetDebug(o.debug || o.cfg.Debug)
	log.LogWithFields(
		log.F("terminal", o.cfg.Terminal.Command),
		log.F("refresh_ms", o.cfg.Metrics.RefreshInterval),
	).Debug("configuration loaded")
	return nil
}

func (o *options) logOptions(extra ...log.Option) []log.Option {
	opts := make([]log.Option, 0, len(extra)+1)
	if o.logJSON {
		opts = append(opts, log.WithJSON())
	}
	return append(opts, extra...)
}
