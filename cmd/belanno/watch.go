package main

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/biocontext/belanno/annoset"
	"github.com/biocontext/belanno/discovery"
)

func watchCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "watch [dirs...]",
		Short: "Watch directories and revalidate annotation files on change",
		Long: `Watch monitors directories for annotation file changes and
revalidates each changed file, printing the outcome. Without arguments,
the configured watch directories are used. Stop with Ctrl-C.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := setup(flags)
			if err != nil {
				return err
			}

			dirs := args
			if len(dirs) == 0 {
				dirs = cfg.Watch.Dirs
			}

			watchCfg := discovery.DefaultWatchConfig()
			if cfg.Watch.DebounceDelay > 0 {
				watchCfg.DebounceDelay = cfg.Watch.DebounceDelay
			}

			watcher, err := discovery.NewWatcher(watchCfg, dirs, logger)
			if err != nil {
				return fmt.Errorf("start watcher: %w", err)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			go watcher.Run(ctx)

			logger.Info("watching for annotation file changes", "dirs", dirs)
			opts := parseOptions(cfg)

			for event := range watcher.Events() {
				if event.Op == discovery.OpDelete {
					fmt.Printf("deleted\t%s\n", event.Path)
					continue
				}

				doc, err := annoset.ParseFile(event.Path, opts)
				if err != nil {
					if report, ok := annoset.AsReport(err); ok {
						fmt.Printf("INVALID\t%s\n", event.Path)
						for _, issue := range report.Issues {
							fmt.Printf("\t%s\n", issue)
						}
					} else {
						fmt.Printf("ERROR\t%s\t%v\n", event.Path, err)
					}
					continue
				}
				fmt.Printf("ok\t%s\t%s (%d values)\n",
					event.Path, doc.Definition.Keyword, len(doc.Values))
			}
			return nil
		},
	}
}
