package main

import (
	"fmt"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/biocontext/belanno/batch"
	"github.com/biocontext/belanno/discovery"
)

func validateCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "validate [files or globs...]",
		Short: "Validate annotation set files",
		Long: `Validate parses every matched annotation set file and prints all
problems found. Without arguments, files are located with the
configured discovery patterns.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := setup(flags)
			if err != nil {
				return err
			}

			patterns := args
			if len(patterns) == 0 {
				patterns = cfg.Discovery.Patterns
			}
			files, err := discovery.ResolveFiles(patterns)
			if err != nil {
				return err
			}
			if len(files) == 0 {
				return fmt.Errorf("no annotation files matched %v", patterns)
			}

			ingestor := batch.NewIngestor(batch.Config{
				Workers:      cfg.Batch.Workers,
				ParseOptions: parseOptions(cfg),
				Registerer:   prometheus.NewRegistry(),
			}, logger)
			results := ingestor.Run(cmd.Context(), files)

			failed := 0
			for _, result := range results {
				switch {
				case result.OK():
					fmt.Printf("ok\t%s\t%s (%d values)\n",
						result.File,
						result.Document.Definition.Keyword,
						len(result.Document.Values))
					for _, w := range result.Document.Warnings {
						fmt.Printf("\twarning line %d: %s\n", w.Line, w.Message)
					}
				case result.Report != nil:
					failed++
					fmt.Printf("INVALID\t%s\n", result.File)
					for _, issue := range result.Report.Issues {
						fmt.Printf("\t%s\n", issue)
					}
				default:
					failed++
					fmt.Printf("ERROR\t%s\t%v\n", result.File, result.Err)
				}
			}

			if failed > 0 {
				fmt.Fprintf(os.Stderr, "%d of %d file(s) failed validation\n", failed, len(files))
				return fmt.Errorf("validation failed")
			}
			return nil
		},
	}
}
