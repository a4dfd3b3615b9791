// Package main provides the belanno binary entry point. Belanno loads
// and validates annotation set definition files: section-based text
// documents declaring a controlled vocabulary, its provenance, and its
// processing directives.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"strings"

	"github.com/spf13/cobra"

	"github.com/biocontext/belanno/annoset"
	"github.com/biocontext/belanno/config"
)

const (
	Version   = "0.1.0"
	BuildTime = "dev"
	appName   = "belanno"
)

func main() {
	// Add panic recovery
	defer func() {
		if r := recover(); r != nil {
			buf := make([]byte, 4096)
			n := runtime.Stack(buf, false)
			_, _ = fmt.Fprintf(os.Stderr, "PANIC: %v\nStack trace:\n%s\n", r, string(buf[:n]))
			os.Exit(2)
		}
	}()

	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// rootFlags are the persistent flags shared by every subcommand.
type rootFlags struct {
	configPath     string
	logLevel       string
	strictSections bool
	strictKeys     bool
	fieldsPerRow   int
}

func rootCmd() *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:   "belanno",
		Short: "Annotation set loader and validator",
		Long: `Belanno loads and validates annotation set definition files.

An annotation set file declares a controlled vocabulary (for example a
disease term list) as five sections: AnnotationDefinition, Author,
Citation, Processing, and Values. Belanno parses the file, coerces the
typed fields, checks every invariant, and reports all problems found in
one pass.`,
	}

	cmd.PersistentFlags().StringVarP(&flags.configPath, "config", "c", "", "Config file path (YAML)")
	cmd.PersistentFlags().StringVar(&flags.logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	cmd.PersistentFlags().BoolVar(&flags.strictSections, "strict-sections", false, "Reject unrecognized sections")
	cmd.PersistentFlags().BoolVar(&flags.strictKeys, "strict-keys", false, "Reject unrecognized keys")
	cmd.PersistentFlags().IntVar(&flags.fieldsPerRow, "fields-per-row", 0, "Expected field count per values row (0 = infer)")

	cmd.AddCommand(validateCmd(flags))
	cmd.AddCommand(exportCmd(flags))
	cmd.AddCommand(listCmd(flags))
	cmd.AddCommand(watchCmd(flags))
	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("%s version %s (build: %s)\n", appName, Version, BuildTime)
		},
	})

	return cmd
}

// setup configures logging and loads the layered configuration, then
// applies command-line overrides.
func setup(flags *rootFlags) (*config.Config, *slog.Logger, error) {
	level := slog.LevelInfo
	switch strings.ToLower(flags.logLevel) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	var cfg *config.Config
	var err error
	if flags.configPath != "" {
		cfg, err = config.LoadFromFile(flags.configPath)
		if err == nil {
			err = cfg.Validate()
		}
	} else {
		cfg, err = config.NewLoader(logger).Load()
	}
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}

	if flags.strictSections {
		cfg.Parse.StrictSections = true
	}
	if flags.strictKeys {
		cfg.Parse.StrictKeys = true
	}
	if flags.fieldsPerRow != 0 {
		cfg.Parse.FieldsPerRow = flags.fieldsPerRow
	}

	return cfg, logger, nil
}

// parseOptions maps configuration onto parser options.
func parseOptions(cfg *config.Config) annoset.Options {
	return annoset.Options{
		StrictSections: cfg.Parse.StrictSections,
		StrictKeys:     cfg.Parse.StrictKeys,
		FieldsPerRow:   cfg.Parse.FieldsPerRow,
	}
}
