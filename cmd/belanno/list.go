package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/biocontext/belanno/annoset"
)

func listCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "list <file>",
		Short: "List the vocabulary terms of an annotation set file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := setup(flags)
			if err != nil {
				return err
			}

			doc, err := annoset.ParseFile(args[0], parseOptions(cfg))
			if err != nil {
				return err
			}

			fmt.Printf("# %s (%s, %d values)\n",
				doc.Definition.Keyword, doc.Definition.Type, len(doc.Values))
			for _, entry := range doc.Values {
				fmt.Printf("%s\t%s\n", entry.Term, strings.Join(entry.Identifiers, "\t"))
			}
			return nil
		},
	}
}
