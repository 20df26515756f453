package main

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"snapshot-matcher/internal/encode"
	"snapshot-matcher/internal/store"
)

func newListCmd(opts *options) *cobra.Command {
	var jsonOut bool
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List snapshot files under the root",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			enc, err := encode.ForFormat(opts.cfg.Format)
			if err != nil {
				return err
			}
			entries, err := store.List(opts.cfg.Root, enc.Ext())
			if err != nil {
				return fmt.Errorf("listing %s: %w", opts.cfg.Root, err)
			}

			out := cmd.OutOrStdout()
			if jsonOut {
				if entries == nil {
					entries = []store.Entry{}
				}
				e := json.NewEncoder(out)
				e.SetIndent("", "  ")
				return e.Encode(entries)
			}
			if len(entries) == 0 {
				fmt.Fprintf(out, "No snapshots found under %s\n", opts.cfg.Root)
				return nil
			}
			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "PATH\tLINES\tBYTES")
			for _, e := range entries {
				fmt.Fprintf(w, "%s\t%d\t%d\n", e.Path, e.Lines, e.Bytes)
			}
			return w.Flush()
		},
	}
	cmd.Flags().BoolVar(&jsonOut, "json", false, "output as JSON")
	return cmd
}
