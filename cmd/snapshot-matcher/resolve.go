package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"snapshot-matcher/internal/encode"
	"snapshot-matcher/internal/identity"
	"snapshot-matcher/internal/registry"
)

func newResolveCmd(opts *options) *cobra.Command {
	var (
		class, method, name string
		count               int
	)
	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Print the snapshot paths an assertion site resolves to",
		Long: `Print the paths that consecutive assertions at one site would use
within a single test process, starting at sequence 0.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if count < 1 {
				return fmt.Errorf("--count must be >= 1, got %d", count)
			}
			enc, err := encode.ForFormat(opts.cfg.Format)
			if err != nil {
				return err
			}
			r := identity.NewResolver(opts.cfg.Root, enc.Ext(), registry.New())
			site := identity.SiteFor(class, method)
			for i := 0; i < count; i++ {
				id, err := r.Resolve(site, name)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", id.String(), id.Path)
			}
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&class, "class", "", "package or dotted class name")
	f.StringVar(&method, "method", "", "test function name")
	f.StringVar(&name, "name", "", "explicit snapshot name (overrides --method)")
	f.IntVar(&count, "count", 1, "number of consecutive assertions")
	return cmd
}
