package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newListCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List saved racks",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := opts.settings()
			if err != nil {
				return err
			}
			store, err := opts.store(settings)
			if err != nil {
				return err
			}
			entries, err := store.List(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(entries) == 0 {
				printInfo(out, "no saved racks in %s", store.Dir())
				return nil
			}

			fmt.Fprintln(out, StyleTitle.Render("Saved racks"))
			rows := make([][]string, 0, len(entries))
			for _, e := range entries {
				rows = append(rows, []string{
					e.Name,
					strconv.FormatInt(e.Size, 10) + " B",
					e.ModTime.Format("2006-01-02 15:04"),
				})
			}
			printTable(out, []string{"NAME", "SIZE", "MODIFIED"}, rows, nil)
			printDetail(out, "%d rack(s) in %s", len(entries), store.Dir())
			return nil
		},
	}
}
