package cli

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"go-rack-editor/internal/rack"
	"go-rack-editor/internal/storage"
	"go-rack-editor/pkg/rackgrid"
)

func newShowCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show <name>",
		Short: "Print the modules of a saved rack",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := opts.settings()
			if err != nil {
				return err
			}
			store, err := opts.store(settings)
			if err != nil {
				return err
			}

			name := storage.CanonicalName(args[0])
			st, err := store.Load(cmd.Context(), name)
			if err != nil {
				if errors.Is(err, storage.ErrNotFound) {
					printError(cmd.ErrOrStderr(), "no rack named %s in %s", name, store.Dir())
				}
				return err
			}
			grid := settings.RackGrid()
			if err := st.Validate(grid); err != nil {
				printError(cmd.ErrOrStderr(), "%s.json does not fit the configured grid", name)
				return err
			}
			printRack(cmd.OutOrStdout(), name, grid, st)
			return nil
		},
	}
}

// printRack lists every module of st with its grid cell.
func printRack(w io.Writer, name string, g rackgrid.Grid, st rack.State) {
	fmt.Fprintln(w, StyleTitle.Render(name+".json"))
	if st.Len() == 0 {
		printInfo(w, "empty rack")
		return
	}

	rows := make([][]string, 0, st.Len())
	selected := 0
	for _, r := range st.Plugins {
		c := g.CellOf(rackgrid.Pt(r.X, r.Y))
		mark := ""
		if r.Selected {
			mark = "*"
			selected++
		}
		rows = append(rows, []string{
			strconv.FormatUint(uint64(r.ID), 10),
			strconv.Itoa(c.Row),
			strconv.Itoa(c.Col),
			strconv.FormatFloat(r.X, 'f', -1, 64),
			strconv.FormatFloat(r.Y, 'f', -1, 64),
			mark,
		})
	}
	printTable(w, []string{"ID", "RAIL", "HP", "X", "Y", "SEL"}, rows, func(i int) lipgloss.Style {
		if st.Plugins[i].Selected {
			return StyleSelected
		}
		return StyleValue
	})

	hi, _ := st.MaxID()
	printDetail(w, "%d module(s), %d selected, highest id %d", st.Len(), selected, hi)
}
