package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"go-rack-editor/internal/storage"
)

func newDeleteCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "delete <name>...",
		Aliases: []string{"rm"},
		Short:   "Delete saved racks",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := opts.settings()
			if err != nil {
				return err
			}
			store, err := opts.store(settings)
			if err != nil {
				return err
			}

			names := make([]string, 0, len(args))
			for _, arg := range args {
				name := storage.CanonicalName(arg)
				if err := storage.ValidateName(name); err != nil {
					return err
				}
				if !store.Exists(name) {
					printError(cmd.ErrOrStderr(), "no rack named %s in %s", name, store.Dir())
					return fmt.Errorf("%w: %s", storage.ErrNotFound, name)
				}
				names = append(names, name)
			}

			out := cmd.OutOrStdout()
			for _, name := range names {
				if err := store.Delete(cmd.Context(), name); err != nil {
					return err
				}
				loggerFromContext(cmd.Context()).Debug("rack deleted", "name", name)
				printSuccess(out, "deleted %s.json", name)
			}
			return nil
		},
	}
}
