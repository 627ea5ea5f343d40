package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"go-rack-editor/internal/config"
	"go-rack-editor/internal/storage"
)

func newPathCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "path [name]",
		Short: "Print where racks and the config file live",
		Long:  `Without a name, print the save directory and config file. With a name, print only the file that rack is saved to.`,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := opts.settings()
			if err != nil {
				return err
			}
			store, err := opts.store(settings)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(args) == 1 {
				name := storage.CanonicalName(args[0])
				if err := storage.ValidateName(name); err != nil {
					return err
				}
				fmt.Fprintln(out, store.Path(name))
				return nil
			}

			cfg := opts.configPath
			if cfg == "" {
				if cfg, err = config.DefaultPath(); err != nil {
					return err
				}
			}
			printSuccess(out, "rack editor %s", version)
			printFile(out, "saves", store.Dir())
			printFile(out, "config", cfg)
			printFile(out, "default", store.Path(settings.DefaultRack))
			return nil
		},
	}
}
