package cli

import (
	"context"
	"fmt"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"go-rack-editor/internal/config"
	"go-rack-editor/internal/storage"
)

var (
	version = config.AppVersion
	commit  string
	date    string
)

// SetVersion sets the version information displayed by --version. Empty
// values keep the built-in ones.
func SetVersion(v, c, d string) {
	if v != "" {
		version = v
	}
	commit = c
	date = d
}

// rootOptions holds the persistent flags shared by every command.
type rootOptions struct {
	verbose    bool
	configPath string
	saveDir    string
}

// settings loads the config file and applies flag overrides.
func (o *rootOptions) settings() (config.Settings, error) {
	path := o.configPath
	if path == "" {
		p, err := config.DefaultPath()
		if err != nil {
			return config.Settings{}, err
		}
		path = p
	}
	s, err := config.Load(path)
	if err != nil {
		return s, err
	}
	if o.saveDir != "" {
		s.SaveDir = o.saveDir
	}
	s.DefaultRack = storage.CanonicalName(s.DefaultRack)
	if err := storage.ValidateName(s.DefaultRack); err != nil {
		return s, fmt.Errorf("default_rack: %w", err)
	}
	return s, nil
}

// store opens the save directory named by s.
func (o *rootOptions) store(s config.Settings) (*storage.FileStore, error) {
	return storage.NewFileStore(s.SaveDir)
}

// Execute runs the rack CLI with the process arguments.
func Execute(ctx context.Context) error {
	return newRootCmd().ExecuteContext(ctx)
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:           "rack",
		Short:         "Rack Editor places modules on a snapping rack grid",
		Long:          `Rack Editor is a desktop editor for laying out modules on rack rails. Modules snap to HP columns, one per cell, and racks are saved as JSON files.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := charmlog.InfoLevel
			if opts.verbose {
				level = charmlog.DebugLevel
			}
			cmd.SetContext(withLogger(cmd.Context(), newLogger(os.Stderr, level)))
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEditor(cmd.Context(), opts)
		},
	}

	root.SetVersionTemplate(fmt.Sprintf("rack %s\ncommit: %s\nbuilt: %s\n", version, commit, date))
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/rack-editor/config.toml)")
	root.PersistentFlags().StringVar(&opts.saveDir, "save-dir", "", "directory racks are saved in")

	root.AddCommand(newRunCmd(opts))
	root.AddCommand(newListCmd(opts))
	root.AddCommand(newShowCmd(opts))
	root.AddCommand(newPathCmd(opts))
	root.AddCommand(newDeleteCmd(opts))

	return root
}
