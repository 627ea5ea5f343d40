package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/spf13/cobra"

	"go-rack-editor/internal/app"
	"go-rack-editor/internal/assets"
	"go-rack-editor/internal/rack"
	"go-rack-editor/internal/state"
	"go-rack-editor/pkg/render"
)

func newRunCmd(opts *rootOptions) *cobra.Command {
	var assetDir string
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Open the editor window",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEditorWith(cmd.Context(), opts, assetDir)
		},
	}
	cmd.Flags().StringVar(&assetDir, "assets", "assets", "directory holding textures/")
	return cmd
}

func runEditor(ctx context.Context, opts *rootOptions) error {
	return runEditorWith(ctx, opts, "assets")
}

func runEditorWith(ctx context.Context, opts *rootOptions, assetDir string) error {
	logger := loggerFromContext(ctx)

	settings, err := opts.settings()
	if err != nil {
		return err
	}
	store, err := opts.store(settings)
	if err != nil {
		return err
	}
	logger.Debug("save directory", "dir", store.Dir())

	library := assets.NewLibrary(assetDir, logger)
	defer library.Cleanup()
	plate := library.BlankPlate()

	grid := settings.RackGrid()
	mgr := rack.NewManager(grid, rack.WithLogger(logger))
	editor := app.NewEditor(mgr, store,
		app.WithEditorLogger(logger),
		app.WithPlate(plate),
		app.WithDefaultName(settings.DefaultRack),
	)
	if err := editor.Startup(ctx); err != nil {
		logger.Warn("starting with an empty rack", "err", err)
	}

	renderer := render.NewRackRenderer(grid, settings.Rails, settings.Columns, library, plate)
	sm := state.NewStateMachine()
	sm.SetState(state.NewEditorState(ctx, sm, editor, renderer, logger))

	ebiten.SetWindowSize(settings.WindowWidth, settings.WindowHeight)
	ebiten.SetWindowTitle(editor.Title())
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	err = ebiten.RunGame(state.NewWindow(ctx, sm))
	if editor.Dirty() {
		logger.Warn("closed with unsaved changes", "title", editor.Title())
	}
	if err != nil && !errors.Is(err, ebiten.Termination) {
		return fmt.Errorf("run editor: %w", err)
	}
	return nil
}
