package cli

import (
	"fmt"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/mosaic/pkg/pipeline"
)

// previewCommand creates the preview command for the interactive terminal view.
func (c *CLI) previewCommand() *cobra.Command {
	opts := renderOpts{}

	cmd := &cobra.Command{
		Use:   "preview [file]",
		Short: "Preview a treemap layout in the terminal",
		Long: `Preview loads a CSV file, computes the treemap layout, and draws the leaf
tiles as an interactive character grid. Use the arrow keys to inspect
individual tiles; the selected tile's path, weight, and share are shown
below the grid.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			popts := pipeline.Options{
				Input:     args[0],
				Area:      opts.area,
				AreaConst: opts.areaConst,
				Labels:    opts.labels,
				Fill:      opts.fill,
				Levels:    parseList(opts.levels),
				Split:     opts.split,
				Pad:       opts.pad,
				Logger:    c.Logger,
			}
			runner, err := c.newRunner(cmd, opts.noCache)
			if err != nil {
				return err
			}
			defer runner.Close()
			return runPreview(cmd, runner, popts)
		},
	}

	cmd.Flags().StringVar(&opts.area, "area", "", "column holding tile weights")
	cmd.Flags().Float64Var(&opts.areaConst, "area-const", 0, "constant weight per row instead of a column")
	cmd.Flags().StringVar(&opts.labels, "labels", "", "column holding tile labels")
	cmd.Flags().StringVar(&opts.fill, "fill", "", "column holding tile fill values")
	cmd.Flags().StringVar(&opts.levels, "levels", "", "hierarchy columns, root first (comma-separated)")
	cmd.Flags().BoolVar(&opts.split, "split", false, "give every root group an equal share")
	cmd.Flags().Float64SliceVar(&opts.pad, "pad", nil, "tile padding: scalar, x,y or l,r,t,b")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the pipeline cache")
	cmd.Flags().String("redis", "", "Redis address for a shared cache (host:port)")

	return cmd
}

// runPreview computes the layout and hands it to the bubbletea program.
func runPreview(cmd *cobra.Command, runner *pipeline.Runner, popts pipeline.Options) error {
	ctx := cmd.Context()

	items, err := runner.Load(ctx, popts)
	if err != nil {
		return err
	}
	tree, err := runner.GenerateLayout(ctx, items, popts)
	if err != nil {
		return err
	}

	title := fmt.Sprintf("%s · %d tiles", filepath.Base(popts.Input), len(tree.Leaf().Groups))
	model := newPreviewModel(tree, title)

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("preview: %w", err)
	}
	return nil
}
