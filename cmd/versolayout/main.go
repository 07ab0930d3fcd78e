package main

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/irfansharif/verso/internal/geom"
	"github.com/irfansharif/verso/internal/layout"
	"github.com/irfansharif/verso/internal/palette"
	"github.com/irfansharif/verso/internal/snapshot"
	"github.com/irfansharif/verso/internal/spread"
)

const (
	defaultPages  = 12
	defaultWidth  = 1280
	defaultHeight = 800
)

// layoutOptions describe the publication and viewport to lay out.
type layoutOptions struct {
	Pages    int
	Viewport geom.Size
	Outro    bool
	Seed     int64
}

func (o layoutOptions) configuration() spread.Configuration {
	var outro *spread.Outro
	if o.Outro {
		outro = &spread.Outro{MaxZoomScale: 1, WidthPercentage: 0.8}
	}
	return spread.BuildPublication(o.Pages, o.Viewport.W > o.Viewport.H, outro)
}

func (o layoutOptions) isOutro(pageIndex int) bool {
	return o.Outro && pageIndex == o.Pages
}

// snapshotOptions are the layoutOptions plus where and how to draw them.
type snapshotOptions struct {
	layoutOptions
	OutputPath string
	Scale      float64
	MaxWidth   int
	Highlight  int // spread to highlight, or -1
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "versolayout",
		Short: "Inspect how a paged publication is laid out in spreads",
		Long: `versolayout lays a publication of generated pages out in spreads for a
given viewport, the way the paged viewer does, and prints the resulting
frames or renders them to an image.`,
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().IntP("pages", "n", defaultPages, "Number of pages in the publication")
	rootCmd.PersistentFlags().Float64("width", defaultWidth, "Viewport width, in points")
	rootCmd.PersistentFlags().Float64("height", defaultHeight, "Viewport height, in points")
	rootCmd.PersistentFlags().Bool("outro", false, "Append an outro page")
	rootCmd.PersistentFlags().Int64("seed", 1, "Seed of the page colors")

	rootCmd.AddCommand(newFramesCmd(), newSnapshotCmd())
	return rootCmd
}

func newFramesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "frames",
		Short: "Print the frame of every spread and page",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := readLayoutOptions(cmd)
			if err != nil {
				return err
			}
			return printFrames(cmd.OutOrStdout(), opts)
		},
	}
}

func newSnapshotCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Render the layout to an image",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := readSnapshotOptions(cmd)
			if err != nil {
				return err
			}
			if err := writeSnapshot(opts); err != nil {
				return fmt.Errorf("snapshot failed: %w", err)
			}
			log.Printf("Done: %s", opts.OutputPath)
			return nil
		},
	}
	cmd.Flags().StringP("output", "o", "layout.png", "Output file path (format from extension)")
	cmd.Flags().Float64("scale", 0.25, "Pixels per point")
	cmd.Flags().Int("max-width", 0, "Downsample wider images to this width (0 for no limit)")
	cmd.Flags().Int("highlight", -1, "Darken the viewport showing this spread (-1 for none)")
	return cmd
}

func readLayoutOptions(cmd *cobra.Command) (layoutOptions, error) {
	flags := cmd.Flags()
	pages, _ := flags.GetInt("pages")
	width, _ := flags.GetFloat64("width")
	height, _ := flags.GetFloat64("height")
	outro, _ := flags.GetBool("outro")
	seed, _ := flags.GetInt64("seed")

	if pages < 0 {
		return layoutOptions{}, fmt.Errorf("invalid --pages %d: must not be negative", pages)
	}
	if width <= 0 || height <= 0 {
		return layoutOptions{}, fmt.Errorf("invalid viewport %gx%g: must not be empty", width, height)
	}
	return layoutOptions{
		Pages:    pages,
		Viewport: geom.MakeSize(width, height),
		Outro:    outro,
		Seed:     seed,
	}, nil
}

func readSnapshotOptions(cmd *cobra.Command) (snapshotOptions, error) {
	lopts, err := readLayoutOptions(cmd)
	if err != nil {
		return snapshotOptions{}, err
	}
	flags := cmd.Flags()
	output, _ := flags.GetString("output")
	scale, _ := flags.GetFloat64("scale")
	maxWidth, _ := flags.GetInt("max-width")
	highlight, _ := flags.GetInt("highlight")

	if output == "" {
		return snapshotOptions{}, fmt.Errorf("--output must not be empty")
	}
	if scale <= 0 {
		return snapshotOptions{}, fmt.Errorf("invalid --scale %g: must be positive", scale)
	}
	if maxWidth < 0 {
		return snapshotOptions{}, fmt.Errorf("invalid --max-width %d: must not be negative", maxWidth)
	}
	return snapshotOptions{
		layoutOptions: lopts,
		OutputPath:    output,
		Scale:         scale,
		MaxWidth:      maxWidth,
		Highlight:     highlight,
	}, nil
}

func printFrames(w io.Writer, opts layoutOptions) error {
	config := opts.configuration()
	spreadFrames := layout.SpreadFrames(opts.Viewport, config)
	pageFrames := layout.PageFrames(spreadFrames, config)
	content := layout.ContentSize(spreadFrames)

	if _, err := fmt.Fprintf(w, "viewport %gx%g: %d pages in %d spreads, content %gx%g\n",
		opts.Viewport.W, opts.Viewport.H, config.PageCount(), config.SpreadCount(), content.W, content.H); err != nil {
		return err
	}
	for spreadIndex, p := range config.Properties() {
		offset := layout.ScrollOffsetForSpread(spreadIndex, spreadFrames, opts.Viewport)
		if _, err := fmt.Fprintf(w, "spread %-3d %-8v frame %-24v offset %-6g max zoom %g\n",
			spreadIndex, config.PageIndexesForSpread(spreadIndex), spreadFrames[spreadIndex], offset.X, p.MaxZoomScale()); err != nil {
			return err
		}
		for _, pageIndex := range p.PageIndexes() {
			kind := "page"
			if opts.isOutro(pageIndex) {
				kind = "outro"
			}
			if _, err := fmt.Fprintf(w, "  %-5s %-3d frame %-24v align %v\n",
				kind, pageIndex, pageFrames[pageIndex], config.Alignment(pageIndex)); err != nil {
				return err
			}
		}
	}
	return nil
}

func writeSnapshot(opts snapshotOptions) error {
	sopts := snapshot.Options{
		Palette:  palette.New(opts.Seed),
		Scale:    opts.Scale,
		MaxWidth: opts.MaxWidth,
		IsOutro:  opts.isOutro,
	}
	if opts.Highlight >= 0 {
		sopts.Highlight = &opts.Highlight
	}

	img, err := snapshot.Render(opts.Viewport, opts.configuration(), sopts)
	if err != nil {
		return err
	}
	return snapshot.Save(img, opts.OutputPath)
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
