package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/cliq/pkg/pipeline"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	expr           string   // inline program via --expr
	formats        []string // output formats: dot, svg, png
	output         string   // output base path; derived from input when empty
	layout         string   // Graphviz engine: neato, dot, fdp, circo, twopi
	allowShadowing bool     // let later definitions replace earlier ones
	maxMembers     int      // normal form size limit (0 = default)
	noCache        bool     // disable the artifact cache
	refresh        bool     // re-render even when cached
}

// imageFormats is the set of formats the render command can produce.
var imageFormats = map[string]bool{
	pipeline.FormatDOT: true,
	pipeline.FormatSVG: true,
	pipeline.FormatPNG: true,
}

// newRenderCmd creates the render command for generating visualizations.
//
// Default settings:
//   - format: svg
//   - layout: neato (force-directed placement suits unordered cliques)
func newRenderCmd() *cobra.Command {
	var formatsStr string
	opts := renderOpts{}

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Render a program's graph as DOT, SVG, or PNG",
		Long: `Render the graph of a program's normal form.

The output path is derived from the input file name unless --output is
given; inline and stdin programs default to "graph.<format>".`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = parseFormats(formatsStr, pipeline.FormatSVG)
			for _, f := range opts.formats {
				if !imageFormats[f] {
					return fmt.Errorf("invalid format: %q (must be 'dot', 'svg', or 'png')", f)
				}
			}
			program, err := readProgram(args, opts.expr)
			if err != nil {
				return err
			}
			if opts.output == "" {
				opts.output = inputBase(args)
			}
			return runRender(cmd.Context(), program, &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.expr, "expr", "e", "", "render an inline program instead of a file")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), png, dot (comma-separated)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output base path (default derived from input)")
	cmd.Flags().StringVar(&opts.layout, "layout", "", "Graphviz layout engine: neato (default), dot, fdp, circo, twopi")
	cmd.Flags().BoolVar(&opts.allowShadowing, "allow-shadowing", false, "allow redefining names; the last definition wins")
	cmd.Flags().IntVar(&opts.maxMembers, "max-members", 0, "normal form size limit (0 = default)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the artifact cache")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "re-render even when a cached artifact exists")

	return cmd
}

// runRender evaluates the program and writes one file per format.
func runRender(ctx context.Context, program string, opts *renderOpts) error {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if opts.layout == "" {
		opts.layout = cfg.Layout
	}
	if !opts.allowShadowing {
		opts.allowShadowing = cfg.AllowShadowing
	}
	if opts.maxMembers == 0 {
		opts.maxMembers = cfg.MaxMembers
	}

	runner, err := newRunner(opts.noCache, logger)
	if err != nil {
		return err
	}
	defer runner.Close()

	result, err := runner.Execute(ctx, pipeline.Options{
		Program:        program,
		AllowShadowing: opts.allowShadowing,
		MaxMembers:     opts.maxMembers,
		Refresh:        opts.refresh,
		Formats:        opts.formats,
		Layout:         opts.layout,
		Logger:         logger,
	})
	if err != nil {
		return err
	}

	for _, format := range opts.formats {
		path := opts.output + "." + format
		data := result.Artifacts[format]
		if err := os.WriteFile(path, data, 0644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		logger.Debugf("Generated %s: %d bytes", format, len(data))
		printFile(path)
	}

	prog.done(fmt.Sprintf("Rendered %s", result.Canonical))
	printStats(result.Stats.VertexCount, result.Stats.EdgeCount, result.CacheInfo.RenderHit)
	return nil
}
