package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/cliq/pkg/pipeline"
)

// evalOpts holds the command-line flags for the eval command.
type evalOpts struct {
	expr           string   // inline program via --expr
	formats        []string // output formats: text, json, edges, dot
	output         string   // base path for file output; empty means stdout
	allowShadowing bool     // let later definitions replace earlier ones
	maxMembers     int      // normal form size limit (0 = default)
	noCache        bool     // disable the evaluation cache
	refresh        bool     // recompute even when cached
}

// textFormats is the set of formats the eval command can emit. Image
// formats belong to the render command.
var textFormats = map[string]bool{
	pipeline.FormatText:  true,
	pipeline.FormatJSON:  true,
	pipeline.FormatEdges: true,
	pipeline.FormatDOT:   true,
}

// newEvalCmd creates the eval command for evaluating programs.
//
// The program comes from a file argument, stdin ("-"), or the --expr flag.
// With a single format and no --output, the artifact goes to stdout so the
// command composes in pipes. With --output, each format is written to
// <base>.<format>.
func newEvalCmd() *cobra.Command {
	var formatsStr string
	opts := evalOpts{}

	cmd := &cobra.Command{
		Use:   "eval [file]",
		Short: "Evaluate a program and print its normal form",
		Long: `Evaluate a program and print its union-of-cliques normal form.

A program is zero or more definitions followed by a target expression:

  G = [A,B]
  {X,G}

Formats: text (canonical form), json (vertex and edge sets),
edges (edge list), dot (Graphviz source).`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = parseFormats(formatsStr, pipeline.FormatText)
			for _, f := range opts.formats {
				if !textFormats[f] {
					return fmt.Errorf("invalid format: %q (use the render command for svg/png)", f)
				}
			}
			program, err := readProgram(args, opts.expr)
			if err != nil {
				return err
			}
			return runEval(cmd.Context(), program, &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.expr, "expr", "e", "", "evaluate an inline program instead of a file")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): text (default), json, edges, dot (comma-separated)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "base path for file output (default stdout)")
	cmd.Flags().BoolVar(&opts.allowShadowing, "allow-shadowing", false, "allow redefining names; the last definition wins")
	cmd.Flags().IntVar(&opts.maxMembers, "max-members", 0, "normal form size limit (0 = default)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the evaluation cache")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "recompute even when a cached result exists")

	return cmd
}

// runEval executes the pipeline and emits the requested artifacts.
func runEval(ctx context.Context, program string, opts *evalOpts) error {
	logger := loggerFromContext(ctx)

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	applyEvalConfig(opts, cfg)

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
		Logger:         logger,
	})
	if err != nil {
		return err
	}

	if opts.output == "" {
		if len(opts.formats) > 1 {
			return fmt.Errorf("multiple formats need --output")
		}
		_, err := os.Stdout.Write(result.Artifacts[opts.formats[0]])
		return err
	}

	for _, format := range opts.formats {
		path := opts.output + "." + format
		if err := os.WriteFile(path, result.Artifacts[format], 0644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		printFile(path)
	}
	printSuccess("Evaluated %s", StyleHighlight.Render(result.Canonical))
	printStats(result.Stats.VertexCount, result.Stats.EdgeCount, result.CacheInfo.EvalHit)
	return nil
}

// applyEvalConfig fills unset eval options from the user config.
func applyEvalConfig(opts *evalOpts, cfg config) {
	if !opts.allowShadowing {
		opts.allowShadowing = cfg.AllowShadowing
	}
	if opts.maxMembers == 0 {
		opts.maxMembers = cfg.MaxMembers
	}
}
