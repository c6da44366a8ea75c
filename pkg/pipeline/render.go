package pipeline

import (
	"context"
	"fmt"

	"github.com/matzehuels/cliq/pkg/graph"
	"github.com/matzehuels/cliq/pkg/render/nodelink"
)

// Render generates the requested output formats from an evaluated
// expression. The canonical text feeds the text format; everything else
// derives from the materialized graph.
func Render(ctx context.Context, canonical string, g graph.Graph, opts Options) (map[string][]byte, error) {
	opts.SetRenderDefaults()
	if err := ValidateFormats(opts.Formats); err != nil {
		return nil, err
	}

	out := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		data, err := renderFormat(ctx, canonical, g, format, opts)
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		out[format] = data
	}
	return out, nil
}

func renderFormat(ctx context.Context, canonical string, g graph.Graph, format string, opts Options) ([]byte, error) {
	switch format {
	case FormatText:
		return []byte(canonical + "\n"), nil
	case FormatJSON:
		return graph.MarshalGraph(g)
	case FormatEdges:
		return []byte(graph.FormatEdgeList(g)), nil
	case FormatDOT:
		return []byte(nodelink.ToDOT(g, nodelink.Options{Layout: opts.Layout})), nil
	case FormatSVG:
		dot := nodelink.ToDOT(g, nodelink.Options{Layout: opts.Layout})
		return nodelink.RenderSVG(ctx, dot)
	case FormatPNG:
		dot := nodelink.ToDOT(g, nodelink.Options{Layout: opts.Layout})
		return nodelink.RenderPNG(ctx, dot)
	default:
		return nil, ValidateFormat(format)
	}
}
