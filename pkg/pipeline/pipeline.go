// Package pipeline provides the core evaluation pipeline for cliq.
//
// This package implements the complete parse → resolve → normalize →
// render pipeline that can be used by CLI, REPL, and API components. By
// centralizing this logic, we ensure consistent behavior across all entry
// points and avoid code duplication.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Eval: Parse the program text, resolve named definitions, and
//     rewrite the target to union-of-cliques normal form
//  2. Materialize: Compute the concrete vertex and edge sets
//  3. Render: Generate output in various formats (text, JSON, DOT,
//     edge list, SVG, PNG)
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Program: "G = [A,B]\n{X,G}",
//	    Formats: []string{"text", "svg"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/cliq/pkg/cache"
	"github.com/matzehuels/cliq/pkg/expr"
	"github.com/matzehuels/cliq/pkg/graph"
	"github.com/matzehuels/cliq/pkg/normal"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI, REPL, and API
// =============================================================================

// Format constants for output formats.
const (
	FormatText  = "text"
	FormatJSON  = "json"
	FormatDOT   = "dot"
	FormatEdges = "edges"
	FormatSVG   = "svg"
	FormatPNG   = "png"
)

// DefaultFormat is the output format used when none is requested.
const DefaultFormat = FormatText

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatText:  true,
	FormatJSON:  true,
	FormatDOT:   true,
	FormatEdges: true,
	FormatSVG:   true,
	FormatPNG:   true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the evaluation pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Program is the input text: zero or more definitions followed by a
	// target expression.
	Program string `json:"program"`

	// Eval options
	AllowShadowing bool `json:"allow_shadowing,omitempty"`
	MaxMembers     int  `json:"max_members,omitempty"`
	MaxDepth       int  `json:"max_depth,omitempty"`
	Refresh        bool `json:"refresh,omitempty"`

	// Render options
	Formats []string `json:"formats,omitempty"`
	Layout  string   `json:"layout,omitempty"` // Graphviz engine for svg/png

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Normal is the target's union-of-cliques normal form.
	Normal expr.Expr

	// Canonical is the deterministic serialization of Normal. Equal
	// expressions always produce the same canonical text.
	Canonical string

	// Graph is the materialized vertex and edge sets.
	Graph graph.Graph

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	VertexCount int
	EdgeCount   int
	EvalTime    time.Duration
	RenderTime  time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	EvalHit   bool // Whether the normal form came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return fmt.Errorf("invalid format: %q (must be one of: text, json, dot, edges, svg, png)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults for
// the full pipeline. This method is idempotent - calling it multiple times
// has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForEval(); err != nil {
		return err
	}
	o.SetRenderDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForEval checks required fields for evaluation.
func (o *Options) ValidateForEval() error {
	if o.Program == "" {
		return fmt.Errorf("program is required")
	}

	// Eval defaults
	if o.MaxMembers == 0 {
		o.MaxMembers = normal.DefaultMaxMembers
	}
	if o.MaxDepth == 0 {
		o.MaxDepth = expr.DefaultMaxDepth
	}

	// Logger default
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}

	return nil
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{DefaultFormat}
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// EvalKeyOpts returns cache key options for the evaluation stage.
func (o *Options) EvalKeyOpts() cache.EvalKeyOpts {
	return cache.EvalKeyOpts{
		AllowShadowing: o.AllowShadowing,
		MaxMembers:     o.MaxMembers,
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format: format,
		Layout: o.Layout,
	}
}
