package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/cliq/pkg/cache"
	"github.com/matzehuels/cliq/pkg/pipeline"
)

// =============================================================================
// Runner Construction
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func newRunner(noCache bool, logger *log.Logger) (*pipeline.Runner, error) {
	c, err := newCache(noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(c, nil, logger), nil
}

func newCache(noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// =============================================================================
// Program Input
// =============================================================================

// readProgram resolves the program text from --expr, a file argument, or
// stdin ("-"). Exactly one source must be given.
func readProgram(args []string, exprFlag string) (string, error) {
	if exprFlag != "" {
		if len(args) > 0 {
			return "", fmt.Errorf("cannot combine --expr with a file argument")
		}
		return exprFlag, nil
	}
	if len(args) != 1 {
		return "", fmt.Errorf("provide a program file, \"-\" for stdin, or --expr")
	}
	if args[0] == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", fmt.Errorf("read program: %w", err)
	}
	return string(data), nil
}

// inputBase derives a base output path from the program source. Files lose
// their extension; stdin and --expr programs fall back to "graph".
func inputBase(args []string) string {
	if len(args) == 1 && args[0] != "-" {
		name := args[0]
		if i := strings.LastIndex(name, "."); i > 0 {
			return name[:i]
		}
		return name
	}
	return "graph"
}

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s, fallback string) []string {
	if s == "" {
		return []string{fallback}
	}
	return strings.Split(s, ",")
}
