package graph

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
)

// =============================================================================
// Graph Serialization API
// =============================================================================

// MarshalGraph converts a graph to indented JSON bytes.
func MarshalGraph(g Graph) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteGraph(g, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteGraph writes a graph as JSON to an io.Writer.
func WriteGraph(g Graph, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(g); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// WriteGraphFile writes a graph to a JSON file.
// The file is created with 0644 permissions.
func WriteGraphFile(g Graph, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteGraph(g, f)
}

// UnmarshalGraph deserializes JSON bytes to a Graph.
func UnmarshalGraph(data []byte) (Graph, error) {
	var g Graph
	if err := json.Unmarshal(data, &g); err != nil {
		return Graph{}, err
	}
	return g, nil
}

// ReadGraph decodes a JSON graph from an io.Reader.
func ReadGraph(r io.Reader) (Graph, error) {
	var g Graph
	if err := json.NewDecoder(r).Decode(&g); err != nil {
		return Graph{}, fmt.Errorf("decode: %w", err)
	}
	return g, nil
}

// =============================================================================
// Edge-List Text Format
// =============================================================================

// WriteEdgeList writes the graph in plain edge-list form: one "u v" line
// per edge, then one line per isolated vertex. The output is sorted and
// suitable for piping into standard graph tooling.
func WriteEdgeList(g Graph, w io.Writer) error {
	connected := make(map[string]struct{}, len(g.Vertices))
	for _, e := range g.Edges {
		if _, err := fmt.Fprintf(w, "%s %s\n", e.From, e.To); err != nil {
			return err
		}
		connected[e.From] = struct{}{}
		connected[e.To] = struct{}{}
	}
	for _, v := range g.Vertices {
		if _, ok := connected[v]; ok {
			continue
		}
		if _, err := fmt.Fprintln(w, v); err != nil {
			return err
		}
	}
	return nil
}

// FormatEdgeList returns the edge-list form as a string.
func FormatEdgeList(g Graph) string {
	var b strings.Builder
	// Writes to a strings.Builder cannot fail.
	_ = WriteEdgeList(g, &b)
	return b.String()
}
