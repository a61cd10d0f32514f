package repository

import (
	"encoding/json"
	"fmt"

	"github.com/pieceful-app/pieceful-server/internal/puzzle"
)

// The document-store sync path cannot nest arrays-of-arrays, so edge grids
// travel as serialized strings and are decoded symmetrically on load.

func EncodeEdges(e puzzle.Edges) (h string, v string, err error) {
	hb, err := json.Marshal(e.H)
	if err != nil {
		return "", "", fmt.Errorf("unable to encode horizontal edges: %w", err)
	}
	vb, err := json.Marshal(e.V)
	if err != nil {
		return "", "", fmt.Errorf("unable to encode vertical edges: %w", err)
	}
	return string(hb), string(vb), nil
}

// DecodeEdges is the inverse of [EncodeEdges]. Empty strings decode to an
// empty edge set; callers repair those on read via Project.EnsureEdges.
func DecodeEdges(h, v string) (puzzle.Edges, error) {
	var e puzzle.Edges
	if h != "" {
		if err := json.Unmarshal([]byte(h), &e.H); err != nil {
			return puzzle.Edges{}, fmt.Errorf("unable to decode horizontal edges: %w", err)
		}
	}
	if v != "" {
		if err := json.Unmarshal([]byte(v), &e.V); err != nil {
			return puzzle.Edges{}, fmt.Errorf("unable to decode vertical edges: %w", err)
		}
	}
	return e, nil
}
