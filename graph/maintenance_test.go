package graph

import (
	"strings"
	"testing"
)

func TestIndexQueriesAreIdempotent(t *testing.T) {
	queries := indexQueries()
	if len(queries) == 0 {
		t.Fatal("Expected index queries")
	}

	want := len(rangeIndices) + len(fulltextIndices) + len(vectorIndices)
	if len(queries) != want {
		t.Errorf("Expected %d queries, got %d", want, len(queries))
	}

	// Every statement must tolerate re-creation so building indices twice
	// leaves the schema unchanged.
	for _, query := range queries {
		if !strings.Contains(query, "IF NOT EXISTS") {
			t.Errorf("Index statement is not idempotent: %s", query)
		}
	}
}
