// Package graph provides the neo4j-backed episodic store consumed by the
// knowledge-extraction pipeline: index maintenance, destructive reset, and
// episode persistence/retrieval.
package graph

import (
	"context"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/rs/zerolog"
)

// Store wraps a neo4j driver. The driver pools connections internally and
// is safe for concurrent use; Store methods add no state of their own.
type Store struct {
	driver neo4j.DriverWithContext
	log    zerolog.Logger
}

// NewStore connects to the graph database with basic auth. Close must be
// called when the store is no longer needed.
func NewStore(uri, user, password string, log zerolog.Logger) (*Store, error) {
	driver, err := neo4j.NewDriverWithContext(uri, neo4j.BasicAuth(user, password, ""))
	if err != nil {
		return nil, fmt.Errorf("failed to create neo4j driver: %w", err)
	}
	return &Store{
		driver: driver,
		log:    log.With().Str("component", "graph").Logger(),
	}, nil
}

// VerifyConnectivity checks that the database is reachable.
func (s *Store) VerifyConnectivity(ctx context.Context) error {
	return s.driver.VerifyConnectivity(ctx)
}

// Close releases the driver's connection pool.
func (s *Store) Close(ctx context.Context) error {
	return s.driver.Close(ctx)
}

// run executes a single auto-commit query and returns the eager result.
func (s *Store) run(ctx context.Context, query string, params map[string]any) (*neo4j.EagerResult, error) {
	return neo4j.ExecuteQuery(ctx, s.driver, query, params, neo4j.EagerResultTransformer)
}
