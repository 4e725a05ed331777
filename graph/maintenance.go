package graph

import (
	"context"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

// Index creation is idempotent: every statement carries IF NOT EXISTS, so
// building twice leaves the schema unchanged.
var rangeIndices = []string{
	"CREATE INDEX entity_uuid IF NOT EXISTS FOR (n:Entity) ON (n.uuid)",
	"CREATE INDEX episode_uuid IF NOT EXISTS FOR (n:Episodic) ON (n.uuid)",
	"CREATE INDEX relation_uuid IF NOT EXISTS FOR ()-[e:RELATES_TO]-() ON (e.uuid)",
	"CREATE INDEX mention_uuid IF NOT EXISTS FOR ()-[e:MENTIONS]-() ON (e.uuid)",
	"CREATE INDEX name_entity_index IF NOT EXISTS FOR (n:Entity) ON (n.name)",
	"CREATE INDEX created_at_entity_index IF NOT EXISTS FOR (n:Entity) ON (n.created_at)",
	"CREATE INDEX created_at_episodic_index IF NOT EXISTS FOR (n:Episodic) ON (n.created_at)",
	"CREATE INDEX valid_at_episodic_index IF NOT EXISTS FOR (n:Episodic) ON (n.valid_at)",
	"CREATE INDEX name_edge_index IF NOT EXISTS FOR ()-[e:RELATES_TO]-() ON (e.name)",
	"CREATE INDEX created_at_edge_index IF NOT EXISTS FOR ()-[e:RELATES_TO]-() ON (e.created_at)",
	"CREATE INDEX expired_at_edge_index IF NOT EXISTS FOR ()-[e:RELATES_TO]-() ON (e.expired_at)",
	"CREATE INDEX valid_at_edge_index IF NOT EXISTS FOR ()-[e:RELATES_TO]-() ON (e.valid_at)",
	"CREATE INDEX invalid_at_edge_index IF NOT EXISTS FOR ()-[e:RELATES_TO]-() ON (e.invalid_at)",
}

var fulltextIndices = []string{
	"CREATE FULLTEXT INDEX name_and_summary IF NOT EXISTS FOR (n:Entity) ON EACH [n.name, n.summary]",
	"CREATE FULLTEXT INDEX name_and_fact IF NOT EXISTS FOR ()-[e:RELATES_TO]-() ON EACH [e.name, e.fact]",
}

var vectorIndices = []string{
	`CREATE VECTOR INDEX fact_embedding IF NOT EXISTS
	FOR ()-[r:RELATES_TO]-() ON (r.fact_embedding)
	OPTIONS {indexConfig: {
	 ` + "`vector.dimensions`" + `: 1024,
	 ` + "`vector.similarity_function`" + `: 'cosine'
	}}`,
	`CREATE VECTOR INDEX name_embedding IF NOT EXISTS
	FOR (n:Entity) ON (n.name_embedding)
	OPTIONS {indexConfig: {
	 ` + "`vector.dimensions`" + `: 1024,
	 ` + "`vector.similarity_function`" + `: 'cosine'
	}}`,
}

// indexQueries returns every index creation statement in execution order.
func indexQueries() []string {
	queries := make([]string, 0, len(rangeIndices)+len(fulltextIndices)+len(vectorIndices))
	queries = append(queries, rangeIndices...)
	queries = append(queries, fulltextIndices...)
	queries = append(queries, vectorIndices...)
	return queries
}

// BuildIndices creates the range, full-text and vector indices over graph
// node and edge properties. Safe to invoke repeatedly.
func (s *Store) BuildIndices(ctx context.Context) error {
	queries := indexQueries()
	for _, query := range queries {
		if _, err := s.run(ctx, query, nil); err != nil {
			return fmt.Errorf("failed to create index: %w", err)
		}
	}

	s.log.Info().Int("count", len(queries)).Msg("graph indices ensured")
	return nil
}

// ClearAll wipes every node and relationship from the graph. Destructive
// and irreversible.
func (s *Store) ClearAll(ctx context.Context) error {
	session := s.driver.NewSession(ctx, neo4j.SessionConfig{})
	defer func() {
		_ = session.Close(ctx)
	}()

	_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		_, err := tx.Run(ctx, "MATCH (n) DETACH DELETE n", nil)
		return nil, err
	})
	if err != nil {
		return fmt.Errorf("failed to clear graph data: %w", err)
	}

	s.log.Warn().Msg("all graph data deleted")
	return nil
}
