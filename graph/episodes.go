package graph

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
)

// DefaultEpisodeWindow is the number of recent episodes retrieved when the
// caller does not specify a count.
const DefaultEpisodeWindow = 3

// EpisodicNode is a timestamped unit of ingested content in the knowledge
// graph. ValidAt is the time the content refers to; CreatedAt is when the
// node was ingested.
type EpisodicNode struct {
	UUID              string    `json:"uuid"`
	Name              string    `json:"name"`
	Content           string    `json:"content"`
	Source            string    `json:"source"`
	SourceDescription string    `json:"source_description"`
	CreatedAt         time.Time `json:"created_at"`
	ValidAt           time.Time `json:"valid_at"`
}

// NewEpisodicNode creates an episode with a fresh identity and the current
// ingestion time.
func NewEpisodicNode(name, content, source, sourceDescription string, validAt time.Time) EpisodicNode {
	return EpisodicNode{
		UUID:              uuid.NewString(),
		Name:              name,
		Content:           content,
		Source:            source,
		SourceDescription: sourceDescription,
		CreatedAt:         time.Now().UTC(),
		ValidAt:           validAt,
	}
}

const saveEpisodeQuery = `
MERGE (e:Episodic {uuid: $uuid})
SET e.name = $name,
    e.content = $content,
    e.source = $source,
    e.source_description = $source_description,
    e.created_at = $created_at,
    e.valid_at = $valid_at
RETURN e.uuid AS uuid`

// SaveEpisode upserts an episode by uuid.
func (s *Store) SaveEpisode(ctx context.Context, node EpisodicNode) error {
	_, err := s.run(ctx, saveEpisodeQuery, map[string]any{
		"uuid":               node.UUID,
		"name":               node.Name,
		"content":            node.Content,
		"source":             node.Source,
		"source_description": node.SourceDescription,
		"created_at":         node.CreatedAt,
		"valid_at":           node.ValidAt,
	})
	if err != nil {
		return fmt.Errorf("failed to save episode %s: %w", node.UUID, err)
	}

	s.log.Debug().Str("uuid", node.UUID).Str("name", node.Name).Msg("episode saved")
	return nil
}

const retrieveEpisodesQuery = `
MATCH (e:Episodic) WHERE e.valid_at <= $reference_time
RETURN e.content AS content,
    e.created_at AS created_at,
    e.valid_at AS valid_at,
    e.uuid AS uuid,
    e.name AS name,
    e.source_description AS source_description,
    e.source AS source
ORDER BY e.created_at DESC
LIMIT $num_episodes`

// RetrieveRecentEpisodes returns up to lastN episodes whose valid-time is
// at or before referenceTime, ordered oldest to newest.
func (s *Store) RetrieveRecentEpisodes(ctx context.Context, referenceTime time.Time, lastN int) ([]EpisodicNode, error) {
	if lastN <= 0 {
		lastN = DefaultEpisodeWindow
	}

	result, err := s.run(ctx, retrieveEpisodesQuery, map[string]any{
		"reference_time": referenceTime,
		"num_episodes":   lastN,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve episodes: %w", err)
	}

	records := make([]map[string]any, 0, len(result.Records))
	for _, record := range result.Records {
		records = append(records, record.AsMap())
	}
	return episodesFromRecords(records)
}

// episodesFromRecords maps query records onto episodes and restores
// chronological order: the query returns newest-first to apply its limit,
// callers get oldest-to-newest.
func episodesFromRecords(records []map[string]any) ([]EpisodicNode, error) {
	episodes := make([]EpisodicNode, 0, len(records))
	for _, values := range records {
		node, err := episodeFromRecord(values)
		if err != nil {
			return nil, err
		}
		episodes = append(episodes, node)
	}
	return lo.Reverse(episodes), nil
}

// episodeFromRecord maps one query record onto an EpisodicNode.
func episodeFromRecord(values map[string]any) (EpisodicNode, error) {
	node := EpisodicNode{
		UUID:              stringValue(values["uuid"]),
		Name:              stringValue(values["name"]),
		Content:           stringValue(values["content"]),
		Source:            stringValue(values["source"]),
		SourceDescription: stringValue(values["source_description"]),
	}

	createdAt, err := timeValue(values["created_at"])
	if err != nil {
		return EpisodicNode{}, fmt.Errorf("episode %s: %w", node.UUID, err)
	}
	validAt, err := timeValue(values["valid_at"])
	if err != nil {
		return EpisodicNode{}, fmt.Errorf("episode %s: %w", node.UUID, err)
	}

	node.CreatedAt = createdAt.UTC()
	node.ValidAt = validAt
	return node, nil
}

func stringValue(v any) string {
	s, _ := v.(string)
	return s
}

func timeValue(v any) (time.Time, error) {
	t, ok := v.(time.Time)
	if !ok {
		return time.Time{}, fmt.Errorf("expected temporal value, got %T", v)
	}
	return t, nil
}
