package rag

import (
	"context"
	"fmt"
	"sort"
	"time"

	"bharatlaw-ai/internal/contextutil"
	"bharatlaw-ai/internal/metrics"
	"bharatlaw-ai/internal/statute"
	"bharatlaw-ai/internal/vectorstore"
)

// maxLookupPoints bounds how many chunks a section lookup may return.
const maxLookupPoints = 100

// Retriever embeds questions and queries the vector store.
type Retriever struct {
	embedder    Embedder
	vectorStore vectorstore.VectorStore
	collection  string
}

// NewRetriever creates a retriever over the given collection.
func NewRetriever(embedder Embedder, vectorStore vectorstore.VectorStore, collection string) *Retriever {
	return &Retriever{
		embedder:    embedder,
		vectorStore: vectorStore,
		collection:  collection,
	}
}

// Retrieve returns the k nearest chunks to question, nearest first.
func (r *Retriever) Retrieve(ctx context.Context, question string, k int) ([]Match, error) {
	logger := contextutil.LoggerFromContext(ctx)

	start := time.Now()
	embeddings, err := r.embedder.EmbedTexts(ctx, []string{question})
	metrics.StageDuration.WithLabelValues("embed").Observe(time.Since(start).Seconds())
	if err != nil {
		return nil, fmt.Errorf("failed to embed question: %w", err)
	}
	if len(embeddings) == 0 {
		return nil, fmt.Errorf("no embedding returned for question")
	}

	start = time.Now()
	results, err := r.vectorStore.Search(ctx, r.collection, embeddings[0], k, nil)
	metrics.StageDuration.WithLabelValues("search").Observe(time.Since(start).Seconds())
	if err != nil {
		return nil, fmt.Errorf("failed to search vector store: %w", err)
	}

	matches, err := toMatches(results)
	if err != nil {
		return nil, err
	}

	if len(matches) > 0 {
		logger.DebugContext(ctx, "retrieved chunks", "count", len(matches), "k", k, "nearest_distance", matches[0].Distance)
	} else {
		logger.DebugContext(ctx, "retrieved no chunks", "k", k)
	}
	return matches, nil
}

// LookupSection returns every stored chunk of the section referenced in text
// ("section 302", "Section 498A"), ordered by act then chunk index.
// Text without a section reference yields no matches.
func (r *Retriever) LookupSection(ctx context.Context, text string) ([]Match, error) {
	sectionNo, ok := statute.ParseSectionRef(text)
	if !ok {
		return []Match{}, nil
	}

	results, err := r.vectorStore.Get(ctx, r.collection, map[string]any{FieldSectionNo: sectionNo}, maxLookupPoints)
	if err != nil {
		return nil, fmt.Errorf("failed to look up %s: %w", sectionNo, err)
	}

	matches, err := toMatches(results)
	if err != nil {
		return nil, err
	}
	for i := range matches {
		matches[i].Distance = 0
	}
	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].Act != matches[j].Act {
			return matches[i].Act < matches[j].Act
		}
		return matches[i].ChunkIndex < matches[j].ChunkIndex
	})

	contextutil.LoggerFromContext(ctx).DebugContext(ctx, "section lookup", "section_no", sectionNo, "matches", len(matches))
	return matches, nil
}

func toMatches(results []vectorstore.SearchResult) ([]Match, error) {
	matches := make([]Match, 0, len(results))
	for _, res := range results {
		m, err := matchFromResult(res)
		if err != nil {
			return nil, err
		}
		matches = append(matches, m)
	}
	return matches, nil
}
