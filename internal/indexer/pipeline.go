package indexer

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_collections.go -package=mocks bharatlaw-ai/internal/indexer Collections

import (
	"context"
	"fmt"
	"os"
	"time"

	"bharatlaw-ai/internal/contextutil"
	"bharatlaw-ai/internal/rag"
	"bharatlaw-ai/internal/statute"
	"bharatlaw-ai/internal/storage"
	"bharatlaw-ai/internal/vectorstore"
)

// DefaultBatchSize is the number of chunks embedded and upserted per request.
const DefaultBatchSize = 64

// Collections manages the lifecycle of a vector collection.
type Collections interface {
	EnsureCollection(ctx context.Context, collection string, vectorSize int) error
	DeleteCollection(ctx context.Context, collection string) error
	CollectionExists(ctx context.Context, collection string) (bool, error)
}

// Options configures a Pipeline.
type Options struct {
	Collection     string
	VectorSize     int
	EmbeddingModel string
	// BatchSize defaults to DefaultBatchSize.
	BatchSize int
	// MaxWords defaults to statute.MaxChunkWords.
	MaxWords int
}

// Pipeline loads statute sections into the section store and the vector index.
type Pipeline struct {
	sections    storage.SectionStore
	embedder    rag.Embedder
	vectorStore vectorstore.VectorStore
	collections Collections
	opts        Options
}

// NewPipeline creates a new indexing pipeline.
func NewPipeline(
	sections storage.SectionStore,
	embedder rag.Embedder,
	vectorStore vectorstore.VectorStore,
	collections Collections,
	opts Options,
) *Pipeline {
	if opts.BatchSize <= 0 {
		opts.BatchSize = DefaultBatchSize
	}
	if opts.MaxWords <= 0 {
		opts.MaxWords = statute.MaxChunkWords
	}
	return &Pipeline{
		sections:    sections,
		embedder:    embedder,
		vectorStore: vectorStore,
		collections: collections,
		opts:        opts,
	}
}

// IndexFile reads a sections JSONL file and indexes it. See Index.
func (p *Pipeline) IndexFile(ctx context.Context, path string, rebuild bool) (*Stats, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sections file: %w", err)
	}
	defer func() {
		_ = f.Close()
	}()

	sections, err := statute.ReadSections(ctx, f)
	if err != nil {
		return nil, err
	}
	return p.Index(ctx, sections, rebuild)
}

// Index stores each distinct section in the section store, splits it into chunks
// and upserts their embeddings. Point ids derive from chunk keys, so indexing the
// same input twice leaves the collection unchanged. With rebuild set the collection
// is dropped first; that is the only way points are removed.
func (p *Pipeline) Index(ctx context.Context, sections []statute.Section, rebuild bool) (*Stats, error) {
	logger := contextutil.LoggerFromContext(ctx)
	start := time.Now()

	if err := p.prepareCollection(ctx, rebuild); err != nil {
		return nil, err
	}

	acc := newStatsAccumulator(p.opts)
	seen := make(map[statute.SectionKey]struct{}, len(sections))
	batch := make([]statute.Chunk, 0, p.opts.BatchSize)

	for _, s := range sections {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		acc.stats.SectionsRead++
		if s.Act == "" {
			s.Act = statute.UnknownAct
		}
		if _, dup := seen[s.Key()]; dup {
			acc.stats.DuplicateSections++
			continue
		}
		seen[s.Key()] = struct{}{}

		inserted, err := p.sections.Insert(ctx, s)
		if err != nil {
			return nil, fmt.Errorf("failed to store section %s %s: %w", s.Act, s.SectionNo, err)
		}
		if inserted {
			acc.stats.SectionsStored++
		}

		chunks := statute.ChunkSection(s, p.opts.MaxWords)
		if len(chunks) == 0 {
			acc.stats.SectionsWithoutChunks++
			logger.WarnContext(ctx, "section has no text", "act", s.Act, "section_no", s.SectionNo)
			continue
		}

		for _, c := range chunks {
			batch = append(batch, c)
			if len(batch) == p.opts.BatchSize {
				if err := p.flush(ctx, batch, acc); err != nil {
					return nil, err
				}
				batch = batch[:0]
			}
		}
	}
	if len(batch) > 0 {
		if err := p.flush(ctx, batch, acc); err != nil {
			return nil, err
		}
	}

	stats := acc.finish()
	logger.InfoContext(ctx, "indexing completed",
		"sections", stats.SectionsRead,
		"stored", stats.SectionsStored,
		"duplicates", stats.DuplicateSections,
		"chunks", stats.ChunksEmbedded,
		"duration", time.Since(start))
	return stats, nil
}

func (p *Pipeline) prepareCollection(ctx context.Context, rebuild bool) error {
	if rebuild {
		exists, err := p.collections.CollectionExists(ctx, p.opts.Collection)
		if err != nil {
			return fmt.Errorf("failed to check collection: %w", err)
		}
		if exists {
			contextutil.LoggerFromContext(ctx).InfoContext(ctx, "dropping collection for rebuild", "collection", p.opts.Collection)
			if err := p.collections.DeleteCollection(ctx, p.opts.Collection); err != nil {
				return fmt.Errorf("failed to drop collection: %w", err)
			}
		}
	}
	if err := p.collections.EnsureCollection(ctx, p.opts.Collection, p.opts.VectorSize); err != nil {
		return fmt.Errorf("failed to prepare collection: %w", err)
	}
	return nil
}

func (p *Pipeline) flush(ctx context.Context, chunks []statute.Chunk, acc *statsAccumulator) error {
	texts := make([]string, len(chunks))
	for i, c := range chunks {
		texts[i] = c.Text
	}

	embeddings, err := p.embedder.EmbedTexts(ctx, texts)
	if err != nil {
		return fmt.Errorf("failed to generate embeddings: %w", err)
	}
	if len(embeddings) != len(chunks) {
		return fmt.Errorf("embedding count mismatch: expected %d, got %d", len(chunks), len(embeddings))
	}

	points := make([]vectorstore.Point, len(chunks))
	for i, c := range chunks {
		points[i] = vectorstore.Point{
			ID:   vectorstore.PointID(c.Key()),
			Vec:  embeddings[i],
			Meta: rag.ChunkPayload(c),
		}
	}

	if err := p.vectorStore.Upsert(ctx, p.opts.Collection, points); err != nil {
		return fmt.Errorf("failed to upsert vectors: %w", err)
	}

	acc.addBatch(chunks)
	contextutil.LoggerFromContext(ctx).DebugContext(ctx, "batch indexed", "chunks", len(chunks), "total", acc.stats.ChunksEmbedded)
	return nil
}
