package indexer

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"math"
	"sort"
	"strings"

	"bharatlaw-ai/internal/statute"
)

// ChunkerVersion identifies the chunking rules. Bump it when they change so
// IndexVersion tells old and new collections apart.
const ChunkerVersion = "v1.0"

// Stats summarises one indexing run.
type Stats struct {
	SectionsRead          int            `json:"sections_read"`
	SectionsStored        int            `json:"sections_stored"`
	DuplicateSections     int            `json:"duplicate_sections"`
	SectionsWithoutChunks int            `json:"sections_without_chunks"`
	ChunksEmbedded        int            `json:"chunks_embedded"`
	Batches               int            `json:"batches"`
	ChunkWordStats        ChunkWordStats `json:"chunk_word_stats"`
	ChunkerVersion        string         `json:"chunker_version"`
	// IndexVersion is a hash of the chunker version, embedding model and chunk budget.
	IndexVersion string `json:"index_version"`
}

// ChunkWordStats describes the word counts of embedded chunks.
type ChunkWordStats struct {
	Min  int     `json:"min"`
	Max  int     `json:"max"`
	Mean float64 `json:"mean"`
	P95  int     `json:"p95"`
}

// IndexVersion returns a short hash identifying an index build.
func IndexVersion(embeddingModel string, maxWords int) string {
	input := fmt.Sprintf("%s|%s|maxWords=%d", ChunkerVersion, embeddingModel, maxWords)
	hash := sha256.Sum256([]byte(input))
	return hex.EncodeToString(hash[:])[:16]
}

type statsAccumulator struct {
	stats      Stats
	wordCounts []int
}

func newStatsAccumulator(opts Options) *statsAccumulator {
	return &statsAccumulator{
		stats: Stats{
			ChunkerVersion: ChunkerVersion,
			IndexVersion:   IndexVersion(opts.EmbeddingModel, opts.MaxWords),
		},
	}
}

func (a *statsAccumulator) addBatch(chunks []statute.Chunk) {
	a.stats.Batches++
	a.stats.ChunksEmbedded += len(chunks)
	for _, c := range chunks {
		a.wordCounts = append(a.wordCounts, len(strings.Fields(c.Text)))
	}
}

func (a *statsAccumulator) finish() *Stats {
	s := a.stats
	s.ChunkWordStats = computeWordStats(a.wordCounts)
	return &s
}

// computeWordStats computes min, max, mean, and p95 from word counts.
func computeWordStats(counts []int) ChunkWordStats {
	if len(counts) == 0 {
		return ChunkWordStats{}
	}

	sorted := make([]int, len(counts))
	copy(sorted, counts)
	sort.Ints(sorted)

	sum := 0
	for _, c := range counts {
		sum += c
	}
	mean := float64(sum) / float64(len(counts))

	p95Index := int(math.Ceil(float64(len(sorted))*0.95)) - 1
	if p95Index < 0 {
		p95Index = 0
	}

	return ChunkWordStats{
		Min:  sorted[0],
		Max:  sorted[len(sorted)-1],
		Mean: math.Round(mean*100) / 100,
		P95:  sorted[p95Index],
	}
}
