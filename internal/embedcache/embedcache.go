// Package embedcache caches query and chunk embeddings in a key-value store so
// repeated questions skip the embedding model.
package embedcache

import (
	"context"
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"
	"math"

	"github.com/prometheus/client_golang/prometheus"

	"bharatlaw-ai/internal/contextutil"
)

const keyPrefix = "bharatlaw:emb:"

// ErrCacheMiss is returned by a store when the key is absent.
var ErrCacheMiss = errors.New("cache miss")

// Embedder is the wrapped embedding provider.
type Embedder interface {
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
}

// CachedEmbedder is an Embedder decorator backed by a key-value store.
// Store failures are logged and treated as misses.
type CachedEmbedder struct {
	inner      Embedder
	store      store
	model      string
	cacheTotal *prometheus.CounterVec
}

// New creates a caching decorator. model namespaces the keys so switching the
// embedding model never serves stale vectors. cacheTotal may be nil.
func New(inner Embedder, s store, model string, cacheTotal *prometheus.CounterVec) *CachedEmbedder {
	return &CachedEmbedder{
		inner:      inner,
		store:      s,
		model:      model,
		cacheTotal: cacheTotal,
	}
}

// EmbedTexts returns cached vectors where available and embeds the rest in one
// call to the inner embedder, preserving input order.
func (c *CachedEmbedder) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	result := make([][]float32, len(texts))
	keys := make([]string, len(texts))

	var missIdx []int
	var missTexts []string
	for i, text := range texts {
		keys[i] = c.cacheKey(text)
		if vec, ok := c.get(ctx, keys[i]); ok {
			c.inc("hit")
			result[i] = vec
			continue
		}
		c.inc("miss")
		missIdx = append(missIdx, i)
		missTexts = append(missTexts, text)
	}

	if len(missTexts) == 0 {
		return result, nil
	}

	vecs, err := c.inner.EmbedTexts(ctx, missTexts)
	if err != nil {
		return nil, fmt.Errorf("embed texts: %w", err)
	}
	if len(vecs) != len(missTexts) {
		return nil, fmt.Errorf("expected %d embeddings, got %d", len(missTexts), len(vecs))
	}

	for j, i := range missIdx {
		result[i] = vecs[j]
		c.put(ctx, keys[i], vecs[j])
	}
	return result, nil
}

func (c *CachedEmbedder) inc(result string) {
	if c.cacheTotal != nil {
		c.cacheTotal.WithLabelValues(result).Inc()
	}
}

func (c *CachedEmbedder) cacheKey(text string) string {
	h := sha256.Sum256([]byte(text))
	return keyPrefix + c.model + ":" + hex.EncodeToString(h[:])
}

func (c *CachedEmbedder) get(ctx context.Context, key string) ([]float32, bool) {
	logger := contextutil.LoggerFromContext(ctx)

	data, err := c.store.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, ErrCacheMiss) {
			logger.WarnContext(ctx, "failed to read cached embedding", "key", key, "error", err)
		}
		return nil, false
	}
	if len(data) == 0 {
		return nil, false
	}

	vec, err := decodeVector(data)
	if err != nil {
		logger.WarnContext(ctx, "failed to decode cached embedding", "key", key, "error", err)
		return nil, false
	}
	return vec, true
}

func (c *CachedEmbedder) put(ctx context.Context, key string, vec []float32) {
	if err := c.store.Set(ctx, key, encodeVector(vec)); err != nil {
		contextutil.LoggerFromContext(ctx).WarnContext(ctx, "failed to cache embedding", "key", key, "error", err)
	}
}

func encodeVector(v []float32) []byte {
	buf := make([]byte, len(v)*4)
	for i, f := range v {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	return buf
}

func decodeVector(data []byte) ([]float32, error) {
	if len(data)%4 != 0 {
		return nil, fmt.Errorf("invalid embedding cache data: len=%d (not multiple of 4)", len(data))
	}
	vec := make([]float32, len(data)/4)
	for i := range vec {
		vec[i] = math.Float32frombits(binary.LittleEndian.Uint32(data[i*4:]))
	}
	return vec, nil
}
