package knowledge

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"
)

const (
	defaultTopK        = 4
	defaultBatchSize   = 16
	defaultConcurrency = 4
)

// Embedder turns text into vectors.
type Embedder interface {
	EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error)
	EmbedQuery(ctx context.Context, text string) ([]float32, error)
}

// VectorIndex keeps document embeddings in memory and ranks them by cosine similarity.
type VectorIndex struct {
	embedder    Embedder
	batchSize   int
	concurrency int

	mu      sync.RWMutex
	docs    []Document
	vectors [][]float32
}

// NewVectorIndex builds an empty index. Non-positive batchSize uses the default.
func NewVectorIndex(embedder Embedder, batchSize int) *VectorIndex {
	if batchSize <= 0 {
		batchSize = defaultBatchSize
	}
	return &VectorIndex{
		embedder:    embedder,
		batchSize:   batchSize,
		concurrency: defaultConcurrency,
	}
}

// Len returns the number of indexed documents.
func (v *VectorIndex) Len() int {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return len(v.docs)
}

// Add embeds docs in concurrent batches and indexes them. Nothing is indexed
// when any batch fails.
func (v *VectorIndex) Add(ctx context.Context, docs ...Document) error {
	if len(docs) == 0 {
		return nil
	}

	vectors := make([][]float32, len(docs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(v.concurrency)

	for start := 0; start < len(docs); start += v.batchSize {
		end := min(start+v.batchSize, len(docs))

		g.Go(func() error {
			texts := make([]string, 0, end-start)
			for _, doc := range docs[start:end] {
				texts = append(texts, doc.Text())
			}

			embedded, err := v.embedder.EmbedDocuments(gctx, texts)
			if err != nil {
				return fmt.Errorf("embed batch %d-%d: %w", start, end, err)
			}
			if len(embedded) != len(texts) {
				return fmt.Errorf("embed batch %d-%d: got %d vectors for %d texts", start, end, len(embedded), len(texts))
			}
			copy(vectors[start:end], embedded)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return fmt.Errorf("knowledge: %w", err)
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	v.docs = append(v.docs, docs...)
	v.vectors = append(v.vectors, vectors...)
	return nil
}

// Search embeds query and returns the k most similar documents.
func (v *VectorIndex) Search(ctx context.Context, query string, k int) ([]Result, error) {
	if k <= 0 {
		k = defaultTopK
	}

	v.mu.RLock()
	defer v.mu.RUnlock()
	if len(v.docs) == 0 {
		return nil, nil
	}

	qv, err := v.embedder.EmbedQuery(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("knowledge: embed query: %w", err)
	}

	results := make([]Result, 0, len(v.docs))
	for i, vec := range v.vectors {
		similarity, err := CosineSimilarity(qv, vec)
		if err != nil {
			continue
		}
		results = append(results, Result{Document: v.docs[i], Score: similarity})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	if len(results) > k {
		results = results[:k]
	}

	return results, nil
}

var errDimensionMismatch = errors.New("vectors must have the same length")

// CosineSimilarity returns the cosine of the angle between a and b. Zero
// vectors have similarity 0.
func CosineSimilarity(a, b []float32) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("%w: %d != %d", errDimensionMismatch, len(a), len(b))
	}

	var dot, aMag, bMag float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		aMag += float64(a[i]) * float64(a[i])
		bMag += float64(b[i]) * float64(b[i])
	}

	if aMag == 0 || bMag == 0 {
		return 0, nil
	}

	return dot / (math.Sqrt(aMag) * math.Sqrt(bMag)), nil
}
