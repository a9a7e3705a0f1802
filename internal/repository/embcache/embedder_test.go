package embcache

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"go.uber.org/zap"

	"github.com/tourgether/tourgether/internal/domain"
	"github.com/tourgether/tourgether/internal/kv"
)

type fakeStore struct {
	data   map[string][]byte
	getErr error
	setErr error
}

func newFakeStore() *fakeStore {
	return &fakeStore{data: make(map[string][]byte)}
}

func (f *fakeStore) Get(_ context.Context, key string) ([]byte, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	v, ok := f.data[key]
	if !ok {
		return nil, kv.ErrKeyNotFound
	}
	return v, nil
}

func (f *fakeStore) Set(_ context.Context, key string, value []byte) error {
	if f.setErr != nil {
		return f.setErr
	}
	f.data[key] = value
	return nil
}

type countingEmbedder struct {
	calls int
	vec   []float32
	err   error
}

func (c *countingEmbedder) Embed(context.Context, string) (domain.EmbeddingResult, error) {
	c.calls++
	if c.err != nil {
		return domain.EmbeddingResult{}, c.err
	}
	return domain.EmbeddingResult{Embedding: c.vec, TotalTokens: 7}, nil
}

func TestCachedEmbedder(t *testing.T) {
	ctx := context.Background()

	t.Run("miss then hit", func(t *testing.T) {
		inner := &countingEmbedder{vec: []float32{0.1, -0.5, 2.25}}
		store := newFakeStore()
		c := New(inner, store, nil, zap.NewNop())

		first, err := c.Embed(ctx, "kyoto temples")
		if err != nil {
			t.Fatalf("first Embed: %v", err)
		}
		if inner.calls != 1 {
			t.Fatalf("inner calls = %d, want 1", inner.calls)
		}
		if first.TotalTokens != 7 {
			t.Errorf("miss TotalTokens = %d, want 7", first.TotalTokens)
		}

		second, err := c.Embed(ctx, "kyoto temples")
		if err != nil {
			t.Fatalf("second Embed: %v", err)
		}
		if inner.calls != 1 {
			t.Errorf("inner calls = %d, want 1 (hit should skip provider)", inner.calls)
		}
		if second.TotalTokens != 0 {
			t.Errorf("hit TotalTokens = %d, want 0", second.TotalTokens)
		}
		if len(second.Embedding) != len(first.Embedding) {
			t.Fatalf("vector lengths differ: %d vs %d", len(second.Embedding), len(first.Embedding))
		}
		for i := range first.Embedding {
			if first.Embedding[i] != second.Embedding[i] {
				t.Errorf("component %d: %v != %v", i, first.Embedding[i], second.Embedding[i])
			}
		}
	})

	t.Run("different texts use different keys", func(t *testing.T) {
		inner := &countingEmbedder{vec: []float32{1}}
		c := New(inner, newFakeStore(), nil, zap.NewNop())

		if _, err := c.Embed(ctx, "a"); err != nil {
			t.Fatalf("Embed a: %v", err)
		}
		if _, err := c.Embed(ctx, "b"); err != nil {
			t.Fatalf("Embed b: %v", err)
		}
		if inner.calls != 2 {
			t.Errorf("inner calls = %d, want 2", inner.calls)
		}
	})

	t.Run("cache read failure degrades to provider", func(t *testing.T) {
		inner := &countingEmbedder{vec: []float32{1, 2}}
		store := newFakeStore()
		store.getErr = fmt.Errorf("connection refused")
		c := New(inner, store, nil, zap.NewNop())

		res, err := c.Embed(ctx, "query")
		if err != nil {
			t.Fatalf("Embed: %v", err)
		}
		if inner.calls != 1 {
			t.Errorf("inner calls = %d, want 1", inner.calls)
		}
		if len(res.Embedding) != 2 {
			t.Errorf("embedding len = %d, want 2", len(res.Embedding))
		}
	})

	t.Run("cache write failure does not fail the request", func(t *testing.T) {
		inner := &countingEmbedder{vec: []float32{1}}
		store := newFakeStore()
		store.setErr = fmt.Errorf("read-only replica")
		c := New(inner, store, nil, zap.NewNop())

		if _, err := c.Embed(ctx, "query"); err != nil {
			t.Fatalf("Embed: %v", err)
		}
	})

	t.Run("corrupt cached data falls through to provider", func(t *testing.T) {
		inner := &countingEmbedder{vec: []float32{1, 2}}
		store := newFakeStore()
		c := New(inner, store, nil, zap.NewNop())

		// Seed the exact key with a payload that is not a float32 sequence.
		store.data[c.cacheKey("query")] = []byte("xyz")

		res, err := c.Embed(ctx, "query")
		if err != nil {
			t.Fatalf("Embed: %v", err)
		}
		if inner.calls != 1 {
			t.Errorf("inner calls = %d, want 1", inner.calls)
		}
		if len(res.Embedding) != 2 {
			t.Errorf("embedding len = %d, want 2", len(res.Embedding))
		}
	})

	t.Run("provider failure propagates", func(t *testing.T) {
		inner := &countingEmbedder{err: fmt.Errorf("quota: %w", domain.ErrEmbeddingProvider)}
		c := New(inner, newFakeStore(), nil, zap.NewNop())

		_, err := c.Embed(ctx, "query")
		if !errors.Is(err, domain.ErrEmbeddingProvider) {
			t.Errorf("err = %v, want ErrEmbeddingProvider", err)
		}
	})
}

func TestVectorRoundTrip(t *testing.T) {
	in := []float32{0, -1.5, 3.25, 1e-7}
	out, err := bytesToVector(vectorToCacheBytes(in))
	if err != nil {
		t.Fatalf("bytesToVector: %v", err)
	}
	if len(out) != len(in) {
		t.Fatalf("len = %d, want %d", len(out), len(in))
	}
	for i := range in {
		if in[i] != out[i] {
			t.Errorf("component %d: %v != %v", i, in[i], out[i])
		}
	}

	if _, err := bytesToVector([]byte{1, 2, 3}); err == nil {
		t.Error("expected error for truncated payload")
	}
}
