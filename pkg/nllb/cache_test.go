package nllb

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func testKey() Key {
	return Key{Tier: TierSmall, Src: "fra_Latn", Tgt: "eng_Latn"}
}

func TestCache_ConcurrentFirstAcquire_BuildsOnce(t *testing.T) {
	req := require.New(t)

	var builds int32
	cache := NewCacheWithBuilder(func(key Key) (*Pipeline, error) {
		atomic.AddInt32(&builds, 1)
		time.Sleep(10 * time.Millisecond) // widen the race window
		return &Pipeline{model: "m", src: key.Src, tgt: key.Tgt}, nil
	})

	const n = 32
	results := make([]*Pipeline, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			p, err := cache.Acquire(testKey())
			req.NoError(err)
			results[i] = p
		}(i)
	}
	wg.Wait()

	req.EqualValues(1, atomic.LoadInt32(&builds))
	for _, p := range results {
		req.Same(results[0], p)
	}
}

func TestCache_ConstructionFailure_IsRetryable(t *testing.T) {
	req := require.New(t)

	var builds int32
	cache := NewCacheWithBuilder(func(key Key) (*Pipeline, error) {
		if atomic.AddInt32(&builds, 1) == 1 {
			return nil, fmt.Errorf("weights unavailable")
		}
		return &Pipeline{model: "m"}, nil
	})

	_, err := cache.Acquire(testKey())
	req.Error(err)
	var cerr ConstructionError
	req.ErrorAs(err, &cerr)
	req.Equal(testKey(), cerr.Key)
	req.Zero(cache.Len(), "failed construction must not stay cached")

	p, err := cache.Acquire(testKey())
	req.NoError(err)
	req.NotNil(p)
	req.EqualValues(2, atomic.LoadInt32(&builds))
}

func TestCache_DistinctKeys_BuildConcurrently(t *testing.T) {
	req := require.New(t)

	started := make(chan Key, 2)
	release := make(chan struct{})
	cache := NewCacheWithBuilder(func(key Key) (*Pipeline, error) {
		started <- key
		<-release
		return &Pipeline{model: "m"}, nil
	})

	k1 := Key{Tier: TierSmall, Src: "fra_Latn", Tgt: "eng_Latn"}
	k2 := Key{Tier: TierSmall, Src: "deu_Latn", Tgt: "eng_Latn"}

	var wg sync.WaitGroup
	for _, k := range []Key{k1, k2} {
		wg.Add(1)
		go func(k Key) {
			defer wg.Done()
			_, err := cache.Acquire(k)
			req.NoError(err)
		}(k)
	}

	// Both builders must be in flight at the same time; a coarse lock
	// would serialize them and hang this receive.
	for i := 0; i < 2; i++ {
		select {
		case <-started:
		case <-time.After(2 * time.Second):
			t.Fatal("builders for distinct keys blocked each other")
		}
	}
	close(release)
	wg.Wait()
}

func TestCache_DefaultBuilder_RejectsLowSupportPairs(t *testing.T) {
	req := require.New(t)
	cache := NewCache(Config{BaseURL: "http://unused"})

	_, err := cache.Acquire(Key{Tier: TierSmall, Src: "tcy_Knda", Tgt: "eng_Latn"})
	req.Error(err)
	req.Zero(cache.Len())
}

func TestPipeline_Translate(t *testing.T) {
	req := require.New(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		req.Equal("/models/facebook/nllb-200-distilled-600M", r.URL.Path)
		var body inferenceRequest
		req.NoError(json.NewDecoder(r.Body).Decode(&body))
		req.Equal("fra_Latn", body.Parameters.SrcLang)
		req.Equal("eng_Latn", body.Parameters.TgtLang)
		req.True(body.Options.WaitForModel)
		fmt.Fprint(w, `[{"translation_text":"Hello"}]`)
	}))
	defer srv.Close()

	cache := NewCache(Config{BaseURL: srv.URL})
	p, err := cache.Acquire(testKey())
	req.NoError(err)

	out, err := p.Translate(context.Background(), "Bonjour")
	req.NoError(err)
	req.Equal("Hello", out)
}

func TestPipeline_Translate_APIError(t *testing.T) {
	req := require.New(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"error":"model overloaded"}`)
	}))
	defer srv.Close()

	cache := NewCache(Config{BaseURL: srv.URL})
	p, err := cache.Acquire(testKey())
	req.NoError(err)

	_, err = p.Translate(context.Background(), "Bonjour")
	req.ErrorContains(err, "model overloaded")
}
