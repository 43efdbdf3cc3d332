package serve

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"sync/atomic"

	"github.com/cockroachdb/errors"
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/codestub/codestub/internal/schema"
)

// templateCache memoizes generated templates by language and signature.
// Generation is deterministic, so a hit is always identical to a fresh
// template. A nil cache stores nothing.
type templateCache struct {
	entries *lru.Cache[string, string]
	size    int
	hits    atomic.Int64
	misses  atomic.Int64
}

// newTemplateCache returns nil when size is zero
func newTemplateCache(size int) (*templateCache, error) {
	if size <= 0 {
		return nil, nil
	}
	entries, err := lru.New[string, string](size)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create template cache")
	}
	return &templateCache{entries: entries, size: size}, nil
}

func cacheKey(language string, sig schema.FunctionSignature) string {
	h := sha256.New()
	h.Write([]byte(language))
	h.Write([]byte{0})
	// a signature of strings and slices always marshals
	data, _ := json.Marshal(sig)
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// Get returns the cached template for the pair
func (c *templateCache) Get(language string, sig schema.FunctionSignature) (string, bool) {
	if c == nil {
		return "", false
	}
	template, ok := c.entries.Get(cacheKey(language, sig))
	if ok {
		c.hits.Add(1)
	} else {
		c.misses.Add(1)
	}
	return template, ok
}

// Add stores a template
func (c *templateCache) Add(language string, sig schema.FunctionSignature, template string) {
	if c == nil {
		return
	}
	c.entries.Add(cacheKey(language, sig), template)
}

// CacheStats is the cache section of the stats endpoint
type CacheStats struct {
	Enabled  bool  `json:"enabled"`
	Entries  int   `json:"entries"`
	Capacity int   `json:"capacity"`
	Hits     int64 `json:"hits"`
	Misses   int64 `json:"misses"`
}

func (c *templateCache) Stats() CacheStats {
	if c == nil {
		return CacheStats{}
	}
	return CacheStats{
		Enabled:  true,
		Entries:  c.entries.Len(),
		Capacity: c.size,
		Hits:     c.hits.Load(),
		Misses:   c.misses.Load(),
	}
}
