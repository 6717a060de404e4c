package enricher

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"unicode/utf8"

	lru "github.com/hashicorp/golang-lru/v2"
)

// Common errors
var (
	ErrEmptyText           = errors.New("text cannot be empty")
	ErrNotConfigured       = errors.New("no enrichment provider configured")
	ErrProviderFailed      = errors.New("enrichment provider failed")
	ErrMalformedReply      = errors.New("malformed enrichment reply")
	ErrUnsupportedProvider = errors.New("unsupported enrichment provider")
)

// Limits applied to every provider reply. Oversized lists are trimmed,
// out-of-range input is truncated before the call.
const (
	MaxInputChars = 2000
	MaxTopics     = 5
	MaxEntities   = 10
)

// Enrichment is the semantic annotation produced for a chunk of text.
type Enrichment struct {
	Summary  string   `json:"summary"`
	Topics   []string `json:"topics"`
	Entities []string `json:"entities"`

	Provider string `json:"-"`
	Model    string `json:"-"`
	Hash     string `json:"-"` // content hash for caching
}

// Enricher is the optional semantic annotation capability. Implementations
// may be absent (the no-op provider) or fail per call; callers must treat
// both as a silent downgrade, never as a chunking failure.
type Enricher interface {
	// Enrich produces a short summary, topic list and named entities for
	// the given text.
	Enrich(ctx context.Context, text string) (*Enrichment, error)

	// Provider returns the provider name.
	Provider() string

	// Model returns the model name.
	Model() string

	// Close releases any resources held by the enricher.
	Close() error
}

// Cache provides in-memory LRU caching of enrichments by content hash.
type Cache struct {
	cache *lru.Cache[string, *Enrichment]
}

// NewCache creates an enrichment cache with LRU eviction.
func NewCache(maxLen int) *Cache {
	if maxLen <= 0 {
		maxLen = 4096
	}
	cache, err := lru.New[string, *Enrichment](maxLen)
	if err != nil {
		// Only reachable with a non-positive size, which we just excluded
		cache, _ = lru.New[string, *Enrichment](4096)
	}
	return &Cache{cache: cache}
}

// Get retrieves a deep copy of a cached enrichment, so caller mutations
// never pollute the cache.
func (c *Cache) Get(hash string) (*Enrichment, bool) {
	e, ok := c.cache.Get(hash)
	if !ok {
		return nil, false
	}
	cp := *e
	cp.Topics = append([]string(nil), e.Topics...)
	cp.Entities = append([]string(nil), e.Entities...)
	return &cp, true
}

// Set stores an enrichment with automatic LRU eviction.
func (c *Cache) Set(hash string, e *Enrichment) {
	c.cache.Add(hash, e)
}

// Size returns the current cache size.
func (c *Cache) Size() int {
	return c.cache.Len()
}

// ComputeHash computes the SHA-256 hash of text for cache keying.
func ComputeHash(text string) string {
	h := sha256.Sum256([]byte(text))
	return hex.EncodeToString(h[:])
}

// Truncate bounds the text sent to a provider. The cut point backs up to
// a rune start so the truncated text stays valid UTF-8.
func Truncate(text string) string {
	if len(text) <= MaxInputChars {
		return text
	}
	cut := MaxInputChars
	for cut > 0 && !utf8.RuneStart(text[cut]) {
		cut--
	}
	return text[:cut]
}

// clampReply trims oversized topic and entity lists in place.
func clampReply(e *Enrichment) *Enrichment {
	if len(e.Topics) > MaxTopics {
		e.Topics = e.Topics[:MaxTopics]
	}
	if len(e.Entities) > MaxEntities {
		e.Entities = e.Entities[:MaxEntities]
	}
	return e
}
