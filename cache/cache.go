// Package cache provides an in-memory store for parsed annotation sets.
//
// The store honors each document's declared CacheableFlag: a document
// that declares itself non-cacheable is never retained, so consumers
// re-parse it on every use. There is no disk persistence.
package cache

import (
	"sync"
	"time"

	"github.com/biocontext/belanno/annoset"
)

// Entry is one cached annotation set.
type Entry struct {
	// Keyword is the vocabulary identifier the entry is stored under.
	Keyword string

	// Document is the parsed annotation set.
	Document *annoset.Document

	// StoredAt is when the entry was admitted.
	StoredAt time.Time
}

// Store is a concurrency-safe keyword-indexed cache of parsed
// annotation sets.
type Store struct {
	mu      sync.RWMutex
	entries map[string]Entry
	now     func() time.Time
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		entries: make(map[string]Entry),
		now:     time.Now,
	}
}

// Put admits a document if it declares itself cacheable. It returns
// true when the document was stored, false when its CacheableFlag
// forbids retention. A later Put under the same keyword replaces the
// earlier entry.
func (s *Store) Put(doc *annoset.Document) bool {
	if doc == nil || !doc.Processing.Cacheable {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[doc.Definition.Keyword] = Entry{
		Keyword:  doc.Definition.Keyword,
		Document: doc,
		StoredAt: s.now(),
	}
	return true
}

// Get returns the cached document for a keyword, if any.
func (s *Store) Get(keyword string) (*annoset.Document, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entry, ok := s.entries[keyword]
	if !ok {
		return nil, false
	}
	return entry.Document, true
}

// Remove evicts the entry for a keyword.
func (s *Store) Remove(keyword string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, keyword)
}

// Keywords lists the cached vocabulary keywords.
func (s *Store) Keywords() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	keys := make([]string, 0, len(s.entries))
	for k := range s.entries {
		keys = append(keys, k)
	}
	return keys
}

// Len returns the number of cached entries.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}
