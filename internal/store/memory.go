package store

import (
	"context"
	"sync"
)

// Memory implements Store with an in-process map. It backs tests and the
// credential-free development mode; nothing survives a restart.
type Memory struct {
	mu          sync.RWMutex
	collections map[string]map[string]map[string]any
}

// NewMemory creates an empty in-memory store
func NewMemory() *Memory {
	return &Memory{collections: make(map[string]map[string]map[string]any)}
}

// Get fetches a document by key
func (m *Memory) Get(_ context.Context, collection, id string) (map[string]any, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	doc, ok := m.collections[collection][id]
	if !ok {
		return nil, false
	}
	return cloneDoc(doc), true
}

// Set creates or fully replaces a document
func (m *Memory) Set(_ context.Context, collection, id string, doc map[string]any) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	col, ok := m.collections[collection]
	if !ok {
		col = make(map[string]map[string]any)
		m.collections[collection] = col
	}
	col[id] = cloneDoc(doc)
	return true
}

// Delete removes a document by key. Deleting an absent key succeeds, matching
// Firestore's delete semantics.
func (m *Memory) Delete(_ context.Context, collection, id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.collections[collection], id)
	return true
}

// List returns every document in a collection keyed by ID
func (m *Memory) List(_ context.Context, collection string) (map[string]map[string]any, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	docs := make(map[string]map[string]any, len(m.collections[collection]))
	for id, doc := range m.collections[collection] {
		docs[id] = cloneDoc(doc)
	}
	return docs, true
}

// cloneDoc copies the top level of a document so callers and the store never
// alias the same map
func cloneDoc(doc map[string]any) map[string]any {
	out := make(map[string]any, len(doc))
	for k, v := range doc {
		out[k] = v
	}
	return out
}
