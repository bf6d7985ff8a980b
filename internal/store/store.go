// Package store provides collection/key access to the persisted registration
// records. Every operation absorbs the underlying store's errors into a
// boolean or absent result and logs the structured cause; callers never see
// the backend's error types. A Get therefore cannot distinguish "not found"
// from a transient backend failure — the log line carries the difference.
package store

import "context"

// Top-level collections
const (
	UsersCollection = "users"
	TeamsCollection = "teams"
)

// Store is the document store contract used by the handlers and the form
// importer. Documents are JSON-typed maps keyed by a string ID within a
// named collection.
type Store interface {
	// Get fetches a document by key. Absent keys and backend failures both
	// return (nil, false).
	Get(ctx context.Context, collection, id string) (map[string]any, bool)

	// Set creates or fully replaces a document. It never merges fields.
	Set(ctx context.Context, collection, id string, doc map[string]any) bool

	// Delete removes a document by key.
	Delete(ctx context.Context, collection, id string) bool

	// List returns every document in a collection keyed by ID. An empty
	// collection yields an empty map and true.
	List(ctx context.Context, collection string) (map[string]map[string]any, bool)
}
