package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemory_SetGet(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	ok := m.Set(ctx, UsersCollection, "ada", map[string]any{"name": "Ada"})
	require.True(t, ok)

	doc, found := m.Get(ctx, UsersCollection, "ada")
	require.True(t, found)
	assert.Equal(t, "Ada", doc["name"])
}

func TestMemory_GetAbsent(t *testing.T) {
	m := NewMemory()

	doc, found := m.Get(context.Background(), UsersCollection, "nobody")
	assert.False(t, found)
	assert.Nil(t, doc)
}

func TestMemory_SetReplacesWholeDocument(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	m.Set(ctx, UsersCollection, "ada", map[string]any{"name": "Ada", "age": 30})
	m.Set(ctx, UsersCollection, "ada", map[string]any{"name": "Ada Lovelace"})

	doc, found := m.Get(ctx, UsersCollection, "ada")
	require.True(t, found)
	assert.Equal(t, "Ada Lovelace", doc["name"])
	_, hasAge := doc["age"]
	assert.False(t, hasAge, "set replaces, it never merges")
}

func TestMemory_Delete(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	m.Set(ctx, UsersCollection, "ada", map[string]any{"name": "Ada"})
	require.True(t, m.Delete(ctx, UsersCollection, "ada"))

	_, found := m.Get(ctx, UsersCollection, "ada")
	assert.False(t, found)

	// Absent keys delete cleanly, like Firestore
	assert.True(t, m.Delete(ctx, UsersCollection, "ada"))
}

func TestMemory_List(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	docs, ok := m.List(ctx, UsersCollection)
	require.True(t, ok)
	assert.Empty(t, docs)

	m.Set(ctx, UsersCollection, "ada", map[string]any{"name": "Ada"})
	m.Set(ctx, UsersCollection, "grace", map[string]any{"name": "Grace"})
	m.Set(ctx, TeamsCollection, "alpha", map[string]any{"name": "Alpha"})

	docs, ok = m.List(ctx, UsersCollection)
	require.True(t, ok)
	assert.Len(t, docs, 2)
	assert.Contains(t, docs, "ada")
	assert.Contains(t, docs, "grace")
}

func TestMemory_ReturnedDocumentsDoNotAliasStore(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	m.Set(ctx, UsersCollection, "ada", map[string]any{"name": "Ada"})

	doc, _ := m.Get(ctx, UsersCollection, "ada")
	doc["name"] = "mutated"

	fresh, _ := m.Get(ctx, UsersCollection, "ada")
	assert.Equal(t, "Ada", fresh["name"])
}
