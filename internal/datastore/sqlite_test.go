package datastore

import (
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *SQLiteStore {
	t.Helper()

	store := NewSQLiteStore(filepath.Join(t.TempDir(), "favorites.db"))
	if err := store.Connect(); err != nil {
		t.Fatalf("failed to connect: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	if err := store.CreateTable(FavoritesSchema); err != nil {
		t.Fatalf("failed to create table: %v", err)
	}
	return store
}

func TestSQLiteStore_UpsertFavorites(t *testing.T) {
	store := openTestStore(t)

	records := []map[string]any{
		{"title": "Dune", "author": "Frank Herbert", "rating": 4.5},
		{"title": "Emma", "author": "Jane Austen", "rating": 4.0},
	}
	if err := store.BatchUpsert(FavoritesTable, records); err != nil {
		t.Fatalf("failed to upsert: %v", err)
	}

	// Re-exporting the same title replaces the row.
	update := []map[string]any{{"title": "Dune", "author": "F. Herbert", "rating": 4.6}}
	if err := store.BatchUpsert(FavoritesTable, update); err != nil {
		t.Fatalf("failed to upsert again: %v", err)
	}

	count, err := store.Count(FavoritesTable)
	if err != nil {
		t.Fatalf("failed to count: %v", err)
	}
	if count != 2 {
		t.Errorf("expected 2 rows, got %d", count)
	}

	var author string
	if err := store.db.QueryRow("SELECT author FROM favorites WHERE title = ?", "Dune").Scan(&author); err != nil {
		t.Fatalf("failed to query: %v", err)
	}
	if author != "F. Herbert" {
		t.Errorf("author = %q, want %q", author, "F. Herbert")
	}
}

func TestSQLiteStore_EmptyBatchIsNoop(t *testing.T) {
	store := openTestStore(t)

	if err := store.BatchUpsert(FavoritesTable, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestSQLiteStore_CloseWithoutConnect(t *testing.T) {
	if err := NewSQLiteStore("unused.db").Close(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestSQLiteStore_ImplementsStore(t *testing.T) {
	var _ Store = NewSQLiteStore("unused.db")
}
