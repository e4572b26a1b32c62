package datastore

// FavoritesTable holds exported favorite books, one row per title.
const FavoritesTable = "favorites"

// FavoritesSchema creates FavoritesTable. Title is the key because favorites
// are deduplicated by title.
const FavoritesSchema = `CREATE TABLE IF NOT EXISTS favorites (
	title TEXT PRIMARY KEY,
	id TEXT,
	author TEXT,
	description TEXT,
	rating REAL,
	genre TEXT,
	year TEXT,
	image_url TEXT,
	isbn TEXT,
	publisher TEXT,
	language TEXT,
	pages INTEGER,
	price REAL,
	exported_at TEXT
)`
