package datastore

// Store is a local table store that exports can be written to.
type Store interface {
	// Connect opens the underlying database.
	Connect() error

	// CreateTable runs a CREATE TABLE IF NOT EXISTS statement.
	CreateTable(schema string) error

	// BatchUpsert writes records into table, replacing rows that share a primary key.
	BatchUpsert(table string, records []map[string]any) error

	// Close releases the database.
	Close() error
}
