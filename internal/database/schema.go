package database

import "context"

// storage_entries holds one row per storage key. value is the whole
// serialized collection, exactly what a browser kept in local storage.
const storageEntriesSQL = `CREATE TABLE IF NOT EXISTS storage_entries (
    storage_key VARCHAR(191) PRIMARY KEY,
    value LONGTEXT NOT NULL,
    updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`

// SetupSchema creates the storage tables
func (db *DB) SetupSchema(ctx context.Context) error {
	_, err := db.ExecContext(ctx, storageEntriesSQL)
	return err
}

// CleanupData removes every stored key (but keeps schema)
func (db *DB) CleanupData(ctx context.Context) error {
	_, err := db.ExecContext(ctx, "DELETE FROM storage_entries")
	return err
}

// DropSchema removes the storage tables
func (db *DB) DropSchema(ctx context.Context) error {
	_, err := db.ExecContext(ctx, "DROP TABLE IF EXISTS storage_entries")
	return err
}
