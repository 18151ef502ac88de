package migrations

import (
	"database/sql"
	"fmt"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigration(upCreateProcessingRecords, downCreateProcessingRecords)
}

func upCreateProcessingRecords(tx *sql.Tx) error {
	createProcessingRecords := `
	CREATE TABLE processing_records (
		id UUID PRIMARY KEY,
		original_name VARCHAR(255) NOT NULL,
		stored_name VARCHAR(255) NOT NULL,
		file_type VARCHAR(20) NOT NULL,
		result_path VARCHAR(500),
		detection_count INTEGER NOT NULL DEFAULT 0,
		status VARCHAR(20) NOT NULL,
		error_message VARCHAR(500),
		created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
		updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	);
	`
	if _, err := tx.Exec(createProcessingRecords); err != nil {
		return fmt.Errorf("could not create processing_records table: %w", err)
	}

	createIndex := `CREATE INDEX idx_processing_records_created_at ON processing_records (created_at DESC);`
	if _, err := tx.Exec(createIndex); err != nil {
		return fmt.Errorf("could not create index: %w", err)
	}

	return nil
}

func downCreateProcessingRecords(tx *sql.Tx) error {
	if _, err := tx.Exec("DROP TABLE IF EXISTS processing_records;"); err != nil {
		return fmt.Errorf("could not drop processing_records: %w", err)
	}
	return nil
}
