package model

import "time"

// ImportStatus is the terminal state of an import batch.
type ImportStatus string

const (
	ImportStatusRunning ImportStatus = "running"
	ImportStatusSuccess ImportStatus = "success"
	ImportStatusPartial ImportStatus = "partial"
	ImportStatusFailed  ImportStatus = "failed"
)

// ImportBatch records one ingestion run. It is created when the run starts
// and finalized exactly once; never mutated afterward.
type ImportBatch struct {
	ID          string       `json:"id"`
	BatchName   string       `json:"batch_name"`
	SourceFiles []string     `json:"source_files"`
	Status      ImportStatus `json:"import_status"`

	TotalFilesProcessed   int `json:"total_files_processed"`
	TotalRecordsProcessed int `json:"total_records_processed"`
	RecordsCreated        int `json:"records_created"`
	RecordsUpdated        int `json:"records_updated"`
	RecordsSkipped        int `json:"records_skipped"`
	ErrorsEncountered     int `json:"errors_encountered"`

	ErrorLog []string `json:"error_log,omitempty"`

	StartedAt   time.Time  `json:"started_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// ImportResult holds the final counters written when a batch is finalized.
type ImportResult struct {
	Status                ImportStatus `json:"import_status"`
	TotalFilesProcessed   int          `json:"total_files_processed"`
	TotalRecordsProcessed int          `json:"total_records_processed"`
	RecordsCreated        int          `json:"records_created"`
	RecordsUpdated        int          `json:"records_updated"`
	RecordsSkipped        int          `json:"records_skipped"`
	ErrorLog              []string     `json:"error_log,omitempty"`
}
