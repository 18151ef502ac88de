package entities

import "time"

// ProcessingRecord is the persisted outcome of one upload.
type ProcessingRecord struct {
	ID             string    `gorm:"primaryKey" json:"id"`
	OriginalName   string    `json:"original_name"`
	StoredName     string    `json:"stored_name"`
	FileType       string    `json:"file_type"`
	ResultPath     string    `json:"result_path"`
	DetectionCount int       `json:"detection_count"`
	Status         string    `json:"status"`
	ErrorMessage   string    `json:"error_message,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func (ProcessingRecord) TableName() string {
	return "processing_records"
}
