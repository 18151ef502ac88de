package dto

// DetectionDTO is one detection as it appears on the wire.
// BBox is [x1, y1, x2, y2] in pixels.
type DetectionDTO struct {
	Label      string  `json:"label"`
	Confidence float64 `json:"confidence"`
	BBox       [4]int  `json:"bbox"`
}

// UploadResponse is the success payload of POST /upload. Detections holds a
// []DetectionDTO for images and a plain count for videos.
type UploadResponse struct {
	Success      bool        `json:"success"`
	OriginalFile string      `json:"original_file"`
	ResultPath   string      `json:"result_path"`
	Detections   interface{} `json:"detections"`
	FileType     string      `json:"file_type"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}
