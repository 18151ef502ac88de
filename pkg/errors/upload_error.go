package errors

import "fmt"

type UploadError struct {
	Code    string
	Message string
	Err     error
}

func (e *UploadError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *UploadError) Unwrap() error {
	return e.Err
}

var (
	ErrNoFilePart = func() *UploadError {
		return &UploadError{Code: "no_file_part", Message: "No file part"}
	}
	ErrNoFileSelected = func() *UploadError {
		return &UploadError{Code: "no_file_selected", Message: "No selected file"}
	}
	ErrNoExtension = func(filename string) *UploadError {
		return &UploadError{Code: "no_extension", Message: fmt.Sprintf("File %q has no extension", filename)}
	}
	ErrUnsupportedFormat = func(ext string) *UploadError {
		return &UploadError{Code: "unsupported_format", Message: fmt.Sprintf("Unsupported file format: %s. Supported formats: png, jpg, jpeg, gif, mp4, avi, mov, wmv", ext)}
	}
	ErrPayloadTooLarge = func() *UploadError {
		return &UploadError{Code: "payload_too_large", Message: "File too large"}
	}
	ErrModelUnavailable = func(err error) *UploadError {
		return &UploadError{Code: "model_unavailable", Message: "Detection model is not available", Err: err}
	}
	ErrArtifactNotFound = func(err error) *UploadError {
		return &UploadError{Code: "processed_artifact_not_found", Message: "Processed artifact not found", Err: err}
	}
	ErrArtifactWrite = func(err error) *UploadError {
		return &UploadError{Code: "artifact_write_failed", Message: "Processed artifact could not be written", Err: err}
	}
	ErrProcessing = func(err error) *UploadError {
		return &UploadError{Code: "processing_error", Message: "Error processing file", Err: err}
	}
)
