package repositories

import (
	"context"

	"uav-detector/internal/domain/entities"
)

// DetectVideoOptions configures a batch inference run over a full video.
type DetectVideoOptions struct {
	// Confidence is the threshold the adapter applies during inference.
	Confidence float64
	// ImageSize is the inference resolution on the longest side.
	ImageSize int
	// Project is the working directory root. The adapter writes its annotated
	// output into a "predict" subdirectory under it, with a naming convention
	// this service does not control.
	Project string
}

type VideoDetectResult struct {
	// TotalDetections is the raw sum across all frames, unfiltered.
	TotalDetections int
	Frames          int
}

// Detector is the pretrained model the pipeline delegates to. The handle is
// shared by all requests and must be safe for concurrent use. When the model
// failed to load at startup, every call fails fast with a model_unavailable
// error and no processing is attempted.
type Detector interface {
	Available() bool
	DetectImage(ctx context.Context, imagePath string) ([]entities.Detection, error)
	DetectVideo(ctx context.Context, videoPath string, opts DetectVideoOptions) (*VideoDetectResult, error)
}
