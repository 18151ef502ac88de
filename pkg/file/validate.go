package file

import (
	"path/filepath"
	"strings"

	"uav-detector/pkg/errors"
)

// Kind is the media class an upload was validated as.
type Kind string

const (
	KindImage Kind = "image"
	KindVideo Kind = "video"
)

var (
	imageExtensions = map[string]bool{"png": true, "jpg": true, "jpeg": true, "gif": true}
	videoExtensions = map[string]bool{"mp4": true, "avi": true, "mov": true, "wmv": true}

	// containers the inference sidecar is known to emit
	videoContainers = map[string]bool{"mp4": true, "avi": true, "mov": true, "wmv": true, "mkv": true, "webm": true}
)

// Classify validates a filename and returns its media kind.
func Classify(filename string) (Kind, error) {
	if filename == "" {
		return "", errors.ErrNoFileSelected()
	}

	ext := Extension(filename)
	if ext == "" {
		return "", errors.ErrNoExtension(filename)
	}

	switch {
	case imageExtensions[ext]:
		return KindImage, nil
	case videoExtensions[ext]:
		return KindVideo, nil
	default:
		return "", errors.ErrUnsupportedFormat(ext)
	}
}

// Extension returns the lower-cased extension without the leading dot,
// or "" when the filename has none.
func Extension(filename string) string {
	ext := filepath.Ext(filename)
	if ext == "" {
		return ""
	}
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

func IsImageFile(filename string) bool {
	return imageExtensions[Extension(filename)]
}

func IsVideoFile(filename string) bool {
	return videoExtensions[Extension(filename)]
}

// IsVideoContainer reports whether the filename carries a recognized video
// container extension. Broader than IsVideoFile: intermediate artifacts may
// come back in containers we do not accept as uploads.
func IsVideoContainer(filename string) bool {
	return videoContainers[Extension(filename)]
}
