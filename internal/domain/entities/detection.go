package entities

import "strings"

// BoundingBox is an axis-aligned box in absolute pixel coordinates,
// X1 < X2 and Y1 < Y2.
type BoundingBox struct {
	X1 int `json:"x1"`
	Y1 int `json:"y1"`
	X2 int `json:"x2"`
	Y2 int `json:"y2"`
}

// Detection is one recognized object instance as reported by the model.
type Detection struct {
	Label      string      `json:"label"`
	Confidence float64     `json:"confidence"`
	Box        BoundingBox `json:"box"`
}

// ImageConfidenceThreshold is the cutoff applied when annotating single
// frames. Video inference filters at VideoConfidenceThreshold inside the
// adapter instead; the raw per-frame counts are reported unfiltered. The two
// paths are intentionally asymmetric, see DESIGN.md.
const (
	ImageConfidenceThreshold = 0.5
	VideoConfidenceThreshold = 0.25
)

var targetLabels = map[string]bool{"drone": true, "uav": true}

// IsTargetLabel reports whether label names one of the classes the model was
// trained for, case-insensitive.
func IsTargetLabel(label string) bool {
	return targetLabels[strings.ToLower(label)]
}

// KeepForImage is the filter policy for the image path: a detection is kept
// when its label is a target class or its confidence clears the threshold.
func (d Detection) KeepForImage() bool {
	return IsTargetLabel(d.Label) || d.Confidence > ImageConfidenceThreshold
}

// FilterForImage applies KeepForImage to a prediction list. The same filtered
// list is used both for drawing and for the reported detections, so counting
// and rendering can never disagree.
func FilterForImage(detections []Detection) []Detection {
	kept := make([]Detection, 0, len(detections))
	for _, d := range detections {
		if d.KeepForImage() {
			kept = append(kept, d)
		}
	}
	return kept
}
