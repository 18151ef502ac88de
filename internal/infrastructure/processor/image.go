package processor

import (
	"fmt"
	"path/filepath"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
	"go.uber.org/zap"

	"uav-detector/internal/domain/entities"
)

// ImageAnnotator draws detection boxes onto a single frame and writes the
// annotated copy next to the pipeline's other intermediates. Annotation is
// deterministic: identical input and predictions produce identical output.
type ImageAnnotator struct {
	outDir string
	log    *zap.Logger
}

func NewImageAnnotator(outDir string, log *zap.Logger) *ImageAnnotator {
	return &ImageAnnotator{outDir: outDir, log: log}
}

// Annotate filters raw predictions, draws a box and "{label}: {conf}" text per
// kept detection, and writes the result as result_{source name}. The returned
// list is the detection output of the image path, not just what was drawn.
func (a *ImageAnnotator) Annotate(imagePath string, raw []entities.Detection) (string, []entities.Detection, error) {
	img, err := imaging.Open(imagePath)
	if err != nil {
		return "", nil, fmt.Errorf("could not open image: %w", err)
	}

	kept := entities.FilterForImage(raw)

	dc := gg.NewContextForImage(img)
	dc.SetLineWidth(2)
	for _, det := range kept {
		x := float64(det.Box.X1)
		y := float64(det.Box.Y1)
		w := float64(det.Box.X2 - det.Box.X1)
		h := float64(det.Box.Y2 - det.Box.Y1)

		dc.SetRGB255(220, 20, 60)
		dc.DrawRectangle(x, y, w, h)
		dc.Stroke()

		label := fmt.Sprintf("%s: %.2f", det.Label, det.Confidence)
		dc.DrawString(label, x, y-4)
	}

	outName := "result_" + filepath.Base(imagePath)
	outPath := filepath.Join(a.outDir, outName)
	if err := imaging.Save(dc.Image(), outPath); err != nil {
		return "", nil, fmt.Errorf("could not save annotated image: %w", err)
	}

	a.log.Info("image annotated",
		zap.String("source", imagePath),
		zap.Int("raw", len(raw)),
		zap.Int("kept", len(kept)),
	)
	return outPath, kept, nil
}
