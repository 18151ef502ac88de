package detector

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"uav-detector/internal/domain/entities"
	"uav-detector/internal/domain/repositories"
	"uav-detector/pkg/errors"
)

// HTTPDetector talks to the inference sidecar that hosts the pretrained UAV
// model. The sidecar shares the filesystem with this service: in video mode
// it writes its annotated output into {Project}/predict itself.
type HTTPDetector struct {
	baseURL   string
	client    *http.Client
	log       *zap.Logger
	available bool
}

type detectImageResponse struct {
	Detections []struct {
		Label      string  `json:"label"`
		Confidence float64 `json:"confidence"`
		BBox       [4]int  `json:"bbox"`
	} `json:"detections"`
}

type detectVideoRequest struct {
	Source    string  `json:"source"`
	Conf      float64 `json:"conf"`
	ImageSize int     `json:"imgsz"`
	Project   string  `json:"project"`
}

type detectVideoResponse struct {
	TotalDetections int `json:"total_detections"`
	Frames          int `json:"frames"`
}

// NewHTTPDetector probes the sidecar once at construction. A sidecar that is
// down or whose model failed to load leaves the detector unavailable; every
// later call then fails fast without touching the media.
func NewHTTPDetector(baseURL string, timeout time.Duration, log *zap.Logger) *HTTPDetector {
	d := &HTTPDetector{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
		log:     log,
	}
	d.available = d.ping()
	if !d.available {
		log.Warn("detection model unavailable at startup", zap.String("url", baseURL))
	}
	return d
}

func (d *HTTPDetector) ping() bool {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, d.baseURL+"/healthz", nil)
	if err != nil {
		return false
	}
	resp, err := d.client.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

func (d *HTTPDetector) Available() bool {
	return d.available
}

func (d *HTTPDetector) DetectImage(ctx context.Context, imagePath string) ([]entities.Detection, error) {
	if !d.available {
		return nil, errors.ErrModelUnavailable(fmt.Errorf("sidecar %s did not load a model", d.baseURL))
	}

	f, err := os.Open(imagePath)
	if err != nil {
		return nil, fmt.Errorf("could not open image: %w", err)
	}
	defer f.Close()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", filepath.Base(imagePath))
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(part, f); err != nil {
		return nil, err
	}
	if err := mw.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.baseURL+"/detect", &body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := d.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("inference call failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("inference returned %d: %s", resp.StatusCode, string(raw))
	}

	var parsed detectImageResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("could not decode inference response: %w", err)
	}

	detections := make([]entities.Detection, 0, len(parsed.Detections))
	for _, p := range parsed.Detections {
		detections = append(detections, entities.Detection{
			Label:      p.Label,
			Confidence: p.Confidence,
			Box:        entities.BoundingBox{X1: p.BBox[0], Y1: p.BBox[1], X2: p.BBox[2], Y2: p.BBox[3]},
		})
	}

	d.log.Debug("image inference done",
		zap.String("image", imagePath),
		zap.Int("raw_detections", len(detections)),
	)
	return detections, nil
}

func (d *HTTPDetector) DetectVideo(ctx context.Context, videoPath string, opts repositories.DetectVideoOptions) (*repositories.VideoDetectResult, error) {
	if !d.available {
		return nil, errors.ErrModelUnavailable(fmt.Errorf("sidecar %s did not load a model", d.baseURL))
	}

	absPath, err := filepath.Abs(videoPath)
	if err != nil {
		return nil, err
	}
	absProject, err := filepath.Abs(opts.Project)
	if err != nil {
		return nil, err
	}

	payload, err := json.Marshal(detectVideoRequest{
		Source:    absPath,
		Conf:      opts.Confidence,
		ImageSize: opts.ImageSize,
		Project:   absProject,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.baseURL+"/detect/video", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("video inference call failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("video inference returned %d: %s", resp.StatusCode, string(raw))
	}

	var parsed detectVideoResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("could not decode video inference response: %w", err)
	}

	d.log.Info("video inference done",
		zap.String("video", videoPath),
		zap.Int("frames", parsed.Frames),
		zap.Int("total_detections", parsed.TotalDetections),
	)
	return &repositories.VideoDetectResult{
		TotalDetections: parsed.TotalDetections,
		Frames:          parsed.Frames,
	}, nil
}
