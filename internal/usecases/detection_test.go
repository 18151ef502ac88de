package usecases

import (
	"bytes"
	"context"
	stderrors "errors"
	"fmt"
	"image/color"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"uav-detector/internal/domain/dto"
	"uav-detector/internal/domain/entities"
	"uav-detector/internal/domain/repositories"
	"uav-detector/internal/infrastructure/processor"
	"uav-detector/internal/infrastructure/storage"
	consts "uav-detector/pkg/constants"
	"uav-detector/pkg/errors"
)

type fakeDetector struct {
	available  bool
	detections []entities.Detection
	videoTotal int
	onVideo    func(opts repositories.DetectVideoOptions) error
}

func (f *fakeDetector) Available() bool { return f.available }

func (f *fakeDetector) DetectImage(_ context.Context, path string) ([]entities.Detection, error) {
	if !f.available {
		return nil, errors.ErrModelUnavailable(fmt.Errorf("model not loaded"))
	}
	return f.detections, nil
}

func (f *fakeDetector) DetectVideo(_ context.Context, _ string, opts repositories.DetectVideoOptions) (*repositories.VideoDetectResult, error) {
	if !f.available {
		return nil, errors.ErrModelUnavailable(fmt.Errorf("model not loaded"))
	}
	if f.onVideo != nil {
		if err := f.onVideo(opts); err != nil {
			return nil, err
		}
	}
	return &repositories.VideoDetectResult{TotalDetections: f.videoTotal}, nil
}

type memoryRecords struct {
	records map[string]*entities.ProcessingRecord
}

func newMemoryRecords() *memoryRecords {
	return &memoryRecords{records: make(map[string]*entities.ProcessingRecord)}
}

func (m *memoryRecords) Create(r *entities.ProcessingRecord) error {
	m.records[r.ID] = r
	return nil
}

func (m *memoryRecords) Update(r *entities.ProcessingRecord) error {
	m.records[r.ID] = r
	return nil
}

func (m *memoryRecords) GetByID(id string) (*entities.ProcessingRecord, error) {
	r, ok := m.records[id]
	if !ok {
		return nil, fmt.Errorf("not found")
	}
	return r, nil
}

func (m *memoryRecords) List(limit int) ([]*entities.ProcessingRecord, error) {
	out := make([]*entities.ProcessingRecord, 0, len(m.records))
	for _, r := range m.records {
		out = append(out, r)
	}
	return out, nil
}

func (m *memoryRecords) single(t *testing.T) *entities.ProcessingRecord {
	t.Helper()
	require.Len(t, m.records, 1)
	for _, r := range m.records {
		return r
	}
	return nil
}

type testEnv struct {
	service    DetectionService
	records    *memoryRecords
	uploadsDir string
	workDir    string
	resultsDir string
}

func newTestEnv(t *testing.T, det repositories.Detector) *testEnv {
	t.Helper()
	uploadsDir := t.TempDir()
	workDir := t.TempDir()
	resultsDir := t.TempDir()
	records := newMemoryRecords()

	service := NewDetectionService(
		det,
		processor.NewImageAnnotator(workDir, zap.NewNop()),
		processor.NewVideoPipeline(det, workDir, zap.NewNop()),
		storage.NewLocalStorage(resultsDir),
		records,
		uploadsDir,
		zap.NewNop(),
	)
	return &testEnv{
		service:    service,
		records:    records,
		uploadsDir: uploadsDir,
		workDir:    workDir,
		resultsDir: resultsDir,
	}
}

func makeFileHeader(t *testing.T, filename string, content []byte) *multipart.FileHeader {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	form, err := multipart.NewReader(&buf, mw.Boundary()).ReadForm(int64(len(content)) + 1<<20)
	require.NoError(t, err)
	t.Cleanup(func() { _ = form.RemoveAll() })

	files := form.File["file"]
	require.Len(t, files, 1)
	return files[0]
}

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	img := imaging.New(w, h, color.NRGBA{R: 10, G: 20, B: 30, A: 255})
	require.NoError(t, imaging.Encode(&buf, img, imaging.PNG))
	return buf.Bytes()
}

func TestProcessUploadImage(t *testing.T) {
	det := &fakeDetector{
		available: true,
		detections: []entities.Detection{
			{Label: "drone", Confidence: 0.9, Box: entities.BoundingBox{X1: 10, Y1: 10, X2: 50, Y2: 50}},
		},
	}
	env := newTestEnv(t, det)

	resp, err := env.service.ProcessUpload(context.Background(), makeFileHeader(t, "drone.jpg", pngBytes(t, 100, 80)))
	require.NoError(t, err)

	assert.True(t, resp.Success)
	assert.Equal(t, "drone.jpg", resp.OriginalFile)
	assert.Equal(t, "image", resp.FileType)
	assert.True(t, strings.HasPrefix(resp.ResultPath, "/results/result_"))

	detections, ok := resp.Detections.([]dto.DetectionDTO)
	require.True(t, ok)
	require.Len(t, detections, 1)
	assert.Equal(t, dto.DetectionDTO{
		Label:      "drone",
		Confidence: 0.9,
		BBox:       [4]int{10, 10, 50, 50},
	}, detections[0])

	record := env.records.single(t)
	assert.Equal(t, consts.StatusCompleted, record.Status)
	assert.Equal(t, 1, record.DetectionCount)
	assert.Equal(t, resp.ResultPath, record.ResultPath)
}

func TestProcessUploadImageConcurrentNamesUnique(t *testing.T) {
	det := &fakeDetector{available: true}
	env := newTestEnv(t, det)

	content := pngBytes(t, 20, 20)
	respA, err := env.service.ProcessUpload(context.Background(), makeFileHeader(t, "same.png", content))
	require.NoError(t, err)
	respB, err := env.service.ProcessUpload(context.Background(), makeFileHeader(t, "same.png", content))
	require.NoError(t, err)

	assert.NotEqual(t, respA.ResultPath, respB.ResultPath)

	uploads, err := os.ReadDir(env.uploadsDir)
	require.NoError(t, err)
	assert.Len(t, uploads, 2)
}

func TestProcessUploadVideo(t *testing.T) {
	var env *testEnv
	det := &fakeDetector{available: true, videoTotal: 5}
	det.onVideo = func(opts repositories.DetectVideoOptions) error {
		predictDir := filepath.Join(opts.Project, "predict")
		if err := os.MkdirAll(predictDir, 0755); err != nil {
			return err
		}
		// the sidecar names its output after the stored upload
		matches, err := os.ReadDir(env.uploadsDir)
		if err != nil {
			return err
		}
		base := strings.TrimSuffix(matches[0].Name(), filepath.Ext(matches[0].Name()))
		return os.WriteFile(filepath.Join(predictDir, base+"_out.mp4"), []byte("video"), 0644)
	}
	env = newTestEnv(t, det)

	resp, err := env.service.ProcessUpload(context.Background(), makeFileHeader(t, "clip.avi", []byte("avi-bytes")))
	require.NoError(t, err)

	assert.Equal(t, "video", resp.FileType)
	assert.True(t, strings.HasSuffix(resp.ResultPath, ".mp4"))
	assert.Equal(t, 5, resp.Detections)

	record := env.records.single(t)
	assert.Equal(t, consts.StatusCompleted, record.Status)
	assert.Equal(t, 5, record.DetectionCount)
}

func TestProcessUploadUnsupportedFormat(t *testing.T) {
	env := newTestEnv(t, &fakeDetector{available: true})

	_, err := env.service.ProcessUpload(context.Background(), makeFileHeader(t, "document.pdf", []byte("%PDF")))
	var ue *errors.UploadError
	require.True(t, stderrors.As(err, &ue))
	assert.Equal(t, "unsupported_format", ue.Code)

	// validation failures must leave no trace on disk
	uploads, err2 := os.ReadDir(env.uploadsDir)
	require.NoError(t, err2)
	assert.Empty(t, uploads)
	assert.Empty(t, env.records.records)
}

func TestProcessUploadModelUnavailable(t *testing.T) {
	env := newTestEnv(t, &fakeDetector{available: false})

	_, err := env.service.ProcessUpload(context.Background(), makeFileHeader(t, "drone.jpg", pngBytes(t, 10, 10)))
	var ue *errors.UploadError
	require.True(t, stderrors.As(err, &ue))
	assert.Equal(t, "model_unavailable", ue.Code)

	// upload was already persisted, record marks the failure
	record := env.records.single(t)
	assert.Equal(t, consts.StatusFailed, record.Status)
	assert.NotEmpty(t, record.ErrorMessage)

	uploads, err2 := os.ReadDir(env.uploadsDir)
	require.NoError(t, err2)
	assert.Len(t, uploads, 1)
}

func TestProcessUploadVideoArtifactMissing(t *testing.T) {
	// sidecar reports success but never writes its artifact
	env := newTestEnv(t, &fakeDetector{available: true, videoTotal: 2})

	_, err := env.service.ProcessUpload(context.Background(), makeFileHeader(t, "clip.mp4", []byte("bytes")))
	var ue *errors.UploadError
	require.True(t, stderrors.As(err, &ue))
	assert.Equal(t, "processed_artifact_not_found", ue.Code)
}

func TestListRecordsLimitClamped(t *testing.T) {
	env := newTestEnv(t, &fakeDetector{available: true})
	_, err := env.service.ListRecords(-3)
	require.NoError(t, err)
}
