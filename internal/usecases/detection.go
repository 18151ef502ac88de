package usecases

import (
	"context"
	stderrors "errors"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"uav-detector/internal/domain/dto"
	"uav-detector/internal/domain/entities"
	"uav-detector/internal/domain/mapper"
	"uav-detector/internal/domain/repositories"
	"uav-detector/internal/infrastructure/metrics"
	"uav-detector/internal/infrastructure/processor"
	consts "uav-detector/pkg/constants"
	"uav-detector/pkg/errors"
	"uav-detector/pkg/file"
)

type DetectionService interface {
	ProcessUpload(ctx context.Context, fileHeader *multipart.FileHeader) (*dto.UploadResponse, error)
	ListRecords(limit int) ([]*entities.ProcessingRecord, error)
}

// detectionService runs the whole pipeline for one upload: validate, persist
// the upload under an opaque name, dispatch by media kind, store the artifact
// and record the outcome. Each request is processed synchronously; the
// detector handle is the only state shared between requests.
type detectionService struct {
	detector   repositories.Detector
	annotator  *processor.ImageAnnotator
	video      *processor.VideoPipeline
	storage    repositories.StorageStrategy
	records    repositories.ProcessingRepository
	uploadsDir string
	log        *zap.Logger
}

func NewDetectionService(
	detector repositories.Detector,
	annotator *processor.ImageAnnotator,
	video *processor.VideoPipeline,
	storage repositories.StorageStrategy,
	records repositories.ProcessingRepository,
	uploadsDir string,
	log *zap.Logger,
) DetectionService {
	return &detectionService{
		detector:   detector,
		annotator:  annotator,
		video:      video,
		storage:    storage,
		records:    records,
		uploadsDir: uploadsDir,
		log:        log,
	}
}

func (s *detectionService) ProcessUpload(ctx context.Context, fileHeader *multipart.FileHeader) (*dto.UploadResponse, error) {
	kind, err := file.Classify(fileHeader.Filename)
	if err != nil {
		return nil, err
	}

	storedName := file.MakeUniqueName(fileHeader.Filename)
	uploadPath := filepath.Join(s.uploadsDir, storedName)
	if err := s.saveUpload(fileHeader, uploadPath); err != nil {
		return nil, errors.ErrProcessing(err)
	}

	record := &entities.ProcessingRecord{
		ID:           uuid.NewString(),
		OriginalName: fileHeader.Filename,
		StoredName:   storedName,
		FileType:     string(kind),
		Status:       consts.StatusInProgress,
	}
	if err := s.records.Create(record); err != nil {
		s.log.Warn("could not persist processing record", zap.Error(err))
	}

	start := time.Now()
	var (
		resultRef  string
		detections interface{}
		count      int
	)
	switch kind {
	case file.KindImage:
		resultRef, detections, count, err = s.processImage(ctx, uploadPath)
	case file.KindVideo:
		resultRef, detections, count, err = s.processVideo(ctx, uploadPath)
	}

	if err != nil {
		s.failRecord(record, err)
		metrics.UploadsProcessedTotal.WithLabelValues(string(kind), consts.StatusFailed).Inc()
		return nil, asUploadError(err)
	}

	metrics.UploadsProcessedTotal.WithLabelValues(string(kind), consts.StatusCompleted).Inc()
	metrics.ProcessingDuration.WithLabelValues(string(kind)).Observe(time.Since(start).Seconds())
	metrics.DetectionsTotal.Add(float64(count))

	record.Status = consts.StatusCompleted
	record.ResultPath = resultRef
	record.DetectionCount = count
	if err := s.records.Update(record); err != nil {
		s.log.Warn("could not update processing record", zap.Error(err))
	}

	return &dto.UploadResponse{
		Success:      true,
		OriginalFile: fileHeader.Filename,
		ResultPath:   resultRef,
		Detections:   detections,
		FileType:     string(kind),
	}, nil
}

func (s *detectionService) processImage(ctx context.Context, uploadPath string) (string, interface{}, int, error) {
	raw, err := s.detector.DetectImage(ctx, uploadPath)
	if err != nil {
		return "", nil, 0, err
	}

	artifactPath, kept, err := s.annotator.Annotate(uploadPath, raw)
	if err != nil {
		return "", nil, 0, err
	}

	ref, err := s.storage.Save(ctx, artifactPath, filepath.Base(artifactPath))
	if err != nil {
		return "", nil, 0, errors.ErrArtifactWrite(err)
	}

	return ref, mapper.ToDetectionDTOs(kept), len(kept), nil
}

func (s *detectionService) processVideo(ctx context.Context, uploadPath string) (string, interface{}, int, error) {
	artifactPath, total, err := s.video.Process(ctx, uploadPath)
	if err != nil {
		return "", nil, 0, err
	}

	ref, err := s.storage.Save(ctx, artifactPath, filepath.Base(artifactPath))
	if err != nil {
		return "", nil, 0, errors.ErrArtifactWrite(err)
	}

	return ref, total, total, nil
}

func (s *detectionService) ListRecords(limit int) ([]*entities.ProcessingRecord, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	return s.records.List(limit)
}

// saveUpload writes the multipart payload under the generated name. The
// upload is kept on disk even when a later step fails.
func (s *detectionService) saveUpload(fileHeader *multipart.FileHeader, dst string) error {
	src, err := fileHeader.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return err
	}

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	_, err = io.Copy(out, src)
	return err
}

func (s *detectionService) failRecord(record *entities.ProcessingRecord, err error) {
	record.Status = consts.StatusFailed
	record.ErrorMessage = err.Error()
	if uerr := s.records.Update(record); uerr != nil {
		s.log.Warn("could not update failed record", zap.Error(uerr))
	}
	s.log.Error("processing failed",
		zap.String("record_id", record.ID),
		zap.String("file", record.OriginalName),
		zap.Error(err),
	)
}

func asUploadError(err error) error {
	var ue *errors.UploadError
	if stderrors.As(err, &ue) {
		return ue
	}
	return errors.ErrProcessing(err)
}
