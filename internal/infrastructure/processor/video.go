package processor

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"uav-detector/internal/domain/entities"
	"uav-detector/internal/domain/repositories"
	"uav-detector/internal/pkg/fileutils"
	"uav-detector/pkg/errors"
	"uav-detector/pkg/file"
)

const (
	videoImageSize  = 416
	predictDirName  = "predict"
	targetExtension = ".mp4"
)

// VideoPipeline runs batch inference over a full video, relocates the
// adapter's intermediate artifact and transcodes it to a browser-compatible
// container. The adapter writes into {workDir}/predict under its own naming
// convention, so the intermediate is found by scanning that directory for the
// source base name.
type VideoPipeline struct {
	detector repositories.Detector
	workDir  string
	log      *zap.Logger
}

func NewVideoPipeline(detector repositories.Detector, workDir string, log *zap.Logger) *VideoPipeline {
	return &VideoPipeline{detector: detector, workDir: workDir, log: log}
}

// Process returns the path of the final {base}_processed.mp4 artifact and the
// total detection count summed over all frames. The count is raw and
// unfiltered, unlike the image path.
func (p *VideoPipeline) Process(ctx context.Context, videoPath string) (string, int, error) {
	base := strings.TrimSuffix(filepath.Base(videoPath), filepath.Ext(videoPath))

	result, err := p.detector.DetectVideo(ctx, videoPath, repositories.DetectVideoOptions{
		Confidence: entities.VideoConfidenceThreshold,
		ImageSize:  videoImageSize,
		Project:    p.workDir,
	})
	if err != nil {
		return "", 0, err
	}

	intermediate, err := p.LocateArtifact(base)
	if err != nil {
		return "", 0, err
	}

	target := filepath.Join(p.workDir, base+"_processed"+targetExtension)
	if strings.EqualFold(filepath.Ext(intermediate), targetExtension) {
		if err := fileutils.CopyFile(intermediate, target); err != nil {
			return "", 0, errors.ErrArtifactWrite(err)
		}
	} else {
		if err := p.transcode(ctx, intermediate, target); err != nil {
			return "", 0, errors.ErrProcessing(err)
		}
	}

	if err := os.Chmod(target, 0644); err != nil {
		p.log.Warn("could not set artifact permissions", zap.String("path", target), zap.Error(err))
	}

	if !fileutils.FileExists(target) {
		err := fmt.Errorf("final artifact %s missing after transcode", target)
		p.log.Error("artifact verification failed", zap.Error(err))
		return "", 0, errors.ErrArtifactWrite(err)
	}

	p.log.Info("video processed",
		zap.String("source", videoPath),
		zap.String("artifact", target),
		zap.Int("total_detections", result.TotalDetections),
	)
	return target, result.TotalDetections, nil
}

// LocateArtifact scans the predict subdirectory for a video file whose name
// contains the source base name.
func (p *VideoPipeline) LocateArtifact(base string) (string, error) {
	predictDir := filepath.Join(p.workDir, predictDirName)
	entries, err := os.ReadDir(predictDir)
	if err != nil {
		return "", errors.ErrArtifactNotFound(fmt.Errorf("working directory %s: %w", predictDir, err))
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.Contains(name, base) && file.IsVideoContainer(name) {
			return filepath.Join(predictDir, name), nil
		}
	}
	return "", errors.ErrArtifactNotFound(fmt.Errorf("no artifact matching %q in %s", base, predictDir))
}

// transcode re-encodes src into the target container with a browser-compatible
// codec. Frame rate and dimensions are left untouched.
func (p *VideoPipeline) transcode(ctx context.Context, src, dst string) error {
	cmd := exec.CommandContext(ctx, "ffmpeg",
		"-i", src,
		"-c:v", "libx264",
		"-pix_fmt", "yuv420p",
		"-y",
		dst,
	)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("ffmpeg error: %w, output: %s", err, string(output))
	}
	return nil
}
