package mapper

import (
	"uav-detector/internal/domain/dto"
	"uav-detector/internal/domain/entities"
)

func ToDetectionDTO(d entities.Detection) dto.DetectionDTO {
	return dto.DetectionDTO{
		Label:      d.Label,
		Confidence: d.Confidence,
		BBox:       [4]int{d.Box.X1, d.Box.Y1, d.Box.X2, d.Box.Y2},
	}
}

func ToDetectionDTOs(detections []entities.Detection) []dto.DetectionDTO {
	out := make([]dto.DetectionDTO, 0, len(detections))
	for _, d := range detections {
		out = append(out, ToDetectionDTO(d))
	}
	return out
}
