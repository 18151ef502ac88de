package repositories

import "uav-detector/internal/domain/entities"

type ProcessingRepository interface {
	Create(record *entities.ProcessingRecord) error
	Update(record *entities.ProcessingRecord) error
	GetByID(id string) (*entities.ProcessingRecord, error)
	List(limit int) ([]*entities.ProcessingRecord, error)
}
