package repositories

import (
	"gorm.io/gorm"

	"uav-detector/internal/domain/entities"
	"uav-detector/internal/domain/repositories"
)

type processingRepository struct {
	db *gorm.DB
}

func NewProcessingRepository(db *gorm.DB) repositories.ProcessingRepository {
	return &processingRepository{db: db}
}

func (r *processingRepository) Create(record *entities.ProcessingRecord) error {
	return r.db.Create(record).Error
}

func (r *processingRepository) Update(record *entities.ProcessingRecord) error {
	return r.db.Save(record).Error
}

func (r *processingRepository) GetByID(id string) (*entities.ProcessingRecord, error) {
	var record entities.ProcessingRecord
	if err := r.db.First(&record, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *processingRepository) List(limit int) ([]*entities.ProcessingRecord, error) {
	var records []*entities.ProcessingRecord
	if err := r.db.Order("created_at DESC").Limit(limit).Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}
