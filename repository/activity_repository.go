package repository

import (
	"backend/entity"

	"gorm.io/gorm"
)

type ActivityRepository struct {
	DB *gorm.DB
}

func NewActivityRepository(db *gorm.DB) *ActivityRepository {
	return &ActivityRepository{DB: db}
}

func (r *ActivityRepository) Create(rec *entity.ActivityLog) error {
	return r.DB.Create(rec).Error
}

func (r *ActivityRepository) ListForEntity(entityType string, entityID uint, limit int) ([]entity.ActivityLog, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	var out []entity.ActivityLog
	err := r.DB.Where("entity_type = ? AND entity_id = ?", entityType, entityID).
		Order("created_at DESC").Limit(limit).
		Find(&out).Error
	return out, err
}
