package repository

import (
	"examgen-backend/internal/model"

	"gorm.io/gorm"
)

type ResultRepository interface {
	Create(result *model.ExamResult) error
	FindAllByUser(userID string) ([]model.ExamResult, error)
	FindByIDAndUser(resultID, userID string) (*model.ExamResult, error)
}

type resultRepository struct {
	db *gorm.DB
}

func NewResultRepository(db *gorm.DB) ResultRepository {
	return &resultRepository{db: db}
}

func (r *resultRepository) Create(result *model.ExamResult) error {
	return r.db.Create(result).Error
}

func (r *resultRepository) FindAllByUser(userID string) ([]model.ExamResult, error) {
	var results []model.ExamResult
	if err := r.db.Where("user_id = ?", userID).Order("submitted_at DESC").Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *resultRepository) FindByIDAndUser(resultID, userID string) (*model.ExamResult, error) {
	var result model.ExamResult
	if err := r.db.Where("id = ? AND user_id = ?", resultID, userID).First(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}
