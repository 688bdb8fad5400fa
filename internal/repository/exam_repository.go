package repository

import (
	"examgen-backend/internal/model"

	"gorm.io/gorm"
)

type ExamRepository interface {
	Create(exam *model.Exam) error
	FindAllByUser(userID string) ([]model.Exam, error)
	FindByIDAndUser(examID, userID string) (*model.Exam, error)
	// DeleteWithResults removes the exam, its questions and every result
	// referencing it in one transaction.
	DeleteWithResults(examID, userID string) error
}

type examRepository struct {
	db *gorm.DB
}

func NewExamRepository(db *gorm.DB) ExamRepository {
	return &examRepository{db: db}
}

func (r *examRepository) Create(exam *model.Exam) error {
	// GORM creates the associated questions together with the exam.
	return r.db.Create(exam).Error
}

func (r *examRepository) FindAllByUser(userID string) ([]model.Exam, error) {
	var exams []model.Exam
	err := r.db.
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("questions.position ASC")
		}).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&exams).Error
	if err != nil {
		return nil, err
	}
	return exams, nil
}

func (r *examRepository) FindByIDAndUser(examID, userID string) (*model.Exam, error) {
	var exam model.Exam
	err := r.db.
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("questions.position ASC")
		}).
		Where("id = ? AND user_id = ?", examID, userID).
		First(&exam).Error
	if err != nil {
		return nil, err
	}
	return &exam, nil
}

func (r *examRepository) DeleteWithResults(examID, userID string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Where("id = ? AND user_id = ?", examID, userID).Delete(&model.Exam{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		if err := tx.Where("exam_id = ?", examID).Delete(&model.Question{}).Error; err != nil {
			return err
		}
		return tx.Where("exam_id = ?", examID).Delete(&model.ExamResult{}).Error
	})
}
