package repositories

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"alfredoptarigan/resume-predictor/internal/models"
)

type SubmissionRepository interface {
	Create(submission *models.Submission) error
	MarkSucceeded(id uuid.UUID, result *models.PredictionResult) error
	MarkFailed(id uuid.UUID, errorMsg string) error
	MarkDiscarded(id uuid.UUID) error
	FindRecent(limit int) ([]models.Submission, error)
}

type submissionRepository struct {
	db *gorm.DB
}

func NewSubmissionRepository(db *gorm.DB) SubmissionRepository {
	return &submissionRepository{db: db}
}

func (r *submissionRepository) Create(submission *models.Submission) error {
	if err := r.db.Create(submission).Error; err != nil {
		return fmt.Errorf("failed to create submission: %w", err)
	}
	return nil
}

func (r *submissionRepository) MarkSucceeded(id uuid.UUID, result *models.PredictionResult) error {
	updates := map[string]interface{}{
		"status":     models.SubmissionSucceeded,
		"ats_score":  result.ATSScore,
		"verdict":    result.Verdict,
		"updated_at": time.Now(),
	}
	if len(result.Payload) > 0 {
		updates["payload"] = string(result.Payload)
	}

	return r.update(id, updates)
}

func (r *submissionRepository) MarkFailed(id uuid.UUID, errorMsg string) error {
	return r.update(id, map[string]interface{}{
		"status":        models.SubmissionFailed,
		"error_message": errorMsg,
		"updated_at":    time.Now(),
	})
}

func (r *submissionRepository) MarkDiscarded(id uuid.UUID) error {
	return r.update(id, map[string]interface{}{
		"status":     models.SubmissionDiscarded,
		"updated_at": time.Now(),
	})
}

func (r *submissionRepository) FindRecent(limit int) ([]models.Submission, error) {
	var submissions []models.Submission
	err := r.db.
		Order("created_at DESC").
		Limit(limit).
		Find(&submissions).Error

	if err != nil {
		return nil, fmt.Errorf("failed to find submissions: %w", err)
	}

	return submissions, nil
}

func (r *submissionRepository) update(id uuid.UUID, updates map[string]interface{}) error {
	result := r.db.Model(&models.Submission{}).
		Where("id = ?", id).
		Updates(updates)

	if result.Error != nil {
		return fmt.Errorf("failed to update submission: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return fmt.Errorf("submission not found")
	}

	return nil
}

type noopSubmissionRepository struct{}

// NewNoopSubmissionRepository is used when history is disabled.
func NewNoopSubmissionRepository() SubmissionRepository {
	return noopSubmissionRepository{}
}

func (noopSubmissionRepository) Create(*models.Submission) error { return nil }

func (noopSubmissionRepository) MarkSucceeded(uuid.UUID, *models.PredictionResult) error {
	return nil
}

func (noopSubmissionRepository) MarkFailed(uuid.UUID, string) error { return nil }

func (noopSubmissionRepository) MarkDiscarded(uuid.UUID) error { return nil }

func (noopSubmissionRepository) FindRecent(int) ([]models.Submission, error) {
	return []models.Submission{}, nil
}
