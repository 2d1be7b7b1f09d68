package models

import (
	"time"

	"github.com/google/uuid"
)

type SubmissionStatus string

const (
	SubmissionPending   SubmissionStatus = "pending"
	SubmissionSucceeded SubmissionStatus = "succeeded"
	SubmissionFailed    SubmissionStatus = "failed"
	SubmissionDiscarded SubmissionStatus = "discarded"
)

// Submission records one analysis attempt. File bytes are never stored.
type Submission struct {
	ID           uuid.UUID        `gorm:"type:uuid;primaryKey" json:"id"`
	Filename     string           `gorm:"type:text" json:"filename"`
	ContentType  string           `gorm:"type:text" json:"content_type"`
	SizeBytes    int64            `json:"size_bytes"`
	Generation   uint64           `json:"generation"`
	Status       SubmissionStatus `gorm:"type:text;not null" json:"status"`
	ATSScore     *int             `gorm:"column:ats_score" json:"ats_score,omitempty"`
	Verdict      *string          `gorm:"type:text" json:"verdict,omitempty"`
	Payload      *string          `gorm:"type:text" json:"payload,omitempty"`
	ErrorMessage *string          `gorm:"type:text" json:"error_message,omitempty"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
}

func (Submission) TableName() string {
	return "submissions"
}

type HistoryResponse struct {
	Submissions []Submission `json:"submissions"`
	Count       int          `json:"count"`
}
