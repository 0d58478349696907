package models

import (
	"time"

	"github.com/google/uuid"
)

type InterviewType string

const (
	InterviewTypeTech InterviewType = "tech"
	InterviewTypeHR   InterviewType = "hr"
)

// ValidInterviewType reports whether t is one of the supported interview types.
func ValidInterviewType(t InterviewType) bool {
	return t == InterviewTypeTech || t == InterviewTypeHR
}

type InterviewStatus string

const (
	InterviewStatusInProgress InterviewStatus = "in_progress"
	InterviewStatusCompleted  InterviewStatus = "completed"
)

// Interview is one mock-interview session. Status only ever moves
// in_progress -> completed, once; score and feedback are set at completion.
type Interview struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	UserID        uuid.UUID       `gorm:"type:uuid;not null;index" json:"user_id"`
	InterviewType InterviewType   `gorm:"not null" json:"interview_type"`
	Status        InterviewStatus `gorm:"not null" json:"status"`
	StartedAt     time.Time       `gorm:"not null" json:"started_at"`
	CompletedAt   *time.Time      `json:"completed_at,omitempty"`
	Score         *float64        `json:"score,omitempty"`
	Feedback      *string         `gorm:"type:text" json:"feedback,omitempty"`
	// VideoKey is the object-store key of the session recording. Signed URLs
	// are short-lived and derived per request, never persisted.
	VideoKey  *string   `json:"-"`
	VideoURL  string    `gorm:"-" json:"video_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`

	Questions []Question `gorm:"foreignKey:InterviewID" json:"questions,omitempty"`
}

// Question belongs to an interview. QuestionOrder runs 1..N with no gaps and
// is unique per interview; rows are immutable after creation.
type Question struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	InterviewID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_interview_question_order" json:"interview_id"`
	QuestionText  string    `gorm:"type:text;not null" json:"question_text"`
	QuestionOrder int       `gorm:"not null;uniqueIndex:idx_interview_question_order" json:"question_order"`
	CreatedAt     time.Time `json:"created_at"`

	Answer *Answer `gorm:"foreignKey:QuestionID" json:"answer,omitempty"`
}

// Answer holds the candidate's response to one question. A question has at
// most one answer; re-submission replaces the previous row.
type Answer struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	QuestionID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"question_id"`
	AnswerText     string    `gorm:"type:text;not null" json:"answer_text"`
	AnswerAudioKey *string   `json:"-"`
	AudioURL       string    `gorm:"-" json:"answer_audio_url,omitempty"`
	Score          *int      `json:"score,omitempty"`
	Feedback       *string   `gorm:"type:text" json:"feedback,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// UserStats summarises a user's interview history.
type UserStats struct {
	TotalInterviews     int64   `json:"totalInterviews"`
	CompletedInterviews int64   `json:"completedInterviews"`
	AverageScore        float64 `json:"averageScore"`
}
