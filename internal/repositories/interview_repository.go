package repositories

import (
	"errors"
	"time"

	"github.com/Abhishekjc19/fluentia/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrInterviewNotFound = errors.New("interview not found")
	ErrQuestionNotFound  = errors.New("question not found")
)

type InterviewRepository struct {
	DB *gorm.DB
}

// CreateWithQuestions inserts the interview and its questions as one
// transaction: either the whole session exists afterwards or none of it does.
func (r *InterviewRepository) CreateWithQuestions(interview *models.Interview, questions []models.Question) error {
	if interview.ID == uuid.Nil {
		interview.ID = uuid.New()
	}
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(interview).Error; err != nil {
			return err
		}
		for i := range questions {
			if questions[i].ID == uuid.Nil {
				questions[i].ID = uuid.New()
			}
			questions[i].InterviewID = interview.ID
		}
		return tx.Create(&questions).Error
	})
}

// GetByIDForUser loads an interview owned by userID with its questions in
// order and each question's answer, if any.
func (r *InterviewRepository) GetByIDForUser(id, userID uuid.UUID) (*models.Interview, error) {
	var interview models.Interview
	err := r.DB.
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("question_order ASC")
		}).
		Preload("Questions.Answer").
		First(&interview, "id = ? AND user_id = ?", id, userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrInterviewNotFound
	}
	if err != nil {
		return nil, err
	}
	return &interview, nil
}

// GetQuestion loads a question together with its owning interview.
func (r *InterviewRepository) GetQuestion(questionID uuid.UUID) (*models.Question, *models.Interview, error) {
	var question models.Question
	if err := r.DB.First(&question, "id = ?", questionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrQuestionNotFound
		}
		return nil, nil, err
	}
	var interview models.Interview
	if err := r.DB.First(&interview, "id = ?", question.InterviewID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrInterviewNotFound
		}
		return nil, nil, err
	}
	return &question, &interview, nil
}

// ListQuestions returns the questions of an interview in order.
func (r *InterviewRepository) ListQuestions(interviewID uuid.UUID) ([]models.Question, error) {
	questions := []models.Question{}
	err := r.DB.
		Where("interview_id = ?", interviewID).
		Order("question_order ASC").
		Find(&questions).Error
	return questions, err
}

// ListByUser returns all interviews for a user, newest first.
func (r *InterviewRepository) ListByUser(userID uuid.UUID) ([]models.Interview, error) {
	interviews := []models.Interview{}
	err := r.DB.
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&interviews).Error
	return interviews, err
}

// MarkCompleted applies the terminal status transition. The status guard in
// the WHERE clause keeps two concurrent completions from both succeeding.
func (r *InterviewRepository) MarkCompleted(id uuid.UUID, completedAt time.Time, score float64, feedback string, videoKey *string) (*models.Interview, error) {
	updates := map[string]any{
		"status":       models.InterviewStatusCompleted,
		"completed_at": completedAt,
		"score":        score,
		"feedback":     feedback,
	}
	if videoKey != nil {
		updates["video_key"] = *videoKey
	}
	result := r.DB.Model(&models.Interview{}).
		Where("id = ? AND status = ?", id, models.InterviewStatusInProgress).
		Updates(updates)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrInterviewNotFound
	}

	var interview models.Interview
	if err := r.DB.First(&interview, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &interview, nil
}

// CountByUser returns total and completed interview counts for a user.
func (r *InterviewRepository) CountByUser(userID uuid.UUID) (total int64, completed int64, err error) {
	if err = r.DB.Model(&models.Interview{}).
		Where("user_id = ?", userID).
		Count(&total).Error; err != nil {
		return 0, 0, err
	}
	if err = r.DB.Model(&models.Interview{}).
		Where("user_id = ? AND status = ?", userID, models.InterviewStatusCompleted).
		Count(&completed).Error; err != nil {
		return 0, 0, err
	}
	return total, completed, nil
}

// CompletedScores returns the stored scores of a user's completed interviews.
func (r *InterviewRepository) CompletedScores(userID uuid.UUID) ([]float64, error) {
	var interviews []models.Interview
	err := r.DB.
		Select("score").
		Where("user_id = ? AND status = ?", userID, models.InterviewStatusCompleted).
		Find(&interviews).Error
	if err != nil {
		return nil, err
	}
	scores := make([]float64, 0, len(interviews))
	for _, iv := range interviews {
		if iv.Score != nil {
			scores = append(scores, *iv.Score)
		} else {
			scores = append(scores, 0)
		}
	}
	return scores, nil
}

// AllVideoKeys returns every stored recording key. Used by the janitor to
// decide which bucket objects are still referenced.
func (r *InterviewRepository) AllVideoKeys() ([]string, error) {
	var keys []string
	err := r.DB.Model(&models.Interview{}).
		Where("video_key IS NOT NULL").
		Pluck("video_key", &keys).Error
	return keys, err
}
