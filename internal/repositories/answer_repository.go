package repositories

import (
	"github.com/Abhishekjc19/fluentia/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AnswerRepository struct {
	DB *gorm.DB
}

// Replace stores the answer for its question, discarding any previous answer
// to the same question. One answer per question is the invariant here.
func (r *AnswerRepository) Replace(answer *models.Answer) error {
	if answer.ID == uuid.Nil {
		answer.ID = uuid.New()
	}
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("question_id = ?", answer.QuestionID).
			Delete(&models.Answer{}).Error; err != nil {
			return err
		}
		return tx.Create(answer).Error
	})
}

// ListByQuestionIDs returns all answers belonging to the given questions.
func (r *AnswerRepository) ListByQuestionIDs(questionIDs []uuid.UUID) ([]models.Answer, error) {
	answers := []models.Answer{}
	if len(questionIDs) == 0 {
		return answers, nil
	}
	err := r.DB.Where("question_id IN ?", questionIDs).Find(&answers).Error
	return answers, err
}

// AllAudioKeys returns every stored answer-audio key.
func (r *AnswerRepository) AllAudioKeys() ([]string, error) {
	var keys []string
	err := r.DB.Model(&models.Answer{}).
		Where("answer_audio_key IS NOT NULL").
		Pluck("answer_audio_key", &keys).Error
	return keys, err
}
