package interview

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Abhishekjc19/fluentia/internal/events"
	"github.com/Abhishekjc19/fluentia/internal/models"
	"github.com/Abhishekjc19/fluentia/internal/prompts"
	"github.com/Abhishekjc19/fluentia/internal/repositories"
	"github.com/Abhishekjc19/fluentia/internal/storage"

	"github.com/Abhishekjc19/fluentia/internal/llm"
)

const (
	// DefaultQuestionCount is how many questions a session gets unless the
	// caller asks otherwise.
	DefaultQuestionCount = 5

	// resumePreviewLimit bounds how much resume text goes into the
	// generation prompt, to respect model input limits.
	resumePreviewLimit = 2000

	// defaultAnswerScore is assigned when the Oracle's score line is absent
	// or unparseable.
	defaultAnswerScore = 7
)

const degradedEvaluationFeedback = "Your answer has been recorded. AI evaluation is temporarily unavailable due to API quota limits. Your response will be reviewed."

var (
	ErrInvalidInterviewType = errors.New("interview_type must be tech or hr")
	ErrInvalidQuestionCount = errors.New("question count must be positive")
	ErrEmptyAnswer          = errors.New("answer_text must not be empty")
	ErrAlreadyCompleted     = errors.New("interview is already completed")

	ErrInterviewNotFound = repositories.ErrInterviewNotFound
	ErrQuestionNotFound  = repositories.ErrQuestionNotFound
)

// Upload is an incoming file destined for the object store.
type Upload struct {
	Content     io.Reader
	Filename    string
	ContentType string
}

// StartResult is what a fresh session looks like to the caller.
type StartResult struct {
	Interview   *models.Interview `json:"interview"`
	Questions   []models.Question `json:"questions"`
	ResumeBased bool              `json:"resumeBasedQuestions"`
}

// Results is the completion view: final score, overall feedback, and a
// short-lived link to the recording when one exists.
type Results struct {
	Score    float64 `json:"score"`
	Feedback string  `json:"feedback"`
	VideoURL string  `json:"videoUrl,omitempty"`
}

type CompleteResult struct {
	Interview *models.Interview `json:"interview"`
	Results   Results           `json:"results"`
}

// SessionManager drives the interview lifecycle: question generation with
// fallback, per-answer scoring, and completion aggregation. Oracle failures
// are absorbed here and replaced with deterministic content; they never
// surface to the HTTP layer.
type SessionManager struct {
	interviews *repositories.InterviewRepository
	answers    *repositories.AnswerRepository
	provider   llm.Provider
	prompts    prompts.PromptProvider
	store      storage.Store
	publisher  events.Publisher
	logger     *zap.Logger
}

// NewSessionManager wires the manager with its collaborators. store and
// publisher may be nil; uploads and events are then skipped.
func NewSessionManager(
	interviews *repositories.InterviewRepository,
	answers *repositories.AnswerRepository,
	provider llm.Provider,
	promptManager prompts.PromptProvider,
	store storage.Store,
	publisher events.Publisher,
	logger *zap.Logger,
) *SessionManager {
	return &SessionManager{
		interviews: interviews,
		answers:    answers,
		provider:   provider,
		prompts:    promptManager,
		store:      store,
		publisher:  publisher,
		logger:     logger,
	}
}

// Start creates an interview with exactly questionCount ordered questions.
// Questions come from the Oracle when it cooperates, personalized by
// resumeText when present, and from the static bank otherwise.
func (sm *SessionManager) Start(ctx context.Context, userID uuid.UUID, interviewType models.InterviewType, resumeText string, questionCount int) (*StartResult, error) {
	if !models.ValidInterviewType(interviewType) {
		return nil, ErrInvalidInterviewType
	}
	if questionCount <= 0 {
		return nil, ErrInvalidQuestionCount
	}

	resumeText = strings.TrimSpace(resumeText)
	resumeBased := resumeText != ""

	questionTexts := sm.generateQuestions(ctx, interviewType, resumeText, questionCount)

	now := time.Now()
	interview := &models.Interview{
		UserID:        userID,
		InterviewType: interviewType,
		Status:        models.InterviewStatusInProgress,
		StartedAt:     now,
	}
	questions := make([]models.Question, len(questionTexts))
	for i, text := range questionTexts {
		questions[i] = models.Question{
			QuestionText:  text,
			QuestionOrder: i + 1,
		}
	}

	if err := sm.interviews.CreateWithQuestions(interview, questions); err != nil {
		return nil, fmt.Errorf("failed to persist interview session: %w", err)
	}

	return &StartResult{
		Interview:   interview,
		Questions:   questions,
		ResumeBased: resumeBased,
	}, nil
}

// generateQuestions never fails: any Oracle problem, including an empty or
// malformed response, degrades to the fallback bank. Short responses are
// topped up from the bank so the result always has exactly count entries.
func (sm *SessionManager) generateQuestions(ctx context.Context, interviewType models.InterviewType, resumeText string, count int) []string {
	variant := string(interviewType)
	data := map[string]string{"Count": fmt.Sprintf("%d", count)}
	if resumeText != "" {
		variant = "resume_" + variant
		preview := resumeText
		if len(preview) > resumePreviewLimit {
			preview = preview[:resumePreviewLimit]
		}
		data["Resume"] = preview
	}

	prompt, err := sm.prompts.BuildPrompt("generation", variant, data)
	if err != nil {
		sm.logger.Error("Failed to build generation prompt, using fallback bank", zap.Error(err))
		return FallbackQuestions(interviewType, count)
	}

	response, err := sm.provider.GenerateContent(ctx, prompt, uuid.New().String())
	if err != nil {
		sm.logger.Warn("Oracle unavailable for question generation, using fallback bank",
			zap.String("interview_type", string(interviewType)),
			zap.Error(err))
		return FallbackQuestions(interviewType, count)
	}

	parsed := ParseQuestionLines(response.Content, count)
	if len(parsed) == 0 {
		sm.logger.Warn("Oracle returned no parseable questions, using fallback bank",
			zap.String("interview_type", string(interviewType)))
		return FallbackQuestions(interviewType, count)
	}
	return topUpFromBank(parsed, interviewType, count)
}

// SubmitAnswer records an answer and scores it. A previous answer to the
// same question is replaced. Scoring failures are invisible to the caller:
// the default score and a recorded-notice feedback substitute.
func (sm *SessionManager) SubmitAnswer(ctx context.Context, userID, questionID uuid.UUID, answerText string, audio *Upload) (*models.Answer, error) {
	answerText = strings.TrimSpace(answerText)
	if answerText == "" {
		return nil, ErrEmptyAnswer
	}

	question, owner, err := sm.interviews.GetQuestion(questionID)
	if err != nil {
		return nil, err
	}
	if owner.UserID != userID {
		return nil, ErrQuestionNotFound
	}

	var audioKey *string
	if audio != nil && sm.store != nil {
		key := fmt.Sprintf("answers/%s%s", uuid.New(), uploadExt(audio, ".webm"))
		if err := sm.store.Upload(ctx, key, audio.ContentType, audio.Content); err != nil {
			sm.logger.Warn("Audio upload failed, storing answer without recording",
				zap.String("question_id", questionID.String()),
				zap.Error(err))
		} else {
			audioKey = &key
		}
	}

	score, feedback := sm.evaluateAnswer(ctx, question.QuestionText, answerText)

	answer := &models.Answer{
		QuestionID:     questionID,
		AnswerText:     answerText,
		AnswerAudioKey: audioKey,
		Score:          &score,
		Feedback:       &feedback,
	}
	if err := sm.answers.Replace(answer); err != nil {
		return nil, fmt.Errorf("failed to persist answer: %w", err)
	}

	if audioKey != nil {
		answer.AudioURL = sm.signedURL(*audioKey)
	}
	return answer, nil
}

func (sm *SessionManager) evaluateAnswer(ctx context.Context, questionText, answerText string) (int, string) {
	prompt, err := sm.prompts.BuildPrompt("evaluation", "default", map[string]string{
		"Question": questionText,
		"Answer":   answerText,
	})
	if err != nil {
		sm.logger.Error("Failed to build evaluation prompt", zap.Error(err))
		return defaultAnswerScore, degradedEvaluationFeedback
	}

	response, err := sm.provider.GenerateContent(ctx, prompt, uuid.New().String())
	if err != nil {
		sm.logger.Warn("Oracle unavailable for answer evaluation, using defaults", zap.Error(err))
		return defaultAnswerScore, degradedEvaluationFeedback
	}

	return ParseEvaluation(response.Content, defaultAnswerScore)
}

// Complete runs the terminal transition: uploads the recording, averages the
// answer scores, asks the Oracle for a holistic summary (with a templated
// fallback), and marks the interview completed. Completing twice is
// rejected.
func (sm *SessionManager) Complete(ctx context.Context, userID, interviewID uuid.UUID, video *Upload) (*CompleteResult, error) {
	interview, err := sm.interviews.GetByIDForUser(interviewID, userID)
	if err != nil {
		return nil, err
	}
	if interview.Status == models.InterviewStatusCompleted {
		return nil, ErrAlreadyCompleted
	}

	var videoKey *string
	if video != nil && sm.store != nil {
		key := fmt.Sprintf("recordings/%s/%s%s", interviewID, uuid.New(), uploadExt(video, ".webm"))
		if err := sm.store.Upload(ctx, key, video.ContentType, video.Content); err != nil {
			sm.logger.Warn("Video upload failed, completing without recording",
				zap.String("interview_id", interviewID.String()),
				zap.Error(err))
		} else {
			videoKey = &key
		}
	}

	questionIDs := make([]uuid.UUID, len(interview.Questions))
	for i, q := range interview.Questions {
		questionIDs[i] = q.ID
	}
	answers, err := sm.answers.ListByQuestionIDs(questionIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load answers: %w", err)
	}

	avgScore := averageScore(answers)
	summary := sm.summarize(ctx, answers, avgScore)

	completedAt := time.Now()
	updated, err := sm.interviews.MarkCompleted(interviewID, completedAt, avgScore, summary, videoKey)
	if err != nil {
		if errors.Is(err, repositories.ErrInterviewNotFound) {
			// Lost the race with another completion.
			return nil, ErrAlreadyCompleted
		}
		return nil, fmt.Errorf("failed to complete interview: %w", err)
	}

	if sm.publisher != nil {
		event := events.InterviewCompletedEvent{
			InterviewID:   updated.ID.String(),
			UserID:        userID.String(),
			InterviewType: string(updated.InterviewType),
			Score:         avgScore,
			AnswerCount:   len(answers),
			CompletedAt:   completedAt.Format(time.RFC3339),
		}
		if err := sm.publisher.PublishInterviewCompleted(ctx, event); err != nil {
			sm.logger.Warn("Failed to publish completion event", zap.Error(err))
		}
	}

	results := Results{Score: avgScore, Feedback: summary}
	if videoKey != nil {
		updated.VideoURL = sm.signedURL(*videoKey)
		results.VideoURL = updated.VideoURL
	}
	return &CompleteResult{Interview: updated, Results: results}, nil
}

func (sm *SessionManager) summarize(ctx context.Context, answers []models.Answer, avgScore float64) string {
	fallback := fmt.Sprintf("Interview completed with an average score of %.1f/10. Your responses have been recorded. Detailed AI-generated feedback is temporarily unavailable due to API quota limits. Please check back later for comprehensive analysis.", avgScore)

	var lines []string
	for _, a := range answers {
		score := 0
		if a.Score != nil {
			score = *a.Score
		}
		feedback := ""
		if a.Feedback != nil {
			feedback = *a.Feedback
		}
		lines = append(lines, fmt.Sprintf("Score: %d/10, Feedback: %s", score, feedback))
	}

	prompt, err := sm.prompts.BuildPrompt("summary", "default", map[string]string{
		"Results": strings.Join(lines, "\n"),
	})
	if err != nil {
		sm.logger.Error("Failed to build summary prompt, using templated summary", zap.Error(err))
		return fallback
	}

	response, err := sm.provider.GenerateContent(ctx, prompt, uuid.New().String())
	if err != nil {
		sm.logger.Warn("Oracle unavailable for overall summary, using templated summary", zap.Error(err))
		return fallback
	}
	return strings.TrimSpace(response.Content)
}

// GetByID returns an interview with nested questions and answers. Signed
// URLs for stored media are derived fresh on every read.
func (sm *SessionManager) GetByID(ctx context.Context, userID, interviewID uuid.UUID) (*models.Interview, error) {
	interview, err := sm.interviews.GetByIDForUser(interviewID, userID)
	if err != nil {
		return nil, err
	}
	if interview.VideoKey != nil {
		interview.VideoURL = sm.signedURL(*interview.VideoKey)
	}
	for i := range interview.Questions {
		answer := interview.Questions[i].Answer
		if answer != nil && answer.AnswerAudioKey != nil {
			answer.AudioURL = sm.signedURL(*answer.AnswerAudioKey)
		}
	}
	return interview, nil
}

// ListForUser returns the user's interviews, newest first.
func (sm *SessionManager) ListForUser(ctx context.Context, userID uuid.UUID) ([]models.Interview, error) {
	return sm.interviews.ListByUser(userID)
}

// Stats aggregates totals and the average over completed interviews' stored
// scores, rounded to one decimal.
func (sm *SessionManager) Stats(ctx context.Context, userID uuid.UUID) (*models.UserStats, error) {
	total, completed, err := sm.interviews.CountByUser(userID)
	if err != nil {
		return nil, err
	}
	scores, err := sm.interviews.CompletedScores(userID)
	if err != nil {
		return nil, err
	}
	avg := 0.0
	if len(scores) > 0 {
		sum := 0.0
		for _, s := range scores {
			sum += s
		}
		avg = roundToTenth(sum / float64(len(scores)))
	}
	return &models.UserStats{
		TotalInterviews:     total,
		CompletedInterviews: completed,
		AverageScore:        avg,
	}, nil
}

func (sm *SessionManager) signedURL(key string) string {
	if sm.store == nil {
		return ""
	}
	url, err := sm.store.SignedURL(key, storage.SignedURLTTL)
	if err != nil {
		sm.logger.Warn("Failed to sign URL", zap.String("key", key), zap.Error(err))
		return ""
	}
	return url
}

// averageScore treats a missing score as 0 and returns 0 when there are no
// answers, rounded half-up at the tenths digit.
func averageScore(answers []models.Answer) float64 {
	if len(answers) == 0 {
		return 0
	}
	sum := 0
	for _, a := range answers {
		if a.Score != nil {
			sum += *a.Score
		}
	}
	return roundToTenth(float64(sum) / float64(len(answers)))
}

func roundToTenth(x float64) float64 {
	return math.Floor(x*10+0.5) / 10
}

func uploadExt(u *Upload, fallback string) string {
	if u.Filename != "" {
		if ext := strings.ToLower(filepath.Ext(u.Filename)); ext != "" {
			return ext
		}
	}
	return fallback
}
