package handlers

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Abhishekjc19/fluentia/internal/interview"
	"github.com/Abhishekjc19/fluentia/internal/middleware"
	"github.com/Abhishekjc19/fluentia/internal/models"
	"github.com/Abhishekjc19/fluentia/internal/utils"
)

const testJWTSecret = "test-secret"

type mockSessionService struct {
	startFn        func(ctx context.Context, userID uuid.UUID, interviewType models.InterviewType, resumeText string, questionCount int) (*interview.StartResult, error)
	submitAnswerFn func(ctx context.Context, userID, questionID uuid.UUID, answerText string, audio *interview.Upload) (*models.Answer, error)
	completeFn     func(ctx context.Context, userID, interviewID uuid.UUID, video *interview.Upload) (*interview.CompleteResult, error)
	getByIDFn      func(ctx context.Context, userID, interviewID uuid.UUID) (*models.Interview, error)
	listForUserFn  func(ctx context.Context, userID uuid.UUID) ([]models.Interview, error)
}

func (m *mockSessionService) Start(ctx context.Context, userID uuid.UUID, interviewType models.InterviewType, resumeText string, questionCount int) (*interview.StartResult, error) {
	if m.startFn == nil {
		return &interview.StartResult{Interview: &models.Interview{ID: uuid.New()}}, nil
	}
	return m.startFn(ctx, userID, interviewType, resumeText, questionCount)
}

func (m *mockSessionService) SubmitAnswer(ctx context.Context, userID, questionID uuid.UUID, answerText string, audio *interview.Upload) (*models.Answer, error) {
	if m.submitAnswerFn == nil {
		return &models.Answer{ID: uuid.New()}, nil
	}
	return m.submitAnswerFn(ctx, userID, questionID, answerText, audio)
}

func (m *mockSessionService) Complete(ctx context.Context, userID, interviewID uuid.UUID, video *interview.Upload) (*interview.CompleteResult, error) {
	if m.completeFn == nil {
		return &interview.CompleteResult{Interview: &models.Interview{ID: interviewID}}, nil
	}
	return m.completeFn(ctx, userID, interviewID, video)
}

func (m *mockSessionService) GetByID(ctx context.Context, userID, interviewID uuid.UUID) (*models.Interview, error) {
	if m.getByIDFn == nil {
		return &models.Interview{ID: interviewID}, nil
	}
	return m.getByIDFn(ctx, userID, interviewID)
}

func (m *mockSessionService) ListForUser(ctx context.Context, userID uuid.UUID) ([]models.Interview, error) {
	if m.listForUserFn == nil {
		return []models.Interview{}, nil
	}
	return m.listForUserFn(ctx, userID)
}

type mockStats struct {
	statsFn func(ctx context.Context, userID uuid.UUID) (*models.UserStats, error)
}

func (m *mockStats) Stats(ctx context.Context, userID uuid.UUID) (*models.UserStats, error) {
	if m.statsFn == nil {
		return &models.UserStats{}, nil
	}
	return m.statsFn(ctx, userID)
}

func testLogger() *zap.Logger { return zap.NewNop() }

// authedRequest builds a request carrying a valid Bearer token for userID.
func authedRequest(t *testing.T, method, target string, body io.Reader, userID uuid.UUID) *http.Request {
	t.Helper()
	token, err := utils.SignToken(userID, "user@example.com", testJWTSecret)
	if err != nil {
		t.Fatalf("failed to sign test token: %v", err)
	}
	req := httptest.NewRequest(method, target, body)
	req.Header.Set("Authorization", "Bearer "+token)
	return req
}

// serveAuthed runs the handler behind the auth middleware, the way routes
// mount it.
func serveAuthed(handler http.HandlerFunc, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	middleware.RequireAuth(testJWTSecret)(handler).ServeHTTP(rec, req)
	return rec
}
