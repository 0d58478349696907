package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Abhishekjc19/fluentia/internal/interview"
	"github.com/Abhishekjc19/fluentia/internal/middleware"
	"github.com/Abhishekjc19/fluentia/internal/models"
	"github.com/Abhishekjc19/fluentia/internal/resume"
	"github.com/Abhishekjc19/fluentia/internal/utils"
)

// maxMultipartMemory bounds how much of a multipart body stays in memory;
// the rest spills to temp files that are removed after the request.
const maxMultipartMemory = 10 << 20

// SessionService is the interview lifecycle as seen from the HTTP layer.
// Implemented by interview.SessionManager.
type SessionService interface {
	Start(ctx context.Context, userID uuid.UUID, interviewType models.InterviewType, resumeText string, questionCount int) (*interview.StartResult, error)
	SubmitAnswer(ctx context.Context, userID, questionID uuid.UUID, answerText string, audio *interview.Upload) (*models.Answer, error)
	Complete(ctx context.Context, userID, interviewID uuid.UUID, video *interview.Upload) (*interview.CompleteResult, error)
	GetByID(ctx context.Context, userID, interviewID uuid.UUID) (*models.Interview, error)
	ListForUser(ctx context.Context, userID uuid.UUID) ([]models.Interview, error)
}

// InterviewHandler exposes the interview lifecycle over HTTP.
type InterviewHandler struct {
	Sessions  SessionService
	Extractor resume.Extractor
	Logger    *zap.Logger
}

func NewInterviewHandler(sessions SessionService, extractor resume.Extractor, logger *zap.Logger) *InterviewHandler {
	return &InterviewHandler{Sessions: sessions, Extractor: extractor, Logger: logger}
}

type startRequest struct {
	InterviewType string `json:"interview_type"`
	QuestionCount int    `json:"question_count"`
}

// StartHandler accepts either a JSON body or a multipart form with an
// optional resume file. Resume extraction failures degrade the session to
// generic questions rather than failing the request.
func (h *InterviewHandler) StartHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		utils.JSONError(w, http.StatusUnauthorized, "Access token required")
		return
	}

	var req startRequest
	var resumeText string

	if isMultipart(r) {
		if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
			utils.JSONError(w, http.StatusBadRequest, "Invalid multipart form")
			return
		}
		defer h.cleanupMultipart(r)

		req.InterviewType = r.FormValue("interview_type")
		if raw := r.FormValue("question_count"); raw != "" {
			count, err := strconv.Atoi(raw)
			if err != nil {
				utils.JSONError(w, http.StatusBadRequest, "question_count must be a number")
				return
			}
			req.QuestionCount = count
		}

		file, header, err := r.FormFile("resume")
		switch {
		case errors.Is(err, http.ErrMissingFile):
			// no resume attached
		case err != nil:
			utils.JSONError(w, http.StatusBadRequest, "Invalid resume upload")
			return
		default:
			defer file.Close()
			text, status, msg := h.extractResume(file, header)
			if msg != "" {
				utils.JSONError(w, status, msg)
				return
			}
			resumeText = text
		}
	} else {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			utils.JSONError(w, http.StatusBadRequest, "Invalid JSON in request body")
			return
		}
	}

	if req.QuestionCount == 0 {
		req.QuestionCount = interview.DefaultQuestionCount
	}

	result, err := h.Sessions.Start(r.Context(), userID, models.InterviewType(req.InterviewType), resumeText, req.QuestionCount)
	if err != nil {
		h.writeSessionError(w, err, "Failed to start interview")
		return
	}

	utils.JSON(w, http.StatusCreated, result)
}

// extractResume validates the upload and pulls plain text out of it. An
// empty msg means success; otherwise status/msg describe the client error.
// Unsupported formats are not client errors: the text is simply dropped.
func (h *InterviewHandler) extractResume(file multipart.File, header *multipart.FileHeader) (text string, status int, msg string) {
	if header.Size > resume.MaxUploadBytes {
		return "", http.StatusRequestEntityTooLarge, "Resume file exceeds the 5MB limit"
	}
	if !resume.AllowedExtension(header.Filename) {
		return "", http.StatusBadRequest, "Resume must be a .pdf, .doc, .docx or .txt file"
	}

	extracted, err := h.Extractor.ExtractText(header.Filename, file)
	if err != nil {
		if errors.Is(err, resume.ErrUnsupportedFormat) {
			h.Logger.Info("Resume format not extractable, generating generic questions",
				zap.String("filename", header.Filename))
			return "", 0, ""
		}
		h.Logger.Warn("Resume extraction failed, generating generic questions", zap.Error(err))
		return "", 0, ""
	}
	return extracted, 0, ""
}

type answerRequest struct {
	QuestionID string `json:"question_id"`
	AnswerText string `json:"answer_text"`
}

// AnswerHandler records and scores an answer, JSON or multipart with an
// optional audio recording.
func (h *InterviewHandler) AnswerHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		utils.JSONError(w, http.StatusUnauthorized, "Access token required")
		return
	}

	var req answerRequest
	var audio *interview.Upload

	if isMultipart(r) {
		if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
			utils.JSONError(w, http.StatusBadRequest, "Invalid multipart form")
			return
		}
		defer h.cleanupMultipart(r)

		req.QuestionID = r.FormValue("question_id")
		req.AnswerText = r.FormValue("answer_text")

		file, header, err := r.FormFile("audio")
		switch {
		case errors.Is(err, http.ErrMissingFile):
		case err != nil:
			utils.JSONError(w, http.StatusBadRequest, "Invalid audio upload")
			return
		default:
			defer file.Close()
			audio = &interview.Upload{
				Content:     file,
				Filename:    header.Filename,
				ContentType: header.Header.Get("Content-Type"),
			}
		}
	} else {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			utils.JSONError(w, http.StatusBadRequest, "Invalid JSON in request body")
			return
		}
	}

	questionID, err := uuid.Parse(req.QuestionID)
	if err != nil {
		utils.JSONError(w, http.StatusBadRequest, "question_id must be a valid id")
		return
	}

	answer, err := h.Sessions.SubmitAnswer(r.Context(), userID, questionID, req.AnswerText, audio)
	if err != nil {
		h.writeSessionError(w, err, "Failed to submit answer")
		return
	}

	utils.JSON(w, http.StatusOK, map[string]any{"answer": answer})
}

// CompleteHandler finalizes an interview, with an optional multipart video
// recording.
func (h *InterviewHandler) CompleteHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		utils.JSONError(w, http.StatusUnauthorized, "Access token required")
		return
	}

	interviewID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		utils.JSONError(w, http.StatusBadRequest, "Interview id must be a valid id")
		return
	}

	var video *interview.Upload
	if isMultipart(r) {
		if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
			utils.JSONError(w, http.StatusBadRequest, "Invalid multipart form")
			return
		}
		defer h.cleanupMultipart(r)

		file, header, err := r.FormFile("video")
		switch {
		case errors.Is(err, http.ErrMissingFile):
		case err != nil:
			utils.JSONError(w, http.StatusBadRequest, "Invalid video upload")
			return
		default:
			defer file.Close()
			video = &interview.Upload{
				Content:     file,
				Filename:    header.Filename,
				ContentType: header.Header.Get("Content-Type"),
			}
		}
	}

	result, err := h.Sessions.Complete(r.Context(), userID, interviewID, video)
	if err != nil {
		h.writeSessionError(w, err, "Failed to complete interview")
		return
	}

	utils.JSON(w, http.StatusOK, result)
}

// GetHandler returns one interview with its questions and answers.
func (h *InterviewHandler) GetHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		utils.JSONError(w, http.StatusUnauthorized, "Access token required")
		return
	}

	interviewID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		utils.JSONError(w, http.StatusBadRequest, "Interview id must be a valid id")
		return
	}

	result, err := h.Sessions.GetByID(r.Context(), userID, interviewID)
	if err != nil {
		h.writeSessionError(w, err, "Failed to load interview")
		return
	}

	utils.JSON(w, http.StatusOK, map[string]any{"interview": result})
}

// ListHandler returns the caller's interview history, newest first.
func (h *InterviewHandler) ListHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		utils.JSONError(w, http.StatusUnauthorized, "Access token required")
		return
	}

	interviews, err := h.Sessions.ListForUser(r.Context(), userID)
	if err != nil {
		h.writeSessionError(w, err, "Failed to load interviews")
		return
	}

	utils.JSON(w, http.StatusOK, map[string]any{"interviews": interviews})
}

func (h *InterviewHandler) writeSessionError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, interview.ErrInvalidInterviewType),
		errors.Is(err, interview.ErrInvalidQuestionCount),
		errors.Is(err, interview.ErrEmptyAnswer):
		utils.JSONError(w, http.StatusBadRequest, capitalize(err.Error()))
	case errors.Is(err, interview.ErrInterviewNotFound):
		utils.JSONError(w, http.StatusNotFound, "Interview not found")
	case errors.Is(err, interview.ErrQuestionNotFound):
		utils.JSONError(w, http.StatusNotFound, "Question not found")
	case errors.Is(err, interview.ErrAlreadyCompleted):
		utils.JSONError(w, http.StatusConflict, "Interview is already completed")
	default:
		h.Logger.Error(fallback, zap.Error(err))
		utils.JSONError(w, http.StatusInternalServerError, fallback)
	}
}

func (h *InterviewHandler) cleanupMultipart(r *http.Request) {
	if r.MultipartForm == nil {
		return
	}
	if err := r.MultipartForm.RemoveAll(); err != nil {
		h.Logger.Warn("Failed to remove multipart temp files", zap.Error(err))
	}
}

func isMultipart(r *http.Request) bool {
	return strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data")
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
