package service

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"examgen-backend/internal/dto"
	"examgen-backend/internal/model"
	"examgen-backend/internal/repository"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type CreateExamInput struct {
	PDFPath      string
	PDFName      string
	ExamType     model.ExamType
	Difficulty   model.Difficulty
	NumQuestions int
}

type ExamService interface {
	// CreateFromPDF runs the full pipeline: extract content from the uploaded
	// PDF, generate questions with the model and persist the resulting exam.
	CreateFromPDF(ctx context.Context, userID string, input CreateExamInput) (*dto.ExamResponse, error)
	ListExams(userID string) ([]dto.ExamSummaryResponse, error)
	GetExam(examID, userID string) (*dto.ExamResponse, error)
	DeleteExam(examID, userID string) error
}

type examService struct {
	examRepo  repository.ExamRepository
	extractor ExtractorService
	generator GenerationClient
}

func NewExamService(examRepo repository.ExamRepository, extractor ExtractorService, generator GenerationClient) ExamService {
	return &examService{examRepo: examRepo, extractor: extractor, generator: generator}
}

func (s *examService) CreateFromPDF(ctx context.Context, userID string, input CreateExamInput) (*dto.ExamResponse, error) {
	if !strings.EqualFold(filepath.Ext(input.PDFName), ".pdf") {
		return nil, fmt.Errorf("%w: %s", ErrNotPDF, input.PDFName)
	}
	if !input.ExamType.Valid() {
		return nil, fmt.Errorf("%w: %s", ErrInvalidExamType, input.ExamType)
	}
	if !input.Difficulty.Valid() {
		return nil, fmt.Errorf("%w: %s", ErrInvalidDifficulty, input.Difficulty)
	}

	questions, err := s.generateQuestions(ctx, input)
	if err != nil {
		return nil, err
	}
	if len(questions) == 0 {
		return nil, ErrNoUsableQuestions
	}

	exam := &model.Exam{
		ID:         uuid.NewString(),
		UserID:     userID,
		Title:      examTitle(input.PDFName),
		ExamType:   input.ExamType,
		Difficulty: input.Difficulty,
		Questions:  questions,
		PDFName:    input.PDFName,
		CreatedAt:  time.Now().UTC(),
	}
	for i := range exam.Questions {
		exam.Questions[i].ExamID = exam.ID
	}

	if err := s.examRepo.Create(exam); err != nil {
		return nil, fmt.Errorf("persisting exam: %w", err)
	}

	log.Info().Str("exam_id", exam.ID).Str("user_id", userID).
		Int("questions", len(exam.Questions)).Str("exam_type", string(exam.ExamType)).
		Msg("Exam created")

	return toExamResponse(exam)
}

// generateQuestions builds the prompt for the requested exam type, calls the
// model and parses its answer. Image-based exams fall back to multiple choice
// text generation when no page image can be produced; input is a copy, so the
// stored exam keeps the requested type.
func (s *examService) generateQuestions(ctx context.Context, input CreateExamInput) ([]model.Question, error) {
	if input.ExamType == model.ExamImageBased {
		images := s.extractor.ExtractImages(ctx, input.PDFPath)
		if len(images) > 0 {
			prompt := BuildImagePrompt(input.Difficulty, input.NumQuestions)
			raw, err := s.generator.Generate(ctx, prompt, images)
			if err != nil {
				return nil, err
			}
			return ParseQuestions(raw, images)
		}
		log.Warn().Str("pdf", input.PDFName).Msg("No page images rendered, falling back to text questions")
		input.ExamType = model.ExamMultipleChoice
	}

	content, err := s.extractor.ExtractText(input.PDFPath)
	if err != nil {
		return nil, err
	}

	prompt := BuildPrompt(content, input.ExamType, input.Difficulty, input.NumQuestions)
	raw, err := s.generator.Generate(ctx, prompt, nil)
	if err != nil {
		return nil, err
	}
	return ParseQuestions(raw, nil)
}

func (s *examService) ListExams(userID string) ([]dto.ExamSummaryResponse, error) {
	exams, err := s.examRepo.FindAllByUser(userID)
	if err != nil {
		return nil, err
	}
	summaries := make([]dto.ExamSummaryResponse, 0, len(exams))
	for _, exam := range exams {
		var summary dto.ExamSummaryResponse
		if err := copier.Copy(&summary, &exam); err != nil {
			return nil, err
		}
		summary.QuestionCount = len(exam.Questions)
		summaries = append(summaries, summary)
	}
	return summaries, nil
}

func (s *examService) GetExam(examID, userID string) (*dto.ExamResponse, error) {
	exam, err := s.examRepo.FindByIDAndUser(examID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return toExamResponse(exam)
}

func (s *examService) DeleteExam(examID, userID string) error {
	if err := s.examRepo.DeleteWithResults(examID, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	log.Info().Str("exam_id", examID).Str("user_id", userID).Msg("Exam deleted")
	return nil
}

func examTitle(pdfName string) string {
	if pdfName == "" {
		return "Exam from PDF"
	}
	return "Exam from " + pdfName
}

func toExamResponse(exam *model.Exam) (*dto.ExamResponse, error) {
	var resp dto.ExamResponse
	if err := copier.Copy(&resp, exam); err != nil {
		return nil, err
	}
	return &resp, nil
}
