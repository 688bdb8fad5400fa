package service

import (
	"errors"
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

type GradingService interface {
	SubmitExam(userID string, req dto.SubmitExamRequest) (*dto.ExamResultResponse, error)
	ListResults(userID string) ([]dto.ExamResultResponse, error)
	GetResult(resultID, userID string) (*dto.ExamResultResponse, error)
}

type gradingService struct {
	examRepo   repository.ExamRepository
	resultRepo repository.ResultRepository
}

func NewGradingService(examRepo repository.ExamRepository, resultRepo repository.ResultRepository) GradingService {
	return &gradingService{examRepo: examRepo, resultRepo: resultRepo}
}

func (s *gradingService) SubmitExam(userID string, req dto.SubmitExamRequest) (*dto.ExamResultResponse, error) {
	exam, err := s.examRepo.FindByIDAndUser(req.ExamID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	result := gradeExam(exam, req.Answers)
	result.ID = uuid.NewString()
	result.UserID = userID
	result.SubmittedAt = time.Now().UTC()

	if err := s.resultRepo.Create(result); err != nil {
		return nil, err
	}

	log.Info().Str("result_id", result.ID).Str("exam_id", exam.ID).Str("user_id", userID).
		Float64("score", result.Score).Msg("Exam submitted")

	return toResultResponse(result)
}

// gradeExam compares the submitted answers against the exam's questions.
// The submission is copied onto the result verbatim; answers referencing
// unknown question IDs get no feedback entry and no score effect. Questions
// left unanswered still count toward the total but produce no feedback entry.
func gradeExam(exam *model.Exam, answers []dto.AnswerInput) *model.ExamResult {
	byID := make(map[string]*model.Question, len(exam.Questions))
	for i := range exam.Questions {
		byID[exam.Questions[i].ID] = &exam.Questions[i]
	}

	result := &model.ExamResult{
		ExamID:         exam.ID,
		TotalQuestions: len(exam.Questions),
		Answers:        make([]model.AnswerRecord, 0, len(answers)),
		Feedback:       make([]model.FeedbackRecord, 0, len(answers)),
	}

	for _, answer := range answers {
		result.Answers = append(result.Answers, model.AnswerRecord{
			QuestionID: answer.QuestionID,
			UserAnswer: answer.UserAnswer,
		})

		question, ok := byID[answer.QuestionID]
		if !ok {
			log.Warn().Str("question_id", answer.QuestionID).Str("exam_id", exam.ID).
				Msg("Answer references unknown question, excluded from grading")
			continue
		}

		correct := answersMatch(answer.UserAnswer, question.CorrectAnswer)
		if correct {
			result.CorrectAnswers++
		}

		result.Feedback = append(result.Feedback, model.FeedbackRecord{
			QuestionID:    question.ID,
			IsCorrect:     correct,
			CorrectAnswer: question.CorrectAnswer,
			UserAnswer:    answer.UserAnswer,
			Explanation:   question.Explanation,
		})
	}

	if result.TotalQuestions > 0 {
		result.Score = float64(result.CorrectAnswers) / float64(result.TotalQuestions) * 100
	}
	return result
}

func answersMatch(given, expected string) bool {
	return strings.EqualFold(strings.TrimSpace(given), strings.TrimSpace(expected))
}

func (s *gradingService) ListResults(userID string) ([]dto.ExamResultResponse, error) {
	results, err := s.resultRepo.FindAllByUser(userID)
	if err != nil {
		return nil, err
	}
	responses := make([]dto.ExamResultResponse, 0, len(results))
	for i := range results {
		resp, err := toResultResponse(&results[i])
		if err != nil {
			return nil, err
		}
		responses = append(responses, *resp)
	}
	return responses, nil
}

func (s *gradingService) GetResult(resultID, userID string) (*dto.ExamResultResponse, error) {
	result, err := s.resultRepo.FindByIDAndUser(resultID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return toResultResponse(result)
}

func toResultResponse(result *model.ExamResult) (*dto.ExamResultResponse, error) {
	var resp dto.ExamResultResponse
	if err := copier.Copy(&resp, result); err != nil {
		return nil, err
	}
	return &resp, nil
}
