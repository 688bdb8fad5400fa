package dto

import "time"

type AnswerInput struct {
	QuestionID string `json:"question_id" binding:"required"`
	UserAnswer string `json:"user_answer" binding:"required"`
}

type SubmitExamRequest struct {
	ExamID  string        `json:"exam_id" binding:"required"`
	Answers []AnswerInput `json:"answers" binding:"required,dive"`
}

type AnswerResponse struct {
	QuestionID string `json:"question_id"`
	UserAnswer string `json:"user_answer"`
}

type FeedbackResponse struct {
	QuestionID    string `json:"question_id"`
	IsCorrect     bool   `json:"is_correct"`
	CorrectAnswer string `json:"correct_answer"`
	UserAnswer    string `json:"user_answer"`
	Explanation   string `json:"explanation"`
}

type ExamResultResponse struct {
	ID             string             `json:"id"`
	ExamID         string             `json:"exam_id"`
	UserID         string             `json:"user_id"`
	Score          float64            `json:"score"`
	TotalQuestions int                `json:"total_questions"`
	CorrectAnswers int                `json:"correct_answers"`
	Answers        []AnswerResponse   `json:"answers"`
	Feedback       []FeedbackResponse `json:"feedback"`
	SubmittedAt    time.Time          `json:"submitted_at"`
}
