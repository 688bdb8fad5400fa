package model

import "time"

// AnswerRecord is one submitted (question id, raw answer) pair. Submissions are
// transient; the records are copied into the ExamResult that grading produces.
type AnswerRecord struct {
	QuestionID string `json:"question_id"`
	UserAnswer string `json:"user_answer"`
}

// FeedbackRecord is the per-question grading outcome. Only answered questions
// that belong to the exam get a record; unanswered questions still count
// against the score denominator.
type FeedbackRecord struct {
	QuestionID    string `json:"question_id"`
	IsCorrect     bool   `json:"is_correct"`
	CorrectAnswer string `json:"correct_answer"`
	UserAnswer    string `json:"user_answer"`
	Explanation   string `json:"explanation"`
}

// ExamResult is created once per submission and never mutated. It is deleted
// only as part of deleting the exam it belongs to.
type ExamResult struct {
	ID             string           `gorm:"primaryKey;size:36" json:"id"`
	ExamID         string           `gorm:"size:36;not null;index" json:"exam_id"`
	UserID         string           `gorm:"size:36;not null;index" json:"user_id"`
	Score          float64          `json:"score"`
	TotalQuestions int              `json:"total_questions"`
	CorrectAnswers int              `json:"correct_answers"`
	Answers        []AnswerRecord   `gorm:"serializer:json" json:"answers"`
	Feedback       []FeedbackRecord `gorm:"serializer:json" json:"feedback"`
	SubmittedAt    time.Time        `json:"submitted_at"`
}
