package dto

import "time"

// CreateExamRequest is the multipart form accompanying the uploaded PDF.
type CreateExamRequest struct {
	ExamType     string `form:"exam_type" binding:"required,oneof=multiple_choice true_false fill_blank open_ended image_based mixed"`
	Difficulty   string `form:"difficulty" binding:"required,oneof=easy medium hard"`
	NumQuestions int    `form:"num_questions" binding:"required,min=5,max=50"`
}

type QuestionResponse struct {
	ID            string   `json:"id"`
	QuestionText  string   `json:"question_text"`
	QuestionType  string   `json:"question_type"`
	Options       []string `json:"options,omitempty"`
	CorrectAnswer string   `json:"correct_answer"`
	Explanation   string   `json:"explanation,omitempty"`
	ImageData     string   `json:"image_data,omitempty"`
}

type ExamResponse struct {
	ID         string             `json:"id"`
	UserID     string             `json:"user_id"`
	Title      string             `json:"title"`
	ExamType   string             `json:"exam_type"`
	Difficulty string             `json:"difficulty"`
	Questions  []QuestionResponse `json:"questions"`
	PDFName    string             `json:"pdf_name,omitempty"`
	CreatedAt  time.Time          `json:"created_at"`
}

// ExamSummaryResponse is used when listing exams; question payloads (which may
// carry embedded images) are omitted.
type ExamSummaryResponse struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	ExamType      string    `json:"exam_type"`
	Difficulty    string    `json:"difficulty"`
	QuestionCount int       `json:"question_count"`
	PDFName       string    `json:"pdf_name,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

type ErrorResponse struct {
	Message string   `json:"message"`
	Details []string `json:"details,omitempty"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
