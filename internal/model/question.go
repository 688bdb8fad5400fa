package model

// Question is a single generated exam item. Questions are exclusively owned by
// one exam, written once during assembly and never mutated afterwards.
//
// QuestionType determines which optional fields are populated: Options is set
// for multiple_choice and image_based questions, ImageData only for image_based.
type Question struct {
	ID            string       `gorm:"primaryKey;size:36" json:"id"`
	ExamID        string       `gorm:"size:36;not null;index" json:"-"`
	QuestionText  string       `gorm:"type:text;not null" json:"question_text"`
	QuestionType  QuestionType `gorm:"size:32;not null" json:"question_type"`
	Options       []string     `gorm:"serializer:json" json:"options,omitempty"`
	CorrectAnswer string       `gorm:"type:text;not null" json:"correct_answer"`
	Explanation   string       `gorm:"type:text" json:"explanation,omitempty"`
	ImageData     string       `gorm:"type:text" json:"image_data,omitempty"` // base64 JPEG
	Position      int          `gorm:"not null" json:"-"`
}
