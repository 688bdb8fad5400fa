package model

import "time"

// Exam is a persisted, immutable ordered collection of generated questions
// tied to one user and one source document.
type Exam struct {
	ID         string     `gorm:"primaryKey;size:36" json:"id"`
	UserID     string     `gorm:"size:36;not null;index" json:"user_id"`
	Title      string     `gorm:"not null" json:"title"`
	ExamType   ExamType   `gorm:"size:32;not null" json:"exam_type"`
	Difficulty Difficulty `gorm:"size:16;not null" json:"difficulty"`
	Questions  []Question `gorm:"foreignKey:ExamID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"questions"`
	PDFName    string     `json:"pdf_name,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}
