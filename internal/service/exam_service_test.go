package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"examgen-backend/internal/model"

	"gorm.io/gorm"
)

type fakeExamRepo struct {
	exams map[string]*model.Exam
}

func newFakeExamRepo() *fakeExamRepo {
	return &fakeExamRepo{exams: make(map[string]*model.Exam)}
}

func (r *fakeExamRepo) Create(exam *model.Exam) error {
	r.exams[exam.ID] = exam
	return nil
}

func (r *fakeExamRepo) FindAllByUser(userID string) ([]model.Exam, error) {
	var out []model.Exam
	for _, e := range r.exams {
		if e.UserID == userID {
			out = append(out, *e)
		}
	}
	return out, nil
}

func (r *fakeExamRepo) FindByIDAndUser(examID, userID string) (*model.Exam, error) {
	if e, ok := r.exams[examID]; ok && e.UserID == userID {
		return e, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeExamRepo) DeleteWithResults(examID, userID string) error {
	if e, ok := r.exams[examID]; ok && e.UserID == userID {
		delete(r.exams, examID)
		return nil
	}
	return gorm.ErrRecordNotFound
}

type fakeExtractor struct {
	text    string
	textErr error
	images  []string
}

func (f *fakeExtractor) ExtractText(path string) (string, error) {
	return f.text, f.textErr
}

func (f *fakeExtractor) ExtractImages(ctx context.Context, path string) []string {
	return f.images
}

type fakeGenerator struct {
	response   string
	err        error
	lastPrompt string
	lastImages []string
}

func (f *fakeGenerator) Generate(ctx context.Context, prompt string, images []string) (string, error) {
	f.lastPrompt = prompt
	f.lastImages = images
	return f.response, f.err
}

const generatedBatch = `[
  {"question_text": "Soru 1", "question_type": "multiple_choice",
   "options": ["A. a", "B. b", "C. c", "D. d", "E. e"], "correct_answer": "A", "explanation": "açıklama"},
  {"question_text": "Soru 2", "question_type": "true_false", "correct_answer": "Doğru", "explanation": ""}
]`

func textInput() CreateExamInput {
	return CreateExamInput{
		PDFPath:      "/tmp/doc.pdf",
		PDFName:      "ders-notlari.pdf",
		ExamType:     model.ExamMultipleChoice,
		Difficulty:   model.DifficultyMedium,
		NumQuestions: 5,
	}
}

func TestCreateFromPDFTextPipeline(t *testing.T) {
	repo := newFakeExamRepo()
	gen := &fakeGenerator{response: generatedBatch}
	svc := NewExamService(repo, &fakeExtractor{text: "ders içeriği"}, gen)

	resp, err := svc.CreateFromPDF(context.Background(), "user-1", textInput())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if resp.Title != "Exam from ders-notlari.pdf" {
		t.Errorf("title = %q", resp.Title)
	}
	if resp.UserID != "user-1" {
		t.Errorf("user = %q", resp.UserID)
	}
	if len(resp.Questions) != 2 {
		t.Fatalf("questions = %d, want 2", len(resp.Questions))
	}
	if gen.lastImages != nil {
		t.Error("text pipeline must not attach images")
	}
	if !strings.Contains(gen.lastPrompt, "ders içeriği") {
		t.Error("extracted text missing from prompt")
	}

	stored, err := repo.FindByIDAndUser(resp.ID, "user-1")
	if err != nil {
		t.Fatalf("exam not persisted: %v", err)
	}
	for i, q := range stored.Questions {
		if q.ExamID != stored.ID {
			t.Errorf("question %d not linked to exam", i)
		}
	}
}

func TestCreateFromPDFImagePipeline(t *testing.T) {
	imageBatch := `[{"question_text": "Görseldeki nedir?", "question_type": "image_based",
	 "options": ["A. a", "B. b", "C. c", "D. d", "E. e"], "correct_answer": "A",
	 "explanation": "", "image_index": 0}]`
	gen := &fakeGenerator{response: imageBatch}
	svc := NewExamService(newFakeExamRepo(), &fakeExtractor{images: []string{"img0"}}, gen)

	input := textInput()
	input.ExamType = model.ExamImageBased

	resp, err := svc.CreateFromPDF(context.Background(), "user-1", input)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if len(gen.lastImages) != 1 {
		t.Fatalf("images passed to generator = %d, want 1", len(gen.lastImages))
	}
	if resp.Questions[0].ImageData != "img0" {
		t.Error("question did not keep its page image")
	}
	if resp.ExamType != string(model.ExamImageBased) {
		t.Errorf("exam type = %q", resp.ExamType)
	}
}

func TestCreateFromPDFImageFallsBackToText(t *testing.T) {
	gen := &fakeGenerator{response: generatedBatch}
	// No page images can be rendered, but the text layer exists.
	svc := NewExamService(newFakeExamRepo(), &fakeExtractor{text: "içerik"}, gen)

	input := textInput()
	input.ExamType = model.ExamImageBased

	resp, err := svc.CreateFromPDF(context.Background(), "user-1", input)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if gen.lastImages != nil {
		t.Error("fallback must generate without images")
	}
	if !strings.Contains(gen.lastPrompt, "çoktan seçmeli") {
		t.Error("fallback must ask for multiple choice questions")
	}
	// The fallback changes what is generated, not what was requested.
	if resp.ExamType != string(model.ExamImageBased) {
		t.Errorf("requested exam type must be recorded, got %q", resp.ExamType)
	}
}

func TestCreateFromPDFNoText(t *testing.T) {
	svc := NewExamService(newFakeExamRepo(), &fakeExtractor{textErr: ErrNoExtractableText}, &fakeGenerator{})
	if _, err := svc.CreateFromPDF(context.Background(), "user-1", textInput()); !errors.Is(err, ErrNoExtractableText) {
		t.Fatalf("got %v, want ErrNoExtractableText", err)
	}
}

func TestCreateFromPDFEmptyBatch(t *testing.T) {
	svc := NewExamService(newFakeExamRepo(), &fakeExtractor{text: "içerik"}, &fakeGenerator{response: "[]"})
	if _, err := svc.CreateFromPDF(context.Background(), "user-1", textInput()); !errors.Is(err, ErrNoUsableQuestions) {
		t.Fatalf("got %v, want ErrNoUsableQuestions", err)
	}
}

func TestCreateFromPDFGenerationFailure(t *testing.T) {
	svc := NewExamService(newFakeExamRepo(), &fakeExtractor{text: "içerik"}, &fakeGenerator{err: ErrGenerationFailed})
	if _, err := svc.CreateFromPDF(context.Background(), "user-1", textInput()); !errors.Is(err, ErrGenerationFailed) {
		t.Fatalf("got %v, want ErrGenerationFailed", err)
	}
}

func TestCreateFromPDFValidatesParameters(t *testing.T) {
	svc := NewExamService(newFakeExamRepo(), &fakeExtractor{text: "içerik"}, &fakeGenerator{response: generatedBatch})

	input := textInput()
	input.ExamType = "essay"
	if _, err := svc.CreateFromPDF(context.Background(), "user-1", input); !errors.Is(err, ErrInvalidExamType) {
		t.Fatalf("got %v, want ErrInvalidExamType", err)
	}

	input = textInput()
	input.Difficulty = "impossible"
	if _, err := svc.CreateFromPDF(context.Background(), "user-1", input); !errors.Is(err, ErrInvalidDifficulty) {
		t.Fatalf("got %v, want ErrInvalidDifficulty", err)
	}

	input = textInput()
	input.PDFName = "notes.docx"
	if _, err := svc.CreateFromPDF(context.Background(), "user-1", input); !errors.Is(err, ErrNotPDF) {
		t.Fatalf("got %v, want ErrNotPDF", err)
	}
}

func TestGetAndDeleteExamOwnership(t *testing.T) {
	repo := newFakeExamRepo()
	svc := NewExamService(repo, &fakeExtractor{text: "içerik"}, &fakeGenerator{response: generatedBatch})

	resp, err := svc.CreateFromPDF(context.Background(), "owner", textInput())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if _, err := svc.GetExam(resp.ID, "intruder"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("foreign read: got %v, want ErrNotFound", err)
	}
	if err := svc.DeleteExam(resp.ID, "intruder"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("foreign delete: got %v, want ErrNotFound", err)
	}
	if err := svc.DeleteExam(resp.ID, "owner"); err != nil {
		t.Fatalf("owner delete failed: %v", err)
	}
	if err := svc.DeleteExam(resp.ID, "owner"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("second delete: got %v, want ErrNotFound", err)
	}
}

func TestExamTitleKeepsFullFilename(t *testing.T) {
	if got := examTitle("notlar.pdf"); got != "Exam from notlar.pdf" {
		t.Errorf("got %q", got)
	}
	if got := examTitle("Notlar.PDF"); got != "Exam from Notlar.PDF" {
		t.Errorf("got %q", got)
	}
	if got := examTitle(""); got != "Exam from PDF" {
		t.Errorf("got %q", got)
	}
}
