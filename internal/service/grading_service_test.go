package service

import (
	"errors"
	"math"
	"testing"

	"examgen-backend/internal/dto"
	"examgen-backend/internal/model"

	"gorm.io/gorm"
)

type fakeResultRepo struct {
	results map[string]*model.ExamResult
}

func newFakeResultRepo() *fakeResultRepo {
	return &fakeResultRepo{results: make(map[string]*model.ExamResult)}
}

func (r *fakeResultRepo) Create(result *model.ExamResult) error {
	r.results[result.ID] = result
	return nil
}

func (r *fakeResultRepo) FindAllByUser(userID string) ([]model.ExamResult, error) {
	var out []model.ExamResult
	for _, res := range r.results {
		if res.UserID == userID {
			out = append(out, *res)
		}
	}
	return out, nil
}

func (r *fakeResultRepo) FindByIDAndUser(resultID, userID string) (*model.ExamResult, error) {
	if res, ok := r.results[resultID]; ok && res.UserID == userID {
		return res, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func threeQuestionExam() *model.Exam {
	return &model.Exam{
		ID: "exam-1",
		Questions: []model.Question{
			{ID: "q1", CorrectAnswer: "Ankara", Explanation: "Başkent Ankara'dır."},
			{ID: "q2", CorrectAnswer: "Doğru"},
			{ID: "q3", CorrectAnswer: "B"},
		},
	}
}

func TestGradeExamScoresAnswers(t *testing.T) {
	result := gradeExam(threeQuestionExam(), []dto.AnswerInput{
		{QuestionID: "q1", UserAnswer: "Ankara"},
		{QuestionID: "q2", UserAnswer: "Yanlış"},
		{QuestionID: "q3", UserAnswer: "B"},
	})

	if result.TotalQuestions != 3 {
		t.Errorf("total = %d, want 3", result.TotalQuestions)
	}
	if result.CorrectAnswers != 2 {
		t.Errorf("correct = %d, want 2", result.CorrectAnswers)
	}
	want := 2.0 / 3.0 * 100
	if math.Abs(result.Score-want) > 1e-9 {
		t.Errorf("score = %f, want %f", result.Score, want)
	}

	if len(result.Feedback) != 3 {
		t.Fatalf("feedback entries = %d, want 3", len(result.Feedback))
	}
	if result.Feedback[0].Explanation != "Başkent Ankara'dır." {
		t.Errorf("feedback lost the explanation: %q", result.Feedback[0].Explanation)
	}
	if result.Feedback[1].IsCorrect {
		t.Error("wrong answer marked correct")
	}
}

func TestGradeExamIsCaseAndWhitespaceInsensitive(t *testing.T) {
	result := gradeExam(threeQuestionExam(), []dto.AnswerInput{
		{QuestionID: "q1", UserAnswer: "  ankara  "},
		{QuestionID: "q3", UserAnswer: "b"},
	})
	if result.CorrectAnswers != 2 {
		t.Errorf("correct = %d, want 2", result.CorrectAnswers)
	}
}

func TestGradeExamUnansweredCountsInDenominator(t *testing.T) {
	result := gradeExam(threeQuestionExam(), []dto.AnswerInput{
		{QuestionID: "q1", UserAnswer: "Ankara"},
	})

	if result.TotalQuestions != 3 {
		t.Errorf("total = %d, want 3", result.TotalQuestions)
	}
	want := 1.0 / 3.0 * 100
	if math.Abs(result.Score-want) > 1e-9 {
		t.Errorf("score = %f, want %f", result.Score, want)
	}
	// Unanswered questions get no feedback entry.
	if len(result.Feedback) != 1 || len(result.Answers) != 1 {
		t.Errorf("feedback/answers = %d/%d, want 1/1", len(result.Feedback), len(result.Answers))
	}
}

func TestGradeExamExcludesUnknownQuestionIDsFromGrading(t *testing.T) {
	result := gradeExam(threeQuestionExam(), []dto.AnswerInput{
		{QuestionID: "bogus", UserAnswer: "Ankara"},
		{QuestionID: "q2", UserAnswer: "Doğru"},
	})

	if result.CorrectAnswers != 1 {
		t.Errorf("correct = %d, want 1", result.CorrectAnswers)
	}
	// The submission is stored as sent; only grading skips the unknown id.
	if len(result.Answers) != 2 {
		t.Errorf("answers = %d, want 2 (full submission copied)", len(result.Answers))
	}
	if result.Answers[0].QuestionID != "bogus" || result.Answers[0].UserAnswer != "Ankara" {
		t.Errorf("submitted answer not copied verbatim: %+v", result.Answers[0])
	}
	if len(result.Feedback) != 1 {
		t.Errorf("feedback = %d, want 1 (unknown id gets none)", len(result.Feedback))
	}
	if result.Feedback[0].QuestionID != "q2" {
		t.Errorf("feedback for wrong question: %+v", result.Feedback[0])
	}
}

func TestGradeExamNoQuestions(t *testing.T) {
	result := gradeExam(&model.Exam{ID: "empty"}, []dto.AnswerInput{
		{QuestionID: "q1", UserAnswer: "x"},
	})
	if result.Score != 0 {
		t.Errorf("score = %f, want 0", result.Score)
	}
	if result.TotalQuestions != 0 || result.CorrectAnswers != 0 {
		t.Errorf("unexpected counts: %+v", result)
	}
}

func TestGradeExamIdempotent(t *testing.T) {
	answers := []dto.AnswerInput{
		{QuestionID: "q1", UserAnswer: "Ankara"},
		{QuestionID: "q2", UserAnswer: "Doğru"},
	}
	first := gradeExam(threeQuestionExam(), answers)
	second := gradeExam(threeQuestionExam(), answers)
	if first.Score != second.Score || first.CorrectAnswers != second.CorrectAnswers {
		t.Errorf("grading is not deterministic: %f vs %f", first.Score, second.Score)
	}
}

func TestSubmitExamPersistsAndStampsResult(t *testing.T) {
	examRepo := newFakeExamRepo()
	exam := threeQuestionExam()
	exam.UserID = "user-1"
	examRepo.exams[exam.ID] = exam

	resultRepo := newFakeResultRepo()
	svc := NewGradingService(examRepo, resultRepo)

	resp, err := svc.SubmitExam("user-1", dto.SubmitExamRequest{
		ExamID:  exam.ID,
		Answers: []dto.AnswerInput{{QuestionID: "q1", UserAnswer: "Ankara"}},
	})
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	if resp.ID == "" || resp.SubmittedAt.IsZero() {
		t.Error("result missing ID or timestamp")
	}
	if resp.ExamID != exam.ID || resp.UserID != "user-1" {
		t.Errorf("result ownership wrong: %+v", resp)
	}
	if _, ok := resultRepo.results[resp.ID]; !ok {
		t.Error("result not persisted")
	}
}

func TestSubmitExamUnknownExam(t *testing.T) {
	svc := NewGradingService(newFakeExamRepo(), newFakeResultRepo())
	_, err := svc.SubmitExam("user-1", dto.SubmitExamRequest{ExamID: "missing"})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("got %v, want ErrNotFound", err)
	}
}

func TestGetResultOwnership(t *testing.T) {
	resultRepo := newFakeResultRepo()
	resultRepo.results["r1"] = &model.ExamResult{ID: "r1", UserID: "owner"}
	svc := NewGradingService(newFakeExamRepo(), resultRepo)

	if _, err := svc.GetResult("r1", "intruder"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("foreign read: got %v, want ErrNotFound", err)
	}
	if _, err := svc.GetResult("r1", "owner"); err != nil {
		t.Fatalf("owner read failed: %v", err)
	}
}

func TestAnswersMatch(t *testing.T) {
	cases := []struct {
		given, expected string
		want            bool
	}{
		{"Ankara", "Ankara", true},
		{"ankara", "Ankara", true},
		{" Ankara ", "Ankara", true},
		{"İstanbul", "Ankara", false},
		{"", "", true},
	}
	for _, tc := range cases {
		if got := answersMatch(tc.given, tc.expected); got != tc.want {
			t.Errorf("answersMatch(%q, %q) = %v, want %v", tc.given, tc.expected, got, tc.want)
		}
	}
}
