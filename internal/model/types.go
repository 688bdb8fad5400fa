package model

// ExamType is the closed set of exam kinds a user may request.
type ExamType string

const (
	ExamMultipleChoice ExamType = "multiple_choice"
	ExamTrueFalse      ExamType = "true_false"
	ExamFillBlank      ExamType = "fill_blank"
	ExamOpenEnded      ExamType = "open_ended"
	ExamImageBased     ExamType = "image_based"
	ExamMixed          ExamType = "mixed"
)

func (t ExamType) Valid() bool {
	switch t {
	case ExamMultipleChoice, ExamTrueFalse, ExamFillBlank, ExamOpenEnded, ExamImageBased, ExamMixed:
		return true
	}
	return false
}

// QuestionType is the closed set of generated question shapes. Unlike ExamType
// it has no "mixed" member; a mixed exam owns questions of the other types.
type QuestionType string

const (
	QuestionMultipleChoice QuestionType = "multiple_choice"
	QuestionTrueFalse      QuestionType = "true_false"
	QuestionFillBlank      QuestionType = "fill_blank"
	QuestionOpenEnded      QuestionType = "open_ended"
	QuestionImageBased     QuestionType = "image_based"
)

func (t QuestionType) Valid() bool {
	switch t {
	case QuestionMultipleChoice, QuestionTrueFalse, QuestionFillBlank, QuestionOpenEnded, QuestionImageBased:
		return true
	}
	return false
}

type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

// TurkishLabel returns the difficulty wording used inside generation prompts.
func (d Difficulty) TurkishLabel() string {
	switch d {
	case DifficultyEasy:
		return "kolay"
	case DifficultyMedium:
		return "orta"
	case DifficultyHard:
		return "zor"
	}
	return string(d)
}
