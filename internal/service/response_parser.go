package service

import (
	"encoding/json"
	"fmt"
	"strings"

	"examgen-backend/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// rawQuestion mirrors one element of the JSON array the generation prompt
// demands. Required fields are pointers so a missing key is distinguishable
// from an empty value.
type rawQuestion struct {
	QuestionText  *string  `json:"question_text"`
	QuestionType  *string  `json:"question_type"`
	Options       []string `json:"options"`
	CorrectAnswer *string  `json:"correct_answer"`
	Explanation   string   `json:"explanation"`
	ImageIndex    *int     `json:"image_index"`
}

// stripCodeFence removes a markdown code fence the model may wrap its JSON
// array in: the leading fence line and the trailing fence.
func stripCodeFence(raw string) string {
	s := strings.TrimSpace(raw)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	if i := strings.Index(s, "\n"); i >= 0 {
		s = s[i+1:]
	}
	if i := strings.LastIndex(s, "```"); i >= 0 {
		s = s[:i]
	}
	return strings.TrimSpace(s)
}

// ParseQuestions validates the model's raw response and maps it into owned
// Question entities.
//
// Structural defects fail the whole batch with ErrMalformedResponse: an
// unparsable array, an element missing question_text, question_type or
// correct_answer, or an unknown question type. When images is non-nil the
// response is treated as image-based: every element's image_index selects the
// page image attached to the question, and an out-of-range index drops only
// that element (a content-level defect confined to it).
func ParseQuestions(raw string, images []string) ([]model.Question, error) {
	cleaned := stripCodeFence(raw)

	var elements []rawQuestion
	if err := json.Unmarshal([]byte(cleaned), &elements); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	questions := make([]model.Question, 0, len(elements))
	for i, el := range elements {
		switch {
		case el.QuestionText == nil:
			return nil, fmt.Errorf("%w: element %d missing question_text", ErrMalformedResponse, i)
		case el.QuestionType == nil:
			return nil, fmt.Errorf("%w: element %d missing question_type", ErrMalformedResponse, i)
		case el.CorrectAnswer == nil:
			return nil, fmt.Errorf("%w: element %d missing correct_answer", ErrMalformedResponse, i)
		}

		qType := model.QuestionType(*el.QuestionType)
		if !qType.Valid() {
			return nil, fmt.Errorf("%w: element %d has unknown question_type %q", ErrMalformedResponse, i, *el.QuestionType)
		}

		q := model.Question{
			ID:            uuid.NewString(),
			QuestionText:  *el.QuestionText,
			QuestionType:  qType,
			Options:       el.Options,
			CorrectAnswer: *el.CorrectAnswer,
			Explanation:   el.Explanation,
			Position:      len(questions),
		}

		if images != nil {
			idx := 0
			if el.ImageIndex != nil {
				idx = *el.ImageIndex
			}
			if idx < 0 || idx >= len(images) {
				log.Warn().Int("element", i).Int("image_index", idx).Int("images", len(images)).
					Msg("Dropping question referencing an out-of-range image")
				continue
			}
			q.QuestionType = model.QuestionImageBased
			q.ImageData = images[idx]
		}

		questions = append(questions, q)
	}

	return questions, nil
}
