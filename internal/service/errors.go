package service

import "errors"

// Pipeline errors, grouped by the stage that raises them. Controllers map
// these onto HTTP statuses; nothing partial is persisted once one occurs.
var (
	// Input validation.
	ErrNotPDF             = errors.New("only PDF files are accepted")
	ErrNoExtractableText  = errors.New("could not extract text from PDF")
	ErrInvalidExamType    = errors.New("invalid exam type")
	ErrInvalidDifficulty  = errors.New("invalid difficulty")

	// Generation, terminal for the whole request.
	ErrNoModelAvailable  = errors.New("no generative model available")
	ErrGenerationFailed  = errors.New("generation request failed")
	ErrMalformedResponse = errors.New("malformed generation response")
	ErrNoUsableQuestions = errors.New("generation produced no usable questions")

	// Lookup and auth.
	ErrNotFound           = errors.New("resource not found")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
)
