package service

import (
	"context"
	"encoding/base64"
	"fmt"

	"examgen-backend/config"

	"github.com/google/generative-ai-go/genai"
	"github.com/rs/zerolog/log"
	"google.golang.org/api/option"
)

// preferredModels is tried in order at startup; the first that resolves wins.
var preferredModels = []string{
	"gemini-2.5-pro",
	"gemini-2.5-flash",
	"gemini-2.0-flash",
	"gemini-pro-latest",
}

// GenerationClient wraps the external text/vision model call. One request in,
// raw text out; no retries, a failure surfaces to the caller as-is.
type GenerationClient interface {
	Generate(ctx context.Context, prompt string, images []string) (string, error)
}

type geminiService struct {
	model     *genai.GenerativeModel
	modelName string
}

// NewGeminiService builds the Gemini client and resolves a backing model from
// the preference list. With no API key configured it returns a non-functional
// client so the rest of the application can still start.
func NewGeminiService(cfg *config.Config) (GenerationClient, error) {
	if cfg.GeminiApiKey == "" {
		log.Warn().Msg("GEMINI_API_KEY is not set. Exam generation will be non-functional.")
		return &geminiService{}, nil
	}

	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.GeminiApiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Gemini client: %w", err)
	}

	for _, name := range preferredModels {
		m := client.GenerativeModel(name)
		if _, err := m.Info(ctx); err != nil {
			log.Warn().Err(err).Str("model", name).Msg("Model unavailable, trying next candidate")
			continue
		}
		log.Info().Str("model", name).Msg("Generative model resolved")
		return &geminiService{model: m, modelName: name}, nil
	}

	return nil, ErrNoModelAvailable
}

func (s *geminiService) Generate(ctx context.Context, prompt string, images []string) (string, error) {
	if s.model == nil {
		return "", ErrNoModelAvailable
	}

	parts := make([]genai.Part, 0, len(images)+1)
	parts = append(parts, genai.Text(prompt))
	for i, b64 := range images {
		data, err := base64.StdEncoding.DecodeString(b64)
		if err != nil {
			return "", fmt.Errorf("decode image %d: %w", i, err)
		}
		parts = append(parts, genai.ImageData("jpeg", data))
	}

	resp, err := s.model.GenerateContent(ctx, parts...)
	if err != nil {
		log.Error().Err(err).Str("model", s.modelName).Msg("Gemini API call failed")
		return "", fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("%w: model returned no content", ErrGenerationFailed)
	}

	var text string
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			text += string(txt)
		}
	}
	if text == "" {
		return "", fmt.Errorf("%w: model returned no text content", ErrGenerationFailed)
	}
	return text, nil
}
