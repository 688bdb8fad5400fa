package controller

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"examgen-backend/internal/service"

	"github.com/gin-gonic/gin"
)

func TestRespondExamErrorStatusMapping(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		name string
		err  error
		want int
	}{
		{"not a pdf", service.ErrNotPDF, http.StatusBadRequest},
		{"invalid exam type", service.ErrInvalidExamType, http.StatusBadRequest},
		{"invalid difficulty", service.ErrInvalidDifficulty, http.StatusBadRequest},
		{"no extractable text", service.ErrNoExtractableText, http.StatusBadRequest},
		{"malformed response", service.ErrMalformedResponse, http.StatusInternalServerError},
		{"no usable questions", service.ErrNoUsableQuestions, http.StatusInternalServerError},
		{"no model available", service.ErrNoModelAvailable, http.StatusBadGateway},
		{"generation failed", service.ErrGenerationFailed, http.StatusBadGateway},
		{"unexpected error", errors.New("db down"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			ctx, _ := gin.CreateTestContext(w)

			// Services wrap sentinels; the mapping must see through that.
			respondExamError(ctx, fmt.Errorf("creating exam: %w", tc.err))

			if w.Code != tc.want {
				t.Fatalf("status = %d, want %d", w.Code, tc.want)
			}
		})
	}
}
