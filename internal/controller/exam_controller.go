package controller

import (
	"errors"
	"net/http"
	"os"
	"path/filepath"

	"examgen-backend/internal/dto"
	"examgen-backend/internal/middleware"
	"examgen-backend/internal/model"
	"examgen-backend/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type ExamController struct {
	examService service.ExamService
}

func NewExamController(examService service.ExamService) *ExamController {
	return &ExamController{examService: examService}
}

// CreateExam godoc
// @Summary Generate an exam from an uploaded PDF
// @Description Upload a PDF together with exam parameters; questions are generated from its content.
// @Tags Exams
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "PDF document"
// @Param exam_type formData string true "Exam type" Enums(multiple_choice, true_false, fill_blank, open_ended, image_based, mixed)
// @Param difficulty formData string true "Difficulty" Enums(easy, medium, hard)
// @Param num_questions formData int true "Number of questions (5-50)"
// @Success 201 {object} dto.ExamResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid parameters, non-PDF file, or no extractable text"
// @Failure 401 {object} dto.ErrorResponse "Missing or invalid token"
// @Failure 500 {object} dto.ErrorResponse "Generation produced no usable questions"
// @Failure 502 {object} dto.ErrorResponse "Generation backend unavailable"
// @Security BearerAuth
// @Router /exams/create [post]
func (c *ExamController) CreateExam(ctx *gin.Context) {
	var req dto.CreateExamRequest
	if err := ctx.ShouldBind(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid exam parameters", Details: []string{err.Error()}})
		return
	}

	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "A PDF file is required", Details: []string{err.Error()}})
		return
	}
	tmp, err := os.CreateTemp("", "upload-*.pdf")
	if err != nil {
		log.Error().Err(err).Msg("CreateExam: Could not create temp file")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to store uploaded file"})
		return
	}
	tmpPath := tmp.Name()
	tmp.Close()
	defer os.Remove(tmpPath)

	if err := ctx.SaveUploadedFile(fileHeader, tmpPath); err != nil {
		log.Error().Err(err).Msg("CreateExam: Could not save uploaded file")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to store uploaded file"})
		return
	}

	input := service.CreateExamInput{
		PDFPath:      tmpPath,
		PDFName:      filepath.Base(fileHeader.Filename),
		ExamType:     model.ExamType(req.ExamType),
		Difficulty:   model.Difficulty(req.Difficulty),
		NumQuestions: req.NumQuestions,
	}

	resp, err := c.examService.CreateFromPDF(ctx.Request.Context(), currentUserID(ctx), input)
	if err != nil {
		respondExamError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, resp)
}

// ListExams godoc
// @Summary List the caller's exams
// @Description Summaries only; question payloads are omitted.
// @Tags Exams
// @Produce json
// @Success 200 {array} dto.ExamSummaryResponse
// @Failure 401 {object} dto.ErrorResponse "Missing or invalid token"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Security BearerAuth
// @Router /exams [get]
func (c *ExamController) ListExams(ctx *gin.Context) {
	exams, err := c.examService.ListExams(currentUserID(ctx))
	if err != nil {
		log.Error().Err(err).Msg("ListExams: Service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to retrieve exams"})
		return
	}
	ctx.JSON(http.StatusOK, exams)
}

// GetExam godoc
// @Summary Get one exam with its questions
// @Tags Exams
// @Produce json
// @Param exam_id path string true "Exam ID"
// @Success 200 {object} dto.ExamResponse
// @Failure 401 {object} dto.ErrorResponse "Missing or invalid token"
// @Failure 404 {object} dto.ErrorResponse "Exam not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Security BearerAuth
// @Router /exams/{exam_id} [get]
func (c *ExamController) GetExam(ctx *gin.Context) {
	exam, err := c.examService.GetExam(ctx.Param("exam_id"), currentUserID(ctx))
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Message: "Exam not found"})
			return
		}
		log.Error().Err(err).Str("examID", ctx.Param("exam_id")).Msg("GetExam: Service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to retrieve exam"})
		return
	}
	ctx.JSON(http.StatusOK, exam)
}

// DeleteExam godoc
// @Summary Delete an exam
// @Description Removes the exam, its questions and every result submitted for it.
// @Tags Exams
// @Produce json
// @Param exam_id path string true "Exam ID"
// @Success 200 {object} dto.MessageResponse
// @Failure 401 {object} dto.ErrorResponse "Missing or invalid token"
// @Failure 404 {object} dto.ErrorResponse "Exam not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Security BearerAuth
// @Router /exams/{exam_id} [delete]
func (c *ExamController) DeleteExam(ctx *gin.Context) {
	if err := c.examService.DeleteExam(ctx.Param("exam_id"), currentUserID(ctx)); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Message: "Exam not found"})
			return
		}
		log.Error().Err(err).Str("examID", ctx.Param("exam_id")).Msg("DeleteExam: Service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to delete exam"})
		return
	}
	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "Exam deleted"})
}

func currentUserID(ctx *gin.Context) string {
	return ctx.GetString(middleware.UserIDKey)
}

// respondExamError maps pipeline errors onto HTTP statuses. Rejected input,
// including a PDF with no text layer, is the caller's fault (400); a model
// that cannot be reached is an upstream failure (502); a model that answered
// with garbage is a server-side failure (500).
func respondExamError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNotPDF):
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Only PDF files are accepted"})
	case errors.Is(err, service.ErrInvalidExamType), errors.Is(err, service.ErrInvalidDifficulty):
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: err.Error()})
	case errors.Is(err, service.ErrNoExtractableText):
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Could not extract any text from the PDF"})
	case errors.Is(err, service.ErrNoModelAvailable), errors.Is(err, service.ErrGenerationFailed):
		log.Error().Err(err).Msg("CreateExam: Generation backend failure")
		ctx.JSON(http.StatusBadGateway, dto.ErrorResponse{Message: "Question generation is temporarily unavailable"})
	case errors.Is(err, service.ErrNoUsableQuestions), errors.Is(err, service.ErrMalformedResponse):
		log.Error().Err(err).Msg("CreateExam: Generation produced no usable questions")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Could not generate questions from this document"})
	default:
		log.Error().Err(err).Msg("CreateExam: Service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to create exam"})
	}
}
