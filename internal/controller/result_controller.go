package controller

import (
	"errors"
	"net/http"

	"examgen-backend/internal/dto"
	"examgen-backend/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type ResultController struct {
	gradingService service.GradingService
}

func NewResultController(gradingService service.GradingService) *ResultController {
	return &ResultController{gradingService: gradingService}
}

// SubmitExam godoc
// @Summary Submit answers for an exam
// @Description Grades the submitted answers against the exam and stores the result.
// @Tags Results
// @Accept json
// @Produce json
// @Param submission body dto.SubmitExamRequest true "Exam ID and answers"
// @Success 201 {object} dto.ExamResultResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid request body"
// @Failure 401 {object} dto.ErrorResponse "Missing or invalid token"
// @Failure 404 {object} dto.ErrorResponse "Exam not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Security BearerAuth
// @Router /exams/submit [post]
func (c *ResultController) SubmitExam(ctx *gin.Context) {
	var req dto.SubmitExamRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	result, err := c.gradingService.SubmitExam(currentUserID(ctx), req)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Message: "Exam not found"})
			return
		}
		log.Error().Err(err).Str("examID", req.ExamID).Msg("SubmitExam: Service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to submit exam"})
		return
	}
	ctx.JSON(http.StatusCreated, result)
}

// ListResults godoc
// @Summary List the caller's exam results
// @Tags Results
// @Produce json
// @Success 200 {array} dto.ExamResultResponse
// @Failure 401 {object} dto.ErrorResponse "Missing or invalid token"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Security BearerAuth
// @Router /results [get]
func (c *ResultController) ListResults(ctx *gin.Context) {
	results, err := c.gradingService.ListResults(currentUserID(ctx))
	if err != nil {
		log.Error().Err(err).Msg("ListResults: Service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to retrieve results"})
		return
	}
	ctx.JSON(http.StatusOK, results)
}

// GetResult godoc
// @Summary Get one exam result
// @Tags Results
// @Produce json
// @Param result_id path string true "Result ID"
// @Success 200 {object} dto.ExamResultResponse
// @Failure 401 {object} dto.ErrorResponse "Missing or invalid token"
// @Failure 404 {object} dto.ErrorResponse "Result not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Security BearerAuth
// @Router /results/{result_id} [get]
func (c *ResultController) GetResult(ctx *gin.Context) {
	result, err := c.gradingService.GetResult(ctx.Param("result_id"), currentUserID(ctx))
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Message: "Result not found"})
			return
		}
		log.Error().Err(err).Str("resultID", ctx.Param("result_id")).Msg("GetResult: Service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to retrieve result"})
		return
	}
	ctx.JSON(http.StatusOK, result)
}
