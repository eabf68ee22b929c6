package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/canvasstudy/internal/app/models/dto"
	"github.com/yigit/canvasstudy/internal/app/services"
	"github.com/yigit/canvasstudy/internal/middleware"
)

// StudyController exposes note generation and question answering
type StudyController struct {
	studyService services.StudyService
}

// NewStudyController creates a new StudyController
func NewStudyController(studyService services.StudyService) *StudyController {
	return &StudyController{studyService: studyService}
}

// GenerateNotes godoc
// @Summary Generate study notes from text
// @Tags ai
// @Accept json
// @Produce json
// @Param request body dto.GenerateNotesRequest true "Extracted text and optional file and course names"
// @Success 200 {object} dto.NotesResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 429 {object} dto.ErrorResponse
// @Failure 502 {object} dto.ErrorResponse
// @Failure 503 {object} dto.ErrorResponse
// @Router /ai/generate-notes [post]
func (sc *StudyController) GenerateNotes(ctx *gin.Context) {
	var req dto.GenerateNotesRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleAPIError(ctx, middleware.BindingError(err))
		return
	}

	resp, err := sc.studyService.GenerateNotes(ctx.Request.Context(), req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, resp)
}

// AnswerQuestion godoc
// @Summary Answer a question about course material
// @Description Without context the model answers from general knowledge and says so.
// @Tags ai
// @Accept json
// @Produce json
// @Param request body dto.AnswerQuestionRequest true "Question and optional context"
// @Success 200 {object} dto.AnswerResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 429 {object} dto.ErrorResponse
// @Failure 502 {object} dto.ErrorResponse
// @Failure 503 {object} dto.ErrorResponse
// @Router /ai/answer-question [post]
func (sc *StudyController) AnswerQuestion(ctx *gin.Context) {
	var req dto.AnswerQuestionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleAPIError(ctx, middleware.BindingError(err))
		return
	}

	resp, err := sc.studyService.AnswerQuestion(ctx.Request.Context(), req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, resp)
}
