package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/canvasstudy/internal/app/models/dto"
	"github.com/yigit/canvasstudy/internal/app/services"
	"github.com/yigit/canvasstudy/internal/middleware"
	"github.com/yigit/canvasstudy/internal/pkg/helpers"
)

// NoteController manages the archive of generated notes
type NoteController struct {
	noteService services.NoteService
}

// NewNoteController creates a new NoteController
func NewNoteController(noteService services.NoteService) *NoteController {
	return &NoteController{noteService: noteService}
}

// ListNotes godoc
// @Summary List archived notes
// @Description Newest first.
// @Tags notes
// @Produce json
// @Param courseId query string false "Filter by course ID"
// @Param page query int false "Page number (default: 1)"
// @Param size query int false "Page size (default: 10, max: 100)"
// @Success 200 {object} dto.NoteListResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /notes [get]
func (nc *NoteController) ListNotes(ctx *gin.Context) {
	page, size := helpers.ParsePaginationParams(ctx)
	query := dto.NoteListQuery{CourseID: ctx.Query("courseId"), Page: page, Size: size}

	resp, err := nc.noteService.List(ctx.Request.Context(), query)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, resp)
}

// CreateNote godoc
// @Summary Archive a note
// @Tags notes
// @Accept json
// @Produce json
// @Param request body dto.CreateNoteRequest true "Note"
// @Success 201 {object} dto.NoteResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /notes [post]
func (nc *NoteController) CreateNote(ctx *gin.Context) {
	var req dto.CreateNoteRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleAPIError(ctx, middleware.BindingError(err))
		return
	}

	note, err := nc.noteService.Save(ctx.Request.Context(), req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NoteResponse{Success: true, Note: *note})
}

// ClearNotes godoc
// @Summary Remove every archived note
// @Tags notes
// @Produce json
// @Success 200 {object} dto.ClearNotesResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /notes [delete]
func (nc *NoteController) ClearNotes(ctx *gin.Context) {
	deleted, err := nc.noteService.Clear(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ClearNotesResponse{Success: true, Deleted: deleted})
}
