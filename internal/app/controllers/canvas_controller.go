package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/canvasstudy/internal/app/models/dto"
	"github.com/yigit/canvasstudy/internal/app/services"
	"github.com/yigit/canvasstudy/internal/middleware"
)

// CanvasController proxies Canvas reads
type CanvasController struct {
	canvasService services.CanvasService
}

// NewCanvasController creates a new CanvasController
func NewCanvasController(canvasService services.CanvasService) *CanvasController {
	return &CanvasController{canvasService: canvasService}
}

// Validate godoc
// @Summary Validate Canvas credentials
// @Description Checks the token against /api/v1/users/self and returns the profile behind it
// @Tags canvas
// @Accept json
// @Produce json
// @Param request body dto.CredentialsRequest true "Canvas credentials"
// @Success 200 {object} dto.ValidateResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 504 {object} dto.ErrorResponse
// @Router /validate [post]
func (cc *CanvasController) Validate(ctx *gin.Context) {
	var req dto.CredentialsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleAPIError(ctx, middleware.BindingError(err))
		return
	}

	user, err := cc.canvasService.Validate(ctx.Request.Context(), middleware.ResolveCredentials(ctx, req.Credentials()))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ValidateResponse{Success: true, User: *user})
}

// ValidatePermissions godoc
// @Summary Diagnose Canvas API permissions
// @Description Reads one item from each API area (profile, courses and, with courseId, files, assignments, modules, users, enrollments) and reports which are accessible, with remediation steps
// @Tags canvas
// @Accept json
// @Produce json
// @Param request body dto.PermissionsRequest true "Canvas credentials and optional course"
// @Success 200 {object} dto.PermissionsResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 504 {object} dto.ErrorResponse
// @Router /validate/permissions [post]
func (cc *CanvasController) ValidatePermissions(ctx *gin.Context) {
	var req dto.PermissionsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleAPIError(ctx, middleware.BindingError(err))
		return
	}

	report, err := cc.canvasService.Permissions(ctx.Request.Context(), middleware.ResolveCredentials(ctx, req.Credentials()), req.CourseID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.PermissionsResponse{Success: true, Report: *report})
}

// GetCourses godoc
// @Summary List active courses
// @Tags canvas
// @Produce json
// @Param baseUrl query string false "Canvas base URL (or X-Canvas-Base-Url header)"
// @Param apiToken query string false "Canvas API token (or Authorization: Bearer header)"
// @Success 200 {object} dto.CoursesResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Router /courses [get]
func (cc *CanvasController) GetCourses(ctx *gin.Context) {
	var req dto.CredentialsRequest
	if err := ctx.ShouldBindQuery(&req); err != nil {
		middleware.HandleAPIError(ctx, middleware.BindingError(err))
		return
	}

	courses, err := cc.canvasService.Courses(ctx.Request.Context(), middleware.ResolveCredentials(ctx, req.Credentials()))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.CoursesResponse{Success: true, Courses: courses})
}

// GetFiles godoc
// @Summary List the files of a course
// @Tags canvas
// @Produce json
// @Param baseUrl query string false "Canvas base URL"
// @Param apiToken query string false "Canvas API token"
// @Param courseId query string true "Course ID"
// @Success 200 {object} dto.FilesResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /files [get]
func (cc *CanvasController) GetFiles(ctx *gin.Context) {
	var req dto.FilesQuery
	if err := ctx.ShouldBindQuery(&req); err != nil {
		middleware.HandleAPIError(ctx, middleware.BindingError(err))
		return
	}

	files, err := cc.canvasService.Files(ctx.Request.Context(), middleware.ResolveCredentials(ctx, req.Credentials()), req.CourseID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.FilesResponse{Success: true, Files: files})
}

// GetAssignments godoc
// @Summary List the assignments of a course
// @Tags canvas
// @Accept json
// @Produce json
// @Param request body dto.CourseRequest true "Credentials and course"
// @Success 200 {object} dto.DataResponse{data=[]domain.Assignment}
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /assignments [post]
func (cc *CanvasController) GetAssignments(ctx *gin.Context) {
	var req dto.CourseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleAPIError(ctx, middleware.BindingError(err))
		return
	}

	assignments, err := cc.canvasService.Assignments(ctx.Request.Context(), middleware.ResolveCredentials(ctx, req.Credentials()), req.CourseID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.DataResponse{Success: true, Data: assignments})
}

// GetModules godoc
// @Summary List the modules of a course with their items
// @Tags canvas
// @Accept json
// @Produce json
// @Param request body dto.CourseRequest true "Credentials and course"
// @Success 200 {object} dto.DataResponse{data=[]domain.Module}
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /modules [post]
func (cc *CanvasController) GetModules(ctx *gin.Context) {
	var req dto.CourseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleAPIError(ctx, middleware.BindingError(err))
		return
	}

	modules, err := cc.canvasService.Modules(ctx.Request.Context(), middleware.ResolveCredentials(ctx, req.Credentials()), req.CourseID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.DataResponse{Success: true, Data: modules})
}
