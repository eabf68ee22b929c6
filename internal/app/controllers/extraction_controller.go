package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/canvasstudy/internal/app/models/dto"
	"github.com/yigit/canvasstudy/internal/app/services"
	"github.com/yigit/canvasstudy/internal/middleware"
)

// ExtractionController handles file acquisition and text extraction
type ExtractionController struct {
	extractionService services.ExtractionService
}

// NewExtractionController creates a new ExtractionController
func NewExtractionController(extractionService services.ExtractionService) *ExtractionController {
	return &ExtractionController{extractionService: extractionService}
}

// ExtractText godoc
// @Summary Extract the text of a Canvas file
// @Description Downloads the file and extracts its text. Results are cached per file version when Redis is configured.
// @Tags extraction
// @Accept json
// @Produce json
// @Param request body dto.ExtractTextRequest true "Credentials and file"
// @Success 200 {object} dto.ExtractTextResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 415 {object} dto.ErrorResponse
// @Failure 422 {object} dto.ErrorResponse
// @Failure 502 {object} dto.ErrorResponse
// @Router /extract-text [post]
func (ec *ExtractionController) ExtractText(ctx *gin.Context) {
	var req dto.ExtractTextRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleAPIError(ctx, middleware.BindingError(err))
		return
	}

	result, err := ec.extractionService.ExtractRemote(ctx.Request.Context(), middleware.ResolveCredentials(ctx, req.Credentials()), req.FileID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewExtractTextResponse(result.Text, result.Cached))
}

// ExtractBatch godoc
// @Summary Extract the text of several Canvas files
// @Description Files are processed concurrently; each result reports its own success or error.
// @Tags extraction
// @Accept json
// @Produce json
// @Param request body dto.BatchExtractRequest true "Credentials and file ids"
// @Success 200 {object} dto.BatchExtractResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /extract-text/batch [post]
func (ec *ExtractionController) ExtractBatch(ctx *gin.Context) {
	var req dto.BatchExtractRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleAPIError(ctx, middleware.BindingError(err))
		return
	}

	outcomes, err := ec.extractionService.ExtractBatch(ctx.Request.Context(), middleware.ResolveCredentials(ctx, req.Credentials()), req.FileIDs)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	resp := dto.BatchExtractResponse{Success: true, Results: make([]dto.BatchItemResult, 0, len(outcomes))}
	for _, o := range outcomes {
		item := dto.BatchItemResult{FileID: o.FileID}
		if o.Err != nil {
			resp.Failed++
			message, kind, suggestion := middleware.PublicError(o.Err)
			item.Error, item.ErrorType, item.Suggestion = message, string(kind), suggestion
		} else {
			resp.Succeeded++
			item.Success = true
			item.Filename = o.Result.Text.Filename
			item.ContentType = o.Result.Text.MimeType
			item.Text = o.Result.Text.Text
		}
		resp.Results = append(resp.Results, item)
	}

	ctx.JSON(http.StatusOK, resp)
}

// ExtractLocal godoc
// @Summary Extract the text of a downloaded file
// @Tags extraction
// @Accept json
// @Produce json
// @Param request body dto.LocalExtractRequest true "Local file id from GET /files/downloaded"
// @Success 200 {object} dto.ExtractTextResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 415 {object} dto.ErrorResponse
// @Failure 422 {object} dto.ErrorResponse
// @Router /extract-text/local [post]
func (ec *ExtractionController) ExtractLocal(ctx *gin.Context) {
	var req dto.LocalExtractRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleAPIError(ctx, middleware.BindingError(err))
		return
	}

	text, err := ec.extractionService.ExtractLocal(ctx.Request.Context(), req.FileID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewExtractTextResponse(text, false))
}

// ExtractVideo godoc
// @Summary Extract the transcript of a YouTube video
// @Description Runs the extraction worker on the video URL. Transcripts are cached per video when Redis is configured.
// @Tags extraction
// @Accept json
// @Produce json
// @Param request body dto.VideoExtractRequest true "YouTube video URL"
// @Success 200 {object} dto.ExtractTextResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 415 {object} dto.ErrorResponse
// @Failure 422 {object} dto.ErrorResponse
// @Failure 504 {object} dto.ErrorResponse
// @Router /extract-text/youtube [post]
func (ec *ExtractionController) ExtractVideo(ctx *gin.Context) {
	var req dto.VideoExtractRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleAPIError(ctx, middleware.BindingError(err))
		return
	}

	result, err := ec.extractionService.ExtractVideo(ctx.Request.Context(), req.URL)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewExtractTextResponse(result.Text, result.Cached))
}

// ListDownloaded godoc
// @Summary List downloaded files
// @Description Scans the configured download roots. Top-level folders are courses.
// @Tags files
// @Produce json
// @Success 200 {object} dto.FilesResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /files/downloaded [get]
func (ec *ExtractionController) ListDownloaded(ctx *gin.Context) {
	files, err := ec.extractionService.ListDownloaded(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.FilesResponse{Success: true, Files: files})
}

// DownloadFile godoc
// @Summary Download a Canvas file into the local cache
// @Tags files
// @Accept json
// @Produce json
// @Param request body dto.DownloadRequest true "Credentials, file and optional course folder"
// @Success 200 {object} dto.DownloadResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 502 {object} dto.ErrorResponse
// @Router /files/download [post]
func (ec *ExtractionController) DownloadFile(ctx *gin.Context) {
	var req dto.DownloadRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleAPIError(ctx, middleware.BindingError(err))
		return
	}

	record, skipped, err := ec.extractionService.DownloadToLocal(ctx.Request.Context(), middleware.ResolveCredentials(ctx, req.Credentials()), req.FileID, req.CourseName)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.DownloadResponse{Success: true, File: *record, Skipped: skipped})
}
