package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/yigit/canvasstudy/internal/app/controllers"
)

// Controllers groups the handlers mounted by SetupRouter
type Controllers struct {
	Canvas     *controllers.CanvasController
	Extraction *controllers.ExtractionController
	Study      *controllers.StudyController
	Notes      *controllers.NoteController
	Health     *controllers.HealthController
}

// SetupRouter configures all application routes
func SetupRouter(router *gin.Engine, c Controllers) {
	router.GET("/health", c.Health.Health)

	// --- Canvas reads (credentials per request) ---
	router.POST("/validate", c.Canvas.Validate)
	router.POST("/validate/permissions", c.Canvas.ValidatePermissions)
	router.GET("/courses", c.Canvas.GetCourses)
	router.GET("/files", c.Canvas.GetFiles)
	router.POST("/assignments", c.Canvas.GetAssignments)
	router.POST("/modules", c.Canvas.GetModules)

	// --- Extraction ---
	extract := router.Group("/extract-text")
	{
		extract.POST("", c.Extraction.ExtractText)
		extract.POST("/batch", c.Extraction.ExtractBatch)
		extract.POST("/local", c.Extraction.ExtractLocal)
		extract.POST("/youtube", c.Extraction.ExtractVideo)
	}

	// --- Local download cache ---
	files := router.Group("/files")
	{
		files.GET("/downloaded", c.Extraction.ListDownloaded)
		files.POST("/download", c.Extraction.DownloadFile)
	}

	// --- LLM ---
	ai := router.Group("/ai")
	{
		ai.POST("/generate-notes", c.Study.GenerateNotes)
		ai.POST("/answer-question", c.Study.AnswerQuestion)
	}

	// --- Note archive ---
	notes := router.Group("/notes")
	{
		notes.GET("", c.Notes.ListNotes)
		notes.POST("", c.Notes.CreateNote)
		notes.DELETE("", c.Notes.ClearNotes)
	}
}
