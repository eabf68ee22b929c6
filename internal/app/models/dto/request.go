package dto

import "github.com/yigit/canvasstudy/internal/domain"

// CredentialsRequest carries the caller's Canvas credentials. Either value
// may instead arrive in the X-Canvas-Base-Url or Authorization header.
type CredentialsRequest struct {
	BaseURL  string `json:"baseUrl" form:"baseUrl" binding:"omitempty,canvasurl" example:"https://canvas.example.edu"`
	APIToken string `json:"apiToken" form:"apiToken" example:"7~abcdef"`
}

// Credentials converts the request into domain credentials
func (r CredentialsRequest) Credentials() domain.Credentials {
	return domain.Credentials{BaseURL: r.BaseURL, APIToken: r.APIToken}.Normalize()
}

// PermissionsRequest is the body of POST /validate/permissions. Course
// areas are checked only when CourseID is set.
type PermissionsRequest struct {
	CredentialsRequest
	CourseID string `json:"courseId" binding:"max=64" example:"1234"`
}

// FilesQuery is the query of GET /files
type FilesQuery struct {
	CredentialsRequest
	CourseID string `form:"courseId" binding:"required" example:"1234"`
}

// CourseRequest is the body of POST /assignments and POST /modules
type CourseRequest struct {
	CredentialsRequest
	CourseID string `json:"courseId" binding:"required" example:"1234"`
}

// ExtractTextRequest is the body of POST /extract-text
type ExtractTextRequest struct {
	CredentialsRequest
	FileID string `json:"fileId" binding:"required" example:"98765"`
}

// BatchExtractRequest is the body of POST /extract-text/batch
type BatchExtractRequest struct {
	CredentialsRequest
	FileIDs []string `json:"fileIds" binding:"required,min=1,max=50,dive,required"`
}

// LocalExtractRequest is the body of POST /extract-text/local
type LocalExtractRequest struct {
	FileID string `json:"fileId" binding:"required,localid" example:"3f2c9a1b0d4e5f60718293a4b5c6d7e8"`
}

// VideoExtractRequest is the body of POST /extract-text/youtube
type VideoExtractRequest struct {
	URL string `json:"url" binding:"required,youtubeurl" example:"https://www.youtube.com/watch?v=dQw4w9WgXcQ"`
}

// DownloadRequest is the body of POST /files/download
type DownloadRequest struct {
	CredentialsRequest
	FileID     string `json:"fileId" binding:"required" example:"98765"`
	CourseName string `json:"courseName" binding:"omitempty,max=200" example:"Biology 101"`
}

// GenerateNotesRequest is the body of POST /ai/generate-notes
type GenerateNotesRequest struct {
	Text        string `json:"text" example:"Photosynthesis converts light energy..."`
	Filename    string `json:"filename" example:"lecture3.pdf"`
	CourseTitle string `json:"courseTitle" example:"Biology 101"`
	CourseID    string `json:"courseId" example:"1234"`
	// Save archives the generated notes
	Save bool `json:"save"`
}

// AnswerQuestionRequest is the body of POST /ai/answer-question
type AnswerQuestionRequest struct {
	Question    string `json:"question" example:"What does the Krebs cycle produce?"`
	Context     string `json:"context"`
	CourseTitle string `json:"courseTitle" example:"Biology 101"`
}

// CreateNoteRequest is the body of POST /notes
type CreateNoteRequest struct {
	FileName   string   `json:"fileName" binding:"max=512" example:"lecture3.pdf"`
	CourseID   string   `json:"courseId" binding:"max=64" example:"1234"`
	CourseName string   `json:"courseName" binding:"max=512" example:"Biology 101"`
	Content    string   `json:"content" binding:"required"`
	Summary    string   `json:"summary"`
	KeyPoints  []string `json:"keyPoints"`
	Questions  []string `json:"questions"`
}

// NoteListQuery is the query of GET /notes. Out-of-range paging falls back to defaults.
type NoteListQuery struct {
	CourseID string
	Page     int
	Size     int
}
