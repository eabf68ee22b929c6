package dto

import (
	"time"

	"github.com/yigit/canvasstudy/internal/domain"
)

// GenerationMetadata describes one completion
type GenerationMetadata struct {
	Model            string    `json:"model" example:"llama-3.1-8b-instant"`
	Filename         string    `json:"filename,omitempty"`
	CourseTitle      string    `json:"courseTitle,omitempty"`
	InputChars       int       `json:"inputChars"`
	Truncated        bool      `json:"truncated"`
	PromptTokens     int       `json:"promptTokens"`
	CompletionTokens int       `json:"completionTokens"`
	GeneratedAt      time.Time `json:"generatedAt"`
	NoteID           string    `json:"noteId,omitempty"`
}

// NotesResponse is returned by POST /ai/generate-notes
type NotesResponse struct {
	Success  bool               `json:"success" example:"true"`
	Notes    string             `json:"notes"`
	Metadata GenerationMetadata `json:"metadata"`
}

// AnswerResponse is returned by POST /ai/answer-question
type AnswerResponse struct {
	Success  bool               `json:"success" example:"true"`
	Answer   string             `json:"answer"`
	Metadata GenerationMetadata `json:"metadata"`
}

// NoteResponse wraps one archived note
type NoteResponse struct {
	Success bool                 `json:"success" example:"true"`
	Note    domain.GeneratedNote `json:"note"`
}

// NoteListResponse is returned by GET /notes
type NoteListResponse struct {
	Success    bool                   `json:"success" example:"true"`
	Notes      []domain.GeneratedNote `json:"notes"`
	Pagination PaginationInfo         `json:"pagination"`
}

// ClearNotesResponse is returned by DELETE /notes
type ClearNotesResponse struct {
	Success bool  `json:"success" example:"true"`
	Deleted int64 `json:"deleted" example:"4"`
}
