package dto

import "github.com/yigit/canvasstudy/internal/domain"

// ExtractTextResponse is returned by the single-file extraction endpoints
type ExtractTextResponse struct {
	Success          bool   `json:"success" example:"true"`
	Text             string `json:"text"`
	Filename         string `json:"filename" example:"lecture3.pdf"`
	ContentType      string `json:"contentType" example:"application/pdf"`
	ExtractionMethod string `json:"extractionMethod,omitempty" example:"pdf"`
	PageCount        int    `json:"pageCount,omitempty" example:"12"`
	SectionCount     int    `json:"sectionCount,omitempty"`
	Cached           bool   `json:"cached"`
}

// NewExtractTextResponse maps an extraction result
func NewExtractTextResponse(text *domain.ExtractedText, cached bool) ExtractTextResponse {
	return ExtractTextResponse{
		Success:          true,
		Text:             text.Text,
		Filename:         text.Filename,
		ContentType:      text.MimeType,
		ExtractionMethod: text.ExtractionMethod,
		PageCount:        text.PageCount,
		SectionCount:     text.SectionCount,
		Cached:           cached,
	}
}

// BatchItemResult is the outcome of one file in a batch
type BatchItemResult struct {
	FileID      string `json:"fileId" example:"98765"`
	Success     bool   `json:"success"`
	Filename    string `json:"filename,omitempty"`
	ContentType string `json:"contentType,omitempty"`
	Text        string `json:"text,omitempty"`
	Error       string `json:"error,omitempty"`
	ErrorType   string `json:"error_type,omitempty"`
	Suggestion  string `json:"suggestion,omitempty"`
}

// BatchExtractResponse is returned by POST /extract-text/batch
type BatchExtractResponse struct {
	Success   bool              `json:"success" example:"true"`
	Succeeded int               `json:"succeeded" example:"2"`
	Failed    int               `json:"failed" example:"1"`
	Results   []BatchItemResult `json:"results"`
}

// DownloadResponse is returned by POST /files/download
type DownloadResponse struct {
	Success bool              `json:"success" example:"true"`
	File    domain.FileRecord `json:"file"`
	Skipped bool              `json:"skipped"`
}
