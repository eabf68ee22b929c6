package domain

import "time"

// FileSource tells where a FileRecord lives.
type FileSource string

const (
	SourceCanvas  FileSource = "canvas"
	SourceLocal   FileSource = "local"
	SourceYouTube FileSource = "youtube"
)

// UncategorizedCourse tags files found directly under a download root.
const UncategorizedCourse = "Uncategorized"

// FileRecord describes a Canvas file or a file in a local download root.
type FileRecord struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Filename  string     `json:"filename"`
	MimeType  string     `json:"mimeType"`
	Size      int64      `json:"size"`
	CreatedAt *time.Time `json:"createdAt,omitempty"`
	Modified  *time.Time `json:"modified,omitempty"`
	URL       string     `json:"url,omitempty"`
	Path      string     `json:"path,omitempty"`
	Course    string     `json:"course,omitempty"`
	Source    FileSource `json:"source"`
}

// DisplayName prefers the display name over the stored filename.
func (f FileRecord) DisplayName() string {
	if f.Name != "" {
		return f.Name
	}
	return f.Filename
}

// ExtractedText is the result of one extraction. It is never persisted.
type ExtractedText struct {
	SourceFileID     string `json:"sourceFileId"`
	Filename         string `json:"filename"`
	Text             string `json:"text"`
	MimeType         string `json:"mimeType"`
	ExtractionMethod string `json:"extractionMethod"`
	PageCount        int    `json:"pageCount,omitempty"`
	SectionCount     int    `json:"sectionCount,omitempty"`
}
