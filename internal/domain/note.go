package domain

import "time"

// GeneratedNote is an archived LLM note. Notes are append-only.
type GeneratedNote struct {
	ID         string    `json:"id"`
	FileName   string    `json:"fileName"`
	CourseID   string    `json:"courseId,omitempty"`
	CourseName string    `json:"courseName,omitempty"`
	Content    string    `json:"content"`
	Summary    string    `json:"summary,omitempty"`
	KeyPoints  []string  `json:"keyPoints,omitempty"`
	Questions  []string  `json:"questions,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}
