package domain

import (
	"fmt"
	"strings"
	"time"
)

// Credentials identify a Canvas account. They are supplied per request and never stored.
type Credentials struct {
	BaseURL  string `json:"baseUrl" form:"baseUrl"`
	APIToken string `json:"apiToken" form:"apiToken"`
}

// Normalize strips trailing slashes and surrounding whitespace.
func (c Credentials) Normalize() Credentials {
	return Credentials{
		BaseURL:  strings.TrimRight(strings.TrimSpace(c.BaseURL), "/"),
		APIToken: strings.TrimSpace(c.APIToken),
	}
}

// Check reports which credential is missing or malformed, or nil.
func (c Credentials) Check() error {
	switch {
	case c.BaseURL == "":
		return fmt.Errorf("canvas base URL is required")
	case !strings.HasPrefix(strings.ToLower(c.BaseURL), "http"):
		return fmt.Errorf("canvas base URL must start with http")
	case c.APIToken == "":
		return fmt.Errorf("canvas API token is required")
	}
	return nil
}

// User is the Canvas profile behind a token.
type User struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
}

// Course is a Canvas course the user is enrolled in.
type Course struct {
	ID      int64      `json:"id"`
	Name    string     `json:"name"`
	Code    string     `json:"code"`
	Term    string     `json:"term,omitempty"`
	StartAt *time.Time `json:"startAt,omitempty"`
	EndAt   *time.Time `json:"endAt,omitempty"`
	Color   string     `json:"color,omitempty"`
}

// Assignment is read-only course work.
type Assignment struct {
	ID              int64      `json:"id"`
	Name            string     `json:"name"`
	Description     string     `json:"description,omitempty"`
	DueAt           *time.Time `json:"dueAt,omitempty"`
	PointsPossible  float64    `json:"pointsPossible"`
	HTMLURL         string     `json:"htmlUrl,omitempty"`
	SubmissionTypes []string   `json:"submissionTypes,omitempty"`
}

// Module groups course content.
type Module struct {
	ID         int64        `json:"id"`
	Name       string       `json:"name"`
	Position   int          `json:"position"`
	State      string       `json:"state,omitempty"`
	ItemsCount int          `json:"itemsCount"`
	Items      []ModuleItem `json:"items"`
}

// ModuleItem is one entry of a Module.
type ModuleItem struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Type        string `json:"type"`
	ContentID   int64  `json:"contentId,omitempty"`
	HTMLURL     string `json:"htmlUrl,omitempty"`
	ExternalURL string `json:"externalUrl,omitempty"`
}
