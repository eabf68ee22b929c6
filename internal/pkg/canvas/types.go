package canvas

import (
	"strconv"
	"time"

	"github.com/yigit/canvasstudy/internal/domain"
)

// Wire shapes of the Canvas REST API.

type canvasUser struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	PrimaryEmail string `json:"primary_email"`
	Email        string `json:"email"`
	LoginID      string `json:"login_id"`
}

func (u canvasUser) toDomain() domain.User {
	email := u.PrimaryEmail
	if email == "" {
		email = u.Email
	}
	if email == "" {
		email = u.LoginID
	}
	return domain.User{ID: u.ID, Name: u.Name, Email: email}
}

type canvasCourse struct {
	ID          int64      `json:"id"`
	Name        string     `json:"name"`
	CourseCode  string     `json:"course_code"`
	StartAt     *time.Time `json:"start_at"`
	EndAt       *time.Time `json:"end_at"`
	CourseColor string     `json:"course_color"`
	Term        *struct {
		Name string `json:"name"`
	} `json:"term"`
}

func (c canvasCourse) toDomain() domain.Course {
	course := domain.Course{
		ID:      c.ID,
		Name:    c.Name,
		Code:    c.CourseCode,
		StartAt: c.StartAt,
		EndAt:   c.EndAt,
		Color:   c.CourseColor,
	}
	if c.Term != nil {
		course.Term = c.Term.Name
	}
	return course
}

type canvasFile struct {
	ID          int64      `json:"id"`
	DisplayName string     `json:"display_name"`
	Filename    string     `json:"filename"`
	ContentType string     `json:"content-type"`
	Size        int64      `json:"size"`
	CreatedAt   *time.Time `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at"`
	ModifiedAt  *time.Time `json:"modified_at"`
	URL         string     `json:"url"`
	FolderID    int64      `json:"folder_id"`
}

func (f canvasFile) toDomain(courseID string) domain.FileRecord {
	modified := f.ModifiedAt
	if modified == nil {
		modified = f.UpdatedAt
	}
	return domain.FileRecord{
		ID:        strconv.FormatInt(f.ID, 10),
		Name:      f.DisplayName,
		Filename:  f.Filename,
		MimeType:  f.ContentType,
		Size:      f.Size,
		CreatedAt: f.CreatedAt,
		Modified:  modified,
		URL:       f.URL,
		Course:    courseID,
		Source:    domain.SourceCanvas,
	}
}

type canvasAssignment struct {
	ID              int64      `json:"id"`
	Name            string     `json:"name"`
	Description     string     `json:"description"`
	DueAt           *time.Time `json:"due_at"`
	PointsPossible  float64    `json:"points_possible"`
	HTMLURL         string     `json:"html_url"`
	SubmissionTypes []string   `json:"submission_types"`
}

func (a canvasAssignment) toDomain() domain.Assignment {
	return domain.Assignment{
		ID:              a.ID,
		Name:            a.Name,
		Description:     a.Description,
		DueAt:           a.DueAt,
		PointsPossible:  a.PointsPossible,
		HTMLURL:         a.HTMLURL,
		SubmissionTypes: a.SubmissionTypes,
	}
}

type canvasModule struct {
	ID            int64              `json:"id"`
	Name          string             `json:"name"`
	Position      int                `json:"position"`
	WorkflowState string             `json:"workflow_state"`
	State         string             `json:"state"`
	ItemsCount    int                `json:"items_count"`
	Items         []canvasModuleItem `json:"items"`
}

type canvasModuleItem struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Type        string `json:"type"`
	ContentID   int64  `json:"content_id"`
	HTMLURL     string `json:"html_url"`
	ExternalURL string `json:"external_url"`
}

func (m canvasModule) toDomain() domain.Module {
	state := m.State
	if state == "" {
		state = m.WorkflowState
	}
	items := make([]domain.ModuleItem, 0, len(m.Items))
	for _, it := range m.Items {
		items = append(items, domain.ModuleItem{
			ID:          it.ID,
			Title:       it.Title,
			Type:        it.Type,
			ContentID:   it.ContentID,
			HTMLURL:     it.HTMLURL,
			ExternalURL: it.ExternalURL,
		})
	}
	count := m.ItemsCount
	if count == 0 {
		count = len(items)
	}
	return domain.Module{
		ID:         m.ID,
		Name:       m.Name,
		Position:   m.Position,
		State:      state,
		ItemsCount: count,
		Items:      items,
	}
}
