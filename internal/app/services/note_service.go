package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/yigit/canvasstudy/internal/app/models/dto"
	"github.com/yigit/canvasstudy/internal/app/repositories"
	"github.com/yigit/canvasstudy/internal/domain"
	"github.com/yigit/canvasstudy/internal/pkg/apperrors"
	"github.com/yigit/canvasstudy/internal/pkg/logger"
)

// NoteService manages the archive of generated notes
type NoteService interface {
	List(ctx context.Context, query dto.NoteListQuery) (*dto.NoteListResponse, error)
	Save(ctx context.Context, req dto.CreateNoteRequest) (*domain.GeneratedNote, error)
	Clear(ctx context.Context) (int64, error)
}

type noteServiceImpl struct {
	repo repositories.NoteRepository
	now  func() time.Time
}

// NewNoteService creates a new NoteService
func NewNoteService(repo repositories.NoteRepository) NoteService {
	return &noteServiceImpl{repo: repo, now: time.Now}
}

func (s *noteServiceImpl) List(ctx context.Context, query dto.NoteListQuery) (*dto.NoteListResponse, error) {
	notes, pagination, err := s.repo.List(ctx, repositories.ListNotesParams{
		CourseID: strings.TrimSpace(query.CourseID),
		Page:     query.Page,
		Size:     query.Size,
	})
	if err != nil {
		return nil, apperrors.NewUnknownError(0, err, "failed to list notes")
	}
	return &dto.NoteListResponse{Success: true, Notes: notes, Pagination: pagination}, nil
}

// Save archives a note. Missing summary, key points and questions are
// derived from the Markdown sections of the content.
func (s *noteServiceImpl) Save(ctx context.Context, req dto.CreateNoteRequest) (*domain.GeneratedNote, error) {
	content := strings.TrimSpace(req.Content)
	if content == "" {
		return nil, apperrors.NewValidationError("note content is required")
	}

	sections := ParseNoteSections(content)
	note := &domain.GeneratedNote{
		ID:         uuid.NewString(),
		FileName:   strings.TrimSpace(req.FileName),
		CourseID:   strings.TrimSpace(req.CourseID),
		CourseName: strings.TrimSpace(req.CourseName),
		Content:    content,
		Summary:    firstNonEmpty(req.Summary, sections.Summary),
		KeyPoints:  req.KeyPoints,
		Questions:  req.Questions,
		CreatedAt:  s.now().UTC(),
	}
	if len(note.KeyPoints) == 0 {
		note.KeyPoints = sections.KeyPoints
	}
	if len(note.Questions) == 0 {
		note.Questions = sections.Questions
	}

	if err := s.repo.Create(ctx, note); err != nil {
		if _, typed := apperrors.As(err); typed {
			return nil, err
		}
		return nil, apperrors.NewUnknownError(0, err, "failed to save note")
	}
	logger.FromContext(ctx).Info().Str("noteId", note.ID).Str("courseId", note.CourseID).Msg("Note archived")
	return note, nil
}

func (s *noteServiceImpl) Clear(ctx context.Context) (int64, error) {
	n, err := s.repo.Clear(ctx)
	if err != nil {
		return 0, apperrors.NewUnknownError(0, err, "failed to clear notes")
	}
	logger.FromContext(ctx).Info().Int64("deleted", n).Msg("Note archive cleared")
	return n, nil
}

// NoteSections holds the parts of generated Markdown notes.
type NoteSections struct {
	Summary   string
	KeyPoints []string
	Questions []string
}

// ParseNoteSections reads the Summary, Key concepts and Review questions
// sections of Markdown notes. Headings are matched case-insensitively.
func ParseNoteSections(content string) NoteSections {
	var out NoteSections
	var summary []string
	section := ""

	for _, raw := range strings.Split(content, "\n") {
		line := strings.TrimSpace(raw)
		if heading, ok := headingText(line); ok {
			h := strings.ToLower(heading)
			switch {
			case strings.Contains(h, "summary"):
				section = "summary"
			case strings.Contains(h, "question"):
				section = "questions"
			case strings.Contains(h, "key"):
				section = "key"
			default:
				section = ""
			}
			continue
		}
		if line == "" {
			continue
		}
		switch section {
		case "summary":
			summary = append(summary, line)
		case "key":
			if item, ok := listItem(line); ok {
				out.KeyPoints = append(out.KeyPoints, item)
			}
		case "questions":
			if item, ok := listItem(line); ok {
				out.Questions = append(out.Questions, item)
			}
		}
	}
	out.Summary = strings.Join(summary, " ")
	return out
}

func headingText(line string) (string, bool) {
	if strings.HasPrefix(line, "#") {
		return strings.TrimSpace(strings.TrimLeft(line, "#")), true
	}
	if strings.HasPrefix(line, "**") && strings.HasSuffix(line, "**") && len(line) > 4 {
		return strings.Trim(line, "*: "), true
	}
	return "", false
}

func listItem(line string) (string, bool) {
	for _, marker := range []string{"- ", "* ", "+ "} {
		if strings.HasPrefix(line, marker) {
			return strings.TrimSpace(line[len(marker):]), true
		}
	}
	// "1. " and "12) "
	i := 0
	for i < len(line) && line[i] >= '0' && line[i] <= '9' {
		i++
	}
	if i > 0 && i+1 < len(line) && (line[i] == '.' || line[i] == ')') && line[i+1] == ' ' {
		return strings.TrimSpace(line[i+2:]), true
	}
	return "", false
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
