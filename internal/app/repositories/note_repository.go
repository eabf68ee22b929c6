package repositories

import (
	"context"

	"github.com/yigit/canvasstudy/internal/app/models/dto"
	"github.com/yigit/canvasstudy/internal/domain"
)

// ListNotesParams filters and pages the note archive. Notes are listed newest first.
type ListNotesParams struct {
	CourseID string
	Page     int
	Size     int
}

// NoteRepository is the append-only archive of generated notes
type NoteRepository interface {
	Create(ctx context.Context, note *domain.GeneratedNote) error
	List(ctx context.Context, params ListNotesParams) ([]domain.GeneratedNote, dto.PaginationInfo, error)
	// Clear removes every note and returns how many were removed
	Clear(ctx context.Context) (int64, error)
	Count(ctx context.Context) (int64, error)
}
