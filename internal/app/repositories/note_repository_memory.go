package repositories

import (
	"context"
	"sort"
	"sync"

	"github.com/yigit/canvasstudy/internal/app/models/dto"
	"github.com/yigit/canvasstudy/internal/domain"
	"github.com/yigit/canvasstudy/internal/pkg/apperrors"
	"github.com/yigit/canvasstudy/internal/pkg/helpers"
)

// MemoryNoteRepository keeps notes for the lifetime of the process
type MemoryNoteRepository struct {
	mu    sync.RWMutex
	notes []domain.GeneratedNote
	ids   map[string]struct{}
}

// NewMemoryNoteRepository creates an empty archive
func NewMemoryNoteRepository() *MemoryNoteRepository {
	return &MemoryNoteRepository{ids: make(map[string]struct{})}
}

func (r *MemoryNoteRepository) Create(_ context.Context, note *domain.GeneratedNote) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, dup := r.ids[note.ID]; dup {
		return apperrors.NewValidationError("note %s already exists", note.ID)
	}
	stored := *note
	stored.KeyPoints = append([]string(nil), note.KeyPoints...)
	stored.Questions = append([]string(nil), note.Questions...)
	r.notes = append(r.notes, stored)
	r.ids[note.ID] = struct{}{}
	return nil
}

func (r *MemoryNoteRepository) List(_ context.Context, params ListNotesParams) ([]domain.GeneratedNote, dto.PaginationInfo, error) {
	r.mu.RLock()
	matched := make([]domain.GeneratedNote, 0, len(r.notes))
	for _, n := range r.notes {
		if params.CourseID == "" || n.CourseID == params.CourseID {
			matched = append(matched, n)
		}
	}
	r.mu.RUnlock()

	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	_, size := helpers.CalculateOffsetLimit(params.Page, params.Size)
	pagination := helpers.NewPaginationInfo(int64(len(matched)), params.Page, size)
	start, end := helpers.CalculateSliceIndices(params.Page, size, len(matched))
	return matched[start:end], pagination, nil
}

func (r *MemoryNoteRepository) Clear(context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := int64(len(r.notes))
	r.notes = nil
	r.ids = make(map[string]struct{})
	return n, nil
}

func (r *MemoryNoteRepository) Count(context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.notes)), nil
}
