package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yigit/canvasstudy/internal/app/models/dto"
	"github.com/yigit/canvasstudy/internal/domain"
	"github.com/yigit/canvasstudy/internal/pkg/apperrors"
	"github.com/yigit/canvasstudy/internal/pkg/dberrors"
	"github.com/yigit/canvasstudy/internal/pkg/helpers"
	"github.com/yigit/canvasstudy/internal/pkg/logger"
)

const notesTable = "generated_notes"

var noteColumns = []string{
	"id", "file_name", "course_id", "course_name", "content",
	"summary", "key_points", "questions", "created_at",
}

// PostgresNoteRepository stores notes in the generated_notes table
type PostgresNoteRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewPostgresNoteRepository creates a new PostgresNoteRepository
func NewPostgresNoteRepository(db *pgxpool.Pool) *PostgresNoteRepository {
	return &PostgresNoteRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func (r *PostgresNoteRepository) insertQuery(note *domain.GeneratedNote) (string, []interface{}, error) {
	keyPoints := note.KeyPoints
	if keyPoints == nil {
		keyPoints = []string{}
	}
	questions := note.Questions
	if questions == nil {
		questions = []string{}
	}
	return r.sb.Insert(notesTable).
		Columns(noteColumns...).
		Values(note.ID, note.FileName, note.CourseID, note.CourseName, note.Content,
			note.Summary, keyPoints, questions, note.CreatedAt).
		ToSql()
}

func (r *PostgresNoteRepository) filtered(b squirrel.SelectBuilder, params ListNotesParams) squirrel.SelectBuilder {
	if params.CourseID != "" {
		b = b.Where(squirrel.Eq{"course_id": params.CourseID})
	}
	return b
}

func (r *PostgresNoteRepository) listQuery(params ListNotesParams) (string, []interface{}, error) {
	offset, limit := helpers.CalculateOffsetLimit(params.Page, params.Size)
	return r.filtered(r.sb.Select(noteColumns...).From(notesTable), params).
		OrderBy("created_at DESC", "id").
		Limit(uint64(limit)).
		Offset(offset).
		ToSql()
}

func (r *PostgresNoteRepository) countQuery(params ListNotesParams) (string, []interface{}, error) {
	return r.filtered(r.sb.Select("COUNT(*)").From(notesTable), params).ToSql()
}

// Create inserts a note
func (r *PostgresNoteRepository) Create(ctx context.Context, note *domain.GeneratedNote) error {
	sql, args, err := r.insertQuery(note)
	if err != nil {
		logger.Error().Err(err).Msg("Error building create note SQL")
		return fmt.Errorf("failed to build insert query: %w", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		if dberrors.IsDuplicateConstraintError(err, "generated_notes_pkey") {
			return apperrors.NewValidationError("note %s already exists", note.ID)
		}
		logger.Error().Err(err).Str("noteId", note.ID).Msg("Error inserting note")
		return fmt.Errorf("failed to insert note: %w", err)
	}
	return nil
}

// List returns a page of notes
func (r *PostgresNoteRepository) List(ctx context.Context, params ListNotesParams) ([]domain.GeneratedNote, dto.PaginationInfo, error) {
	countSQL, countArgs, err := r.countQuery(params)
	if err != nil {
		logger.Error().Err(err).Msg("Error building count notes SQL")
		return nil, dto.PaginationInfo{}, fmt.Errorf("failed to build count query: %w", err)
	}

	var total int64
	if err := r.db.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		logger.Error().Err(err).Msg("Error counting notes")
		return nil, dto.PaginationInfo{}, fmt.Errorf("failed to count notes: %w", err)
	}

	pagination := helpers.NewPaginationInfo(total, params.Page, params.Size)
	if total == 0 {
		return []domain.GeneratedNote{}, pagination, nil
	}

	sql, args, err := r.listQuery(params)
	if err != nil {
		logger.Error().Err(err).Msg("Error building list notes SQL")
		return nil, dto.PaginationInfo{}, fmt.Errorf("failed to build list query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error querying notes")
		return nil, dto.PaginationInfo{}, fmt.Errorf("failed to query notes: %w", err)
	}
	defer rows.Close()

	notes := make([]domain.GeneratedNote, 0)
	for rows.Next() {
		var n domain.GeneratedNote
		if err := rows.Scan(&n.ID, &n.FileName, &n.CourseID, &n.CourseName, &n.Content,
			&n.Summary, &n.KeyPoints, &n.Questions, &n.CreatedAt); err != nil {
			logger.Error().Err(err).Msg("Error scanning note row")
			return nil, dto.PaginationInfo{}, fmt.Errorf("failed to scan note: %w", err)
		}
		notes = append(notes, n)
	}
	if err := rows.Err(); err != nil {
		return nil, dto.PaginationInfo{}, fmt.Errorf("failed to iterate notes: %w", err)
	}
	return notes, pagination, nil
}

// Clear deletes every note
func (r *PostgresNoteRepository) Clear(ctx context.Context) (int64, error) {
	sql, args, err := r.sb.Delete(notesTable).ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build delete query: %w", err)
	}
	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error clearing notes")
		return 0, fmt.Errorf("failed to clear notes: %w", err)
	}
	return tag.RowsAffected(), nil
}

// Count returns the number of archived notes
func (r *PostgresNoteRepository) Count(ctx context.Context) (int64, error) {
	sql, args, err := r.countQuery(ListNotesParams{})
	if err != nil {
		return 0, fmt.Errorf("failed to build count query: %w", err)
	}
	var total int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to count notes: %w", err)
	}
	return total, nil
}
