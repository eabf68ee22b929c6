package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories holds all the repository instances
type Repositories struct {
	NoteRepository NoteRepository
}

// NewRepositories backs the note archive by Postgres when a pool is given,
// otherwise by process memory.
func NewRepositories(db *pgxpool.Pool) *Repositories {
	if db == nil {
		return &Repositories{NoteRepository: NewMemoryNoteRepository()}
	}
	return &Repositories{NoteRepository: NewPostgresNoteRepository(db)}
}
