package filestorage

import (
	"github.com/yigit/canvasstudy/internal/domain"
)

// FileStorage defines the local download cache used by the services
type FileStorage interface {
	// SaveCourseFile writes data under the course folder. skipped is true when
	// the file already existed and was left untouched.
	SaveCourseFile(course, filename string, data []byte) (record *domain.FileRecord, skipped bool, err error)

	// Scan lists every file in the configured download roots
	Scan() ([]domain.FileRecord, error)

	// Resolve finds a scanned file by its local id
	Resolve(id string) (*domain.FileRecord, error)
}
