package filestorage

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/yigit/canvasstudy/internal/domain"
	"github.com/yigit/canvasstudy/internal/pkg/apperrors"
	"github.com/yigit/canvasstudy/internal/pkg/logger"
)

const tmpSuffix = ".tmp"

// LocalStorage is the on-disk download cache. Files are saved under the first
// root; every root is scanned.
type LocalStorage struct {
	basePath string
	roots    []string
}

// NewLocalStorage creates a new LocalStorage instance.
func NewLocalStorage(roots []string) (*LocalStorage, error) {
	cleaned := make([]string, 0, len(roots))
	for _, r := range roots {
		if r = strings.TrimSpace(r); r != "" {
			cleaned = append(cleaned, r)
		}
	}
	if len(cleaned) == 0 {
		return nil, apperrors.NewConfigurationError("at least one download root is required")
	}

	basePath := cleaned[0]
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		logger.Error().Err(err).Str("path", basePath).Msg("Failed to create download directory")
		return nil, apperrors.NewIOError(err, "failed to create download directory %s", basePath)
	}
	logger.Info().Str("path", basePath).Strs("roots", cleaned).Msg("Local download storage ready")

	return &LocalStorage{basePath: basePath, roots: cleaned}, nil
}

// Roots returns the scanned directories.
func (ls *LocalStorage) Roots() []string {
	return append([]string(nil), ls.roots...)
}

// SaveCourseFile writes data to <base>/<course>/<filename> via a temp file.
func (ls *LocalStorage) SaveCourseFile(course, filename string, data []byte) (*domain.FileRecord, bool, error) {
	if len(data) == 0 {
		return nil, false, apperrors.NewDownloadError(0, "downloaded file %s is empty", filename)
	}

	course = SanitizeName(course, domain.UncategorizedCourse)
	filename = SanitizeName(filename, "file")

	dir := filepath.Join(ls.basePath, course)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		logger.Error().Err(err).Str("path", dir).Msg("Failed to create course directory")
		return nil, false, apperrors.NewIOError(err, "failed to create course directory")
	}

	dst := filepath.Join(dir, filename)
	if _, err := os.Stat(dst); err == nil {
		logger.Info().Str("path", dst).Msg("File already downloaded, skipping")
		record, err := ls.statRecord(dst, course)
		return record, true, err
	} else if !errors.Is(err, fs.ErrNotExist) {
		return nil, false, apperrors.NewIOError(err, "failed to stat %s", dst)
	}

	tmp := dst + tmpSuffix
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		_ = os.Remove(tmp)
		logger.Error().Err(err).Str("path", tmp).Msg("Failed to write temp file")
		return nil, false, apperrors.NewIOError(err, "failed to write %s", filename)
	}
	if err := os.Rename(tmp, dst); err != nil {
		_ = os.Remove(tmp)
		logger.Error().Err(err).Str("path", dst).Msg("Failed to move temp file into place")
		return nil, false, apperrors.NewIOError(err, "failed to save %s", filename)
	}

	logger.Info().Str("course", course).Str("filename", filename).Int("bytes", len(data)).Msg("File saved")
	record, err := ls.statRecord(dst, course)
	return record, false, err
}

// Scan lists every file in the configured roots.
func (ls *LocalStorage) Scan() ([]domain.FileRecord, error) {
	return ScanLocalDownloads(ls.roots)
}

// Resolve finds a scanned file by its local id.
func (ls *LocalStorage) Resolve(id string) (*domain.FileRecord, error) {
	records, err := ls.Scan()
	if err != nil {
		return nil, err
	}
	for i := range records {
		if records[i].ID == id {
			return &records[i], nil
		}
	}
	return nil, apperrors.NewNotFoundError("local file", id)
}

func (ls *LocalStorage) statRecord(path, course string) (*domain.FileRecord, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, apperrors.NewIOError(err, "failed to stat %s", path)
	}
	record, ok := fileRecord(path, fs.FileInfoToDirEntry(info), course)
	if !ok {
		return nil, apperrors.NewIOError(fmt.Errorf("not a regular file"), "cannot record %s", path)
	}
	return &record, nil
}

// SanitizeName makes a single safe path component out of name.
func SanitizeName(name, fallback string) string {
	name = strings.Map(func(r rune) rune {
		switch {
		case r < 32, strings.ContainsRune(`<>:"/\|?*`, r):
			return '_'
		}
		return r
	}, name)
	name = strings.Trim(strings.TrimSpace(name), ".")
	if name == "" {
		return fallback
	}
	return name
}
