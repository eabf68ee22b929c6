package filestorage

import (
	"crypto/sha1"
	"encoding/hex"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/yigit/canvasstudy/internal/domain"
	"github.com/yigit/canvasstudy/internal/pkg/apperrors"
	"github.com/yigit/canvasstudy/internal/pkg/logger"
)

// LocalID derives a stable id from the cleaned absolute path.
func LocalID(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	sum := sha1.Sum([]byte(filepath.Clean(abs)))
	return hex.EncodeToString(sum[:16])
}

// ScanLocalDownloads lists files under each root. Top-level directories are
// course folders; top-level files are Uncategorized. Missing roots are skipped,
// unreadable ones fail with an IO error.
func ScanLocalDownloads(roots []string) ([]domain.FileRecord, error) {
	records := []domain.FileRecord{}

	for _, root := range roots {
		if strings.TrimSpace(root) == "" {
			continue
		}

		info, err := os.Stat(root)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				logger.Debug().Str("root", root).Msg("Download root does not exist, skipping")
				continue
			}
			return nil, apperrors.NewIOError(err, "cannot access download root %s", root)
		}
		if !info.IsDir() {
			logger.Warn().Str("root", root).Msg("Download root is not a directory, skipping")
			continue
		}

		entries, err := os.ReadDir(root)
		if err != nil {
			return nil, apperrors.NewIOError(err, "cannot read download root %s", root)
		}

		for _, entry := range entries {
			if skipEntry(entry.Name()) {
				continue
			}
			path := filepath.Join(root, entry.Name())

			if entry.IsDir() {
				courseFiles, err := scanCourseDir(path, entry.Name())
				if err != nil {
					logger.Warn().Err(err).Str("dir", path).Msg("Skipping unreadable course folder")
					continue
				}
				records = append(records, courseFiles...)
				continue
			}

			if record, ok := fileRecord(path, entry, domain.UncategorizedCourse); ok {
				records = append(records, record)
			}
		}
	}

	sort.SliceStable(records, func(i, j int) bool {
		if records[i].Course != records[j].Course {
			return records[i].Course < records[j].Course
		}
		if records[i].Name != records[j].Name {
			return records[i].Name < records[j].Name
		}
		return records[i].Path < records[j].Path
	})
	return records, nil
}

func scanCourseDir(dir, course string) ([]domain.FileRecord, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var records []domain.FileRecord
	for _, entry := range entries {
		if entry.IsDir() || skipEntry(entry.Name()) {
			continue
		}
		if record, ok := fileRecord(filepath.Join(dir, entry.Name()), entry, course); ok {
			records = append(records, record)
		}
	}
	return records, nil
}

func fileRecord(path string, entry fs.DirEntry, course string) (domain.FileRecord, bool) {
	info, err := entry.Info()
	if err != nil || !info.Mode().IsRegular() {
		return domain.FileRecord{}, false
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	modified := info.ModTime()
	return domain.FileRecord{
		ID:       LocalID(abs),
		Name:     entry.Name(),
		Filename: entry.Name(),
		MimeType: DetectMimeType(entry.Name()),
		Size:     info.Size(),
		Modified: &modified,
		Path:     abs,
		Course:   course,
		Source:   domain.SourceLocal,
	}, true
}

// skipEntry hides dotfiles and partial downloads.
func skipEntry(name string) bool {
	return strings.HasPrefix(name, ".") || strings.HasSuffix(name, tmpSuffix)
}
