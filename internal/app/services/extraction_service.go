package services

import (
	"context"
	"strings"

	"github.com/yigit/canvasstudy/internal/domain"
	"github.com/yigit/canvasstudy/internal/pkg/apperrors"
	"github.com/yigit/canvasstudy/internal/pkg/cache"
	"github.com/yigit/canvasstudy/internal/pkg/extractor"
	"github.com/yigit/canvasstudy/internal/pkg/filestorage"
	"github.com/yigit/canvasstudy/internal/pkg/logger"
	"github.com/yigit/canvasstudy/internal/pkg/validation"
	"golang.org/x/sync/errgroup"
)

// DefaultBatchLimit bounds concurrent extractions of one batch.
const DefaultBatchLimit = 4

// youTubeCacheScope stands in for the Canvas base URL in transcript cache keys.
const youTubeCacheScope = "https://www.youtube.com"

// ExtractionResult is the text of one file and whether it came from the cache.
type ExtractionResult struct {
	Text   *domain.ExtractedText
	Cached bool
}

// BatchOutcome is the independent result of one file of a batch.
type BatchOutcome struct {
	FileID string
	Result *ExtractionResult
	Err    error
}

// ExtractionService acquires files and extracts their text
type ExtractionService interface {
	ExtractRemote(ctx context.Context, creds domain.Credentials, fileID string) (*ExtractionResult, error)
	ExtractBatch(ctx context.Context, creds domain.Credentials, fileIDs []string) ([]BatchOutcome, error)
	ExtractLocal(ctx context.Context, id string) (*domain.ExtractedText, error)
	ExtractVideo(ctx context.Context, videoURL string) (*ExtractionResult, error)
	DownloadToLocal(ctx context.Context, creds domain.Credentials, fileID, courseName string) (*domain.FileRecord, bool, error)
	ListDownloaded(ctx context.Context) ([]domain.FileRecord, error)
}

type extractionServiceImpl struct {
	newClient  ClientFactory
	extractor  TextExtractor
	storage    filestorage.FileStorage
	cache      cache.ExtractionCache
	batchLimit int
}

// NewExtractionService creates a new ExtractionService. A nil cache disables caching.
func NewExtractionService(
	newClient ClientFactory,
	textExtractor TextExtractor,
	storage filestorage.FileStorage,
	extractionCache cache.ExtractionCache,
	batchLimit int,
) ExtractionService {
	if extractionCache == nil {
		extractionCache = cache.Noop{}
	}
	if batchLimit <= 0 {
		batchLimit = DefaultBatchLimit
	}
	return &extractionServiceImpl{
		newClient:  newClient,
		extractor:  textExtractor,
		storage:    storage,
		cache:      extractionCache,
		batchLimit: batchLimit,
	}
}

// ExtractRemote downloads one Canvas file and extracts its text.
func (s *extractionServiceImpl) ExtractRemote(ctx context.Context, creds domain.Credentials, fileID string) (*ExtractionResult, error) {
	client, err := s.newClient(creds)
	if err != nil {
		return nil, err
	}
	return s.extractWith(ctx, client, strings.TrimSpace(fileID))
}

func (s *extractionServiceImpl) extractWith(ctx context.Context, client DirectoryClient, fileID string) (*ExtractionResult, error) {
	record, err := client.GetFile(ctx, fileID)
	if err != nil {
		return nil, err
	}

	key := cache.Key(client.BaseURL(), record.ID, record.Modified)
	if text, hit, err := s.cache.Get(ctx, key); err != nil {
		logger.FromContext(ctx).Warn().Err(err).Str("fileId", fileID).Msg("Extraction cache read failed")
	} else if hit {
		return &ExtractionResult{Text: text, Cached: true}, nil
	}

	data, err := client.Download(ctx, record.URL)
	if err != nil {
		return nil, err
	}

	text, err := s.extractor.Extract(ctx, *record, extractor.Source{Data: data})
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, key, text); err != nil {
		logger.FromContext(ctx).Warn().Err(err).Str("fileId", fileID).Msg("Extraction cache write failed")
	}
	return &ExtractionResult{Text: text}, nil
}

// ExtractBatch extracts several files with bounded parallelism. A failing
// file never cancels its siblings; outcomes keep the order of fileIDs.
func (s *extractionServiceImpl) ExtractBatch(ctx context.Context, creds domain.Credentials, fileIDs []string) ([]BatchOutcome, error) {
	if len(fileIDs) == 0 {
		return nil, apperrors.NewValidationError("at least one fileId is required")
	}
	client, err := s.newClient(creds)
	if err != nil {
		return nil, err
	}

	outcomes := make([]BatchOutcome, len(fileIDs))
	var g errgroup.Group
	g.SetLimit(s.batchLimit)
	for i, id := range fileIDs {
		i, id := i, strings.TrimSpace(id)
		g.Go(func() error {
			res, err := s.extractWith(ctx, client, id)
			outcomes[i] = BatchOutcome{FileID: id, Result: res, Err: err}
			return nil
		})
	}
	_ = g.Wait()

	failed := 0
	for _, o := range outcomes {
		if o.Err != nil {
			failed++
		}
	}
	logger.FromContext(ctx).Info().
		Int("files", len(fileIDs)).
		Int("failed", failed).
		Msg("Batch extraction finished")
	return outcomes, nil
}

// ExtractLocal extracts a file found by ScanLocalDownloads.
func (s *extractionServiceImpl) ExtractLocal(ctx context.Context, id string) (*domain.ExtractedText, error) {
	record, err := s.storage.Resolve(strings.TrimSpace(id))
	if err != nil {
		return nil, err
	}
	return s.extractor.Extract(ctx, *record, extractor.Source{Path: record.Path})
}

// ExtractVideo fetches the transcript of a YouTube video through the
// extraction worker.
func (s *extractionServiceImpl) ExtractVideo(ctx context.Context, videoURL string) (*ExtractionResult, error) {
	videoURL = strings.TrimSpace(videoURL)
	id, ok := validation.YouTubeVideoID(videoURL)
	if !ok {
		return nil, apperrors.NewValidationError("%q is not a YouTube video URL", videoURL)
	}

	key := cache.Key(youTubeCacheScope, id, nil)
	if text, hit, err := s.cache.Get(ctx, key); err != nil {
		logger.FromContext(ctx).Warn().Err(err).Str("videoId", id).Msg("Extraction cache read failed")
	} else if hit {
		return &ExtractionResult{Text: text, Cached: true}, nil
	}

	record := domain.FileRecord{
		ID:       id,
		Name:     id,
		MimeType: extractor.MimeYouTube,
		URL:      videoURL,
		Source:   domain.SourceYouTube,
	}
	text, err := s.extractor.Extract(ctx, record, extractor.Source{Data: []byte(videoURL)})
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, key, text); err != nil {
		logger.FromContext(ctx).Warn().Err(err).Str("videoId", id).Msg("Extraction cache write failed")
	}
	return &ExtractionResult{Text: text}, nil
}

// DownloadToLocal saves a Canvas file under the course folder of the first download root.
func (s *extractionServiceImpl) DownloadToLocal(ctx context.Context, creds domain.Credentials, fileID, courseName string) (*domain.FileRecord, bool, error) {
	client, err := s.newClient(creds)
	if err != nil {
		return nil, false, err
	}
	record, err := client.GetFile(ctx, strings.TrimSpace(fileID))
	if err != nil {
		return nil, false, err
	}
	data, err := client.Download(ctx, record.URL)
	if err != nil {
		return nil, false, err
	}

	name := record.Filename
	if name == "" {
		name = record.DisplayName()
	}
	saved, skipped, err := s.storage.SaveCourseFile(courseName, name, data)
	if err != nil {
		return nil, false, err
	}
	logger.FromContext(ctx).Info().
		Str("fileId", record.ID).
		Str("path", saved.Path).
		Bool("skipped", skipped).
		Msg("Canvas file stored locally")
	return saved, skipped, nil
}

// ListDownloaded scans the configured download roots.
func (s *extractionServiceImpl) ListDownloaded(_ context.Context) ([]domain.FileRecord, error) {
	return s.storage.Scan()
}
