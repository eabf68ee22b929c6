package cache

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"strings"
	"time"

	"github.com/yigit/canvasstudy/internal/domain"
)

// ExtractionCache stores extracted text keyed by the remote file version.
type ExtractionCache interface {
	Get(ctx context.Context, key string) (*domain.ExtractedText, bool, error)
	Set(ctx context.Context, key string, text *domain.ExtractedText) error
	Ping(ctx context.Context) error
	Close() error
}

const keyPrefix = "extract:"

// Key derives the cache key of a Canvas file version. A new upload changes
// the modification time and therefore the key.
func Key(baseURL, fileID string, modified *time.Time) string {
	stamp := ""
	if modified != nil {
		stamp = modified.UTC().Format(time.RFC3339Nano)
	}
	sum := sha1.Sum([]byte(strings.TrimRight(baseURL, "/") + "\x00" + fileID + "\x00" + stamp))
	return keyPrefix + hex.EncodeToString(sum[:])
}

// Noop never stores anything.
type Noop struct{}

func (Noop) Get(context.Context, string) (*domain.ExtractedText, bool, error) {
	return nil, false, nil
}

func (Noop) Set(context.Context, string, *domain.ExtractedText) error { return nil }

func (Noop) Ping(context.Context) error { return nil }

func (Noop) Close() error { return nil }
