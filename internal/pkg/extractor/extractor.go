package extractor

import (
	"context"
	"os"
	"strings"

	"github.com/yigit/canvasstudy/internal/domain"
	"github.com/yigit/canvasstudy/internal/pkg/apperrors"
	"github.com/yigit/canvasstudy/internal/pkg/filestorage"
	"github.com/yigit/canvasstudy/internal/pkg/logger"
)

// MIME types with a dedicated strategy.
const (
	MimePlain    = "text/plain"
	MimeMarkdown = "text/markdown"
	MimeJSON     = "application/json"
	MimeHTML     = "text/html"
	MimePDF      = "application/pdf"
	MimeDOCX     = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	MimePPTX     = "application/vnd.openxmlformats-officedocument.presentationml.presentation"
	MimeDOC      = "application/msword"
	MimePPT      = "application/vnd.ms-powerpoint"
	// MimeYouTube marks a record whose content is a YouTube video URL.
	MimeYouTube = "text/x-youtube-url"
)

// Source is the content to extract: in-memory bytes or a local path.
type Source struct {
	Data []byte
	Path string
}

type input struct {
	data     []byte
	filename string
	mimeType string
}

type output struct {
	text     string
	pages    int
	sections int
}

type strategy struct {
	method string
	run    func(ctx context.Context, in input) (output, error)
}

// Options configure an Extractor.
type Options struct {
	// Worker handles legacy DOC/PPT files and YouTube transcripts. Nil
	// disables them.
	Worker *Worker
}

// Extractor turns documents into plain text. It holds no mutable state.
type Extractor struct {
	strategies map[string]strategy
}

// New builds an Extractor with the full dispatch table.
func New(opts Options) *Extractor {
	e := &Extractor{strategies: map[string]strategy{
		MimePlain:    {method: "utf8", run: extractPlain},
		MimeMarkdown: {method: "utf8", run: extractPlain},
		MimeJSON:     {method: "json-indent", run: extractJSON},
		MimeHTML:     {method: "html-tokenizer", run: extractHTML},
		MimePDF:      {method: "pdf", run: extractPDF},
		MimeDOCX:     {method: "docx-xml", run: extractDOCX},
		MimePPTX:     {method: "pptx-xml", run: extractPPTX},
	}}

	legacy := strategy{method: "unsupported", run: func(_ context.Context, in input) (output, error) {
		return output{}, apperrors.NewUnsupportedSubFormatError(in.mimeType,
			"legacy Office files need the extraction worker, which is not configured")
	}}
	if opts.Worker != nil {
		legacy = strategy{method: "worker", run: opts.Worker.extract}
	}
	e.strategies[MimeDOC] = legacy
	e.strategies[MimePPT] = legacy

	transcript := strategy{method: "unsupported", run: func(_ context.Context, in input) (output, error) {
		return output{}, apperrors.NewUnsupportedSubFormatError(in.mimeType,
			"YouTube transcripts need the extraction worker, which is not configured")
	}}
	if opts.Worker != nil {
		transcript = strategy{method: "youtube-transcript", run: opts.Worker.extract}
	}
	e.strategies[MimeYouTube] = transcript

	return e
}

// Supports reports whether mimeType has a strategy.
func (e *Extractor) Supports(mimeType string) bool {
	_, ok := e.strategies[normalizeMime(mimeType)]
	return ok
}

// ResolveMimeType normalizes the record's MIME type, falling back to the
// file extension when it is missing or generic.
func ResolveMimeType(record domain.FileRecord) string {
	mt := normalizeMime(record.MimeType)
	if mt == "" || mt == filestorage.DefaultMimeType {
		name := record.Filename
		if name == "" {
			name = record.Name
		}
		mt = filestorage.DetectMimeType(name)
	}
	return mt
}

// Extract dispatches on the record's MIME type.
func (e *Extractor) Extract(ctx context.Context, record domain.FileRecord, src Source) (*domain.ExtractedText, error) {
	if err := ctx.Err(); err != nil {
		return nil, apperrors.NewTimeoutError(err, "extraction cancelled")
	}

	mimeType := ResolveMimeType(record)
	strat, ok := e.strategies[mimeType]
	if !ok {
		return nil, apperrors.NewUnsupportedFormatError(mimeType)
	}

	data := src.Data
	if data == nil && src.Path != "" {
		var err error
		data, err = os.ReadFile(src.Path)
		if err != nil {
			return nil, apperrors.NewIOError(err, "failed to read %s", src.Path)
		}
	}

	filename := record.DisplayName()
	if len(data) == 0 {
		return nil, apperrors.NewNoTextError(filename)
	}

	out, err := strat.run(ctx, input{data: data, filename: filename, mimeType: mimeType})
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(out.text) == "" {
		return nil, apperrors.NewNoTextError(filename)
	}

	logger.Debug().
		Str("file", filename).
		Str("mimeType", mimeType).
		Str("method", strat.method).
		Int("chars", len(out.text)).
		Msg("Text extracted")

	return &domain.ExtractedText{
		SourceFileID:     record.ID,
		Filename:         filename,
		Text:             out.text,
		MimeType:         mimeType,
		ExtractionMethod: strat.method,
		PageCount:        out.pages,
		SectionCount:     out.sections,
	}, nil
}

var mimeAliases = map[string]string{
	"text/x-markdown":       MimeMarkdown,
	"application/x-pdf":     MimePDF,
	"text/json":             MimeJSON,
	"application/xhtml+xml": MimeHTML,
}

func normalizeMime(mt string) string {
	mt = strings.ToLower(strings.TrimSpace(mt))
	if i := strings.IndexByte(mt, ';'); i >= 0 {
		mt = strings.TrimSpace(mt[:i])
	}
	if alias, ok := mimeAliases[mt]; ok {
		return alias
	}
	return mt
}
