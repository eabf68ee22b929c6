package validation

import (
	"regexp"
)

// Validation rule patterns
var (
	// CanvasURLPattern accepts absolute http(s) URLs
	CanvasURLPattern = `(?i)^https?://[^\s/?#]+[^\s]*$`

	// LocalIDPattern matches the 32 hex digit ids of scanned local files
	LocalIDPattern = `^[0-9a-f]{32}$`

	// YouTubeURLPattern matches watch, embed, shorts and youtu.be links and
	// captures the 11 character video id
	YouTubeURLPattern = `(?i)^https?://(?:(?:www\.|m\.)?youtube\.com/(?:watch\?(?:[^#\s]*&)?v=|embed/|shorts/)|youtu\.be/)([A-Za-z0-9_-]{11})(?:[?&#/][^\s]*)?$`

	// CanvasURLMaxLength bounds user-supplied base URLs
	CanvasURLMaxLength = 2048

	// YouTubeURLMinLength is the length of the shortest video link
	YouTubeURLMinLength = len("https://youtu.be/") + 11
)

// CompiledPatterns caches compiled regex patterns
var CompiledPatterns = struct {
	CanvasURL  *regexp.Regexp
	LocalID    *regexp.Regexp
	YouTubeURL *regexp.Regexp
}{
	CanvasURL:  regexp.MustCompile(CanvasURLPattern),
	LocalID:    regexp.MustCompile(LocalIDPattern),
	YouTubeURL: regexp.MustCompile(YouTubeURLPattern),
}

// StringValidation is a chainable check over one string value
// that rejects the empty string
type StringValidation struct {
	Value   string
	MinLen  int
	MaxLen  int
	Pattern *regexp.Regexp
}

// NewStringValidation creates a new string validation
func NewStringValidation(value string) *StringValidation {
	return &StringValidation{Value: value}
}

// WithMinLength sets minimum length
func (v *StringValidation) WithMinLength(min int) *StringValidation {
	v.MinLen = min
	return v
}

// WithMaxLength sets maximum length
func (v *StringValidation) WithMaxLength(max int) *StringValidation {
	v.MaxLen = max
	return v
}

// WithPattern sets regex pattern
func (v *StringValidation) WithPattern(pattern *regexp.Regexp) *StringValidation {
	v.Pattern = pattern
	return v
}

// Validate performs validation
func (v *StringValidation) Validate() bool {
	if v.Value == "" {
		return false
	}
	if v.MinLen > 0 && len(v.Value) < v.MinLen {
		return false
	}
	if v.MaxLen > 0 && len(v.Value) > v.MaxLen {
		return false
	}
	if v.Pattern != nil && !v.Pattern.MatchString(v.Value) {
		return false
	}
	return true
}

// IsCanvasURL reports whether s can serve as a Canvas base URL
func IsCanvasURL(s string) bool {
	return NewStringValidation(s).
		WithMaxLength(CanvasURLMaxLength).
		WithPattern(CompiledPatterns.CanvasURL).
		Validate()
}

// IsLocalID reports whether s has the shape of a local file id
func IsLocalID(s string) bool {
	return NewStringValidation(s).WithPattern(CompiledPatterns.LocalID).Validate()
}

// YouTubeVideoID returns the video id of a YouTube link
func YouTubeVideoID(s string) (string, bool) {
	ok := NewStringValidation(s).
		WithMinLength(YouTubeURLMinLength).
		WithMaxLength(CanvasURLMaxLength).
		WithPattern(CompiledPatterns.YouTubeURL).
		Validate()
	if !ok {
		return "", false
	}
	return CompiledPatterns.YouTubeURL.FindStringSubmatch(s)[1], true
}

// IsYouTubeURL reports whether s links to a single YouTube video
func IsYouTubeURL(s string) bool {
	_, ok := YouTubeVideoID(s)
	return ok
}
