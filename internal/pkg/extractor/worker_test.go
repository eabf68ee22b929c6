package extractor

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/yigit/canvasstudy/internal/pkg/apperrors"
)

// TestHelperProcess is not a real test. It is re-executed as the extraction
// worker by the tests below.
func TestHelperProcess(t *testing.T) {
	if os.Getenv("GO_WANT_HELPER_PROCESS") != "1" {
		return
	}
	defer os.Exit(0)

	args := os.Args
	for len(args) > 0 && args[0] != "--" {
		args = args[1:]
	}
	mode := ""
	if len(args) > 1 {
		mode = args[1]
	}

	var req workerRequest
	if err := json.NewDecoder(os.Stdin).Decode(&req); err != nil {
		fmt.Fprintf(os.Stderr, "bad request: %v", err)
		os.Exit(2)
	}

	switch mode {
	case "echo":
		content, _ := base64.StdEncoding.DecodeString(req.Content)
		_ = json.NewEncoder(os.Stdout).Encode(workerResponse{
			Text:      fmt.Sprintf("%s|%s|%s", req.Filename, req.MimeType, content),
			PageCount: 7,
		})
	case "corrupted":
		_ = json.NewEncoder(os.Stdout).Encode(workerResponse{Error: "bad OLE header", ErrorType: "corrupted"})
	case "unsupported":
		_ = json.NewEncoder(os.Stdout).Encode(workerResponse{Error: "encrypted document", ErrorType: "unsupported"})
	case "sleep":
		time.Sleep(10 * time.Second)
	case "crash":
		fmt.Fprint(os.Stderr, "segfault")
		os.Exit(3)
	}
}

func helperWorker(mode string, timeout time.Duration) *Worker {
	return &Worker{
		Command: os.Args[0],
		Args:    []string{"-test.run=TestHelperProcess", "--", mode},
		Timeout: timeout,
		Env:     []string{"GO_WANT_HELPER_PROCESS=1"},
	}
}

func TestWorkerHandlesLegacyFormats(t *testing.T) {
	t.Parallel()

	ex := New(Options{Worker: helperWorker("echo", 30*time.Second)})
	got, err := ex.Extract(context.Background(), record("lecture.ppt", MimePPT), Source{Data: []byte("binary")})
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if got.Text != "lecture.ppt|"+MimePPT+"|binary" {
		t.Fatalf("unexpected text %q", got.Text)
	}
	if got.ExtractionMethod != "worker" || got.PageCount != 7 {
		t.Fatalf("unexpected metadata %+v", got)
	}
}

func TestWorkerFetchesYouTubeTranscripts(t *testing.T) {
	t.Parallel()

	const link = "https://youtu.be/dQw4w9WgXcQ"
	ex := New(Options{Worker: helperWorker("echo", 30*time.Second)})
	got, err := ex.Extract(context.Background(), record("dQw4w9WgXcQ", MimeYouTube), Source{Data: []byte(link)})
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if got.Text != "dQw4w9WgXcQ|"+MimeYouTube+"|"+link {
		t.Fatalf("worker did not receive the video URL, text %q", got.Text)
	}
	if got.ExtractionMethod != "youtube-transcript" || got.MimeType != MimeYouTube {
		t.Fatalf("unexpected metadata %+v", got)
	}
}

func TestWorkerErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		mode    string
		timeout time.Duration
		want    apperrors.Kind
	}{
		{"corrupted", 30 * time.Second, apperrors.KindCorruptedSource},
		{"unsupported", 30 * time.Second, apperrors.KindUnsupportedSubFormat},
		{"crash", 30 * time.Second, apperrors.KindUnknown},
		{"sleep", 200 * time.Millisecond, apperrors.KindTimeout},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.mode, func(t *testing.T) {
			t.Parallel()
			ex := New(Options{Worker: helperWorker(tt.mode, tt.timeout)})
			_, err := ex.Extract(context.Background(), record("old.doc", MimeDOC), Source{Data: []byte("x")})
			if kind := apperrors.KindOf(err); kind != tt.want {
				t.Fatalf("kind = %s, want %s (%v)", kind, tt.want, err)
			}
		})
	}
}

func TestNewWorkerDisabledWithoutCommand(t *testing.T) {
	t.Parallel()

	if w := NewWorker("  ", nil, time.Second); w != nil {
		t.Fatalf("expected nil worker")
	}
	w := NewWorker("extract-worker", []string{"--json"}, 0)
	if w == nil || w.Timeout != 60*time.Second || !strings.Contains(w.Command, "extract") {
		t.Fatalf("unexpected worker %+v", w)
	}
}
