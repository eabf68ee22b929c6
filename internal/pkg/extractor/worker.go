package extractor

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"os/exec"
	"strings"
	"time"

	"github.com/yigit/canvasstudy/internal/pkg/apperrors"
	"github.com/yigit/canvasstudy/internal/pkg/logger"
)

// Worker runs an external extraction process speaking JSON over stdio.
//
// Request on stdin:   {"filename", "mimeType", "content" (base64)}
// Response on stdout: {"text", "pageCount", "error", "errorType"}
//
// For MimeYouTube requests the content is the video URL and the response
// text is the transcript.
type Worker struct {
	Command string
	Args    []string
	Timeout time.Duration
	// Env is appended to the parent environment when non-nil.
	Env []string
}

type workerRequest struct {
	Filename string `json:"filename"`
	MimeType string `json:"mimeType"`
	Content  string `json:"content"`
}

type workerResponse struct {
	Text      string `json:"text"`
	PageCount int    `json:"pageCount"`
	Error     string `json:"error"`
	ErrorType string `json:"errorType"`
}

// NewWorker returns nil when command is empty.
func NewWorker(command string, args []string, timeout time.Duration) *Worker {
	if strings.TrimSpace(command) == "" {
		return nil
	}
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Worker{Command: command, Args: args, Timeout: timeout}
}

func (w *Worker) extract(ctx context.Context, in input) (output, error) {
	payload, err := json.Marshal(workerRequest{
		Filename: in.filename,
		MimeType: in.mimeType,
		Content:  base64.StdEncoding.EncodeToString(in.data),
	})
	if err != nil {
		return output{}, apperrors.NewUnknownError(0, err, "failed to encode worker request")
	}

	ctx, cancel := context.WithTimeout(ctx, w.Timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, w.Command, w.Args...)
	if w.Env != nil {
		cmd.Env = append(cmd.Environ(), w.Env...)
	}
	cmd.Stdin = bytes.NewReader(payload)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	runErr := cmd.Run()
	if ctx.Err() != nil && errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return output{}, apperrors.NewTimeoutError(ctx.Err(), "extraction worker timed out after %s", w.Timeout)
	}

	var resp workerResponse
	decodeErr := json.Unmarshal(bytes.TrimSpace(stdout.Bytes()), &resp)

	if runErr != nil && decodeErr != nil {
		logger.Error().Err(runErr).Str("stderr", truncate(stderr.String(), 512)).Str("file", in.filename).Msg("Extraction worker failed")
		return output{}, apperrors.NewUnknownError(0, runErr, "extraction worker failed: %s", truncate(strings.TrimSpace(stderr.String()), 200))
	}
	if decodeErr != nil {
		return output{}, apperrors.NewUnknownError(0, decodeErr, "extraction worker returned malformed output")
	}
	if resp.Error != "" || resp.ErrorType != "" {
		return output{}, workerError(resp, in)
	}

	return output{text: resp.Text, pages: resp.PageCount}, nil
}

func workerError(resp workerResponse, in input) error {
	msg := resp.Error
	if msg == "" {
		msg = resp.ErrorType
	}
	cause := errors.New(msg)
	switch resp.ErrorType {
	case "corrupted":
		return apperrors.NewCorruptedSourceError(cause, "%s: %s", in.filename, msg)
	case "unsupported":
		return apperrors.NewUnsupportedSubFormatError(in.mimeType, msg)
	case "io":
		return apperrors.NewIOError(cause, "%s: %s", in.filename, msg)
	case "no_text":
		return apperrors.NewNoTextError(in.filename)
	default:
		return apperrors.NewUnknownError(0, cause, "extraction worker error: %s", msg)
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
