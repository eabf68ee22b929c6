package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/yigit/canvasstudy/internal/pkg/apperrors"
	"github.com/yigit/canvasstudy/internal/pkg/logger"
)

// Sampling parameters per request kind.
const (
	NotesTemperature  = 0.3
	AnswerTemperature = 0.2
	TopP              = 1.0
)

const (
	DefaultBaseURL         = "https://api.groq.com/openai/v1"
	DefaultModel           = "llama-3.1-8b-instant"
	defaultTimeout         = 30 * time.Second
	defaultNotesMaxTokens  = 2048
	defaultAnswerMaxTokens = 1024
	defaultMaxInputChars   = 24000
)

// Config configures a Client. Zero values fall back to defaults.
type Config struct {
	APIKey          string
	BaseURL         string
	Model           string
	Timeout         time.Duration
	NotesMaxTokens  int
	AnswerMaxTokens int
	MaxInputChars   int
	HTTPClient      *http.Client
}

// NotesRequest asks for study notes over extracted text.
type NotesRequest struct {
	Text        string
	FileName    string
	CourseTitle string
}

// QuestionRequest asks a question with optional course material as context.
type QuestionRequest struct {
	Question    string
	Context     string
	CourseTitle string
}

// Usage mirrors the token accounting of the completion response.
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// Completion is the text returned by the model.
type Completion struct {
	Content      string `json:"content"`
	Model        string `json:"model"`
	FinishReason string `json:"finishReason,omitempty"`
	Usage        Usage  `json:"usage"`
	// Truncated is set when the input was clipped or narrowed to fit.
	Truncated bool `json:"truncated"`
}

// Client is a chat-completions client for an OpenAI-compatible endpoint.
type Client struct {
	apiKey          string
	base            string
	model           string
	timeout         time.Duration
	notesMaxTokens  int
	answerMaxTokens int
	maxInputChars   int
	http            *http.Client
}

// NewClient builds a Client. A missing key is reported on first use.
func NewClient(cfg Config) *Client {
	c := &Client{
		apiKey:          strings.TrimSpace(cfg.APIKey),
		base:            strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/"),
		model:           cfg.Model,
		timeout:         cfg.Timeout,
		notesMaxTokens:  cfg.NotesMaxTokens,
		answerMaxTokens: cfg.AnswerMaxTokens,
		maxInputChars:   cfg.MaxInputChars,
		http:            cfg.HTTPClient,
	}
	if c.base == "" {
		c.base = DefaultBaseURL
	}
	if c.model == "" {
		c.model = DefaultModel
	}
	if c.timeout <= 0 {
		c.timeout = defaultTimeout
	}
	if c.notesMaxTokens <= 0 {
		c.notesMaxTokens = defaultNotesMaxTokens
	}
	if c.answerMaxTokens <= 0 {
		c.answerMaxTokens = defaultAnswerMaxTokens
	}
	if c.maxInputChars <= 0 {
		c.maxInputChars = defaultMaxInputChars
	}
	if c.http == nil {
		c.http = &http.Client{}
	}
	return c
}

// Configured reports whether an API key is present.
func (c *Client) Configured() bool {
	return c.apiKey != ""
}

// Model returns the model name sent with every request.
func (c *Client) Model() string {
	return c.model
}

// GenerateNotes turns extracted text into study notes.
func (c *Client) GenerateNotes(ctx context.Context, req NotesRequest) (*Completion, error) {
	if strings.TrimSpace(req.Text) == "" {
		return nil, apperrors.NewValidationError("text is required to generate notes")
	}
	if err := c.requireKey(); err != nil {
		return nil, err
	}

	text, clipped := clipText(strings.TrimSpace(req.Text), c.maxInputChars)
	messages := []message{
		{Role: "system", Content: notesSystemPrompt},
		{Role: "user", Content: buildNotesPrompt(req.FileName, req.CourseTitle, text)},
	}

	completion, err := c.chat(ctx, messages, NotesTemperature, c.notesMaxTokens)
	if err != nil {
		return nil, err
	}
	completion.Truncated = clipped
	return completion, nil
}

// AnswerQuestion answers a question, grounded in the context when one is given.
func (c *Client) AnswerQuestion(ctx context.Context, req QuestionRequest) (*Completion, error) {
	question := strings.TrimSpace(req.Question)
	if question == "" {
		return nil, apperrors.NewValidationError("question is required")
	}
	if err := c.requireKey(); err != nil {
		return nil, err
	}

	material, narrowed := narrowContext(strings.TrimSpace(req.Context), question, c.maxInputChars)
	messages := []message{
		{Role: "system", Content: answerSystemPrompt},
		{Role: "user", Content: buildAnswerPrompt(question, material, req.CourseTitle)},
	}

	completion, err := c.chat(ctx, messages, AnswerTemperature, c.answerMaxTokens)
	if err != nil {
		return nil, err
	}
	completion.Truncated = narrowed
	return completion, nil
}

func (c *Client) requireKey() error {
	if c.apiKey != "" {
		return nil
	}
	err := apperrors.NewConfigurationError("LLM API key is not configured on the server")
	err.Status = http.StatusServiceUnavailable
	return err
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string    `json:"model"`
	Messages    []message `json:"messages"`
	Temperature float64   `json:"temperature"`
	MaxTokens   int       `json:"max_tokens"`
	TopP        float64   `json:"top_p"`
	Stream      bool      `json:"stream"`
}

type chatResponse struct {
	Model   string `json:"model"`
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
	Usage Usage `json:"usage"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

func (c *Client) chat(ctx context.Context, messages []message, temperature float64, maxTokens int) (*Completion, error) {
	buf, err := json.Marshal(chatRequest{
		Model:       c.model,
		Messages:    messages,
		Temperature: temperature,
		MaxTokens:   maxTokens,
		TopP:        TopP,
		Stream:      false,
	})
	if err != nil {
		return nil, apperrors.NewGenerationError(0, err, "failed to encode completion request")
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	endpoint := fmt.Sprintf("%s/chat/completions", c.base)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(buf))
	if err != nil {
		return nil, apperrors.NewConfigurationError("invalid LLM base URL: %v", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, c.transportError(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, c.transportError(err)
	}

	var parsed chatResponse
	decodeErr := json.Unmarshal(body, &parsed)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		detail := strings.TrimSpace(string(body))
		if decodeErr == nil && parsed.Error != nil && parsed.Error.Message != "" {
			detail = parsed.Error.Message
		}
		logger.Warn().Int("status", resp.StatusCode).Str("model", c.model).Msg("LLM request rejected")
		return nil, apperrors.NewGenerationError(resp.StatusCode, nil, "LLM API error (%d): %s", resp.StatusCode, truncate(detail, 300))
	}
	if decodeErr != nil {
		return nil, apperrors.NewGenerationError(0, decodeErr, "malformed LLM response")
	}
	if len(parsed.Choices) == 0 || strings.TrimSpace(parsed.Choices[0].Message.Content) == "" {
		return nil, apperrors.NewGenerationError(0, nil, "LLM returned an empty completion")
	}

	model := parsed.Model
	if model == "" {
		model = c.model
	}
	logger.Debug().
		Str("model", model).
		Int("totalTokens", parsed.Usage.TotalTokens).
		Dur("latency", time.Since(start)).
		Msg("LLM completion received")

	return &Completion{
		Content:      strings.TrimSpace(parsed.Choices[0].Message.Content),
		Model:        model,
		FinishReason: parsed.Choices[0].FinishReason,
		Usage:        parsed.Usage,
	}, nil
}

func (c *Client) transportError(err error) error {
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return apperrors.NewTimeoutError(err, "LLM request timed out after %s", c.timeout)
	}
	return apperrors.NewGenerationError(0, err, "LLM request failed: %v", err)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
