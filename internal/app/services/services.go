package services

import (
	"context"

	"github.com/yigit/canvasstudy/internal/domain"
	"github.com/yigit/canvasstudy/internal/pkg/canvas"
	"github.com/yigit/canvasstudy/internal/pkg/extractor"
	"github.com/yigit/canvasstudy/internal/pkg/llm"
)

// DirectoryClient is the Canvas surface used by the services.
type DirectoryClient interface {
	BaseURL() string
	ValidateCredentials(ctx context.Context) (*domain.User, error)
	DiagnosePermissions(ctx context.Context, courseID string) (*domain.PermissionReport, error)
	ListCourses(ctx context.Context) ([]domain.Course, error)
	ListFiles(ctx context.Context, courseID string) ([]domain.FileRecord, error)
	ListAssignments(ctx context.Context, courseID string) ([]domain.Assignment, error)
	ListModules(ctx context.Context, courseID string) ([]domain.Module, error)
	GetFile(ctx context.Context, fileID string) (*domain.FileRecord, error)
	Download(ctx context.Context, url string) ([]byte, error)
}

// ClientFactory builds a DirectoryClient for one request's credentials.
type ClientFactory func(creds domain.Credentials) (DirectoryClient, error)

// NewCanvasClientFactory returns a factory producing canvas.Client values.
func NewCanvasClientFactory(opts canvas.Options) ClientFactory {
	return func(creds domain.Credentials) (DirectoryClient, error) {
		client, err := canvas.NewClient(creds, opts)
		if err != nil {
			return nil, err
		}
		return client, nil
	}
}

// TextExtractor turns file bytes into text.
type TextExtractor interface {
	Extract(ctx context.Context, record domain.FileRecord, src extractor.Source) (*domain.ExtractedText, error)
}

// LanguageModel generates notes and answers.
type LanguageModel interface {
	Configured() bool
	Model() string
	GenerateNotes(ctx context.Context, req llm.NotesRequest) (*llm.Completion, error)
	AnswerQuestion(ctx context.Context, req llm.QuestionRequest) (*llm.Completion, error)
}

var (
	_ DirectoryClient = (*canvas.Client)(nil)
	_ TextExtractor   = (*extractor.Extractor)(nil)
	_ LanguageModel   = (*llm.Client)(nil)
)

// Services groups the application services
type Services struct {
	CanvasService     CanvasService
	ExtractionService ExtractionService
	StudyService      StudyService
	NoteService       NoteService
}
