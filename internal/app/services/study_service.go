package services

import (
	"context"
	"strings"
	"time"

	"github.com/yigit/canvasstudy/internal/app/models/dto"
	"github.com/yigit/canvasstudy/internal/pkg/llm"
	"github.com/yigit/canvasstudy/internal/pkg/logger"
)

// StudyService generates notes and answers questions through the LLM
type StudyService interface {
	GenerateNotes(ctx context.Context, req dto.GenerateNotesRequest) (*dto.NotesResponse, error)
	AnswerQuestion(ctx context.Context, req dto.AnswerQuestionRequest) (*dto.AnswerResponse, error)
}

type studyServiceImpl struct {
	model LanguageModel
	notes NoteService
	now   func() time.Time
}

// NewStudyService creates a new StudyService. notes may be nil when
// archiving is not wanted.
func NewStudyService(model LanguageModel, notes NoteService) StudyService {
	return &studyServiceImpl{model: model, notes: notes, now: time.Now}
}

func (s *studyServiceImpl) GenerateNotes(ctx context.Context, req dto.GenerateNotesRequest) (*dto.NotesResponse, error) {
	completion, err := s.model.GenerateNotes(ctx, llm.NotesRequest{
		Text:        req.Text,
		FileName:    req.Filename,
		CourseTitle: req.CourseTitle,
	})
	if err != nil {
		return nil, err
	}

	meta := s.metadata(completion, len([]rune(strings.TrimSpace(req.Text))))
	meta.Filename = req.Filename
	meta.CourseTitle = req.CourseTitle

	if req.Save && s.notes != nil {
		note, err := s.notes.Save(ctx, dto.CreateNoteRequest{
			FileName:   req.Filename,
			CourseID:   req.CourseID,
			CourseName: req.CourseTitle,
			Content:    completion.Content,
		})
		if err != nil {
			// archiving never fails the request
			logger.FromContext(ctx).Warn().Err(err).Msg("Failed to archive generated notes")
		} else {
			meta.NoteID = note.ID
		}
	}

	return &dto.NotesResponse{Success: true, Notes: completion.Content, Metadata: meta}, nil
}

func (s *studyServiceImpl) AnswerQuestion(ctx context.Context, req dto.AnswerQuestionRequest) (*dto.AnswerResponse, error) {
	completion, err := s.model.AnswerQuestion(ctx, llm.QuestionRequest{
		Question:    req.Question,
		Context:     req.Context,
		CourseTitle: req.CourseTitle,
	})
	if err != nil {
		return nil, err
	}

	meta := s.metadata(completion, len([]rune(strings.TrimSpace(req.Context))))
	meta.CourseTitle = req.CourseTitle
	return &dto.AnswerResponse{Success: true, Answer: completion.Content, Metadata: meta}, nil
}

func (s *studyServiceImpl) metadata(c *llm.Completion, inputChars int) dto.GenerationMetadata {
	return dto.GenerationMetadata{
		Model:            c.Model,
		InputChars:       inputChars,
		Truncated:        c.Truncated,
		PromptTokens:     c.Usage.PromptTokens,
		CompletionTokens: c.Usage.CompletionTokens,
		GeneratedAt:      s.now().UTC(),
	}
}
