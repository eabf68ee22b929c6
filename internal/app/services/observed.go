package services

import (
	"context"
	"time"

	"github.com/yigit/canvasstudy/internal/domain"
	"github.com/yigit/canvasstudy/internal/pkg/extractor"
	"github.com/yigit/canvasstudy/internal/pkg/llm"
)

// Completion operations reported to an Observer.
const (
	OperationNotes  = "notes"
	OperationAnswer = "answer"
)

// Observer receives the outcome of extractions and LLM completions.
type Observer interface {
	ObserveExtraction(err error)
	ObserveCompletion(operation string, elapsed time.Duration, err error)
}

// ObserveExtractor reports every extraction run by ext to obs.
func ObserveExtractor(ext TextExtractor, obs Observer) TextExtractor {
	return &observedExtractor{next: ext, obs: obs}
}

type observedExtractor struct {
	next TextExtractor
	obs  Observer
}

func (o *observedExtractor) Extract(ctx context.Context, record domain.FileRecord, src extractor.Source) (*domain.ExtractedText, error) {
	text, err := o.next.Extract(ctx, record, src)
	o.obs.ObserveExtraction(err)
	return text, err
}

// ObserveModel times every completion of model for obs.
func ObserveModel(model LanguageModel, obs Observer) LanguageModel {
	return &observedModel{LanguageModel: model, obs: obs}
}

type observedModel struct {
	LanguageModel
	obs Observer
}

func (o *observedModel) GenerateNotes(ctx context.Context, req llm.NotesRequest) (*llm.Completion, error) {
	start := time.Now()
	c, err := o.LanguageModel.GenerateNotes(ctx, req)
	o.obs.ObserveCompletion(OperationNotes, time.Since(start), err)
	return c, err
}

func (o *observedModel) AnswerQuestion(ctx context.Context, req llm.QuestionRequest) (*llm.Completion, error) {
	start := time.Now()
	c, err := o.LanguageModel.AnswerQuestion(ctx, req)
	o.obs.ObserveCompletion(OperationAnswer, time.Since(start), err)
	return c, err
}
