package rag

import (
	"context"
	"fmt"
	"time"

	"bharatlaw-ai/internal/contextutil"
	"bharatlaw-ai/internal/intent"
	"bharatlaw-ai/internal/llm"
	"bharatlaw-ai/internal/metrics"
)

// DefaultK is the retrieval depth used when neither the engine nor the query sets one.
const DefaultK = 5

// EngineConfig holds the tunables of the answer pipeline.
type EngineConfig struct {
	// Threshold is the similarity a nearest match needs for a grounded answer.
	Threshold float64
	// K is the default retrieval depth.
	K int
	// AugmentedModel answers with retrieved sections.
	AugmentedModel string
	// FallbackModel answers from general knowledge.
	FallbackModel string
}

// Engine answers legal questions: intent triage, retrieval, relevance gate, generation.
type Engine struct {
	retriever *Retriever
	generator Generator
	cfg       EngineConfig
}

// NewEngine creates a new answer engine.
func NewEngine(retriever *Retriever, generator Generator, cfg EngineConfig) *Engine {
	if cfg.K <= 0 {
		cfg.K = DefaultK
	}
	return &Engine{
		retriever: retriever,
		generator: generator,
		cfg:       cfg,
	}
}

// Query runs one question through the pipeline.
// Small talk is answered from canned replies without touching retrieval or generation.
// Retrieval and generation errors are returned unchanged in kind; nothing is retried.
func (e *Engine) Query(ctx context.Context, q Query) (Result, error) {
	logger := contextutil.LoggerFromContext(ctx)

	if in := intent.Classify(q.Question); in != intent.LegalQuery {
		logger.InfoContext(ctx, "answered by intent classifier", "intent", in)
		return e.done(Result{Answer: intent.QuickReply(in), Source: SourceIntentClassifier}), nil
	}

	k := q.K
	if k <= 0 {
		k = e.cfg.K
	}

	matches, err := e.retriever.Retrieve(ctx, q.Question, k)
	if err != nil {
		logger.ErrorContext(ctx, "retrieval failed", "error", err)
		return Result{}, err
	}

	var (
		prompt string
		model  string
		source Source
	)
	if Relevant(matches, e.cfg.Threshold) {
		prompt = AugmentedPrompt(q.Question, matches)
		model = e.cfg.AugmentedModel
		source = SourceVectorDB
	} else {
		prompt = FallbackPrompt(q.Question)
		model = e.cfg.FallbackModel
		source = SourceFallbackLLM
	}
	logger.InfoContext(ctx, "relevance gate decided",
		"source", source,
		"matches", len(matches),
		"cutoff", Cutoff(e.cfg.Threshold),
		"prompt_length", len(prompt),
	)

	messages := make([]llm.Message, 0, len(q.History)+1)
	messages = append(messages, q.History...)
	messages = append(messages, llm.Message{Role: llm.RoleUser, Content: prompt})

	start := time.Now()
	answer, err := e.generator.ChatWithMessages(ctx, messages, llm.ChatParams{Model: model})
	metrics.StageDuration.WithLabelValues("generate").Observe(time.Since(start).Seconds())
	if err != nil {
		logger.ErrorContext(ctx, "generation failed", "model", model, "error", err)
		return Result{}, fmt.Errorf("failed to generate answer: %w", err)
	}

	return e.done(Result{Answer: answer, Source: source}), nil
}

// LookupSection returns the stored chunks of the section referenced in text.
func (e *Engine) LookupSection(ctx context.Context, text string) ([]Match, error) {
	return e.retriever.LookupSection(ctx, text)
}

// Search returns the k nearest chunks to text without generating an answer.
func (e *Engine) Search(ctx context.Context, text string, k int) ([]Match, error) {
	if k <= 0 {
		k = e.cfg.K
	}
	return e.retriever.Retrieve(ctx, text, k)
}

func (e *Engine) done(r Result) Result {
	metrics.QueriesTotal.WithLabelValues(string(r.Source)).Inc()
	return r
}
