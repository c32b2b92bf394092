package rag

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_deps.go -package=mocks bharatlaw-ai/internal/rag Embedder,Generator

import (
	"context"

	"bharatlaw-ai/internal/llm"
)

// Embedder turns texts into vectors. The vector size must match the collection.
type Embedder interface {
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// Generator produces a chat completion for an ordered message list.
type Generator interface {
	ChatWithMessages(ctx context.Context, messages []llm.Message, params llm.ChatParams) (string, error)
}
