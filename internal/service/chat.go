package service

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_assistant.go -package=mocks bharatlaw-ai/internal/service Assistant
//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_chat_service.go -package=mocks -mock_names=ChatService=MockChatService bharatlaw-ai/internal/service ChatService

import (
	"context"
	"fmt"
	"strings"

	"bharatlaw-ai/internal/contextutil"
	"bharatlaw-ai/internal/llm"
	"bharatlaw-ai/internal/rag"
)

// EmptyQuestionAnswer is returned for a blank question without running the pipeline.
const EmptyQuestionAnswer = "Please enter a valid legal question."

// Assistant answers legal questions.
// This interface is defined from the service layer's perspective (consumer-first).
type Assistant interface {
	Query(ctx context.Context, q rag.Query) (rag.Result, error)
}

// ChatRequest represents a chat request in the domain layer.
type ChatRequest struct {
	Question string
	// History is optional, oldest turn first. Only user and assistant roles are accepted.
	History []llm.Message
}

// ChatResponse represents a chat response in the domain layer.
type ChatResponse struct {
	Answer string
	Source rag.Source
}

// ChatService provides chat functionality.
type ChatService interface {
	// ProcessChat answers a question and reports which path produced the answer.
	ProcessChat(ctx context.Context, req ChatRequest) (ChatResponse, error)
}

type chatService struct {
	assistant Assistant
}

// NewChatService creates a new ChatService.
func NewChatService(assistant Assistant) ChatService {
	return &chatService{assistant: assistant}
}

func (s *chatService) ProcessChat(ctx context.Context, req ChatRequest) (ChatResponse, error) {
	logger := contextutil.LoggerFromContext(ctx)

	question := strings.TrimSpace(req.Question)
	if question == "" {
		logger.WarnContext(ctx, "empty question in chat request")
		return ChatResponse{Answer: EmptyQuestionAnswer, Source: rag.SourceFallbackLLM}, nil
	}

	for i, m := range req.History {
		if m.Role != llm.RoleUser && m.Role != llm.RoleAssistant {
			return ChatResponse{}, &ValidationError{
				Field:   fmt.Sprintf("history[%d].role", i),
				Message: fmt.Sprintf("must be %q or %q", llm.RoleUser, llm.RoleAssistant),
			}
		}
	}

	logger.InfoContext(ctx, "user question", "question_length", len(question), "history_turns", len(req.History))

	result, err := s.assistant.Query(ctx, rag.Query{Question: question, History: req.History})
	if err != nil {
		logger.ErrorContext(ctx, "failed to answer question", "error", err)
		return ChatResponse{}, WrapExternal(err, "failed to answer question")
	}

	logger.InfoContext(ctx, "chat request processed", "source", result.Source, "answer_length", len(result.Answer))
	return ChatResponse{Answer: result.Answer, Source: result.Source}, nil
}
