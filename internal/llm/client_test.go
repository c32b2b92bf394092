package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	openai "github.com/sashabaranov/go-openai"
)

func TestNewClient(t *testing.T) {
	client := NewClient("http://localhost:11434", "test-key", "test-model")
	if client == nil {
		t.Fatal("NewClient() returned nil")
	}
	if client.BaseURL != "http://localhost:11434" {
		t.Errorf("NewClient() BaseURL = %v, want http://localhost:11434", client.BaseURL)
	}
	if client.Model != "test-model" {
		t.Errorf("NewClient() Model = %v, want test-model", client.Model)
	}
	if client.client == nil {
		t.Error("NewClient() client should not be nil")
	}
}

func chatResponse(content string) openai.ChatCompletionResponse {
	return openai.ChatCompletionResponse{
		ID:     "test-id",
		Object: "chat.completion",
		Choices: []openai.ChatCompletionChoice{
			{
				Index:        0,
				Message:      openai.ChatCompletionMessage{Role: RoleAssistant, Content: content},
				FinishReason: openai.FinishReasonStop,
			},
		},
	}
}

func TestClient_ChatWithMessages(t *testing.T) {
	tests := []struct {
		name       string
		messages   []Message
		params     ChatParams
		wantModel  string
		serverResp func(w http.ResponseWriter, r *http.Request)
		wantReply  string
		wantErr    bool
		wantErrIs  error
	}{
		{
			name:      "default model",
			messages:  []Message{{Role: RoleUser, Content: "What is Section 302?"}},
			wantModel: "test-model",
			serverResp: func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				_ = json.NewEncoder(w).Encode(chatResponse("Punishment for murder."))
			},
			wantReply: "Punishment for murder.",
		},
		{
			name: "model override with history",
			messages: []Message{
				{Role: RoleUser, Content: "Hi"},
				{Role: RoleAssistant, Content: "Hello"},
				{Role: RoleUser, Content: "What is bail?"},
			},
			params:    ChatParams{Model: "fallback-model"},
			wantModel: "fallback-model",
			serverResp: func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				_ = json.NewEncoder(w).Encode(chatResponse("Bail is release pending trial."))
			},
			wantReply: "Bail is release pending trial.",
		},
		{
			name:      "no choices returned",
			messages:  []Message{{Role: RoleUser, Content: "Hello"}},
			wantModel: "test-model",
			serverResp: func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				_ = json.NewEncoder(w).Encode(openai.ChatCompletionResponse{ID: "test-id"})
			},
			wantErr:   true,
			wantErrIs: ErrEmptyResponse,
		},
		{
			name:      "server error",
			messages:  []Message{{Role: RoleUser, Content: "Hello"}},
			wantModel: "test-model",
			serverResp: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
				_, _ = w.Write([]byte("internal server error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.Method != http.MethodPost {
					t.Errorf("expected POST, got %s", r.Method)
				}
				if r.URL.Path != "/v1/chat/completions" {
					t.Errorf("expected /v1/chat/completions, got %s", r.URL.Path)
				}
				if r.Header.Get("Authorization") != "Bearer test-key" {
					t.Errorf("unexpected Authorization header %q", r.Header.Get("Authorization"))
				}

				var req openai.ChatCompletionRequest
				if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
					t.Errorf("failed to decode request: %v", err)
				}
				if req.Model != tt.wantModel {
					t.Errorf("request model = %q, want %q", req.Model, tt.wantModel)
				}
				if len(req.Messages) != len(tt.messages) {
					t.Errorf("request has %d messages, want %d", len(req.Messages), len(tt.messages))
				}
				for i := range req.Messages {
					if i < len(tt.messages) && (req.Messages[i].Role != tt.messages[i].Role || req.Messages[i].Content != tt.messages[i].Content) {
						t.Errorf("message %d = %+v, want %+v", i, req.Messages[i], tt.messages[i])
					}
				}

				tt.serverResp(w, r)
			}))
			defer server.Close()

			client := NewClient(server.URL, "test-key", "test-model")
			reply, err := client.ChatWithMessages(context.Background(), tt.messages, tt.params)

			if tt.wantErr {
				if err == nil {
					t.Fatalf("ChatWithMessages() expected error, got nil")
				}
				if tt.wantErrIs != nil && !errors.Is(err, tt.wantErrIs) {
					t.Errorf("ChatWithMessages() error = %v, want %v", err, tt.wantErrIs)
				}
				return
			}
			if err != nil {
				t.Fatalf("ChatWithMessages() unexpected error: %v", err)
			}
			if reply != tt.wantReply {
				t.Errorf("ChatWithMessages() reply = %v, want %v", reply, tt.wantReply)
			}
		})
	}
}

func TestClient_ChatWithMessages_NoMessages(t *testing.T) {
	client := NewClient("http://127.0.0.1:0", "test-key", "test-model")
	if _, err := client.ChatWithMessages(context.Background(), nil, ChatParams{}); err == nil {
		t.Error("ChatWithMessages() expected error for empty message list")
	}
}

func TestClient_Chat(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req openai.ChatCompletionRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		if len(req.Messages) != 1 || req.Messages[0].Role != RoleUser || req.Messages[0].Content != "Hello" {
			t.Errorf("unexpected messages: %+v", req.Messages)
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(chatResponse("Hi there!"))
	}))
	defer server.Close()

	reply, err := NewClient(server.URL+"/", "test-key", "test-model").Chat(context.Background(), "Hello")
	if err != nil {
		t.Fatalf("Chat() unexpected error: %v", err)
	}
	if reply != "Hi there!" {
		t.Errorf("Chat() reply = %q, want %q", reply, "Hi there!")
	}
}

func TestClient_ContextCancellation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	client := NewClient(server.URL, "test-key", "test-model")
	if _, err := client.Chat(ctx, "Hello"); err == nil {
		t.Error("Chat() expected error on cancelled context")
	}
}
