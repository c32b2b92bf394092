package rag

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"testing"

	"go.uber.org/mock/gomock"

	"bharatlaw-ai/internal/intent"
	"bharatlaw-ai/internal/llm"
	ragmocks "bharatlaw-ai/internal/rag/mocks"
	"bharatlaw-ai/internal/vectorstore"
	vsmocks "bharatlaw-ai/internal/vectorstore/mocks"
)

func init() {
	slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

const testCollection = "legal_assistant"

var testConfig = EngineConfig{
	Threshold:      0.75,
	K:              5,
	AugmentedModel: "llama3",
	FallbackModel:  "llama3:8b-instruct-q4_K_M",
}

func point(id string, score float32, act, sectionNo, heading, text string, idx int64) vectorstore.SearchResult {
	return vectorstore.SearchResult{
		PointID: id,
		Score:   score,
		Meta: map[string]any{
			FieldDocument:   text,
			FieldAct:        act,
			FieldSectionNo:  sectionNo,
			FieldHeading:    heading,
			FieldChunkIndex: idx,
		},
	}
}

type engineMocks struct {
	embedder  *ragmocks.MockEmbedder
	store     *vsmocks.MockVectorStore
	generator *ragmocks.MockGenerator
}

func newTestEngine(t *testing.T) (*Engine, engineMocks) {
	t.Helper()
	ctrl := gomock.NewController(t)
	m := engineMocks{
		embedder:  ragmocks.NewMockEmbedder(ctrl),
		store:     vsmocks.NewMockVectorStore(ctrl),
		generator: ragmocks.NewMockGenerator(ctrl),
	}
	retriever := NewRetriever(m.embedder, m.store, testCollection)
	return NewEngine(retriever, m.generator, testConfig), m
}

func TestEngine_Query(t *testing.T) {
	queryVec := []float32{0.1, 0.2, 0.3}
	murder := "What is the punishment for murder?"

	tests := []struct {
		name       string
		query      Query
		mockSetup  func(m engineMocks)
		wantSource Source
		wantAnswer string
		wantErr    error
	}{
		{
			name:  "greeting answered without retrieval",
			query: Query{Question: "hello"},
			mockSetup: func(m engineMocks) {
				// no calls expected
			},
			wantSource: SourceIntentClassifier,
			wantAnswer: intent.QuickReply(intent.Greeting),
		},
		{
			name:       "thanks answered without retrieval",
			query:      Query{Question: "Thank you!"},
			mockSetup:  func(m engineMocks) {},
			wantSource: SourceIntentClassifier,
			wantAnswer: intent.QuickReply(intent.Thanks),
		},
		{
			name:  "empty retrieval falls back",
			query: Query{Question: murder},
			mockSetup: func(m engineMocks) {
				m.embedder.EXPECT().EmbedTexts(gomock.Any(), []string{murder}).Return([][]float32{queryVec}, nil)
				m.store.EXPECT().Search(gomock.Any(), testCollection, queryVec, 5, gomock.Nil()).Return([]vectorstore.SearchResult{}, nil)
				m.generator.EXPECT().
					ChatWithMessages(gomock.Any(), []llm.Message{{Role: llm.RoleUser, Content: FallbackPrompt(murder)}}, llm.ChatParams{Model: testConfig.FallbackModel}).
					Return("general answer", nil)
			},
			wantSource: SourceFallbackLLM,
			wantAnswer: "general answer",
		},
		{
			name:  "boundary distance uses retrieved sections",
			query: Query{Question: murder},
			mockSetup: func(m engineMocks) {
				results := []vectorstore.SearchResult{
					point("p1", 0.75, "IPC", "Section 302.", "Punishment for murder", "death or imprisonment for life", 0),
					point("p2", 0.10, "IPC", "Section 300.", "Murder", "culpable homicide is murder", 0),
				}
				matches, _ := toMatches(results)
				m.embedder.EXPECT().EmbedTexts(gomock.Any(), gomock.Any()).Return([][]float32{queryVec}, nil)
				m.store.EXPECT().Search(gomock.Any(), testCollection, queryVec, 5, gomock.Nil()).Return(results, nil)
				m.generator.EXPECT().
					ChatWithMessages(gomock.Any(), []llm.Message{{Role: llm.RoleUser, Content: AugmentedPrompt(murder, matches)}}, llm.ChatParams{Model: testConfig.AugmentedModel}).
					Return("grounded answer", nil)
			},
			wantSource: SourceVectorDB,
			wantAnswer: "grounded answer",
		},
		{
			name:  "distant nearest match falls back",
			query: Query{Question: murder},
			mockSetup: func(m engineMocks) {
				results := []vectorstore.SearchResult{point("p1", 0.70, "IPC", "Section 302.", "h", "t", 0)}
				m.embedder.EXPECT().EmbedTexts(gomock.Any(), gomock.Any()).Return([][]float32{queryVec}, nil)
				m.store.EXPECT().Search(gomock.Any(), testCollection, queryVec, 5, gomock.Nil()).Return(results, nil)
				m.generator.EXPECT().
					ChatWithMessages(gomock.Any(), gomock.Any(), llm.ChatParams{Model: testConfig.FallbackModel}).
					Return("general answer", nil)
			},
			wantSource: SourceFallbackLLM,
			wantAnswer: "general answer",
		},
		{
			name: "history precedes prompt and k override",
			query: Query{
				Question: murder,
				K:        3,
				History: []llm.Message{
					{Role: llm.RoleUser, Content: "What is IPC?"},
					{Role: llm.RoleAssistant, Content: "The Indian Penal Code."},
				},
			},
			mockSetup: func(m engineMocks) {
				m.embedder.EXPECT().EmbedTexts(gomock.Any(), gomock.Any()).Return([][]float32{queryVec}, nil)
				m.store.EXPECT().Search(gomock.Any(), testCollection, queryVec, 3, gomock.Nil()).Return(nil, nil)
				m.generator.EXPECT().
					ChatWithMessages(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, msgs []llm.Message, _ llm.ChatParams) (string, error) {
						if len(msgs) != 3 || msgs[0].Content != "What is IPC?" || msgs[2].Role != llm.RoleUser {
							t.Errorf("unexpected messages: %+v", msgs)
						}
						return "answer", nil
					})
			},
			wantSource: SourceFallbackLLM,
			wantAnswer: "answer",
		},
		{
			name:  "embedding failure propagates",
			query: Query{Question: murder},
			mockSetup: func(m engineMocks) {
				m.embedder.EXPECT().EmbedTexts(gomock.Any(), gomock.Any()).Return(nil, errEmbed)
			},
			wantErr: errEmbed,
		},
		{
			name:  "search failure propagates",
			query: Query{Question: murder},
			mockSetup: func(m engineMocks) {
				m.embedder.EXPECT().EmbedTexts(gomock.Any(), gomock.Any()).Return([][]float32{queryVec}, nil)
				m.store.EXPECT().Search(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, errSearch)
			},
			wantErr: errSearch,
		},
		{
			name:  "generation failure propagates",
			query: Query{Question: murder},
			mockSetup: func(m engineMocks) {
				m.embedder.EXPECT().EmbedTexts(gomock.Any(), gomock.Any()).Return([][]float32{queryVec}, nil)
				m.store.EXPECT().Search(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)
				m.generator.EXPECT().ChatWithMessages(gomock.Any(), gomock.Any(), gomock.Any()).Return("", errGenerate)
			},
			wantErr: errGenerate,
		},
		{
			name:  "malformed payload fails fast",
			query: Query{Question: murder},
			mockSetup: func(m engineMocks) {
				bad := vectorstore.SearchResult{PointID: "p1", Score: 0.9, Meta: map[string]any{FieldAct: "IPC"}}
				m.embedder.EXPECT().EmbedTexts(gomock.Any(), gomock.Any()).Return([][]float32{queryVec}, nil)
				m.store.EXPECT().Search(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return([]vectorstore.SearchResult{bad}, nil)
			},
			wantErr: ErrMalformedMatch,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine, m := newTestEngine(t)
			tt.mockSetup(m)

			got, err := engine.Query(context.Background(), tt.query)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Query() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Query() unexpected error: %v", err)
			}
			if got.Source != tt.wantSource {
				t.Errorf("Query() source = %q, want %q", got.Source, tt.wantSource)
			}
			if got.Answer != tt.wantAnswer {
				t.Errorf("Query() answer = %q, want %q", got.Answer, tt.wantAnswer)
			}
		})
	}
}

var (
	errEmbed    = errors.New("embedding service unavailable")
	errSearch   = errors.New("qdrant unavailable")
	errGenerate = errors.New("ollama unavailable")
)

func TestEngine_LookupSection(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		mockSetup func(m engineMocks)
		wantKeys  []string
	}{
		{
			name: "matches regardless of spacing and case",
			text: "what does SECTION   302 say",
			mockSetup: func(m engineMocks) {
				m.store.EXPECT().
					Get(gomock.Any(), testCollection, map[string]any{FieldSectionNo: "Section 302."}, maxLookupPoints).
					Return([]vectorstore.SearchResult{
						point("b", 0, "IPC", "Section 302.", "Punishment for murder", "second half", 1),
						point("a", 0, "IPC", "Section 302.", "Punishment for murder", "first half", 0),
						point("c", 0, "CrPC", "Section 302.", "Permission to conduct prosecution", "text", 0),
					}, nil)
			},
			wantKeys: []string{"CrPC/0", "IPC/0", "IPC/1"},
		},
		{
			name:      "no section reference",
			text:      "punishment for theft",
			mockSetup: func(m engineMocks) {},
			wantKeys:  []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine, m := newTestEngine(t)
			tt.mockSetup(m)

			got, err := engine.LookupSection(context.Background(), tt.text)
			if err != nil {
				t.Fatalf("LookupSection() error = %v", err)
			}
			keys := make([]string, len(got))
			for i, match := range got {
				keys[i] = match.Act + "/" + strconv.Itoa(match.ChunkIndex)
				if match.SectionNo != "Section 302." {
					t.Errorf("unexpected section %q", match.SectionNo)
				}
			}
			if strings.Join(keys, ",") != strings.Join(tt.wantKeys, ",") {
				t.Errorf("LookupSection() = %v, want %v", keys, tt.wantKeys)
			}
		})
	}
}

func TestEngine_LookupSection_StoreError(t *testing.T) {
	engine, m := newTestEngine(t)
	m.store.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, errSearch)

	if _, err := engine.LookupSection(context.Background(), "Section 420"); !errors.Is(err, errSearch) {
		t.Errorf("LookupSection() error = %v, want %v", err, errSearch)
	}
}

func TestEngine_Search(t *testing.T) {
	engine, m := newTestEngine(t)
	vec := []float32{1, 0}

	m.embedder.EXPECT().EmbedTexts(gomock.Any(), []string{"cheating"}).Return([][]float32{vec}, nil)
	m.store.EXPECT().Search(gomock.Any(), testCollection, vec, 5, gomock.Nil()).Return([]vectorstore.SearchResult{
		point("p", 0.9, "IPC", "Section 420.", "Cheating", "Whoever cheats", 0),
	}, nil)

	got, err := engine.Search(context.Background(), "cheating", 0)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(got) != 1 || got[0].SectionNo != "Section 420." {
		t.Fatalf("Search() = %+v", got)
	}
	if d := got[0].Distance; d < 0.099 || d > 0.101 {
		t.Errorf("Search() distance = %v, want ~0.1", d)
	}
}
