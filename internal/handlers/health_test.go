package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/mock/gomock"

	storagemocks "bharatlaw-ai/internal/storage/mocks"
	vectorstoremocks "bharatlaw-ai/internal/vectorstore/mocks"
)

func TestHealthHandler_ServeHTTP(t *testing.T) {
	tests := []struct {
		name       string
		method     string
		setup      func(*vectorstoremocks.MockVectorStore, *storagemocks.MockSectionStore)
		wantStatus int
		wantBody   string
		wantIssues []string
	}{
		{
			name:   "healthy",
			method: http.MethodGet,
			setup: func(vs *vectorstoremocks.MockVectorStore, ss *storagemocks.MockSectionStore) {
				vs.EXPECT().CollectionExists(gomock.Any(), "legal_assistant").Return(true, nil)
				ss.EXPECT().Count(gomock.Any()).Return(511, nil)
			},
			wantStatus: http.StatusOK,
			wantBody:   "healthy",
		},
		{
			name:   "collection missing",
			method: http.MethodGet,
			setup: func(vs *vectorstoremocks.MockVectorStore, ss *storagemocks.MockSectionStore) {
				vs.EXPECT().CollectionExists(gomock.Any(), "legal_assistant").Return(false, nil)
				ss.EXPECT().Count(gomock.Any()).Return(0, nil)
			},
			wantStatus: http.StatusServiceUnavailable,
			wantBody:   "unhealthy",
			wantIssues: []string{"vector_store_unavailable"},
		},
		{
			name:   "both down",
			method: http.MethodGet,
			setup: func(vs *vectorstoremocks.MockVectorStore, ss *storagemocks.MockSectionStore) {
				vs.EXPECT().CollectionExists(gomock.Any(), "legal_assistant").Return(false, errors.New("dial tcp"))
				ss.EXPECT().Count(gomock.Any()).Return(0, errors.New("database is locked"))
			},
			wantStatus: http.StatusServiceUnavailable,
			wantBody:   "unhealthy",
			wantIssues: []string{"vector_store_unavailable", "section_store_unavailable"},
		},
		{
			name:       "method not allowed",
			method:     http.MethodPost,
			setup:      func(*vectorstoremocks.MockVectorStore, *storagemocks.MockSectionStore) {},
			wantStatus: http.StatusMethodNotAllowed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			vs := vectorstoremocks.NewMockVectorStore(ctrl)
			ss := storagemocks.NewMockSectionStore(ctrl)
			tt.setup(vs, ss)

			handler := NewHealthHandler(vs, ss, "legal_assistant")
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, httptest.NewRequest(tt.method, "/api/health", nil))

			if w.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", w.Code, tt.wantStatus)
			}
			if tt.wantBody == "" {
				return
			}

			var resp HealthResponse
			if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if resp.Status != tt.wantBody {
				t.Errorf("Status = %q, want %q", resp.Status, tt.wantBody)
			}
			if resp.Timestamp == "" {
				t.Error("Timestamp should be set")
			}
			if len(resp.Issues) != len(tt.wantIssues) {
				t.Fatalf("Issues = %v, want %v", resp.Issues, tt.wantIssues)
			}
			for i := range tt.wantIssues {
				if resp.Issues[i] != tt.wantIssues[i] {
					t.Errorf("Issues[%d] = %q, want %q", i, resp.Issues[i], tt.wantIssues[i])
				}
			}
		})
	}
}

func TestHealthHandler_ReportsSectionCount(t *testing.T) {
	ctrl := gomock.NewController(t)
	vs := vectorstoremocks.NewMockVectorStore(ctrl)
	ss := storagemocks.NewMockSectionStore(ctrl)
	vs.EXPECT().CollectionExists(gomock.Any(), gomock.Any()).Return(true, nil)
	ss.EXPECT().Count(gomock.Any()).Return(42, nil)

	w := httptest.NewRecorder()
	NewHealthHandler(vs, ss, "c").ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/health", nil))

	var resp HealthResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Sections == nil || *resp.Sections != 42 {
		t.Errorf("Sections = %v, want 42", resp.Sections)
	}
	if resp.Checks["vector_store"] != "ok" || resp.Checks["section_store"] != "ok" {
		t.Errorf("Checks = %v", resp.Checks)
	}
}

func TestStatus(t *testing.T) {
	w := httptest.NewRecorder()
	Status(w, httptest.NewRequest(http.MethodGet, "/", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var body map[string]string
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["status"] != StatusMessage {
		t.Errorf("status = %q", body["status"])
	}
}
