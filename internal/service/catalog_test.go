package service_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"bharatlaw-ai/internal/service"
)

func TestCatalogService_Records(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cleaned_acts.jsonl")
	content := `{"section_no":"Section 1.","heading":"Short title","part":"","text":"This Act may be called","act":"Indian Penal Code, 1860"}

{not json
{"section_no":"Section 2.","heading":"Punishment","part":"","text":"Every person","act":"Indian Penal Code, 1860","extra":[1,2]}
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	records, err := service.NewCatalogService(path).Records(context.Background())
	if err != nil {
		t.Fatalf("Records() error = %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("Records() returned %d records, want 2", len(records))
	}
	wantSecond := `{"section_no":"Section 2.","heading":"Punishment","part":"","text":"Every person","act":"Indian Penal Code, 1860","extra":[1,2]}`
	if string(records[1]) != wantSecond {
		t.Errorf("Records()[1] = %s, want the line verbatim", records[1])
	}
}

func TestCatalogService_MissingFile(t *testing.T) {
	_, err := service.NewCatalogService(filepath.Join(t.TempDir(), "absent.jsonl")).Records(context.Background())
	if !errors.Is(err, service.ErrNotFound) {
		t.Errorf("Records() error = %v, want ErrNotFound", err)
	}
}
