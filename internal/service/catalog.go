package service

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_catalog_service.go -package=mocks -mock_names=CatalogService=MockCatalogService bharatlaw-ai/internal/service CatalogService

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"os"

	"bharatlaw-ai/internal/contextutil"
)

// CatalogService serves the ingested acts file to the frontend.
type CatalogService interface {
	// Records returns every JSONL record of the acts file as-is, in file order.
	Records(ctx context.Context) ([]json.RawMessage, error)
}

type catalogService struct {
	path string
}

// NewCatalogService creates a CatalogService over the JSONL file at path.
func NewCatalogService(path string) CatalogService {
	return &catalogService{path: path}
}

func (s *catalogService) Records(ctx context.Context) ([]json.RawMessage, error) {
	logger := contextutil.LoggerFromContext(ctx)

	f, err := os.Open(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		logger.WarnContext(ctx, "acts file missing", "path", s.path)
		return nil, WrapError(ErrNotFound, "acts file")
	}
	if err != nil {
		return nil, WrapError(err, "failed to open acts file")
	}
	defer func() {
		_ = f.Close()
	}()

	records := []json.RawMessage{}
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		if !json.Valid(line) {
			logger.WarnContext(ctx, "skipping malformed acts line", "line", lineNo)
			continue
		}
		records = append(records, json.RawMessage(append([]byte(nil), line...)))
	}
	if err := scanner.Err(); err != nil {
		return nil, WrapError(err, "failed to read acts file")
	}
	return records, nil
}
