package service

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_section_finder.go -package=mocks bharatlaw-ai/internal/service SectionFinder
//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_section_service.go -package=mocks -mock_names=SectionService=MockSectionService bharatlaw-ai/internal/service SectionService

import (
	"context"
	"errors"
	"strings"

	"bharatlaw-ai/internal/contextutil"
	"bharatlaw-ai/internal/rag"
	"bharatlaw-ai/internal/storage"
)

const (
	// DefaultSimilarK is the number of results for a similarity search without k.
	DefaultSimilarK = 3
	// MaxSimilarK caps a similarity search.
	MaxSimilarK = 20
	// AllActs in the act filter means no filter.
	AllActs = "All Acts"
)

// SectionFinder queries the vector index directly.
type SectionFinder interface {
	// LookupSection returns every chunk of the section referenced in text.
	LookupSection(ctx context.Context, text string) ([]rag.Match, error)
	// Search returns the k chunks nearest to text.
	Search(ctx context.Context, text string, k int) ([]rag.Match, error)
}

// SectionService looks up statute sections.
type SectionService interface {
	// Lookup finds the indexed chunks of a "Section N" reference. No reference yields no matches.
	Lookup(ctx context.Context, query string) ([]rag.Match, error)
	// Similar runs a raw similarity search. k of zero uses DefaultSimilarK.
	Similar(ctx context.Context, query string, k int) ([]rag.Match, error)
	// Explore returns one section when section is set, otherwise every section of act.
	Explore(ctx context.Context, act, section string) ([]storage.SectionRecord, error)
	// Acts lists the stored acts with their section counts.
	Acts(ctx context.Context) ([]storage.ActSummary, error)
}

type sectionService struct {
	finder SectionFinder
	store  storage.SectionStore
}

// NewSectionService creates a new SectionService.
func NewSectionService(finder SectionFinder, store storage.SectionStore) SectionService {
	return &sectionService{finder: finder, store: store}
}

func (s *sectionService) Lookup(ctx context.Context, query string) ([]rag.Match, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, &ValidationError{Field: "q", Message: "cannot be empty"}
	}

	matches, err := s.finder.LookupSection(ctx, query)
	if err != nil {
		contextutil.LoggerFromContext(ctx).ErrorContext(ctx, "section lookup failed", "error", err)
		return nil, WrapExternal(err, "failed to look up section")
	}
	return matches, nil
}

func (s *sectionService) Similar(ctx context.Context, query string, k int) ([]rag.Match, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, &ValidationError{Field: "q", Message: "cannot be empty"}
	}
	if k == 0 {
		k = DefaultSimilarK
	}
	if k < 1 || k > MaxSimilarK {
		return nil, &ValidationError{Field: "k", Message: "must be between 1 and 20"}
	}

	matches, err := s.finder.Search(ctx, query, k)
	if err != nil {
		contextutil.LoggerFromContext(ctx).ErrorContext(ctx, "similarity search failed", "error", err)
		return nil, WrapExternal(err, "failed to search sections")
	}
	return matches, nil
}

func (s *sectionService) Explore(ctx context.Context, act, section string) ([]storage.SectionRecord, error) {
	act = strings.TrimSpace(act)
	if act == AllActs {
		act = ""
	}
	section = strings.TrimSpace(section)

	if section == "" {
		if act == "" {
			return nil, &ValidationError{Field: "section", Message: "required when no act is given"}
		}
		records, err := s.store.ListByAct(ctx, act)
		if err != nil {
			return nil, WrapError(err, "failed to list sections")
		}
		if len(records) == 0 {
			return nil, WrapError(ErrNotFound, "act "+act)
		}
		return records, nil
	}

	rec, err := s.store.FindByNumber(ctx, act, section)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, WrapError(ErrNotFound, "section "+section)
	}
	if err != nil {
		return nil, WrapError(err, "failed to find section")
	}
	return []storage.SectionRecord{*rec}, nil
}

func (s *sectionService) Acts(ctx context.Context) ([]storage.ActSummary, error) {
	acts, err := s.store.ListActs(ctx)
	if err != nil {
		return nil, WrapError(err, "failed to list acts")
	}
	return acts, nil
}
