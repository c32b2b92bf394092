package storage

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_section_store.go -package=mocks bharatlaw-ai/internal/storage SectionStore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"bharatlaw-ai/internal/statute"
)

// ErrNotFound is returned when a record is not found.
var ErrNotFound = errors.New("record not found")

// SectionStore defines the interface for section storage operations.
type SectionStore interface {
	// Insert stores a section unless one with the same (act, section_no) exists.
	// inserted reports whether a new row was written.
	Insert(ctx context.Context, s statute.Section) (inserted bool, err error)
	// FindByNumber returns the first section whose normalised number matches.
	// An empty act searches every act. Returns ErrNotFound if nothing matches.
	FindByNumber(ctx context.Context, act, number string) (*SectionRecord, error)
	// ListByAct returns an act's sections in insertion order.
	ListByAct(ctx context.Context, act string) ([]SectionRecord, error)
	// ListActs returns every act with its section count, ordered by act.
	ListActs(ctx context.Context) ([]ActSummary, error)
	// Count returns the number of stored sections.
	Count(ctx context.Context) (int, error)
}

// SectionRepo provides methods for section operations.
// It implements the SectionStore interface.
type SectionRepo struct {
	db *sql.DB
}

// NewSectionRepo creates a new SectionRepo.
func NewSectionRepo(db *sql.DB) *SectionRepo {
	return &SectionRepo{db: db}
}

const sectionColumns = "id, act, section_no, number, heading, part, text, created_at"

func (r *SectionRepo) Insert(ctx context.Context, s statute.Section) (bool, error) {
	act := s.Act
	if act == "" {
		act = statute.UnknownAct
	}
	res, err := r.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO sections (act, section_no, number, heading, part, text)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		act, s.SectionNo, statute.NormalizeNumber(s.SectionNo), s.Heading, s.Part, s.Text,
	)
	if err != nil {
		return false, fmt.Errorf("failed to insert section: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read affected rows: %w", err)
	}
	return n > 0, nil
}

func (r *SectionRepo) FindByNumber(ctx context.Context, act, number string) (*SectionRecord, error) {
	normalized := statute.NormalizeNumber(number)
	if normalized == "" {
		return nil, ErrNotFound
	}

	query := "SELECT " + sectionColumns + " FROM sections WHERE number = ?"
	args := []any{normalized}
	if act != "" {
		query += " AND act = ?"
		args = append(args, act)
	}
	query += " ORDER BY id LIMIT 1"

	rec, err := scanSection(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query section: %w", err)
	}
	return rec, nil
}

func (r *SectionRepo) ListByAct(ctx context.Context, act string) ([]SectionRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+sectionColumns+" FROM sections WHERE act = ? ORDER BY id",
		act,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query sections: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	records := []SectionRecord{}
	for rows.Next() {
		rec, err := scanSection(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan section: %w", err)
		}
		records = append(records, *rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return records, nil
}

func (r *SectionRepo) ListActs(ctx context.Context) ([]ActSummary, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT act, COUNT(*) FROM sections GROUP BY act ORDER BY act",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query acts: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	acts := []ActSummary{}
	for rows.Next() {
		var a ActSummary
		if err := rows.Scan(&a.Act, &a.Sections); err != nil {
			return nil, fmt.Errorf("failed to scan act: %w", err)
		}
		acts = append(acts, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return acts, nil
}

func (r *SectionRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM sections").Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count sections: %w", err)
	}
	return n, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSection(row rowScanner) (*SectionRecord, error) {
	var rec SectionRecord
	err := row.Scan(&rec.ID, &rec.Act, &rec.SectionNo, &rec.Number, &rec.Heading, &rec.Part, &rec.Text, &rec.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// Section converts the row back to the ingestion record.
func (rec SectionRecord) Section() statute.Section {
	return statute.Section{
		SectionNo: rec.SectionNo,
		Heading:   rec.Heading,
		Part:      rec.Part,
		Text:      rec.Text,
		Act:       rec.Act,
	}
}
