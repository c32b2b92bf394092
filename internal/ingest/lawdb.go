package ingest

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	"bharatlaw-ai/internal/contextutil"
	"bharatlaw-ai/internal/statute"
)

// ActTable maps a law database table to the act it holds.
type ActTable struct {
	Table string `yaml:"table"`
	Act   string `yaml:"act"`
}

// DefaultActTables lists the tables of the bundled law database in processing order.
var DefaultActTables = []ActTable{
	{Table: "ipc", Act: "Indian Penal Code, 1860"},
	{Table: "crpc", Act: "Code of Criminal Procedure, 1973"},
	{Table: "cpc", Act: "Civil Procedure Code, 1908"},
	{Table: "hma", Act: "Hindu Marriage Act, 1955"},
	{Table: "ida", Act: "Indian Divorce Act, 1869"},
	{Table: "iea", Act: "Indian Evidence Act, 1872"},
	{Table: "nia", Act: "Negotiable Instruments Act, 1881"},
	{Table: "mva", Act: "Motor Vehicles Act, 1988"},
}

var tableName = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

type actTablesFile struct {
	Tables []ActTable `yaml:"tables"`
}

// LoadActTables reads a YAML table mapping:
//
//	tables:
//	  - table: ipc
//	    act: Indian Penal Code, 1860
func LoadActTables(path string) ([]ActTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read act tables: %w", err)
	}
	var file actTablesFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse act tables: %w", err)
	}
	if len(file.Tables) == 0 {
		return nil, fmt.Errorf("act tables file %s lists no tables", path)
	}
	for _, t := range file.Tables {
		if !tableName.MatchString(t.Table) {
			return nil, fmt.Errorf("invalid table name %q", t.Table)
		}
		if strings.TrimSpace(t.Act) == "" {
			return nil, fmt.Errorf("table %q has no act title", t.Table)
		}
	}
	return file.Tables, nil
}

// ParseLawDB reads each table's rows as (section, heading, text, ...). Rows with
// empty text are skipped. A table that cannot be read is logged and skipped.
func ParseLawDB(ctx context.Context, db *sql.DB, tables []ActTable, sink Sink) (*Report, error) {
	logger := contextutil.LoggerFromContext(ctx)
	report := &Report{}

	for _, t := range tables {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		report.Sources++

		sections, err := readActTable(ctx, db, t)
		if err != nil {
			report.Failed++
			logger.WarnContext(ctx, "failed to parse table", "table", t.Table, "act", t.Act, "error", err)
			continue
		}
		if err := report.emit(sink, sections); err != nil {
			return report, err
		}
		logger.InfoContext(ctx, "parsed table", "table", t.Table, "act", t.Act, "sections", len(sections))
	}
	return report, nil
}

func readActTable(ctx context.Context, db *sql.DB, t ActTable) ([]statute.Section, error) {
	if !tableName.MatchString(t.Table) {
		return nil, fmt.Errorf("invalid table name %q", t.Table)
	}

	rows, err := db.QueryContext(ctx, "SELECT * FROM "+t.Table)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = rows.Close()
	}()

	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}
	if len(cols) < 3 {
		return nil, fmt.Errorf("table has %d columns, need at least 3", len(cols))
	}

	var sections []statute.Section
	values := make([]any, len(cols))
	ptrs := make([]any, len(cols))
	for i := range values {
		ptrs[i] = &values[i]
	}
	for rows.Next() {
		if err := rows.Scan(ptrs...); err != nil {
			return nil, err
		}
		text := cellString(values[2])
		if text == "" {
			continue
		}
		sections = append(sections, statute.Section{
			SectionNo: "Section " + cellString(values[0]) + ".",
			Heading:   cellString(values[1]),
			Text:      text,
			Part:      "PART FROM " + t.Act,
			Act:       t.Act,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return sections, nil
}

func cellString(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case []byte:
		return strings.TrimSpace(string(x))
	default:
		return strings.TrimSpace(fmt.Sprint(x))
	}
}
