package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// timeLayout is fixed width so generated_at sorts lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

const entryColumns = `id, output_path, format, input_path, sheet, generated_at,
    row_count, total_budgeted, total_remaining, utilization, size_bytes, status_included`

// Record inserts entry, assigning an id and timestamp when they are unset.
func (s *Store) Record(ctx context.Context, entry Entry) (*Entry, error) {
	if strings.TrimSpace(entry.OutputPath) == "" {
		return nil, errors.New("record report: output path is required")
	}
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.GeneratedAt.IsZero() {
		entry.GeneratedAt = time.Now()
	}
	entry.GeneratedAt = entry.GeneratedAt.UTC()

	_, err := s.execWithRetry(
		ctx,
		`INSERT INTO reports (`+entryColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		entry.ID,
		entry.OutputPath,
		entry.Format,
		entry.InputPath,
		nullableString(entry.Sheet),
		entry.GeneratedAt.Format(timeLayout),
		entry.RowCount,
		entry.TotalBudgeted,
		entry.TotalRemaining,
		entry.Utilization,
		entry.SizeBytes,
		boolToInt(entry.StatusIncluded),
	)
	if err != nil {
		return nil, fmt.Errorf("insert report: %w", err)
	}
	return &entry, nil
}

// Get fetches one entry. An id prefix is accepted when it matches exactly one entry.
func (s *Store) Get(ctx context.Context, id string) (*Entry, error) {
	ctx = ensureContext(ctx)
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, ErrNotFound
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+entryColumns+` FROM reports WHERE id = ? OR id LIKE ? ESCAPE '\' ORDER BY (id = ?) DESC LIMIT 2`,
		id, escapeLike(id)+"%", id,
	)
	if err != nil {
		return nil, fmt.Errorf("get report: %w", err)
	}
	entries, err := scanEntries(rows)
	if err != nil {
		return nil, fmt.Errorf("get report: %w", err)
	}
	switch {
	case len(entries) == 0:
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	case entries[0].ID == id || len(entries) == 1:
		return &entries[0], nil
	default:
		return nil, fmt.Errorf("id prefix %q matches more than one report", id)
	}
}

// List returns the newest entries first. A limit of zero or less returns all.
func (s *Store) List(ctx context.Context, limit int) ([]Entry, error) {
	ctx = ensureContext(ctx)
	query := `SELECT ` + entryColumns + ` FROM reports ORDER BY generated_at DESC, id`
	var args []any
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list reports: %w", err)
	}
	entries, err := scanEntries(rows)
	if err != nil {
		return nil, fmt.Errorf("list reports: %w", err)
	}
	return entries, nil
}

// Prune removes entries generated before cutoff and returns how many were deleted.
// Report files on disk are left alone.
func (s *Store) Prune(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := s.execWithRetry(ctx,
		`DELETE FROM reports WHERE generated_at < ?`,
		cutoff.UTC().Format(timeLayout),
	)
	if err != nil {
		return 0, fmt.Errorf("prune reports: %w", err)
	}
	removed, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}
	return removed, nil
}

func scanEntries(rows *sql.Rows) ([]Entry, error) {
	defer rows.Close()
	var entries []Entry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, *entry)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}

func scanEntry(scanner interface{ Scan(dest ...any) error }) (*Entry, error) {
	var (
		entry          Entry
		sheet          sql.NullString
		generatedRaw   string
		statusIncluded int
	)
	if err := scanner.Scan(
		&entry.ID,
		&entry.OutputPath,
		&entry.Format,
		&entry.InputPath,
		&sheet,
		&generatedRaw,
		&entry.RowCount,
		&entry.TotalBudgeted,
		&entry.TotalRemaining,
		&entry.Utilization,
		&entry.SizeBytes,
		&statusIncluded,
	); err != nil {
		return nil, err
	}
	if sheet.Valid {
		entry.Sheet = sheet.String
	}
	generated, err := time.Parse(time.RFC3339Nano, generatedRaw)
	if err != nil {
		return nil, fmt.Errorf("parse generated_at %q: %w", generatedRaw, err)
	}
	entry.GeneratedAt = generated
	entry.StatusIncluded = statusIncluded != 0
	return &entry, nil
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}

func boolToInt(value bool) int {
	if value {
		return 1
	}
	return 0
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(value string) string {
	return likeEscaper.Replace(value)
}
