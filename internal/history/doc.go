// Package history persists a log of generated reports in SQLite.
//
// Each entry records where a report was written, which budget file fed it,
// and the headline figures at generation time so `rpt history` can list past
// runs without re-reading the spreadsheet. The schema is versioned in
// schema.go; a mismatched database returns ErrSchemaMismatch and must be
// deleted to adopt the new layout.
package history
