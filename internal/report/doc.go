// Package report assembles budget reports and renders them as HTML or
// Markdown.
//
// Build turns a loaded budget table into an ordered list of sections. Every
// prose section can be replaced by a markdown file in the content directory
// (introduction.md, key_points.md, chart_description.md); missing files fall
// back to built-in text. A status document (status.md) is appended as the
// Project Status section when present.
//
// Generate is the end-to-end pipeline used by `rpt generate`: load, build,
// pick an output name under the reports directory lock, write atomically,
// and record the run in history.
package report
