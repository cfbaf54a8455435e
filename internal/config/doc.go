// Package config loads, normalizes, and validates rpt configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// RPT_REPORTS_DIR. The Config type centralizes every knob the CLI needs so
// the reports directory, content overrides, budget column names, and chart
// styling are discovered in one pass.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical formats, and clear validation errors.
package config
