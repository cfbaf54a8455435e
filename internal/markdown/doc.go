// Package markdown splits the small markdown subset rpt reads into blocks.
//
// Content files hold paragraphs separated by blank lines and unordered lists
// marked with "- " or "* ". Headings are recognised so callers can section a
// document, but no inline formatting is interpreted.
package markdown
