// Package statusdoc parses and checks project status reports.
//
// A status report is a markdown file with four top-level sections: Summary,
// Deliverables Progress, Challenges, and Next Period Activities. Each section
// carries free text as paragraphs and bullet lists. The package splits a file
// into those sections, reports structural problems (missing, duplicate,
// unexpected, misordered, or empty sections, and lists without items), and
// renders the canonical layout back out for display or scaffolding.
package statusdoc
