// Command rpt generates budget reports from a spreadsheet and manages the
// four-section project status document that accompanies them.
//
// `rpt generate` writes an HTML or Markdown report into the reports directory;
// `rpt status` checks, shows, and scaffolds status documents; `rpt budget show`
// previews the spreadsheet in the terminal; `rpt history` lists past runs.
package main
