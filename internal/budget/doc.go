// Package budget loads budget spreadsheets and derives the figures reports
// quote: totals, utilization rates, and the tasks with the highest and lowest
// utilization.
//
// Tables come from .xlsx workbooks (via excelize) or .csv exports. The first
// row is the header; cells that read as numbers, including "$1,200" or
// accounting-style "(300)", are numeric. Analysis needs Task, Budgeted, and
// Remaining columns and degrades to totals of zero when they are absent. A
// row whose task equals the totals label is kept in the table but excluded
// from sums, rankings, and chart series.
package budget
