// Package tracefile reads and writes integer grids as comma-separated text.
//
// Each image row is one line of exactly width values separated by ','. The
// loader is strict: a row with too few or too many values, a missing or
// foreign separator, or a row count other than the expected height is a
// *FormatError. The package also names dump files (PathGenerator) and
// implements the filter's trace sink (FileTracer).
package tracefile
