// Package mmarket reads sparse matrices in Matrix Market coordinate format
// and renders their sparsity patterns.
//
// Only the coordinate (triplet) layout is handled: an optional run of
// %-prefixed comment lines, a size line "rows columns entries", then one
// entry per line as "row column" or "row column value" with 1-based
// indices. Pattern files omit the value column.
package mmarket
