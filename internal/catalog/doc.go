// Package catalog parses the SuiteSparse Matrix Collection index.
//
// The index (ssstats.csv) is a CSV snapshot of the whole collection: the
// first line carries the declared matrix count, the second line the snapshot
// date, and every following line one 13-field record describing a single
// matrix. Parsing is row-driven; the declared count is preserved verbatim
// and a mismatch with the number of parsed records is not an error.
//
// # Usage
//
//	f, err := os.Open("ssstats.csv")
//	// ...
//	col, err := catalog.Parse(f)
//	for _, m := range col.Matrices {
//	    // m.ID is 1-based in file order, m.Group/m.Name identify the matrix
//	}
package catalog
