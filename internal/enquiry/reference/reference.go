// Package reference allocates enquiry references. References look like
// MEM-25-0001: a fixed prefix, the two-digit year, and a per-year sequence
// starting at 1. Once handed out a reference is never reissued, even across
// deletes; gaps are acceptable, duplicates are not.
package reference

import "fmt"

// DefaultPrefix is the standard reference prefix.
const DefaultPrefix = "MEM"

// Format renders a reference for the given year and sequence number.
func Format(prefix string, year, n int) string {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return fmt.Sprintf("%s-%02d-%04d", prefix, year%100, n)
}

// YearSuffix renders the two-digit partition key for a year.
func YearSuffix(year int) string {
	return fmt.Sprintf("%02d", year%100)
}
