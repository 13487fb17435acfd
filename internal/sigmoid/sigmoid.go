// Package sigmoid provides the saturating response curve used by the
// antibody capacity laws.
package sigmoid

// Basic computes the rectangular hyperbola x/(x+threshold).
//
// It returns 0 for x <= 0 and approaches 1 as x grows, crossing 0.5
// exactly at x == threshold. With threshold > 0 the result stays in
// [0, 1), which keeps capacity growth increments bounded.
func Basic(threshold, x float64) float64 {
	if x <= 0 {
		return 0
	}
	return x / (x + threshold)
}
