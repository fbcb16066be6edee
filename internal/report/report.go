// Package report assembles analysis reports and data exports from a
// finished slip-surface search. All functions read the SearchResult
// only; they never mutate it.
package report

import (
	"github.com/kohta/gotfs/internal/murayama"
)

// Analysis bundles the inputs and outcome of one stability run for
// report and export generation.
type Analysis struct {
	Mode        string // "rigorous" or "simplified"
	SampleLabel string // "x" for the offset sweep, "B" for the width sweep

	Geometry murayama.TunnelGeometry
	Soil     murayama.SoilParameters
	Loading  murayama.LoadingConditions
	Config   murayama.SearchConfig
	Result   *murayama.SearchResult
}

// pickIndices selects up to limit evenly spaced row indices so data
// tables stay readable; the last point is always included.
func pickIndices(n, limit int) []int {
	if n <= limit {
		idx := make([]int, n)
		for i := range idx {
			idx[i] = i
		}
		return idx
	}
	stride := n / limit
	if stride < 1 {
		stride = 1
	}
	var idx []int
	for i := 0; i < n; i += stride {
		idx = append(idx, i)
	}
	if idx[len(idx)-1] != n-1 {
		idx = append(idx, n-1)
	}
	return idx
}
