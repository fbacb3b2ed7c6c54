// Package simulation ties the execution pipeline to a grid of time steps and
// asset columns, optionally sharing capital across groups of columns.
package simulation

import "fmt"

// GroupSpec partitions columns into capital-sharing groups. A monolithic
// spec describes contiguous column ranges through Lens alone; a scattered
// spec adds ColIdxs, a column-index permutation consumed group by group.
// An empty spec puts every column in its own group.
type GroupSpec struct {
	Lens    []int
	ColIdxs []int
}

// Monolithic groups contiguous column ranges of the given lengths.
func Monolithic(lens ...int) GroupSpec {
	return GroupSpec{Lens: lens}
}

// Scattered groups arbitrary columns: colIdxs is a permutation of all
// column indices, consumed in runs of the given lengths.
func Scattered(colIdxs []int, lens []int) GroupSpec {
	return GroupSpec{Lens: lens, ColIdxs: colIdxs}
}

func (g GroupSpec) Validate(numCols int) error {
	if len(g.Lens) == 0 {
		if len(g.ColIdxs) != 0 {
			return fmt.Errorf("group map requires group lengths")
		}
		return nil
	}
	sum := 0
	for i, l := range g.Lens {
		if l <= 0 {
			return fmt.Errorf("group %d has non-positive length %d", i, l)
		}
		sum += l
	}
	if sum != numCols {
		return fmt.Errorf("group lengths sum to %d, want %d columns", sum, numCols)
	}
	if g.ColIdxs != nil {
		if len(g.ColIdxs) != numCols {
			return fmt.Errorf("group map has %d column indices, want %d", len(g.ColIdxs), numCols)
		}
		seen := make([]bool, numCols)
		for _, c := range g.ColIdxs {
			if c < 0 || c >= numCols {
				return fmt.Errorf("group map column index %d out of range", c)
			}
			if seen[c] {
				return fmt.Errorf("group map column index %d repeated", c)
			}
			seen[c] = true
		}
	}
	return nil
}

// NumGroups returns the number of groups the spec yields for numCols columns.
func (g GroupSpec) NumGroups(numCols int) int {
	if len(g.Lens) == 0 {
		return numCols
	}
	return len(g.Lens)
}

// Resolve returns the column indices owned by each group.
func (g GroupSpec) Resolve(numCols int) [][]int {
	if len(g.Lens) == 0 {
		groups := make([][]int, numCols)
		for c := 0; c < numCols; c++ {
			groups[c] = []int{c}
		}
		return groups
	}
	groups := make([][]int, len(g.Lens))
	offset := 0
	for gi, l := range g.Lens {
		cols := make([]int, l)
		for k := 0; k < l; k++ {
			if g.ColIdxs != nil {
				cols[k] = g.ColIdxs[offset+k]
			} else {
				cols[k] = offset + k
			}
		}
		groups[gi] = cols
		offset += l
	}
	return groups
}
