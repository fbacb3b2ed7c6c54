package simulation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGroupSpecValidate(t *testing.T) {
	t.Run("empty spec is valid", func(t *testing.T) {
		assert.NoError(t, GroupSpec{}.Validate(3))
	})

	t.Run("lengths must sum to the column count", func(t *testing.T) {
		assert.NoError(t, Monolithic(2, 1).Validate(3))
		assert.Error(t, Monolithic(2, 2).Validate(3))
	})

	t.Run("rejects non-positive lengths", func(t *testing.T) {
		assert.Error(t, Monolithic(3, 0).Validate(3))
		assert.Error(t, Monolithic(-1, 4).Validate(3))
	})

	t.Run("a column map must be a permutation", func(t *testing.T) {
		assert.NoError(t, Scattered([]int{2, 0, 1}, []int{2, 1}).Validate(3))
		assert.Error(t, Scattered([]int{0, 0, 1}, []int{2, 1}).Validate(3))
		assert.Error(t, Scattered([]int{0, 1, 5}, []int{2, 1}).Validate(3))
		assert.Error(t, Scattered([]int{0, 1}, []int{2, 1}).Validate(3))
	})

	t.Run("a column map without lengths is invalid", func(t *testing.T) {
		assert.Error(t, GroupSpec{ColIdxs: []int{0, 1}}.Validate(2))
	})
}

func TestGroupSpecResolve(t *testing.T) {
	t.Run("empty spec puts each column in its own group", func(t *testing.T) {
		groups := GroupSpec{}.Resolve(3)
		assert.Equal(t, [][]int{{0}, {1}, {2}}, groups)
		assert.Equal(t, 3, GroupSpec{}.NumGroups(3))
	})

	t.Run("monolithic groups are contiguous ranges", func(t *testing.T) {
		groups := Monolithic(2, 1).Resolve(3)
		assert.Equal(t, [][]int{{0, 1}, {2}}, groups)
		assert.Equal(t, 2, Monolithic(2, 1).NumGroups(3))
	})

	t.Run("scattered groups follow the column map", func(t *testing.T) {
		groups := Scattered([]int{2, 0, 1, 3}, []int{2, 2}).Resolve(4)
		assert.Equal(t, [][]int{{2, 0}, {1, 3}}, groups)
	})
}
