package flex

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAccessModes(t *testing.T) {
	t.Run("constant", func(t *testing.T) {
		a := Constant(2.5)
		assert.Equal(t, 2.5, a.At(0, 0))
		assert.Equal(t, 2.5, a.At(9, 3))
	})

	t.Run("per row", func(t *testing.T) {
		a := PerRow([]float64{1, 2, 3})
		assert.Equal(t, 1.0, a.At(0, 5))
		assert.Equal(t, 3.0, a.At(2, 0))
	})

	t.Run("per column", func(t *testing.T) {
		a := PerColumn([]float64{10, 20})
		assert.Equal(t, 10.0, a.At(7, 0))
		assert.Equal(t, 20.0, a.At(0, 1))
	})

	t.Run("per element", func(t *testing.T) {
		a := PerElement([]float64{1, 2, 3, 4}, 2, 2)
		assert.Equal(t, 1.0, a.At(0, 0))
		assert.Equal(t, 2.0, a.At(0, 1))
		assert.Equal(t, 3.0, a.At(1, 0))
		assert.Equal(t, 4.0, a.At(1, 1))
	})
}

// fullBroadcast materializes the tiled grid a rotating view avoids building.
func fullBroadcast(data []float64, rows, cols, targetRows, targetCols int) [][]float64 {
	out := make([][]float64, targetRows)
	for i := range out {
		out[i] = make([]float64, targetCols)
		for j := range out[i] {
			out[i][j] = data[(i%rows)*cols+(j%cols)]
		}
	}
	return out
}

func TestRotationEquivalence(t *testing.T) {
	t.Run("per element view equals the full broadcast", func(t *testing.T) {
		data := []float64{1, 2, 3, 4, 5, 6}
		a := PerElement(data, 2, 3).Rotated()
		want := fullBroadcast(data, 2, 3, 6, 9)

		for i := 0; i < 6; i++ {
			for j := 0; j < 9; j++ {
				assert.Equal(t, want[i][j], a.At(i, j), "mismatch at (%d, %d)", i, j)
			}
		}
	})

	t.Run("per column view wraps the column index", func(t *testing.T) {
		a := PerColumn([]float64{10, 20, 30}).Rotated()

		assert.Equal(t, 10.0, a.At(0, 3))
		assert.Equal(t, 20.0, a.At(0, 4))
		assert.Equal(t, 30.0, a.At(5, 8))
	})

	t.Run("per row view wraps the row index", func(t *testing.T) {
		a := PerRow([]float64{1, 2}).Rotated()

		assert.Equal(t, 1.0, a.At(2, 0))
		assert.Equal(t, 2.0, a.At(5, 0))
	})
}

func TestValidate(t *testing.T) {
	t.Run("accepts views covering the grid", func(t *testing.T) {
		assert.NoError(t, Constant(1).Validate(10, 4))
		assert.NoError(t, PerRow(make([]float64, 10)).Validate(10, 4))
		assert.NoError(t, PerColumn(make([]float64, 4)).Validate(10, 4))
		assert.NoError(t, PerElement(make([]float64, 40), 10, 4).Validate(10, 4))
	})

	t.Run("rejects a non-rotating view smaller than the grid", func(t *testing.T) {
		assert.Error(t, PerRow(make([]float64, 5)).Validate(10, 4))
		assert.Error(t, PerColumn(make([]float64, 2)).Validate(10, 4))
		assert.Error(t, PerElement(make([]float64, 4), 2, 2).Validate(10, 4))
	})

	t.Run("accepts a rotating view smaller than the grid", func(t *testing.T) {
		assert.NoError(t, PerRow(make([]float64, 5)).Rotated().Validate(10, 4))
		assert.NoError(t, PerElement(make([]float64, 4), 2, 2).Rotated().Validate(10, 4))
	})

	t.Run("rejects empty rotated views", func(t *testing.T) {
		assert.Error(t, PerRow([]float64{}).Rotated().Validate(3, 1))
		assert.Error(t, PerColumn([]float64{}).Rotated().Validate(3, 1))
		assert.Error(t, PerElement(nil, 0, 2).Rotated().Validate(3, 2))
	})

	t.Run("rejects mismatched backing extents", func(t *testing.T) {
		a := Float64{Mode: ModePerElement, Data: make([]float64, 5), Rows: 2, Cols: 3}
		assert.Error(t, a.Validate(2, 3))
	})
}
