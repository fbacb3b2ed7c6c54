// Package flex provides constant, per-row, per-column and per-element access
// over a logical (time-steps x columns) grid without requiring the backing
// slice to actually have that shape. With rotation enabled, out-of-range
// indices wrap via modulo against the backing extent, so a simulation can
// iterate a larger logical grid against data supplied only once.
package flex

import "fmt"

type Mode int

const (
	// ModeConstant reads the same scalar for every (row, col).
	ModeConstant Mode = iota
	// ModePerRow indexes the backing slice by time step.
	ModePerRow
	// ModePerColumn indexes the backing slice by column.
	ModePerColumn
	// ModePerElement indexes a row-major (Rows x Cols) backing slice.
	ModePerElement
)

func (m Mode) String() string {
	switch m {
	case ModeConstant:
		return "constant"
	case ModePerRow:
		return "per_row"
	case ModePerColumn:
		return "per_column"
	case ModePerElement:
		return "per_element"
	default:
		return fmt.Sprintf("unknown(%d)", int(m))
	}
}

// Float64 is a flexible view over a float64 backing slice. The mode is chosen
// once per input, never inferred at access time.
type Float64 struct {
	Mode   Mode
	Data   []float64
	Rows   int
	Cols   int
	Rotate bool
}

// Constant returns a 0-D view that yields v everywhere.
func Constant(v float64) Float64 {
	return Float64{Mode: ModeConstant, Data: []float64{v}}
}

// PerRow returns a 1-D view indexed by time step.
func PerRow(data []float64) Float64 {
	return Float64{Mode: ModePerRow, Data: data, Rows: len(data)}
}

// PerColumn returns a 1-D view indexed by column.
func PerColumn(data []float64) Float64 {
	return Float64{Mode: ModePerColumn, Data: data, Cols: len(data)}
}

// PerElement returns a 2-D view over a row-major (rows x cols) slice.
func PerElement(data []float64, rows, cols int) Float64 {
	return Float64{Mode: ModePerElement, Data: data, Rows: rows, Cols: cols}
}

// Rotated returns a copy of the view with index rotation enabled.
func (a Float64) Rotated() Float64 {
	a.Rotate = true
	return a
}

// Validate checks that the backing slice matches the declared extents and
// that a non-rotating view covers the logical grid.
func (a Float64) Validate(rows, cols int) error {
	switch a.Mode {
	case ModeConstant:
		if len(a.Data) != 1 {
			return fmt.Errorf("constant view must have exactly one element, got %d", len(a.Data))
		}
	case ModePerRow:
		if len(a.Data) != a.Rows {
			return fmt.Errorf("per-row view declares %d rows but holds %d elements", a.Rows, len(a.Data))
		}
		if a.Rotate && a.Rows == 0 {
			return fmt.Errorf("cannot rotate an empty per-row view")
		}
		if !a.Rotate && a.Rows < rows {
			return fmt.Errorf("per-row view holds %d rows, need %d (enable rotation to wrap)", a.Rows, rows)
		}
	case ModePerColumn:
		if len(a.Data) != a.Cols {
			return fmt.Errorf("per-column view declares %d cols but holds %d elements", a.Cols, len(a.Data))
		}
		if a.Rotate && a.Cols == 0 {
			return fmt.Errorf("cannot rotate an empty per-column view")
		}
		if !a.Rotate && a.Cols < cols {
			return fmt.Errorf("per-column view holds %d cols, need %d (enable rotation to wrap)", a.Cols, cols)
		}
	case ModePerElement:
		if len(a.Data) != a.Rows*a.Cols {
			return fmt.Errorf("per-element view declares %dx%d but holds %d elements", a.Rows, a.Cols, len(a.Data))
		}
		if a.Rotate && (a.Rows == 0 || a.Cols == 0) {
			return fmt.Errorf("cannot rotate an empty per-element view")
		}
		if !a.Rotate && (a.Rows < rows || a.Cols < cols) {
			return fmt.Errorf("per-element view is %dx%d, need %dx%d (enable rotation to wrap)", a.Rows, a.Cols, rows, cols)
		}
	default:
		return fmt.Errorf("invalid flex mode: %d", int(a.Mode))
	}
	return nil
}

// At reads the logical element at (row, col).
func (a Float64) At(row, col int) float64 {
	switch a.Mode {
	case ModeConstant:
		return a.Data[0]
	case ModePerRow:
		if a.Rotate {
			row %= a.Rows
		}
		return a.Data[row]
	case ModePerColumn:
		if a.Rotate {
			col %= a.Cols
		}
		return a.Data[col]
	default:
		if a.Rotate {
			row %= a.Rows
			col %= a.Cols
		}
		return a.Data[row*a.Cols+col]
	}
}
