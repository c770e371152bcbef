package packet

import "fmt"

// Grid is a dense rows x cols table. Rows are strands, columns are byte
// offsets within a strand.
type Grid[T any] struct {
	rows, cols int
	cells      []T
}

// Matrix holds strand bytes.
type Matrix = Grid[byte]

// Mask holds one erasure flag per strand byte.
type Mask = Grid[bool]

func NewGrid[T any](rows, cols int) *Grid[T] {
	if rows < 0 || cols < 0 {
		panic(fmt.Sprintf("packet: negative grid shape %dx%d", rows, cols))
	}
	return &Grid[T]{rows: rows, cols: cols, cells: make([]T, rows*cols)}
}

// NewMask returns a mask with every flag set, i.e. everything erased.
func NewMask(rows, cols int) *Mask {
	m := NewGrid[bool](rows, cols)
	for i := range m.cells {
		m.cells[i] = true
	}
	return m
}

func (g *Grid[T]) Rows() int { return g.rows }
func (g *Grid[T]) Cols() int { return g.cols }

func (g *Grid[T]) index(r, c int) int {
	if r < 0 || r >= g.rows || c < 0 || c >= g.cols {
		panic(fmt.Sprintf("packet: index (%d,%d) outside %dx%d grid", r, c, g.rows, g.cols))
	}
	return r*g.cols + c
}

func (g *Grid[T]) At(r, c int) T     { return g.cells[g.index(r, c)] }
func (g *Grid[T]) Set(r, c int, v T) { g.cells[g.index(r, c)] = v }

// Row returns row r as a slice sharing storage with the grid.
func (g *Grid[T]) Row(r int) []T {
	if r < 0 || r >= g.rows {
		panic(fmt.Sprintf("packet: row %d outside %d rows", r, g.rows))
	}
	return g.cells[r*g.cols : (r+1)*g.cols : (r+1)*g.cols]
}

func (g *Grid[T]) Clone() *Grid[T] {
	out := &Grid[T]{rows: g.rows, cols: g.cols, cells: make([]T, len(g.cells))}
	copy(out.cells, g.cells)
	return out
}

// SameShape reports whether g and o have identical dimensions.
func (g *Grid[T]) SameShape(rows, cols int) bool {
	return g.rows == rows && g.cols == cols
}
