// Package grid implements Conway's Game of Life on a fixed-size discrete torus.
//
// Every coordinate wraps modulo the grid dimensions, so any (row, col) pair of
// integers addresses exactly one cell. A generation step reads the current
// generation only and commits the next one as a whole.
//
// A Grid has no internal synchronization. Callers sharing a Grid between
// goroutines must serialize Advance, Clear and Randomize themselves.
package grid

import (
	"errors"
	"fmt"
	"iter"
)

var (
	//ErrInvalidDimension is returned by New for non-positive rows or columns
	ErrInvalidDimension = errors.New("grid: invalid dimension")
	//ErrNilSource is returned by Randomize when no BitSource is supplied
	ErrNilSource = errors.New("grid: nil random source")
)

//neighborOffsets lists the Moore neighbourhood as (dr, dc) pairs in row-major order
var neighborOffsets = [8][2]int{
	{-1, -1}, {-1, 0}, {-1, 1},
	{0, -1}, {0, 1},
	{1, -1}, {1, 0}, {1, 1},
}

//Grid is a rows x columns torus of cells
type Grid struct {
	rows    int
	columns int
	cells   [][]Cell
	next    []CellState //next generation buffer, reused by Advance
}

//New allocates a grid with all cells Dead
func New(rows, columns int) (*Grid, error) {
	if rows <= 0 || columns <= 0 {
		return nil, fmt.Errorf("%w: %d rows x %d columns", ErrInvalidDimension, rows, columns)
	}
	g := &Grid{
		rows:    rows,
		columns: columns,
		cells:   make([][]Cell, rows),
		next:    make([]CellState, rows*columns),
	}
	//one backing array, every row is a capped window into it
	b := make([]Cell, rows*columns)
	for i := range g.cells {
		start := columns * i
		g.cells[i] = b[start : start+columns : start+columns]
	}
	return g, nil
}

//Wrap maps index into [0, size) using a non-negative modulo
//size must be positive
func Wrap(index, size int) int {
	m := index % size
	if m < 0 {
		m += size
	}
	return m
}

//NumberOfRows returns the number of rows
func (g *Grid) NumberOfRows() int {
	return g.rows
}

//NumberOfColumns returns the number of columns
func (g *Grid) NumberOfColumns() int {
	return g.columns
}

//Cell returns the cell at the wrapped coordinate, it accepts any integers
func (g *Grid) Cell(row, col int) *Cell {
	return &g.cells[Wrap(row, g.rows)][Wrap(col, g.columns)]
}

//Neighbors returns the eight wrapped neighbours of (row, col).
//On grids smaller than 3 in a dimension the same cell can appear more than once.
func (g *Grid) Neighbors(row, col int) [8]*Cell {
	var n [8]*Cell
	for i, o := range neighborOffsets {
		n[i] = g.Cell(row+o[0], col+o[1])
	}
	return n
}

//CountAliveNeighbors returns how many of the eight neighbour lookups are Alive
func (g *Grid) CountAliveNeighbors(row, col int) int {
	alive := 0
	for _, c := range g.Neighbors(row, col) {
		if c.State().IsAlive() {
			alive++
		}
	}
	return alive
}

//NextState applies the B3/S23 rule to a cell state and its alive neighbour count
func NextState(current CellState, aliveNeighbors int) CellState {
	switch {
	case aliveNeighbors == 3:
		return Alive
	case aliveNeighbors == 2 && current == Alive:
		return Alive
	default:
		return Dead
	}
}

//NextState computes the next state of (row, col) from the current generation
func (g *Grid) NextState(row, col int) CellState {
	return NextState(g.Cell(row, col).State(), g.CountAliveNeighbors(row, col))
}

//Advance moves the grid to the next generation.
//All next states are computed into the buffer first and only then written back,
//so no cell sees a neighbour of the new generation.
//It returns the population of the new generation and whether any cell changed.
func (g *Grid) Advance() (alive int, changed bool) {
	for r := range g.cells {
		for c := range g.cells[r] {
			g.next[r*g.columns+c] = g.NextState(r, c)
		}
	}
	for r := range g.cells {
		for c := range g.cells[r] {
			s := g.next[r*g.columns+c]
			if s.IsAlive() {
				alive++
			}
			changed = changed || s != g.cells[r][c].state
			g.cells[r][c].state = s
		}
	}
	return
}

//Clear sets every cell Dead
func (g *Grid) Clear() {
	for r := range g.cells {
		for c := range g.cells[r] {
			g.cells[r][c].state = Dead
		}
	}
}

//Randomize draws one decision per cell in row-major order, true means Alive.
//A nil source leaves the grid untouched.
func (g *Grid) Randomize(src BitSource) error {
	if src == nil {
		return ErrNilSource
	}
	for r := range g.cells {
		for c := range g.cells[r] {
			if src.Bool() {
				g.cells[r][c].state = Alive
			} else {
				g.cells[r][c].state = Dead
			}
		}
	}
	return nil
}

//Population counts the Alive cells
func (g *Grid) Population() int {
	n := 0
	for c := range g.All() {
		if c.State().IsAlive() {
			n++
		}
	}
	return n
}

//All iterates over every cell in row-major order.
//The sequence can be ranged over any number of times.
func (g *Grid) All() iter.Seq[*Cell] {
	return func(yield func(*Cell) bool) {
		for r := range g.cells {
			for c := range g.cells[r] {
				if !yield(&g.cells[r][c]) {
					return
				}
			}
		}
	}
}

//Rows iterates over the rows, each yielded slice is a read view into the grid
//and must not be retained after the next mutation
func (g *Grid) Rows() iter.Seq2[int, []Cell] {
	return func(yield func(int, []Cell) bool) {
		for r := range g.cells {
			if !yield(r, g.cells[r]) {
				return
			}
		}
	}
}
