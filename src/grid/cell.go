package grid

//CellState is the state of a single cell, the zero value is Dead
type CellState uint8

const (
	Dead CellState = iota
	Alive
)

//IsAlive reports whether the state is Alive
func (s CellState) IsAlive() bool {
	return s == Alive
}

func (s CellState) String() string {
	if s == Alive {
		return "ALIVE"
	}
	return "DEAD"
}

//Cell is the atomic unit of the grid, it holds one CellState
type Cell struct {
	state CellState
}

//State returns the current cell state
func (c *Cell) State() CellState {
	return c.state
}

//SetState sets the cell state unconditionally
func (c *Cell) SetState(s CellState) {
	c.state = s
}
