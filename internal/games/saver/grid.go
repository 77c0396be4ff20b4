package saver

// Cell is one monitor on the grid.
type Cell struct {
	ID    int
	On    bool
	Token string // Spawn token while on, empty while off
}

// Grid is the fixed set of monitors. Cells are never added or removed.
type Grid struct {
	cells [GridSize]Cell
}

// NewGrid creates a grid with every monitor off.
func NewGrid() *Grid {
	g := &Grid{}
	for i := range g.cells {
		g.cells[i].ID = i
	}
	return g
}

// Cell returns the cell with the given id, or nil if the id is out of range.
func (g *Grid) Cell(id int) *Cell {
	if id < 0 || id >= len(g.cells) {
		return nil
	}
	return &g.cells[id]
}

// Inactive returns the ids of all cells that are off, in id order.
func (g *Grid) Inactive() []int {
	ids := make([]int, 0, len(g.cells))
	for _, c := range g.cells {
		if !c.On {
			ids = append(ids, c.ID)
		}
	}
	return ids
}

// ActiveCount returns the number of cells that are on.
func (g *Grid) ActiveCount() int {
	n := 0
	for _, c := range g.cells {
		if c.On {
			n++
		}
	}
	return n
}

// Reset switches every cell off.
func (g *Grid) Reset() {
	for i := range g.cells {
		g.cells[i].On = false
		g.cells[i].Token = ""
	}
}

// Cells returns a copy of all cells.
func (g *Grid) Cells() []Cell {
	out := make([]Cell, len(g.cells))
	copy(out, g.cells[:])
	return out
}

func (c *Cell) activate(token string) {
	c.On = true
	c.Token = token
}

func (c *Cell) deactivate() {
	c.On = false
	c.Token = ""
}
