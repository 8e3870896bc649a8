package world

import (
	"sort"

	"wolfcast/internal/mathutil"
)

// TextureID identifies a wall texture. Zero is never stored in a GridMap;
// it marks open floor in layouts.
type TextureID int

// Cell is an integer grid coordinate.
type Cell struct {
	X, Y int
}

// CellAt returns the cell containing the continuous point (x, y).
func CellAt(x, y float64) Cell {
	return Cell{X: mathutil.FloorInt(x), Y: mathutil.FloorInt(y)}
}

// GridMap is the static occupancy grid: occupied cells map to a wall texture.
// It is immutable after construction and safe to share between readers.
type GridMap struct {
	cells  map[Cell]TextureID
	width  int
	height int
}

// NewGridMap builds a grid from rows of texture ids; 0 means open.
// rows[y][x] addresses the cell (x, y).
func NewGridMap(rows [][]TextureID) *GridMap {
	g := &GridMap{cells: make(map[Cell]TextureID)}
	for y, row := range rows {
		for x, id := range row {
			if id > 0 {
				g.cells[Cell{X: x, Y: y}] = id
			}
		}
		g.width = mathutil.IntMax(g.width, len(row))
	}
	g.height = len(rows)
	return g
}

// TextureAt returns the wall texture of a cell, if the cell is occupied.
func (g *GridMap) TextureAt(c Cell) (TextureID, bool) {
	id, ok := g.cells[c]
	return id, ok
}

// IsOpen reports whether a cell has no wall.
func (g *GridMap) IsOpen(c Cell) bool {
	_, occupied := g.cells[c]
	return !occupied
}

// IsOpenAt reports whether the cell containing (x, y) has no wall.
func (g *GridMap) IsOpenAt(x, y float64) bool {
	return g.IsOpen(CellAt(x, y))
}

// Width returns the number of columns in the layout.
func (g *GridMap) Width() int {
	return g.width
}

// Height returns the number of rows in the layout.
func (g *GridMap) Height() int {
	return g.height
}

// Len returns the number of occupied cells.
func (g *GridMap) Len() int {
	return len(g.cells)
}

// Cells returns all occupied cells ordered by row, then column.
func (g *GridMap) Cells() []Cell {
	cells := make([]Cell, 0, len(g.cells))
	for c := range g.cells {
		cells = append(cells, c)
	}
	sort.Slice(cells, func(i, j int) bool {
		if cells[i].Y != cells[j].Y {
			return cells[i].Y < cells[j].Y
		}
		return cells[i].X < cells[j].X
	})
	return cells
}

// TextureIDs returns the distinct texture ids used by the grid, ascending.
func (g *GridMap) TextureIDs() []TextureID {
	seen := make(map[TextureID]bool)
	var ids []TextureID
	for _, id := range g.cells {
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
