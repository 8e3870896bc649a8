package world

import "testing"

func TestGridMapLookup(t *testing.T) {
	g := NewGridMap([][]TextureID{
		{1, 1, 1},
		{1, 0, 2},
		{1, 1, 1},
	})

	testCases := []struct {
		cell     Cell
		wantID   TextureID
		wantOpen bool
	}{
		{Cell{0, 0}, 1, false},
		{Cell{2, 1}, 2, false},
		{Cell{1, 1}, 0, true},
		{Cell{5, 5}, 0, true},  // outside the layout is open
		{Cell{-1, 0}, 0, true}, // negative coordinates are never stored
	}

	for _, tc := range testCases {
		id, ok := g.TextureAt(tc.cell)
		if ok == tc.wantOpen {
			t.Errorf("TextureAt(%v) presence = %v, want %v", tc.cell, ok, !tc.wantOpen)
		}
		if id != tc.wantID {
			t.Errorf("TextureAt(%v) = %d, want %d", tc.cell, id, tc.wantID)
		}
		if g.IsOpen(tc.cell) != tc.wantOpen {
			t.Errorf("IsOpen(%v) = %v, want %v", tc.cell, g.IsOpen(tc.cell), tc.wantOpen)
		}
	}

	if g.Len() != 8 {
		t.Errorf("expected 8 occupied cells, got %d", g.Len())
	}
	if g.Width() != 3 || g.Height() != 3 {
		t.Errorf("expected 3x3, got %dx%d", g.Width(), g.Height())
	}
}

func TestCellAtFloorsNegativeCoordinates(t *testing.T) {
	if c := CellAt(-0.25, 1.75); c != (Cell{X: -1, Y: 1}) {
		t.Errorf("expected (-1, 1), got %v", c)
	}
	if c := CellAt(2.0, 3.999); c != (Cell{X: 2, Y: 3}) {
		t.Errorf("expected (2, 3), got %v", c)
	}
}

func TestGridMapCellsOrdered(t *testing.T) {
	g := NewGridMap([][]TextureID{
		{0, 3},
		{4, 0},
	})
	cells := g.Cells()
	if len(cells) != 2 || cells[0] != (Cell{1, 0}) || cells[1] != (Cell{0, 1}) {
		t.Errorf("unexpected cell order %v", cells)
	}
}
