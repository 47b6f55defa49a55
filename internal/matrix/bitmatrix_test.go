package matrix

import "testing"

func TestBitMatrix_SetGet(t *testing.T) {
	b := NewBitMatrix(10, 4)
	if b.Width() != 10 || b.Height() != 4 {
		t.Fatalf("Expected 10x4 matrix, got %dx%d", b.Width(), b.Height())
	}

	b.Set(3, 2, true)
	if !b.Get(3, 2) {
		t.Error("Expected bit (3,2) set")
	}
	// Neighbors in the same packed byte stay clear.
	for _, pos := range [][2]int{{2, 2}, {4, 2}, {3, 1}, {3, 3}} {
		if b.Get(pos[0], pos[1]) {
			t.Errorf("Expected bit %v clear", pos)
		}
	}

	b.Set(3, 2, false)
	if b.Get(3, 2) {
		t.Error("Expected bit (3,2) cleared again")
	}
}

func TestBitMatrix_OutOfBounds(t *testing.T) {
	b := NewBitMatrix(3, 3)
	b.Set(-1, 0, true)
	b.Set(0, 5, true)
	for y := 0; y < 3; y++ {
		if n := b.CountRow(y); n != 0 {
			t.Errorf("Expected out-of-bounds writes dropped, row %d has %d bits", y, n)
		}
	}

	if b.Get(-1, 0) || b.Get(3, 0) || b.Get(0, 3) {
		t.Error("Expected out-of-bounds reads to return false by default")
	}

	b.OutOfBoundsValue = true
	if !b.Get(-1, 0) || !b.Get(3, 0) || !b.Get(0, 3) {
		t.Error("Expected out-of-bounds reads to return OutOfBoundsValue")
	}
	if b.Get(1, 1) {
		t.Error("Expected in-bounds reads unaffected by OutOfBoundsValue")
	}
}

func TestBitMatrix_FillAndCountRow(t *testing.T) {
	b := NewBitMatrix(5, 3)
	b.Fill(true)
	for y := 0; y < 3; y++ {
		if n := b.CountRow(y); n != 5 {
			t.Errorf("Expected 5 bits in row %d after fill, got %d", y, n)
		}
	}

	b.Fill(false)
	for y := 0; y < 3; y++ {
		if n := b.CountRow(y); n != 0 {
			t.Errorf("Expected empty row %d after fill(false), got %d", y, n)
		}
	}

	b.Set(0, 1, true)
	b.Set(4, 1, true)
	if n := b.CountRow(1); n != 2 {
		t.Errorf("Expected 2 bits in row 1, got %d", n)
	}
	if n := b.CountRow(-1); n != 0 {
		t.Errorf("Expected 0 for out-of-bounds row, got %d", n)
	}
}

func TestBitMatrix_Clear(t *testing.T) {
	b := NewBitMatrix(4, 4)
	b.Fill(true)
	b.Clear()
	for y := 0; y < 4; y++ {
		if n := b.CountRow(y); n != 0 {
			t.Errorf("Expected cleared row %d, got %d bits", y, n)
		}
	}
}

func TestBitMatrix_ShiftDown(t *testing.T) {
	b := NewBitMatrix(4, 4)
	b.Set(0, 0, true)
	b.Set(1, 1, true)
	b.Set(2, 3, true) // bottom row, falls off

	b.ShiftDown(1)

	wantSet := [][2]int{{0, 1}, {1, 2}}
	for _, pos := range wantSet {
		if !b.Get(pos[0], pos[1]) {
			t.Errorf("Expected bit %v set after shift", pos)
		}
	}
	total := 0
	for y := 0; y < 4; y++ {
		total += b.CountRow(y)
	}
	if total != 2 {
		t.Errorf("Expected 2 bits after shift, got %d", total)
	}
	if n := b.CountRow(0); n != 0 {
		t.Errorf("Expected cleared top row, got %d bits", n)
	}
}

func TestBitMatrix_ShiftDown_MultipleRows(t *testing.T) {
	b := NewBitMatrix(3, 5)
	b.Set(1, 0, true)
	b.Set(2, 2, true)

	b.ShiftDown(2)

	if !b.Get(1, 2) || !b.Get(2, 4) {
		t.Error("Expected bits to move down two rows")
	}
	if b.CountRow(0) != 0 || b.CountRow(1) != 0 {
		t.Error("Expected the two entering rows to be clear")
	}
}

func TestBitMatrix_ShiftDown_Edge(t *testing.T) {
	b := NewBitMatrix(3, 3)
	b.Fill(true)

	b.ShiftDown(0)
	if n := b.CountRow(0); n != 3 {
		t.Errorf("Expected shift by zero to be a no-op, top row has %d bits", n)
	}

	b.ShiftDown(3)
	for y := 0; y < 3; y++ {
		if n := b.CountRow(y); n != 0 {
			t.Errorf("Expected full-height shift to clear row %d, got %d bits", y, n)
		}
	}
}
