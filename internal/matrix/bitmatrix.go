package matrix

// BitMatrix is a width×height bitset packed eight cells per byte, used by
// effects that track per-pixel occupancy. It follows the same clipping
// policy as Matrix, except that out-of-bounds reads return OutOfBoundsValue:
// constructing it with OutOfBoundsValue true gives the matrix implicit walls
// and a floor, which is what collision checks against the edges rely on.
type BitMatrix struct {
	// OutOfBoundsValue is returned by Get for out-of-bounds coordinates.
	OutOfBoundsValue bool

	width  int
	height int
	bits   []uint8
}

// NewBitMatrix creates a cleared bit matrix of the given dimensions.
// Negative dimensions are treated as zero.
func NewBitMatrix(width, height int) *BitMatrix {
	width = max(width, 0)
	height = max(height, 0)
	return &BitMatrix{
		width:  width,
		height: height,
		bits:   make([]uint8, (width*height+7)/8),
	}
}

// Width returns the matrix width in cells.
func (b *BitMatrix) Width() int { return b.width }

// Height returns the matrix height in cells.
func (b *BitMatrix) Height() int { return b.height }

func (b *BitMatrix) inside(x, y int) bool {
	return x >= 0 && x < b.width && y >= 0 && y < b.height
}

// Get returns the bit at (x, y), or OutOfBoundsValue when outside the matrix.
func (b *BitMatrix) Get(x, y int) bool {
	if !b.inside(x, y) {
		return b.OutOfBoundsValue
	}
	k := y*b.width + x
	return b.bits[k/8]&(1<<(k%8)) != 0
}

// Set stores the bit at (x, y). Out-of-bounds writes are dropped.
func (b *BitMatrix) Set(x, y int, v bool) {
	if !b.inside(x, y) {
		return
	}
	k := y*b.width + x
	if v {
		b.bits[k/8] |= 1 << (k % 8)
	} else {
		b.bits[k/8] &^= 1 << (k % 8)
	}
}

// Fill sets every bit in the matrix to v.
func (b *BitMatrix) Fill(v bool) {
	if !v {
		clear(b.bits)
		return
	}
	for i := range b.bits {
		b.bits[i] = 0xFF
	}
}

// Clear resets every bit to zero.
func (b *BitMatrix) Clear() {
	clear(b.bits)
}

// CountRow returns the number of set bits in row y, zero when out of bounds.
func (b *BitMatrix) CountRow(y int) int {
	if y < 0 || y >= b.height {
		return 0
	}
	n := 0
	for x := 0; x < b.width; x++ {
		if b.Get(x, y) {
			n++
		}
	}
	return n
}

// ShiftDown moves the contents down by n rows: the bottom n rows fall off
// and n cleared rows enter at the top. Shifting by the full height or more
// clears the matrix.
func (b *BitMatrix) ShiftDown(n int) {
	if n <= 0 {
		return
	}
	if n >= b.height {
		b.Clear()
		return
	}
	for y := b.height - 1; y >= n; y-- {
		for x := 0; x < b.width; x++ {
			b.Set(x, y, b.Get(x, y-n))
		}
	}
	for y := 0; y < n; y++ {
		for x := 0; x < b.width; x++ {
			b.Set(x, y, false)
		}
	}
}
