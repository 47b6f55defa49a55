package storage

import (
	"encoding/binary"
	"fmt"
	"time"

	"github.com/alphamatrix/ledgrid/pkg/ledcolor"
)

// Session describes one capture run: the matrix geometry, the frame rate
// and the scene configuration it was rendered from.
type Session struct {
	ID        int64
	StartTime time.Time
	Name      string
	Width     int
	Height    int
	FrameRate int
	Config    *string
}

// Frame is one rendered frame of a session. Pixels are row-major with
// Width*Height entries; Width and Height repeat the session geometry so a
// frame is renderable on its own.
type Frame struct {
	Index       int
	TimestampMS int64
	Width       int
	Height      int
	Pixels      []ledcolor.RGBA
}

// EncodePixels packs a pixel slice into the frame BLOB format: four bytes
// per pixel, packed 0xAARRGGBB in big-endian order.
func EncodePixels(pix []ledcolor.RGBA) []byte {
	buf := make([]byte, len(pix)*4)
	for i, p := range pix {
		binary.BigEndian.PutUint32(buf[i*4:], p.Packed())
	}
	return buf
}

// DecodePixels unpacks a frame BLOB. The alpha byte is taken as stored, with
// no promotion of zero alpha, so transparent pixels survive the round trip.
func DecodePixels(data []byte) ([]ledcolor.RGBA, error) {
	if len(data)%4 != 0 {
		return nil, fmt.Errorf("pixel blob length %d is not a multiple of 4", len(data))
	}
	pix := make([]ledcolor.RGBA, len(data)/4)
	for i := range pix {
		v := binary.BigEndian.Uint32(data[i*4:])
		pix[i] = ledcolor.RGBA{
			A: uint8(v >> 24),
			R: uint8(v >> 16),
			G: uint8(v >> 8),
			B: uint8(v),
		}
	}
	return pix, nil
}
