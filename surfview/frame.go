package surfview

import (
	"encoding/binary"
	"fmt"

	"github.com/soypat/surfgrid/render"
)

// Frame wire format: a single binary websocket message holding one field
// snapshot. All values little endian.
//
//	offset 0   uint32  magic "SGF1"
//	offset 4   uint32  step counter
//	offset 8   uint32  xSize
//	offset 12  uint32  ySize
//	offset 16  uint16×(xSize*ySize)  field values as binary16, row-major
const (
	frameMagic      = 0x31464753 // "SGF1"
	frameHeaderSize = 16
)

// EncodeFrame serializes one snapshot of f into a fresh buffer.
func EncodeFrame(step uint32, f render.HeightField) []byte {
	xs, ys := f.XSize(), f.YSize()
	buf := make([]byte, frameHeaderSize+2*xs*ys)
	binary.LittleEndian.PutUint32(buf[0:], frameMagic)
	binary.LittleEndian.PutUint32(buf[4:], step)
	binary.LittleEndian.PutUint32(buf[8:], uint32(xs))
	binary.LittleEndian.PutUint32(buf[12:], uint32(ys))
	off := frameHeaderSize
	for y := 0; y < ys; y++ {
		for x := 0; x < xs; x++ {
			binary.LittleEndian.PutUint16(buf[off:], halfFromFloat32(f.At(x, y)))
			off += 2
		}
	}
	return buf
}

// DecodeFrame parses a frame message back into row-major float32 values.
func DecodeFrame(msg []byte) (step uint32, xSize, ySize int, values []float32, err error) {
	if len(msg) < frameHeaderSize {
		return 0, 0, 0, nil, fmt.Errorf("frame too short: %d bytes", len(msg))
	}
	if binary.LittleEndian.Uint32(msg[0:]) != frameMagic {
		return 0, 0, 0, nil, fmt.Errorf("bad frame magic %#x", binary.LittleEndian.Uint32(msg[0:]))
	}
	step = binary.LittleEndian.Uint32(msg[4:])
	xSize = int(binary.LittleEndian.Uint32(msg[8:]))
	ySize = int(binary.LittleEndian.Uint32(msg[12:]))
	want := frameHeaderSize + 2*xSize*ySize
	if xSize < 0 || ySize < 0 || len(msg) != want {
		return 0, 0, 0, nil, fmt.Errorf("frame payload size %d does not match %dx%d field", len(msg)-frameHeaderSize, xSize, ySize)
	}
	values = make([]float32, xSize*ySize)
	for i := range values {
		values[i] = halfToFloat32(binary.LittleEndian.Uint16(msg[frameHeaderSize+2*i:]))
	}
	return step, xSize, ySize, values, nil
}
