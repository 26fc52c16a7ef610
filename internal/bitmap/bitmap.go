/*
Package bitmap encodes finished turmite grids as uncompressed Windows BMP
files.

A file is a 14 byte file header and a 40 byte info header, followed for
8-bit output by a color table of 256 four byte entries (blue, green, red,
zero) and then the pixel rows. Rows start with grid row 0, which BMP
readers show at the bottom, and each row is padded with zeros to a
multiple of four bytes. 8-bit pixels hold the cell state itself; 24-bit
pixels hold the blue, green and red bytes of the state's palette color.
All header integers are little-endian.
*/
package bitmap

import (
	"encoding/binary"
	"math"
	"strconv"

	errgo "gopkg.in/errgo.v1"

	"turmites/internal/core"
	"turmites/internal/palette"
)

const (
	fileHeaderLen = 14
	infoHeaderLen = 40

	// HeaderLen is the size of the combined file and info headers.
	HeaderLen = fileHeaderLen + infoHeaderLen

	colorTableLen = palette.Entries * 4

	// 72 DPI.
	pixelsPerMeter = 2835

	// Ext is the file name extension of encoded patterns.
	Ext = ".bmp"
)

// Header holds the decoded header fields of an encoded file.
type Header struct {
	FileSize        uint32
	DataOffset      uint32
	Width           int32
	Height          int32
	Planes          uint16
	BitsPerPixel    uint16
	Compression     uint32
	ImageSize       uint32
	XPixelsPerMeter int32
	YPixelsPerMeter int32
	ColorsUsed      uint32
	ColorsImportant uint32
}

// Layout computes the header for a width×height image at the given depth.
func Layout(width, height int, depth palette.Depth) (Header, error) {
	if !depth.Valid() {
		return Header{}, errgo.Newf("unsupported color depth %d", depth)
	}
	if width <= 0 || height <= 0 {
		return Header{}, errgo.Newf("invalid image size %dx%d", width, height)
	}
	stride := rowStride(width, depth)
	offset := HeaderLen
	colors := 0
	if depth == palette.Depth8 {
		offset += colorTableLen
		colors = palette.Entries
	}
	imageSize := uint64(stride) * uint64(height)
	fileSize := uint64(offset) + imageSize
	if width > math.MaxInt32 || height > math.MaxInt32 || fileSize > math.MaxUint32 {
		return Header{}, errgo.Newf("image %dx%d too large for a bitmap", width, height)
	}
	return Header{
		FileSize:        uint32(fileSize),
		DataOffset:      uint32(offset),
		Width:           int32(width),
		Height:          int32(height),
		Planes:          1,
		BitsPerPixel:    uint16(depth),
		ImageSize:       uint32(imageSize),
		XPixelsPerMeter: pixelsPerMeter,
		YPixelsPerMeter: pixelsPerMeter,
		ColorsUsed:      uint32(colors),
	}, nil
}

// Stride returns the padded length of one pixel row in bytes.
func (h Header) Stride() int {
	return rowStride(int(h.Width), palette.Depth(h.BitsPerPixel))
}

func rowStride(width int, depth palette.Depth) int {
	return (width*int(depth) + 31) / 32 * 4
}

func (h Header) appendTo(b []byte) []byte {
	le := binary.LittleEndian
	b = append(b, 'B', 'M')
	b = le.AppendUint32(b, h.FileSize)
	b = le.AppendUint32(b, 0)
	b = le.AppendUint32(b, h.DataOffset)
	b = le.AppendUint32(b, infoHeaderLen)
	b = le.AppendUint32(b, uint32(h.Width))
	b = le.AppendUint32(b, uint32(h.Height))
	b = le.AppendUint16(b, h.Planes)
	b = le.AppendUint16(b, h.BitsPerPixel)
	b = le.AppendUint32(b, h.Compression)
	b = le.AppendUint32(b, h.ImageSize)
	b = le.AppendUint32(b, uint32(h.XPixelsPerMeter))
	b = le.AppendUint32(b, uint32(h.YPixelsPerMeter))
	b = le.AppendUint32(b, h.ColorsUsed)
	b = le.AppendUint32(b, h.ColorsImportant)
	return b
}

// ReadHeader decodes the headers at the start of data.
func ReadHeader(data []byte) (Header, error) {
	if len(data) < HeaderLen {
		return Header{}, errgo.Newf("short bitmap header: %d bytes", len(data))
	}
	if data[0] != 'B' || data[1] != 'M' {
		return Header{}, errgo.Newf("bad bitmap signature %q", data[:2])
	}
	le := binary.LittleEndian
	if n := le.Uint32(data[14:]); n != infoHeaderLen {
		return Header{}, errgo.Newf("unsupported info header size %d", n)
	}
	return Header{
		FileSize:        le.Uint32(data[2:]),
		DataOffset:      le.Uint32(data[10:]),
		Width:           int32(le.Uint32(data[18:])),
		Height:          int32(le.Uint32(data[22:])),
		Planes:          le.Uint16(data[26:]),
		BitsPerPixel:    le.Uint16(data[28:]),
		Compression:     le.Uint32(data[30:]),
		ImageSize:       le.Uint32(data[34:]),
		XPixelsPerMeter: int32(le.Uint32(data[38:])),
		YPixelsPerMeter: int32(le.Uint32(data[42:])),
		ColorsUsed:      le.Uint32(data[46:]),
		ColorsImportant: le.Uint32(data[50:]),
	}, nil
}

// Encode returns the bitmap file for grid rendered with p.
func Encode(grid *core.ByteGrid, p *palette.Palette) ([]byte, error) {
	return AppendEncode(nil, grid, p)
}

// AppendEncode appends the bitmap file for grid rendered with p to dst.
// Passing a reused buffer truncated to zero length avoids an allocation
// per pattern.
func AppendEncode(dst []byte, grid *core.ByteGrid, p *palette.Palette) ([]byte, error) {
	depth := p.Depth()
	h, err := Layout(grid.W, grid.H, depth)
	if err != nil {
		return dst, errgo.Mask(err)
	}
	if need := len(dst) + int(h.FileSize); cap(dst) < need {
		grown := make([]byte, len(dst), need)
		copy(grown, dst)
		dst = grown
	}
	dst = h.appendTo(dst)
	pad := h.Stride() - grid.W*depth.BytesPerPixel()

	if depth == palette.Depth8 {
		for i := 0; i < palette.Entries; i++ {
			b, g, r := p.Color(uint8(i))
			dst = append(dst, b, g, r, 0)
		}
		for y := 0; y < grid.H; y++ {
			dst = append(dst, grid.Row(y)...)
			dst = appendZeros(dst, pad)
		}
		return dst, nil
	}
	for y := 0; y < grid.H; y++ {
		for _, s := range grid.Row(y) {
			b, g, r := p.Color(s)
			dst = append(dst, b, g, r)
		}
		dst = appendZeros(dst, pad)
	}
	return dst, nil
}

func appendZeros(b []byte, n int) []byte {
	for ; n > 0; n-- {
		b = append(b, 0)
	}
	return b
}

// Name returns the file name for the pattern with the given identifier.
func Name(id uint64) string {
	return strconv.FormatUint(id, 10) + Ext
}
