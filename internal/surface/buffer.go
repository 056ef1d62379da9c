// Package surface provides the mutable pixel-buffer view the rasterizer,
// tile compositor, and frame buffer share, mirroring the original's
// BufferMutRef/BufferRef split between a renderer-owned canvas and the
// caller-owned output buffer.
package surface

import "github.com/Speedy37/egui-software-backend/internal/blend"

// Buffer is a row-major premultiplied RGBA pixel grid.
type Buffer struct {
	Data   []blend.Pixel
	Width  int32
	Height int32
}

// NewBuffer allocates a zeroed buffer of the given size.
func NewBuffer(width, height int32) *Buffer {
	return &Buffer{Data: make([]blend.Pixel, int(width)*int(height)), Width: width, Height: height}
}

// Resize reallocates the buffer if its dimensions differ from w,h, clearing
// its contents. Returns true if a reallocation happened.
func (b *Buffer) Resize(width, height int32) bool {
	if b.Width == width && b.Height == height {
		return false
	}
	b.Width, b.Height = width, height
	b.Data = make([]blend.Pixel, int(width)*int(height))
	return true
}

// Row returns the pixel slice for row y.
func (b *Buffer) Row(y int32) []blend.Pixel {
	start := int(y) * int(b.Width)
	return b.Data[start : start+int(b.Width)]
}

// Clear fills the entire buffer with transparent black.
func (b *Buffer) Clear() {
	for i := range b.Data {
		b.Data[i] = blend.Pixel{}
	}
}

// ClearRect fills [minX,maxX) x [minY,maxY) with transparent black.
func (b *Buffer) ClearRect(minX, minY, maxX, maxY int32) {
	for y := minY; y < maxY; y++ {
		row := b.Row(y)
		for x := minX; x < maxX; x++ {
			row[x] = blend.Pixel{}
		}
	}
}

// CopyRect copies src's [minX,maxX)x[minY,maxY) region into the same
// coordinates of b, overwriting b's pixels there (no blending). Used to
// copy a persistent canvas into the caller's output buffer.
func (b *Buffer) CopyRect(src *Buffer, minX, minY, maxX, maxY int32) {
	for y := minY; y < maxY; y++ {
		srcRow := src.Row(y)
		dstRow := b.Row(y)
		copy(dstRow[minX:maxX], srcRow[minX:maxX])
	}
}
