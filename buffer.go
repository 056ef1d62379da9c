package swrender

import "github.com/Speedy37/egui-software-backend/internal/surface"

// FrameBuffer is the renderer's premultiplied RGBA (or BGRA) output: a
// row-major pixel grid sized Width x Height (spec §3 "Frame buffer").
type FrameBuffer = surface.Buffer

// NewFrameBuffer allocates a zeroed frame buffer of the given size.
func NewFrameBuffer(width, height int32) *FrameBuffer {
	return surface.NewBuffer(width, height)
}
