// Package texture implements the renderer's 2D texture store: swizzle on
// ingest, patch-in-place, and clamped bilinear sampling.
package texture

import (
	"fmt"
	"log/slog"

	"github.com/Speedy37/egui-software-backend/internal/blend"
)

// FieldOrder selects the renderer's output channel order. Every texture and
// the frame buffer itself share one FieldOrder, set once at construction.
type FieldOrder int

const (
	RGBA FieldOrder = iota
	BGRA
)

// userIDBias separates user-tagged texture IDs from toolkit-managed ones in
// the 32-bit encoded ID space used by the hasher (spec §4.4 item 2).
const userIDBias = 9358476

// ID is the tagged union of toolkit-managed and user-supplied texture
// identifiers.
type ID struct {
	user bool
	val  uint64
}

// Managed builds a toolkit-managed texture ID.
func Managed(id uint64) ID { return ID{user: false, val: id} }

// User builds a user-tagged texture ID.
func User(id uint64) ID { return ID{user: true, val: id} }

// Encoded returns the 32-bit value the hasher mixes in for this ID (spec
// §4.4): the raw managed ID, or the user ID offset by userIDBias.
func (id ID) Encoded() uint32 {
	if id.user {
		return uint32(id.val) + userIDBias
	}
	return uint32(id.val)
}

func (id ID) String() string {
	if id.user {
		return fmt.Sprintf("User(%d)", id.val)
	}
	return fmt.Sprintf("Managed(%d)", id.val)
}

// Filter is one of the two sampling modes a texture may request.
type Filter int

const (
	FilterNearest Filter = iota
	FilterLinear
)

// FilterOptions carries the toolkit's requested magnification/minification
// filters. The store only distinguishes nearest vs. bilinear as a whole; a
// mismatched pair is logged and treated as bilinear (spec §4.3).
type FilterOptions struct {
	Magnification Filter
	Minification  Filter
}

// Bilinear reports whether this texture should be sampled with bilinear
// filtering, per the toolkit's options.
func (f FilterOptions) Bilinear() bool {
	return f.Magnification == FilterLinear || f.Minification == FilterLinear
}

// ImagePatch is the external collaborator's description of a texture
// creation or sub-rectangle patch (spec §6).
type ImagePatch struct {
	// Size is (width, height) of Pixels, NOT of the owning texture when Pos
	// is set (patches may be smaller than the texture they update).
	Size [2]uint32
	// Pixels is Size[0]*Size[1] RGBA samples in the toolkit's own field
	// order (always treated as RGBA by the store; swizzled on ingest if the
	// renderer's configured order is BGRA).
	Pixels []blend.Pixel
	// Pos, if non-nil, selects a sub-rectangle patch of an existing texture
	// instead of a full (re)creation.
	Pos     *[2]uint32
	Options FilterOptions
}

// Texture is a single 2D RGBA (or BGRA, per the store's FieldOrder) image
// with bilinear or nearest sampling.
type Texture struct {
	Width, Height uint32
	Pixels        []blend.Pixel
	Options       FilterOptions
}

func swizzle(p blend.Pixel) blend.Pixel {
	return blend.Pixel{p[2], p[1], p[0], p[3]}
}

func newTexture(order FieldOrder, opts FilterOptions, size [2]uint32, pixels []blend.Pixel) *Texture {
	t := &Texture{Width: size[0], Height: size[1], Options: opts, Pixels: make([]blend.Pixel, len(pixels))}
	if order == BGRA {
		for i, p := range pixels {
			t.Pixels[i] = swizzle(p)
		}
	} else {
		copy(t.Pixels, pixels)
	}
	return t
}

// At returns the texel at (x,y), clamped to the texture's edges.
func (t *Texture) At(x, y int32) blend.Pixel {
	if x < 0 {
		x = 0
	} else if x >= int32(t.Width) {
		x = int32(t.Width) - 1
	}
	if y < 0 {
		y = 0
	} else if y >= int32(t.Height) {
		y = int32(t.Height) - 1
	}
	return t.Pixels[int32(t.Width)*y+x]
}

// SampleBilinear performs a clamped-to-edge four-tap bilinear sample at
// texel-space coordinate (u,v), where u,v are already scaled to [0,width]
// x [0,height] texel units (spec §4.2 bilinear sampler).
func (t *Texture) SampleBilinear(u, v float32) blend.Pixel {
	fu := u - 0.5
	fv := v - 0.5
	ix := int32(floorf(fu))
	iy := int32(floorf(fv))
	fx := fu - float32(ix)
	fy := fv - float32(iy)

	c00 := t.At(ix, iy)
	c10 := t.At(ix+1, iy)
	c01 := t.At(ix, iy+1)
	c11 := t.At(ix+1, iy+1)

	top := lerpPixel(c00, c10, fx)
	bot := lerpPixel(c01, c11, fx)
	return lerpPixel(top, bot, fy)
}

func floorf(f float32) float32 {
	i := float32(int32(f))
	if f < i {
		return i - 1
	}
	return i
}

// lerpPixel performs a four-channel unorm lerp with the "+128; *257"
// rounding shared with the rest of the blend math.
func lerpPixel(a, b blend.Pixel, t float32) blend.Pixel {
	tf := uint8(clampRound(t * 255))
	inv := blend.Pixel{255 - tf, 255 - tf, 255 - tf, 255 - tf}
	tp := blend.Pixel{tf, tf, tf, tf}
	var out blend.Pixel
	for i := 0; i < 4; i++ {
		lo := uint32(a[i]) * uint32(inv[i])
		hi := uint32(b[i]) * uint32(tp[i])
		sum := lo + hi + 128
		out[i] = uint8((sum + (sum >> 8)) >> 8)
	}
	return out
}

func clampRound(f float32) int32 {
	if f <= 0 {
		return 0
	}
	if f >= 255 {
		return 255
	}
	return int32(f + 0.5)
}

// Store is the renderer's texture table, keyed by ID.
type Store struct {
	order    FieldOrder
	logger   *slog.Logger
	textures map[ID]*Texture
}

// NewStore creates an empty texture store outputting in the given field
// order.
func NewStore(order FieldOrder, logger *slog.Logger) *Store {
	return &Store{order: order, logger: logger, textures: make(map[ID]*Texture)}
}

// Get returns the texture for id, or nil if absent (caller must drop the
// referencing primitive, spec §4.3/§7 "missing texture").
func (s *Store) Get(id ID) *Texture {
	return s.textures[id]
}

// Set ingests a creation or patch for id.
func (s *Store) Set(id ID, patch ImagePatch) {
	if patch.Options.Magnification != patch.Options.Minification {
		s.logger.Warn("texture filter magnification and minification differ, treating as bilinear", "texture", id)
	}

	if patch.Pos != nil {
		tex := s.textures[id]
		if tex == nil {
			return
		}
		pos := *patch.Pos
		for y := uint32(0); y < patch.Size[1]; y++ {
			for x := uint32(0); x < patch.Size[0]; x++ {
				src := patch.Pixels[x+y*patch.Size[0]]
				if s.order == BGRA {
					src = swizzle(src)
				}
				dst := (x + pos[0]) + (y + pos[1])*tex.Width
				tex.Pixels[dst] = src
			}
		}
		return
	}

	s.textures[id] = newTexture(s.order, patch.Options, patch.Size, patch.Pixels)
}

// Free removes id from the store. Cache entries referencing id by hash are
// not invalidated here (spec §4.3): bitmap caches already embed sampled
// color, mesh caches re-lookup and drop on miss.
func (s *Store) Free(id ID) {
	delete(s.textures, id)
}
