package swrender

import "github.com/Speedy37/egui-software-backend/texture"

// CachingMode selects how a Renderer reuses work across frames (spec §4.6).
type CachingMode int

const (
	// Direct re-rasterizes every primitive straight into the output buffer
	// each frame; no cache entries are kept. Cheapest per-frame bookkeeping,
	// most per-frame rasterization work.
	Direct CachingMode = iota
	// Mesh caches each primitive's prepared mesh keyed by its content hash
	// and re-rasterizes the cached meshes that intersect the union of the
	// changed primitives' rects, clipped to that union.
	Mesh
	// MeshTiled is Mesh plus per-tile dirty tracking, so only tiles touched
	// by a changed or newly (dis)appeared primitive are recomposited.
	MeshTiled
	// BlendTiled caches each primitive's rasterized bitmap, composites the
	// bitmaps of dirty tiles into one persistent canvas, and copies the
	// canvas into the output buffer tile by tile, instead of re-rasterizing
	// cached meshes as MeshTiled does.
	BlendTiled
)

// String renders the caching mode's name, for logging and config files.
func (m CachingMode) String() string {
	switch m {
	case Direct:
		return "direct"
	case Mesh:
		return "mesh"
	case MeshTiled:
		return "mesh-tiled"
	case BlendTiled:
		return "blend-tiled"
	default:
		return "unknown"
	}
}

// Option configures a Renderer during construction.
//
// Example:
//
//	r := swrender.New(swrender.WithCaching(swrender.MeshTiled))
type Option func(*rendererOptions)

// rendererOptions holds optional configuration for Renderer creation.
type rendererOptions struct {
	caching            CachingMode
	allowRasterOpt     bool
	convertTrisToRects bool
	fieldOrder         texture.FieldOrder
	workers            int
}

// defaultOptions returns the default renderer options.
func defaultOptions() rendererOptions {
	return rendererOptions{
		caching:            Direct,
		allowRasterOpt:     true,
		convertTrisToRects: true,
		fieldOrder:         texture.RGBA,
		workers:            0, // GOMAXPROCS
	}
}

// WithCaching selects the Renderer's caching mode. The default is Direct.
func WithCaching(mode CachingMode) Option {
	return func(o *rendererOptions) {
		o.caching = mode
	}
}

// WithAllowRasterOpt enables or disables the per-triangle fast paths in
// mesh rasterization (spec §4.3 "Rectangle detection"): constant color/UV
// specialization, skipping the blend for opaque triangles, and rectangle
// detection. When disabled, every triangle goes through the general
// triangle filler with all flags set. Enabled by default; disable only to
// debug or benchmark against the general triangle filler.
func WithAllowRasterOpt(allow bool) Option {
	return func(o *rendererOptions) {
		o.allowRasterOpt = allow
	}
}

// WithConvertTrisToRects controls whether a detected axis-aligned
// rectangle pair is rasterized via the dedicated rectangle filler rather
// than the general triangle filler. Has no effect when WithAllowRasterOpt
// is false. Enabled by default.
func WithConvertTrisToRects(convert bool) Option {
	return func(o *rendererOptions) {
		o.convertTrisToRects = convert
	}
}

// WithFieldOrder sets the channel order of the output buffer and every
// ingested texture. The default is RGBA.
func WithFieldOrder(order texture.FieldOrder) Option {
	return func(o *rendererOptions) {
		o.fieldOrder = order
	}
}

// WithWorkers sets the number of goroutines in the Renderer's worker pool.
// 0 or negative selects GOMAXPROCS, which is also the default.
func WithWorkers(n int) Option {
	return func(o *rendererOptions) {
		o.workers = n
	}
}
