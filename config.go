package swrender

import (
	"fmt"

	"github.com/BurntSushi/toml"

	"github.com/Speedy37/egui-software-backend/texture"
)

// Config is the on-disk (TOML) form of a Renderer's Option set, for
// deployments that configure caching mode, raster-opt, and field order via
// a settings file rather than call-site options.
type Config struct {
	Caching            string `toml:"caching"`
	AllowRasterOpt     bool   `toml:"allow_raster_opt"`
	ConvertTrisToRects bool   `toml:"convert_tris_to_rects"`
	FieldOrder         string `toml:"field_order"`
	Workers            int    `toml:"workers"`
}

func defaultConfig() Config {
	return ConfigFromOptions()
}

// LoadConfig reads a TOML config file at path, falling back to the
// Renderer's defaults for any field the file omits.
func LoadConfig(path string) (Config, error) {
	cfg := defaultConfig()
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, fmt.Errorf("swrender: load config %s: %w", path, err)
	}
	return cfg, nil
}

// ConfigFromOptions captures a Renderer Option set as a Config, for callers
// that want to persist their current settings to a TOML file.
func ConfigFromOptions(opts ...Option) Config {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	fieldOrder := "rgba"
	if o.fieldOrder == texture.BGRA {
		fieldOrder = "bgra"
	}
	return Config{
		Caching:            o.caching.String(),
		AllowRasterOpt:     o.allowRasterOpt,
		ConvertTrisToRects: o.convertTrisToRects,
		FieldOrder:         fieldOrder,
		Workers:            o.workers,
	}
}

// Options converts the config back into a Renderer Option set.
func (c Config) Options() ([]Option, error) {
	var mode CachingMode
	switch c.Caching {
	case "", "direct":
		mode = Direct
	case "mesh":
		mode = Mesh
	case "mesh-tiled":
		mode = MeshTiled
	case "blend-tiled":
		mode = BlendTiled
	default:
		return nil, fmt.Errorf("swrender: unknown caching mode %q", c.Caching)
	}

	var order texture.FieldOrder
	switch c.FieldOrder {
	case "", "rgba":
		order = texture.RGBA
	case "bgra":
		order = texture.BGRA
	default:
		return nil, fmt.Errorf("swrender: unknown field order %q", c.FieldOrder)
	}

	return []Option{
		WithCaching(mode),
		WithAllowRasterOpt(c.AllowRasterOpt),
		WithConvertTrisToRects(c.ConvertTrisToRects),
		WithFieldOrder(order),
		WithWorkers(c.Workers),
	}, nil
}
