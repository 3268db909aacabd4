package generate

import (
	"rosepine/internal/casing"
	"rosepine/internal/format"
	"rosepine/internal/palette"
	"rosepine/internal/parse"
)

// Render produces the replacement text for one capture in variant v.
func Render(c parse.Capture, v palette.Variant, cfg Config) (string, error) {
	if c.Kind == parse.KindMetadata {
		value := v.Meta(c.Meta)
		if c.Case != nil {
			value = casing.Convert(value, *c.Case)
		}
		return value, nil
	}

	f := cfg.Format
	if c.Format != nil {
		f = *c.Format
	}

	opacity := c.Opacity
	if opacity == nil && cfg.ForceAlpha {
		full := uint16(format.MaxOpacity)
		opacity = &full
	}

	return f.Render(c.Roles.Color(v), opacity)
}
