// Package format renders palette colors as text in the supported encodings.
package format

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"rosepine/internal/casing"
	appErrors "rosepine/internal/errors"
	"rosepine/internal/palette"
)

// Format is an output color encoding.
type Format int

const (
	// #ebbcba | #ebbcbaff
	Hex Format = iota
	// ebbcba | ebbcbaff
	HexNs
	// #ebbcba | #ffebbcba
	Ahex
	// ebbcba | ffebbcba
	AhexNs
	// 235, 188, 186
	Rgb
	// 235 188 186
	RgbNs
	// rgb(235, 188, 186)
	RgbFunction
	// [235, 188, 186]
	RgbArray
	// 235;188;186
	RgbAnsi
	// 2, 55%, 83%
	Hsl
	// 2 55% 83%
	HslNs
	// hsl(2, 55%, 83%)
	HslFunction
	// [2, 55%, 83%]
	HslArray
	// ( red: 0.92156863, green: 0.7372549, blue: 0.7294118 )
	Ron
)

// MaxOpacity is the largest accepted opacity percentage.
const MaxOpacity = 100

var names = map[Format]string{
	Hex:         "Hex",
	HexNs:       "HexNs",
	Ahex:        "Ahex",
	AhexNs:      "AhexNs",
	Rgb:         "Rgb",
	RgbNs:       "RgbNs",
	RgbFunction: "RgbFunction",
	RgbArray:    "RgbArray",
	RgbAnsi:     "RgbAnsi",
	Hsl:         "Hsl",
	HslNs:       "HslNs",
	HslFunction: "HslFunction",
	HslArray:    "HslArray",
	Ron:         "Ron",
}

// All returns every format in declaration order.
func All() []Format {
	return []Format{Hex, HexNs, Ahex, AhexNs, Rgb, RgbNs, RgbFunction, RgbArray, RgbAnsi, Hsl, HslNs, HslFunction, HslArray, Ron}
}

// Name returns the canonical Pascal-cased name, e.g. "RgbFunction".
func (f Format) Name() string {
	if n, ok := names[f]; ok {
		return n
	}
	return fmt.Sprintf("Format(%d)", int(f))
}

// String returns the snake spelling used in templates, e.g. "rgb_function".
func (f Format) String() string {
	return casing.Convert(f.Name(), casing.Snake)
}

// Parse resolves a format from any spelling whose snake form matches.
func Parse(raw string) (Format, error) {
	key := casing.Convert(strings.TrimSpace(raw), casing.Snake)
	for _, f := range All() {
		if f.String() == key {
			return f, nil
		}
	}
	return Hex, appErrors.New(appErrors.CodeUnknownFormat, fmt.Sprintf("unknown format: %q", raw), nil)
}

// IsHSL reports whether the format renders hue/saturation/lightness channels.
func (f Format) IsHSL() bool {
	switch f {
	case Hsl, HslNs, HslFunction, HslArray:
		return true
	}
	return false
}

// IsRGB reports whether the format renders decimal RGB channels.
func (f Format) IsRGB() bool {
	switch f {
	case Rgb, RgbNs, RgbFunction, RgbArray, RgbAnsi:
		return true
	}
	return false
}

// IsHex reports whether the format renders hex pairs.
func (f Format) IsHex() bool {
	switch f {
	case Hex, HexNs, Ahex, AhexNs:
		return true
	}
	return false
}

// ValidateOpacity rejects percentages above MaxOpacity.
func ValidateOpacity(opacity uint16) error {
	if opacity > MaxOpacity {
		return appErrors.New(appErrors.CodeOpacityOutOfRange,
			fmt.Sprintf("opacity %d is out of range (0-%d)", opacity, MaxOpacity), nil)
	}
	return nil
}

// Color renders c without an alpha channel.
func (f Format) Color(c palette.Color) string {
	out, _ := f.Render(c, nil)
	return out
}

// Render renders c, appending (or for ahex variants prepending) an alpha
// channel when opacity is non-nil. Opacity is a percentage.
func (f Format) Render(c palette.Color, opacity *uint16) (string, error) {
	channels := f.channels(c)
	if opacity != nil {
		if err := ValidateOpacity(*opacity); err != nil {
			return "", err
		}
		alpha := float64(*opacity) / 100.0
		switch f {
		case Ahex, AhexNs:
			channels = append([]float64{alpha * 255.0}, channels...)
		case Hex, HexNs:
			channels = append(channels, alpha*255.0)
		default:
			channels = append(channels, alpha)
		}
	}

	chunks := f.join(channels)
	switch f {
	case Hex, Ahex:
		return "#" + chunks, nil
	case RgbArray, HslArray:
		return "[" + chunks + "]", nil
	case RgbFunction:
		return "rgb(" + chunks + ")", nil
	case HslFunction:
		return "hsl(" + chunks + ")", nil
	case Ron:
		return "( " + chunks + " )", nil
	default:
		return chunks, nil
	}
}

func (f Format) channels(c palette.Color) []float64 {
	if f.IsHSL() {
		h := math.Round(c.HSL.H)
		if h >= 360 {
			h -= 360
		}
		return []float64{h, math.Round(c.HSL.S), math.Round(c.HSL.L)}
	}
	return []float64{float64(c.RGB.R), float64(c.RGB.G), float64(c.RGB.B)}
}

func (f Format) join(channels []float64) string {
	chunks := make([]string, len(channels))
	for i, ch := range channels {
		chunks[i] = f.chunk(ch, i)
	}
	switch f {
	case Hex, HexNs, Ahex, AhexNs:
		return strings.Join(chunks, "")
	case RgbNs, HslNs:
		return strings.Join(chunks, " ")
	case RgbAnsi:
		return strings.Join(chunks, ";")
	default:
		return strings.Join(chunks, ", ")
	}
}

var ronTags = [4]string{"red", "green", "blue", "alpha"}

func (f Format) chunk(v float64, i int) string {
	switch {
	case f == Ron:
		if i < 3 {
			return ronTags[i] + ": " + formatFraction(float32(v)/255.0)
		}
		return ronTags[i] + ": " + formatFraction(float32(v))
	case f.IsHex():
		return fmt.Sprintf("%02x", uint8(math.Round(v)))
	case i == 3:
		// alpha fraction trails every decimal encoding
		return formatFraction(float32(v))
	case f.IsHSL() && i > 0:
		return strconv.Itoa(int(v)) + "%"
	default:
		return strconv.Itoa(int(v))
	}
}

func formatFraction(v float32) string {
	return strconv.FormatFloat(float64(v), 'f', -1, 32)
}
