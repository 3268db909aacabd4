// Package palette holds the Rosé Pine color table: three variants, fifteen
// roles each. RGB values are authored; HSL values are derived from them once
// at init so the two representations can never drift apart.
package palette

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
)

// RGB is an 8-bit sRGB triple.
type RGB struct {
	R, G, B uint8
}

// HSL holds hue in degrees [0, 360) and saturation/lightness in [0, 100].
// Values are unrounded; formatters round for display.
type HSL struct {
	H, S, L float64
}

// Color is a palette entry.
type Color struct {
	RGB RGB
	HSL HSL
}

// Hex returns the color as "#rrggbb".
func (c Color) Hex() string {
	return c.colorful().Hex()
}

func (c Color) colorful() colorful.Color {
	return colorful.Color{
		R: float64(c.RGB.R) / 255.0,
		G: float64(c.RGB.G) / 255.0,
		B: float64(c.RGB.B) / 255.0,
	}
}

// FromRGB builds a Color, deriving its HSL representation.
func FromRGB(r, g, b uint8) Color {
	c := Color{RGB: RGB{R: r, G: g, B: b}}
	h, s, l := c.colorful().Hsl()
	c.HSL = HSL{H: h, S: s * 100, L: l * 100}
	return c
}

// Rosé Pine palette
// https://rosepinetheme.com/
var table = [variantCount][roleCount]RGB{
	Main: {
		Base:          {25, 23, 36},
		Surface:       {31, 29, 46},
		Overlay:       {38, 35, 58},
		Muted:         {110, 106, 134},
		Subtle:        {144, 140, 170},
		Text:          {224, 222, 244},
		Love:          {235, 111, 146},
		Gold:          {246, 193, 119},
		Rose:          {235, 188, 186},
		Pine:          {49, 116, 143},
		Foam:          {156, 207, 216},
		Iris:          {196, 167, 231},
		HighlightLow:  {33, 32, 46},
		HighlightMed:  {64, 61, 82},
		HighlightHigh: {82, 79, 103},
	},
	Moon: {
		Base:          {35, 33, 54},
		Surface:       {42, 39, 63},
		Overlay:       {57, 53, 82},
		Muted:         {110, 106, 134},
		Subtle:        {144, 140, 170},
		Text:          {224, 222, 244},
		Love:          {235, 111, 146},
		Gold:          {246, 193, 119},
		Rose:          {234, 154, 151},
		Pine:          {62, 143, 176},
		Foam:          {156, 207, 216},
		Iris:          {196, 167, 231},
		HighlightLow:  {42, 40, 62},
		HighlightMed:  {68, 65, 90},
		HighlightHigh: {86, 82, 110},
	},
	Dawn: {
		Base:          {250, 244, 237},
		Surface:       {255, 250, 243},
		Overlay:       {242, 233, 222},
		Muted:         {152, 147, 165},
		Subtle:        {121, 117, 147},
		Text:          {87, 82, 121},
		Love:          {180, 99, 122},
		Gold:          {234, 157, 52},
		Rose:          {215, 130, 126},
		Pine:          {40, 105, 131},
		Foam:          {86, 148, 159},
		Iris:          {144, 122, 169},
		HighlightLow:  {244, 237, 232},
		HighlightMed:  {223, 218, 217},
		HighlightHigh: {206, 202, 205},
	},
}

var colors [variantCount][roleCount]Color

func init() {
	for v := range table {
		for r, rgb := range table[v] {
			colors[v][r] = FromRGB(rgb.R, rgb.G, rgb.B)
		}
	}
}

// Get returns the color of role in variant. It panics on values outside the
// declared enumerations.
func Get(role Role, variant Variant) Color {
	if !variant.valid() {
		panic(fmt.Sprintf("palette: invalid variant %d", int(variant)))
	}
	if !role.valid() {
		panic(fmt.Sprintf("palette: invalid role %d", int(role)))
	}
	return colors[variant][role]
}

// Colors returns every role of the variant keyed by its snake-case name.
func (v Variant) Colors() map[string]Color {
	out := make(map[string]Color, roleCount)
	for _, r := range Roles() {
		out[r.String()] = Get(r, v)
	}
	return out
}
