package palette

import (
	"math"
	"testing"

	appErrors "rosepine/internal/errors"
)

// referenceHSL is the textbook RGB to HSL transform, kept independent from
// the library used at init.
func referenceHSL(c RGB) (h, s, l float64) {
	r := float64(c.R) / 255
	g := float64(c.G) / 255
	b := float64(c.B) / 255
	maxC := math.Max(r, math.Max(g, b))
	minC := math.Min(r, math.Min(g, b))
	l = (maxC + minC) / 2
	if maxC == minC {
		return 0, 0, l * 100
	}
	d := maxC - minC
	if l > 0.5 {
		s = d / (2 - maxC - minC)
	} else {
		s = d / (maxC + minC)
	}
	switch maxC {
	case r:
		h = (g - b) / d
		if g < b {
			h += 6
		}
	case g:
		h = (b-r)/d + 2
	default:
		h = (r-g)/d + 4
	}
	return h * 60, s * 100, l * 100
}

func TestHSLConsistentWithRGB(t *testing.T) {
	for _, v := range Variants() {
		for _, r := range Roles() {
			c := Get(r, v)
			h, s, l := referenceHSL(c.RGB)
			if d := math.Abs(math.Round(h) - math.Round(c.HSL.H)); d > 1 && d < 359 {
				t.Errorf("%s/%s hue = %.2f, reference %.2f", v, r, c.HSL.H, h)
			}
			if math.Abs(math.Round(s)-math.Round(c.HSL.S)) > 1 {
				t.Errorf("%s/%s saturation = %.2f, reference %.2f", v, r, c.HSL.S, s)
			}
			if math.Abs(math.Round(l)-math.Round(c.HSL.L)) > 1 {
				t.Errorf("%s/%s lightness = %.2f, reference %.2f", v, r, c.HSL.L, l)
			}
		}
	}
}

func TestKnownColors(t *testing.T) {
	tests := []struct {
		role    Role
		variant Variant
		hex     string
	}{
		{Love, Moon, "#eb6f92"},
		{Love, Main, "#eb6f92"},
		{Love, Dawn, "#b4637a"},
		{Rose, Main, "#ebbcba"},
		{Pine, Main, "#31748f"},
		{Base, Main, "#191724"},
		{Base, Dawn, "#faf4ed"},
		{HighlightHigh, Moon, "#56526e"},
	}
	for _, tt := range tests {
		if got := Get(tt.role, tt.variant).Hex(); got != tt.hex {
			t.Errorf("Get(%s, %s).Hex() = %q, want %q", tt.role, tt.variant, got, tt.hex)
		}
	}

	love := Get(Love, Moon).HSL
	if math.Round(love.H) != 343 || math.Round(love.S) != 76 || math.Round(love.L) != 68 {
		t.Fatalf("unexpected love HSL: %+v", love)
	}
}

func TestVariantAttributes(t *testing.T) {
	light := 0
	for _, v := range Variants() {
		if !v.IsDark() {
			light++
		}
	}
	if light != 1 {
		t.Fatalf("expected exactly one light variant, got %d", light)
	}
	if Dawn.Kind() != KindLight {
		t.Fatalf("expected dawn to be light")
	}
	if got := Moon.ID(); got != "rose-pine-moon" {
		t.Fatalf("Moon.ID() = %q", got)
	}
	if got := Moon.Name(); got != "Rosé Pine Moon" {
		t.Fatalf("Moon.Name() = %q", got)
	}
	if got := Main.Meta(MetaKind); got != "dark" {
		t.Fatalf("Main kind = %q", got)
	}
	if got := Dawn.Meta(MetaDescription); got != Description {
		t.Fatalf("Dawn description = %q", got)
	}
}

func TestParseHelpers(t *testing.T) {
	if v, err := ParseVariant("rose-pine-dawn"); err != nil || v != Dawn {
		t.Fatalf("ParseVariant(id) = %v, %v", v, err)
	}
	if v, err := ParseVariant(" Moon "); err != nil || v != Moon {
		t.Fatalf("ParseVariant(key) = %v, %v", v, err)
	}
	if _, err := ParseVariant("noon"); !appErrors.IsCode(err, appErrors.CodeUnknownVariant) {
		t.Fatalf("ParseVariant(noon) error = %v, want %s", err, appErrors.CodeUnknownVariant)
	}
	if r, err := ParseRole("highlightMed"); err != nil || r != HighlightMed {
		t.Fatalf("ParseRole = %v, %v", r, err)
	}
	if _, err := ParseRole("crimson"); !appErrors.IsCode(err, appErrors.CodeUnknownRole) {
		t.Fatalf("ParseRole(crimson) error = %v, want %s", err, appErrors.CodeUnknownRole)
	}
}

func TestRoleAndMetaSpellings(t *testing.T) {
	if len(Roles()) != 15 {
		t.Fatalf("expected 15 roles, got %d", len(Roles()))
	}
	if got := HighlightLow.String(); got != "highlight_low" {
		t.Fatalf("HighlightLow.String() = %q", got)
	}
	if got := MetaID.String(); got != "id" {
		t.Fatalf("MetaID.String() = %q", got)
	}
	colors := Dawn.Colors()
	if got := colors["love"].Hex(); got != "#b4637a" {
		t.Fatalf("Dawn.Colors()[love] = %q", got)
	}
	if got := Moon.Metadata()["name"]; got != "Rosé Pine Moon" {
		t.Fatalf("Moon.Metadata()[name] = %q", got)
	}
}
