package generate

import (
	"testing"

	appErrors "rosepine/internal/errors"
	"rosepine/internal/format"
	"rosepine/internal/palette"
)

func TestTemplateFunctions(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		v    palette.Variant
		want string
	}{
		{"hex method", "{{ .Colors.love.Hex }}", palette.Main, "#eb6f92"},
		{"top-level role", "{{ .pine.Hex }}", palette.Dawn, "#286983"},
		{"rgb fields", "{{ .love.RGB.R }},{{ .love.RGB.G }},{{ .love.RGB.B }}", palette.Moon, "235,111,146"},
		{"format", `{{ format "rgb_function" .love }}`, palette.Main, "rgb(235, 111, 146)"},
		{"format with opacity", `{{ format "hex" .love 50 }}`, palette.Main, "#eb6f9280"},
		{"trunc", "{{ .love.HSL.H | trunc 2 }}", palette.Main, "343.06"},
		{"case", `{{ case "shouty_snake" .Metadata.id }}`, palette.Moon, "ROSE_PINE_MOON"},
		{"color default", "{{ color .love }}", palette.Main, "#eb6f92"},
		{"description", "{{ .Metadata.description }}", palette.Dawn, palette.Description},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Template(tt.doc, DefaultConfig())
			if err != nil {
				t.Fatalf("Template() error: %v", err)
			}
			if got := res.Text(tt.v); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTemplateColorHonorsConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Format = format.RgbAnsi
	cfg.ForceAlpha = true

	res, err := Template("{{ color .love }}", cfg)
	if err != nil {
		t.Fatalf("Template() error: %v", err)
	}
	if got := res.Text(palette.Main); got != "235;111;146;1" {
		t.Errorf("got %q", got)
	}
}

func TestTemplateErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"syntax", "{{ .love.Hex "},
		{"missing key", "{{ .lavender.Hex }}"},
		{"unknown format", `{{ format "cmyk" .love }}`},
		{"opacity out of range", `{{ format "hex" .love 120 }}`},
		{"unknown case", `{{ case "sponge" .Metadata.name }}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Template(tt.doc, DefaultConfig())
			if err == nil {
				t.Fatal("expected error")
			}
			if !appErrors.IsCode(err, appErrors.CodeTemplateFailed) {
				t.Errorf("code = %s, want %s", appErrors.CodeOf(err), appErrors.CodeTemplateFailed)
			}
		})
	}
}
