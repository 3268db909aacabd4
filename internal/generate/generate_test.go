package generate

import (
	"strings"
	"testing"

	appErrors "rosepine/internal/errors"
	"rosepine/internal/format"
	"rosepine/internal/palette"
	"rosepine/internal/parse"
)

func hexConfig() Config {
	return DefaultConfig()
}

func TestReplaceLeavesPlainTextUntouched(t *testing.T) {
	docs := []string{
		"",
		"no placeholders here",
		"{\n  \"name\": \"theme\",\n  \"colors\": {}\n}\n",
		"multi-byte: é ü → ✓",
	}

	for _, doc := range docs {
		res := Replace(doc, hexConfig())
		for _, v := range palette.Variants() {
			if got := res.Text(v); got != doc {
				t.Errorf("%s: Replace(%q) = %q", v, doc, got)
			}
		}
		if len(res.Diagnostics) != 0 {
			t.Errorf("unexpected diagnostics for %q: %v", doc, res.Diagnostics)
		}
	}
}

func TestReplaceRoleGroups(t *testing.T) {
	tests := []struct {
		doc  string
		want map[palette.Variant]string
	}{
		{
			doc: "$(rose|love)",
			want: map[palette.Variant]string{
				palette.Main: "#ebbcba",
				palette.Moon: "#ea9a97",
				palette.Dawn: "#b4637a",
			},
		},
		{
			doc: "$(foam|pine|iris)",
			want: map[palette.Variant]string{
				palette.Main: "#9ccfd8",
				palette.Moon: "#3e8fb0",
				palette.Dawn: "#907aa9",
			},
		},
		{
			doc: "$( foam | pine | iris ):rgb",
			want: map[palette.Variant]string{
				palette.Main: "156, 207, 216",
				palette.Moon: "62, 143, 176",
				palette.Dawn: "144, 122, 169",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.doc, func(t *testing.T) {
			res := Replace(tt.doc, hexConfig())
			for v, want := range tt.want {
				if got := res.Text(v); got != want {
					t.Errorf("%s: got %q, want %q", v, got, want)
				}
			}
		})
	}
}

func TestReplaceFormatsAndOpacity(t *testing.T) {
	tests := []struct {
		doc  string
		want string
	}{
		{"$love:hex", "#eb6f92"},
		{"$love:hex_ns", "eb6f92"},
		{"$love:hex/100", "#eb6f92ff"},
		{"$love:hex/0", "#eb6f9200"},
		{"$love:ahex/80", "#cceb6f92"},
		{"$love:rgb_function/50", "rgb(235, 111, 146, 0.5)"},
		{"$love:rgb_ansi", "235;111;146"},
		{"$love:hsl_function", "hsl(343, 76%, 68%)"},
		{"$love:ron/50", "( red: 0.92156863, green: 0.43529412, blue: 0.57254905, alpha: 0.5 )"},
		{"color: $love;", "color: #eb6f92;"},
	}

	for _, tt := range tests {
		t.Run(tt.doc, func(t *testing.T) {
			res := Replace(tt.doc, hexConfig())
			if got := res.Text(palette.Moon); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestReplaceMultiplePlaceholders(t *testing.T) {
	doc := "$love:rgb_function; $love:rgb; $love:hex_ns; $love:hex"
	want := "rgb(235, 111, 146); 235, 111, 146; eb6f92; #eb6f92"

	res := Replace(doc, hexConfig())
	if got := res.Text(palette.Moon); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestReplaceDefaultFormatAndForceAlpha(t *testing.T) {
	cfg := hexConfig()
	cfg.Format = format.RgbFunction
	cfg.ForceAlpha = true

	res := Replace("$love $love:hex $love/50 $name", cfg)
	want := "rgb(235, 111, 146, 1) #eb6f92ff rgb(235, 111, 146, 0.5) Rosé Pine"
	if got := res.Text(palette.Main); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestReplaceMalformedPlaceholderContained(t *testing.T) {
	doc := "ok: $love:hex; bad: $lavender:hex; group: $(rose|love; end"

	res := Replace(doc, hexConfig())
	for _, v := range palette.Variants() {
		got := res.Text(v)
		if !strings.Contains(got, "bad: $lavender:hex;") {
			t.Errorf("%s: invalid placeholder should stay literal: %q", v, got)
		}
		if !strings.Contains(got, "group: $(rose|love; end") {
			t.Errorf("%s: unclosed group should stay literal: %q", v, got)
		}
		if strings.Contains(got, "$love:hex") {
			t.Errorf("%s: valid placeholder not substituted: %q", v, got)
		}
	}

	if len(res.Diagnostics) != 2 {
		t.Fatalf("diagnostics = %v, want 2", res.Diagnostics)
	}
	if !appErrors.IsCode(res.Diagnostics[0].Err, appErrors.CodeUnknownToken) {
		t.Errorf("first diagnostic = %v", res.Diagnostics[0])
	}
	if !appErrors.IsCode(res.Diagnostics[1].Err, appErrors.CodeUnclosedGroup) {
		t.Errorf("second diagnostic = %v", res.Diagnostics[1])
	}
}

func TestReplaceOpacityOutOfRange(t *testing.T) {
	doc := "$love/150 $pine"

	res := Replace(doc, hexConfig())
	if got := res.Text(palette.Main); got != "$love/150 #31748f" {
		t.Errorf("got %q", got)
	}
	if len(res.Diagnostics) != 1 {
		t.Fatalf("diagnostics = %v, want exactly one", res.Diagnostics)
	}
	if d := res.Diagnostics[0]; d.Start != 0 || !appErrors.IsCode(d.Err, appErrors.CodeOpacityOutOfRange) {
		t.Errorf("diagnostic = %v", d)
	}
}

func TestReplaceMetadata(t *testing.T) {
	tests := []struct {
		doc  string
		v    palette.Variant
		want string
	}{
		{"$id", palette.Moon, "rose-pine-moon"},
		{"$id:camel", palette.Moon, "rosePineMoon"},
		{"$id:pascal", palette.Dawn, "RosePineDawn"},
		{"$name", palette.Main, "Rosé Pine"},
		{"$name:lower", palette.Moon, "rosé pine moon"},
		{"$name:kebab", palette.Main, "rosé-pine"},
		{"$key:upper", palette.Dawn, "DAWN"},
		{"$kind", palette.Dawn, "light"},
		{"$kind:title", palette.Moon, "Dark"},
		{"$name:hello_world", palette.Main, "Rosé Pine:hello_world"},
	}

	for _, tt := range tests {
		t.Run(tt.doc+"/"+tt.v.String(), func(t *testing.T) {
			res := Replace(tt.doc, hexConfig())
			if got := res.Text(tt.v); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestReplaceCustomGrammar(t *testing.T) {
	cfg := hexConfig()
	cfg.Parse = parse.Options{Prefix: '@', Separator: ',', Delimiter: parse.CurlyBracket}

	res := Replace("$love @{rose, love}:hex_ns", cfg)
	if got := res.Text(palette.Dawn); got != "$love b4637a" {
		t.Errorf("dawn: got %q", got)
	}
	if got := res.Text(palette.Main); got != "$love ebbcba" {
		t.Errorf("main: got %q", got)
	}
}

func TestGenerateDispatchesEngine(t *testing.T) {
	cfg := hexConfig()
	cfg.Engine = EngineTemplate

	res, err := Generate("{{ .Metadata.key }}: {{ .love.Hex }}", cfg)
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}
	if got := res.Text(palette.Dawn); got != "dawn: #b4637a" {
		t.Errorf("got %q", got)
	}

	cfg.Engine = EngineReplace
	res, err = Generate("{{ .love.Hex }} $love", cfg)
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}
	if got := res.Text(palette.Dawn); got != "{{ .love.Hex }} #b4637a" {
		t.Errorf("got %q", got)
	}
}

func TestParseEngine(t *testing.T) {
	for raw, want := range map[string]Engine{"": EngineReplace, "replace": EngineReplace, " Template ": EngineTemplate} {
		got, err := ParseEngine(raw)
		if err != nil || got != want {
			t.Errorf("ParseEngine(%q) = %q, %v", raw, got, err)
		}
	}
	if _, err := ParseEngine("tera"); !appErrors.IsCode(err, appErrors.CodeConfigurationError) {
		t.Errorf("ParseEngine(tera) error = %v", err)
	}
}
