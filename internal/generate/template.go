package generate

import (
	"fmt"
	"strings"
	"text/template"

	"rosepine/internal/casing"
	appErrors "rosepine/internal/errors"
	"rosepine/internal/format"
	"rosepine/internal/palette"
)

// templateName is the name the document is registered under.
const templateName = "content"

// Funcs is the function map available to template documents:
//
//	{{ format "rgb_function" .Colors.love 50 }}  -> rgb(235, 111, 146, 0.5)
//	{{ .Colors.love.HSL.H | trunc 2 }}           -> 343.06
//	{{ case "kebab" .Metadata.name }}            -> rosé-pine
//
// Template also binds "color", which renders in the configured default format.
var Funcs = template.FuncMap{
	"format": formatFunc,
	"trunc":  truncFunc,
	"case":   caseFunc,
}

func formatFunc(name string, c palette.Color, opacity ...int) (string, error) {
	f, err := format.Parse(name)
	if err != nil {
		return "", err
	}
	if len(opacity) == 0 {
		return f.Color(c), nil
	}
	if opacity[0] < 0 {
		return "", format.ValidateOpacity(format.MaxOpacity + 1)
	}
	o := uint16(opacity[0])
	return f.Render(c, &o)
}

func truncFunc(places int, v float64) string {
	return fmt.Sprintf("%.*f", places, v)
}

func caseFunc(name, s string) (string, error) {
	c, err := casing.Parse(name)
	if err != nil {
		return "", appErrors.New(appErrors.CodeTemplateFailed, err.Error(), err)
	}
	return casing.Convert(s, c), nil
}

// Context builds the data a template document sees for v. Roles are also
// exposed at the top level, so {{ .love.Hex }} and {{ .Colors.love.Hex }}
// are equivalent.
func Context(v palette.Variant) map[string]any {
	colors := v.Colors()
	ctx := make(map[string]any, len(colors)+2)
	for name, c := range colors {
		ctx[name] = c
	}
	ctx["Metadata"] = v.Metadata()
	ctx["Colors"] = colors
	return ctx
}

// colorFunc renders a color in the run's default format, honoring force-alpha.
func colorFunc(cfg Config) func(palette.Color) (string, error) {
	return func(c palette.Color) (string, error) {
		if !cfg.ForceAlpha {
			return cfg.Format.Color(c), nil
		}
		full := uint16(format.MaxOpacity)
		return cfg.Format.Render(c, &full)
	}
}

// Template runs the text/template engine. The document is parsed once and
// executed per variant; a failure in any variant fails the whole call.
func Template(document string, cfg Config) (Result, error) {
	tmpl, err := template.New(templateName).
		Funcs(Funcs).
		Funcs(template.FuncMap{"color": colorFunc(cfg)}).
		Option("missingkey=error").
		Parse(document)
	if err != nil {
		return Result{}, appErrors.New(appErrors.CodeTemplateFailed, "parse template: "+err.Error(), err)
	}

	out := Result{Outputs: make(map[palette.Variant]string, len(palette.Variants()))}
	for _, v := range palette.Variants() {
		var b strings.Builder
		if err := tmpl.Execute(&b, Context(v)); err != nil {
			return Result{}, appErrors.New(appErrors.CodeTemplateFailed,
				fmt.Sprintf("render %s: %v", v, err), err)
		}
		out.Outputs[v] = b.String()
	}
	logger.Logf("template engine rendered %d variants", len(out.Outputs))
	return out, nil
}
