package palette

import (
	"fmt"
	"strings"

	appErrors "rosepine/internal/errors"
)

// Variant is one of the three Rosé Pine palettes.
type Variant int

const (
	Main Variant = iota
	Moon
	Dawn

	variantCount = 3
)

// Kind classifies a variant as light or dark.
type Kind int

const (
	KindDark Kind = iota
	KindLight
)

// String returns "dark" or "light".
func (k Kind) String() string {
	if k == KindLight {
		return "light"
	}
	return "dark"
}

// Description is shared by every variant.
const Description = "All natural pine, faux fur and a bit of soho vibes for the classy minimalist"

type variantInfo struct {
	id   string
	name string
	key  string
	kind Kind
}

var variants = [variantCount]variantInfo{
	Main: {id: "rose-pine", name: "Rosé Pine", key: "main", kind: KindDark},
	Moon: {id: "rose-pine-moon", name: "Rosé Pine Moon", key: "moon", kind: KindDark},
	Dawn: {id: "rose-pine-dawn", name: "Rosé Pine Dawn", key: "dawn", kind: KindLight},
}

// Variants returns every variant in declaration order.
func Variants() []Variant {
	return []Variant{Main, Moon, Dawn}
}

// ParseVariant resolves a variant from its key ("main") or id ("rose-pine").
func ParseVariant(raw string) (Variant, error) {
	needle := strings.ToLower(strings.TrimSpace(raw))
	for _, v := range Variants() {
		if needle == v.Key() || needle == v.ID() {
			return v, nil
		}
	}
	return Main, appErrors.New(appErrors.CodeUnknownVariant, fmt.Sprintf("unknown variant: %q", raw), nil)
}

func (v Variant) valid() bool {
	return v >= 0 && v < variantCount
}

func (v Variant) info() variantInfo {
	if !v.valid() {
		return variantInfo{}
	}
	return variants[v]
}

// ID returns the stable identifier, e.g. "rose-pine-moon".
func (v Variant) ID() string { return v.info().id }

// Name returns the display name, e.g. "Rosé Pine Moon".
func (v Variant) Name() string { return v.info().name }

// Key returns the short slug used for output paths, e.g. "moon".
func (v Variant) Key() string { return v.info().key }

// Kind reports whether the variant is light or dark.
func (v Variant) Kind() Kind { return v.info().kind }

// IsDark reports whether the variant is a dark palette.
func (v Variant) IsDark() bool { return v.Kind() == KindDark }

// String implements fmt.Stringer.
func (v Variant) String() string {
	if !v.valid() {
		return fmt.Sprintf("Variant(%d)", int(v))
	}
	return v.Key()
}
