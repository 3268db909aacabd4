package palette

import (
	"fmt"

	"rosepine/internal/casing"
	appErrors "rosepine/internal/errors"
)

// Role is a semantic color slot.
type Role int

const (
	Base Role = iota
	Surface
	Overlay
	Muted
	Subtle
	Text
	Love
	Gold
	Rose
	Pine
	Foam
	Iris
	HighlightLow
	HighlightMed
	HighlightHigh

	roleCount = 15
)

var roleNames = [roleCount]string{
	Base:          "Base",
	Surface:       "Surface",
	Overlay:       "Overlay",
	Muted:         "Muted",
	Subtle:        "Subtle",
	Text:          "Text",
	Love:          "Love",
	Gold:          "Gold",
	Rose:          "Rose",
	Pine:          "Pine",
	Foam:          "Foam",
	Iris:          "Iris",
	HighlightLow:  "HighlightLow",
	HighlightMed:  "HighlightMed",
	HighlightHigh: "HighlightHigh",
}

// Roles returns every role in declaration order.
func Roles() []Role {
	out := make([]Role, roleCount)
	for i := range out {
		out[i] = Role(i)
	}
	return out
}

// ParseRole resolves a role from any spelling whose snake form matches.
func ParseRole(raw string) (Role, error) {
	key := casing.Convert(raw, casing.Snake)
	for _, r := range Roles() {
		if r.String() == key {
			return r, nil
		}
	}
	return Base, appErrors.New(appErrors.CodeUnknownRole, fmt.Sprintf("unknown role: %q", raw), nil)
}

func (r Role) valid() bool {
	return r >= 0 && r < roleCount
}

// Name returns the canonical Pascal-cased name, e.g. "HighlightLow".
func (r Role) Name() string {
	if !r.valid() {
		return fmt.Sprintf("Role(%d)", int(r))
	}
	return roleNames[r]
}

// String returns the snake spelling used in templates, e.g. "highlight_low".
func (r Role) String() string {
	return casing.Convert(r.Name(), casing.Snake)
}

// Color returns the role's color in the given variant.
func (r Role) Color(v Variant) Color {
	return Get(r, v)
}

// MetaKey names a textual attribute of a variant.
type MetaKey int

const (
	MetaID MetaKey = iota
	MetaName
	MetaDescription
	MetaKeySlug
	MetaKind
)

var metaNames = map[MetaKey]string{
	MetaID:          "Id",
	MetaName:        "Name",
	MetaDescription: "Description",
	MetaKeySlug:     "Key",
	MetaKind:        "Kind",
}

// MetaKeys returns every metadata key in declaration order.
func MetaKeys() []MetaKey {
	return []MetaKey{MetaID, MetaName, MetaDescription, MetaKeySlug, MetaKind}
}

// Name returns the canonical Pascal-cased name of the key.
func (k MetaKey) Name() string {
	if n, ok := metaNames[k]; ok {
		return n
	}
	return fmt.Sprintf("MetaKey(%d)", int(k))
}

// String returns the snake spelling, e.g. "description".
func (k MetaKey) String() string {
	return casing.Convert(k.Name(), casing.Snake)
}

// Meta returns the variant's value for the metadata key.
func (v Variant) Meta(k MetaKey) string {
	switch k {
	case MetaID:
		return v.ID()
	case MetaName:
		return v.Name()
	case MetaDescription:
		return Description
	case MetaKeySlug:
		return v.Key()
	case MetaKind:
		return v.Kind().String()
	default:
		return ""
	}
}

// Metadata returns every metadata value of the variant keyed by snake name.
func (v Variant) Metadata() map[string]string {
	out := make(map[string]string, len(metaNames))
	for _, k := range MetaKeys() {
		out[k.String()] = v.Meta(k)
	}
	return out
}
