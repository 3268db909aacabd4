package parse

import (
	"strings"

	"rosepine/internal/casing"
	"rosepine/internal/format"
	"rosepine/internal/palette"
)

// MaxGroupRoles caps the number of roles a single placeholder can select.
const MaxGroupRoles = 3

// RoleGroup holds 1-3 roles captured from one placeholder:
//   - one role applies to every variant
//   - two roles are (dark, light)
//   - three roles map positionally onto the declared variants
type RoleGroup struct {
	roles [MaxGroupRoles]palette.Role
	n     int
}

// NewRoleGroup builds a group from roles, ignoring any beyond the third.
func NewRoleGroup(roles ...palette.Role) RoleGroup {
	var g RoleGroup
	for _, r := range roles {
		g.Push(r)
	}
	return g
}

// Push appends a role; it is a no-op once the group is full.
func (g *RoleGroup) Push(r palette.Role) {
	if g.n < MaxGroupRoles {
		g.roles[g.n] = r
		g.n++
	}
}

// Len returns the number of captured roles.
func (g RoleGroup) Len() int {
	return g.n
}

// Roles returns a copy of the captured roles.
func (g RoleGroup) Roles() []palette.Role {
	out := make([]palette.Role, g.n)
	copy(out, g.roles[:g.n])
	return out
}

// Resolve selects the role that applies to variant.
func (g RoleGroup) Resolve(v palette.Variant) palette.Role {
	switch g.n {
	case 1:
		return g.roles[0]
	case 2:
		if v.IsDark() {
			return g.roles[0]
		}
		return g.roles[1]
	case 3:
		return g.roles[int(v)]
	default:
		panic("parse: resolve on empty role group")
	}
}

// Color returns the resolved role's color in variant.
func (g RoleGroup) Color(v palette.Variant) palette.Color {
	return palette.Get(g.Resolve(v), v)
}

func (g RoleGroup) String() string {
	names := make([]string, g.n)
	for i, r := range g.roles[:g.n] {
		names[i] = r.String()
	}
	return strings.Join(names, "|")
}

// Kind distinguishes color placeholders from metadata placeholders.
type Kind int

const (
	KindRole Kind = iota
	KindMetadata
)

// Capture is one parsed placeholder. Start and End are rune offsets into the
// document; End is exclusive.
type Capture struct {
	Kind  Kind
	Start int
	End   int

	// KindRole
	Roles   RoleGroup
	Format  *format.Format
	Opacity *uint16

	// KindMetadata
	Meta palette.MetaKey
	Case *casing.Case
}
