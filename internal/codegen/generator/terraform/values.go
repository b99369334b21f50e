package terraform

import (
	"github.com/nsxt-tools/policygen/internal/codegen/meta"
)

// constValue returns the literal of the n-th constant (0-based) of attr's
// family. A family with a single member answers every n with that member.
func (b *Builder) constValue(attr *meta.Attribute, n int) (string, bool) {
	if !attr.ConstNeeded || len(attr.Constants) == 0 {
		return "", false
	}
	if n >= len(attr.Constants) {
		n = 0
	}
	return b.md.Constants.Lookup(attr.Constants[n])
}

// testValue selects the create or update value of a scalar attribute.
func (b *Builder) testValue(attr *meta.Attribute, create bool) (string, bool) {
	if attr.ConstNeeded {
		n := 1
		if create {
			n = 0
		}
		return b.constValue(attr, n)
	}
	kind, ok := scalarKinds[attr.Type]
	if !ok {
		return "", false
	}
	if create {
		return kind.Create, true
	}
	return kind.Update, true
}

// docValue selects the sample value shown in the documentation.
func (b *Builder) docValue(attr *meta.Attribute) string {
	var value string
	switch {
	case attr.ConstNeeded:
		value, _ = b.constValue(attr, 0)
	default:
		if kind, ok := scalarKinds[attr.Type]; ok {
			value = kind.Default
		} else {
			value = "FILL VALUE FOR " + attr.Type
		}
	}
	if value == "" {
		value = "FILL ENUM VALUE"
	}
	if attr.IsList {
		return "[" + value + "]"
	}
	return value
}
