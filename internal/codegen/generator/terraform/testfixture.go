package terraform

import (
	"fmt"
	"strings"

	"github.com/nsxt-tools/policygen/internal/codegen/meta"
)

const testConfigIndent = "  "

// TestAttrs renders the HCL body of the acceptance test configuration. Every
// value is a fmt verb filled by the matching TestAttrsSprintf argument.
func (b *Builder) TestAttrs(requiredOnly bool) string {
	var sb strings.Builder
	b.writeTestAttrs(&sb, b.md.Attrs, requiredOnly, testConfigIndent)
	return sb.String()
}

// TestAttrsSprintf renders the fmt.Sprintf arguments of TestAttrs, in the
// order of the verbs.
func (b *Builder) TestAttrsSprintf(requiredOnly bool) string {
	var sb strings.Builder
	b.writeTestAttrsSprintf(&sb, b.md.Attrs, requiredOnly)
	return sb.String()
}

// inTestConfig reports whether attr is set by the test configuration.
// Computed attributes are never configured; the required-only configuration
// drops whole optional subtrees.
func inTestConfig(attr *meta.Attribute, requiredOnly bool) bool {
	if attr.Computed {
		return false
	}
	return !requiredOnly || attr.Required
}

func (b *Builder) writeTestAttrs(sb *strings.Builder, attrs []*meta.Attribute, requiredOnly bool, indent string) {
	for _, attr := range attrs {
		if !inTestConfig(attr, requiredOnly) {
			continue
		}
		if attr.IsObject() {
			fmt.Fprintf(sb, "\n%s%s {\n", indent, attr.SchemaName)
			b.writeTestAttrs(sb, attr.Children, requiredOnly, indent+testConfigIndent)
			fmt.Fprintf(sb, "%s}\n\n", indent)
			continue
		}

		verb := "%s"
		if attr.Type == "string" {
			verb = `"%s"`
		}
		if attr.IsList {
			verb = "[" + verb + "]"
		}
		fmt.Fprintf(sb, "%s%s = %s\n", indent, attr.SchemaName, verb)
	}
}

func (b *Builder) writeTestAttrsSprintf(sb *strings.Builder, attrs []*meta.Attribute, requiredOnly bool) {
	for _, attr := range attrs {
		if !inTestConfig(attr, requiredOnly) {
			continue
		}
		if attr.IsObject() {
			b.writeTestAttrsSprintf(sb, attr.Children, requiredOnly)
			continue
		}
		fmt.Fprintf(sb, ", attrMap[\"%s\"]", attr.SchemaName)
	}
}

// TestAttrsMap renders the entries of the create or update value map. Keys
// are schema names; an attribute sharing the name of an earlier one reuses
// its value.
func (b *Builder) TestAttrsMap(create bool) string {
	var sb strings.Builder
	seen := make(map[string]bool)
	for _, attr := range b.md.Attributes() {
		if attr.IsObject() || attr.Computed || seen[attr.SchemaName] {
			continue
		}
		value, ok := b.testValue(attr, create)
		if !ok {
			continue
		}
		seen[attr.SchemaName] = true
		fmt.Fprintf(&sb, "\"%s\": %s,\n", attr.SchemaName, value)
	}
	return sb.String()
}

// CheckAttrs renders the state assertions of the create or update step.
// Paths are fully qualified: "rule.0.scope.0.name". Every segment is
// resolved through the name map.
func (b *Builder) CheckAttrs(create bool) string {
	var sb strings.Builder
	b.writeCheckAttrs(&sb, b.md.Attrs, "", b.accTestAttributesName(create))
	return sb.String()
}

func (b *Builder) writeCheckAttrs(sb *strings.Builder, attrs []*meta.Attribute, prefix, values string) {
	for _, attr := range attrs {
		key := b.md.SchemaNameOf(attr)
		path := prefix + key
		expected := fmt.Sprintf("%s[\"%s\"]", values, key)

		switch {
		case attr.IsObject():
			fmt.Fprintf(sb, "resource.TestCheckResourceAttr(testResourceName, \"%s.#\", \"1\"),\n", path)
			b.writeCheckAttrs(sb, attr.Children, path+".0.", values)
		case attr.Computed && attr.IsList:
			fmt.Fprintf(sb, "resource.TestCheckResourceAttrSet(testResourceName, \"%s.#\"),\n", path)
		case attr.Computed:
			fmt.Fprintf(sb, "resource.TestCheckResourceAttrSet(testResourceName, \"%s\"),\n", path)
		case attr.IsList && b.opts.OrderedLists:
			fmt.Fprintf(sb, "resource.TestCheckResourceAttr(testResourceName, \"%s.0\", %s),\n", path, expected)
		case attr.IsList:
			fmt.Fprintf(sb, "resource.TestCheckTypeSetElemAttr(testResourceName, \"%s.*\", %s),\n", path, expected)
		default:
			fmt.Fprintf(sb, "resource.TestCheckResourceAttr(testResourceName, \"%s\", %s),\n", path, expected)
		}
	}
}
