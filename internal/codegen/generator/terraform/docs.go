package terraform

import (
	"fmt"
	"strings"

	"github.com/nsxt-tools/policygen/internal/codegen/meta"
)

// DocAttrs renders the "key = value" lines of the documentation example.
// Nested objects are left for the author to fill in.
func (b *Builder) DocAttrs() string {
	var sb strings.Builder
	for _, attr := range b.md.Attrs {
		if attr.IsObject() || attr.Computed {
			continue
		}
		fmt.Fprintf(&sb, "%s = %s\n", attr.SchemaName, b.docValue(attr))
	}
	return sb.String()
}

// DocAttrsReference renders the argument reference as a bulleted tree.
func (b *Builder) DocAttrsReference() string {
	var sb strings.Builder
	writeDocReference(&sb, b.md.Attrs, "")
	return sb.String()
}

func writeDocReference(sb *strings.Builder, attrs []*meta.Attribute, indent string) {
	for _, attr := range attrs {
		line := fmt.Sprintf("%s* `%s` - (%s) %s", indent, attr.SchemaName, docRequirement(attr), attr.Description)
		sb.WriteString(strings.TrimRight(line, " "))
		sb.WriteString("\n")
		if attr.IsObject() {
			writeDocReference(sb, attr.Children, indent+"  ")
		}
	}
}

func docRequirement(attr *meta.Attribute) string {
	switch {
	case attr.Computed:
		return "Computed"
	case attr.Required:
		return "Required"
	default:
		return "Optional"
	}
}
