package terraform

import (
	"fmt"
	"strings"
)

// Enums renders one value table per enumerated attribute, referenced by the
// schema's StringInSlice validation.
func (b *Builder) Enums() string {
	var sb strings.Builder
	for _, attr := range b.md.Attributes() {
		if !attr.ConstNeeded {
			continue
		}
		fmt.Fprintf(&sb, "\nvar %s = []string{\n", b.enumValuesName(attr))
		for _, name := range attr.Constants {
			fmt.Fprintf(&sb, "%s,\n", b.model(name))
		}
		sb.WriteString("}\n")
	}
	return sb.String()
}
