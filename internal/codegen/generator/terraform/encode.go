package terraform

import (
	"fmt"
	"strings"

	"github.com/nsxt-tools/policygen/internal/codegen/meta"
)

// SetObjAttrsInSchema renders the statements copying the model value obj into
// *schema.ResourceData d.
func (b *Builder) SetObjAttrsInSchema() string {
	var sb strings.Builder
	b.writeEncodeAttrs(&sb, b.md.Attrs, topScope)
	return sb.String()
}

func (b *Builder) writeEncodeAttrs(sb *strings.Builder, attrs []*meta.Attribute, s scope) {
	for _, attr := range attrs {
		if attr.IsObject() {
			b.writeEncodeObject(sb, attr, s)
			continue
		}
		b.writeSet(sb, attr.SchemaName, s.item+"."+attr.Name, s)
	}
}

func (b *Builder) writeSet(sb *strings.Builder, key, value string, s scope) {
	if s.nested {
		fmt.Fprintf(sb, "%s[\"%s\"] = %s\n", s.data, key, value)
		return
	}
	fmt.Fprintf(sb, "d.Set(\"%s\", %s)\n", key, value)
}

func (b *Builder) writeEncodeObject(sb *strings.Builder, attr *meta.Attribute, s scope) {
	v := localName(attr, s)
	inner := s.child(attr)
	field := s.item + "." + attr.Name

	fmt.Fprintf(sb, "var %sList []map[string]interface{}\n", v)
	switch {
	case attr.IsList:
		fmt.Fprintf(sb, "for _, %s := range %s {\n", inner.item, field)
	case attr.IsReference:
		fmt.Fprintf(sb, "if %s != nil {\n", field)
		fmt.Fprintf(sb, "%s := %s\n", inner.item, field)
	default:
		sb.WriteString("{\n")
		fmt.Fprintf(sb, "%s := %s\n", inner.item, field)
	}
	fmt.Fprintf(sb, "%s := make(map[string]interface{})\n", inner.data)
	if len(attr.Children) == 0 {
		fmt.Fprintf(sb, "_ = %s\n", inner.item)
	}
	b.writeEncodeAttrs(sb, attr.Children, inner)
	fmt.Fprintf(sb, "%sList = append(%sList, %s)\n", v, v, inner.data)
	sb.WriteString("}\n")

	b.writeSet(sb, attr.SchemaName, v+"List", s)
}
