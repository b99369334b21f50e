package terraform

import (
	"fmt"
	"strings"

	"github.com/nsxt-tools/policygen/internal/codegen/common"
	"github.com/nsxt-tools/policygen/internal/codegen/meta"
)

// GetAttrsFromSchema renders the statements reading every top-level attribute
// from *schema.ResourceData d into local variables.
func (b *Builder) GetAttrsFromSchema() string {
	var sb strings.Builder
	b.writeDecodeAttrs(&sb, b.md.Attrs, topScope)
	return sb.String()
}

// SetAttrsInObj renders the fields of the model struct literal built from the
// variables declared by GetAttrsFromSchema.
func (b *Builder) SetAttrsInObj() string {
	var sb strings.Builder
	b.writeObjFields(&sb, b.md.Attrs, topScope)
	return sb.String()
}

func (b *Builder) writeDecodeAttrs(sb *strings.Builder, attrs []*meta.Attribute, s scope) {
	for _, attr := range attrs {
		b.writeDecodeAttr(sb, attr, s)
	}
}

func (b *Builder) writeDecodeAttr(sb *strings.Builder, attr *meta.Attribute, s scope) {
	v := localName(attr, s)

	switch {
	case attr.IsObject():
		b.writeDecodeObject(sb, attr, s)

	case attr.IsList:
		helperType := common.NameToUpper(attr.Type)
		switch {
		case !s.nested && !b.opts.OrderedLists:
			fmt.Fprintf(sb, "%s := get%sListFromSchemaSet(d, \"%s\")\n", v, helperType, attr.SchemaName)
		case !s.nested:
			fmt.Fprintf(sb, "%s := interfaceListTo%sList(%s.([]interface{}))\n", v, helperType, s.getExpr(attr.SchemaName))
		case !b.opts.OrderedLists:
			fmt.Fprintf(sb, "%s := interfaceListTo%sList(%s.(*schema.Set).List())\n", v, helperType, s.getExpr(attr.SchemaName))
		default:
			fmt.Fprintf(sb, "%s := interfaceListTo%sList(%s.([]interface{}))\n", v, helperType, s.getExpr(attr.SchemaName))
		}

	default:
		kind := scalarKinds[attr.Type]
		if kind.StateType != attr.Type {
			// state keeps every integer as int
			fmt.Fprintf(sb, "%s := %s(%s.(%s))\n", v, attr.Type, s.getExpr(attr.SchemaName), kind.StateType)
			return
		}
		fmt.Fprintf(sb, "%s := %s.(%s)\n", v, s.getExpr(attr.SchemaName), attr.Type)
	}
}

func (b *Builder) writeDecodeObject(sb *strings.Builder, attr *meta.Attribute, s scope) {
	v := localName(attr, s)
	inner := s.child(attr)
	model := b.model(attr.ObjectType)

	fmt.Fprintf(sb, "%sList := %s.([]interface{})\n", v, s.getExpr(attr.SchemaName))
	switch {
	case attr.IsList:
		fmt.Fprintf(sb, "var %s []%s\n", v, model)
	case attr.IsReference:
		fmt.Fprintf(sb, "var %s *%s\n", v, model)
	default:
		fmt.Fprintf(sb, "var %s %s\n", v, model)
	}

	fmt.Fprintf(sb, "for _, %s := range %sList {\n", inner.item, v)
	fmt.Fprintf(sb, "%s := %s.(map[string]interface{})\n", inner.data, inner.item)
	if len(attr.Children) == 0 {
		fmt.Fprintf(sb, "_ = %s\n", inner.data)
	}
	b.writeDecodeAttrs(sb, attr.Children, inner)

	fmt.Fprintf(sb, "obj := %s{\n", model)
	b.writeObjFields(sb, attr.Children, inner)
	sb.WriteString("}\n")

	switch {
	case attr.IsList:
		fmt.Fprintf(sb, "%s = append(%s, obj)\n", v, v)
	case attr.IsReference:
		fmt.Fprintf(sb, "%s = &obj\n", v)
		sb.WriteString("break\n")
	default:
		fmt.Fprintf(sb, "%s = obj\n", v)
		sb.WriteString("break\n")
	}
	sb.WriteString("}\n")
}

func (b *Builder) writeObjFields(sb *strings.Builder, attrs []*meta.Attribute, s scope) {
	for _, attr := range attrs {
		v := localName(attr, s)
		if attr.IsReference && !attr.IsList && !attr.IsObject() {
			fmt.Fprintf(sb, "%s: &%s,\n", attr.Name, v)
			continue
		}
		fmt.Fprintf(sb, "%s: %s,\n", attr.Name, v)
	}
}
