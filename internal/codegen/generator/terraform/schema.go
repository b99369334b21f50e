package terraform

import (
	"fmt"
	"strings"

	"github.com/nsxt-tools/policygen/internal/codegen/meta"
)

// SchemaAttrs renders the entries of the resource's map[string]*schema.Schema.
func (b *Builder) SchemaAttrs() string {
	var sb strings.Builder
	b.writeSchemaAttrs(&sb, b.md.Attrs)
	return sb.String()
}

func (b *Builder) writeSchemaAttrs(sb *strings.Builder, attrs []*meta.Attribute) {
	for _, attr := range attrs {
		b.writeSchemaAttr(sb, attr)
	}
}

func (b *Builder) writeSchemaAttr(sb *strings.Builder, attr *meta.Attribute) {
	kind := scalarKinds[attr.Type]

	fmt.Fprintf(sb, "\"%s\": {\n", attr.SchemaName)
	switch {
	case attr.IsObject():
		sb.WriteString("Type:        schema.TypeList,\n")
	case attr.IsList:
		fmt.Fprintf(sb, "Type:        %s,\n", b.listSchemaType())
	default:
		fmt.Fprintf(sb, "Type:        %s,\n", kind.SchemaType)
	}

	if b.opts.Descriptions && attr.Description != "" {
		fmt.Fprintf(sb, "Description: %q,\n", attr.Description)
	}

	var validation string
	if attr.ConstNeeded {
		validation = fmt.Sprintf("ValidateFunc: validation.StringInSlice(%s, false),\n", b.enumValuesName(attr))
	}

	switch {
	case attr.IsObject():
		if !attr.IsList {
			sb.WriteString("MaxItems:    1,\n")
		}
		sb.WriteString("Elem: &schema.Resource{\n")
		sb.WriteString("Schema: map[string]*schema.Schema{\n")
		b.writeSchemaAttrs(sb, attr.Children)
		sb.WriteString("},\n")
		sb.WriteString("},\n")
	case attr.IsList:
		sb.WriteString("Elem: &schema.Schema{\n")
		fmt.Fprintf(sb, "Type:        %s,\n", kind.SchemaType)
		sb.WriteString(validation)
		sb.WriteString("},\n")
	default:
		sb.WriteString(validation)
	}

	switch {
	case attr.Computed:
		sb.WriteString("Computed:    true,\n")
	case attr.Required:
		sb.WriteString("Required:    true,\n")
	default:
		sb.WriteString("Optional:    true,\n")
	}
	sb.WriteString("},\n")
}
