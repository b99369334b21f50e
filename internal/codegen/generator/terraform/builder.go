// Package terraform synthesizes terraform-plugin-sdk code fragments from a
// loaded attribute tree: schema declarations, schema/model conversions, enum
// tables, acceptance test fixtures and documentation.
//
// Every builder walks the tree in declaration order and recurses into nested
// objects, so the fragments stay consistent with each other: the n-th "%s" of
// the test configuration matches the n-th Sprintf argument, every enum table
// referenced by the schema is emitted by Enums, and so on.
package terraform

import (
	"github.com/nsxt-tools/policygen/internal/codegen/common"
	"github.com/nsxt-tools/policygen/internal/codegen/meta"
)

// Options tunes the generated code.
type Options struct {
	// OrderedLists renders scalar lists as schema.TypeList instead of schema.TypeSet.
	OrderedLists bool
	// Descriptions copies field comments into the schema.
	Descriptions bool
	// ModelPackage is the package qualifier of the SDK model types.
	ModelPackage string
}

// DefaultOptions returns unordered lists, no schema descriptions and the "model" package.
func DefaultOptions() Options {
	return Options{ModelPackage: "model"}
}

// Builder produces fragments for one resource. The metadata is only read.
type Builder struct {
	md   *meta.Metadata
	opts Options
}

func New(md *meta.Metadata, opts Options) *Builder {
	if opts.ModelPackage == "" {
		opts.ModelPackage = "model"
	}
	return &Builder{md: md, opts: opts}
}

// scalarKind describes how a Go scalar is stored in terraform state.
type scalarKind struct {
	SchemaType string // schema.Type* constant
	StateType  string // Go type returned by d.Get
	Default    string // documentation sample
	Create     string // acceptance test create value
	Update     string // acceptance test update value
}

var scalarKinds = map[string]scalarKind{
	"string":  {SchemaType: "schema.TypeString", StateType: "string", Default: `"test"`, Create: `"test-create"`, Update: `"test-update"`},
	"int32":   {SchemaType: "schema.TypeInt", StateType: "int", Default: "2", Create: `"2"`, Update: `"5"`},
	"int64":   {SchemaType: "schema.TypeInt", StateType: "int", Default: "2", Create: `"2"`, Update: `"5"`},
	"bool":    {SchemaType: "schema.TypeBool", StateType: "bool", Default: "true", Create: `"true"`, Update: `"false"`},
	"float64": {SchemaType: "schema.TypeFloat", StateType: "float64", Default: "2.5", Create: `"2.5"`, Update: `"5.5"`},
}

func (b *Builder) listSchemaType() string {
	if b.opts.OrderedLists {
		return "schema.TypeList"
	}
	return "schema.TypeSet"
}

func (b *Builder) model(typeName string) string {
	return b.opts.ModelPackage + "." + typeName
}

// enumValuesName is the variable holding the allowed values of attr.
func (b *Builder) enumValuesName(attr *meta.Attribute) string {
	return common.LowercaseFirst(attr.Owner) + attr.Name + "Values"
}

// accTestAttributesName is the acceptance test map of create or update values.
func (b *Builder) accTestAttributesName(create bool) string {
	step := "Update"
	if create {
		step = "Create"
	}
	return "accTestPolicy" + b.md.Resource + step + "Attributes"
}

// scope names the variables visible to code generated for one tree level.
// At the top level values come from d and obj; inside a nested object they
// come from the loop-local item and data.
type scope struct {
	nested bool
	item   string
	data   string
}

var topScope = scope{item: "obj"}

func (s scope) child(attr *meta.Attribute) scope {
	if !s.nested {
		return scope{nested: true, item: "item", data: "data"}
	}
	base := common.VarName(attr.Name)
	return scope{nested: true, item: base + "Item", data: base + "Data"}
}

// reservedLocals are already bound where decoded values are declared: the
// parameters, locals and imported packages of the templated functions, and
// the names the builders use for struct literals and loop variables.
var reservedLocals = map[string]bool{
	"d": true, "m": true, "id": true, "err": true, "obj": true,
	"connector": true, "client": true, "revision": true,
	"displayName": true, "description": true, "tags": true,
	"item": true, "data": true,
	"schema": true, "validation": true, "model": true, "infra": true, "fmt": true, "log": true,
}

// localName is the variable holding the decoded value of attr in scope s.
// Names that would clash with a reserved identifier or with the loop
// variables of s get a "Value" suffix.
func localName(attr *meta.Attribute, s scope) string {
	v := common.VarName(attr.Name)
	if reservedLocals[v] || v == s.item || v == s.data {
		v += "Value"
	}
	return v
}

// getExpr reads a schema key in this scope.
func (s scope) getExpr(key string) string {
	if s.nested {
		return s.data + `["` + key + `"]`
	}
	return `d.Get("` + key + `")`
}
