package meta

import (
	"sort"
	"strings"
)

// ScalarTypes are the field types handled as terraform primitives. Any other
// type is a nested object loaded from the declarations.
var ScalarTypes = map[string]bool{
	"string":  true,
	"int32":   true,
	"int64":   true,
	"bool":    true,
	"float64": true,
}

// IsScalar reports whether a base type is a recognized scalar.
func IsScalar(typeName string) bool {
	return ScalarTypes[typeName]
}

// Attribute is one declared field of a modeled type. Children holds the
// fields of ObjectType; the slice is shared when several attributes refer to
// the same nested type, and the shared records keep the Parent of the first
// attribute that loaded them.
type Attribute struct {
	Name        string       `json:"name" yaml:"name" toml:"name"`
	Parent      string       `json:"parent,omitempty" yaml:"parent,omitempty" toml:"parent,omitempty"`
	Owner       string       `json:"owner" yaml:"owner" toml:"owner"`
	Description string       `json:"description,omitempty" yaml:"description,omitempty" toml:"description,omitempty"`
	Type        string       `json:"type" yaml:"type" toml:"type"`
	IsList      bool         `json:"isList" yaml:"isList" toml:"isList"`
	IsReference bool         `json:"isReference" yaml:"isReference" toml:"isReference"`
	Required    bool         `json:"required" yaml:"required" toml:"required"`
	Computed    bool         `json:"computed" yaml:"computed" toml:"computed"`
	SchemaName  string       `json:"schemaName" yaml:"schemaName" toml:"schemaName"`
	ObjectType  string       `json:"objectType,omitempty" yaml:"objectType,omitempty" toml:"objectType,omitempty"`
	ConstNeeded bool         `json:"constNeeded" yaml:"constNeeded" toml:"constNeeded"`
	Constants   []string     `json:"constants,omitempty" yaml:"constants,omitempty" toml:"constants,omitempty"`
	Line        int          `json:"line" yaml:"line" toml:"line"`
	Children    []*Attribute `json:"children,omitempty" yaml:"children,omitempty" toml:"children,omitempty"`
}

// IsObject reports whether the attribute is a nested object.
func (a *Attribute) IsObject() bool { return a.ObjectType != "" }

// IsScalarList reports whether the attribute is a list of scalars.
func (a *Attribute) IsScalarList() bool { return a.IsList && a.ObjectType == "" }

// Metadata is the run-scoped result of loading a resource type.
type Metadata struct {
	Resource  string            `json:"resource" yaml:"resource" toml:"resource"`
	Attrs     []*Attribute      `json:"attributes" yaml:"attributes" toml:"attributes"`
	Constants *Constants        `json:"-" yaml:"-" toml:"-"`
	NameMap   map[string]string `json:"-" yaml:"-" toml:"-"` // "Owner.Name" -> schema name
}

// New returns empty metadata for resource.
func New(resource string) *Metadata {
	return &Metadata{
		Resource:  resource,
		Constants: NewConstants(),
		NameMap:   make(map[string]string),
	}
}

// NameKey is the NameMap key of the field name declared in owner.
func NameKey(owner, name string) string {
	return owner + "." + name
}

// SchemaNameOf resolves the schema name of attr through the name map. Records
// built without a loader fall back to their own SchemaName.
func (m *Metadata) SchemaNameOf(attr *Attribute) string {
	if name, ok := m.NameMap[NameKey(attr.Owner, attr.Name)]; ok {
		return name
	}
	return attr.SchemaName
}

// Attributes returns every attribute record once, in pre-order. Subtrees
// shared by several attributes are visited under their first parent only.
func (m *Metadata) Attributes() []*Attribute {
	var out []*Attribute
	seen := make(map[*Attribute]bool)
	var visit func(attrs []*Attribute)
	visit = func(attrs []*Attribute) {
		for _, a := range attrs {
			if seen[a] {
				continue
			}
			seen[a] = true
			out = append(out, a)
			visit(a.Children)
		}
	}
	visit(m.Attrs)
	return out
}

// Constant is a named constant from the declarations.
type Constant struct {
	Name  string `json:"name" yaml:"name" toml:"name"`
	Value string `json:"value" yaml:"value" toml:"value"` // Raw literal, quotes included
	Line  int    `json:"line" yaml:"line" toml:"line"`
}

// Constants is an ordered constant table.
type Constants struct {
	byName map[string]Constant
}

func NewConstants() *Constants {
	return &Constants{byName: make(map[string]Constant)}
}

// Add records a constant. The first definition of a name wins.
func (c *Constants) Add(name, value string, line int) {
	if _, ok := c.byName[name]; ok {
		return
	}
	c.byName[name] = Constant{Name: name, Value: value, Line: line}
}

// Lookup returns the literal value of a constant.
func (c *Constants) Lookup(name string) (string, bool) {
	k, ok := c.byName[name]
	return k.Value, ok
}

func (c *Constants) Len() int { return len(c.byName) }

// All returns the constants in source order.
func (c *Constants) All() []Constant {
	out := make([]Constant, 0, len(c.byName))
	for _, k := range c.byName {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Line != out[j].Line {
			return out[i].Line < out[j].Line
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// WithPrefix returns the constants whose name starts with prefix, in source order.
func (c *Constants) WithPrefix(prefix string) []Constant {
	var out []Constant
	for _, k := range c.All() {
		if strings.HasPrefix(k.Name, prefix) {
			out = append(out, k)
		}
	}
	return out
}
