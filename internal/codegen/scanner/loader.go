package scanner

import (
	"fmt"
	"go/token"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/nsxt-tools/policygen/internal/codegen/common"
	cgerrors "github.com/nsxt-tools/policygen/internal/codegen/errors"
	"github.com/nsxt-tools/policygen/internal/codegen/meta"
)

const (
	// DefaultCommonBlockStart opens the block of fields shared by all policy resources.
	DefaultCommonBlockStart = "Links []ResourceLink"
	// DefaultCommonBlockEnd is the last field of the shared block.
	DefaultCommonBlockEnd = "Overridden *bool"
)

// Options controls how declarations are read.
type Options struct {
	CommonBlockStart string
	CommonBlockEnd   string
	Namer            common.Namer
	Logger           *slog.Logger
}

// DefaultOptions returns the options matching the NSX-T SDK model file.
func DefaultOptions() Options {
	return Options{
		CommonBlockStart: DefaultCommonBlockStart,
		CommonBlockEnd:   DefaultCommonBlockEnd,
		Namer:            common.DefaultNamer,
	}
}

type stage int

const (
	stageIdle stage = iota
	stageCollect
	stageSkip
	stageDone
)

// Loader builds attribute trees from a lexed declarations source.
type Loader struct {
	tokens  []Token
	opts    Options
	logger  *slog.Logger
	md      *meta.Metadata
	loaded  map[string][]*meta.Attribute
	loading map[string]bool
}

// NewLoader lexes src once; every type load scans the same tokens.
func NewLoader(src []byte, opts Options) (*Loader, error) {
	tokens, err := Lex(src)
	if err != nil {
		return nil, err
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Loader{
		tokens: tokens,
		opts:   opts,
		logger: logger,
	}, nil
}

// LoadFile reads the declarations file at path and loads resource from it.
func LoadFile(path, resource string, opts Options) (*meta.Metadata, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read declarations %s: %w", path, err)
	}
	l, err := NewLoader(src, opts)
	if err != nil {
		return nil, fmt.Errorf("read declarations %s: %w", path, err)
	}
	return l.Load(resource)
}

// Load builds fresh metadata for resource, recursing into nested object types.
func (l *Loader) Load(resource string) (*meta.Metadata, error) {
	l.md = meta.New(resource)
	l.loaded = make(map[string][]*meta.Attribute)
	l.loading = make(map[string]bool)

	attrs, err := l.loadType(resource, "")
	if err != nil {
		return nil, err
	}
	l.md.Attrs = attrs

	l.logger.Debug("Loaded resource metadata",
		"resource", resource,
		"attributes", len(l.md.Attributes()),
		"constants", l.md.Constants.Len())
	return l.md, nil
}

// loadType collects the fields of typeName. parent names the attribute that
// refers to the type and is empty for the root.
func (l *Loader) loadType(typeName, parent string) ([]*meta.Attribute, error) {
	if attrs, ok := l.loaded[typeName]; ok {
		return attrs, nil
	}
	l.loading[typeName] = true
	defer delete(l.loading, typeName)

	var (
		attrs       []*meta.Attribute
		description []string
		found       bool
		st          = stageIdle
	)

	for _, tok := range l.tokens {
		if tok.Kind == TokenConst && strings.HasPrefix(tok.Name, typeName) {
			l.md.Constants.Add(tok.Name, tok.Value, tok.Line)
			continue
		}

		switch st {
		case stageIdle:
			if tok.Kind == TokenStructStart && tok.Name == typeName {
				st = stageCollect
				found = true
			}

		case stageSkip:
			switch {
			case tok.Kind == TokenField && l.isMarker(tok, l.opts.CommonBlockEnd):
				st = stageCollect
			case tok.Kind == TokenStructEnd:
				st = stageDone
			}

		case stageCollect:
			switch tok.Kind {
			case TokenStructEnd:
				st = stageDone
			case TokenComment:
				description = append(description, tok.Value)
			case TokenBlank:
				description = nil
			case TokenField:
				if l.isMarker(tok, l.opts.CommonBlockStart) {
					st = stageSkip
					description = nil
					continue
				}
				attr, err := l.parseField(typeName, parent, tok)
				if err != nil {
					return nil, err
				}
				attr.Description = strings.Join(description, " ")
				description = nil
				attrs = append(attrs, attr)
			default:
				return nil, &cgerrors.MalformedFieldError{Type: typeName, Line: tok.Line, Text: tok.Text}
			}
		}
	}

	if !found {
		return nil, &cgerrors.MetadataNotFoundError{Type: typeName, Parent: parent}
	}
	if err := checkSchemaNames(typeName, attrs); err != nil {
		return nil, err
	}
	l.assignConstants(typeName, attrs)
	l.loaded[typeName] = attrs

	// nested types are expanded once the enclosing declaration is complete
	for _, attr := range attrs {
		if !attr.IsObject() {
			continue
		}
		if l.loading[attr.ObjectType] {
			l.logger.Warn("Cyclic type reference, nested attributes not expanded",
				"type", attr.ObjectType, "attribute", attr.Name)
			continue
		}
		children, err := l.loadType(attr.ObjectType, attr.Name)
		if err != nil {
			return nil, fmt.Errorf("load %s.%s: %w", typeName, attr.Name, err)
		}
		attr.Children = children
	}

	l.logger.Debug("Loaded type", "type", typeName, "parent", parent, "fields", len(attrs))
	return attrs, nil
}

func (l *Loader) isMarker(tok Token, marker string) bool {
	return marker != "" && strings.Join(tok.Fields, " ") == marker
}

// parseField turns "<identifier> <type> [`tag`]" into an attribute record.
func (l *Loader) parseField(typeName, parent string, tok Token) (*meta.Attribute, error) {
	fields := tok.Fields
	tagged := len(fields) > 2 && strings.HasPrefix(fields[2], "`") && strings.HasSuffix(fields[len(fields)-1], "`")
	if (len(fields) != 2 && !tagged) || !token.IsIdentifier(fields[0]) {
		return nil, &cgerrors.MalformedFieldError{Type: typeName, Line: tok.Line, Text: tok.Text}
	}

	name, fullType := fields[0], fields[1]
	attr := &meta.Attribute{
		Name:   name,
		Parent: parent,
		Owner:  typeName,
		Line:   tok.Line,
	}
	if strings.HasPrefix(fullType, "*") {
		attr.IsReference = true
		fullType = fullType[1:]
	}
	if strings.HasPrefix(fullType, "[]") {
		attr.IsList = true
		fullType = strings.TrimPrefix(fullType[2:], "*")
	}
	if fullType == "" {
		return nil, &cgerrors.MalformedFieldError{Type: typeName, Line: tok.Line, Text: tok.Text}
	}
	attr.Type = fullType
	attr.Required = !attr.IsReference && !attr.IsList

	attr.SchemaName = l.opts.Namer.ToLowerSeparated(name)
	if !meta.IsScalar(fullType) {
		attr.SchemaName = common.Singular(attr.SchemaName)
		attr.ObjectType = fullType
	}

	l.md.NameMap[meta.NameKey(typeName, name)] = attr.SchemaName
	return attr, nil
}

// assignConstants gives each string attribute of typeName its constant family.
// The family prefix is "<Type>_<ATTR>_"; a constant matching several siblings
// joins every one of them, in source order.
func (l *Loader) assignConstants(typeName string, attrs []*meta.Attribute) {
	prefixes := make(map[*meta.Attribute]string)
	for _, attr := range attrs {
		if attr.Type == "string" && !attr.IsObject() {
			prefixes[attr] = typeName + "_" + l.opts.Namer.ToUpperSeparated(attr.Name) + "_"
		}
	}
	if len(prefixes) == 0 {
		return
	}

	for _, c := range l.md.Constants.WithPrefix(typeName + "_") {
		for _, attr := range attrs {
			p, ok := prefixes[attr]
			if !ok || !strings.HasPrefix(c.Name, p) {
				continue
			}
			attr.Constants = append(attr.Constants, c.Name)
			attr.ConstNeeded = true
		}
	}
}

func checkSchemaNames(typeName string, attrs []*meta.Attribute) error {
	seen := make(map[string]string, len(attrs))
	for _, attr := range attrs {
		if first, ok := seen[attr.SchemaName]; ok {
			return &cgerrors.DuplicateSchemaNameError{
				Owner:      typeName,
				SchemaName: attr.SchemaName,
				First:      first,
				Second:     attr.Name,
			}
		}
		seen[attr.SchemaName] = attr.Name
	}
	return nil
}
