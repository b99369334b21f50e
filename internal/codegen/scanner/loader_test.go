package scanner_test

import (
	"bufio"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cgerrors "github.com/nsxt-tools/policygen/internal/codegen/errors"
	"github.com/nsxt-tools/policygen/internal/codegen/meta"
	"github.com/nsxt-tools/policygen/internal/codegen/scanner"
)

const declarations = `package model

const Widget_MODE_ACTIVE = "ACTIVE"
const Widget_MODE_STANDBY = "STANDBY"
const Widget_MODE_EXTENDED_ON = "ON"
const Widget_MODE_EXTENDED_OFF = "OFF"
const WidgetRule_ACTION_ALLOW = "ALLOW"

type Widget struct {
	// Name of the widget
	// shown in the UI
	Name string
	// Dropped by the blank line

	Count *int32
	Tags []string
	// Operating mode
	Mode *string
	ModeExtended *string
	Rules []WidgetRule
	Primary *WidgetRule
	Peer *WidgetPeer
}

type WidgetRule struct {
	Action *string
	Ports []int64
}

type WidgetPeer struct {
	Address string
	Back *WidgetPeer
}
`

func load(t *testing.T, src, resource string) (*meta.Metadata, error) {
	t.Helper()
	l, err := scanner.NewLoader([]byte(src), scanner.DefaultOptions())
	require.NoError(t, err)
	return l.Load(resource)
}

func byName(attrs []*meta.Attribute, name string) *meta.Attribute {
	for _, a := range attrs {
		if a.Name == name {
			return a
		}
	}
	return nil
}

func TestLoadWidget(t *testing.T) {
	md, err := load(t, declarations, "Widget")
	require.NoError(t, err)
	require.Len(t, md.Attrs, 8)

	name := byName(md.Attrs, "Name")
	assert.Equal(t, &meta.Attribute{
		Name: "Name", Owner: "Widget", Type: "string", Required: true,
		SchemaName: "name", Description: "Name of the widget shown in the UI", Line: 12,
	}, name)

	count := byName(md.Attrs, "Count")
	assert.True(t, count.IsReference)
	assert.False(t, count.Required)
	assert.Equal(t, "int32", count.Type)
	assert.Empty(t, count.Description, "blank line resets the comment")

	tags := byName(md.Attrs, "Tags")
	assert.True(t, tags.IsList)
	assert.True(t, tags.IsScalarList())
	assert.False(t, tags.Required)

	mode := byName(md.Attrs, "Mode")
	assert.Equal(t, "Operating mode", mode.Description)
	assert.True(t, mode.ConstNeeded)
	assert.Equal(t, []string{
		"Widget_MODE_ACTIVE", "Widget_MODE_STANDBY", "Widget_MODE_EXTENDED_ON", "Widget_MODE_EXTENDED_OFF",
	}, mode.Constants, "a family prefix also matches the longer sibling family")

	extended := byName(md.Attrs, "ModeExtended")
	assert.True(t, extended.ConstNeeded)
	assert.Equal(t, []string{"Widget_MODE_EXTENDED_ON", "Widget_MODE_EXTENDED_OFF"}, extended.Constants)

	rules := byName(md.Attrs, "Rules")
	assert.Equal(t, "rule", rules.SchemaName)
	assert.Equal(t, "WidgetRule", rules.ObjectType)
	require.Len(t, rules.Children, 2)
	action := rules.Children[0]
	assert.Equal(t, "Rules", action.Parent)
	assert.Equal(t, "WidgetRule", action.Owner)
	assert.Equal(t, []string{"WidgetRule_ACTION_ALLOW"}, action.Constants)
	assert.Equal(t, "int64", rules.Children[1].Type)

	assert.Equal(t, "rule", md.NameMap["Widget.Rules"])
	assert.Equal(t, "action", md.NameMap["WidgetRule.Action"])
	assert.Equal(t, "action", md.SchemaNameOf(action))
	assert.Equal(t, 5, md.Constants.Len())
}

func TestLoadSharedAndCyclicTypes(t *testing.T) {
	md, err := load(t, declarations, "Widget")
	require.NoError(t, err)

	rules := byName(md.Attrs, "Rules")
	primary := byName(md.Attrs, "Primary")
	require.Len(t, primary.Children, 2)
	assert.Same(t, rules.Children[0], primary.Children[0], "a nested type is loaded once")
	assert.Equal(t, "Rules", primary.Children[0].Parent, "shared records keep their first container")

	peer := byName(md.Attrs, "Peer")
	require.Len(t, peer.Children, 2)
	back := peer.Children[1]
	assert.Equal(t, "WidgetPeer", back.ObjectType)
	assert.Empty(t, back.Children, "cyclic reference is not expanded")

	// 8 top-level + 2 rule fields + 2 peer fields, shared records counted once
	assert.Len(t, md.Attributes(), 12)
}

func TestLoadOverlappingConstantFamilies(t *testing.T) {
	src := `const W_MODE_EXTENDED_ON = "ON"
const W_KIND_A = "A"

type W struct {
	Mode string
	ModeExtended string
	Kind string
}
`
	md, err := load(t, src, "W")
	require.NoError(t, err)

	mode := byName(md.Attrs, "Mode")
	assert.True(t, mode.ConstNeeded, "the longer family also belongs to the shorter prefix")
	assert.Equal(t, []string{"W_MODE_EXTENDED_ON"}, mode.Constants)
	assert.Equal(t, []string{"W_MODE_EXTENDED_ON"}, byName(md.Attrs, "ModeExtended").Constants)
	assert.Equal(t, []string{"W_KIND_A"}, byName(md.Attrs, "Kind").Constants)
}

func TestLoadSkipsCommonBlock(t *testing.T) {
	src := `type PolicyWidget struct {
	Links []ResourceLink
	Schema *string
	DisplayName *string
	Tags []Tag
	Overridden *bool
	// Kept
	Size *int64
}
`
	md, err := load(t, src, "PolicyWidget")
	require.NoError(t, err)
	require.Len(t, md.Attrs, 1)
	assert.Equal(t, "Size", md.Attrs[0].Name)
	assert.Equal(t, "Kept", md.Attrs[0].Description)
}

func TestLoadErrors(t *testing.T) {
	t.Run("missing root type", func(t *testing.T) {
		_, err := load(t, declarations, "Gadget")
		require.Error(t, err)
		assert.True(t, errors.Is(err, cgerrors.ErrMetadataNotFound))

		var notFound *cgerrors.MetadataNotFoundError
		require.True(t, errors.As(err, &notFound))
		assert.Equal(t, "Gadget", notFound.Type)
		assert.Empty(t, notFound.Parent)
	})

	t.Run("missing nested type", func(t *testing.T) {
		src := "type Widget struct {\n\tPeer *Remote\n}\n"
		_, err := load(t, src, "Widget")
		require.Error(t, err)

		var notFound *cgerrors.MetadataNotFoundError
		require.True(t, errors.As(err, &notFound))
		assert.Equal(t, "Remote", notFound.Type)
		assert.Equal(t, "Peer", notFound.Parent)
		assert.Contains(t, err.Error(), "load Widget.Peer")
	})

	t.Run("malformed field", func(t *testing.T) {
		src := "type Widget struct {\n\tName string\n\tCount *int32 extra\n}\n"
		_, err := load(t, src, "Widget")
		require.Error(t, err)
		assert.True(t, errors.Is(err, cgerrors.ErrMalformedField))

		var malformed *cgerrors.MalformedFieldError
		require.True(t, errors.As(err, &malformed))
		assert.Equal(t, 3, malformed.Line)
	})

	t.Run("embedded field", func(t *testing.T) {
		src := "type Widget struct {\n\tBase\n}\n"
		_, err := load(t, src, "Widget")
		assert.True(t, errors.Is(err, cgerrors.ErrMalformedField))
	})

	t.Run("duplicate schema name", func(t *testing.T) {
		src := "type Widget struct {\n\tPeers []Peer\n\tPeer *Peer\n}\ntype Peer struct {\n\tName string\n}\n"
		_, err := load(t, src, "Widget")
		require.Error(t, err)
		assert.True(t, errors.Is(err, cgerrors.ErrDuplicateSchemaName))

		var dup *cgerrors.DuplicateSchemaNameError
		require.True(t, errors.As(err, &dup))
		assert.Equal(t, "peer", dup.SchemaName)
		assert.Equal(t, "Peers", dup.First)
		assert.Equal(t, "Peer", dup.Second)
	})
}

func TestLoadTaggedFields(t *testing.T) {
	src := "type Widget struct {\n\tName string `json:\"name\"`\n\tWeight *float64 `json:\"weight,omitempty\"`\n}\n"
	md, err := load(t, src, "Widget")
	require.NoError(t, err)
	require.Len(t, md.Attrs, 2)
	assert.Equal(t, "float64", md.Attrs[1].Type)
	assert.Empty(t, md.Attrs[1].ObjectType)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ModelPackageTypes.go")
	require.NoError(t, os.WriteFile(path, []byte(declarations), 0o644))

	md, err := scanner.LoadFile(path, "WidgetRule", scanner.DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, "WidgetRule", md.Resource)
	assert.Len(t, md.Attrs, 2)

	_, err = scanner.LoadFile(filepath.Join(t.TempDir(), "missing.go"), "Widget", scanner.DefaultOptions())
	assert.Error(t, err)
}

func TestLoadLineTooLong(t *testing.T) {
	src := "type Widget struct {\n\t// " + strings.Repeat("x", 2*1024*1024) + "\n\tName string\n}\n"
	_, err := scanner.NewLoader([]byte(src), scanner.DefaultOptions())
	require.Error(t, err)
	assert.ErrorIs(t, err, bufio.ErrTooLong)
	assert.False(t, errors.Is(err, cgerrors.ErrMetadataNotFound))
}
