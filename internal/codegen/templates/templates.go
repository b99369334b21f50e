// Package templates holds the default artifact templates and resolves
// per-file overrides from a user directory.
package templates

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	cgerrors "github.com/nsxt-tools/policygen/internal/codegen/errors"
)

//go:embed files/*
var embedded embed.FS

// Variant selects the family of artifacts to generate.
type Variant string

const (
	VariantResource Variant = "resource"
	VariantData     Variant = "data"
)

// ParseVariant accepts "resource" and "data".
func ParseVariant(s string) (Variant, error) {
	switch Variant(strings.ToLower(strings.TrimSpace(s))) {
	case VariantResource:
		return VariantResource, nil
	case VariantData:
		return VariantData, nil
	default:
		return "", fmt.Errorf("unknown variant %q (want resource or data)", s)
	}
}

// Artifact pairs a template with the output file it produces. Output is a
// printf pattern taking the lower-separated resource name.
type Artifact struct {
	Template string
	Output   string
}

// GoSource reports whether the output is Go code.
func (a Artifact) GoSource() bool {
	return strings.HasSuffix(a.Output, ".go")
}

// FileName is the output file name for resourceLower.
func (a Artifact) FileName(resourceLower string) string {
	return fmt.Sprintf(a.Output, resourceLower)
}

var artifacts = map[Variant][]Artifact{
	VariantResource: {
		{Template: "resource_nsxt_policy_template", Output: "resource_nsxt_policy_%s.go"},
		{Template: "resource_nsxt_policy_test_template", Output: "resource_nsxt_policy_%s_test.go"},
		{Template: "resource_nsxt_policy_doc_template", Output: "policy_%s.html.markdown"},
	},
	VariantData: {
		{Template: "data_source_nsxt_policy_template", Output: "data_source_nsxt_policy_%s.go"},
		{Template: "data_source_nsxt_policy_test_template", Output: "data_source_nsxt_policy_%s_test.go"},
		{Template: "data_source_nsxt_policy_doc_template", Output: "policy_%s.html.markdown"},
	},
}

// Artifacts lists the artifacts of a variant in generation order.
func Artifacts(v Variant) []Artifact {
	return append([]Artifact(nil), artifacts[v]...)
}

// Source reads templates, preferring files in an override directory.
type Source struct {
	override fs.FS
	defaults fs.FS
}

// NewSource returns a Source over the embedded templates. A non-empty dir
// overrides templates by file name.
func NewSource(dir string) *Source {
	defaults, err := fs.Sub(embedded, "files")
	if err != nil {
		panic(err)
	}
	s := &Source{defaults: defaults}
	if dir != "" {
		s.override = os.DirFS(dir)
	}
	return s
}

// Read returns the text of the named template.
func (s *Source) Read(name string) (string, error) {
	if s.override != nil {
		data, err := fs.ReadFile(s.override, name)
		switch {
		case err == nil:
			return string(data), nil
		case !errors.Is(err, fs.ErrNotExist):
			return "", &cgerrors.TemplateReadError{Template: name, Err: err}
		}
	}
	data, err := fs.ReadFile(s.defaults, name)
	if err != nil {
		return "", &cgerrors.TemplateReadError{Template: name, Err: err}
	}
	return string(data), nil
}

// Overrides lists the embedded template names replaced by a file in the
// override directory.
func (s *Source) Overrides() []string {
	if s.override == nil {
		return nil
	}
	var out []string
	for _, name := range Names() {
		if _, err := fs.Stat(s.override, name); err == nil {
			out = append(out, name)
		}
	}
	return out
}

// Names lists the embedded template names.
func Names() []string {
	entries, err := embedded.ReadDir("files")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}
