// Package render fills template placeholders with generated fragments.
package render

import (
	"sort"
	"strings"
)

// Placeholder tokens recognized in templates.
const (
	Resource                 = "<!RESOURCE!>"
	Resources                = "<!RESOURCES!>"
	Module                   = "<!MODULE!>"
	ResourceLower            = "<!resource_lower!>"
	ResourceDash             = "<!resource-lower!>"
	SchemaAttrs              = "<!SCHEMA_ATTRS!>"
	GetAttrsFromSchema       = "<!GET_ATTRS_FROM_SCHEMA!>"
	SetAttrsInObj            = "<!SET_ATTRS_IN_OBJ!>"
	SetObjAttrsInSchema      = "<!SET_OBJ_ATTRS_IN_SCHEMA!>"
	Enums                    = "<!ENUMS!>"
	TestAttrs                = "<!TEST_ATTRS!>"
	TestRequiredAttrs        = "<!TEST_REQUIRED_ATTRS!>"
	TestAttrsCreate          = "<!TEST_ATTRS_CREATE!>"
	TestAttrsUpdate          = "<!TEST_ATTRS_UPDATE!>"
	TestAttrsSprintf         = "<!TEST_ATTRS_SPRINTF!>"
	TestRequiredAttrsSprintf = "<!TEST_REQUIRED_ATTRS_SPRINTF!>"
	CheckAttrsCreate         = "<!CHECK_ATTRS_CREATE!>"
	CheckAttrsUpdate         = "<!CHECK_ATTRS_UPDATE!>"
	DocAttrs                 = "<!DOC_ATTRS!>"
	DocAttrsReference        = "<!DOC_ATTRS_REFERENCE!>"
)

// Placeholders lists every recognized token.
var Placeholders = []string{
	Resource, Resources, Module, ResourceLower, ResourceDash,
	SchemaAttrs, GetAttrsFromSchema, SetAttrsInObj, SetObjAttrsInSchema, Enums,
	TestAttrs, TestRequiredAttrs, TestAttrsCreate, TestAttrsUpdate,
	TestAttrsSprintf, TestRequiredAttrsSprintf, CheckAttrsCreate, CheckAttrsUpdate,
	DocAttrs, DocAttrsReference,
}

const (
	doubledPrefix = "PolicyPolicy"
	singlePrefix  = "Policy"
)

// Fragments maps placeholder tokens to generated text.
type Fragments map[string]string

// Substitute replaces every occurrence of every token of fragments in text.
// Tokens without a fragment are left as they are. Replacement is a single
// pass, so fragment text is never rescanned for tokens and the order of
// the map does not matter. The doubled "PolicyPolicy" prefix produced by
// policy-prefixed resource names is folded last.
func Substitute(text string, fragments Fragments) string {
	tokens := make([]string, 0, len(fragments))
	for token := range fragments {
		if token != "" {
			tokens = append(tokens, token)
		}
	}
	// longest first so a token that prefixes another never shadows it
	sort.Slice(tokens, func(i, j int) bool {
		if len(tokens[i]) != len(tokens[j]) {
			return len(tokens[i]) > len(tokens[j])
		}
		return tokens[i] < tokens[j]
	})

	pairs := make([]string, 0, 2*len(tokens))
	for _, token := range tokens {
		pairs = append(pairs, token, fragments[token])
	}
	out := strings.NewReplacer(pairs...).Replace(text)
	return FoldPolicyPrefix(out)
}

// FoldPolicyPrefix collapses repeated "PolicyPolicy" runs into "Policy".
func FoldPolicyPrefix(text string) string {
	for strings.Contains(text, doubledPrefix) {
		text = strings.ReplaceAll(text, doubledPrefix, singlePrefix)
	}
	return text
}
