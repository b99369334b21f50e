package scanner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLex(t *testing.T) {
	src := "package model\n" +
		"\n" +
		"const PolicyWidget_MODE_ACTIVE = \"ACTIVE\" // active\n" +
		"const Widget_LIMIT int64 = 10\n" +
		"// Widget doc\n" +
		"type PolicyWidget struct {\n" +
		"\t// Mode of the widget\n" +
		"\tMode *string `json:\"mode\"` // trailing\n" +
		"\tURL  string // see \"http://x\"\n" +
		"}\n" +
		"type Alias = string\n" +
		"func (s *PolicyWidget) GetType__() {}\n"

	tokens, err := Lex([]byte(src))
	require.NoError(t, err)
	require.Len(t, tokens, 12)

	kinds := make([]TokenKind, len(tokens))
	for i, tok := range tokens {
		kinds[i] = tok.Kind
		assert.Equal(t, i+1, tok.Line)
	}
	assert.Equal(t, []TokenKind{
		TokenOther, TokenBlank, TokenConst, TokenConst, TokenComment, TokenStructStart,
		TokenComment, TokenField, TokenField, TokenStructEnd, TokenOther, TokenOther,
	}, kinds)

	assert.Equal(t, "PolicyWidget_MODE_ACTIVE", tokens[2].Name)
	assert.Equal(t, `"ACTIVE"`, tokens[2].Value)
	assert.Equal(t, "Widget_LIMIT", tokens[3].Name)
	assert.Equal(t, "10", tokens[3].Value)
	assert.Equal(t, "Widget doc", tokens[4].Value)
	assert.Equal(t, "PolicyWidget", tokens[5].Name)
	assert.Equal(t, "Mode of the widget", tokens[6].Value)
	assert.Equal(t, []string{"Mode", "*string", "`json:\"mode\"`"}, tokens[7].Fields)
	assert.Equal(t, []string{"URL", "string"}, tokens[8].Fields)
}

func TestParseConst(t *testing.T) {
	tests := []struct {
		text  string
		name  string
		value string
		ok    bool
	}{
		{text: `const A_B = "x"`, name: "A_B", value: `"x"`, ok: true},
		{text: `const A_B string = "x" // c`, name: "A_B", value: `"x"`, ok: true},
		{text: `const A_B = "a // b"`, name: "A_B", value: `"a // b"`, ok: true},
		{text: `const (`, ok: false},
		{text: `const A =`, ok: false},
		{text: `const A B C = 1`, ok: false},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			name, value, ok := parseConst(tt.text)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.name, name)
				assert.Equal(t, tt.value, value)
			}
		})
	}
}

func TestTokenKindString(t *testing.T) {
	assert.Equal(t, "field", TokenField.String())
	assert.Equal(t, "struct-start", TokenStructStart.String())
	assert.Equal(t, "other", TokenKind(99).String())
}
