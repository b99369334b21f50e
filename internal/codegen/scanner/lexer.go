package scanner

import (
	"bufio"
	"bytes"
	"fmt"
	"strings"
)

// TokenKind classifies one line of the declarations source.
type TokenKind int

const (
	TokenOther       TokenKind = iota // package clause, imports, funcs, ...
	TokenBlank                        // empty line
	TokenComment                      // "// text"
	TokenConst                        // "const Name = value"
	TokenStructStart                  // "type Name struct {"
	TokenStructEnd                    // "}" in column one
	TokenField                        // indented line, a field when inside a struct
)

func (k TokenKind) String() string {
	switch k {
	case TokenBlank:
		return "blank"
	case TokenComment:
		return "comment"
	case TokenConst:
		return "const"
	case TokenStructStart:
		return "struct-start"
	case TokenStructEnd:
		return "struct-end"
	case TokenField:
		return "field"
	default:
		return "other"
	}
}

// Token is a classified source line.
//
//	TokenConst:       Name = constant name, Value = literal
//	TokenStructStart: Name = type name
//	TokenComment:     Value = comment text without the marker
//	TokenField:       Fields = whitespace separated words
type Token struct {
	Kind   TokenKind
	Line   int
	Text   string
	Name   string
	Value  string
	Fields []string
}

// maxLineSize bounds a single declaration line.
const maxLineSize = 1024 * 1024

// Lex splits src into one token per line.
func Lex(src []byte) ([]Token, error) {
	var tokens []Token
	sc := bufio.NewScanner(bytes.NewReader(src))
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	line := 0
	for sc.Scan() {
		line++
		tokens = append(tokens, classify(line, sc.Text()))
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("lex declarations after line %d: %w", line, err)
	}
	return tokens, nil
}

func classify(line int, text string) Token {
	tok := Token{Kind: TokenOther, Line: line, Text: text}
	trimmed := strings.TrimSpace(text)

	switch {
	case trimmed == "":
		tok.Kind = TokenBlank
	case strings.HasPrefix(trimmed, "//"):
		tok.Kind = TokenComment
		tok.Value = strings.TrimSpace(strings.TrimPrefix(trimmed, "//"))
	case strings.HasPrefix(text, "const "):
		if name, value, ok := parseConst(text); ok {
			tok.Kind = TokenConst
			tok.Name = name
			tok.Value = value
		}
	case strings.HasPrefix(text, "type "):
		fields := strings.Fields(text)
		if len(fields) >= 3 && (fields[2] == "struct" || fields[2] == "struct{") {
			tok.Kind = TokenStructStart
			tok.Name = fields[1]
		}
	case strings.HasPrefix(text, "}"):
		tok.Kind = TokenStructEnd
	case text[0] == ' ' || text[0] == '\t':
		tok.Kind = TokenField
		tok.Fields = strings.Fields(stripLineComment(trimmed))
	}
	return tok
}

// parseConst reads "const Name = value" and "const Name Type = value".
func parseConst(text string) (name, value string, ok bool) {
	lhs, rhs, found := strings.Cut(strings.TrimPrefix(text, "const "), "=")
	if !found {
		return "", "", false
	}
	lhsFields := strings.Fields(lhs)
	if len(lhsFields) == 0 || len(lhsFields) > 2 {
		return "", "", false
	}
	value = strings.TrimSpace(stripLineComment(rhs))
	if value == "" {
		return "", "", false
	}
	return lhsFields[0], value, true
}

// stripLineComment removes a trailing "// ..." outside of string literals.
func stripLineComment(s string) string {
	inString := byte(0)
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case inString != 0:
			if c == '\\' && inString == '"' {
				i++
			} else if c == inString {
				inString = 0
			}
		case c == '"' || c == '`':
			inString = c
		case c == '/' && i+1 < len(s) && s[i+1] == '/':
			return strings.TrimSpace(s[:i])
		}
	}
	return s
}
