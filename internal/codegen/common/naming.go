package common

import (
	"go/token"
	"sort"
	"strings"
	"unicode"

	"github.com/jinzhu/inflection"
)

// DefaultAbbreviations are kept together when an identifier is split on case
// boundaries, so "IPAddress" becomes "ip_address" rather than "i_p_address".
var DefaultAbbreviations = []string{"IP", "LB", "SSL", "TCP", "UDP"}

// DefaultNamer uses DefaultAbbreviations.
var DefaultNamer = NewNamer(DefaultAbbreviations...)

// Namer converts SDK identifiers into schema keys and constant prefixes.
// The zero value splits every uppercase letter.
type Namer struct {
	abbreviations []string
}

// NewNamer returns a Namer preserving the given abbreviations. Longer
// abbreviations win over shorter ones sharing a prefix.
func NewNamer(abbreviations ...string) Namer {
	abbrs := make([]string, 0, len(abbreviations))
	for _, a := range abbreviations {
		a = strings.ToUpper(strings.TrimSpace(a))
		if a != "" {
			abbrs = append(abbrs, a)
		}
	}
	sort.SliceStable(abbrs, func(i, j int) bool { return len(abbrs[i]) > len(abbrs[j]) })
	return Namer{abbreviations: abbrs}
}

// Abbreviations returns the preserved abbreviations, longest first.
func (n Namer) Abbreviations() []string {
	return append([]string(nil), n.abbreviations...)
}

// Split breaks an identifier before every uppercase letter and rejoins
// abbreviation letters. "SSLProfileIPs" => ["SSL", "Profile", "IPs"].
func (n Namer) Split(name string) []string {
	var tokens []string
	var cur strings.Builder
	for _, r := range name {
		if unicode.IsUpper(r) && cur.Len() > 0 {
			tokens = append(tokens, cur.String())
			cur.Reset()
		}
		cur.WriteRune(r)
	}
	if cur.Len() > 0 {
		tokens = append(tokens, cur.String())
	}
	return n.rejoin(tokens)
}

func (n Namer) rejoin(tokens []string) []string {
	out := make([]string, 0, len(tokens))
	for i := 0; i < len(tokens); {
		merged := false
		for _, abbr := range n.abbreviations {
			if j, ok := matchAbbreviation(tokens, i, abbr); ok {
				// the last letter may carry a lowercase tail ("IPs", "IPv6")
				out = append(out, abbr[:len(abbr)-1]+tokens[j])
				i = j + 1
				merged = true
				break
			}
		}
		if !merged {
			out = append(out, tokens[i])
			i++
		}
	}
	return out
}

// matchAbbreviation reports whether tokens starting at i spell abbr as single
// uppercase letters, returning the index of the token holding the last letter.
func matchAbbreviation(tokens []string, i int, abbr string) (int, bool) {
	if len(abbr) < 2 || i+len(abbr) > len(tokens) {
		return 0, false
	}
	for k := 0; k < len(abbr)-1; k++ {
		if tokens[i+k] != abbr[k:k+1] {
			return 0, false
		}
	}
	last := i + len(abbr) - 1
	if !strings.HasPrefix(tokens[last], abbr[len(abbr)-1:]) {
		return 0, false
	}
	return last, true
}

// ToLowerSeparated renders an identifier as a lowercase, underscore separated
// schema key: "DisplayName" => "display_name".
func (n Namer) ToLowerSeparated(name string) string {
	return strings.ToLower(strings.Join(n.Split(name), "_"))
}

// ToUpperSeparated renders an identifier as an uppercase, underscore separated
// constant prefix: "IPAddressType" => "IP_ADDRESS_TYPE".
func (n Namer) ToUpperSeparated(name string) string {
	return strings.ToUpper(strings.Join(n.Split(name), "_"))
}

// ToDashSeparated is ToLowerSeparated with dashes.
func (n Namer) ToDashSeparated(name string) string {
	return strings.ReplaceAll(n.ToLowerSeparated(name), "_", "-")
}

// NameToUpper title-cases a separated name and drops the separators:
// "tier1_id" => "Tier1Id". Letters are upper-cased after any non-letter and
// lower-cased otherwise.
func NameToUpper(name string) string {
	var b strings.Builder
	prevLetter := false
	for _, r := range name {
		if unicode.IsLetter(r) {
			if prevLetter {
				b.WriteRune(unicode.ToLower(r))
			} else {
				b.WriteRune(unicode.ToUpper(r))
			}
			prevLetter = true
			continue
		}
		prevLetter = false
		if r != '_' && r != '-' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// LowercaseFirst lower-cases the first character only.
func LowercaseFirst(name string) string {
	if name == "" {
		return ""
	}
	r := []rune(name)
	r[0] = unicode.ToLower(r[0])
	return string(r)
}

// VarName derives a local variable name from a field name, avoiding Go
// keywords. A leading acronym is lower-cased as a whole: "IPAddress" =>
// "ipAddress", "ID" => "id".
func VarName(name string) string {
	r := []rune(name)
	upper := 0
	for upper < len(r) && unicode.IsUpper(r[upper]) {
		upper++
	}
	if upper > 1 && upper < len(r) {
		// the last capital starts the next word
		upper--
	}
	if upper == 0 {
		upper = 1
	}
	for i := 0; i < upper && i < len(r); i++ {
		r[i] = unicode.ToLower(r[i])
	}
	v := string(r)
	if token.IsKeyword(v) {
		return v + "Value"
	}
	return v
}

// Singular strips a trailing plural suffix from a separated name:
// "ip_addresses" => "ip_address", "profiles" => "profile". Names not ending in
// "s" are returned unchanged.
func Singular(name string) string {
	if !strings.HasSuffix(name, "s") || strings.HasSuffix(name, "ss") {
		return name
	}
	return inflection.Singular(name)
}

// ToSnakeCase converts Go field names to snake_case, keeping acronym runs
// together: "SDKPath" => "sdk_path", "someWord" => "some_word".
func ToSnakeCase(s string) string {
	if s == "" {
		return ""
	}
	var b strings.Builder
	runes := []rune(s)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		isUpper := r >= 'A' && r <= 'Z'

		if i > 0 && isUpper {
			prevIsLower := runes[i-1] >= 'a' && runes[i-1] <= 'z'
			nextIsLower := i+1 < len(runes) && runes[i+1] >= 'a' && runes[i+1] <= 'z'

			// camelCase boundary, or the end of an acronym ("XMLParser" at 'P')
			if prevIsLower || nextIsLower {
				b.WriteByte('_')
			}
		}
		b.WriteRune(r)
	}
	return strings.ToLower(b.String())
}
