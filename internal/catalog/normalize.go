package catalog

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Normalize turns a raw finite-element field name into a catalog identifier.
//
// The name is split on '_'; the first rune of every
// segment is upper-cased and the segments are concatenated:
//
//	Normalize("oss_m1_lcl")   // "OssM1Lcl"
//	Normalize("OSS_M1_lcl_6F") // "OSSM1Lcl6F"
//
// Empty segments (leading, trailing or doubled underscores) contribute nothing.
// Upper-casing follows full Unicode case mapping, so a segment may grow
// ("ß" becomes "SS"). The input is not Unicode-normalized: a decomposed
// accent stays attached to the rune that follows the upper-cased letter.
func Normalize(raw string) string {
	upper := cases.Upper(language.Und)
	var b strings.Builder
	for _, seg := range strings.Split(raw, "_") {
		if seg == "" {
			continue
		}
		_, size := utf8.DecodeRuneInString(seg)
		b.WriteString(upper.String(seg[:size]))
		b.WriteString(seg[size:])
	}
	return b.String()
}

// IsIdentifier reports whether name can be used as a catalog entry: an ASCII
// letter followed by ASCII letters or digits.
func IsIdentifier(name string) bool {
	if name == "" {
		return false
	}
	for i, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9' && i > 0:
		default:
			return false
		}
	}
	return true
}
