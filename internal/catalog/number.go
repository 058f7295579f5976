package catalog

import "regexp"

// numberPattern matches a Moldenhauer number behind an M or Mx marker. The
// marker and the digits may be joined directly or by one separator character
// ("M_143", "M143", "Mx_136", "Mx136").
var numberPattern = regexp.MustCompile(`Mx?\D?(\d+)`)

// Number returns the first Moldenhauer catalog number embedded in s, or the
// empty string when s carries no M/Mx marker. Trailing qualifiers such as
// "_TF1" or "_Sk2" are ignored.
func Number(s string) string {
	match := numberPattern.FindStringSubmatch(s)
	if match == nil {
		return ""
	}
	return match[1]
}
