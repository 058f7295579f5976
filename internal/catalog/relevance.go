package catalog

import (
	"regexp"
	"strings"
)

const rowTableMarker = "Reihentabelle"

var (
	textVersionPattern = regexp.MustCompile(`TF(\d+)`)
	sketchPattern      = regexp.MustCompile(`Sk\d+(?:_\d+)*`)
)

// RelevantFiles returns the subset of filenames an entry's group elements may
// live in, preserving the input order. Selection rules, first match wins:
//
//  1. SkRT entries pair exclusively with same-number row table
//     ("Reihentabelle") files.
//  2. TF<n> entries pair with same-number Textfassung<n> files, requiring an
//     exact digit match so TF1 never picks up Textfassung10.
//  3. Sk<n>[_<n>...] entries pair with files carrying the identical sketch
//     token, rejecting deeper sub-sketches (Sk2 must not claim Sk2_1 files).
//  4. Anything else pairs with every same-number non-row-table file.
//
// An empty result is a legitimate outcome, never an error.
func RelevantFiles(entryID string, filenames []string) []string {
	number := Number(entryID)

	if strings.Contains(entryID, "SkRT") {
		return filter(filenames, func(name string) bool {
			return Number(name) == number && strings.Contains(name, rowTableMarker)
		})
	}

	candidates := filter(filenames, func(name string) bool {
		return Number(name) == number && !strings.Contains(name, rowTableMarker)
	})

	if match := textVersionPattern.FindStringSubmatch(entryID); match != nil {
		token := "Textfassung" + match[1]
		return filter(candidates, func(name string) bool {
			return containsToken(name, token, false)
		})
	}

	if token := sketchPattern.FindString(entryID); token != "" {
		return filter(candidates, func(name string) bool {
			return containsToken(name, token, true)
		})
	}

	return candidates
}

// containsToken reports whether name contains token at a digit boundary: the
// token must not be followed by a further digit, nor, when rejectSubSegments
// is set, by an "_<digit>" continuation that would mark a deeper sketch.
func containsToken(name, token string, rejectSubSegments bool) bool {
	for start := 0; ; {
		idx := strings.Index(name[start:], token)
		if idx < 0 {
			return false
		}
		rest := name[start+idx+len(token):]
		if !extendsToken(rest, rejectSubSegments) {
			return true
		}
		start += idx + 1
	}
}

func extendsToken(rest string, rejectSubSegments bool) bool {
	if rest == "" {
		return false
	}
	if isDigit(rest[0]) {
		return true
	}
	return rejectSubSegments && len(rest) >= 2 && rest[0] == '_' && isDigit(rest[1])
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

func filter(names []string, keep func(string) bool) []string {
	var out []string
	for _, name := range names {
		if keep(name) {
			out = append(out, name)
		}
	}
	return out
}
