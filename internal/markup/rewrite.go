package markup

import (
	"fmt"
	"regexp"
	"strings"
)

// AmbiguousIDError reports a group id carried by more than one class="tkk"
// element in the same file. Rewriting such an id is refused outright because
// the rename could land on an unrelated element.
type AmbiguousIDError struct {
	ID    string
	Count int
}

func (e *AmbiguousIDError) Error() string {
	return fmt.Sprintf("multiple class=\"tkk\" elements carry id %q (%d occurrences)", e.ID, e.Count)
}

// groupIDPattern locates every tkk element id for validation scans. Either
// attribute order and either quote style qualifies.
var groupIDPattern = regexp.MustCompile(
	`<[^>]+?class=["']tkk["'][^>]+?id=["']([^"']+)["']|<[^>]+?id=["']([^"']+)["'][^>]+?class=["']tkk["']`,
)

// qualifyingPatterns builds the opening-tag patterns for one concrete id:
// both attribute orders, double quotes and single quotes. A tag mixing quote
// styles between the two attributes does not qualify.
func qualifyingPatterns(id string) []*regexp.Regexp {
	esc := regexp.QuoteMeta(id)
	return []*regexp.Regexp{
		regexp.MustCompile(`<[^>]*?id="` + esc + `"[^>]*?class="tkk"[^>]*?>`),
		regexp.MustCompile(`<[^>]*?class="tkk"[^>]*?id="` + esc + `"[^>]*?>`),
		regexp.MustCompile(`<[^>]*?id='` + esc + `'[^>]*?class='tkk'[^>]*?>`),
		regexp.MustCompile(`<[^>]*?class='tkk'[^>]*?id='` + esc + `'[^>]*?>`),
	}
}

// ContainsID reports whether text holds at least one tkk element whose id
// equals old.
func ContainsID(text, old string) bool {
	for _, pattern := range qualifyingPatterns(old) {
		if pattern.MatchString(text) {
			return true
		}
	}
	return false
}

// Rewrite replaces the id attribute of the single tkk element carrying old
// with new and returns the updated text. When more than one element
// qualifies the input is returned unchanged together with an
// *AmbiguousIDError naming the occurrence count. Zero matches is not an
// error at this layer; the text simply comes back untouched.
func Rewrite(text, old, new string) (string, error) {
	patterns := qualifyingPatterns(old)

	total := 0
	for _, pattern := range patterns {
		total += len(pattern.FindAllStringIndex(text, -1))
	}
	if total > 1 {
		return text, &AmbiguousIDError{ID: old, Count: total}
	}

	replace := func(tag string) string {
		tag = strings.Replace(tag, `id="`+old+`"`, `id="`+new+`"`, 1)
		return strings.Replace(tag, `id='`+old+`'`, `id='`+new+`'`, 1)
	}
	for _, pattern := range patterns {
		text = pattern.ReplaceAllStringFunc(text, replace)
	}
	return text, nil
}

// GroupIDs returns the id of every tkk element in text, in document order.
func GroupIDs(text string) []string {
	var ids []string
	for _, match := range groupIDPattern.FindAllStringSubmatch(text, -1) {
		if match[1] != "" {
			ids = append(ids, match[1])
		} else {
			ids = append(ids, match[2])
		}
	}
	return ids
}
