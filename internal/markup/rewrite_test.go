package markup_test

import (
	"errors"
	"strings"
	"testing"

	"tkkunify/internal/markup"
)

const sketchSVG = `<svg xmlns="http://www.w3.org/2000/svg">
  <g class="tkk" id="old-id-1"><path d="M0 0h10"/></g>
  <g id="old-id-2" class="tkk"><path d="M0 5h10"/></g>
  <g class="system" id="old-id-3"><path d="M0 9h10"/></g>
</svg>`

func TestRewriteHandlesBothAttributeOrders(t *testing.T) {
	text, err := markup.Rewrite(sketchSVG, "old-id-1", "g-tkk-1")
	if err != nil {
		t.Fatalf("rewrite old-id-1: %v", err)
	}
	text, err = markup.Rewrite(text, "old-id-2", "g-tkk-2")
	if err != nil {
		t.Fatalf("rewrite old-id-2: %v", err)
	}

	if !strings.Contains(text, `<g class="tkk" id="g-tkk-1">`) {
		t.Errorf("class-first tag not rewritten:\n%s", text)
	}
	if !strings.Contains(text, `<g id="g-tkk-2" class="tkk">`) {
		t.Errorf("id-first tag not rewritten:\n%s", text)
	}
	if strings.Contains(text, "old-id-1") || strings.Contains(text, "old-id-2") {
		t.Errorf("old ids survived rewrite:\n%s", text)
	}
}

func TestRewriteIgnoresNonTkkElements(t *testing.T) {
	text, err := markup.Rewrite(sketchSVG, "old-id-3", "g-tkk-3")
	if err != nil {
		t.Fatalf("rewrite: %v", err)
	}
	if text != sketchSVG {
		t.Fatalf("element without class tkk was modified:\n%s", text)
	}
}

func TestRewriteSingleQuotes(t *testing.T) {
	const input = `<g class='tkk' id='alt'><path d='M0 0h1'/></g>`
	text, err := markup.Rewrite(input, "alt", "g-tkk-1")
	if err != nil {
		t.Fatalf("rewrite: %v", err)
	}
	if text != `<g class='tkk' id='g-tkk-1'><path d='M0 0h1'/></g>` {
		t.Fatalf("unexpected rewrite result: %s", text)
	}
}

func TestRewriteRoundTrip(t *testing.T) {
	forward, err := markup.Rewrite(sketchSVG, "old-id-1", "g-tkk-1")
	if err != nil {
		t.Fatalf("forward rewrite: %v", err)
	}
	back, err := markup.Rewrite(forward, "g-tkk-1", "old-id-1")
	if err != nil {
		t.Fatalf("backward rewrite: %v", err)
	}
	if back != sketchSVG {
		t.Fatalf("round trip diverged:\n%s", back)
	}
}

func TestRewriteRefusesAmbiguousID(t *testing.T) {
	const input = `<svg>
  <g class="tkk" id="dup"/>
  <g id="dup" class="tkk"/>
</svg>`

	text, err := markup.Rewrite(input, "dup", "g-tkk-1")
	if err == nil {
		t.Fatal("expected ambiguity error")
	}
	var amb *markup.AmbiguousIDError
	if !errors.As(err, &amb) {
		t.Fatalf("expected *AmbiguousIDError, got %T: %v", err, err)
	}
	if amb.Count != 2 {
		t.Fatalf("expected 2 occurrences, got %d", amb.Count)
	}
	if amb.ID != "dup" {
		t.Fatalf("expected id dup, got %q", amb.ID)
	}
	if text != input {
		t.Fatalf("ambiguous input must come back unchanged:\n%s", text)
	}
}

func TestRewriteZeroMatchesIsNotAnError(t *testing.T) {
	text, err := markup.Rewrite(sketchSVG, "missing", "g-tkk-1")
	if err != nil {
		t.Fatalf("rewrite: %v", err)
	}
	if text != sketchSVG {
		t.Fatal("text changed despite zero matches")
	}
}

func TestContainsID(t *testing.T) {
	if !markup.ContainsID(sketchSVG, "old-id-1") {
		t.Error("expected old-id-1 to be found")
	}
	if !markup.ContainsID(sketchSVG, "old-id-2") {
		t.Error("expected old-id-2 to be found")
	}
	if markup.ContainsID(sketchSVG, "old-id-3") {
		t.Error("old-id-3 sits on a non-tkk element and must not be found")
	}
	if markup.ContainsID(sketchSVG, "missing") {
		t.Error("missing id reported as found")
	}
}

func TestGroupIDsScansBothOrders(t *testing.T) {
	ids := markup.GroupIDs(sketchSVG)
	want := []string{"old-id-1", "old-id-2"}
	if len(ids) != len(want) {
		t.Fatalf("GroupIDs = %v, want %v", ids, want)
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Fatalf("GroupIDs = %v, want %v", ids, want)
		}
	}
}
