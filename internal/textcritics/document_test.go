package textcritics_test

import (
	"strings"
	"testing"

	"tkkunify/internal/textcritics"
)

const sampleDocument = `{
    "textcritics": [
        {
            "id": "M_143_TF1",
            "label": "Textfassung 1 (Entwürfe)",
            "description": [
                "Die Skizzen überliefern zwei Fassungen."
            ],
            "commentary": {
                "preamble": "unberührt",
                "comments": [
                    {
                        "blockHeading": "Takt 1–4",
                        "blockComments": [
                            {
                                "svgGroupId": "old-id-1",
                                "measure": "1",
                                "comment": "Bogen fehlt"
                            },
                            {
                                "svgGroupId": "TODO",
                                "measure": "2",
                                "comment": "unklar"
                            }
                        ]
                    }
                ]
            },
            "rowtable": false,
            "linkBoxes": []
        }
    ]
}
`

func TestParseRenderRoundTrip(t *testing.T) {
	doc, err := textcritics.Parse([]byte(sampleDocument))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	rendered := string(doc.Render())
	if rendered != sampleDocument {
		t.Fatalf("round trip diverged:\n--- got ---\n%s\n--- want ---\n%s", rendered, sampleDocument)
	}
}

func TestEntriesAndBlocksNavigation(t *testing.T) {
	doc, err := textcritics.Parse([]byte(sampleDocument))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	entries := doc.Entries()
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	if entries[0].ID() != "M_143_TF1" {
		t.Fatalf("unexpected entry id %q", entries[0].ID())
	}

	blocks := entries[0].Blocks()
	if len(blocks) != 2 {
		t.Fatalf("expected 2 blocks, got %d", len(blocks))
	}
	if blocks[0].GroupRef() != "old-id-1" {
		t.Fatalf("unexpected first groupRef %q", blocks[0].GroupRef())
	}
	if blocks[1].GroupRef() != "TODO" {
		t.Fatalf("unexpected second groupRef %q", blocks[1].GroupRef())
	}
}

func TestSetGroupRefKeepsSurroundingFields(t *testing.T) {
	doc, err := textcritics.Parse([]byte(sampleDocument))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	doc.Entries()[0].Blocks()[0].SetGroupRef("g-tkk-1")
	rendered := string(doc.Render())

	if !strings.Contains(rendered, `"svgGroupId": "g-tkk-1"`) {
		t.Fatalf("new groupRef missing from output:\n%s", rendered)
	}
	if strings.Contains(rendered, "old-id-1") {
		t.Fatalf("old groupRef still present:\n%s", rendered)
	}
	// Everything else must survive byte for byte, including member order and
	// non-ASCII text.
	want := strings.Replace(sampleDocument, `"svgGroupId": "old-id-1"`, `"svgGroupId": "g-tkk-1"`, 1)
	if rendered != want {
		t.Fatalf("unexpected collateral changes:\n--- got ---\n%s\n--- want ---\n%s", rendered, want)
	}
}

func TestEntriesHandlesRootArray(t *testing.T) {
	const bare = `[
    {
        "id": "Mx_136_Sk1",
        "commentary": {
            "comments": []
        }
    }
]
`
	doc, err := textcritics.Parse([]byte(bare))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	entries := doc.Entries()
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	if entries[0].ID() != "Mx_136_Sk1" {
		t.Fatalf("unexpected id %q", entries[0].ID())
	}
	if blocks := entries[0].Blocks(); blocks != nil {
		t.Fatalf("expected no blocks, got %d", len(blocks))
	}
	if got := string(doc.Render()); got != bare {
		t.Fatalf("root array round trip diverged:\n%s", got)
	}
}

func TestEntryWithoutIdentifier(t *testing.T) {
	const input = `{
    "textcritics": [
        {
            "commentary": {
                "comments": [
                    {
                        "blockComments": [
                            {
                                "svgGroupId": "stray"
                            }
                        ]
                    }
                ]
            }
        }
    ]
}
`
	doc, err := textcritics.Parse([]byte(input))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	entry := doc.Entries()[0]
	if entry.ID() != "" {
		t.Fatalf("expected empty id, got %q", entry.ID())
	}
	if len(entry.Blocks()) != 1 {
		t.Fatal("blocks of identifier-less entries must still be visible")
	}
}

func TestParseRejectsTrailingContent(t *testing.T) {
	if _, err := textcritics.Parse([]byte(`{"textcritics": []} {"again": true}`)); err == nil {
		t.Fatal("expected error for trailing content")
	}
}

func TestParseRejectsInvalidJSON(t *testing.T) {
	if _, err := textcritics.Parse([]byte(`{"textcritics": [`)); err == nil {
		t.Fatal("expected error for truncated document")
	}
}
