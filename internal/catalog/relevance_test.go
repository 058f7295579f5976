package catalog_test

import (
	"reflect"
	"testing"

	"tkkunify/internal/catalog"
)

var corpus = []string{
	"M143_Textfassung1-1von2-final.svg",
	"M143_Textfassung1-2von2-final.svg",
	"M143_Textfassung2-1von1-final.svg",
	"M143_Sk2-1von1-final.svg",
	"M143_Sk2_1-1von1-final.svg",
	"M143_Sk2_1_1_1-1von1-final.svg",
	"M143_Reihentabelle-final.svg",
	"M212_Textfassung1-1von1-final.svg",
	"Mx136_Sk1-1von1-final.svg",
}

func TestRelevantFilesRowTableEntries(t *testing.T) {
	got := catalog.RelevantFiles("M_143_SkRT", corpus)
	want := []string{"M143_Reihentabelle-final.svg"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("SkRT selection: got %v, want %v", got, want)
	}
}

func TestRelevantFilesTextVersionEntries(t *testing.T) {
	got := catalog.RelevantFiles("M_143_TF1", corpus)
	want := []string{
		"M143_Textfassung1-1von2-final.svg",
		"M143_Textfassung1-2von2-final.svg",
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("TF1 selection: got %v, want %v", got, want)
	}
}

func TestRelevantFilesTextVersionRequiresExactDigits(t *testing.T) {
	files := []string{
		"M143_Textfassung1-1von1-final.svg",
		"M143_Textfassung10-1von1-final.svg",
	}
	got := catalog.RelevantFiles("M_143_TF1", files)
	want := []string{"M143_Textfassung1-1von1-final.svg"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("TF1 must not match Textfassung10: got %v, want %v", got, want)
	}
}

func TestRelevantFilesSketchEntries(t *testing.T) {
	cases := []struct {
		entryID string
		want    []string
	}{
		{"M_143_Sk2", []string{"M143_Sk2-1von1-final.svg"}},
		{"M_143_Sk2_1", []string{"M143_Sk2_1-1von1-final.svg"}},
		{"M_143_Sk2_1_1_1", []string{"M143_Sk2_1_1_1-1von1-final.svg"}},
		{"Mx_136_Sk1", []string{"Mx136_Sk1-1von1-final.svg"}},
	}

	for _, tc := range cases {
		got := catalog.RelevantFiles(tc.entryID, corpus)
		if !reflect.DeepEqual(got, tc.want) {
			t.Errorf("RelevantFiles(%q): got %v, want %v", tc.entryID, got, tc.want)
		}
	}
}

func TestRelevantFilesUnqualifiedEntryTakesAllNonRowTable(t *testing.T) {
	got := catalog.RelevantFiles("M_143", corpus)
	want := []string{
		"M143_Textfassung1-1von2-final.svg",
		"M143_Textfassung1-2von2-final.svg",
		"M143_Textfassung2-1von1-final.svg",
		"M143_Sk2-1von1-final.svg",
		"M143_Sk2_1-1von1-final.svg",
		"M143_Sk2_1_1_1-1von1-final.svg",
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unqualified selection: got %v, want %v", got, want)
	}
}

func TestRelevantFilesEmptyResults(t *testing.T) {
	if got := catalog.RelevantFiles("M_999", corpus); got != nil {
		t.Fatalf("expected no files for unknown number, got %v", got)
	}
	if got := catalog.RelevantFiles("M_143_TF1", nil); got != nil {
		t.Fatalf("expected no files for empty listing, got %v", got)
	}
}
