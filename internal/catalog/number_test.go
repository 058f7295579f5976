package catalog_test

import (
	"testing"

	"tkkunify/internal/catalog"
)

func TestNumberExtractsFirstCatalogNumber(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{"M_143_TF1", "143"},
		{"M143_Textfassung1-1von2-final.svg", "143"},
		{"Mx_136_Sk1", "136"},
		{"Mx789_file", "789"},
		{"M212", "212"},
		{"M 212", "212"},
		{"M_143_Sk2_1", "143"},
		{"M_101_SkRT", "101"},
	}

	for _, tc := range cases {
		if got := catalog.Number(tc.input); got != tc.want {
			t.Errorf("Number(%q) = %q, want %q", tc.input, got, tc.want)
		}
	}
}

func TestNumberReturnsEmptyWithoutMarker(t *testing.T) {
	for _, input := range []string{"", "Textfassung1", "no marker here", "143", "m_143"} {
		if got := catalog.Number(input); got != "" {
			t.Errorf("Number(%q) = %q, want empty", input, got)
		}
	}
}

func TestNumberIsDeterministic(t *testing.T) {
	const input = "Mx_136_Sk1_Tk2"
	first := catalog.Number(input)
	for i := 0; i < 5; i++ {
		if got := catalog.Number(input); got != first {
			t.Fatalf("Number(%q) changed between calls: %q then %q", input, first, got)
		}
	}
}
