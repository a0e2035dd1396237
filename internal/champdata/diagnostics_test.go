package champdata

import "testing"

func TestDiagnose(t *testing.T) {
	dir := BuildDirectory([]CatalogEntry{
		{DisplayName: "Ahri"}, {DisplayName: "Kai'Sa"}, {DisplayName: "Garen"},
	}, allowSet("Ahri", "Kai'Sa", "Garen"))

	sheet := CounterSheet{
		"Ahri":  {Top: []CounterEntry{{Character: "Garen"}}, Mid: []CounterEntry{{Character: "Zed"}}},
		"Kaisa": {ADC: []CounterEntry{{Character: "Ahri"}}},
		"Teemo": {},
		"Garen": {},
	}

	got := Diagnose(sheet, dir)
	want := []Diagnostic{
		{Kind: DiagUnknownCounter, Key: "Ahri", Role: RoleMid, Counter: "Zed"},
		{Kind: DiagNameMismatch, Key: "Kaisa", Suggestion: "Kai'Sa"},
		{Kind: DiagUnknown, Key: "Teemo"},
	}
	if len(got) != len(want) {
		t.Fatalf("got %d diagnostics %+v, want %d", len(got), got, len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("diagnostic %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestDiagnoseCleanSheet(t *testing.T) {
	dir := BuildDirectory([]CatalogEntry{{DisplayName: "Ahri"}}, allowSet("Ahri"))
	if got := Diagnose(CounterSheet{"Ahri": {}}, dir); len(got) != 0 {
		t.Fatalf("expected no diagnostics, got %+v", got)
	}
	if got := Diagnose(nil, dir); len(got) != 0 {
		t.Fatalf("expected no diagnostics for nil sheet, got %+v", got)
	}
}
