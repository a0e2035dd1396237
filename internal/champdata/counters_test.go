package champdata

import "testing"

func TestParseCounterSheetWrapped(t *testing.T) {
	doc := `{"champions":{"Ahri":{"top":[{"champion":"Garen","strength":"Counter","notes":"poke"}]}}}`
	sheet, err := ParseCounterSheet([]byte(doc))
	if err != nil {
		t.Fatalf("ParseCounterSheet: %v", err)
	}

	got := NewCounterQuery(sheet).Resolve("Ahri")
	if len(got.Top) != 1 {
		t.Fatalf("expected one top counter, got %d", len(got.Top))
	}
	e := got.Top[0]
	if e.Character != "Garen" || e.Strength != StrengthCounter || e.Notes != "poke" {
		t.Fatalf("unexpected entry: %+v", e)
	}
}

func TestParseCounterSheetFlat(t *testing.T) {
	doc := `{
		"Yasuo": {
			"mid": [
				{"champion": "Annie", "strength": "Counter", "notes": "point and click stun", "tags": ["burst", "cc"]},
				{"character": "Malzahar", "notes": "suppress"}
			],
			"adc": []
		}
	}`
	sheet, err := ParseCounterSheet([]byte(doc))
	if err != nil {
		t.Fatalf("ParseCounterSheet: %v", err)
	}

	got := NewCounterQuery(sheet).Resolve("Yasuo")
	if len(got.Mid) != 2 {
		t.Fatalf("expected two mid counters, got %d", len(got.Mid))
	}
	if got.Mid[0].Tags[0] != "burst" || got.Mid[0].Tags[1] != "cc" {
		t.Fatalf("tags not kept in order: %v", got.Mid[0].Tags)
	}
	if got.Mid[1].Character != "Malzahar" {
		t.Fatalf("character alias not read: %+v", got.Mid[1])
	}
	if got.Mid[1].DisplayStrength() != StrengthSkill {
		t.Fatalf("blank strength should display as Skill, got %q", got.Mid[1].DisplayStrength())
	}
	if got.Mid[1].Tags != nil {
		t.Fatalf("absent tags should stay nil, got %v", got.Mid[1].Tags)
	}
}

func TestParseCounterSheetRejectsBadInput(t *testing.T) {
	for _, doc := range []string{``, `not json`, `[1,2]`, `"text"`} {
		if _, err := ParseCounterSheet([]byte(doc)); err == nil {
			t.Errorf("ParseCounterSheet(%q) should fail", doc)
		}
	}
}

func TestParseCounterSheetSkipsMetadataAndMalformedEntries(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"flat", `{
			"updated": "2025-01-01",
			"version": 3,
			"Ahri": {"top": [{"champion": "Garen"}]},
			"Zed": {"mid": [{"champion": "Lulu", "tags": "tank"}]}
		}`},
		{"wrapped", `{
			"updated": "2025-01-01",
			"champions": {
				"Ahri": {"top": [{"champion": "Garen"}]},
				"Zed": {"mid": "Lulu"}
			}
		}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sheet, err := ParseCounterSheet([]byte(tt.doc))
			if err != nil {
				t.Fatalf("ParseCounterSheet: %v", err)
			}
			if _, ok := sheet["updated"]; ok {
				t.Fatal("metadata key should not become a sheet entry")
			}
			q := NewCounterQuery(sheet)
			if len(q.Resolve("Ahri").Top) != 1 {
				t.Fatal("valid entry lost next to a malformed one")
			}
			if !q.Resolve("Zed").Empty() {
				t.Fatal("malformed entry should resolve to nothing")
			}

			dir := BuildDirectory([]CatalogEntry{{DisplayName: "Ahri"}, {DisplayName: "Garen"}, {DisplayName: "Zed"}},
				allowSet("Ahri", "Garen", "Zed"))
			diags := Diagnose(sheet, dir)
			if len(diags) != 1 || diags[0].Kind != DiagMalformed || diags[0].Key != "Zed" || diags[0].Detail == "" {
				t.Fatalf("unexpected diagnostics %+v", diags)
			}
		})
	}
}

func TestResolveSlicesDoNotAliasSheet(t *testing.T) {
	top := make([]CounterEntry, 1, 4)
	top[0] = CounterEntry{Character: "Garen"}
	q := NewCounterQuery(CounterSheet{"Ahri": {Top: top}})

	first := q.Resolve("Ahri").Top
	_ = append(first, CounterEntry{Character: "Teemo"})

	second := append(q.Resolve("Ahri").Top, CounterEntry{Character: "Darius"})
	if top[:2][1].Character != "" {
		t.Fatalf("append wrote into the sheet: %+v", top[:2])
	}
	if len(second) != 2 || second[1].Character != "Darius" {
		t.Fatalf("unexpected appended slice %+v", second)
	}
}

func TestResolveMissingChampion(t *testing.T) {
	sheet := CounterSheet{"Ahri": {Top: []CounterEntry{{Character: "Garen"}}}}
	q := NewCounterQuery(sheet)

	for _, name := range []string{"Zed", "ahri", ""} {
		got := q.Resolve(name)
		for _, r := range Roles {
			if entries := got.For(r); entries == nil || len(entries) != 0 {
				t.Errorf("Resolve(%q).%s = %v, want empty non-nil", name, r, entries)
			}
		}
		if !got.Empty() {
			t.Errorf("Resolve(%q) should be empty", name)
		}
	}

	// Present champion, absent roles.
	got := q.Resolve("Ahri")
	if len(got.Top) != 1 || got.Jungle == nil || len(got.Jungle) != 0 {
		t.Fatalf("unexpected resolve result: %+v", got)
	}
}

func TestNilCounterQuery(t *testing.T) {
	var q *CounterQuery
	if !q.Resolve("Ahri").Empty() {
		t.Fatal("nil query resolves to nothing")
	}
	if !NewCounterQuery(nil).Resolve("Ahri").Empty() {
		t.Fatal("nil sheet resolves to nothing")
	}
}

func TestParseRole(t *testing.T) {
	tests := map[string]Role{
		"top": RoleTop, "JG": RoleJungle, "Middle": RoleMid,
		"bot": RoleADC, "ADC": RoleADC, "supp": RoleSupport,
	}
	for in, want := range tests {
		got, ok := ParseRole(in)
		if !ok || got != want {
			t.Errorf("ParseRole(%q) = %q, %v", in, got, ok)
		}
	}
	if _, ok := ParseRole("roam"); ok {
		t.Error("ParseRole(roam) should fail")
	}
}
