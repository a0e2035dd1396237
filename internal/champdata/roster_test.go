package champdata

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

type fakeAllowlist struct {
	set map[string]struct{}
	err error
}

func (f fakeAllowlist) LoadAllowlist(context.Context) (map[string]struct{}, error) {
	return f.set, f.err
}

type fakeCatalog struct {
	version    VersionToken
	entries    []CatalogEntry
	versionErr error
	catalogErr error
	asked      *VersionToken
}

func (f fakeCatalog) ResolveVersion(context.Context) (VersionToken, error) {
	return f.version, f.versionErr
}

func (f fakeCatalog) LoadCatalog(_ context.Context, v VersionToken) ([]CatalogEntry, error) {
	if f.asked != nil {
		*f.asked = v
	}
	return f.entries, f.catalogErr
}

type fakeCounters struct {
	sheet CounterSheet
	err   error
}

func (f fakeCounters) LoadCounters(context.Context) (CounterSheet, error) {
	return f.sheet, f.err
}

func scenarioSources() Sources {
	return Sources{
		Allowlist: fakeAllowlist{set: allowSet("Ahri", "Garen")},
		Catalog: fakeCatalog{
			version: "14.24.1",
			entries: []CatalogEntry{
				{DisplayName: "Ahri", IconAssetID: "Ahri.png"},
				{DisplayName: "Garen", IconAssetID: "Garen.png"},
				{DisplayName: "Zed", IconAssetID: "Zed.png"},
			},
		},
		Counters: fakeCounters{sheet: CounterSheet{
			"Ahri": {Top: []CounterEntry{{Character: "Garen", Strength: StrengthCounter, Notes: "poke"}}},
		}},
	}
}

func TestLoadEndToEnd(t *testing.T) {
	r, err := Load(context.Background(), scenarioSources())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if r.Version != "14.24.1" {
		t.Fatalf("unexpected version %q", r.Version)
	}
	if got := names(r.Directory.All()); !sameNames(got, []string{"Ahri", "Garen"}) {
		t.Fatalf("unexpected roster %v", got)
	}
	if rec, ok := r.Directory.Get("ahri!!"); !ok || rec.DisplayName != "Ahri" {
		t.Fatalf("Get(ahri!!) = %+v, %v", rec, ok)
	}
	if r.Icons.Resolve("Zed") != Unknown {
		t.Fatal("Zed is not on the allowlist and must resolve to Unknown")
	}
	if r.Icons.Resolve("Garen") == Unknown {
		t.Fatal("Garen should have an icon")
	}
	if top := r.Counters.Resolve("Ahri").Top; len(top) != 1 || top[0].Strength != StrengthCounter {
		t.Fatalf("unexpected counters %+v", top)
	}
	if r.CountersErr != nil {
		t.Fatalf("unexpected counters error %v", r.CountersErr)
	}
}

func TestLoadPinnedVersionSkipsDiscovery(t *testing.T) {
	var asked VersionToken
	src := scenarioSources()
	src.Catalog = fakeCatalog{
		versionErr: errors.New("must not be called"),
		entries:    []CatalogEntry{{DisplayName: "Ahri", IconAssetID: "Ahri.png"}},
		asked:      &asked,
	}

	r, err := Load(context.Background(), src, WithVersion("13.1.1"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if asked != "13.1.1" || r.Version != "13.1.1" {
		t.Fatalf("pinned version not used: asked=%q roster=%q", asked, r.Version)
	}
}

func TestLoadRequiredSourceFailures(t *testing.T) {
	boom := &LoadError{Source: "x", Err: errors.New("boom")}

	tests := []struct {
		name   string
		mutate func(*Sources)
	}{
		{"allowlist", func(s *Sources) { s.Allowlist = fakeAllowlist{err: boom} }},
		{"version", func(s *Sources) { s.Catalog = fakeCatalog{versionErr: boom} }},
		{"catalog", func(s *Sources) { s.Catalog = fakeCatalog{version: "1", catalogErr: boom} }},
		{"missing source", func(s *Sources) { s.Catalog = nil }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := scenarioSources()
			tt.mutate(&src)

			r, err := Load(context.Background(), src)
			if r != nil {
				t.Fatal("no roster on failure")
			}
			var be *DirectoryBuildError
			if !errors.As(err, &be) {
				t.Fatalf("expected *DirectoryBuildError, got %v", err)
			}
		})
	}
}

func TestLoadDegradesWithoutCounters(t *testing.T) {
	src := scenarioSources()
	src.Counters = fakeCounters{err: &LoadError{Source: "counters", Err: errors.New("404")}}

	r, err := Load(context.Background(), src)
	if err != nil {
		t.Fatalf("counter sheet failure must not be fatal: %v", err)
	}
	if r.Directory.Len() != 2 {
		t.Fatalf("directory should still be built, got %d", r.Directory.Len())
	}
	if !r.Counters.Resolve("Ahri").Empty() {
		t.Fatal("expected empty sheet")
	}
	var le *LoadError
	if !errors.As(r.CountersErr, &le) {
		t.Fatalf("expected CountersErr to carry the LoadError, got %v", r.CountersErr)
	}
}

func TestLoadFromFiles(t *testing.T) {
	dir := t.TempDir()
	allowPath := filepath.Join(dir, "wr_champions.json")
	countersPath := filepath.Join(dir, "counters.json")
	if err := os.WriteFile(allowPath, []byte(`["Ahri", "Garen"]`), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(countersPath, []byte(`{"champions":{"Ahri":{"top":[{"champion":"Garen","strength":"Counter","notes":"poke"}]}}}`), 0o644); err != nil {
		t.Fatal(err)
	}

	srv := newFakeDDragon(t)
	r, err := Load(context.Background(), Sources{
		Allowlist:   ResourceAllowlist{Location: allowPath},
		Catalog:     NewDDragon(srv.URL, "", srv.Client()),
		Counters:    ResourceCounterSheet{Location: countersPath},
		IconBaseURL: srv.URL,
	})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := names(r.Directory.All()); !sameNames(got, []string{"Ahri", "Garen"}) {
		t.Fatalf("unexpected roster %v", got)
	}
	if want := IconRef(srv.URL + "/cdn/14.24.1/img/champion/Ahri.png"); r.Icons.Resolve("Ahri") != want {
		t.Fatalf("icon = %q, want %q", r.Icons.Resolve("Ahri"), want)
	}
	if len(r.Counters.Resolve("Ahri").Top) != 1 {
		t.Fatal("expected Ahri top counter from file")
	}
}

func TestResourceAllowlistErrors(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.json")
	os.WriteFile(bad, []byte(`{"Ahri": true}`), 0o644)
	mixed := filepath.Join(dir, "mixed.json")
	os.WriteFile(mixed, []byte(`["Ahri", 3]`), 0o644)

	for _, loc := range []string{filepath.Join(dir, "missing.json"), bad, mixed} {
		_, err := ResourceAllowlist{Location: loc}.LoadAllowlist(context.Background())
		var le *LoadError
		if !errors.As(err, &le) || le.Source != "allowlist" {
			t.Errorf("LoadAllowlist(%s) = %v, want allowlist LoadError", filepath.Base(loc), err)
		}
	}
}
