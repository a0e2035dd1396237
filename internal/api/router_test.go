package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/wrcounter/internal/champdata"
	"github.com/wrcounter/internal/services/scraper"
	"github.com/wrcounter/internal/storage"
)

type fakeWinRates struct {
	champion string
	lane     champdata.Role
	err      error
}

func (f *fakeWinRates) GetCounters(_ context.Context, champion string, lane champdata.Role) ([]*scraper.CounterStats, error) {
	f.champion, f.lane = champion, lane
	if f.err != nil {
		return nil, f.err
	}
	return []*scraper.CounterStats{{ChampionName: "Annie", WinRate: "54%", Lane: "Mid"}}, nil
}

func quietLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func newTestServer(t *testing.T) (*Server, *storage.LookupStats, *fakeWinRates) {
	t.Helper()
	catalog := []champdata.CatalogEntry{
		{DisplayName: "Ahri", IconAssetID: "Ahri.png"},
		{DisplayName: "Garen", IconAssetID: "Garen.png"},
		{DisplayName: "Zed", IconAssetID: "Zed.png"},
	}
	allow := map[string]struct{}{"ahri": {}, "garen": {}}
	sheet := champdata.CounterSheet{
		"Ahri": {Top: []champdata.CounterEntry{
			{Character: "Garen", Strength: "Counter", Notes: "poke"},
			{Character: "Teemo"},
		}},
	}
	roster := champdata.NewRoster("http://cdn.test", "14.24.1", catalog, allow, sheet)

	stats := storage.NewLookupStats(storage.NewRedisClient(context.Background(), "", "", quietLogger()), "lookups")
	wr := &fakeWinRates{}
	return New(roster, stats, wr, quietLogger()), stats, wr
}

func get(t *testing.T, h http.Handler, path string, out interface{}) int {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	if out != nil {
		if err := json.Unmarshal(rec.Body.Bytes(), out); err != nil {
			t.Fatalf("GET %s: decode %q: %v", path, rec.Body.String(), err)
		}
	}
	return rec.Code
}

func TestSearch(t *testing.T) {
	s, _, _ := newTestServer(t)

	var all struct {
		Items      []championView `json:"items"`
		TotalCount int            `json:"total_count"`
		Version    string         `json:"version"`
	}
	if code := get(t, s, "/api/champions", &all); code != http.StatusOK {
		t.Fatalf("status %d", code)
	}
	if all.TotalCount != 2 || all.Items[0].Name != "Ahri" || all.Items[1].Name != "Garen" {
		t.Fatalf("unexpected roster %+v", all)
	}
	if all.Items[0].Icon != "http://cdn.test/cdn/14.24.1/img/champion/Ahri.png" || all.Version != "14.24.1" {
		t.Fatalf("unexpected icon/version %+v", all)
	}

	var some struct {
		Items []championView `json:"items"`
	}
	get(t, s, "/api/champions?q=GAR", &some)
	if len(some.Items) != 1 || some.Items[0].Key != "garen" {
		t.Fatalf("unexpected search %+v", some)
	}
}

func TestGetChampion(t *testing.T) {
	s, stats, _ := newTestServer(t)

	var c championView
	if code := get(t, s, "/api/champions/ahri!!", &c); code != http.StatusOK {
		t.Fatalf("status %d", code)
	}
	if c.Name != "Ahri" {
		t.Fatalf("unexpected champion %+v", c)
	}

	var e map[string]string
	if code := get(t, s, "/api/champions/Zed", &e); code != http.StatusNotFound {
		t.Fatalf("Zed should be 404, got %d", code)
	}

	top, _ := stats.Top(context.Background(), 0)
	if len(top) != 1 || top[0].Key != "ahri" {
		t.Fatalf("only successful lookups are recorded, got %+v", top)
	}
}

func TestGetChampionEncodedNames(t *testing.T) {
	catalog := []champdata.CatalogEntry{
		{DisplayName: "Nunu & Willump", IconAssetID: "Nunu.png"},
		{DisplayName: "Kai'Sa", IconAssetID: "Kaisa.png"},
	}
	allow := map[string]struct{}{"nunuwillump": {}, "kaisa": {}}
	roster := champdata.NewRoster("http://cdn.test", "14.24.1", catalog, allow, nil)
	s := New(roster, nil, nil, quietLogger())

	tests := map[string]string{
		"/api/champions/Nunu%20%26%20Willump":          "Nunu & Willump",
		"/api/champions/Nunu%20&%20Willump":            "Nunu & Willump",
		"/api/champions/Kai%27Sa":                      "Kai'Sa",
		"/api/champions/Kai'Sa":                        "Kai'Sa",
		"/api/champions/Nunu%20%26%20Willump/counters": "Nunu & Willump",
	}
	for path, want := range tests {
		var out struct {
			Name     string       `json:"name"`
			Champion championView `json:"champion"`
		}
		if code := get(t, s, path, &out); code != http.StatusOK {
			t.Fatalf("GET %s = %d", path, code)
		}
		if out.Name != want && out.Champion.Name != want {
			t.Errorf("GET %s resolved %+v, want %q", path, out, want)
		}
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.URL.Path = "/api/champions/%zz"
	req.URL.RawPath = "/api/champions/%zz"
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("bad escape should be 400, got %d", rec.Code)
	}
}

func TestGetCounters(t *testing.T) {
	s, _, _ := newTestServer(t)

	var out countersView
	if code := get(t, s, "/api/champions/Ahri/counters", &out); code != http.StatusOK {
		t.Fatalf("status %d", code)
	}
	if len(out.Roles) != 5 {
		t.Fatalf("expected five roles, got %v", out.Roles)
	}
	top := out.Roles["top"]
	if len(top) != 2 || top[0].Strength != "Counter" || top[0].Icon == "" {
		t.Fatalf("unexpected top counters %+v", top)
	}
	if top[1].Icon != "" || top[1].Strength != "Skill" {
		t.Fatalf("unknown counter should have no icon and default strength: %+v", top[1])
	}
	if out.Roles["support"] == nil || len(out.Roles["support"]) != 0 {
		t.Fatalf("empty roles must be empty lists, got %v", out.Roles["support"])
	}

	var garen countersView
	get(t, s, "/api/champions/garen/counters", &garen)
	for role, entries := range garen.Roles {
		if len(entries) != 0 {
			t.Errorf("Garen has no curated counters, got %s=%v", role, entries)
		}
	}
}

func TestGetWinRates(t *testing.T) {
	s, _, wr := newTestServer(t)

	if code := get(t, s, "/api/champions/ahri/winrates?lane=middle", nil); code != http.StatusOK {
		t.Fatalf("status %d", code)
	}
	if wr.champion != "Ahri" || wr.lane != champdata.RoleMid {
		t.Fatalf("scraper called with %q %q", wr.champion, wr.lane)
	}

	if code := get(t, s, "/api/champions/ahri/winrates?lane=roam", nil); code != http.StatusBadRequest {
		t.Fatalf("bad lane should be 400, got %d", code)
	}

	wr.err = errors.New("blocked")
	if code := get(t, s, "/api/champions/ahri/winrates", nil); code != http.StatusBadGateway {
		t.Fatalf("scraper failure should be 502, got %d", code)
	}
}

func TestDiagnosticsAndStats(t *testing.T) {
	s, _, _ := newTestServer(t)

	var diags struct {
		Items      []champdata.Diagnostic `json:"items"`
		TotalCount int                    `json:"total_count"`
	}
	get(t, s, "/api/diagnostics", &diags)
	if diags.TotalCount != 1 || diags.Items[0].Counter != "Teemo" {
		t.Fatalf("unexpected diagnostics %+v", diags)
	}

	get(t, s, "/api/champions/garen", nil)
	get(t, s, "/api/champions/garen", nil)
	get(t, s, "/api/champions/ahri", nil)

	var top struct {
		Items []struct {
			Key   string `json:"key"`
			Name  string `json:"name"`
			Count int64  `json:"count"`
		} `json:"items"`
		Distinct int64 `json:"distinct"`
	}
	if code := get(t, s, "/api/stats/top?n=1", &top); code != http.StatusOK {
		t.Fatalf("status %d", code)
	}
	if len(top.Items) != 1 || top.Items[0].Name != "Garen" || top.Items[0].Count != 2 || top.Distinct != 2 {
		t.Fatalf("unexpected top %+v", top)
	}
	if code := get(t, s, "/api/stats/top?n=0", nil); code != http.StatusBadRequest {
		t.Fatalf("n=0 should be 400, got %d", code)
	}
}

func TestUnavailable(t *testing.T) {
	s := New(nil, nil, nil, quietLogger())

	var e map[string]string
	for _, path := range []string{"/api/champions", "/api/champions/ahri/counters", "/api/diagnostics"} {
		if code := get(t, s, path, &e); code != http.StatusServiceUnavailable || e["error"] != UnavailableMessage {
			t.Fatalf("GET %s = %d %v", path, code, e)
		}
	}

	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("health should be 503, got %d", rec.Code)
	}
}

func TestHealth(t *testing.T) {
	s, _, _ := newTestServer(t)
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("health = %d", rec.Code)
	}
}
