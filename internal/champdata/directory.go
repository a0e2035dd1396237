package champdata

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// CatalogEntry is one champion as listed by the upstream catalog.
type CatalogEntry struct {
	DisplayName string
	IconAssetID string // e.g. "Ahri.png"
}

// Record is a champion that is both in the catalog and on the allowlist.
type Record struct {
	DisplayName string `json:"name"`
	IconAssetID string `json:"image"`
	Key         string `json:"key"`
}

// Directory is the read-only roster: records sorted by display name plus an
// index by NameKey. It is safe for concurrent reads.
type Directory struct {
	records []Record
	byKey   map[string]int
}

// BuildDirectory joins the catalog against the allowlist.
//
// Entries whose NameKey is not allowlisted are skipped. When several catalog
// entries share a NameKey, the first one in catalog order is kept. The result
// is ordered with English collation, falling back to byte order on ties.
func BuildDirectory(catalog []CatalogEntry, allow map[string]struct{}) *Directory {
	seen := make(map[string]struct{}, len(allow))
	records := make([]Record, 0, len(allow))

	for _, c := range catalog {
		key := Normalize(c.DisplayName)
		if _, ok := allow[key]; !ok {
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		records = append(records, Record{
			DisplayName: c.DisplayName,
			IconAssetID: c.IconAssetID,
			Key:         key,
		})
	}

	col := collate.New(language.English)
	sort.SliceStable(records, func(i, j int) bool {
		a, b := records[i].DisplayName, records[j].DisplayName
		if cmp := col.CompareString(a, b); cmp != 0 {
			return cmp < 0
		}
		return a < b
	})

	d := &Directory{
		records: records,
		byKey:   make(map[string]int, len(records)),
	}
	for i, r := range records {
		d.byKey[r.Key] = i
	}
	return d
}

// Len returns the number of champions in the roster.
func (d *Directory) Len() int {
	if d == nil {
		return 0
	}
	return len(d.records)
}

// All returns a copy of the full sorted roster.
func (d *Directory) All() []Record {
	if d == nil {
		return nil
	}
	out := make([]Record, len(d.records))
	copy(out, d.records)
	return out
}

// Get looks a champion up by any spelling that normalizes to its NameKey.
func (d *Directory) Get(name string) (Record, bool) {
	if d == nil {
		return Record{}, false
	}
	i, ok := d.byKey[Normalize(name)]
	if !ok {
		return Record{}, false
	}
	return d.records[i], true
}

// Search returns roster members whose NameKey contains the normalized query,
// in roster order. An empty normalized query returns the whole roster.
func (d *Directory) Search(query string) []Record {
	q := Normalize(query)
	if q == "" {
		return d.All()
	}
	if d == nil {
		return nil
	}

	var out []Record
	for _, r := range d.records {
		if strings.Contains(r.Key, q) {
			out = append(out, r)
		}
	}
	return out
}

// Suggest is the type-ahead variant of Search: no suggestions for an empty
// query, and at most limit results otherwise (limit <= 0 means no limit).
func (d *Directory) Suggest(query string, limit int) []Record {
	if Normalize(query) == "" {
		return nil
	}
	out := d.Search(query)
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}
