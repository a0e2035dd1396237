package champdata

import "sort"

// DiagnosticKind classifies a counter sheet inconsistency.
type DiagnosticKind string

const (
	// DiagUnknown: a sheet key matches no champion in the directory.
	DiagUnknown DiagnosticKind = "unknown"
	// DiagNameMismatch: a sheet key matches a champion only after
	// normalization, so exact-name lookups will miss it.
	DiagNameMismatch DiagnosticKind = "name-mismatch"
	// DiagUnknownCounter: a counter entry names a champion outside the
	// directory; it will render with a placeholder icon.
	DiagUnknownCounter DiagnosticKind = "unknown-counter"
	// DiagMalformed: a sheet entry did not decode and is served as empty.
	DiagMalformed DiagnosticKind = "malformed"
)

// Diagnostic is one orphaned or mismatched reference in the counter sheet.
type Diagnostic struct {
	Kind       DiagnosticKind `json:"kind"`
	Key        string         `json:"key"`
	Role       Role           `json:"role,omitempty"`
	Counter    string         `json:"counter,omitempty"`
	Suggestion string         `json:"suggestion,omitempty"`
	Detail     string         `json:"detail,omitempty"`
}

// Diagnose cross-checks the sheet against the directory. Results are sorted
// by key, then role order.
func Diagnose(sheet CounterSheet, dir *Directory) []Diagnostic {
	keys := make([]string, 0, len(sheet))
	for k := range sheet {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var out []Diagnostic
	for _, k := range keys {
		counters := sheet[k]
		if counters.malformed != "" {
			out = append(out, Diagnostic{Kind: DiagMalformed, Key: k, Detail: counters.malformed})
			continue
		}

		rec, ok := dir.Get(k)
		switch {
		case !ok:
			out = append(out, Diagnostic{Kind: DiagUnknown, Key: k})
		case rec.DisplayName != k:
			out = append(out, Diagnostic{Kind: DiagNameMismatch, Key: k, Suggestion: rec.DisplayName})
		}

		for _, role := range Roles {
			for _, e := range counters.For(role) {
				if _, ok := dir.Get(e.Character); !ok {
					out = append(out, Diagnostic{
						Kind:    DiagUnknownCounter,
						Key:     k,
						Role:    role,
						Counter: e.Character,
					})
				}
			}
		}
	}
	return out
}
