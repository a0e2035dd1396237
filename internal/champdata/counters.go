package champdata

import (
	"encoding/json"
	"fmt"

	"github.com/tidwall/gjson"
)

// Role is one of the five lanes a counter can be recommended for.
type Role string

const (
	RoleTop     Role = "top"
	RoleJungle  Role = "jungle"
	RoleMid     Role = "mid"
	RoleADC     Role = "adc"
	RoleSupport Role = "support"
)

// Roles lists every role in display order.
var Roles = []Role{RoleTop, RoleJungle, RoleMid, RoleADC, RoleSupport}

// ParseRole maps common lane spellings onto a Role.
func ParseRole(s string) (Role, bool) {
	switch Normalize(s) {
	case "top":
		return RoleTop, true
	case "jungle", "jg", "jung":
		return RoleJungle, true
	case "mid", "middle":
		return RoleMid, true
	case "adc", "bot", "bottom", "duo":
		return RoleADC, true
	case "support", "supp", "sup":
		return RoleSupport, true
	}
	return "", false
}

// Strength grades a counter. The curated file may use values beyond the
// well-known ones; they are kept verbatim.
type Strength string

const (
	StrengthCounter Strength = "Counter"
	StrengthSkill   Strength = "Skill"
	StrengthEven    Strength = "Even"
)

// CounterEntry is one curated counter recommendation.
type CounterEntry struct {
	Character string   `json:"champion"`
	Strength  Strength `json:"strength,omitempty"`
	Notes     string   `json:"notes,omitempty"`
	Tags      []string `json:"tags,omitempty"`
}

// UnmarshalJSON accepts the counter's name under either "champion" or
// "character".
func (e *CounterEntry) UnmarshalJSON(b []byte) error {
	var raw struct {
		Champion  string   `json:"champion"`
		Character string   `json:"character"`
		Strength  Strength `json:"strength"`
		Notes     string   `json:"notes"`
		Tags      []string `json:"tags"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	*e = CounterEntry{
		Character: raw.Champion,
		Strength:  raw.Strength,
		Notes:     raw.Notes,
		Tags:      raw.Tags,
	}
	if e.Character == "" {
		e.Character = raw.Character
	}
	return nil
}

// DisplayStrength returns the strength, defaulting blank values to Skill.
func (e CounterEntry) DisplayStrength() Strength {
	if e.Strength == "" {
		return StrengthSkill
	}
	return e.Strength
}

// PerRoleCounters holds the counters for one enemy champion, per role.
type PerRoleCounters struct {
	Top     []CounterEntry `json:"top"`
	Jungle  []CounterEntry `json:"jungle"`
	Mid     []CounterEntry `json:"mid"`
	ADC     []CounterEntry `json:"adc"`
	Support []CounterEntry `json:"support"`

	// malformed holds the decode error of a sheet entry that was skipped.
	malformed string
}

// For returns the entries for a role.
func (p PerRoleCounters) For(r Role) []CounterEntry {
	switch r {
	case RoleTop:
		return p.Top
	case RoleJungle:
		return p.Jungle
	case RoleMid:
		return p.Mid
	case RoleADC:
		return p.ADC
	case RoleSupport:
		return p.Support
	}
	return nil
}

// Empty reports whether no role has any entry.
func (p PerRoleCounters) Empty() bool {
	for _, r := range Roles {
		if len(p.For(r)) > 0 {
			return false
		}
	}
	return true
}

// filled returns a copy where every role is a non-nil slice.
func (p PerRoleCounters) filled() PerRoleCounters {
	fill := func(s []CounterEntry) []CounterEntry {
		if s == nil {
			return []CounterEntry{}
		}
		// Full slice expression: a caller's append must not write into the sheet.
		return s[:len(s):len(s)]
	}
	return PerRoleCounters{
		Top:     fill(p.Top),
		Jungle:  fill(p.Jungle),
		Mid:     fill(p.Mid),
		ADC:     fill(p.ADC),
		Support: fill(p.Support),
	}
}

// CounterSheet maps an enemy's display name, exactly as written in the
// curated file, to its counters.
type CounterSheet map[string]PerRoleCounters

// ParseCounterSheet decodes a curated counters document. Both the flat shape
// {"Ahri": {...}} and the wrapped shape {"champions": {"Ahri": {...}}} are
// accepted. Top-level values that are not objects are metadata and ignored.
// An object that does not decode is kept as an empty, malformed entry so
// Diagnose can report it; the rest of the sheet still loads.
func ParseCounterSheet(b []byte) (CounterSheet, error) {
	if !gjson.ValidBytes(b) {
		return nil, fmt.Errorf("invalid JSON")
	}
	doc := gjson.ParseBytes(b)
	if !doc.IsObject() {
		return nil, fmt.Errorf("expected an object, got %s", doc.Type)
	}
	if wrapped := doc.Get("champions"); wrapped.IsObject() {
		doc = wrapped
	}

	sheet := CounterSheet{}
	doc.ForEach(func(key, value gjson.Result) bool {
		if !value.IsObject() {
			return true
		}
		var counters PerRoleCounters
		if err := json.Unmarshal([]byte(value.Raw), &counters); err != nil {
			sheet[key.String()] = PerRoleCounters{malformed: err.Error()}
			return true
		}
		sheet[key.String()] = counters
		return true
	})
	return sheet, nil
}

// CounterQuery answers "who counters X" from a CounterSheet.
type CounterQuery struct {
	sheet CounterSheet
}

// NewCounterQuery wraps a sheet. A nil sheet behaves as an empty one.
func NewCounterQuery(sheet CounterSheet) *CounterQuery {
	return &CounterQuery{sheet: sheet}
}

// Resolve returns the counters for name, looked up by exact display name.
// Missing champions or roles come back as empty slices. The slices are
// shared with the sheet and must not be modified.
func (q *CounterQuery) Resolve(name string) PerRoleCounters {
	if q == nil {
		return PerRoleCounters{}.filled()
	}
	return q.sheet[name].filled()
}
