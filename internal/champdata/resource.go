package champdata

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"strings"
)

// AllowlistSource provides the NameKeys of champions available in the game
// variant.
type AllowlistSource interface {
	LoadAllowlist(ctx context.Context) (map[string]struct{}, error)
}

// CounterDataSource provides the curated counter sheet.
type CounterDataSource interface {
	LoadCounters(ctx context.Context) (CounterSheet, error)
}

// Fetch reads location, which is either an http(s) URL or a local path.
func Fetch(ctx context.Context, client *http.Client, location string) ([]byte, error) {
	if strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://") {
		if client == nil {
			client = http.DefaultClient
		}
		return getBody(ctx, client, location)
	}
	return os.ReadFile(location)
}

// ResourceAllowlist reads a JSON array of display names.
type ResourceAllowlist struct {
	Location   string
	HTTPClient *http.Client
}

// LoadAllowlist implements AllowlistSource.
func (a ResourceAllowlist) LoadAllowlist(ctx context.Context) (map[string]struct{}, error) {
	body, err := Fetch(ctx, a.HTTPClient, a.Location)
	if err != nil {
		return nil, &LoadError{Source: "allowlist", Err: err}
	}
	return ParseAllowlist(body)
}

// ParseAllowlist decodes a JSON array of display names into a NameKey set.
func ParseAllowlist(b []byte) (map[string]struct{}, error) {
	var names []string
	if err := json.Unmarshal(b, &names); err != nil {
		return nil, &LoadError{Source: "allowlist", Err: err}
	}
	if names == nil {
		return nil, loadErr("allowlist", "expected a list of names")
	}

	set := make(map[string]struct{}, len(names))
	for _, n := range names {
		set[Normalize(n)] = struct{}{}
	}
	return set, nil
}

// ResourceCounterSheet reads a curated counters document.
type ResourceCounterSheet struct {
	Location   string
	HTTPClient *http.Client
}

// LoadCounters implements CounterDataSource.
func (c ResourceCounterSheet) LoadCounters(ctx context.Context) (CounterSheet, error) {
	body, err := Fetch(ctx, c.HTTPClient, c.Location)
	if err != nil {
		return nil, &LoadError{Source: "counters", Err: err}
	}
	sheet, err := ParseCounterSheet(body)
	if err != nil {
		return nil, &LoadError{Source: "counters", Err: err}
	}
	return sheet, nil
}
