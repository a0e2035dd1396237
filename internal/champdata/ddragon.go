package champdata

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/tidwall/gjson"
)

// VersionToken identifies a Data Dragon release, e.g. "14.24.1". It is
// passed through to icon URLs untouched.
type VersionToken string

// CatalogSource provides the upstream champion catalog.
type CatalogSource interface {
	ResolveVersion(ctx context.Context) (VersionToken, error)
	LoadCatalog(ctx context.Context, version VersionToken) ([]CatalogEntry, error)
}

// DDragon is a Data Dragon client.
type DDragon struct {
	baseURL    string
	locale     string
	httpClient *http.Client
}

// NewDDragon creates a Data Dragon client. Empty arguments fall back to the
// public host, en_US and a 15s timeout client.
func NewDDragon(baseURL, locale string, httpClient *http.Client) *DDragon {
	if baseURL == "" {
		baseURL = DefaultDDragonBaseURL
	}
	if locale == "" {
		locale = "en_US"
	}
	if httpClient == nil {
		httpClient = NewHTTPClient(15 * time.Second)
	}
	return &DDragon{
		baseURL:    strings.TrimRight(baseURL, "/"),
		locale:     locale,
		httpClient: httpClient,
	}
}

// NewHTTPClient returns a client tuned for a handful of static reads.
func NewHTTPClient(timeout time.Duration) *http.Client {
	transport := &http.Transport{
		MaxIdleConns:        10,
		MaxIdleConnsPerHost: 5,
		IdleConnTimeout:     90 * time.Second,
	}
	return &http.Client{
		Timeout:   timeout,
		Transport: transport,
	}
}

// ResolveVersion returns the latest release listed in versions.json.
func (d *DDragon) ResolveVersion(ctx context.Context) (VersionToken, error) {
	body, err := getBody(ctx, d.httpClient, d.baseURL+"/api/versions.json")
	if err != nil {
		return "", &LoadError{Source: "versions", Err: err}
	}
	if !gjson.ValidBytes(body) {
		return "", loadErr("versions", "invalid JSON")
	}

	doc := gjson.ParseBytes(body)
	if !doc.IsArray() {
		return "", loadErr("versions", "expected an array, got %s", doc.Type)
	}
	latest := doc.Get("0")
	if latest.Type != gjson.String || latest.Str == "" {
		return "", loadErr("versions", "no version listed")
	}
	return VersionToken(latest.Str), nil
}

// LoadCatalog reads champion.json for version. Entries come back in document
// order.
func (d *DDragon) LoadCatalog(ctx context.Context, version VersionToken) ([]CatalogEntry, error) {
	reqURL := fmt.Sprintf("%s/cdn/%s/data/%s/champion.json", d.baseURL, version, d.locale)
	body, err := getBody(ctx, d.httpClient, reqURL)
	if err != nil {
		return nil, &LoadError{Source: "catalog", Err: err}
	}
	return parseCatalog(body)
}

func parseCatalog(body []byte) ([]CatalogEntry, error) {
	if !gjson.ValidBytes(body) {
		return nil, loadErr("catalog", "invalid JSON")
	}
	data := gjson.GetBytes(body, "data")
	if !data.IsObject() {
		return nil, loadErr("catalog", "missing data object")
	}

	var entries []CatalogEntry
	var bad string
	data.ForEach(func(id, champ gjson.Result) bool {
		name := champ.Get("name")
		if name.Type != gjson.String {
			bad = id.String()
			return false
		}
		entries = append(entries, CatalogEntry{
			DisplayName: name.Str,
			IconAssetID: champ.Get("image.full").String(),
		})
		return true
	})
	if bad != "" {
		return nil, loadErr("catalog", "champion %q has no name", bad)
	}
	return entries, nil
}

func getBody(ctx context.Context, client *http.Client, reqURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("GET %s: status %d", reqURL, resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}
