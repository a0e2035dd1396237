package champdata

import "strings"

// IconRef is a resolvable image URL. The zero value is Unknown.
type IconRef string

// Unknown is returned for champions outside the directory. Render it as a
// placeholder.
const Unknown IconRef = ""

// DefaultDDragonBaseURL is the public Data Dragon host.
const DefaultDDragonBaseURL = "https://ddragon.leagueoflegends.com"

// IconResolver builds Data Dragon champion icon URLs.
type IconResolver struct {
	baseURL string
	version VersionToken
	dir     *Directory
}

// NewIconResolver returns a resolver stamping URLs with version.
func NewIconResolver(baseURL string, version VersionToken, dir *Directory) *IconResolver {
	if baseURL == "" {
		baseURL = DefaultDDragonBaseURL
	}
	return &IconResolver{
		baseURL: strings.TrimRight(baseURL, "/"),
		version: version,
		dir:     dir,
	}
}

// Resolve returns the icon for name, or Unknown.
func (r *IconResolver) Resolve(name string) IconRef {
	if r == nil {
		return Unknown
	}
	rec, ok := r.dir.Get(name)
	if !ok || rec.IconAssetID == "" {
		return Unknown
	}
	return IconRef(r.baseURL + "/cdn/" + string(r.version) + "/img/champion/" + rec.IconAssetID)
}
