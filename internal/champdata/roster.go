package champdata

import (
	"context"
	"errors"
	"io"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// Sources bundles the three inputs of a roster.
type Sources struct {
	Allowlist AllowlistSource
	Catalog   CatalogSource
	Counters  CounterDataSource

	// IconBaseURL is the host icon URLs are built on. Empty means the public
	// Data Dragon host.
	IconBaseURL string
}

// Option configures Load.
type Option func(*loadOptions)

type loadOptions struct {
	log     logrus.FieldLogger
	version VersionToken
}

// WithLogger sets the logger used while loading.
func WithLogger(l logrus.FieldLogger) Option {
	return func(o *loadOptions) { o.log = l }
}

// WithVersion pins the catalog version and skips version discovery.
func WithVersion(v VersionToken) Option {
	return func(o *loadOptions) { o.version = v }
}

// Roster is the result of a successful load. Every front-end reads from one
// Roster. Its fields are read-only: they are set by NewRoster or Load and
// never changed afterwards.
type Roster struct {
	Version     VersionToken
	Directory   *Directory
	Sheet       CounterSheet
	Icons       *IconResolver
	Counters    *CounterQuery
	Diagnostics []Diagnostic

	// CountersErr is set when the counter sheet failed to load and an empty
	// sheet is being served instead.
	CountersErr error
}

// NewRoster assembles a roster from already-loaded inputs.
func NewRoster(iconBaseURL string, version VersionToken, catalog []CatalogEntry, allow map[string]struct{}, sheet CounterSheet) *Roster {
	return newRoster(iconBaseURL, version, catalog, allow, sheet, nil)
}

func newRoster(iconBaseURL string, version VersionToken, catalog []CatalogEntry, allow map[string]struct{}, sheet CounterSheet, countersErr error) *Roster {
	if sheet == nil {
		sheet = CounterSheet{}
	}
	dir := BuildDirectory(catalog, allow)
	return &Roster{
		Version:     version,
		Directory:   dir,
		Sheet:       sheet,
		Icons:       NewIconResolver(iconBaseURL, version, dir),
		Counters:    NewCounterQuery(sheet),
		Diagnostics: Diagnose(sheet, dir),
		CountersErr: countersErr,
	}
}

// Load fetches all sources concurrently and builds the roster.
//
// Allowlist and catalog failures are fatal and reported as a
// *DirectoryBuildError wrapping the *LoadError. A counter sheet failure is
// logged and replaced by an empty sheet.
func Load(ctx context.Context, src Sources, opts ...Option) (*Roster, error) {
	o := loadOptions{log: discardLogger()}
	for _, opt := range opts {
		opt(&o)
	}
	if src.Allowlist == nil || src.Catalog == nil {
		return nil, &DirectoryBuildError{Err: errors.New("allowlist and catalog sources are required")}
	}

	var (
		allow       map[string]struct{}
		version     = o.version
		catalog     []CatalogEntry
		sheet       CounterSheet
		countersErr error
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		set, err := src.Allowlist.LoadAllowlist(gctx)
		if err != nil {
			return err
		}
		allow = set
		o.log.WithField("count", len(set)).Debug("allowlist loaded")
		return nil
	})

	g.Go(func() error {
		if version == "" {
			v, err := src.Catalog.ResolveVersion(gctx)
			if err != nil {
				return err
			}
			version = v
		}
		entries, err := src.Catalog.LoadCatalog(gctx, version)
		if err != nil {
			return err
		}
		catalog = entries
		o.log.WithFields(logrus.Fields{"version": version, "count": len(entries)}).Debug("catalog loaded")
		return nil
	})

	if src.Counters != nil {
		// Uses the parent context so a fatal failure elsewhere does not
		// masquerade as a counter sheet error.
		g.Go(func() error {
			s, err := src.Counters.LoadCounters(ctx)
			if err != nil {
				countersErr = err
				return nil
			}
			sheet = s
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, &DirectoryBuildError{Err: err}
	}

	if countersErr != nil {
		o.log.WithError(countersErr).Warn("counter sheet unavailable, serving without curated counters")
	}

	r := newRoster(src.IconBaseURL, version, catalog, allow, sheet, countersErr)

	for _, d := range r.Diagnostics {
		o.log.WithFields(logrus.Fields{
			"kind":       d.Kind,
			"key":        d.Key,
			"role":       d.Role,
			"counter":    d.Counter,
			"suggestion": d.Suggestion,
			"detail":     d.Detail,
		}).Warn("counter sheet reference does not match the roster")
	}
	o.log.WithFields(logrus.Fields{
		"version":   version,
		"champions": r.Directory.Len(),
		"sheet":     len(r.Sheet),
	}).Info("champion data loaded")

	return r, nil
}

func discardLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}
