package api

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/wrcounter/internal/champdata"
)

type championView struct {
	Name string `json:"name"`
	Key  string `json:"key"`
	Icon string `json:"icon"`
}

type counterView struct {
	Champion string   `json:"champion"`
	Strength string   `json:"strength"`
	Notes    string   `json:"notes"`
	Tags     []string `json:"tags,omitempty"`
	Icon     string   `json:"icon"`
}

type countersView struct {
	Champion    championView             `json:"champion"`
	Roles       map[string][]counterView `json:"roles"`
	Unavailable bool                     `json:"counters_unavailable,omitempty"`
}

func (s *Server) view(rec champdata.Record) championView {
	return championView{
		Name: rec.DisplayName,
		Key:  rec.Key,
		Icon: string(s.roster.Icons.Resolve(rec.DisplayName)),
	}
}

// handleSearch returns champions matching ?q=, or the full roster
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	recs := s.roster.Directory.Search(r.URL.Query().Get("q"))

	items := make([]championView, 0, len(recs))
	for _, rec := range recs {
		items = append(items, s.view(rec))
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"items":       items,
		"total_count": len(items),
		"version":     s.roster.Version,
	})
}

// lookup resolves {name} and records the lookup.
func (s *Server) lookup(w http.ResponseWriter, r *http.Request) (champdata.Record, bool) {
	name, err := routeName(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid champion name")
		return champdata.Record{}, false
	}
	rec, ok := s.roster.Directory.Get(name)
	if !ok {
		respondError(w, http.StatusNotFound, "Champion not found")
		return champdata.Record{}, false
	}
	if s.stats != nil {
		if err := s.stats.Record(r.Context(), rec.Key); err != nil {
			s.log.WithError(err).Warn("failed to record lookup")
		}
	}
	return rec, true
}

// routeName returns the decoded {name} parameter. chi matches against
// RawPath when it is set, leaving escapes such as %26 in the parameter.
func routeName(r *http.Request) (string, error) {
	name := chi.URLParam(r, "name")
	if r.URL.RawPath == "" {
		return name, nil
	}
	return url.PathUnescape(name)
}

// handleGetChampion returns a single champion
func (s *Server) handleGetChampion(w http.ResponseWriter, r *http.Request) {
	rec, ok := s.lookup(w, r)
	if !ok {
		return
	}
	respondJSON(w, http.StatusOK, s.view(rec))
}

// handleGetCounters returns the curated counters for all five roles
func (s *Server) handleGetCounters(w http.ResponseWriter, r *http.Request) {
	rec, ok := s.lookup(w, r)
	if !ok {
		return
	}

	counters := s.roster.Counters.Resolve(rec.DisplayName)
	out := countersView{
		Champion:    s.view(rec),
		Roles:       make(map[string][]counterView, len(champdata.Roles)),
		Unavailable: s.roster.CountersErr != nil,
	}
	for _, role := range champdata.Roles {
		entries := counters.For(role)
		views := make([]counterView, 0, len(entries))
		for _, e := range entries {
			views = append(views, counterView{
				Champion: e.Character,
				Strength: string(e.DisplayStrength()),
				Notes:    e.Notes,
				Tags:     e.Tags,
				Icon:     string(s.roster.Icons.Resolve(e.Character)),
			})
		}
		out.Roles[string(role)] = views
	}

	respondJSON(w, http.StatusOK, out)
}

// handleGetWinRates returns community win-rate counters
func (s *Server) handleGetWinRates(w http.ResponseWriter, r *http.Request) {
	if s.winRates == nil {
		respondError(w, http.StatusNotImplemented, "Win rates are not enabled")
		return
	}

	var lane champdata.Role
	if q := r.URL.Query().Get("lane"); q != "" {
		l, ok := champdata.ParseRole(q)
		if !ok {
			respondError(w, http.StatusBadRequest, "Unknown lane")
			return
		}
		lane = l
	}

	rec, ok := s.lookup(w, r)
	if !ok {
		return
	}

	stats, err := s.winRates.GetCounters(r.Context(), rec.DisplayName, lane)
	if err != nil {
		s.log.WithError(err).WithField("champion", rec.DisplayName).Warn("win rate lookup failed")
		respondError(w, http.StatusBadGateway, "Failed to fetch win rates")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"champion": s.view(rec),
		"lane":     lane,
		"items":    stats,
	})
}

// handleDiagnostics returns counter sheet references that do not match the roster
func (s *Server) handleDiagnostics(w http.ResponseWriter, r *http.Request) {
	diags := s.roster.Diagnostics
	if diags == nil {
		diags = []champdata.Diagnostic{}
	}
	out := map[string]interface{}{
		"items":       diags,
		"total_count": len(diags),
	}
	if s.roster.CountersErr != nil {
		out["counters_error"] = s.roster.CountersErr.Error()
	}
	respondJSON(w, http.StatusOK, out)
}

// handleTopLookups returns the most looked-up champions
func (s *Server) handleTopLookups(w http.ResponseWriter, r *http.Request) {
	if s.stats == nil {
		respondError(w, http.StatusNotImplemented, "Lookup statistics are not enabled")
		return
	}

	n := 10
	if q := r.URL.Query().Get("n"); q != "" {
		v, err := strconv.Atoi(q)
		if err != nil || v < 1 || v > 100 {
			respondError(w, http.StatusBadRequest, "n must be between 1 and 100")
			return
		}
		n = v
	}

	top, err := s.stats.Top(r.Context(), n)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch statistics")
		return
	}
	distinct, err := s.stats.Count(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch statistics")
		return
	}

	type item struct {
		Key   string `json:"key"`
		Name  string `json:"name"`
		Count int64  `json:"count"`
	}
	items := make([]item, 0, len(top))
	for _, c := range top {
		name := c.Key
		if rec, ok := s.roster.Directory.Get(c.Key); ok {
			name = rec.DisplayName
		}
		items = append(items, item{Key: c.Key, Name: name, Count: c.Count})
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"items":    items,
		"distinct": distinct,
	})
}
