package scraper

// CounterStats represents data for a single counter matchup.
type CounterStats struct {
	ChampionName string `json:"champion_name"`
	WinRate      string `json:"win_rate"` // e.g., "54.5%"
	Lane         string `json:"lane"`
}
