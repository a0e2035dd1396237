// Package scraper fetches community win-rate counters from counterstats.net.
package scraper

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/sirupsen/logrus"

	"github.com/wrcounter/internal/champdata"
	"github.com/wrcounter/internal/storage"
)

// DefaultBaseURL is the counterstats.net League section.
const DefaultBaseURL = "https://counterstats.net/league-of-legends"

const maxResults = 10

// Client is the scraper client.
type Client struct {
	baseURL    string
	httpClient *http.Client
	redis      *storage.RedisClient
	ttl        time.Duration
	log        logrus.FieldLogger
}

// NewClient creates a new scraper client. redis may be disabled.
func NewClient(baseURL string, redis *storage.RedisClient, ttl time.Duration, log logrus.FieldLogger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 10 * time.Second},
		redis:      redis,
		ttl:        ttl,
		log:        log,
	}
}

// GetCounters returns up to ten champions with the best win rate against
// champion, optionally restricted to a lane.
func (c *Client) GetCounters(ctx context.Context, champion string, lane champdata.Role) ([]*CounterStats, error) {
	slug := Slug(champion)
	if slug == "" {
		return nil, fmt.Errorf("no champion name given")
	}

	cacheKey := fmt.Sprintf("counter:v4:%s:%s", slug, lane)
	log := c.log.WithFields(logrus.Fields{"champion": champion, "lane": lane})

	if val, err := c.redis.Get(ctx, cacheKey); err == nil && val != "" {
		var stats []*CounterStats
		if err := json.Unmarshal([]byte(val), &stats); err == nil {
			log.Debug("counter cache hit")
			return stats, nil
		}
	}

	url := c.baseURL + "/" + slug
	log.WithField("url", url).Debug("scraping counters")

	stats, err := c.scrape(ctx, url, lane)
	if err != nil {
		return nil, err
	}

	if len(stats) > 0 {
		data, _ := json.Marshal(stats)
		if err := c.redis.Set(ctx, cacheKey, string(data), c.ttl); err != nil {
			log.WithError(err).Warn("failed to cache counters")
		}
	}

	return stats, nil
}

func (c *Client) scrape(ctx context.Context, url string, lane champdata.Role) ([]*CounterStats, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36")
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.5")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("status code error: %d %s", resp.StatusCode, resp.Status)
	}

	return ParseCounterStats(resp.Body, lane)
}

// ParseCounterStats extracts the "best picks" rows from a counterstats.net
// champion page. An empty lane reads every lane section.
func ParseCounterStats(r io.Reader, lane champdata.Role) ([]*CounterStats, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, err
	}

	var results []*CounterStats
	targetLane := string(lane)

	// Each div.champ-box__wrap is one lane: an h2 naming it and champ-box
	// blocks, one of which lists the best picks.
	doc.Find("div.champ-box__wrap").Each(func(i int, section *goquery.Selection) {
		h2Text := strings.ToLower(section.Find("h2").First().Text())
		detected := detectLane(h2Text)

		if targetLane != "" && detected != lane {
			return
		}

		section.Find("div.champ-box").Each(func(j int, box *goquery.Selection) {
			h3Text := strings.ToLower(box.Find("h3").Text())
			if !strings.Contains(h3Text, "best picks") {
				return
			}

			box.Find("a.champ-box__row").Each(func(k int, row *goquery.Selection) {
				if len(results) >= maxResults {
					return
				}

				// Rows hidden behind "show more" are skipped.
				style, exists := row.Attr("style")
				if exists && strings.Contains(strings.ReplaceAll(style, " ", ""), "display:none") {
					return
				}

				champName := strings.TrimSpace(row.Find("span.champion").Text())
				if champName == "" {
					return
				}

				winRate := strings.TrimSpace(row.Find("span.win span.b").Text())
				if winRate == "" {
					winRate = strings.TrimSpace(row.Find("span.b").First().Text())
				}
				if winRate != "" && !strings.HasSuffix(winRate, "%") {
					winRate = winRate + "%"
				}

				results = append(results, &CounterStats{
					ChampionName: champName,
					WinRate:      winRate,
					Lane:         laneLabel(detected),
				})
			})
		})
	})

	if len(results) == 0 {
		return nil, fmt.Errorf("no counters found for this champion")
	}

	return results, nil
}

func detectLane(headerText string) champdata.Role {
	switch {
	case strings.Contains(headerText, "mid"):
		return champdata.RoleMid
	case strings.Contains(headerText, "top"):
		return champdata.RoleTop
	case strings.Contains(headerText, "jungle"):
		return champdata.RoleJungle
	case strings.Contains(headerText, "adc"), strings.Contains(headerText, "bot"):
		return champdata.RoleADC
	case strings.Contains(headerText, "support"):
		return champdata.RoleSupport
	}
	return ""
}

func laneLabel(r champdata.Role) string {
	switch r {
	case champdata.RoleTop:
		return "Top"
	case champdata.RoleJungle:
		return "Jungle"
	case champdata.RoleMid:
		return "Mid"
	case champdata.RoleADC:
		return "ADC"
	case champdata.RoleSupport:
		return "Support"
	}
	return "All"
}

// counterstats.net slugs that do not follow the display name.
var slugOverrides = map[string]string{
	"nunuwillump": "nunu",
	"monkeyking":  "wukong",
}

// Slug turns a display name into its counterstats.net path segment:
// "Lee Sin" -> "lee-sin", "Kog'Maw" -> "kogmaw", "Dr. Mundo" -> "dr-mundo".
func Slug(name string) string {
	if s, ok := slugOverrides[champdata.Normalize(name)]; ok {
		return s
	}

	var words []string
	for _, w := range strings.Fields(strings.ToLower(name)) {
		if w = champdata.Normalize(w); w != "" {
			words = append(words, w)
		}
	}
	return strings.Join(words, "-")
}
