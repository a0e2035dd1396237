// Package embeds provides Discord embed builders for WR Counterpick.
package embeds

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/wrcounter/internal/champdata"
	"github.com/wrcounter/internal/services/scraper"
	"github.com/wrcounter/internal/storage"
)

// Colors for embeds
const (
	ColorSuccess = 0x00FF00 // Green
	ColorError   = 0xFF0000 // Red
	ColorInfo    = 0x3498DB // Blue
	ColorWarning = 0xFFFF00 // Yellow
	ColorCounter = 0xE74C3C // Modern red
)

// UnavailableMessage is shown whenever the roster failed to load.
const UnavailableMessage = "Could not load champion data."

// ComingSoon is shown for a role without curated counters.
const ComingSoon = "Coming soon."

// Discord caps field values at 1024 characters.
const maxFieldValue = 1024

// Success creates a success embed.
func Success(message, title string) *discordgo.MessageEmbed {
	if title == "" {
		title = "✅ Success"
	}
	return &discordgo.MessageEmbed{
		Title:       title,
		Description: message,
		Color:       ColorSuccess,
	}
}

// Error creates an error embed.
func Error(message, title string) *discordgo.MessageEmbed {
	if title == "" {
		title = "❌ Error"
	}
	return &discordgo.MessageEmbed{
		Title:       title,
		Description: message,
		Color:       ColorError,
	}
}

// Warning creates a warning embed.
func Warning(message, title string) *discordgo.MessageEmbed {
	if title == "" {
		title = "⚠️ Warning"
	}
	return &discordgo.MessageEmbed{
		Title:       title,
		Description: message,
		Color:       ColorWarning,
	}
}

// Info creates an info embed.
func Info(message, title string) *discordgo.MessageEmbed {
	if title == "" {
		title = "ℹ️ Info"
	}
	return &discordgo.MessageEmbed{
		Title:       title,
		Description: message,
		Color:       ColorInfo,
	}
}

// Unavailable is the single error state for a failed roster load.
func Unavailable() *discordgo.MessageEmbed {
	return Error(UnavailableMessage, "❌ Champion data unavailable")
}

// NotFound reports an unknown champion name.
func NotFound(name string) *discordgo.MessageEmbed {
	return Error(fmt.Sprintf("Champion **%s** not found. Try `/search`.", name), "")
}

// GetPositionEmoji returns emoji for each role.
func GetPositionEmoji(r champdata.Role) string {
	switch r {
	case champdata.RoleTop:
		return "🛡️"
	case champdata.RoleJungle:
		return "🌲"
	case champdata.RoleMid:
		return "⚡"
	case champdata.RoleADC:
		return "🏹"
	case champdata.RoleSupport:
		return "💚"
	}
	return "🎮"
}

// RoleTitle returns the display name of a role.
func RoleTitle(r champdata.Role) string {
	switch r {
	case champdata.RoleADC:
		return "ADC"
	case "":
		return "All"
	}
	return strings.ToUpper(string(r[:1])) + string(r[1:])
}

func thumbnail(icon champdata.IconRef) *discordgo.MessageEmbedThumbnail {
	if icon == champdata.Unknown {
		return nil
	}
	return &discordgo.MessageEmbedThumbnail{URL: string(icon)}
}

// Counters creates the five-role counter card for an enemy champion. When
// only is set, just that role is shown.
func Counters(rec champdata.Record, roster *champdata.Roster, only champdata.Role) *discordgo.MessageEmbed {
	counters := roster.Counters.Resolve(rec.DisplayName)

	embed := &discordgo.MessageEmbed{
		Title:     fmt.Sprintf("⚔️ Counters for %s", rec.DisplayName),
		Color:     ColorCounter,
		Thumbnail: thumbnail(roster.Icons.Resolve(rec.DisplayName)),
		Footer: &discordgo.MessageEmbedFooter{
			Text: fmt.Sprintf("Data Dragon %s", roster.Version),
		},
	}
	if roster.CountersErr != nil {
		embed.Description = "Curated counters are temporarily unavailable."
	}

	for _, role := range champdata.Roles {
		if only != "" && role != only {
			continue
		}
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  fmt.Sprintf("%s %s", GetPositionEmoji(role), RoleTitle(role)),
			Value: laneValue(counters.For(role), roster.Icons),
		})
	}

	return embed
}

func laneValue(entries []champdata.CounterEntry, icons *champdata.IconResolver) string {
	if len(entries) == 0 {
		return ComingSoon
	}

	var sb strings.Builder
	for _, e := range entries {
		marker := ""
		if icons.Resolve(e.Character) == champdata.Unknown {
			marker = " ❔"
		}
		line := fmt.Sprintf("**%s**%s `%s`", e.Character, marker, e.DisplayStrength())
		if len(e.Tags) > 0 {
			line += " · " + strings.Join(e.Tags, " • ")
		}
		if e.Notes != "" {
			line += "\n" + e.Notes
		}
		sb.WriteString(line)
		sb.WriteString("\n")
	}
	return truncate(strings.TrimRight(sb.String(), "\n"), maxFieldValue)
}

// Champion creates the detail card for one champion.
func Champion(rec champdata.Record, roster *champdata.Roster) *discordgo.MessageEmbed {
	embed := Counters(rec, roster, "")
	embed.Title = rec.DisplayName
	embed.Color = ColorInfo
	if embed.Thumbnail == nil {
		embed.Description = strings.TrimSpace("❔ No icon available.\n" + embed.Description)
	}
	return embed
}

// SearchResults lists matching champions.
func SearchResults(query string, recs []champdata.Record, total int) *discordgo.MessageEmbed {
	if len(recs) == 0 {
		return Warning(fmt.Sprintf("No champion matches **%s**.", query), "🔍 No results")
	}

	var sb strings.Builder
	for _, r := range recs {
		sb.WriteString(fmt.Sprintf("• **%s**\n", r.DisplayName))
	}
	title := fmt.Sprintf("🔍 %d champions", total)
	if query != "" {
		title = fmt.Sprintf("🔍 %d matches for \"%s\"", total, query)
	}
	if len(recs) < total {
		sb.WriteString(fmt.Sprintf("…and %d more", total-len(recs)))
	}

	return &discordgo.MessageEmbed{
		Title:       title,
		Description: truncate(sb.String(), 4096),
		Color:       ColorInfo,
	}
}

// WinRates lists community win-rate counters.
func WinRates(rec champdata.Record, icon champdata.IconRef, lane champdata.Role, stats []*scraper.CounterStats) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title:     fmt.Sprintf("📊 Best picks against %s", rec.DisplayName),
		Color:     ColorCounter,
		Thumbnail: thumbnail(icon),
		Footer: &discordgo.MessageEmbedFooter{
			Text: "📊 Data from CounterStats.net",
		},
	}

	var sb strings.Builder
	if lane != "" {
		sb.WriteString(fmt.Sprintf("**Lane:** %s\n\n", RoleTitle(lane)))
	}
	for k, c := range stats {
		if k >= 5 {
			break
		}
		sb.WriteString(fmt.Sprintf("%s **%s** — `%s`\n", getMedal(k), c.ChampionName, c.WinRate))
	}
	embed.Description = sb.String()
	return embed
}

// TopLookups lists the most looked-up enemies out of distinct champions
// looked up overall.
func TopLookups(counts []storage.LookupCount, distinct int64, dir *champdata.Directory) *discordgo.MessageEmbed {
	if len(counts) == 0 {
		return Info("Nobody has looked up a champion yet.", "🏆 Most looked-up enemies")
	}

	var sb strings.Builder
	for i, c := range counts {
		name := c.Key
		if rec, ok := dir.Get(c.Key); ok {
			name = rec.DisplayName
		}
		sb.WriteString(fmt.Sprintf("%s **%s** — %d\n", getMedal(i), name, c.Count))
	}
	return &discordgo.MessageEmbed{
		Title:       "🏆 Most looked-up enemies",
		Description: sb.String(),
		Color:       ColorInfo,
		Footer: &discordgo.MessageEmbedFooter{
			Text: fmt.Sprintf("%d champions looked up", distinct),
		},
	}
}

func getMedal(index int) string {
	switch index {
	case 0:
		return "🥇"
	case 1:
		return "🥈"
	case 2:
		return "🥉"
	default:
		return fmt.Sprintf("`%d.`", index+1)
	}
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
