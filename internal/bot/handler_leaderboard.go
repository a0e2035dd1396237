package bot

import (
	"context"

	"github.com/bwmarrin/discordgo"

	"github.com/wrcounter/internal/embeds"
)

// Number of entries on the /top board.
const topSize = 10

// Number of names listed by /search before it summarizes the rest.
const searchSize = 20

// handleTop handles the /top command.
func (b *Bot) handleTop(s *discordgo.Session, i *discordgo.InteractionCreate) {
	b.respond(s, i, b.topReply(context.Background()), false)
}

func (b *Bot) topReply(ctx context.Context) *discordgo.MessageEmbed {
	if b.roster == nil {
		return embeds.Unavailable()
	}
	if b.stats == nil {
		return embeds.Warning("Lookup statistics are not enabled on this bot.", "")
	}

	top, err := b.stats.Top(ctx, topSize)
	if err != nil {
		b.log.WithError(err).Warn("failed to load lookup stats")
		return embeds.Error("Could not load lookup statistics.", "")
	}
	distinct, err := b.stats.Count(ctx)
	if err != nil {
		b.log.WithError(err).Warn("failed to count lookups")
		return embeds.Error("Could not load lookup statistics.", "")
	}
	return embeds.TopLookups(top, distinct, b.roster.Directory)
}

// handleSearch handles the /search command.
func (b *Bot) handleSearch(s *discordgo.Session, i *discordgo.InteractionCreate) {
	b.respond(s, i, b.searchReply(options(i.ApplicationCommandData().Options)["query"]), false)
}

func (b *Bot) searchReply(query string) *discordgo.MessageEmbed {
	if b.roster == nil {
		return embeds.Unavailable()
	}

	recs := b.roster.Directory.Search(query)
	total := len(recs)
	if len(recs) > searchSize {
		recs = recs[:searchSize]
	}
	return embeds.SearchResults(query, recs, total)
}
