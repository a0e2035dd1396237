package bot

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/wrcounter/internal/champdata"
	"github.com/wrcounter/internal/embeds"
)

// handleChampion handles the /champion command.
func (b *Bot) handleChampion(s *discordgo.Session, i *discordgo.InteractionCreate) {
	opts := options(i.ApplicationCommandData().Options)
	rec, errEmbed := b.lookup(context.Background(), opts["champion"])
	if errEmbed != nil {
		b.respond(s, i, errEmbed, true)
		return
	}
	b.respond(s, i, embeds.Champion(rec, b.roster), false)
}

// handleCounter handles the /counter command.
func (b *Bot) handleCounter(s *discordgo.Session, i *discordgo.InteractionCreate) {
	embed, ephemeral := b.counterReply(context.Background(), options(i.ApplicationCommandData().Options))
	b.respond(s, i, embed, ephemeral)
}

// counterReply builds the /counter answer. Failures are ephemeral.
func (b *Bot) counterReply(ctx context.Context, opts map[string]string) (*discordgo.MessageEmbed, bool) {
	lane, errEmbed := parseLane(opts["lane"])
	if errEmbed != nil {
		return errEmbed, true
	}

	rec, errEmbed := b.lookup(ctx, opts["champion"])
	if errEmbed != nil {
		return errEmbed, true
	}
	return embeds.Counters(rec, b.roster, lane), false
}

// handleWinRates handles the /winrates command.
func (b *Bot) handleWinRates(s *discordgo.Session, i *discordgo.InteractionCreate) {
	opts := options(i.ApplicationCommandData().Options)

	// Defer interaction (loading state)
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
	})
	if err != nil {
		b.log.WithError(err).Warn("failed to defer interaction")
		return
	}

	b.editResponse(s, i, b.winRatesReply(context.Background(), opts))
}

func (b *Bot) winRatesReply(ctx context.Context, opts map[string]string) *discordgo.MessageEmbed {
	if b.winRates == nil {
		return embeds.Warning("Win rates are not enabled on this bot.", "")
	}

	lane, errEmbed := parseLane(opts["lane"])
	if errEmbed != nil {
		return errEmbed
	}

	rec, errEmbed := b.lookup(ctx, opts["champion"])
	if errEmbed != nil {
		return errEmbed
	}

	stats, err := b.winRates.GetCounters(ctx, rec.DisplayName, lane)
	if err != nil {
		b.log.WithError(err).WithField("champion", rec.DisplayName).Warn("win rate lookup failed")
		return embeds.Error(fmt.Sprintf("No win-rate data for **%s**. Try again later.", rec.DisplayName), "")
	}
	if len(stats) == 0 {
		return embeds.Warning(fmt.Sprintf("No win-rate data for **%s** %s.", rec.DisplayName, embeds.RoleTitle(lane)), "")
	}

	return embeds.WinRates(rec, b.roster.Icons.Resolve(rec.DisplayName), lane, stats)
}

func parseLane(raw string) (champdata.Role, *discordgo.MessageEmbed) {
	if raw == "" {
		return "", nil
	}
	lane, ok := champdata.ParseRole(raw)
	if !ok {
		return "", embeds.Error(fmt.Sprintf("Unknown lane **%s**. Use top, jungle, mid, adc or support.", raw), "")
	}
	return lane, nil
}
