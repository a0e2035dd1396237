// Package bot provides the Discord front-end for WR Counterpick.
package bot

import (
	"context"
	"errors"
	"fmt"

	"github.com/bwmarrin/discordgo"
	"github.com/sirupsen/logrus"

	"github.com/wrcounter/internal/champdata"
	"github.com/wrcounter/internal/embeds"
	"github.com/wrcounter/internal/services/scraper"
	"github.com/wrcounter/internal/storage"
)

// Discord caps autocomplete results at 25 choices.
const maxChoices = 25

// WinRateSource looks up community win-rate counters.
type WinRateSource interface {
	GetCounters(ctx context.Context, champion string, lane champdata.Role) ([]*scraper.CounterStats, error)
}

// Bot represents the Discord bot.
type Bot struct {
	session  *discordgo.Session
	roster   *champdata.Roster
	stats    *storage.LookupStats
	winRates WinRateSource
	guildID  string
	log      logrus.FieldLogger
	commands []*discordgo.ApplicationCommand
}

// New creates a new Bot instance. A nil roster keeps the bot online but
// answers every lookup with the unavailable message.
func New(token, guildID string, roster *champdata.Roster, stats *storage.LookupStats, winRates WinRateSource, log logrus.FieldLogger) (*Bot, error) {
	session, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("failed to create Discord session: %w", err)
	}

	// Slash commands only need the guild intent
	session.Identify.Intents = discordgo.IntentsGuilds

	bot := &Bot{
		session:  session,
		roster:   roster,
		stats:    stats,
		winRates: winRates,
		guildID:  guildID,
		log:      log,
	}

	// Register handlers
	session.AddHandler(bot.onReady)
	session.AddHandler(bot.onInteractionCreate)

	return bot, nil
}

// Start connects to Discord and registers the slash commands.
func (b *Bot) Start() error {
	if err := b.session.Open(); err != nil {
		return fmt.Errorf("failed to open Discord session: %w", err)
	}

	b.log.Info("Connected to Discord")

	b.registerCommands()
	return nil
}

// Stop removes guild commands and closes the session.
func (b *Bot) Stop() error {
	if b.guildID != "" {
		for _, cmd := range b.commands {
			if err := b.session.ApplicationCommandDelete(b.session.State.User.ID, b.guildID, cmd.ID); err != nil {
				b.log.WithError(err).WithField("command", cmd.Name).Warn("failed to delete command")
			}
		}
	}
	return b.session.Close()
}

// Ready reports whether lookups can be served.
func (b *Bot) Ready() error {
	if b.roster == nil {
		return errors.New(embeds.UnavailableMessage)
	}
	return nil
}

func (b *Bot) onReady(s *discordgo.Session, event *discordgo.Ready) {
	b.log.WithField("user", event.User.Username).Info("Bot ready")
}

func championOption(description string) *discordgo.ApplicationCommandOption {
	return &discordgo.ApplicationCommandOption{
		Type:         discordgo.ApplicationCommandOptionString,
		Name:         "champion",
		Description:  description,
		Required:     true,
		Autocomplete: true,
	}
}

func laneOption() *discordgo.ApplicationCommandOption {
	choices := make([]*discordgo.ApplicationCommandOptionChoice, 0, len(champdata.Roles))
	for _, r := range champdata.Roles {
		choices = append(choices, &discordgo.ApplicationCommandOptionChoice{Name: embeds.RoleTitle(r), Value: string(r)})
	}
	return &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionString,
		Name:        "lane",
		Description: "Lane to show (top, jungle, mid, adc, support)",
		Required:    false,
		Choices:     choices,
	}
}

// commandDefinitions lists every slash command the bot serves.
func commandDefinitions() []*discordgo.ApplicationCommand {
	return []*discordgo.ApplicationCommand{
		{
			Name:        "ping",
			Description: "Check that the bot is alive",
		},
		{
			Name:        "champion",
			Description: "Show a champion and its curated counters",
			Options: []*discordgo.ApplicationCommandOption{
				championOption("Champion name (e.g. Ahri, Lee Sin)"),
			},
		},
		{
			Name:        "counter",
			Description: "Find curated counter picks against an enemy champion",
			Options: []*discordgo.ApplicationCommandOption{
				championOption("Enemy champion (e.g. Yasuo)"),
				laneOption(),
			},
		},
		{
			Name:        "search",
			Description: "Search the Wild Rift champion roster",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "query",
					Description: "Part of a champion name",
					Required:    false,
				},
			},
		},
		{
			Name:        "winrates",
			Description: "Community win-rate counters from CounterStats.net",
			Options: []*discordgo.ApplicationCommandOption{
				championOption("Enemy champion (e.g. Yasuo)"),
				laneOption(),
			},
		},
		{
			Name:        "top",
			Description: "Most looked-up enemy champions",
		},
	}
}

// registerCommands registers all slash commands. Failures are logged per
// command so one bad definition does not block the rest.
func (b *Bot) registerCommands() {
	commands := commandDefinitions()

	registered := make([]*discordgo.ApplicationCommand, 0, len(commands))
	for _, cmd := range commands {
		rc, err := b.session.ApplicationCommandCreate(b.session.State.User.ID, b.guildID, cmd)
		if err != nil {
			b.log.WithError(err).WithField("command", cmd.Name).Warn("command registration failed")
			continue
		}
		registered = append(registered, rc)
	}

	b.commands = registered
	b.log.WithField("count", len(registered)).Info("Registered commands")
}

// onInteractionCreate handles slash command and autocomplete interactions.
func (b *Bot) onInteractionCreate(s *discordgo.Session, i *discordgo.InteractionCreate) {
	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		switch i.ApplicationCommandData().Name {
		case "ping":
			b.handlePing(s, i)
		case "champion":
			b.handleChampion(s, i)
		case "counter":
			b.handleCounter(s, i)
		case "search":
			b.handleSearch(s, i)
		case "winrates":
			b.handleWinRates(s, i)
		case "top":
			b.handleTop(s, i)
		}
	case discordgo.InteractionApplicationCommandAutocomplete:
		b.handleAutocomplete(s, i)
	}
}

// handlePing handles the /ping command.
func (b *Bot) handlePing(s *discordgo.Session, i *discordgo.InteractionCreate) {
	latency := s.HeartbeatLatency().Milliseconds()
	embed := embeds.Success(
		fmt.Sprintf("🏓 Pong! Latency: **%dms**", latency),
		"✅ Bot is online",
	)
	b.respond(s, i, embed, false)
}

// handleAutocomplete suggests champion names while the user types.
func (b *Bot) handleAutocomplete(s *discordgo.Session, i *discordgo.InteractionCreate) {
	var query string
	for _, opt := range i.ApplicationCommandData().Options {
		if opt.Focused {
			query = opt.StringValue()
		}
	}

	var dir *champdata.Directory
	if b.roster != nil {
		dir = b.roster.Directory
	}

	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionApplicationCommandAutocompleteResult,
		Data: &discordgo.InteractionResponseData{
			Choices: autocompleteChoices(dir, query),
		},
	})
	if err != nil {
		b.log.WithError(err).Debug("autocomplete response failed")
	}
}

// autocompleteChoices returns up to 25 roster names for a partial query. A
// query with nothing to match on lists the start of the roster.
func autocompleteChoices(dir *champdata.Directory, query string) []*discordgo.ApplicationCommandOptionChoice {
	var recs []champdata.Record
	if champdata.Normalize(query) == "" {
		recs = dir.All()
		if len(recs) > maxChoices {
			recs = recs[:maxChoices]
		}
	} else {
		recs = dir.Suggest(query, maxChoices)
	}

	choices := make([]*discordgo.ApplicationCommandOptionChoice, 0, len(recs))
	for _, r := range recs {
		choices = append(choices, &discordgo.ApplicationCommandOptionChoice{Name: r.DisplayName, Value: r.DisplayName})
	}
	return choices
}

// options indexes command options by name.
func options(opts []*discordgo.ApplicationCommandInteractionDataOption) map[string]string {
	m := make(map[string]string, len(opts))
	for _, o := range opts {
		if o.Type == discordgo.ApplicationCommandOptionString {
			m[o.Name] = o.StringValue()
		}
	}
	return m
}

// lookup resolves a champion and records it in the lookup stats. The embed is
// non-nil when the lookup failed and should be shown instead.
func (b *Bot) lookup(ctx context.Context, name string) (champdata.Record, *discordgo.MessageEmbed) {
	if b.roster == nil {
		return champdata.Record{}, embeds.Unavailable()
	}
	rec, ok := b.roster.Directory.Get(name)
	if !ok {
		return champdata.Record{}, embeds.NotFound(name)
	}
	if b.stats != nil {
		if err := b.stats.Record(ctx, rec.Key); err != nil {
			b.log.WithError(err).Warn("failed to record lookup")
		}
	}
	return rec, nil
}

func (b *Bot) respond(s *discordgo.Session, i *discordgo.InteractionCreate, embed *discordgo.MessageEmbed, ephemeral bool) {
	data := &discordgo.InteractionResponseData{
		Embeds: []*discordgo.MessageEmbed{embed},
	}
	if ephemeral {
		data.Flags = discordgo.MessageFlagsEphemeral
	}
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: data,
	})
	if err != nil {
		b.log.WithError(err).Warn("interaction response failed")
	}
}

func (b *Bot) editResponse(s *discordgo.Session, i *discordgo.InteractionCreate, embed *discordgo.MessageEmbed) {
	_, err := s.InteractionResponseEdit(i.Interaction, &discordgo.WebhookEdit{
		Embeds: &[]*discordgo.MessageEmbed{embed},
	})
	if err != nil {
		b.log.WithError(err).Warn("interaction edit failed")
	}
}
