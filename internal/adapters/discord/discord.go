package discord

import (
	"context"
	"fmt"

	"flatbot/internal/core/domain"
	"flatbot/internal/core/service"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog/log"
)

// Gateway connects the supervisor and the listing reactor to the Discord
// gateway. It also implements the command publisher, responder and thread
// poster ports on top of the same session.
type Gateway struct {
	session    *discordgo.Session
	supervisor *service.Supervisor
	reactor    *service.ListingReactor
	ctx        context.Context
}

func NewGateway(token string) (*Gateway, error) {
	session, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("failed creating discord session: %w", err)
	}

	session.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMessages |
		discordgo.IntentsMessageContent

	return &Gateway{session: session}, nil
}

// Attach wires the supervisor and reactor into the gateway's event handlers.
// The context bounds background work started from those handlers, so reactor
// lookups stop once it is cancelled. Must be called before Open.
func (g *Gateway) Attach(ctx context.Context, supervisor *service.Supervisor, reactor *service.ListingReactor) {
	g.ctx = ctx
	g.supervisor = supervisor
	g.reactor = reactor

	g.session.AddHandler(g.onGuildCreate)
	g.session.AddHandler(g.onGuildDelete)
	g.session.AddHandler(g.onInteraction)
	g.session.AddHandler(g.onMessage)
}

func (g *Gateway) Open() error {
	if err := g.session.Open(); err != nil {
		return fmt.Errorf("failed opening discord gateway: %w", err)
	}

	return nil
}

func (g *Gateway) Close() error {
	return g.session.Close()
}

func (g *Gateway) onGuildCreate(_ *discordgo.Session, event *discordgo.GuildCreate) {
	log.Info().Str("guildId", event.ID).Str("guildName", event.Name).Msg("joined guild")

	if err := g.supervisor.StartGuild(domain.EntityID(event.ID), event.Name); err != nil {
		log.Error().Err(err).Str("guildId", event.ID).Msg("failed to start guild actor")
	}
}

func (g *Gateway) onGuildDelete(_ *discordgo.Session, event *discordgo.GuildDelete) {
	log.Info().Str("guildId", event.ID).Msg("left guild")

	if err := g.supervisor.StopGuild(domain.EntityID(event.ID)); err != nil {
		log.Warn().Err(err).Str("guildId", event.ID).Msg("failed to stop guild actor")
	}
}

func (g *Gateway) onInteraction(_ *discordgo.Session, event *discordgo.InteractionCreate) {
	interaction := convertInteraction(event.Interaction)
	if interaction.GuildID == "" {
		log.Debug().Str("interactionId", interaction.ID).Msg("ignoring interaction outside a guild")
		return
	}

	_ = g.supervisor.Dispatch(interaction.GuildID, domain.InteractionEvent{Interaction: interaction})
}

func (g *Gateway) onMessage(s *discordgo.Session, event *discordgo.MessageCreate) {
	if event.Author == nil || event.Author.ID == s.State.User.ID {
		return
	}

	message := &domain.Message{
		ID:        event.ID,
		ChannelID: event.ChannelID,
		GuildID:   domain.EntityID(event.GuildID),
		Content:   event.Content,
		AuthorID:  event.Author.ID,
	}

	if !g.reactor.Precheck(message) {
		return
	}

	go g.reactor.Process(g.ctx, message)
}

func (g *Gateway) SetGuildCommands(_ context.Context, guildID domain.EntityID,
	descriptors []domain.CommandDescriptor) error {
	commands := make([]*discordgo.ApplicationCommand, len(descriptors))
	for i, d := range descriptors {
		commands[i] = convertDescriptor(d)
	}

	_, err := g.session.ApplicationCommandBulkOverwrite(g.session.State.User.ID, string(guildID), commands)
	if err != nil {
		return fmt.Errorf("failed to overwrite guild commands: %w", err)
	}

	return nil
}

func (g *Gateway) Respond(_ context.Context, interaction *domain.Interaction, outcome *domain.Outcome) error {
	response := convertOutcome(interaction, outcome)
	if response == nil {
		return nil
	}

	raw := &discordgo.Interaction{ID: interaction.ID, Token: interaction.Token}
	if err := g.session.InteractionRespond(raw, response); err != nil {
		return fmt.Errorf("failed to send interaction response: %w", err)
	}

	return nil
}

func (g *Gateway) FollowUp(_ context.Context, interaction *domain.Interaction, outcome *domain.Outcome) error {
	raw := &discordgo.Interaction{
		ID:    interaction.ID,
		Token: interaction.Token,
		AppID: g.session.State.User.ID,
	}

	params := &discordgo.WebhookParams{Content: outcome.Content}
	if outcome.Ephemeral {
		params.Flags = discordgo.MessageFlagsEphemeral
	}
	if outcome.Embed != nil {
		params.Embeds = []*discordgo.MessageEmbed{convertEmbed(outcome.Embed)}
	}

	if _, err := g.session.FollowupMessageCreate(raw, true, params); err != nil {
		return fmt.Errorf("failed to send follow-up message: %w", err)
	}

	return nil
}

func (g *Gateway) PostThread(_ context.Context, channelID, messageID, title string, embed *domain.Embed) error {
	thread, err := g.session.MessageThreadStartComplex(channelID, messageID, &discordgo.ThreadStart{
		Name:                title,
		Type:                discordgo.ChannelTypeGuildPublicThread,
		AutoArchiveDuration: 1440,
	})
	if err != nil {
		return fmt.Errorf("failed to create thread: %w", err)
	}

	if _, err := g.session.ChannelMessageSendEmbed(thread.ID, convertEmbed(embed)); err != nil {
		return fmt.Errorf("failed to post into thread: %w", err)
	}

	return nil
}
