package port

import (
	"context"
	"flatbot/internal/core/domain"
)

type CommandPublisher interface {
	// SetGuildCommands publishes the full command set for one guild in a
	// single bulk call. Idempotent, safe to repeat on retry.
	SetGuildCommands(ctx context.Context, guildID domain.EntityID, descriptors []domain.CommandDescriptor) error
}

type Responder interface {
	// Respond delivers the terminal outcome for one interaction.
	Respond(ctx context.Context, interaction *domain.Interaction, outcome *domain.Outcome) error
	// FollowUp issues the single correlated follow-up message for a
	// multi-step interaction, addressed by the interaction token.
	FollowUp(ctx context.Context, interaction *domain.Interaction, outcome *domain.Outcome) error
}

type ThreadPoster interface {
	// PostThread opens a public thread on the given message and posts an
	// embed into it.
	PostThread(ctx context.Context, channelID, messageID, title string, embed *domain.Embed) error
}
