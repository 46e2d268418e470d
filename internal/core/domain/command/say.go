package command

import (
	"context"

	"flatbot/internal/core/domain"
)

// SayHandler echoes a message back as the bot. Flatmates only.
type SayHandler struct {
	roster domain.Roster
}

func NewSayHandler(roster domain.Roster) *SayHandler {
	return &SayHandler{roster: roster}
}

func (h *SayHandler) Descriptor() domain.CommandDescriptor {
	return domain.CommandDescriptor{
		Name:        "say",
		Description: "Make the bot say something",
		Options: []domain.OptionSpec{
			{
				Name:        "message",
				Description: "What to say",
				Type:        domain.OptionString,
				Required:    true,
			},
		},
	}
}

func (h *SayHandler) Handle(_ context.Context, interaction *domain.Interaction) (*domain.Outcome, error) {
	if _, ok := h.roster.ByDiscordID(interaction.UserID); !ok {
		return nil, domain.NewHandlerError("Only flatmates can make me speak.", nil)
	}

	message := interaction.OptionValue("message")
	if message == "" {
		return nil, domain.NewHandlerError("Give me something to say.", nil)
	}

	return &domain.Outcome{Kind: domain.OutcomeReply, Content: message}, nil
}
