package command

import (
	"context"

	"flatbot/internal/core/domain"
)

// PingHandler is a liveness check command. Unrelated to the gateway ping
// interaction kind, which never reaches a handler.
type PingHandler struct{}

func NewPingHandler() *PingHandler {
	return &PingHandler{}
}

func (h *PingHandler) Descriptor() domain.CommandDescriptor {
	return domain.CommandDescriptor{
		Name:        "ping",
		Description: "Check the bot is alive",
	}
}

func (h *PingHandler) Handle(_ context.Context, _ *domain.Interaction) (*domain.Outcome, error) {
	return &domain.Outcome{Kind: domain.OutcomeReply, Content: "pong 🏓", Ephemeral: true}, nil
}
