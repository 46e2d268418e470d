package command

import (
	"context"

	"flatbot/internal/core/domain"
	"flatbot/internal/core/port"

	"github.com/rs/zerolog/log"
)

// PaidHandler settles a flatmate's share when the "Paid!" button on a bill is
// pressed. It is registered under the component kind and correlated to the
// original bill by the token in the button's custom id; no session state is
// held between the two steps.
type PaidHandler struct {
	store  port.BillStore
	roster domain.Roster
}

func NewPaidHandler(store port.BillStore, roster domain.Roster) *PaidHandler {
	return &PaidHandler{store: store, roster: roster}
}

func (h *PaidHandler) Descriptor() domain.CommandDescriptor {
	return domain.CommandDescriptor{
		Name:        "pay",
		Description: "Settle your share of a bill",
	}
}

func (h *PaidHandler) Handle(ctx context.Context, interaction *domain.Interaction) (*domain.Outcome, error) {
	_, token := SplitCustomID(interaction.CustomID)
	if token == "" {
		return nil, domain.NewHandlerError(domain.GenericFailureReply, domain.ErrCommandNotFound)
	}

	flatmate, ok := h.roster.ByDiscordID(interaction.UserID)
	if !ok {
		return nil, domain.NewHandlerError("Only flatmates can settle bills.", nil)
	}

	if err := h.store.MarkPaid(ctx, token, flatmate.Name); err != nil {
		return nil, domain.NewHandlerError("Failed to settle your share.", err)
	}

	bill, err := h.store.GetBillByToken(ctx, token)
	if err != nil {
		return nil, domain.NewHandlerError("Failed to settle your share.", err)
	}

	log.Info().
		Str("token", token).
		Str("flatmate", flatmate.Name).
		Msg("share settled")

	return &domain.Outcome{
		Kind:           domain.OutcomeComplex,
		UpdateOriginal: true,
		Embed:          billEmbed(bill, h.roster),
		Buttons: []domain.Button{
			{Label: "Paid!", Style: domain.ButtonSuccess, CustomID: "pay:" + bill.Token},
			{Label: "Receipt", Style: domain.ButtonLink, URL: bill.ReceiptURL},
		},
		FollowUp: &domain.Outcome{
			Kind:      domain.OutcomeReply,
			Content:   flatmate.DisplayName + " paid!",
			Ephemeral: true,
		},
	}, nil
}
