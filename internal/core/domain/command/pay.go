package command

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"flatbot/internal/core/domain"
	"flatbot/internal/core/port"

	"github.com/gofrs/uuid/v5"
	"github.com/rs/zerolog/log"
)

const billEmbedColor = 0xFF0000

// PayHandler creates a shared bill for the flat, split across the configured
// roster. The reply carries a "Paid!" button whose custom id embeds the bill's
// correlation token, picked up later by PaidHandler.
type PayHandler struct {
	store  port.BillStore
	roster domain.Roster
}

func NewPayHandler(store port.BillStore, roster domain.Roster) *PayHandler {
	return &PayHandler{store: store, roster: roster}
}

func (h *PayHandler) Descriptor() domain.CommandDescriptor {
	options := []domain.OptionSpec{
		{
			Name:        "purpose",
			Description: "What is this bill for?",
			Type:        domain.OptionString,
			Required:    true,
		},
		{
			Name:        "receipt",
			Description: "Attach a photograph of the receipt (if available)",
			Type:        domain.OptionAttachment,
			Required:    true,
		},
	}

	for _, name := range h.roster.Names() {
		options = append(options, domain.OptionSpec{
			Name:        name,
			Description: fmt.Sprintf("The amount for %s to pay.", name),
			Type:        domain.OptionInteger,
			Required:    true,
		})
	}

	return domain.CommandDescriptor{
		Name:        "pay",
		Description: "Create a shared bill for the flat",
		Options:     options,
	}
}

func (h *PayHandler) Handle(ctx context.Context, interaction *domain.Interaction) (*domain.Outcome, error) {
	l := log.With().
		Str("guildId", string(interaction.GuildID)).
		Str("command", "pay").
		Logger()

	l.Info().Msg("handling request")

	purpose := interaction.OptionValue("purpose")
	receipt := interaction.OptionValue("receipt")

	if purpose == "" || receipt == "" {
		return nil, domain.NewHandlerError("A bill needs a purpose and a receipt.", nil)
	}

	if _, err := url.ParseRequestURI(receipt); err != nil {
		return nil, domain.NewHandlerError("Failed to parse receipt as a valid url.", err)
	}

	shares := make([]domain.Share, 0, len(h.roster))
	for _, name := range h.roster.Names() {
		amount, err := strconv.ParseInt(interaction.OptionValue(name), 10, 64)
		if err != nil {
			amount = 0
		}
		shares = append(shares, domain.Share{Name: name, Amount: amount})
	}

	token, err := uuid.NewV4()
	if err != nil {
		return nil, domain.NewHandlerError(domain.GenericFailureReply, err)
	}

	bill := &domain.Bill{
		Token:      token.String(),
		GuildID:    interaction.GuildID,
		Purpose:    purpose,
		ReceiptURL: receipt,
		CreatedBy:  interaction.Username,
		CreatedAt:  time.Now(),
		Shares:     shares,
	}

	if _, err := h.store.CreateBill(ctx, bill); err != nil {
		return nil, domain.NewHandlerError("Failed to create the bill.", err)
	}

	l.Info().Str("token", bill.Token).Str("purpose", purpose).Msg("bill created")

	return &domain.Outcome{
		Kind:  domain.OutcomeComplex,
		Embed: billEmbed(bill, h.roster),
		Buttons: []domain.Button{
			{Label: "Paid!", Style: domain.ButtonSuccess, CustomID: "pay:" + bill.Token},
			{Label: "Receipt", Style: domain.ButtonLink, URL: receipt},
		},
	}, nil
}

func billEmbed(bill *domain.Bill, roster domain.Roster) *domain.Embed {
	embed := &domain.Embed{
		Title:       "Bill created",
		Description: fmt.Sprintf("Bill for %s created", bill.Purpose),
		Color:       billEmbedColor,
		ImageURL:    bill.ReceiptURL,
	}

	for _, share := range bill.Shares {
		value := strconv.FormatInt(share.Amount, 10)
		if share.Paid {
			value += " ✅"
		}

		embed.Fields = append(embed.Fields, domain.EmbedField{
			Name:  fmt.Sprintf("Amount for %s to pay:", roster.DisplayName(share.Name)),
			Value: value,
		})
	}

	return embed
}
