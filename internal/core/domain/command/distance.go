package command

import (
	"context"
	"fmt"

	"flatbot/internal/core/domain"
	"flatbot/internal/core/port"

	"github.com/rs/zerolog/log"
)

const distanceEmbedColor = 0x00B0F0

// DistanceHandler reports travel times from an address to the configured
// destinations.
type DistanceHandler struct {
	maps port.Geocoder
}

func NewDistanceHandler(maps port.Geocoder) *DistanceHandler {
	return &DistanceHandler{maps: maps}
}

func (h *DistanceHandler) Descriptor() domain.CommandDescriptor {
	return domain.CommandDescriptor{
		Name:        "distance",
		Description: "Check commute times from an address",
		Options: []domain.OptionSpec{
			{
				Name:        "address",
				Description: "The address to check",
				Type:        domain.OptionString,
				Required:    true,
			},
		},
	}
}

func (h *DistanceHandler) Handle(ctx context.Context, interaction *domain.Interaction) (*domain.Outcome, error) {
	address := interaction.OptionValue("address")
	if address == "" {
		return nil, domain.NewHandlerError("Give me an address to check.", nil)
	}

	log.Info().Str("address", address).Msg("checking travel times")

	travels, err := h.maps.Distances(ctx, address)
	if err != nil {
		return nil, domain.NewHandlerError("Could not fetch travel times for that address.", err)
	}

	return &domain.Outcome{
		Kind:  domain.OutcomeComplex,
		Embed: TravelEmbed(address, travels),
	}, nil
}

// TravelEmbed renders travel legs into an embed, shared with the listing
// message reactor.
func TravelEmbed(origin string, travels []domain.Travel) *domain.Embed {
	embed := &domain.Embed{
		Title: origin,
		Color: distanceEmbedColor,
	}

	for _, t := range travels {
		embed.Fields = append(embed.Fields, domain.EmbedField{
			Name:   fmt.Sprintf("To %s:", t.Destination),
			Value:  fmt.Sprintf("%s (%s)", t.Duration, t.Distance),
			Inline: true,
		})
	}

	return embed
}
