package command

import (
	"context"
	"fmt"

	"flatbot/internal/core/domain"
	"flatbot/internal/core/port"

	"github.com/rs/zerolog/log"
)

const maxSuggestions = 25

// ShopHandler looks up the details of a rental listing chosen through
// autocomplete. The same command name is registered twice: once under the
// command kind (this handler) and once under the autocomplete kind
// (ShopAutocompleteHandler).
type ShopHandler struct {
	listings port.ListingClient
}

func NewShopHandler(listings port.ListingClient) *ShopHandler {
	return &ShopHandler{listings: listings}
}

func (h *ShopHandler) Descriptor() domain.CommandDescriptor {
	return domain.CommandDescriptor{
		Name:        "shop",
		Description: "Search rental listings",
		Options: []domain.OptionSpec{
			{
				Name:         "listing",
				Description:  "The listing to look at",
				Type:         domain.OptionString,
				Required:     true,
				Autocomplete: true,
			},
		},
	}
}

func (h *ShopHandler) Handle(ctx context.Context, interaction *domain.Interaction) (*domain.Outcome, error) {
	listingURL := interaction.OptionValue("listing")
	if listingURL == "" {
		return nil, domain.NewHandlerError("Pick a listing from the suggestions.", nil)
	}

	listing, err := h.listings.Lookup(ctx, listingURL)
	if err != nil {
		return nil, domain.NewHandlerError("Could not fetch that listing.", err)
	}

	return &domain.Outcome{
		Kind: domain.OutcomeComplex,
		Embed: &domain.Embed{
			Title:       listing.Title,
			Description: fmt.Sprintf("%s — $%d per week", listing.Address, listing.RentPerWeek),
		},
		Buttons: []domain.Button{
			{Label: "View listing", Style: domain.ButtonLink, URL: listing.URL},
		},
	}, nil
}

// ShopAutocompleteHandler serves listing suggestions while the user types.
type ShopAutocompleteHandler struct {
	listings port.ListingClient
}

func NewShopAutocompleteHandler(listings port.ListingClient) *ShopAutocompleteHandler {
	return &ShopAutocompleteHandler{listings: listings}
}

func (h *ShopAutocompleteHandler) Descriptor() domain.CommandDescriptor {
	return domain.CommandDescriptor{
		Name:        "shop",
		Description: "Suggest rental listings",
	}
}

func (h *ShopAutocompleteHandler) Handle(ctx context.Context, interaction *domain.Interaction) (*domain.Outcome, error) {
	query := interaction.OptionValue(interaction.Focused)

	if len(query) < 3 {
		return &domain.Outcome{Kind: domain.OutcomeAutocomplete}, nil
	}

	listings, err := h.listings.Search(ctx, query)
	if err != nil {
		return nil, domain.NewHandlerError("", err)
	}

	log.Debug().Str("query", query).Int("results", len(listings)).Msg("listing suggestions")

	choices := make([]domain.Choice, 0, maxSuggestions)
	for _, l := range listings {
		if len(choices) == maxSuggestions {
			break
		}
		choices = append(choices, domain.Choice{
			Name:  fmt.Sprintf("$%dpw — %s", l.RentPerWeek, l.Title),
			Value: l.URL,
		})
	}

	return &domain.Outcome{Kind: domain.OutcomeAutocomplete, Choices: choices}, nil
}
