package service

import (
	"context"
	"fmt"
	"strings"

	"flatbot/internal/core/domain"
	"flatbot/internal/core/domain/command"
	"flatbot/internal/core/port"

	"github.com/rs/zerolog/log"
)

const listingLinkPrefix = "https://www.trademe.co.nz/a/property/residential/"

// ListingReactor watches plain channel messages for rental listing links and
// opens a discussion thread with the listing's price and commute times.
// Messages are a side feed and bypass the guild actor mailbox.
type ListingReactor struct {
	listings port.ListingClient
	maps     port.Geocoder
	poster   port.ThreadPoster
}

func NewListingReactor(listings port.ListingClient, maps port.Geocoder, poster port.ThreadPoster) *ListingReactor {
	return &ListingReactor{listings: listings, maps: maps, poster: poster}
}

// Precheck reports whether a message is worth processing.
func (r *ListingReactor) Precheck(message *domain.Message) bool {
	return strings.Contains(message.Content, listingLinkPrefix)
}

// Process looks up the linked listing and posts the summary thread. Failures
// are logged and swallowed; a reactor never replies with errors.
func (r *ListingReactor) Process(ctx context.Context, message *domain.Message) {
	var link string
	for _, part := range strings.Fields(message.Content) {
		if strings.Contains(part, listingLinkPrefix) {
			link = strings.TrimSpace(part)
			break
		}
	}

	if link == "" {
		log.Trace().Msg("no listing link found in message")
		return
	}

	listing, err := r.listings.Lookup(ctx, link)
	if err != nil {
		log.Error().Err(err).Str("link", link).Msg("failed to fetch listing")
		return
	}

	travels, err := r.maps.Distances(ctx, listing.Address)
	if err != nil {
		log.Error().Err(err).Str("address", listing.Address).Msg("failed to fetch travel times")
		return
	}

	title := fmt.Sprintf("$%dpw - %s", listing.RentPerWeek, listing.Address)
	embed := command.TravelEmbed(listing.Address, travels)

	if err := r.poster.PostThread(ctx, message.ChannelID, message.ID, title, embed); err != nil {
		log.Error().Err(err).Str("channelId", message.ChannelID).Msg("failed to post listing thread")
	}
}
