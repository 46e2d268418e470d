package command

import (
	"context"
	"testing"

	"flatbot/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSayEchoesMessage(t *testing.T) {
	handler := NewSayHandler(testRoster)

	outcome, err := handler.Handle(context.Background(), &domain.Interaction{
		Kind:    domain.KindCommand,
		Name:    "say",
		UserID:  "100",
		Options: []domain.Option{{Name: "message", Value: "dinner at 7"}},
	})
	require.NoError(t, err)

	assert.Equal(t, domain.OutcomeReply, outcome.Kind)
	assert.Equal(t, "dinner at 7", outcome.Content)
}

func TestSayRejectsNonFlatmate(t *testing.T) {
	handler := NewSayHandler(testRoster)

	_, err := handler.Handle(context.Background(), &domain.Interaction{
		Kind:    domain.KindCommand,
		Name:    "say",
		UserID:  "999",
		Options: []domain.Option{{Name: "message", Value: "dinner at 7"}},
	})

	var herr *domain.HandlerError
	require.ErrorAs(t, err, &herr)
	assert.Equal(t, "Only flatmates can make me speak.", herr.Public)
}

func TestSayRequiresMessage(t *testing.T) {
	handler := NewSayHandler(testRoster)

	_, err := handler.Handle(context.Background(), &domain.Interaction{
		Kind:   domain.KindCommand,
		Name:   "say",
		UserID: "100",
	})

	require.Error(t, err)
}

func TestPingRepliesPong(t *testing.T) {
	handler := NewPingHandler()

	outcome, err := handler.Handle(context.Background(), &domain.Interaction{
		Kind: domain.KindCommand,
		Name: "ping",
	})
	require.NoError(t, err)

	assert.Equal(t, domain.OutcomeReply, outcome.Kind)
	assert.Equal(t, "pong 🏓", outcome.Content)
	assert.True(t, outcome.Ephemeral)
}
