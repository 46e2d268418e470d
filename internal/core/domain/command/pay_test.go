package command

import (
	"context"
	"errors"
	"testing"

	"flatbot/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type MockBillStore struct {
	created    *domain.Bill
	bill       *domain.Bill
	paidToken  string
	paidName   string
	createErr  error
	getErr     error
	markErr    error
}

func (m *MockBillStore) CreateBill(_ context.Context, bill *domain.Bill) (int64, error) {
	m.created = bill
	return 1, m.createErr
}

func (m *MockBillStore) GetBillByToken(_ context.Context, _ string) (*domain.Bill, error) {
	return m.bill, m.getErr
}

func (m *MockBillStore) MarkPaid(_ context.Context, token string, name string) error {
	m.paidToken = token
	m.paidName = name
	return m.markErr
}

var testRoster = domain.Roster{
	{DiscordID: "100", Name: "sam", DisplayName: "Sam"},
	{DiscordID: "200", Name: "jo", DisplayName: "Jo"},
}

func payInteraction() *domain.Interaction {
	return &domain.Interaction{
		GuildID:  "guild-1",
		Kind:     domain.KindCommand,
		Name:     "pay",
		UserID:   "100",
		Username: "sam",
		Options: []domain.Option{
			{Name: "purpose", Value: "power bill"},
			{Name: "receipt", Value: "https://cdn.example.com/receipt.png"},
			{Name: "sam", Value: "42"},
			{Name: "jo", Value: "58"},
		},
	}
}

func TestPayDescriptorCoversRoster(t *testing.T) {
	handler := NewPayHandler(&MockBillStore{}, testRoster)

	descriptor := handler.Descriptor()

	assert.Equal(t, "pay", descriptor.Name)
	require.Len(t, descriptor.Options, 4)
	assert.Equal(t, "purpose", descriptor.Options[0].Name)
	assert.Equal(t, "receipt", descriptor.Options[1].Name)
	assert.Equal(t, "sam", descriptor.Options[2].Name)
	assert.Equal(t, domain.OptionInteger, descriptor.Options[2].Type)
}

func TestPayCreatesBillWithButton(t *testing.T) {
	store := &MockBillStore{}
	handler := NewPayHandler(store, testRoster)

	outcome, err := handler.Handle(context.Background(), payInteraction())
	require.NoError(t, err)

	require.NotNil(t, store.created)
	assert.Equal(t, "power bill", store.created.Purpose)
	require.Len(t, store.created.Shares, 2)
	assert.Equal(t, int64(42), store.created.Shares[0].Amount)
	assert.Equal(t, int64(58), store.created.Shares[1].Amount)
	assert.NotEmpty(t, store.created.Token)

	assert.Equal(t, domain.OutcomeComplex, outcome.Kind)
	require.NotNil(t, outcome.Embed)
	assert.Len(t, outcome.Embed.Fields, 2)
	require.Len(t, outcome.Buttons, 2)
	assert.Equal(t, "pay:"+store.created.Token, outcome.Buttons[0].CustomID)
	assert.Equal(t, domain.ButtonLink, outcome.Buttons[1].Style)
}

func TestPayMissingAmountDefaultsToZero(t *testing.T) {
	store := &MockBillStore{}
	handler := NewPayHandler(store, testRoster)

	interaction := payInteraction()
	interaction.Options = interaction.Options[:3] // drop jo's amount

	_, err := handler.Handle(context.Background(), interaction)
	require.NoError(t, err)

	require.Len(t, store.created.Shares, 2)
	assert.Equal(t, int64(0), store.created.Shares[1].Amount)
}

func TestPayRejectsMissingPurpose(t *testing.T) {
	handler := NewPayHandler(&MockBillStore{}, testRoster)

	interaction := payInteraction()
	interaction.Options = interaction.Options[1:]

	_, err := handler.Handle(context.Background(), interaction)

	var herr *domain.HandlerError
	require.ErrorAs(t, err, &herr)
	assert.Equal(t, "A bill needs a purpose and a receipt.", herr.Public)
}

func TestPayRejectsInvalidReceiptURL(t *testing.T) {
	handler := NewPayHandler(&MockBillStore{}, testRoster)

	interaction := payInteraction()
	interaction.Options[1].Value = "not a url"

	_, err := handler.Handle(context.Background(), interaction)

	var herr *domain.HandlerError
	require.ErrorAs(t, err, &herr)
	assert.Equal(t, "Failed to parse receipt as a valid url.", herr.Public)
}

func TestPayStoreFailureIsUserSafe(t *testing.T) {
	handler := NewPayHandler(&MockBillStore{createErr: errors.New("mock error")}, testRoster)

	_, err := handler.Handle(context.Background(), payInteraction())

	var herr *domain.HandlerError
	require.ErrorAs(t, err, &herr)
	assert.Equal(t, "Failed to create the bill.", herr.Public)
	assert.NotContains(t, herr.Public, "mock error")
}

func TestPaidSettlesShare(t *testing.T) {
	store := &MockBillStore{bill: &domain.Bill{
		Token:      "1234",
		Purpose:    "power bill",
		ReceiptURL: "https://cdn.example.com/receipt.png",
		Shares: []domain.Share{
			{Name: "sam", Amount: 42, Paid: true},
			{Name: "jo", Amount: 58},
		},
	}}
	handler := NewPaidHandler(store, testRoster)

	outcome, err := handler.Handle(context.Background(), &domain.Interaction{
		Kind:     domain.KindComponent,
		Name:     "pay",
		CustomID: "pay:1234",
		UserID:   "100",
	})
	require.NoError(t, err)

	assert.Equal(t, "1234", store.paidToken)
	assert.Equal(t, "sam", store.paidName)

	assert.Equal(t, domain.OutcomeComplex, outcome.Kind)
	assert.True(t, outcome.UpdateOriginal)
	require.NotNil(t, outcome.Embed)
	assert.Contains(t, outcome.Embed.Fields[0].Value, "✅")

	require.NotNil(t, outcome.FollowUp)
	assert.Equal(t, "Sam paid!", outcome.FollowUp.Content)
	assert.True(t, outcome.FollowUp.Ephemeral)
}

func TestPaidRejectsNonFlatmate(t *testing.T) {
	handler := NewPaidHandler(&MockBillStore{}, testRoster)

	_, err := handler.Handle(context.Background(), &domain.Interaction{
		Kind:     domain.KindComponent,
		CustomID: "pay:1234",
		UserID:   "999",
	})

	var herr *domain.HandlerError
	require.ErrorAs(t, err, &herr)
	assert.Equal(t, "Only flatmates can settle bills.", herr.Public)
}

func TestPaidMissingToken(t *testing.T) {
	handler := NewPaidHandler(&MockBillStore{}, testRoster)

	_, err := handler.Handle(context.Background(), &domain.Interaction{
		Kind:     domain.KindComponent,
		CustomID: "pay",
		UserID:   "100",
	})

	require.Error(t, err)
}

func TestPaidStoreFailureIsUserSafe(t *testing.T) {
	handler := NewPaidHandler(&MockBillStore{markErr: errors.New("mock error")}, testRoster)

	_, err := handler.Handle(context.Background(), &domain.Interaction{
		Kind:     domain.KindComponent,
		CustomID: "pay:1234",
		UserID:   "100",
	})

	var herr *domain.HandlerError
	require.ErrorAs(t, err, &herr)
	assert.Equal(t, "Failed to settle your share.", herr.Public)
}
