package agent

import (
	"context"
	"errors"
	"testing"

	"voltvox/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// ==========================
// Mock Offer Source
// ==========================

type MockOfferSource struct {
	mock.Mock
}

func (m *MockOfferSource) Fetch(ctx context.Context, plz string, kwhPerYear int, householdSize int) ([]models.Offer, error) {
	args := m.Called(ctx, plz, kwhPerYear, householdSize)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Offer), args.Error(1)
}

func newService(source *MockOfferSource) *DefaultConversationService {
	return &DefaultConversationService{Offers: source}
}

func filledState() *models.ConversationState {
	return &models.ConversationState{
		Active:        true,
		Location:      "12345",
		HouseholdSize: 2,
		Consumption:   "3500",
		Cost:          "80",
		Step:          models.StepAskPreferences,
	}
}

// ==========================
// Turn behavior
// ==========================

func TestProcessTurnFirstUtteranceFillsLocation(t *testing.T) {
	svc := newService(new(MockOfferSource))

	result, err := svc.ProcessTurn(context.Background(), "I want to switch my electricity, my zip is 12345", nil)

	require.NoError(t, err)
	assert.False(t, result.Done)
	assert.True(t, result.State.Active)
	assert.Equal(t, "12345", result.State.Location)
	assert.Equal(t, models.StepAskHouseholdSize, result.State.Step)
	assert.Contains(t, result.AgentResponse, "household")
}

func TestProcessTurnRedirectsOffTopicWhenInactive(t *testing.T) {
	svc := newService(new(MockOfferSource))

	result, err := svc.ProcessTurn(context.Background(), "not sure", nil)

	require.NoError(t, err)
	assert.False(t, result.Done)
	assert.False(t, result.State.Active)
	assert.Empty(t, result.State.Location)
	assert.Contains(t, result.AgentResponse, "energy-related question")
}

func TestProcessTurnOffTopicAfterActivationKeepsFlow(t *testing.T) {
	svc := newService(new(MockOfferSource))
	state := &models.ConversationState{Active: true, Location: "12345", Step: models.StepAskHouseholdSize}

	result, err := svc.ProcessTurn(context.Background(), "tell me a joke instead", state)

	require.NoError(t, err)
	assert.True(t, result.State.Active)
	assert.Equal(t, "12345", result.State.Location)
	assert.Equal(t, models.StepAskHouseholdSize, result.State.Step)
}

func TestProcessTurnResetOverridesConversation(t *testing.T) {
	svc := newService(new(MockOfferSource))
	state := filledState()

	result, err := svc.ProcessTurn(context.Background(), "let's start over please", state)

	require.NoError(t, err)
	assert.False(t, result.Done)
	assert.Equal(t, models.NewConversationState(), result.State)
	assert.Contains(t, result.AgentResponse, "start over")
}

func TestProcessTurnMultipleSlotsInOneUtterance(t *testing.T) {
	svc := newService(new(MockOfferSource))
	state := &models.ConversationState{Active: true, Location: "10115", Step: models.StepAskHouseholdSize}

	result, err := svc.ProcessTurn(context.Background(), "2 people, about 3500 kWh and 90 euro a month", state)

	require.NoError(t, err)
	assert.Equal(t, 2, result.State.HouseholdSize)
	assert.Equal(t, "3500", result.State.Consumption)
	assert.Equal(t, "90", result.State.Cost)
	assert.Equal(t, models.StepAskPreferences, result.State.Step)
}

func TestProcessTurnBareNumberOnlyWhenConsumptionAsked(t *testing.T) {
	svc := newService(new(MockOfferSource))
	state := &models.ConversationState{Active: true, Location: "10115", HouseholdSize: 2, Step: models.StepAskConsumption}

	result, err := svc.ProcessTurn(context.Background(), "500", state)

	require.NoError(t, err)
	assert.Equal(t, "500", result.State.Consumption)
	assert.Equal(t, models.StepAskCost, result.State.Step)
}

func TestProcessTurnBareNumberIgnoredInOtherSteps(t *testing.T) {
	svc := newService(new(MockOfferSource))
	state := &models.ConversationState{Active: true, Step: models.StepAskLocation}

	result, err := svc.ProcessTurn(context.Background(), "500", state)

	require.NoError(t, err)
	assert.Empty(t, result.State.Consumption)
	assert.Equal(t, models.StepAskLocation, result.State.Step)
}

func TestProcessTurnRevalidatesMutatedLocation(t *testing.T) {
	svc := newService(new(MockOfferSource))
	state := &models.ConversationState{Active: true, Location: "12ab5", HouseholdSize: 3, Step: models.StepAskHouseholdSize}

	result, err := svc.ProcessTurn(context.Background(), "hello", state)

	require.NoError(t, err)
	assert.Empty(t, result.State.Location)
	assert.Equal(t, models.StepAskLocation, result.State.Step)
	assert.Contains(t, result.AgentResponse, "postal code")
}

// ==========================
// Completion
// ==========================

func TestProcessTurnCompletionRanksAndSummarizes(t *testing.T) {
	source := new(MockOfferSource)
	source.On("Fetch", mock.Anything, "12345", 3500, 2).Return([]models.Offer{
		{Provider: "Stadtwerke Neustadt", Tariff: "Lokal Eco", Price: "89,00 €", Green: true, Local: true},
		{Provider: "MegaWatt", Tariff: "Basic", Price: "79,00 €"},
		{Provider: "GreenVolt", Tariff: "Öko Plus", Price: "95,00 €", Green: true, Tech: true},
		{Provider: "Budget Strom", Tariff: "Spar", Price: "75,00 €"},
	}, nil)
	svc := newService(source)

	result, err := svc.ProcessTurn(context.Background(), "green", filledState())

	require.NoError(t, err)
	assert.True(t, result.Done)
	assert.Equal(t, "green", result.State.Preferences)
	require.Len(t, result.State.Offers, 3)
	assert.True(t, result.State.Offers[0].Green)
	assert.True(t, result.State.Offers[1].Green)
	assert.Contains(t, result.AgentResponse, "1. Stadtwerke Neustadt - Lokal Eco - 89,00 € (Green) (Local)")
	assert.Contains(t, result.AgentResponse, "2. GreenVolt - Öko Plus - 95,00 € (Green) (Tech)")
	assert.Contains(t, result.AgentResponse, "3. MegaWatt - Basic - 79,00 €")
	source.AssertExpectations(t)
}

func TestProcessTurnCompletionWithFewOffers(t *testing.T) {
	source := new(MockOfferSource)
	source.On("Fetch", mock.Anything, "12345", 3500, 2).Return([]models.Offer{
		{Provider: "Only One", Tariff: "Solo", Price: "99 €"},
	}, nil)
	svc := newService(source)

	result, err := svc.ProcessTurn(context.Background(), "low cost please", filledState())

	require.NoError(t, err)
	assert.True(t, result.Done)
	assert.Len(t, result.State.Offers, 1)
	assert.NotContains(t, result.AgentResponse, "2.")
}

func TestProcessTurnOfferFetchFailurePreservesState(t *testing.T) {
	source := new(MockOfferSource)
	source.On("Fetch", mock.Anything, "12345", 3500, 2).Return(nil, errors.New("connection refused"))
	svc := newService(source)
	state := filledState()

	result, err := svc.ProcessTurn(context.Background(), "green", state)

	require.Error(t, err)
	assert.Nil(t, result)
	// The state stays complete so the caller can retry the same turn.
	assert.Equal(t, "12345", state.Location)
	assert.Equal(t, "green", state.Preferences)
}
