package agent

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"voltvox/metrics"
	"voltvox/models"
	"voltvox/utils"

	"go.uber.org/zap"
)

// Prompts returned by the dialogue, in the order the slots are solicited.
const (
	promptStartOver      = "Let's start over. Please ask an energy-related question to begin."
	promptRedirect       = "I'm here to help you switch your energy provider. Please ask an energy-related question!"
	promptAskLocation    = "What is your 5-digit postal code (PLZ)?"
	promptAskHousehold   = "How many people are in your household? (1-5)"
	promptAskConsumption = "How much energy do you use per year? For example, how many kilowatt-hours (kWh) did you use last year?"
	promptAskCost        = "How much are you currently paying per month or year?"
	promptAskPreferences = "What do you value most in an energy provider? (green energy, low cost, customer service, local utility, tech support)"
)

// ProcessTurn runs one dialogue turn: reset and intent gating first, then an
// extraction pass over every unmet slot, then either the next question or
// the completion transition (offer fetch, ranking, summary).
func (s *DefaultConversationService) ProcessTurn(ctx context.Context, utterance string, state *models.ConversationState) (*models.TurnResult, error) {
	logger := utils.GetLogger()
	if state == nil {
		state = models.NewConversationState()
	}

	// Reset overrides everything, including an in-progress conversation.
	lower := strings.ToLower(utterance)
	if strings.Contains(lower, "start over") || strings.Contains(lower, "reset") {
		metrics.ConversationTurns.WithLabelValues("reset").Inc()
		return &models.TurnResult{
			AgentResponse: promptStartOver,
			State:         models.NewConversationState(),
			Done:          false,
		}, nil
	}

	// The intent gate runs only until the conversation is engaged. Once
	// active, off-topic utterances no longer divert the flow.
	if !state.Active {
		if ClassifyIntent(utterance) != IntentEnergy {
			metrics.ConversationTurns.WithLabelValues("redirect").Inc()
			return &models.TurnResult{
				AgentResponse: promptRedirect,
				State:         state,
				Done:          false,
			}, nil
		}
		state.Active = true
	}

	// One extraction pass over every unmet slot, so a single utterance can
	// fill several slots at once.
	if state.Location == "" {
		if loc := extractLocation(utterance); loc != "" {
			state.Location = loc
		}
	}
	if state.HouseholdSize == 0 {
		if hh := extractHouseholdSize(utterance); hh != 0 {
			state.HouseholdSize = hh
		}
	}
	if state.Consumption == "" {
		if cons := extractConsumption(utterance, state); cons != "" {
			state.Consumption = cons
		}
	}
	if state.Cost == "" {
		if cost := extractCost(utterance, state); cost != "" {
			state.Cost = cost
		}
	}
	if state.Preferences == "" {
		if prefs := extractPreferences(utterance); prefs != "" {
			state.Preferences = prefs
		}
	}

	// Ask for the first unmet slot in precedence order. The location is
	// re-validated against the 5-digit invariant even when already set,
	// guarding against direct state mutation by the caller.
	if !plzPattern.MatchString(state.Location) {
		state.Location = ""
		return s.ask(state, models.StepAskLocation, promptAskLocation, logger)
	}
	if state.HouseholdSize == 0 {
		return s.ask(state, models.StepAskHouseholdSize, promptAskHousehold, logger)
	}
	if state.Consumption == "" {
		return s.ask(state, models.StepAskConsumption, promptAskConsumption, logger)
	}
	if state.Cost == "" {
		return s.ask(state, models.StepAskCost, promptAskCost, logger)
	}
	if state.Preferences == "" {
		return s.ask(state, models.StepAskPreferences, promptAskPreferences, logger)
	}

	return s.complete(ctx, state, logger)
}

func (s *DefaultConversationService) ask(state *models.ConversationState, step, prompt string, logger *zap.Logger) (*models.TurnResult, error) {
	state.Step = step
	metrics.ConversationTurns.WithLabelValues(step).Inc()
	logger.Debug("Asking for next slot", zap.String("step", step), zap.Any("state", state))
	return &models.TurnResult{AgentResponse: prompt, State: state, Done: false}, nil
}

// complete is the sole terminal transition: fetch offers for the collected
// facts, rank them against the preferences and format the summary. A fetch
// failure surfaces to the caller unchanged; the state stays filled so the
// same turn can be retried without re-asking anything.
func (s *DefaultConversationService) complete(ctx context.Context, state *models.ConversationState, logger *zap.Logger) (*models.TurnResult, error) {
	kwh, err := strconv.Atoi(state.Consumption)
	if err != nil {
		// The extractor only produces plain digit strings; a caller-mutated
		// value is re-asked instead of failing the turn.
		state.Consumption = ""
		return s.ask(state, models.StepAskConsumption, promptAskConsumption, logger)
	}

	logger.Info("All slots filled, searching offers",
		zap.String("plz", state.Location),
		zap.Int("kwh", kwh),
		zap.Int("household", state.HouseholdSize),
		zap.String("preferences", state.Preferences),
	)

	offerList, err := s.Offers.Fetch(ctx, state.Location, kwh, state.HouseholdSize)
	if err != nil {
		return nil, fmt.Errorf("fetch offers: %w", err)
	}

	top := RankOffers(offerList, state.Preferences)
	state.Offers = top

	var sb strings.Builder
	sb.WriteString("Here are the top 3 energy providers for you:\n")
	for i, offer := range top {
		sb.WriteString(fmt.Sprintf("%d. %s - %s - %s", i+1, offer.Provider, offer.Tariff, offer.Price))
		if offer.Green {
			sb.WriteString(" (Green)")
		}
		if offer.Local {
			sb.WriteString(" (Local)")
		}
		if offer.Tech {
			sb.WriteString(" (Tech)")
		}
		sb.WriteString("\n")
	}

	metrics.ConversationTurns.WithLabelValues("completed").Inc()
	metrics.ConversationsCompleted.Inc()

	return &models.TurnResult{AgentResponse: sb.String(), State: state, Done: true}, nil
}
