package agent

import (
	"context"

	"voltvox/models"
	"voltvox/services/offers"
)

// ConversationService drives the slot-filling intake dialogue. ProcessTurn
// takes one transcribed utterance plus the caller-supplied state from the
// previous turn (nil on the first turn) and returns the agent's reply, the
// updated state and whether the conversation is complete.
//
// The only fallible path is the offer fetch on the completion turn; every
// other turn returns a nil error. A failed completion turn leaves the state
// valid and fully filled, so retrying the same turn does not re-ask any slot.
type ConversationService interface {
	ProcessTurn(ctx context.Context, utterance string, state *models.ConversationState) (*models.TurnResult, error)
}

// DefaultConversationService implements ConversationService.
type DefaultConversationService struct {
	Offers offers.OfferSource
}
