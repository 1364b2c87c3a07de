package offers

import (
	"context"

	"voltvox/models"
)

// OfferSource returns candidate electricity tariffs for a postal code,
// yearly consumption and household size. Implementations may fail with
// network or parse errors; callers decide how to surface that.
type OfferSource interface {
	Fetch(ctx context.Context, plz string, kwhPerYear int, householdSize int) ([]models.Offer, error)
}
