package agent

import (
	"testing"

	"voltvox/models"

	"github.com/stretchr/testify/assert"
)

func TestRankOffersGreenPreference(t *testing.T) {
	offerList := []models.Offer{
		{Provider: "A", Price: "30 €"},
		{Provider: "B", Price: "40 €", Green: true},
		{Provider: "C", Price: "50 €"},
	}

	top := RankOffers(offerList, "green")

	assert.Len(t, top, 3)
	assert.Equal(t, "B", top[0].Provider)
}

func TestRankOffersCostBonus(t *testing.T) {
	offerList := []models.Offer{
		{Provider: "Pricey", Price: "9.500 €"},
		{Provider: "Cheap", Price: "80 €/Monat"},
		{Provider: "Huge", Price: "12000"},
	}

	top := RankOffers(offerList, "cost")

	// digits("80 €/Monat") = 80 → bonus 9; digits("9.500 €") = 9500 → bonus 0;
	// digits("12000") ≥ 10000 → bonus 0, ties broken by input order.
	assert.Equal(t, "Cheap", top[0].Provider)
	assert.Equal(t, "Pricey", top[1].Provider)
	assert.Equal(t, "Huge", top[2].Provider)
}

func TestRankOffersStableOnTies(t *testing.T) {
	offerList := []models.Offer{
		{Provider: "First", Service: true},
		{Provider: "Second", Service: true},
		{Provider: "Third", Service: true},
	}

	top := RankOffers(offerList, "service")

	assert.Equal(t, "First", top[0].Provider)
	assert.Equal(t, "Second", top[1].Provider)
	assert.Equal(t, "Third", top[2].Provider)
}

func TestRankOffersPreferenceOrderIrrelevant(t *testing.T) {
	offerList := []models.Offer{
		{Provider: "A", Price: "500", Green: true},
		{Provider: "B", Price: "100"},
		{Provider: "C", Price: "9000", Green: true, Tech: true},
	}

	assert.Equal(t, RankOffers(offerList, "green,cost"), RankOffers(offerList, "cost,green"))
}

func TestRankOffersExtractorJoinedPreferences(t *testing.T) {
	// The preference extractor joins tags with ", "; the split must tolerate
	// the space.
	offerList := []models.Offer{
		{Provider: "A"},
		{Provider: "B", Local: true},
	}

	top := RankOffers(offerList, "green, local")

	assert.Equal(t, "B", top[0].Provider)
}

func TestRankOffersNoPreferences(t *testing.T) {
	offerList := []models.Offer{
		{Provider: "A"}, {Provider: "B"}, {Provider: "C"}, {Provider: "D"},
	}

	top := RankOffers(offerList, "")

	assert.Len(t, top, 3)
	assert.Equal(t, "A", top[0].Provider)
	assert.Equal(t, "B", top[1].Provider)
	assert.Equal(t, "C", top[2].Provider)
}

func TestRankOffersFewerThanThree(t *testing.T) {
	offerList := []models.Offer{{Provider: "Only"}}

	top := RankOffers(offerList, "green,cost,service")

	assert.Len(t, top, 1)
}

func TestRankOffersEmptyInput(t *testing.T) {
	assert.Empty(t, RankOffers(nil, "green"))
}
