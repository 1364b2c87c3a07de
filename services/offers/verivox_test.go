package offers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tariffListFixture = `
<html><body>
<div class="tariff-list">
  <div class="tariff-list__item">
    <img class="tariff-list__provider-logo" alt="Stadtwerke Neustadt" />
    <div class="tariff-list__tariff-name">Regional Eco</div>
    <div class="tariff-list__price">89,00 €</div>
    <span class="tariff-list__eco-label">Öko</span>
    <p>Regionaler Versorger mit Smart-Meter-App</p>
  </div>
  <div class="tariff-list__item">
    <img class="tariff-list__provider-logo" alt="MegaWatt" />
    <div class="tariff-list__tariff-name">Basic</div>
    <div class="tariff-list__price">79,00 €</div>
    <p>Günstiger Grundtarif</p>
  </div>
  <div class="tariff-list__item">
    <div class="tariff-list__tariff-name">Mystery</div>
    <div class="tariff-list__price">99,00 €</div>
    <p>24/7 Service Hotline</p>
  </div>
</div>
</body></html>`

func TestParseOffers(t *testing.T) {
	offerList, err := parseOffers(strings.NewReader(tariffListFixture))
	require.NoError(t, err)
	require.Len(t, offerList, 3)

	first := offerList[0]
	assert.Equal(t, "Stadtwerke Neustadt", first.Provider)
	assert.Equal(t, "Regional Eco", first.Tariff)
	assert.Equal(t, "89,00 €", first.Price)
	assert.True(t, first.Green)
	assert.True(t, first.Local) // "regional" in card text
	assert.True(t, first.Tech)  // "app" / "smart" in card text

	second := offerList[1]
	assert.Equal(t, "MegaWatt", second.Provider)
	assert.False(t, second.Green)
	assert.False(t, second.Service)

	// Missing provider logo falls back to Unknown.
	third := offerList[2]
	assert.Equal(t, "Unknown", third.Provider)
	assert.True(t, third.Service)
}

func TestParseOffersEmptyPage(t *testing.T) {
	offerList, err := parseOffers(strings.NewReader("<html><body>nothing here</body></html>"))
	require.NoError(t, err)
	assert.Empty(t, offerList)
}

func TestFetchSendsQueryAndCaches(t *testing.T) {
	var requests int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		assert.Equal(t, "10115", r.URL.Query().Get("plz"))
		assert.Equal(t, "3500", r.URL.Query().Get("verbrauch"))
		assert.Equal(t, "2", r.URL.Query().Get("personen"))
		assert.Equal(t, "0", r.URL.Query().Get("onlyEco"))
		assert.Contains(t, r.Header.Get("User-Agent"), "Mozilla")
		w.Write([]byte(tariffListFixture))
	}))
	defer server.Close()

	source := NewVerivoxOfferSource(server.URL, 5*time.Second, 8, time.Minute)

	offerList, err := source.Fetch(context.Background(), "10115", 3500, 2)
	require.NoError(t, err)
	assert.Len(t, offerList, 3)

	// Second identical lookup is served from the cache.
	again, err := source.Fetch(context.Background(), "10115", 3500, 2)
	require.NoError(t, err)
	assert.Equal(t, offerList, again)
	assert.Equal(t, 1, requests)

	// A different key goes back to the site.
	_, err = source.Fetch(context.Background(), "80331", 3500, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, requests)
}

func TestFetchNonOKStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	source := NewVerivoxOfferSource(server.URL, 5*time.Second, 8, time.Minute)

	_, err := source.Fetch(context.Background(), "10115", 3500, 2)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 503")
}
