package offers

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"voltvox/metrics"
	"voltvox/models"
	"voltvox/utils"

	"github.com/PuerkitoBio/goquery"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"go.uber.org/zap"
)

const (
	// Verivox blocks the default Go user agent.
	browserUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
	maxOfferCards    = 25
)

// VerivoxOfferSource fetches electricity offers from the Verivox comparison
// page and parses the tariff cards. Results are kept in a small expiring LRU
// so a retried completion turn does not hit the site twice.
type VerivoxOfferSource struct {
	BaseURL string
	Client  *http.Client
	cache   *expirable.LRU[string, []models.Offer]
}

// NewVerivoxOfferSource builds an offer source against the given comparison
// page URL.
func NewVerivoxOfferSource(baseURL string, timeout time.Duration, cacheSize int, cacheTTL time.Duration) *VerivoxOfferSource {
	return &VerivoxOfferSource{
		BaseURL: baseURL,
		Client:  &http.Client{Timeout: timeout},
		cache:   expirable.NewLRU[string, []models.Offer](cacheSize, nil, cacheTTL),
	}
}

// Fetch implements OfferSource.
func (v *VerivoxOfferSource) Fetch(ctx context.Context, plz string, kwhPerYear int, householdSize int) ([]models.Offer, error) {
	logger := utils.GetLogger()

	key := fmt.Sprintf("%s:%d:%d", plz, kwhPerYear, householdSize)
	if cached, ok := v.cache.Get(key); ok {
		metrics.OfferScrapes.WithLabelValues("cache_hit").Inc()
		return cached, nil
	}

	params := url.Values{}
	params.Set("plz", plz)
	params.Set("verbrauch", strconv.Itoa(kwhPerYear))
	params.Set("personen", strconv.Itoa(householdSize))
	params.Set("onlyEco", "0")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, v.BaseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build verivox request: %w", err)
	}
	req.Header.Set("User-Agent", browserUserAgent)

	start := time.Now()
	resp, err := v.Client.Do(req)
	if err != nil {
		metrics.OfferScrapes.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("verivox request failed: %w", err)
	}
	defer resp.Body.Close()
	metrics.OfferScrapeDuration.Observe(time.Since(start).Seconds())

	logger.Info("Verivox response", zap.Int("status", resp.StatusCode), zap.String("plz", plz))
	if resp.StatusCode != http.StatusOK {
		metrics.OfferScrapes.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("verivox returned status %d", resp.StatusCode)
	}

	offerList, err := parseOffers(resp.Body)
	if err != nil {
		metrics.OfferScrapes.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("parse verivox offers: %w", err)
	}

	logger.Info("Parsed Verivox offers", zap.Int("count", len(offerList)))
	metrics.OfferScrapes.WithLabelValues("scraped").Inc()
	v.cache.Add(key, offerList)
	return offerList, nil
}

// parseOffers extracts offer records from the tariff list markup. Service,
// local and tech are inferred from keywords in the card text since Verivox
// carries no dedicated markers for them.
func parseOffers(r io.Reader) ([]models.Offer, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, err
	}

	var offerList []models.Offer
	doc.Find(".tariff-list__item").EachWithBreak(func(i int, card *goquery.Selection) bool {
		if i >= maxOfferCards {
			return false
		}
		provider := card.Find(".tariff-list__provider-logo").AttrOr("alt", "Unknown")
		price := strings.TrimSpace(card.Find(".tariff-list__price").Text())
		tariff := strings.TrimSpace(card.Find(".tariff-list__tariff-name").Text())
		cardText := strings.ToLower(card.Text())

		offerList = append(offerList, models.Offer{
			Provider: provider,
			Tariff:   tariff,
			Price:    price,
			Green:    card.Find(".tariff-list__eco-label").Length() > 0,
			Service:  strings.Contains(cardText, "service"),
			Local:    strings.Contains(cardText, "stadtwerk") || strings.Contains(cardText, "regional"),
			Tech:     strings.Contains(cardText, "app") || strings.Contains(cardText, "smart"),
		})
		return true
	})

	return offerList, nil
}
