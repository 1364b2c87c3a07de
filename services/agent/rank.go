package agent

import (
	"sort"
	"strconv"
	"strings"

	"voltvox/models"
)

const maxRankedOffers = 3

// RankOffers scores the scraped offers against the comma-joined preference
// string and returns the top three. The sort is stable, so offers with equal
// scores keep their input order; with no preferences every score is zero and
// ranking degenerates to input order.
func RankOffers(offerList []models.Offer, preferences string) []models.Offer {
	prefs := make(map[string]bool)
	for _, p := range strings.Split(strings.ToLower(preferences), ",") {
		if p = strings.TrimSpace(p); p != "" {
			prefs[p] = true
		}
	}

	type scoredOffer struct {
		score int
		offer models.Offer
	}
	scored := make([]scoredOffer, 0, len(offerList))
	for _, offer := range offerList {
		score := 0
		if prefs["green"] && offer.Green {
			score += 2
		}
		if prefs["cost"] {
			// Coarse decile bonus favoring cheaper offers, saturating at
			// zero for prices >= 10000.
			if bonus := (10000 - priceDigits(offer.Price)) / 1000; bonus > 0 {
				score += bonus
			}
		}
		if prefs["service"] && offer.Service {
			score++
		}
		if prefs["local"] && offer.Local {
			score++
		}
		if prefs["tech"] && offer.Tech {
			score++
		}
		scored = append(scored, scoredOffer{score: score, offer: offer})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].score > scored[j].score
	})

	top := make([]models.Offer, 0, maxRankedOffers)
	for _, s := range scored {
		if len(top) == maxRankedOffers {
			break
		}
		top = append(top, s.offer)
	}
	return top
}

// priceDigits extracts all digit characters from a display price and parses
// them as an integer; an empty or overflowing digit run counts as beyond the
// cost bonus range.
func priceDigits(price string) int {
	var b strings.Builder
	for _, r := range price {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return 0
	}
	n, err := strconv.Atoi(b.String())
	if err != nil {
		return 10000
	}
	return n
}
