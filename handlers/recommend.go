package handlers

import (
	"net/http"
	"regexp"
	"strconv"

	"voltvox/services/agent"
	"voltvox/services/offers"
	"voltvox/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

var plzShape = regexp.MustCompile(`^\d{5}$`)

// RecommendRequest is an already-filled intake form, bypassing the dialogue.
type RecommendRequest struct {
	Location      string `json:"location" binding:"required"`
	HouseholdSize int    `json:"household_size" binding:"required"`
	Consumption   string `json:"consumption" binding:"required"`
	Preferences   string `json:"preferences"`
}

// RecommendHandler runs the same fetch-and-rank pipeline the dialogue's
// completion transition uses, for callers that already hold the facts.
type RecommendHandler struct {
	Offers offers.OfferSource
}

func NewRecommendHandler(source offers.OfferSource) *RecommendHandler {
	return &RecommendHandler{Offers: source}
}

// Recommend validates the form, fetches offers and returns the ranked top 3.
func (h *RecommendHandler) Recommend(c *gin.Context) {
	logger := utils.GetLogger()

	var req RecommendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}
	if !plzShape.MatchString(req.Location) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "location must be a 5-digit postal code"})
		return
	}
	if req.HouseholdSize < 1 || req.HouseholdSize > 5 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "household_size must be between 1 and 5"})
		return
	}
	kwh, err := strconv.Atoi(req.Consumption)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "consumption must be numeric (kWh/year)"})
		return
	}

	offerList, err := h.Offers.Fetch(c.Request.Context(), req.Location, kwh, req.HouseholdSize)
	if err != nil {
		logger.Error("Offer fetch failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "offer search failed",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"offers": agent.RankOffers(offerList, req.Preferences)})
}
