package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"agriconnect/internal/model"
	"agriconnect/internal/recommendation"
	"agriconnect/pkg/logger"
)

type RecommendationHandler struct {
	uc     recommendation.UseCase
	logger logger.Logger
}

func NewRecommendationHandler(uc recommendation.UseCase, log logger.Logger) *RecommendationHandler {
	return &RecommendationHandler{uc: uc, logger: log}
}

func (h *RecommendationHandler) List(c *gin.Context) {
	lat, latErr := strconv.ParseFloat(c.Query("lat"), 64)
	lng, lngErr := strconv.ParseFloat(c.Query("lng"), 64)
	if latErr != nil || lngErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "lat and lng query parameters are required"})
		return
	}

	origin := model.Location{Lat: lat, Lng: lng}
	recs, err := h.uc.Recommend(c.Request.Context(), origin, c.Query("category"))
	if err != nil {
		h.logger.Error("failed to build recommendations", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	c.JSON(http.StatusOK, recs)
}
