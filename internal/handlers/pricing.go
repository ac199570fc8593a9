package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"labelworks-backend/internal/models"
	"labelworks-backend/internal/pricing"
)

type PricingHandler struct{}

func NewPricingHandler() *PricingHandler {
	return &PricingHandler{}
}

// Estimate godoc
// @Summary     Price estimate
// @Description Computes a deterministic cost breakdown for a prospective labeling engagement
// @Tags        pricing
// @Accept      json
// @Produce     json
// @Success     200 {object} pricing.Result
// @Failure     400 {object} models.ErrorResponse
// @Router      /pricing/estimate [post]
func (h *PricingHandler) Estimate(c *gin.Context) {
	var input pricing.Input
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid request body",
			Message: err.Error(),
		})
		return
	}

	result, err := pricing.Estimate(input)
	if err != nil {
		respondError(c, err, "failed to compute estimate")
		return
	}

	c.JSON(http.StatusOK, result)
}
