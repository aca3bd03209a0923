package controllers

import (
	"errors"

	"swiftcater/pkg/resp"
	"swiftcater/services"
	"swiftcater/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type PricingController struct {
	Pricing *services.PricingService
}

func NewPricingController(ps *services.PricingService) *PricingController {
	return &PricingController{Pricing: ps}
}

// GET /sessions/:id/quote - the authoritative pricing pass
func (pc *PricingController) Quote(c *gin.Context) {
	result, err := pc.Pricing.Quote(utils.CurrentUserID(c), paramID(c, "id"))
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			resp.NotFound(c, "session not found")
		case errors.Is(err, services.ErrNoRestaurant):
			resp.BadRequest(c, err.Error())
		default:
			resp.ServerError(c, err)
		}
		return
	}
	resp.OK(c, result)
}
