package controllers

import (
	"errors"

	"swiftcater/pkg/resp"
	"swiftcater/services"
	"swiftcater/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type PromoController struct {
	Promos *services.PromoService
}

func NewPromoController(ps *services.PromoService) *PromoController {
	return &PromoController{Promos: ps}
}

type ApplyPromoRequest struct {
	Code string `json:"code" binding:"required"`
}

// POST /sessions/:id/promos - validate and apply a code. Invalid codes are a
// 200 with valid=false and a reason; the request itself succeeded.
func (pc *PromoController) Apply(c *gin.Context) {
	var req ApplyPromoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	result, err := pc.Promos.Apply(utils.CurrentUserID(c), paramID(c, "id"), req.Code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			resp.NotFound(c, "session not found")
			return
		}
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, result)
}

// DELETE /sessions/:id/promos/:code
func (pc *PromoController) Remove(c *gin.Context) {
	err := pc.Promos.Remove(utils.CurrentUserID(c), paramID(c, "id"), c.Param("code"))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrPromoNotApplied):
			resp.BadRequest(c, err.Error())
		case errors.Is(err, gorm.ErrRecordNotFound):
			resp.NotFound(c, "session not found")
		default:
			resp.ServerError(c, err)
		}
		return
	}
	resp.OK(c, gin.H{"removed": true})
}
