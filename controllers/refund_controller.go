package controllers

import (
	"errors"
	"strconv"

	"swiftcater/pkg/resp"
	"swiftcater/services"
	"swiftcater/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type RefundController struct {
	Refunds *services.RefundService
}

func NewRefundController(rs *services.RefundService) *RefundController {
	return &RefundController{Refunds: rs}
}

// POST /orders/:id/refunds
func (rc *RefundController) Create(c *gin.Context) {
	var in services.CreateRefundIn
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	req, err := rc.Refunds.Create(utils.CurrentUserID(c), paramID(c, "id"), &in)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrRefundItemNotOnOrder):
			resp.BadRequest(c, err.Error())
		case errors.Is(err, gorm.ErrRecordNotFound):
			resp.NotFound(c, "order not found")
		default:
			resp.ServerError(c, err)
		}
		return
	}
	resp.Created(c, req)
}

// GET /orders/:id/refunds
func (rc *RefundController) ListByOrder(c *gin.Context) {
	items, err := rc.Refunds.ListByOrder(utils.CurrentUserID(c), paramID(c, "id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			resp.NotFound(c, "order not found")
			return
		}
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, gin.H{"items": items})
}

// GET /partner/restaurant/refunds?restaurantId=&statusId=
func (rc *RefundController) ListByRestaurant(c *gin.Context) {
	restID, _ := strconv.ParseUint(c.Query("restaurantId"), 10, 64)
	if restID == 0 {
		resp.BadRequest(c, "restaurantId required")
		return
	}
	var statusID *uint
	if v, err := strconv.ParseUint(c.Query("statusId"), 10, 64); err == nil && v != 0 {
		id := uint(v)
		statusID = &id
	}

	items, err := rc.Refunds.ListByRestaurant(utils.CurrentUserID(c), uint(restID), utils.CurrentRole(c), statusID)
	if err != nil {
		if err.Error() == "forbidden" {
			resp.Forbidden(c, "forbidden")
			return
		}
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, gin.H{"items": items})
}

// PATCH /partner/restaurant/refunds/:id/process
func (rc *RefundController) Process(c *gin.Context) {
	var in services.ProcessRefundIn
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	req, err := rc.Refunds.Process(utils.CurrentUserID(c), paramID(c, "id"), utils.CurrentRole(c), &in)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrRefundAlreadyDone):
			resp.Conflict(c, err.Error())
		case errors.Is(err, gorm.ErrRecordNotFound):
			resp.NotFound(c, "refund request not found")
		default:
			if err.Error() == "forbidden" {
				resp.Forbidden(c, "forbidden")
				return
			}
			resp.ServerError(c, err)
		}
		return
	}
	resp.OK(c, req)
}
