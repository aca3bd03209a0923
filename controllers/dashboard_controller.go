package controllers

import (
	"strconv"
	"time"

	"swiftcater/entity"
	"swiftcater/pkg/resp"
	"swiftcater/services"
	"swiftcater/utils"

	"github.com/gin-gonic/gin"
)

func parseTimeInto(s string, dst **time.Time) {
	if s == "" {
		return
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		*dst = &t
	}
}

type DashboardController struct {
	Dashboard *services.DashboardService
	Promos    *services.PromotionAdminService
	Orders    *services.OrderService
}

func NewDashboardController(ds *services.DashboardService, ps *services.PromotionAdminService, os *services.OrderService) *DashboardController {
	return &DashboardController{Dashboard: ds, Promos: ps, Orders: os}
}

// GET /partner/restaurant/dashboard?restaurantId=
func (dc *DashboardController) Overview(c *gin.Context) {
	restID, _ := strconv.ParseUint(c.Query("restaurantId"), 10, 64)
	if restID == 0 {
		resp.BadRequest(c, "restaurantId required")
		return
	}

	out, err := dc.Dashboard.Overview(utils.CurrentUserID(c), uint(restID), utils.CurrentRole(c))
	if err != nil {
		if err.Error() == "forbidden" {
			resp.Forbidden(c, "forbidden")
			return
		}
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, out)
}

// GET /partner/restaurant/orders?restaurantId=&statusId=&page=&limit=
func (dc *DashboardController) RestaurantOrders(c *gin.Context) {
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
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	out, err := dc.Orders.ListForRestaurant(utils.CurrentUserID(c), uint(restID), statusID, page, limit)
	if err != nil {
		if err.Error() == "forbidden" {
			resp.Forbidden(c, "forbidden")
			return
		}
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, out)
}

// ----- order transitions -----

func (dc *DashboardController) Accept(c *gin.Context) {
	dc.doTransition(c, dc.Orders.OwnerAccept)
}
func (dc *DashboardController) Handoff(c *gin.Context) {
	dc.doTransition(c, dc.Orders.OwnerHandoff)
}
func (dc *DashboardController) Complete(c *gin.Context) {
	dc.doTransition(c, dc.Orders.OwnerComplete)
}
func (dc *DashboardController) Cancel(c *gin.Context) {
	dc.doTransition(c, dc.Orders.OwnerCancel)
}

func (dc *DashboardController) doTransition(c *gin.Context, fn func(actorID, orderID uint, role string) error) {
	err := fn(utils.CurrentUserID(c), paramID(c, "id"), utils.CurrentRole(c))
	if err != nil {
		switch err.Error() {
		case "forbidden":
			resp.Forbidden(c, "forbidden")
		case "invalid_or_conflict":
			resp.Conflict(c, "invalid status transition")
		default:
			resp.ServerError(c, err)
		}
		return
	}
	resp.OK(c, gin.H{"updated": true})
}

// ----- promotions -----

type PromotionIn struct {
	PromoCode    string `json:"promoCode" binding:"required"`
	PromoDetail  string `json:"promoDetail"`
	PercentOff   uint   `json:"percentOff"`
	AmountOff    int64  `json:"amountOff"`
	MinOrder     int64  `json:"minOrder"`
	StartAt      string `json:"startAt"`
	EndAt        string `json:"endAt"`
	RestaurantID *uint  `json:"restaurantId"`
}

// GET /partner/restaurant/promotions?restaurantId=
func (dc *DashboardController) Promotions(c *gin.Context) {
	restID, _ := strconv.ParseUint(c.Query("restaurantId"), 10, 64)
	if restID == 0 {
		resp.BadRequest(c, "restaurantId required")
		return
	}
	items, err := dc.Promos.List(utils.CurrentUserID(c), utils.CurrentRole(c), uint(restID))
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

// POST /partner/restaurant/promotions
func (dc *DashboardController) CreatePromotion(c *gin.Context) {
	var in PromotionIn
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	promo := entity.Promotion{
		PromoCode:    in.PromoCode,
		PromoDetail:  in.PromoDetail,
		PercentOff:   in.PercentOff,
		AmountOff:    in.AmountOff,
		MinOrder:     in.MinOrder,
		RestaurantID: in.RestaurantID,
	}
	parseTimeInto(in.StartAt, &promo.StartAt)
	parseTimeInto(in.EndAt, &promo.EndAt)

	if err := dc.Promos.Create(utils.CurrentUserID(c), utils.CurrentRole(c), &promo); err != nil {
		if err.Error() == "forbidden" || err.Error() == "only admins create platform-wide codes" {
			resp.Forbidden(c, err.Error())
			return
		}
		resp.ServerError(c, err)
		return
	}
	resp.Created(c, promo)
}

// PATCH /partner/restaurant/promotions/:id
func (dc *DashboardController) UpdatePromotion(c *gin.Context) {
	var in PromotionIn
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	promo := entity.Promotion{
		PromoCode:   in.PromoCode,
		PromoDetail: in.PromoDetail,
		PercentOff:  in.PercentOff,
		AmountOff:   in.AmountOff,
		MinOrder:    in.MinOrder,
	}
	parseTimeInto(in.StartAt, &promo.StartAt)
	parseTimeInto(in.EndAt, &promo.EndAt)

	if err := dc.Promos.Update(utils.CurrentUserID(c), utils.CurrentRole(c), paramID(c, "id"), &promo); err != nil {
		if err.Error() == "forbidden" {
			resp.Forbidden(c, "forbidden")
			return
		}
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, gin.H{"updated": true})
}

// DELETE /partner/restaurant/promotions/:id
func (dc *DashboardController) DeletePromotion(c *gin.Context) {
	if err := dc.Promos.Delete(utils.CurrentUserID(c), utils.CurrentRole(c), paramID(c, "id")); err != nil {
		if err.Error() == "forbidden" {
			resp.Forbidden(c, "forbidden")
			return
		}
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, gin.H{"deleted": true})
}
