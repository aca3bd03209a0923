package controllers

import (
	"errors"
	"strconv"
	"time"

	"swiftcater/entity"
	"swiftcater/pkg/resp"
	"swiftcater/repository"
	"swiftcater/services"
	"swiftcater/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type SessionController struct {
	Sessions *services.SessionService
	RestRepo *repository.RestaurantRepository
	Repo     *repository.SessionRepository
}

func NewSessionController(ss *services.SessionService, rr *repository.RestaurantRepository, sr *repository.SessionRepository) *SessionController {
	return &SessionController{Sessions: ss, RestRepo: rr, Repo: sr}
}

// POST /sessions
func (sc *SessionController) Create(c *gin.Context) {
	var in services.CreateSessionIn
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	s := &entity.MealSession{
		UserID:          utils.CurrentUserID(c),
		Label:           in.Label,
		EventType:       in.EventType,
		DeliveryAddress: in.DeliveryAddress,
		Postcode:        in.Postcode,
		PricingState:    entity.PricingIdle,
	}
	if in.EventDate != nil {
		if t, err := time.Parse(time.RFC3339, *in.EventDate); err == nil {
			s.EventDate = &t
		}
	}
	if err := sc.Repo.Create(s); err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.Created(c, s)
}

// GET /sessions
func (sc *SessionController) List(c *gin.Context) {
	items, err := sc.Repo.ListForUser(utils.CurrentUserID(c))
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, gin.H{"items": items})
}

// GET /sessions/:id - grouped items, min-order status and a local estimate
func (sc *SessionController) Detail(c *gin.Context) {
	userID := utils.CurrentUserID(c)
	sessionID := paramID(c, "id")

	session, err := sc.Sessions.Get(userID, sessionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			resp.NotFound(c, "session not found")
			return
		}
		resp.ServerError(c, err)
		return
	}

	items, err := services.BuildSelectedItems(session)
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	groups, err := services.GroupByRestaurant(items)
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	statuses, valid, err := services.ValidateSessionMinOrders(items, sc.RestRepo.MinOrderRules)
	if err != nil {
		resp.ServerError(c, err)
		return
	}

	resp.OK(c, gin.H{
		"session":        session,
		"groups":         groups,
		"estimatedTotal": services.SubtotalOf(groups),
		"deliveryFee":    "TBC",
		"minOrder":       gin.H{"isValid": valid, "restaurants": statuses},
	})
}

// POST /sessions/:id/items
func (sc *SessionController) AddItem(c *gin.Context) {
	var in services.AddItemIn
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	err := sc.Sessions.AddItem(utils.CurrentUserID(c), paramID(c, "id"), &in)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrMenuItemNotFound), errors.Is(err, services.ErrAddonNotOnItem):
			resp.BadRequest(c, err.Error())
		case errors.Is(err, gorm.ErrRecordNotFound):
			resp.NotFound(c, "session not found")
		default:
			resp.ServerError(c, err)
		}
		return
	}
	resp.OK(c, gin.H{"added": true})
}

// PATCH /sessions/:id/items/:itemId
func (sc *SessionController) UpdateQty(c *gin.Context) {
	var in struct {
		Qty int `json:"qty"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	err := sc.Sessions.UpdateQty(utils.CurrentUserID(c), paramID(c, "id"), paramID(c, "itemId"), in.Qty)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			resp.NotFound(c, "item not found")
			return
		}
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, gin.H{"updated": true})
}

// DELETE /sessions/:id/items/:itemId
func (sc *SessionController) RemoveItem(c *gin.Context) {
	err := sc.Sessions.RemoveItem(utils.CurrentUserID(c), paramID(c, "id"), paramID(c, "itemId"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			resp.NotFound(c, "item not found")
			return
		}
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, gin.H{"removed": true})
}

// DELETE /sessions/:id/items
func (sc *SessionController) Clear(c *gin.Context) {
	err := sc.Sessions.Clear(utils.CurrentUserID(c), paramID(c, "id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			resp.NotFound(c, "session not found")
			return
		}
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, gin.H{"cleared": true})
}

// PATCH /sessions/:id - delivery details / resolved distance
func (sc *SessionController) Update(c *gin.Context) {
	var in struct {
		DeliveryAddress *string  `json:"deliveryAddress"`
		Postcode        *string  `json:"postcode"`
		DistanceMiles   *float64 `json:"distanceMiles"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	session, err := sc.Sessions.Get(utils.CurrentUserID(c), paramID(c, "id"))
	if err != nil {
		resp.NotFound(c, "session not found")
		return
	}

	if in.DeliveryAddress != nil {
		session.DeliveryAddress = *in.DeliveryAddress
	}
	if in.Postcode != nil {
		session.Postcode = *in.Postcode
	}
	if in.DistanceMiles != nil {
		session.DistanceMiles = in.DistanceMiles
	}
	session.PricingState = entity.PricingCalculating

	if err := sc.Repo.Save(session); err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, session)
}

func paramID(c *gin.Context, name string) uint {
	id, _ := strconv.ParseUint(c.Param(name), 10, 64)
	return uint(id)
}
