package controllers

import (
	"strconv"

	"swiftcater/entity"
	"swiftcater/pkg/resp"
	"swiftcater/repository"
	"swiftcater/utils"

	"github.com/gin-gonic/gin"
)

type MenuController struct {
	MenuRepo *repository.MenuRepository
	RestRepo *repository.RestaurantRepository
}

func NewMenuController(mr *repository.MenuRepository, rr *repository.RestaurantRepository) *MenuController {
	return &MenuController{MenuRepo: mr, RestRepo: rr}
}

func (mc *MenuController) ownsRestaurant(c *gin.Context, restID uint) bool {
	if utils.CurrentRole(c) == "admin" {
		return true
	}
	ok, err := mc.RestRepo.IsOwnedBy(restID, utils.CurrentUserID(c))
	return err == nil && ok
}

// GET /partner/restaurant/menu?restaurantId=
func (mc *MenuController) List(c *gin.Context) {
	restID, _ := strconv.ParseUint(c.Query("restaurantId"), 10, 64)
	if restID == 0 {
		resp.BadRequest(c, "restaurantId required")
		return
	}
	if !mc.ownsRestaurant(c, uint(restID)) {
		resp.Forbidden(c, "forbidden")
		return
	}

	items, err := mc.MenuRepo.ListByRestaurant(uint(restID))
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, gin.H{"items": items})
}

type MenuItemIn struct {
	RestaurantID  uint   `json:"restaurantId" binding:"required"`
	Name          string `json:"name" binding:"required"`
	Detail        string `json:"detail"`
	Price         int64  `json:"price" binding:"required,min=1"`
	DiscountPrice int64  `json:"discountPrice"`
	IsDiscount    bool   `json:"isDiscount"`
	GroupTitle    string `json:"groupTitle"`
	FeedsPerUnit  int    `json:"feedsPerUnit"`
	Dietary       string `json:"dietary"`
	Allergens     string `json:"allergens"`
}

// POST /partner/restaurant/menu
func (mc *MenuController) Create(c *gin.Context) {
	var in MenuItemIn
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	if !mc.ownsRestaurant(c, in.RestaurantID) {
		resp.Forbidden(c, "forbidden")
		return
	}

	feeds := in.FeedsPerUnit
	if feeds <= 0 {
		feeds = entity.DefaultFeedsPerUnit
	}
	item := entity.MenuItem{
		RestaurantID:  in.RestaurantID,
		Name:          in.Name,
		Detail:        in.Detail,
		Price:         in.Price,
		DiscountPrice: in.DiscountPrice,
		IsDiscount:    in.IsDiscount,
		GroupTitle:    in.GroupTitle,
		FeedsPerUnit:  feeds,
		Dietary:       in.Dietary,
		Allergens:     in.Allergens,
	}
	if err := mc.MenuRepo.CreateItem(&item); err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.Created(c, item)
}

// PATCH /partner/restaurant/menu/:id
func (mc *MenuController) Update(c *gin.Context) {
	item, err := mc.MenuRepo.GetItem(paramID(c, "id"))
	if err != nil {
		resp.NotFound(c, "menu item not found")
		return
	}
	if !mc.ownsRestaurant(c, item.RestaurantID) {
		resp.Forbidden(c, "forbidden")
		return
	}

	var updates map[string]any
	if err := c.ShouldBindJSON(&updates); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	// whitelist updatable columns
	allowed := map[string]bool{
		"name": true, "detail": true, "price": true, "discount_price": true,
		"is_discount": true, "group_title": true, "feeds_per_unit": true,
		"dietary": true, "allergens": true,
	}
	for k := range updates {
		if !allowed[k] {
			delete(updates, k)
		}
	}

	if err := mc.MenuRepo.UpdateItem(item.ID, updates); err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, gin.H{"updated": true})
}
