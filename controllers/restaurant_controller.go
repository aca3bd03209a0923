package controllers

import (
	"strconv"

	"swiftcater/pkg/resp"
	"swiftcater/repository"

	"github.com/gin-gonic/gin"
)

type RestaurantController struct {
	RestRepo *repository.RestaurantRepository
}

func NewRestaurantController(rr *repository.RestaurantRepository) *RestaurantController {
	return &RestaurantController{RestRepo: rr}
}

// GET /restaurants?cuisine=&dietary=&allergen=&maxPerPerson=
func (rc *RestaurantController) List(c *gin.Context) {
	maxPerPerson, _ := strconv.ParseInt(c.Query("maxPerPerson"), 10, 64)
	f := repository.ListFilter{
		Cuisine:      c.Query("cuisine"),
		Dietary:      c.Query("dietary"),
		Allergen:     c.Query("allergen"),
		MaxPerPerson: maxPerPerson,
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	items, err := rc.RestRepo.List(f, limit)
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, gin.H{"items": items})
}

// GET /restaurants/:id - detail with menu sections and min-order rules
func (rc *RestaurantController) Detail(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		resp.BadRequest(c, "invalid id")
		return
	}

	rest, err := rc.RestRepo.GetWithMenu(uint(id))
	if err != nil {
		resp.NotFound(c, "restaurant not found")
		return
	}

	resp.OK(c, gin.H{
		"restaurant":    rest,
		"menuItems":     rest.MenuItems,
		"minOrderRules": rest.MinOrderRules,
	})
}
