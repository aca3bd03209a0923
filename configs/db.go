package configs

import (
	"swiftcater/entity"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var db *gorm.DB

func DB() *gorm.DB {
	return db
}

func ConnectionDB(source string) {
	database, err := gorm.Open(sqlite.Open(source), &gorm.Config{})
	if err != nil {
		panic("failed to connect database")
	}
	db = database
}

func SetupDatabase() {

	// Migrate the schema
	db.AutoMigrate(
		&entity.User{},
		&entity.RestaurantStatus{}, &entity.Restaurant{},
		&entity.MenuItem{}, &entity.Addon{}, &entity.MinOrderRule{},
		&entity.MealSession{}, &entity.SessionItem{}, &entity.SessionItemAddon{}, &entity.SessionPromo{},
		&entity.Promotion{},
		&entity.OrderStatus{}, &entity.Order{}, &entity.OrderItem{}, &entity.OrderItemAddon{},
		&entity.RefundStatus{}, &entity.RefundRequest{}, &entity.RefundItem{},
	)
}
