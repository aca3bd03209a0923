package services

import (
	"errors"
	"time"

	"swiftcater/entity"
	"swiftcater/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type DashboardService struct {
	DB         *gorm.DB
	RestRepo   *repository.RestaurantRepository
	RefundRepo *repository.RefundRepository
}

func NewDashboardService(db *gorm.DB, rr *repository.RestaurantRepository, fr *repository.RefundRepository) *DashboardService {
	return &DashboardService{DB: db, RestRepo: rr, RefundRepo: fr}
}

type DashboardOut struct {
	OrdersToday    int64           `json:"ordersToday"`
	OrdersTotal    int64           `json:"ordersTotal"`
	Revenue        int64           `json:"revenue"` // this restaurant's lines, pence
	AvgOrderValue  decimal.Decimal `json:"avgOrderValue"`
	RedemptionRate decimal.Decimal `json:"redemptionRate"` // share of orders with a promo code
	PendingRefunds int64           `json:"pendingRefunds"`
}

// Overview aggregates the owner-facing counters for one restaurant.
func (s *DashboardService) Overview(userID, restID uint, role string) (*DashboardOut, error) {
	if role != "admin" {
		ok, err := s.RestRepo.IsOwnedBy(restID, userID)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, errors.New("forbidden")
		}
	}

	out := &DashboardOut{}

	orderIDs := s.DB.Model(&entity.OrderItem{}).
		Select("DISTINCT order_id").
		Where("restaurant_id = ?", restID)

	if err := s.DB.Model(&entity.Order{}).
		Where("id IN (?)", orderIDs).
		Count(&out.OrdersTotal).Error; err != nil {
		return nil, err
	}

	start := time.Now().Truncate(24 * time.Hour)
	if err := s.DB.Model(&entity.Order{}).
		Where("id IN (?)", orderIDs).
		Where("created_at >= ?", start).
		Count(&out.OrdersToday).Error; err != nil {
		return nil, err
	}

	var revenue *int64
	if err := s.DB.Model(&entity.OrderItem{}).
		Select("SUM(total)").
		Where("restaurant_id = ?", restID).
		Scan(&revenue).Error; err != nil {
		return nil, err
	}
	if revenue != nil {
		out.Revenue = *revenue
	}

	var redeemed int64
	if err := s.DB.Model(&entity.Order{}).
		Where("id IN (?)", orderIDs).
		Where("promo_discount > 0").
		Count(&redeemed).Error; err != nil {
		return nil, err
	}

	if out.OrdersTotal > 0 {
		out.AvgOrderValue = decimal.NewFromInt(out.Revenue).
			Div(decimal.NewFromInt(out.OrdersTotal)).Round(2)
		out.RedemptionRate = decimal.NewFromInt(redeemed).
			Div(decimal.NewFromInt(out.OrdersTotal)).Round(4)
	}

	if pendingID, err := s.RefundRepo.GetStatusIDByName("Pending"); err == nil {
		n, err := s.RefundRepo.CountPendingForRestaurant(restID, pendingID)
		if err != nil {
			return nil, err
		}
		out.PendingRefunds = n
	}

	return out, nil
}
