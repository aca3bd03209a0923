package services

import (
	"errors"
	"fmt"
	"time"

	"swiftcater/entity"
	"swiftcater/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrEmptySession   = errors.New("session has no items")
	ErrMinOrderNotMet = errors.New("minimum order not met")
)

type StatusIDs struct {
	Pending    uint
	Preparing  uint
	Delivering uint
	Completed  uint
	Cancelled  uint
}

// StatusNotifier pushes status changes to live tracking views. The websocket
// hub implements it; a nil notifier is fine.
type StatusNotifier interface {
	NotifyStatus(token, status string)
}

type OrderService struct {
	DB          *gorm.DB
	Repo        *repository.OrderRepository
	SessionRepo *repository.SessionRepository
	RestRepo    *repository.RestaurantRepository
	Pricing     *PricingService

	Status   StatusIDs
	Notifier StatusNotifier
}

func NewOrderService(
	db *gorm.DB,
	repo *repository.OrderRepository,
	sessionRepo *repository.SessionRepository,
	restRepo *repository.RestaurantRepository,
	pricing *PricingService,
) *OrderService {
	s := &OrderService{DB: db, Repo: repo, SessionRepo: sessionRepo, RestRepo: restRepo, Pricing: pricing}

	if id, err := repo.GetStatusIDByName("Pending"); err == nil {
		s.Status.Pending = id
	}
	if id, err := repo.GetStatusIDByName("Preparing"); err == nil {
		s.Status.Preparing = id
	}
	if id, err := repo.GetStatusIDByName("Delivering"); err == nil {
		s.Status.Delivering = id
	}
	if id, err := repo.GetStatusIDByName("Completed"); err == nil {
		s.Status.Completed = id
	}
	if id, err := repo.GetStatusIDByName("Cancelled"); err == nil {
		s.Status.Cancelled = id
	}

	return s
}

// ----- DTOs from Controller -----

type CheckoutReq struct {
	CustomerName  string `json:"customerName" binding:"required"`
	CustomerEmail string `json:"customerEmail" binding:"required,email"`
	CustomerPhone string `json:"customerPhone" binding:"required"`
	Address       string `json:"address" binding:"required"`
	Postcode      string `json:"postcode" binding:"required"`
	EventType     string `json:"eventType"`
	EventDate     string `json:"eventDate"` // RFC 3339
}

type CheckoutRes struct {
	ID          uint   `json:"id"`
	PublicToken string `json:"publicToken"`
	Total       int64  `json:"total"`
}

// Checkout turns a priced session into a submitted order. Minimum-order
// violations block submission but never touch the cart.
func (s *OrderService) Checkout(userID, sessionID uint, req *CheckoutReq) (*CheckoutRes, error) {
	session, err := s.SessionRepo.GetWithItems(userID, sessionID)
	if err != nil {
		return nil, err
	}
	if len(session.Items) == 0 {
		return nil, ErrEmptySession
	}

	items, err := BuildSelectedItems(session)
	if err != nil {
		return nil, err
	}

	statuses, valid, err := ValidateSessionMinOrders(items, s.RestRepo.MinOrderRules)
	if err != nil {
		return nil, err
	}
	if !valid {
		for _, st := range statuses {
			if !st.IsValid {
				return nil, fmt.Errorf("%w: %s: %s", ErrMinOrderNotMet, st.RestaurantName, UnmetMessage(st))
			}
		}
	}

	quote, err := s.Pricing.quoteSession(session)
	if err != nil {
		return nil, err
	}
	groups := quote.Groups

	var eventDate *time.Time
	if req.EventDate != "" {
		if t, perr := time.Parse(time.RFC3339, req.EventDate); perr == nil {
			eventDate = &t
		}
	}
	if eventDate == nil {
		eventDate = session.EventDate
	}

	var out CheckoutRes
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		order := entity.Order{
			PublicToken:       uuid.NewString(),
			UserID:            userID,
			CustomerName:      req.CustomerName,
			CustomerEmail:     req.CustomerEmail,
			CustomerPhone:     req.CustomerPhone,
			EventDate:         eventDate,
			EventType:         req.EventType,
			Label:             session.Label,
			DeliveryAddress:   req.Address,
			Postcode:          req.Postcode,
			Subtotal:          quote.Subtotal,
			PromotionDiscount: quote.PromotionDiscount,
			PromoDiscount:     quote.PromoDiscount,
			DeliveryFee:       quote.DeliveryFee,
			Total:             quote.Total,
			OrderStatusID:     s.Status.Pending,
		}
		if err := s.Repo.CreateOrder(tx, &order); err != nil {
			return err
		}

		for _, g := range groups {
			for _, line := range g.Items {
				oi := entity.OrderItem{
					OrderID:      order.ID,
					MenuItemID:   line.MenuItemID,
					RestaurantID: g.RestaurantID,
					GroupTitle:   line.GroupTitle,
					Qty:          line.Qty,
					UnitPrice:    line.UnitPrice,
					AddonPrice:   line.AddonPrice,
					Total:        line.Total,
				}
				for _, a := range line.Addons {
					oi.Addons = append(oi.Addons, entity.OrderItemAddon{
						AddonID:    a.AddonID,
						Name:       a.Name,
						Price:      a.Price,
						Qty:        a.Qty,
						GroupTitle: a.GroupTitle,
					})
				}
				if err := s.Repo.CreateOrderItem(tx, &oi); err != nil {
					return err
				}
			}
		}

		if err := s.SessionRepo.ClearItems(tx, sessionID); err != nil {
			return err
		}
		if err := s.SessionRepo.SetPricingState(tx, sessionID, entity.PricingIdle); err != nil {
			return err
		}

		out = CheckoutRes{ID: order.ID, PublicToken: order.PublicToken, Total: order.Total}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// ----- List & Detail -----

func (s *OrderService) ListForUser(userID uint, limit int) ([]repository.OrderSummary, error) {
	return s.Repo.ListOrdersForUser(userID, limit)
}

type OrderDetail struct {
	ID                uint               `json:"id"`
	PublicToken       string             `json:"publicToken"`
	Subtotal          int64              `json:"subtotal"`
	PromotionDiscount int64              `json:"promotionDiscount"`
	PromoDiscount     int64              `json:"promoDiscount"`
	DeliveryFee       int64              `json:"deliveryFee"`
	Total             int64              `json:"total"`
	OrderStatusID     uint               `json:"orderStatusId"`
	Items             []entity.OrderItem `json:"items"`
}

func (s *OrderService) DetailForUser(userID, orderID uint) (*OrderDetail, error) {
	o, err := s.Repo.GetOrderForUser(userID, orderID)
	if err != nil {
		return nil, err
	}
	items, err := s.Repo.GetOrderItems(o.ID)
	if err != nil {
		return nil, err
	}
	return &OrderDetail{
		ID: o.ID, PublicToken: o.PublicToken,
		Subtotal: o.Subtotal, PromotionDiscount: o.PromotionDiscount,
		PromoDiscount: o.PromoDiscount, DeliveryFee: o.DeliveryFee,
		Total: o.Total, OrderStatusID: o.OrderStatusID, Items: items,
	}, nil
}

// TrackingView is the public, no-login order view behind the token.
type TrackingView struct {
	PublicToken     string             `json:"publicToken"`
	Status          string             `json:"status"`
	CustomerName    string             `json:"customerName"`
	CustomerEmail   string             `json:"customerEmail"`
	CustomerPhone   string             `json:"customerPhone"`
	EventDate       *time.Time         `json:"eventDate,omitempty"`
	EventType       string             `json:"eventType"`
	Label           string             `json:"label"`
	DeliveryAddress string             `json:"deliveryAddress"`
	Postcode        string             `json:"postcode"`
	Items           []entity.OrderItem `json:"items"`
	Total           int64              `json:"total"`
}

func (s *OrderService) TrackByToken(token string) (*TrackingView, error) {
	o, err := s.Repo.GetByToken(token)
	if err != nil {
		return nil, err
	}
	return &TrackingView{
		PublicToken:     o.PublicToken,
		Status:          o.OrderStatus.StatusName,
		CustomerName:    o.CustomerName,
		CustomerEmail:   o.CustomerEmail,
		CustomerPhone:   o.CustomerPhone,
		EventDate:       o.EventDate,
		EventType:       o.EventType,
		Label:           o.Label,
		DeliveryAddress: o.DeliveryAddress,
		Postcode:        o.Postcode,
		Items:           o.OrderItems,
		Total:           o.Total,
	}, nil
}

type RestaurantOrderListOut struct {
	Items []repository.RestaurantOrderSummary `json:"items"`
	Total int64                               `json:"total"`
	Page  int                                 `json:"page"`
	Limit int                                 `json:"limit"`
}

func (s *OrderService) ListForRestaurant(userID, restID uint, statusID *uint, page, limit int) (*RestaurantOrderListOut, error) {
	ok, err := s.RestRepo.IsOwnedBy(restID, userID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, errors.New("forbidden")
	}

	items, total, err := s.Repo.ListOrdersForRestaurant(restID, statusID, page, limit)
	if err != nil {
		return nil, err
	}

	return &RestaurantOrderListOut{Items: items, Total: total, Page: page, Limit: limit}, nil
}

func (s *OrderService) statusName(id uint) string {
	switch id {
	case s.Status.Pending:
		return "Pending"
	case s.Status.Preparing:
		return "Preparing"
	case s.Status.Delivering:
		return "Delivering"
	case s.Status.Completed:
		return "Completed"
	case s.Status.Cancelled:
		return "Cancelled"
	}
	return ""
}

func (s *OrderService) notify(orderID, statusID uint) {
	if s.Notifier == nil {
		return
	}
	o, err := s.Repo.GetOrder(orderID)
	if err != nil {
		return
	}
	s.Notifier.NotifyStatus(o.PublicToken, s.statusName(statusID))
}
