package services

import (
	"errors"

	"swiftcater/entity"
	"swiftcater/repository"

	"gorm.io/gorm"
)

var (
	ErrRefundItemNotOnOrder = errors.New("refund line does not match an order item")
	ErrRefundAlreadyDone    = errors.New("refund request already processed")
)

type RefundService struct {
	DB        *gorm.DB
	Repo      *repository.RefundRepository
	OrderRepo *repository.OrderRepository
	RestRepo  *repository.RestaurantRepository

	pendingID  uint
	approvedID uint
	rejectedID uint
}

func NewRefundService(db *gorm.DB, repo *repository.RefundRepository, or *repository.OrderRepository, rr *repository.RestaurantRepository) *RefundService {
	s := &RefundService{DB: db, Repo: repo, OrderRepo: or, RestRepo: rr}
	if id, err := repo.GetStatusIDByName("Pending"); err == nil {
		s.pendingID = id
	}
	if id, err := repo.GetStatusIDByName("Approved"); err == nil {
		s.approvedID = id
	}
	if id, err := repo.GetStatusIDByName("Rejected"); err == nil {
		s.rejectedID = id
	}
	return s
}

type RefundLineIn struct {
	OrderItemID uint  `json:"orderItemId" binding:"required"`
	Qty         int   `json:"qty" binding:"min=1"`
	Amount      int64 `json:"amount" binding:"min=1"`
}

type CreateRefundIn struct {
	RestaurantID uint           `json:"restaurantId" binding:"required"`
	Reason       string         `json:"reason" binding:"required"`
	Items        []RefundLineIn `json:"items" binding:"required,min=1,dive"`
}

// Create raises an itemized refund request against one restaurant's share of
// the order. Requested amount is the sum of the lines.
func (s *RefundService) Create(userID, orderID uint, in *CreateRefundIn) (*entity.RefundRequest, error) {
	if _, err := s.OrderRepo.GetOrderForUser(userID, orderID); err != nil {
		return nil, err
	}

	orderItems, err := s.OrderRepo.GetOrderItems(orderID)
	if err != nil {
		return nil, err
	}
	byID := make(map[uint]entity.OrderItem, len(orderItems))
	for _, oi := range orderItems {
		byID[oi.ID] = oi
	}

	var requested int64
	rows := make([]entity.RefundItem, 0, len(in.Items))
	for _, line := range in.Items {
		oi, ok := byID[line.OrderItemID]
		if !ok || oi.RestaurantID != in.RestaurantID {
			return nil, ErrRefundItemNotOnOrder
		}
		if line.Qty > oi.Qty || line.Amount > oi.Total {
			return nil, ErrRefundItemNotOnOrder
		}
		requested += line.Amount
		rows = append(rows, entity.RefundItem{
			OrderItemID: line.OrderItemID,
			Qty:         line.Qty,
			Amount:      line.Amount,
		})
	}

	req := &entity.RefundRequest{
		OrderID:         orderID,
		RestaurantID:    in.RestaurantID,
		RequestedBy:     userID,
		Reason:          in.Reason,
		RequestedAmount: requested,
		RefundStatusID:  s.pendingID,
		Items:           rows,
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		return s.Repo.Create(tx, req)
	})
	if err != nil {
		return nil, err
	}
	return req, nil
}

func (s *RefundService) ListByOrder(userID, orderID uint) ([]entity.RefundRequest, error) {
	if _, err := s.OrderRepo.GetOrderForUser(userID, orderID); err != nil {
		return nil, err
	}
	return s.Repo.ListByOrder(orderID)
}

func (s *RefundService) ListByRestaurant(userID, restID uint, role string, statusID *uint) ([]entity.RefundRequest, error) {
	if role != "admin" {
		ok, err := s.RestRepo.IsOwnedBy(restID, userID)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, errors.New("forbidden")
		}
	}
	return s.Repo.ListByRestaurant(restID, statusID)
}

type ProcessRefundIn struct {
	Approve        bool   `json:"approve"`
	ApprovedAmount int64  `json:"approvedAmount"`
	Note           string `json:"note"`
}

// Process settles a pending request. Approval may adjust the amount down;
// rejection zeroes it.
func (s *RefundService) Process(actorID, refundID uint, role string, in *ProcessRefundIn) (*entity.RefundRequest, error) {
	req, err := s.Repo.Get(refundID)
	if err != nil {
		return nil, err
	}

	if role != "admin" {
		ok, err := s.RestRepo.IsOwnedBy(req.RestaurantID, actorID)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, errors.New("forbidden")
		}
	}

	if req.RefundStatusID != s.pendingID {
		return nil, ErrRefundAlreadyDone
	}

	if in.Approve {
		amount := in.ApprovedAmount
		if amount <= 0 || amount > req.RequestedAmount {
			amount = req.RequestedAmount
		}
		req.ApprovedAmount = amount
		req.RefundStatusID = s.approvedID
	} else {
		req.ApprovedAmount = 0
		req.RefundStatusID = s.rejectedID
	}
	req.Note = in.Note

	if err := s.Repo.Save(req); err != nil {
		return nil, err
	}
	return req, nil
}
