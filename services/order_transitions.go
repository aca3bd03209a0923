package services

import (
	"errors"

	"gorm.io/gorm"
)

// Owner/admin actions. Each transition is guarded so a concurrent change to
// the same order cannot double-apply.

func (s *OrderService) ownerGuard(actorID, orderID uint, role string) error {
	if role == "admin" {
		return nil
	}
	ok, err := s.Repo.OrderIncludesRestaurantOwnedBy(orderID, actorID)
	if err != nil {
		return err
	}
	if !ok {
		return errors.New("forbidden")
	}
	return nil
}

func (s *OrderService) transition(actorID, orderID uint, role string, from, to uint) error {
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := s.ownerGuard(actorID, orderID, role); err != nil {
			return err
		}
		affected, err := s.Repo.UpdateStatusGuard(tx, orderID, from, to)
		if err != nil {
			return err
		}
		if affected == 0 {
			return errors.New("invalid_or_conflict")
		}
		return nil
	})
	if err != nil {
		return err
	}
	s.notify(orderID, to)
	return nil
}

func (s *OrderService) OwnerAccept(actorID, orderID uint, role string) error {
	return s.transition(actorID, orderID, role, s.Status.Pending, s.Status.Preparing)
}

func (s *OrderService) OwnerHandoff(actorID, orderID uint, role string) error {
	return s.transition(actorID, orderID, role, s.Status.Preparing, s.Status.Delivering)
}

func (s *OrderService) OwnerComplete(actorID, orderID uint, role string) error {
	return s.transition(actorID, orderID, role, s.Status.Delivering, s.Status.Completed)
}

func (s *OrderService) OwnerCancel(actorID, orderID uint, role string) error {
	return s.transition(actorID, orderID, role, s.Status.Pending, s.Status.Cancelled)
}
