package services

import (
	"errors"

	"swiftcater/entity"
	"swiftcater/repository"
)

// PromotionAdminService is the owner/admin side of promo codes: the customer
// side only reads them through PromoService.
type PromotionAdminService struct {
	Repo     *repository.PromotionRepository
	RestRepo *repository.RestaurantRepository
}

func NewPromotionAdminService(pr *repository.PromotionRepository, rr *repository.RestaurantRepository) *PromotionAdminService {
	return &PromotionAdminService{Repo: pr, RestRepo: rr}
}

func (s *PromotionAdminService) guard(userID uint, role string, restID uint) error {
	if role == "admin" {
		return nil
	}
	ok, err := s.RestRepo.IsOwnedBy(restID, userID)
	if err != nil {
		return err
	}
	if !ok {
		return errors.New("forbidden")
	}
	return nil
}

func (s *PromotionAdminService) Create(userID uint, role string, promo *entity.Promotion) error {
	if promo.RestaurantID == nil {
		if role != "admin" {
			return errors.New("only admins create platform-wide codes")
		}
	} else if err := s.guard(userID, role, *promo.RestaurantID); err != nil {
		return err
	}
	promo.PromoCode = NormalizeCode(promo.PromoCode)
	return s.Repo.Create(promo)
}

func (s *PromotionAdminService) List(userID uint, role string, restID uint) ([]entity.Promotion, error) {
	if err := s.guard(userID, role, restID); err != nil {
		return nil, err
	}
	return s.Repo.ListForRestaurant(restID)
}

func (s *PromotionAdminService) Update(userID uint, role string, id uint, promo *entity.Promotion) error {
	existing, err := s.Repo.FindByID(id)
	if err != nil {
		return err
	}
	if existing.RestaurantID != nil {
		if err := s.guard(userID, role, *existing.RestaurantID); err != nil {
			return err
		}
	} else if role != "admin" {
		return errors.New("forbidden")
	}
	if promo.PromoCode != "" {
		promo.PromoCode = NormalizeCode(promo.PromoCode)
	}
	return s.Repo.Update(id, promo)
}

func (s *PromotionAdminService) Delete(userID uint, role string, id uint) error {
	existing, err := s.Repo.FindByID(id)
	if err != nil {
		return err
	}
	if existing.RestaurantID != nil {
		if err := s.guard(userID, role, *existing.RestaurantID); err != nil {
			return err
		}
	} else if role != "admin" {
		return errors.New("forbidden")
	}
	return s.Repo.Delete(id)
}
