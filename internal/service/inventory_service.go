package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"

	"go-sweetshop/internal/model"
	"go-sweetshop/internal/repository"
	"go-sweetshop/internal/ws"
	"go-sweetshop/pkg/validator"
)

// CouponCode unlocks the flat 10% discount. There is no other coupon logic.
const CouponCode = "COUPON"

var (
	ErrSweetNotFound       = errors.New("sweet not found")
	ErrNonPositiveQuantity = errors.New("quantity must be a positive integer")
)

// InsufficientStockError reports a purchase that would drive stock negative.
type InsufficientStockError struct {
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("Insufficient stock. Only %d items available.", e.Available)
}

// CreateSweetRequest is the catalog creation body. The id and timestamps are
// never client-supplied; the store assigns them.
type CreateSweetRequest struct {
	Name            string  `json:"sweet_name" validate:"required"`
	Category        string  `json:"sweet_category" validate:"required"`
	Price           float64 `json:"sweet_price" validate:"gt=0"`
	QuantityInStock int     `json:"quantity_in_stock" validate:"gte=0"`
	Description     string  `json:"sweet_description"`
}

type InventoryService interface {
	CreateSweet(req *CreateSweetRequest) (*model.Sweet, error)
	GetAllSweets() ([]model.Sweet, error)
	SearchSweets(filter repository.SearchFilter) ([]model.Sweet, error)
	UpdateSweet(id uint, patch *model.SweetPatch) (*model.Sweet, error)
	DeleteSweet(id uint) error
	Purchase(id uint, quantity int, coupon string) (*model.PurchaseResult, error)
	Restock(id uint, quantity int) (*model.RestockResult, error)
}

type inventoryService struct {
	sweetRepo repository.SweetRepository
	wsHub     *ws.Hub
}

func NewInventoryService(sweetRepo repository.SweetRepository, hub *ws.Hub) InventoryService {
	return &inventoryService{
		sweetRepo: sweetRepo,
		wsHub:     hub,
	}
}

// round2 rounds half away from zero to two decimal places.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func (s *inventoryService) CreateSweet(req *CreateSweetRequest) (*model.Sweet, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Category = strings.TrimSpace(req.Category)

	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return nil, &ValidationError{Fields: errs}
	}

	sweet := &model.Sweet{
		Name:            req.Name,
		Category:        req.Category,
		Price:           req.Price,
		QuantityInStock: req.QuantityInStock,
		Description:     req.Description,
	}
	if err := s.sweetRepo.Create(sweet); err != nil {
		return nil, err
	}

	s.broadcast("sweet_created", sweet, fmt.Sprintf("Sweet '%s' added to the catalog", sweet.Name))
	return sweet, nil
}

func (s *inventoryService) GetAllSweets() ([]model.Sweet, error) {
	return s.sweetRepo.FindAll()
}

func (s *inventoryService) SearchSweets(filter repository.SearchFilter) ([]model.Sweet, error) {
	return s.sweetRepo.Search(filter)
}

func (s *inventoryService) UpdateSweet(id uint, patch *model.SweetPatch) (*model.Sweet, error) {
	if errs := validator.ValidateStruct(patch); len(errs) > 0 {
		return nil, &ValidationError{Fields: errs}
	}

	sweet, err := s.sweetRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrSweetNotFound
		}
		return nil, err
	}

	patch.Apply(sweet)
	if err := s.sweetRepo.Save(sweet); err != nil {
		return nil, err
	}

	s.broadcast("sweet_updated", sweet, fmt.Sprintf("Sweet '%s' updated", sweet.Name))
	return sweet, nil
}

func (s *inventoryService) DeleteSweet(id uint) error {
	sweet, err := s.sweetRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrSweetNotFound
		}
		return err
	}

	if err := s.sweetRepo.Delete(id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrSweetNotFound
		}
		return err
	}

	s.broadcast("sweet_deleted", sweet, fmt.Sprintf("Sweet '%s' removed from the catalog", sweet.Name))
	return nil
}

func (s *inventoryService) Purchase(id uint, quantity int, coupon string) (*model.PurchaseResult, error) {
	if quantity <= 0 {
		// Precondition enforced at the boundary; reaching here is a caller bug
		return nil, ErrNonPositiveQuantity
	}

	var result model.PurchaseResult

	sweet, err := s.sweetRepo.AdjustStock(id, func(sw *model.Sweet) (int, error) {
		if sw.QuantityInStock < quantity {
			return 0, &InsufficientStockError{Available: sw.QuantityInStock}
		}

		totalPrice := round2(sw.Price * float64(quantity))
		discountedPrice := 0.0
		if coupon == CouponCode {
			discountedPrice = round2(0.9 * totalPrice)
		}

		result = model.PurchaseResult{
			Message:           "Purchase successful",
			SweetID:           sw.ID,
			SweetName:         sw.Name,
			PreviousQuantity:  sw.QuantityInStock,
			NewQuantity:       sw.QuantityInStock - quantity,
			QuantityPurchased: quantity,
			TotalPrice:        totalPrice,
			DiscountedPrice:   discountedPrice,
		}
		return sw.QuantityInStock - quantity, nil
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrSweetNotFound
		}
		return nil, err
	}

	s.broadcast("sweet_purchased", sweet,
		fmt.Sprintf("%d units of '%s' purchased, %d left", quantity, sweet.Name, sweet.QuantityInStock))
	return &result, nil
}

func (s *inventoryService) Restock(id uint, quantity int) (*model.RestockResult, error) {
	if quantity <= 0 {
		return nil, ErrNonPositiveQuantity
	}

	var result model.RestockResult

	sweet, err := s.sweetRepo.AdjustStock(id, func(sw *model.Sweet) (int, error) {
		result = model.RestockResult{
			Message:          "Restock successful",
			SweetID:          sw.ID,
			SweetName:        sw.Name,
			PreviousQuantity: sw.QuantityInStock,
			NewQuantity:      sw.QuantityInStock + quantity,
			QuantityAdded:    quantity,
		}
		return sw.QuantityInStock + quantity, nil
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrSweetNotFound
		}
		return nil, err
	}

	s.broadcast("sweet_restocked", sweet,
		fmt.Sprintf("%d units of '%s' restocked, %d in stock", quantity, sweet.Name, sweet.QuantityInStock))
	return &result, nil
}

// broadcast pushes a stock event to connected websocket clients.
func (s *inventoryService) broadcast(action string, sweet *model.Sweet, message string) {
	if s.wsHub == nil {
		return
	}
	go func() {
		payload := map[string]interface{}{
			"type":   "stock_update",
			"action": action,
			"sweet": map[string]interface{}{
				"sweet_id":          sweet.ID,
				"sweet_name":        sweet.Name,
				"sweet_category":    sweet.Category,
				"sweet_price":       sweet.Price,
				"quantity_in_stock": sweet.QuantityInStock,
			},
			"message": message,
		}
		msg, _ := json.Marshal(payload)
		s.wsHub.Broadcast <- msg
	}()
}
