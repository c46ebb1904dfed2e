package repository

import (
	"errors"

	"go-sweetshop/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SearchFilter holds the optional catalog search criteria. Absent fields are
// no-ops; supplied fields are ANDed together.
type SearchFilter struct {
	Name     string
	Category string
	MinPrice *float64
	MaxPrice *float64
}

type SweetRepository interface {
	Create(sweet *model.Sweet) error
	FindAll() ([]model.Sweet, error)
	FindByID(id uint) (*model.Sweet, error)
	Search(filter SearchFilter) ([]model.Sweet, error)
	Save(sweet *model.Sweet) error
	Delete(id uint) error
	// AdjustStock loads the sweet under a row lock, asks apply for the new
	// quantity, and persists it in the same transaction. The read and write
	// form one atomic unit, so concurrent adjustments of one sweet serialize.
	AdjustStock(id uint, apply func(sweet *model.Sweet) (int, error)) (*model.Sweet, error)
}

type sweetRepo struct {
	db *gorm.DB
}

func NewSweetRepo(db *gorm.DB) SweetRepository {
	return &sweetRepo{db}
}

func (r *sweetRepo) Create(sweet *model.Sweet) error {
	return r.db.Create(sweet).Error
}

func (r *sweetRepo) FindAll() ([]model.Sweet, error) {
	var sweets []model.Sweet
	err := r.db.Order("sweet_id ASC").Find(&sweets).Error
	return sweets, err
}

func (r *sweetRepo) FindByID(id uint) (*model.Sweet, error) {
	var sweet model.Sweet
	if err := r.db.First(&sweet, "sweet_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &sweet, nil
}

func (r *sweetRepo) Search(filter SearchFilter) ([]model.Sweet, error) {
	query := r.db.Model(&model.Sweet{})

	if filter.Name != "" {
		query = query.Where("sweet_name ILIKE ?", "%"+filter.Name+"%")
	}
	if filter.Category != "" {
		query = query.Where("sweet_category ILIKE ?", "%"+filter.Category+"%")
	}
	if filter.MinPrice != nil {
		query = query.Where("sweet_price >= ?", *filter.MinPrice)
	}
	if filter.MaxPrice != nil {
		query = query.Where("sweet_price <= ?", *filter.MaxPrice)
	}

	var sweets []model.Sweet
	err := query.Order("sweet_id ASC").Find(&sweets).Error
	return sweets, err
}

func (r *sweetRepo) Save(sweet *model.Sweet) error {
	return r.db.Save(sweet).Error
}

func (r *sweetRepo) Delete(id uint) error {
	result := r.db.Delete(&model.Sweet{}, "sweet_id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *sweetRepo) AdjustStock(id uint, apply func(sweet *model.Sweet) (int, error)) (*model.Sweet, error) {
	var sweet model.Sweet

	err := r.db.Transaction(func(tx *gorm.DB) error {
		// Pessimistic lock: concurrent purchases of the same sweet queue here
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&sweet, "sweet_id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		newQuantity, err := apply(&sweet)
		if err != nil {
			return err
		}

		if err := tx.Model(&sweet).Update("quantity_in_stock", newQuantity).Error; err != nil {
			return err
		}
		sweet.QuantityInStock = newQuantity
		return nil
	})

	if err != nil {
		return nil, err
	}
	return &sweet, nil
}
