// Package cartrepo provides data transfer objects and mapping functions for
// cart persistence. Carts are keyed by customer identity, one row per
// customer, with items stored in a child table.
package cartrepo

import (
	"time"

	"pichuka/internal/core/domain/model/cart"

	"github.com/shopspring/decimal"
)

// CartDTO represents the database structure for persisting cart aggregates.
// The version column backs the optimistic concurrency check on updates.
type CartDTO struct {
	Customer  string `gorm:"primaryKey"`
	UpdatedAt time.Time
	Version   int
	Items     []CartItemDTO `gorm:"foreignKey:CartCustomer;references:Customer;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for cart entities.
func (CartDTO) TableName() string {
	return "carts"
}

// CartItemDTO represents one coalesced cart line. The (customer, dish) pair is
// the natural key: the aggregate never holds two lines for the same dish.
type CartItemDTO struct {
	CartCustomer string          `gorm:"primaryKey"`
	DishID       int             `gorm:"primaryKey"`
	Title        string
	Price        decimal.Decimal `gorm:"type:numeric(12,2)"`
	Quantity     int
	Image        string
}

// TableName specifies the database table name for cart line entities.
func (CartItemDTO) TableName() string {
	return "cart_items"
}

// fromDomain converts a cart domain aggregate to its database representation.
func fromDomain(aggregate *cart.Cart) CartDTO {
	items := aggregate.Items()
	itemDTOs := make([]CartItemDTO, 0, len(items))
	for _, item := range items {
		itemDTOs = append(itemDTOs, CartItemDTO{
			CartCustomer: aggregate.Customer(),
			DishID:       item.DishID(),
			Title:        item.Title(),
			Price:        item.Price(),
			Quantity:     item.Quantity(),
			Image:        item.Image(),
		})
	}

	return CartDTO{
		Customer:  aggregate.Customer(),
		UpdatedAt: aggregate.UpdatedAt(),
		Version:   aggregate.Version(),
		Items:     itemDTOs,
	}
}

// toDomain converts a database DTO to a cart domain aggregate.
func toDomain(dto CartDTO) (*cart.Cart, error) {
	items := make([]cart.Item, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		item, err := cart.NewItem(itemDTO.DishID, itemDTO.Title, itemDTO.Price, itemDTO.Quantity, itemDTO.Image)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	return cart.RestoreCart(dto.Customer, items, dto.UpdatedAt, dto.Version)
}
