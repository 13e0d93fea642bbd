// Package orderrepo provides data transfer objects and mapping functions for
// order persistence. The aggregate spans three tables: the order row, its
// frozen item snapshots, and the append-only status history.
package orderrepo

import (
	"time"

	"pichuka/internal/core/domain/model/kernel"
	"pichuka/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Indexed by customer for history lookups and by status for the kitchen and
// delivery queues. The version column backs the optimistic concurrency check.
type OrderDTO struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Customer   string          `gorm:"index"`
	TotalPrice decimal.Decimal `gorm:"type:numeric(12,2)"`
	OrderDate  time.Time
	Status     int `gorm:"index"`

	EstimatedDelivery *time.Time
	Notes             string

	DeliveredAt         *time.Time
	DeliveredByIdentity *string
	DeliveredByRole     *int
	DeliveredByPosition *string

	Version int

	Items   []OrderItemDTO    `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	History []OrderHistoryDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

// OrderItemDTO represents one frozen item snapshot. Prices here are the prices
// at checkout; later menu edits never touch these rows.
type OrderItemDTO struct {
	OrderID  uuid.UUID `gorm:"type:uuid;primaryKey"`
	DishID   int       `gorm:"primaryKey"`
	Title    string
	Price    decimal.Decimal `gorm:"type:numeric(12,2)"`
	Quantity int
	Image    string
}

// TableName specifies the database table name for order item snapshots.
func (OrderItemDTO) TableName() string {
	return "order_items"
}

// OrderHistoryDTO represents one row of the append-only status audit trail.
// Rows are inserted on every transition and never updated or deleted.
type OrderHistoryDTO struct {
	ID             uint      `gorm:"primaryKey;autoIncrement"`
	OrderID        uuid.UUID `gorm:"type:uuid;index"`
	PreviousStatus int
	Timestamp      time.Time
	ActorLabel     string
}

// TableName specifies the database table name for status history rows.
func (OrderHistoryDTO) TableName() string {
	return "order_status_history"
}

// fromDomain converts an order domain aggregate to its database representation.
func fromDomain(aggregate *order.Order) OrderDTO {
	items := aggregate.Items()
	itemDTOs := make([]OrderItemDTO, 0, len(items))
	for _, item := range items {
		itemDTOs = append(itemDTOs, OrderItemDTO{
			OrderID:  aggregate.ID().Bytes(),
			DishID:   item.DishID(),
			Title:    item.Title(),
			Price:    item.Price(),
			Quantity: item.Quantity(),
			Image:    item.Image(),
		})
	}

	history := aggregate.History()
	historyDTOs := make([]OrderHistoryDTO, 0, len(history))
	for _, entry := range history {
		historyDTOs = append(historyDTOs, OrderHistoryDTO{
			OrderID:        aggregate.ID().Bytes(),
			PreviousStatus: int(entry.PreviousStatus()),
			Timestamp:      entry.Timestamp(),
			ActorLabel:     entry.ActorLabel(),
		})
	}

	dto := OrderDTO{
		ID:                aggregate.ID().Bytes(),
		Customer:          aggregate.Customer(),
		TotalPrice:        aggregate.TotalPrice(),
		OrderDate:         aggregate.OrderDate(),
		Status:            int(aggregate.Status()),
		EstimatedDelivery: aggregate.EstimatedDelivery(),
		Notes:             aggregate.Notes(),
		DeliveredAt:       aggregate.DeliveredAt(),
		Version:           aggregate.Version(),
		Items:             itemDTOs,
		History:           historyDTOs,
	}

	if record := aggregate.DeliveredBy(); record != nil {
		identity := record.Identity()
		role := int(record.Role())
		position := record.Position()
		dto.DeliveredByIdentity = &identity
		dto.DeliveredByRole = &role
		dto.DeliveredByPosition = &position
	}

	return dto
}

// toDomain converts a database DTO to an order domain aggregate.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	items := make([]order.Item, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		item, itemErr := order.NewItem(itemDTO.DishID, itemDTO.Title, itemDTO.Price, itemDTO.Quantity, itemDTO.Image)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	history := make([]order.HistoryEntry, 0, len(dto.History))
	for _, entry := range dto.History {
		history = append(history, order.RestoreHistoryEntry(
			order.Status(entry.PreviousStatus),
			entry.Timestamp,
			entry.ActorLabel,
		))
	}

	var deliveredBy *order.DeliveryRecord
	if dto.DeliveredByIdentity != nil && dto.DeliveredByRole != nil && dto.DeliveredAt != nil {
		position := ""
		if dto.DeliveredByPosition != nil {
			position = *dto.DeliveredByPosition
		}
		record := order.RestoreDeliveryRecord(
			*dto.DeliveredByIdentity,
			order.RoleClass(*dto.DeliveredByRole),
			position,
			*dto.DeliveredAt,
		)
		deliveredBy = &record
	}

	return order.RestoreOrder(
		id,
		dto.Customer,
		items,
		dto.TotalPrice,
		dto.OrderDate,
		order.Status(dto.Status),
		history,
		dto.EstimatedDelivery,
		dto.Notes,
		dto.DeliveredAt,
		deliveredBy,
		dto.Version,
	)
}
