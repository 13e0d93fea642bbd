package queries

import (
	"context"
	"database/sql"
	"errors"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GetCartQueryHandler retrieves the customer's cart straight from the cart
// tables.
type GetCartQueryHandler struct {
	db *gorm.DB
}

// NewGetCartQueryHandler creates a handler for cart queries.
func NewGetCartQueryHandler(db *gorm.DB) GetCartQueryHandler {
	return GetCartQueryHandler{db: db}
}

// Handle executes the query. The response always carries the customer and a
// computed total; a missing or drained cart comes back with zero lines.
func (h GetCartQueryHandler) Handle(ctx context.Context, query GetCartQuery) (GetCartQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetCartQueryResponse{}, err
	}

	response := GetCartQueryResponse{
		Customer:   query.Customer(),
		Items:      make([]CartLineResponse, 0),
		TotalPrice: decimal.Zero,
	}

	row := h.db.WithContext(ctx).Raw(`
		SELECT updated_at
		FROM carts
		WHERE customer = ?
	`, query.Customer()).Row()
	if err := row.Scan(&response.UpdatedAt); err != nil {
		// no cart row yet: same as an empty cart
		if errors.Is(err, sql.ErrNoRows) {
			return response, nil
		}
		return GetCartQueryResponse{}, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			dish_id,
			title,
			price,
			quantity,
			image
		FROM cart_items
		WHERE cart_customer = ?
		ORDER BY dish_id
	`, query.Customer()).Rows()
	if err != nil {
		return GetCartQueryResponse{}, err
	}
	defer rows.Close()

	for rows.Next() {
		var line CartLineResponse
		if err = rows.Scan(&line.DishID, &line.Title, &line.Price, &line.Quantity, &line.Image); err != nil {
			return GetCartQueryResponse{}, err
		}

		line.Subtotal = line.Price.Mul(decimal.NewFromInt(int64(line.Quantity)))
		response.TotalPrice = response.TotalPrice.Add(line.Subtotal)
		response.Items = append(response.Items, line)
	}

	if err = rows.Err(); err != nil {
		return GetCartQueryResponse{}, err
	}

	return response, nil
}
