package usecase

import (
	domainErrors "github.com/anrodrig/comanda/internal/domain/errors"
	"github.com/anrodrig/comanda/internal/domain/model"
)

// BuildLineItems resolves requested items against a price snapshot and
// computes the order total. Pure: no I/O, deterministic given its inputs.
//
// An item id missing from the snapshot fails the whole build with
// ErrUnknownMenuItem; quantities must be positive. The total is computed in
// float64, the same precision the prices are stored with.
func BuildLineItems(items []model.OrderItemRequest, prices map[int64]float64) ([]model.OrderLineItem, float64, error) {
	if len(items) == 0 {
		return nil, 0, domainErrors.ErrEmptyOrder
	}

	lineItems := make([]model.OrderLineItem, 0, len(items))
	var total float64
	for _, item := range items {
		if item.Quantity <= 0 {
			return nil, 0, domainErrors.ErrInvalidQuantity
		}
		price, ok := prices[item.MenuItemID]
		if !ok {
			return nil, 0, domainErrors.ErrUnknownMenuItem
		}
		lineItems = append(lineItems, model.OrderLineItem{
			MenuItemID: item.MenuItemID,
			Quantity:   item.Quantity,
			Price:      price,
		})
		total += price * float64(item.Quantity)
	}

	return lineItems, total, nil
}
