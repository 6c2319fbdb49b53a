package services

import (
	"errors"

	"backend/entity"

	"gorm.io/gorm"
)

// Targeted sub-operations on the embedded item and note lists. Each one
// addresses a single element by id, re-reads the aggregate afterwards, and
// recomputes totals from the fresh item list before acknowledging.

// Quantity adjustments are relative and bounded to a sane range.
const maxQuantityDelta = 20

// AddItem appends a new item to the order's list.
func (s *OrderService) AddItem(actor *entity.User, orderID uint, in *OrderItemIn) (*entity.CoffeeOrder, error) {
	order, err := s.loadForMutation(actor, orderID)
	if err != nil {
		return nil, err
	}

	item := newOrderItem(*in)
	item.OrderID = order.ID
	if err := s.Repo.AppendItem(&item); err != nil {
		return nil, err
	}

	if err := s.saveTotals(order); err != nil {
		return nil, err
	}

	s.Audit.Record(actor.ID, "add_order_item", "order", order.ID, map[string]any{
		"itemId": item.ID, "menuItemName": item.MenuItemName,
	})
	return s.Repo.FindByID(order.ID)
}

// AdjustItemQuantity applies a signed quantity change to one item. A delta
// that would leave the quantity below 1 is rejected outright — nothing is
// clamped, nothing is written.
func (s *OrderService) AdjustItemQuantity(actor *entity.User, orderID, itemID uint, delta int) (*entity.CoffeeOrder, error) {
	if delta == 0 || delta < -maxQuantityDelta || delta > maxQuantityDelta {
		return nil, ErrInvalidDelta
	}

	order, err := s.loadForMutation(actor, orderID)
	if err != nil {
		return nil, err
	}

	item, err := s.Repo.GetItem(order.ID, itemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, err
	}

	if item.Quantity+delta < 1 {
		return nil, ErrInvalidQuantity
	}

	ok, err := s.Repo.IncItemQuantity(order.ID, itemID, delta)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrItemNotFound
	}

	if err := s.saveTotals(order); err != nil {
		return nil, err
	}

	s.Audit.Record(actor.ID, "adjust_item_quantity", "order", order.ID, map[string]any{
		"itemId": itemID, "delta": delta,
	})
	return s.Repo.FindByID(order.ID)
}

// SetItemStatus updates one item's preparation status in place.
func (s *OrderService) SetItemStatus(actor *entity.User, orderID, itemID uint, status string) (*entity.CoffeeOrder, error) {
	order, err := s.loadForMutation(actor, orderID)
	if err != nil {
		return nil, err
	}

	ok, err := s.Repo.SetItemStatus(order.ID, itemID, status)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrItemNotFound
	}

	// Status has no totals impact; the recompute stays as an
	// invariant-preserving safety net.
	if err := s.saveTotals(order); err != nil {
		return nil, err
	}

	s.Audit.Record(actor.ID, "set_item_status", "order", order.ID, map[string]any{
		"itemId": itemID, "itemStatus": status,
	})
	return s.Repo.FindByID(order.ID)
}

// RemoveItem deletes one item by id. Removing an item that is already gone is
// a tolerant no-op: the unchanged order comes back, not an error.
func (s *OrderService) RemoveItem(actor *entity.User, orderID, itemID uint) (*entity.CoffeeOrder, error) {
	order, err := s.loadForMutation(actor, orderID)
	if err != nil {
		return nil, err
	}

	if err := s.Repo.RemoveItem(order.ID, itemID); err != nil {
		return nil, err
	}

	if err := s.saveTotals(order); err != nil {
		return nil, err
	}

	s.Audit.Record(actor.ID, "remove_order_item", "order", order.ID, map[string]any{"itemId": itemID})
	return s.Repo.FindByID(order.ID)
}

// ----- Notes -----

// AddNote appends a note authored by the acting user.
func (s *OrderService) AddNote(actor *entity.User, orderID uint, text string) (*entity.CoffeeOrder, error) {
	order, err := s.loadForMutation(actor, orderID)
	if err != nil {
		return nil, err
	}

	note := entity.OrderNote{OrderID: order.ID, AuthorID: actor.ID, Text: text}
	if err := s.Repo.AppendNote(&note); err != nil {
		return nil, err
	}

	s.Audit.Record(actor.ID, "add_order_note", "order", order.ID, map[string]any{"noteId": note.ID})
	return s.Repo.FindByID(order.ID)
}

// RemoveNote deletes one note by id; absent notes are a tolerant no-op.
func (s *OrderService) RemoveNote(actor *entity.User, orderID, noteID uint) (*entity.CoffeeOrder, error) {
	order, err := s.loadForMutation(actor, orderID)
	if err != nil {
		return nil, err
	}

	if err := s.Repo.RemoveNote(order.ID, noteID); err != nil {
		return nil, err
	}

	s.Audit.Record(actor.ID, "remove_order_note", "order", order.ID, map[string]any{"noteId": noteID})
	return s.Repo.FindByID(order.ID)
}
