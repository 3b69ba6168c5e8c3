package sheetpos

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// Orders reads every sales-history row, skipping blanks.
func (s *Store) Orders(ctx context.Context) ([]Order, error) {
	rows, err := s.backend.GetRange(ctx, s.orders.dataRange())
	if err != nil {
		return nil, fmt.Errorf("fetch orders: %w", err)
	}
	list := make([]Order, 0, len(rows))
	for _, row := range rows {
		if o, ok := s.codec.decodeOrder(row); ok {
			list = append(list, o)
		}
	}
	return list, nil
}

// AddOrder appends one checkout row. An empty ID is filled with a fresh
// UUID before the uniqueness check; the id is generated client-side and
// never re-derived from position afterwards. Returns the stored order.
func (s *Store) AddOrder(ctx context.Context, o Order) (Order, error) {
	if err := s.writable(); err != nil {
		return Order{}, err
	}
	if o.ID == "" {
		o.ID = uuid.NewString()
	}

	_, err := s.findRow(ctx, s.orders, orderKey(o.ID))
	switch {
	case err == nil:
		return Order{}, fmt.Errorf("order %q: %w", o.ID, ErrConflict)
	case !isNotFound(err):
		return Order{}, fmt.Errorf("add order: %w", err)
	}

	row := s.codec.encodeOrder(o)
	if err := s.backend.AppendRows(ctx, s.orders.fullRange(), [][]string{row}); err != nil {
		return Order{}, fmt.Errorf("append order %q: %w", o.ID, err)
	}
	o.Timestamp = row[orderColTimestamp]
	s.log.Info("order recorded", "id", o.ID, "total", o.TotalPrice, "payment", o.PaymentMethod)
	return o, nil
}

// DeleteOrder removes one order row by id. Unknown ids return ErrNotFound
// with no write issued.
func (s *Store) DeleteOrder(ctx context.Context, id string) error {
	if err := s.writable(); err != nil {
		return err
	}
	if id == "" {
		return fmt.Errorf("delete order: id: %w", ErrEmptyKey)
	}

	row, err := s.findRow(ctx, s.orders, orderKey(id))
	if err != nil {
		return fmt.Errorf("delete order %q: %w", id, err)
	}
	sheet, err := s.sheetID(ctx, s.orders.title)
	if err != nil {
		return fmt.Errorf("delete order %q: %w", id, err)
	}
	if err := s.backend.DeleteRows(ctx, sheet, int64(row-1), int64(row)); err != nil {
		return fmt.Errorf("delete order row %d: %w", row, err)
	}
	s.log.Info("order deleted", "id", id, "row", row)
	return nil
}

// ClearOrders removes every data row of the sales history in one dimension
// delete. A table that holds nothing but its header is already clear; no
// call is issued for it.
func (s *Store) ClearOrders(ctx context.Context) error {
	if err := s.writable(); err != nil {
		return err
	}

	rows, err := s.backend.GetRange(ctx, s.orders.keyRange(orderColID, orderColID))
	if err != nil {
		return fmt.Errorf("count order rows: %w", err)
	}
	if len(rows) == 0 {
		s.log.Info("sales history already empty")
		return nil
	}

	sheet, err := s.sheetID(ctx, s.orders.title)
	if err != nil {
		return fmt.Errorf("clear orders: %w", err)
	}
	start := int64(s.orders.headerRows)
	end := start + int64(len(rows))
	if err := s.backend.DeleteRows(ctx, sheet, start, end); err != nil {
		return fmt.Errorf("clear order rows [%d,%d): %w", start, end, err)
	}
	s.log.Info("sales history cleared", "rows", len(rows))
	return nil
}

func orderKey(id string) []keyColumn {
	return []keyColumn{{col: orderColID, value: id}}
}
