package sheetpos

import (
	"context"
	"fmt"
)

// Products reads every product row. Blank and malformed rows are skipped;
// a failed read propagates so callers can tell "empty table" from
// "table unreachable".
func (s *Store) Products(ctx context.Context) ([]Product, error) {
	rows, err := s.backend.GetRange(ctx, s.products.dataRange())
	if err != nil {
		return nil, fmt.Errorf("fetch products: %w", err)
	}
	list := make([]Product, 0, len(rows))
	for _, row := range rows {
		if p, ok := s.codec.decodeProduct(row); ok {
			list = append(list, p)
		}
	}
	return list, nil
}

// AddProduct appends a product after checking that no row already holds the
// same (name, volume) pair. A duplicate returns ErrConflict without writing.
func (s *Store) AddProduct(ctx context.Context, p Product) error {
	if err := s.writable(); err != nil {
		return err
	}
	if p.Name == "" {
		return fmt.Errorf("add product: name: %w", ErrEmptyKey)
	}

	_, err := s.findRow(ctx, s.products, productKey(p.Name, p.Volume))
	switch {
	case err == nil:
		return fmt.Errorf("product %q (%q): %w", p.Name, p.Volume, ErrConflict)
	case !isNotFound(err):
		return fmt.Errorf("add product: %w", err)
	}

	if err := s.backend.AppendRows(ctx, s.products.fullRange(), [][]string{s.codec.encodeProduct(p)}); err != nil {
		return fmt.Errorf("append product %q: %w", p.Name, err)
	}
	s.log.Info("product added", "name", p.Name, "volume", p.Volume)
	return nil
}

// UpdateProduct overwrites the row identified by (oldName, oldVolume) with
// the encoded new product. When the key pair changes, the new pair must not
// exist on another row, otherwise ErrConflict and the original row stays
// untouched. Partial updates are not supported at this layer; callers merge
// fields into a fetched product before calling.
func (s *Store) UpdateProduct(ctx context.Context, oldName, oldVolume string, p Product) error {
	if err := s.writable(); err != nil {
		return err
	}
	if oldName == "" || p.Name == "" {
		return fmt.Errorf("update product: name: %w", ErrEmptyKey)
	}

	row, err := s.findRow(ctx, s.products, productKey(oldName, oldVolume))
	if err != nil {
		return fmt.Errorf("update product %q: %w", oldName, err)
	}

	if p.Name != oldName || p.Volume != oldVolume {
		other, err := s.findRow(ctx, s.products, productKey(p.Name, p.Volume))
		switch {
		case err == nil && other != row:
			return fmt.Errorf("product %q (%q): %w", p.Name, p.Volume, ErrConflict)
		case err != nil && !isNotFound(err):
			return fmt.Errorf("update product %q: %w", oldName, err)
		}
	}

	if err := s.backend.UpdateRange(ctx, s.products.rowRange(row), [][]string{s.codec.encodeProduct(p)}); err != nil {
		return fmt.Errorf("overwrite product row %d: %w", row, err)
	}
	s.log.Info("product updated", "name", p.Name, "volume", p.Volume, "row", row)
	return nil
}

// DeleteProduct removes the row identified by (name, volume) with a
// single-row dimension delete. Unknown keys return ErrNotFound with no
// write issued; an unresolved sheet id aborts rather than guessing.
func (s *Store) DeleteProduct(ctx context.Context, name, volume string) error {
	if err := s.writable(); err != nil {
		return err
	}
	if name == "" {
		return fmt.Errorf("delete product: name: %w", ErrEmptyKey)
	}

	row, err := s.findRow(ctx, s.products, productKey(name, volume))
	if err != nil {
		return fmt.Errorf("delete product %q: %w", name, err)
	}
	id, err := s.sheetID(ctx, s.products.title)
	if err != nil {
		return fmt.Errorf("delete product %q: %w", name, err)
	}

	// 1-based row r maps to the 0-based end-exclusive range [r-1, r).
	if err := s.backend.DeleteRows(ctx, id, int64(row-1), int64(row)); err != nil {
		return fmt.Errorf("delete product row %d: %w", row, err)
	}
	s.log.Info("product deleted", "name", name, "volume", volume, "row", row)
	return nil
}

func productKey(name, volume string) []keyColumn {
	return []keyColumn{
		{col: prodColName, value: name},
		{col: prodColVolume, value: volume},
	}
}
